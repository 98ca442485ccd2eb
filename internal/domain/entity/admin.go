package entity

// AdminList is the singleton config/admins document.
type AdminList struct {
	UIDs []string `firestore:"uids"`
}
