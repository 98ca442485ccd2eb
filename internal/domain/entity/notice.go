package entity

const (
	NoticeDefault     = "default"
	NoticeDestructive = "destructive"
)

// Notice is a short toast-style message shown to the user.
type Notice struct {
	Variant     string `json:"variant"`
	Title       string `json:"title"`
	Description string `json:"description"`
}
