package entity

import "strings"

// Identity is the authenticated user as issued by the auth provider.
type Identity struct {
	UID         string `json:"uid"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
}

// UserProfile is stored at users/{uid}.
type UserProfile struct {
	FirstName string `json:"first_name" firestore:"firstName"`
	LastName  string `json:"last_name" firestore:"lastName"`
	Email     string `json:"email" firestore:"email"`
}

// ProfileFromIdentity splits the display name on spaces: the first word is the
// first name, the remainder the last name.
func ProfileFromIdentity(identity Identity) UserProfile {
	parts := strings.Split(identity.DisplayName, " ")
	return UserProfile{
		FirstName: parts[0],
		LastName:  strings.Join(parts[1:], " "),
		Email:     identity.Email,
	}
}
