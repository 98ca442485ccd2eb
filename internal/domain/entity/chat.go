package entity

import (
	"strings"
	"time"
)

const supportKeyPrefix = "support_"

// Conversation is the parent document of a support thread, chats/{key}.
type Conversation struct {
	ID            string     `json:"id" firestore:"-"`
	Participants  []string   `json:"participants" firestore:"participants"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty" firestore:"lastMessageAt"`
}

// SupportConversationKey returns the key of the single support conversation
// owned by uid.
func SupportConversationKey(uid string) string {
	return supportKeyPrefix + uid
}

// SupportConversationOwner extracts the owning uid from a support key.
func SupportConversationOwner(key string) (string, bool) {
	uid, ok := strings.CutPrefix(key, supportKeyPrefix)
	if !ok || uid == "" {
		return "", false
	}
	return uid, true
}
