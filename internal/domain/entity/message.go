package entity

import (
	"io"
	"sort"
	"strings"
	"time"
)

type Message struct {
	ID        string     `json:"id" firestore:"-"`
	SenderID  string     `json:"sender_id" firestore:"senderId"`
	Text      *string    `json:"text" firestore:"text"`
	FileURL   *string    `json:"file_url" firestore:"fileUrl"`
	FileName  *string    `json:"file_name" firestore:"fileName"`
	CreatedAt *time.Time `json:"created_at" firestore:"createdAt"` // nil until the server assigns it
}

// MessageDraft is a finalized message ready to be committed. The store fills
// in the ID and creation time.
type MessageDraft struct {
	SenderID string
	Text     *string
	FileURL  *string
	FileName *string
}

// Attachment is a single user-selected file.
type Attachment struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// MessageContent is one of TextContent, AttachmentContent or MixedContent.
type MessageContent interface {
	isMessageContent()
}

type TextContent struct {
	Text string
}

type AttachmentContent struct {
	File Attachment
}

type MixedContent struct {
	Text string
	File Attachment
}

func (TextContent) isMessageContent()       {}
func (AttachmentContent) isMessageContent() {}
func (MixedContent) isMessageContent()      {}

// NewMessageContent builds the content variant for a submission. It returns
// nil when there is nothing to send: blank text and no file.
func NewMessageContent(text string, file *Attachment) MessageContent {
	hasText := strings.TrimSpace(text) != ""
	switch {
	case hasText && file != nil:
		return MixedContent{Text: text, File: *file}
	case hasText:
		return TextContent{Text: text}
	case file != nil:
		return AttachmentContent{File: *file}
	default:
		return nil
	}
}

// DedupeMessages drops repeated IDs, keeping the last copy of each in the
// position of its first appearance.
func DedupeMessages(messages []*Message) []*Message {
	index := make(map[string]int, len(messages))
	out := messages[:0:0]
	for _, m := range messages {
		if i, ok := index[m.ID]; ok {
			out[i] = m
			continue
		}
		index[m.ID] = len(out)
		out = append(out, m)
	}
	return out
}

// SortMessages orders messages by creation time ascending. Messages whose
// timestamp is still pending go last, keeping their relative order.
func SortMessages(messages []*Message) {
	sort.SliceStable(messages, func(i, j int) bool {
		a, b := messages[i].CreatedAt, messages[j].CreatedAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
}
