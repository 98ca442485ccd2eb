package repository

import (
	"context"

	"talentflow/internal/domain/entity"
)

// MessageStream yields the full, current message set of one conversation each
// time it changes. Next blocks until the next snapshot; it returns an error
// once the stream fails or its context is cancelled. Stop releases the
// underlying listener and must not be called concurrently with Next.
type MessageStream interface {
	Next() ([]*entity.Message, error)
	Stop()
}

type ChatRepository interface {
	// WatchMessages opens a live query over chats/{key}/messages ordered by
	// createdAt ascending.
	WatchMessages(ctx context.Context, conversationKey string) MessageStream

	// ListMessages reads the current messages once, oldest first.
	ListMessages(ctx context.Context, conversationKey string) ([]*entity.Message, error)

	// CommitMessage atomically inserts the message and upserts the parent
	// conversation's lastMessageAt and participants. It returns the new
	// message ID.
	CommitMessage(ctx context.Context, conversationKey string, draft entity.MessageDraft, participants []string) (string, error)
}
