package repository

import (
	"context"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"talentflow/internal/domain/entity"
	"talentflow/internal/domain/repository"
	"talentflow/pkg/errors"
	"talentflow/pkg/logger"
)

type firestoreChatRepository struct {
	client *firestore.Client
}

func NewFirestoreChatRepository(client *firestore.Client) repository.ChatRepository {
	return &firestoreChatRepository{
		client: client,
	}
}

func (r *firestoreChatRepository) messages(conversationKey string) *firestore.CollectionRef {
	return r.client.Collection("chats").Doc(conversationKey).Collection("messages")
}

func (r *firestoreChatRepository) WatchMessages(ctx context.Context, conversationKey string) repository.MessageStream {
	query := r.messages(conversationKey).OrderBy("createdAt", firestore.Asc)
	return &firestoreMessageStream{
		key:  conversationKey,
		iter: query.Snapshots(ctx),
	}
}

func (r *firestoreChatRepository) ListMessages(ctx context.Context, conversationKey string) ([]*entity.Message, error) {
	docs, err := r.messages(conversationKey).OrderBy("createdAt", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		logger.Error("Firestore error while listing messages for chat %s: %v", conversationKey, err)
		return nil, errors.Internal("Failed to list messages", err)
	}
	return messagesFromDocs(conversationKey, docs), nil
}

func (r *firestoreChatRepository) CommitMessage(ctx context.Context, conversationKey string, draft entity.MessageDraft, participants []string) (string, error) {
	chatRef := r.client.Collection("chats").Doc(conversationKey)
	messageRef := chatRef.Collection("messages").NewDoc()

	batch := r.client.Batch()
	batch.Set(messageRef, map[string]interface{}{
		"senderId":  draft.SenderID,
		"text":      nullable(draft.Text),
		"fileUrl":   nullable(draft.FileURL),
		"fileName":  nullable(draft.FileName),
		"createdAt": firestore.ServerTimestamp,
	})
	batch.Set(chatRef, map[string]interface{}{
		"lastMessageAt": firestore.ServerTimestamp,
		"participants":  participants,
	}, firestore.MergeAll)

	if _, err := batch.Commit(ctx); err != nil {
		logger.Error("Firestore batch commit failed for chat %s: %v", conversationKey, err)
		if isPermissionDenied(err) {
			return "", errors.PermissionDenied("Firestore rejected the write", err)
		}
		return "", errors.CommitFailed("Failed to commit message", err)
	}

	return messageRef.ID, nil
}

type firestoreMessageStream struct {
	key  string
	iter *firestore.QuerySnapshotIterator
}

func (s *firestoreMessageStream) Next() ([]*entity.Message, error) {
	snap, err := s.iter.Next()
	if err != nil {
		return nil, err
	}
	docs, err := snap.Documents.GetAll()
	if err != nil {
		return nil, err
	}
	return messagesFromDocs(s.key, docs), nil
}

func (s *firestoreMessageStream) Stop() {
	s.iter.Stop()
}

func messagesFromDocs(conversationKey string, docs []*firestore.DocumentSnapshot) []*entity.Message {
	messages := make([]*entity.Message, 0, len(docs))
	for _, doc := range docs {
		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			logger.Warn("Skipping malformed message %s in chat %s: %v", doc.Ref.ID, conversationKey, err)
			continue
		}
		message.ID = doc.Ref.ID
		messages = append(messages, &message)
	}
	return messages
}

func nullable(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func isPermissionDenied(err error) bool {
	if status.Code(err) == codes.PermissionDenied {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "permission")
}
