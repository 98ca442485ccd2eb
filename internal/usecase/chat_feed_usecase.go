package usecase

import (
	"context"
	"sync"

	"talentflow/internal/domain/entity"
	"talentflow/internal/domain/repository"
	"talentflow/pkg/errors"
	"talentflow/pkg/logger"
)

const msgLoadFailed = "Could not load messages."

// FeedState is everything a conversation view renders.
type FeedState struct {
	ConversationKey string            `json:"conversation_key"`
	Messages        []*entity.Message `json:"messages"`
	Loading         bool              `json:"loading"`
	Notice          *entity.Notice    `json:"notice,omitempty"`
}

type FeedSink interface {
	Publish(state FeedState)
}

type FeedSinkFunc func(state FeedState)

func (f FeedSinkFunc) Publish(state FeedState) { f(state) }

type ChatFeedUseCase struct {
	chatRepo repository.ChatRepository
}

func NewChatFeedUseCase(chatRepo repository.ChatRepository) *ChatFeedUseCase {
	return &ChatFeedUseCase{
		chatRepo: chatRepo,
	}
}

// Messages reads the conversation once, oldest first.
func (uc *ChatFeedUseCase) Messages(ctx context.Context, conversationKey string) ([]*entity.Message, error) {
	messages, err := uc.chatRepo.ListMessages(ctx, conversationKey)
	if err != nil {
		return nil, err
	}
	messages = entity.DedupeMessages(messages)
	entity.SortMessages(messages)
	return messages, nil
}

// Watch subscribes sink to the live message list of a conversation. The sink
// receives a loading state immediately, then one state per snapshot. A
// subscription error is published once as a notice and ends the feed; it is
// not retried. Cancelling ctx has the same effect as Close.
func (uc *ChatFeedUseCase) Watch(ctx context.Context, conversationKey string, sink FeedSink) *Subscription {
	ctx, cancel := context.WithCancel(ctx)
	sub := &Subscription{
		key:    conversationKey,
		sink:   sink,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	sub.deliver(FeedState{
		ConversationKey: conversationKey,
		Messages:        []*entity.Message{},
		Loading:         true,
	})

	stream := uc.chatRepo.WatchMessages(ctx, conversationKey)
	go sub.run(ctx, stream)

	return sub
}

// Subscription is a live conversation feed. Close must not be called from
// inside the sink's Publish.
type Subscription struct {
	key    string
	sink   FeedSink
	cancel context.CancelFunc
	done   chan struct{}

	mu     sync.Mutex
	closed bool
}

func (s *Subscription) ConversationKey() string {
	return s.key
}

// Close stops the feed. It is safe to call more than once; after it returns
// the sink receives nothing further.
func (s *Subscription) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.cancel()
}

// Done is closed once the listener has been released.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

func (s *Subscription) deliver(state FeedState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.sink.Publish(state)
}

func (s *Subscription) run(ctx context.Context, stream repository.MessageStream) {
	defer close(s.done)
	defer stream.Stop()

	current := []*entity.Message{}
	for {
		messages, err := stream.Next()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error("Error fetching messages for chat %s: %v", s.key, err)
			notice := NoticeFor(errors.SubscriptionFailed(msgLoadFailed, err))
			s.deliver(FeedState{
				ConversationKey: s.key,
				Messages:        current,
				Loading:         false,
				Notice:          &notice,
			})
			return
		}

		messages = entity.DedupeMessages(messages)
		entity.SortMessages(messages)
		current = messages
		s.deliver(FeedState{
			ConversationKey: s.key,
			Messages:        messages,
			Loading:         false,
		})
	}
}
