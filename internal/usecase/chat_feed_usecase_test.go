package usecase

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talentflow/internal/domain/entity"
)

const waitTimeout = 2 * time.Second

// recordingSink forwards every published state to a channel.
type recordingSink struct {
	mu     sync.Mutex
	states []FeedState
	ch     chan FeedState
}

func newRecordingSink() *recordingSink {
	return &recordingSink{ch: make(chan FeedState, 16)}
}

func (s *recordingSink) Publish(state FeedState) {
	s.mu.Lock()
	s.states = append(s.states, state)
	s.mu.Unlock()
	s.ch <- state
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.states)
}

func (s *recordingSink) next(t *testing.T) FeedState {
	t.Helper()
	select {
	case state := <-s.ch:
		return state
	case <-time.After(waitTimeout):
		t.Fatal("timed out waiting for feed state")
		return FeedState{}
	}
}

func msg(id string, sec int) *entity.Message {
	m := &entity.Message{ID: id, SenderID: "u1"}
	if sec >= 0 {
		ts := time.Unix(int64(sec), 0)
		m.CreatedAt = &ts
	}
	return m
}

func waitDone(t *testing.T, sub *Subscription) {
	t.Helper()
	select {
	case <-sub.Done():
	case <-time.After(waitTimeout):
		t.Fatal("subscription did not finish")
	}
}

func TestWatchPublishesLoadingThenSnapshots(t *testing.T) {
	repo := newFakeChatRepo()
	uc := NewChatFeedUseCase(repo)
	sink := newRecordingSink()

	sub := uc.Watch(context.Background(), "support_u1", sink)
	defer sub.Close()

	first := sink.next(t)
	assert.True(t, first.Loading)
	assert.Empty(t, first.Messages)
	assert.Equal(t, "support_u1", first.ConversationKey)
	assert.Equal(t, "support_u1", sub.ConversationKey())

	stream := repo.stream(0)
	stream.snaps <- []*entity.Message{msg("b", 20), msg("pending", -1), msg("a", 10)}

	state := sink.next(t)
	assert.False(t, state.Loading)
	assert.Nil(t, state.Notice)
	assert.Equal(t, []string{"a", "b", "pending"}, messageIDs(state.Messages))

	stream.snaps <- []*entity.Message{msg("a", 10), msg("b", 20), msg("c", 30)}
	state = sink.next(t)
	assert.Equal(t, []string{"a", "b", "c"}, messageIDs(state.Messages))
}

func TestWatchEmptyConversationStopsLoading(t *testing.T) {
	repo := newFakeChatRepo()
	uc := NewChatFeedUseCase(repo)
	sink := newRecordingSink()

	sub := uc.Watch(context.Background(), "support_u1", sink)
	defer sub.Close()

	assert.True(t, sink.next(t).Loading)

	repo.stream(0).snaps <- []*entity.Message{}
	state := sink.next(t)
	assert.False(t, state.Loading)
	assert.Empty(t, state.Messages)
}

func TestWatchErrorPublishesNoticeAndEnds(t *testing.T) {
	repo := newFakeChatRepo()
	uc := NewChatFeedUseCase(repo)
	sink := newRecordingSink()

	sub := uc.Watch(context.Background(), "support_u1", sink)
	defer sub.Close()
	sink.next(t)

	stream := repo.stream(0)
	stream.snaps <- []*entity.Message{msg("a", 10)}
	sink.next(t)

	stream.errs <- stderrors.New("permission denied")

	state := sink.next(t)
	assert.False(t, state.Loading)
	require.NotNil(t, state.Notice)
	assert.Equal(t, entity.NoticeDestructive, state.Notice.Variant)
	assert.Equal(t, "Could not load messages.", state.Notice.Description)
	assert.Equal(t, []string{"a"}, messageIDs(state.Messages))

	waitDone(t, sub)
	select {
	case <-stream.stopped:
	default:
		t.Fatal("stream was not stopped")
	}
	assert.Equal(t, 3, sink.count())
}

func TestCloseStopsDeliveryAndReleasesStream(t *testing.T) {
	repo := newFakeChatRepo()
	uc := NewChatFeedUseCase(repo)
	sink := newRecordingSink()

	sub := uc.Watch(context.Background(), "support_u1", sink)
	sink.next(t)

	sub.Close()
	sub.Close()

	waitDone(t, sub)
	stream := repo.stream(0)
	select {
	case <-stream.stopped:
	default:
		t.Fatal("stream was not stopped")
	}

	// the stream goroutine is gone so nothing can be published
	assert.Equal(t, 1, sink.count())
	sub.deliver(FeedState{ConversationKey: "support_u1"})
	assert.Equal(t, 1, sink.count())
}

func TestWatchContextCancelEndsFeedQuietly(t *testing.T) {
	repo := newFakeChatRepo()
	uc := NewChatFeedUseCase(repo)
	sink := newRecordingSink()

	ctx, cancel := context.WithCancel(context.Background())
	sub := uc.Watch(ctx, "support_u1", sink)
	sink.next(t)

	cancel()
	waitDone(t, sub)

	assert.Equal(t, 1, sink.count())
}

func TestSwitchingConversationsKeepsFeedsIndependent(t *testing.T) {
	repo := newFakeChatRepo()
	uc := NewChatFeedUseCase(repo)

	first := newRecordingSink()
	subA := uc.Watch(context.Background(), "support_a", first)
	first.next(t)

	subA.Close()
	waitDone(t, subA)

	second := newRecordingSink()
	subB := uc.Watch(context.Background(), "support_b", second)
	defer subB.Close()
	second.next(t)

	repo.stream(1).snaps <- []*entity.Message{msg("b1", 5)}
	state := second.next(t)
	assert.Equal(t, "support_b", state.ConversationKey)
	assert.Equal(t, []string{"b1"}, messageIDs(state.Messages))
	assert.Equal(t, 1, first.count())
}

func TestMessagesSortsOneShotRead(t *testing.T) {
	repo := newFakeChatRepo()
	repo.messages["support_u1"] = []*entity.Message{msg("late", 30), msg("pending", -1), msg("early", 10)}
	uc := NewChatFeedUseCase(repo)

	messages, err := uc.Messages(context.Background(), "support_u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"early", "late", "pending"}, messageIDs(messages))

	repo.listErr = stderrors.New("unavailable")
	_, err = uc.Messages(context.Background(), "support_u1")
	assert.Error(t, err)
}

func messageIDs(messages []*entity.Message) []string {
	out := make([]string, 0, len(messages))
	for _, m := range messages {
		out = append(out, m.ID)
	}
	return out
}

func TestWatchDropsDuplicateMessages(t *testing.T) {
	repo := newFakeChatRepo()
	uc := NewChatFeedUseCase(repo)
	sink := newRecordingSink()

	sub := uc.Watch(context.Background(), "support_u1", sink)
	defer sub.Close()
	sink.next(t)

	repo.stream(0).snaps <- []*entity.Message{msg("a", -1), msg("b", 20), msg("a", 10)}

	state := sink.next(t)
	assert.Equal(t, []string{"a", "b"}, messageIDs(state.Messages))
	require.NotNil(t, state.Messages[0].CreatedAt)
}
