package usecase

import (
	"context"
	"io"
	"sync"
	"time"

	"talentflow/internal/domain/entity"
	"talentflow/internal/domain/repository"
)

type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFixedClock(t time.Time) *fixedClock {
	return &fixedClock{now: t}
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type commitCall struct {
	ctxErr       error
	key          string
	draft        entity.MessageDraft
	participants []string
}

// fakeChatRepo stages both writes of a commit and applies them together.
type fakeChatRepo struct {
	mu sync.Mutex

	commitErr error
	commits   []commitCall

	messages      map[string][]*entity.Message
	conversations map[string]*entity.Conversation

	listErr error
	streams []*fakeStream
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{
		messages:      make(map[string][]*entity.Message),
		conversations: make(map[string]*entity.Conversation),
	}
}

func (r *fakeChatRepo) WatchMessages(ctx context.Context, conversationKey string) repository.MessageStream {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := &fakeStream{
		ctx:     ctx,
		snaps:   make(chan []*entity.Message),
		errs:    make(chan error),
		stopped: make(chan struct{}),
	}
	r.streams = append(r.streams, s)
	return s
}

func (r *fakeChatRepo) stream(i int) *fakeStream {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.streams[i]
}

func (r *fakeChatRepo) ListMessages(ctx context.Context, conversationKey string) ([]*entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]*entity.Message, len(r.messages[conversationKey]))
	copy(out, r.messages[conversationKey])
	return out, nil
}

func (r *fakeChatRepo) CommitMessage(ctx context.Context, conversationKey string, draft entity.MessageDraft, participants []string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commits = append(r.commits, commitCall{ctxErr: ctx.Err(), key: conversationKey, draft: draft, participants: participants})
	if r.commitErr != nil {
		return "", r.commitErr
	}

	id := "msg-" + string(rune('a'+len(r.messages[conversationKey])))
	now := time.Now()
	r.messages[conversationKey] = append(r.messages[conversationKey], &entity.Message{
		ID:        id,
		SenderID:  draft.SenderID,
		Text:      draft.Text,
		FileURL:   draft.FileURL,
		FileName:  draft.FileName,
		CreatedAt: &now,
	})
	r.conversations[conversationKey] = &entity.Conversation{
		ID:            conversationKey,
		Participants:  participants,
		LastMessageAt: &now,
	}
	return id, nil
}

type fakeStream struct {
	ctx     context.Context
	snaps   chan []*entity.Message
	errs    chan error
	stopped chan struct{}
	once    sync.Once
}

func (s *fakeStream) Next() ([]*entity.Message, error) {
	select {
	case m := <-s.snaps:
		return m, nil
	case err := <-s.errs:
		return nil, err
	case <-s.ctx.Done():
		return nil, s.ctx.Err()
	}
}

func (s *fakeStream) Stop() {
	s.once.Do(func() { close(s.stopped) })
}

type fakeFiles struct {
	mu        sync.Mutex
	uploadErr error
	urlErr    error
	uploads   []string
	ctxErrs   []error
	bodies    map[string][]byte
}

func newFakeFiles() *fakeFiles {
	return &fakeFiles{bodies: make(map[string][]byte)}
}

func (f *fakeFiles) Upload(ctx context.Context, objectName string, body io.Reader, contentType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads = append(f.uploads, objectName)
	f.ctxErrs = append(f.ctxErrs, ctx.Err())
	if f.uploadErr != nil {
		return f.uploadErr
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.bodies[objectName] = b
	return nil
}

func (f *fakeFiles) DownloadURL(ctx context.Context, objectName string) (string, error) {
	if f.urlErr != nil {
		return "", f.urlErr
	}
	return "https://files.example/" + objectName, nil
}

func (f *fakeFiles) Close() error { return nil }

type fakeAdminRepo struct {
	mu    sync.Mutex
	uids  []string
	found bool
	err   error
	reads int
}

func (r *fakeAdminRepo) GetAdminUIDs(ctx context.Context) ([]string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reads++
	return r.uids, r.found, r.err
}

func (r *fakeAdminRepo) readCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reads
}
