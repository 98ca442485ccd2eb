package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"talentflow/internal/adapter/api/middleware"
	"talentflow/internal/domain/entity"
	"talentflow/internal/infrastructure/ratelimit"
	ws "talentflow/internal/infrastructure/websocket"
	"talentflow/internal/usecase"
	"talentflow/pkg/errors"
	"talentflow/pkg/logger"
	"talentflow/pkg/response"
)

type FeedWatcher interface {
	Watch(ctx context.Context, conversationKey string, sink usecase.FeedSink) *usecase.Subscription
}

type WebSocketHandler struct {
	wsManager *ws.Manager
	verifier  middleware.TokenVerifier
	feed      FeedWatcher
	admins    middleware.PrivilegeChecker
	limiter   middleware.RateLimiter
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func NewWebSocketHandler(wsManager *ws.Manager, verifier middleware.TokenVerifier, feed FeedWatcher, admins middleware.PrivilegeChecker, limiter middleware.RateLimiter) *WebSocketHandler {
	return &WebSocketHandler{
		wsManager: wsManager,
		verifier:  verifier,
		feed:      feed,
		admins:    admins,
		limiter:   limiter,
	}
}

// HandleFeed upgrades the connection and streams the caller's support
// conversation. Browsers cannot set headers on websocket requests, so the ID
// token may also come in the "token" query parameter.
func (h *WebSocketHandler) HandleFeed(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		token, _ = middleware.BearerToken(c.Request().Header.Get("Authorization"))
	}
	if token == "" {
		return response.Error(c, errors.Unauthorized("Authentication required", nil))
	}

	uid, err := h.verifier.VerifyToken(c.Request().Context(), token)
	if err != nil {
		return response.Error(c, errors.Unauthorized("Invalid or expired token", err))
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		logger.Error("Failed to upgrade connection for %s: %v", uid, err)
		return nil
	}

	client := ws.NewClient(uid, conn)
	h.wsManager.Register(client)

	session := &feedSession{handler: h, client: client}
	session.watch(entity.SupportConversationKey(uid))

	go client.WritePump()
	go func() {
		client.ReadPump(h.wsManager, session.handle)
		session.close()
	}()

	return nil
}

// feedSession owns the single live subscription of one connection.
type feedSession struct {
	handler *WebSocketHandler
	client  *ws.Client

	mu  sync.Mutex
	sub *usecase.Subscription
}

func (s *feedSession) watch(conversationKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sub != nil {
		s.sub.Close()
	}
	s.sub = s.handler.feed.Watch(context.Background(), conversationKey, usecase.FeedSinkFunc(func(state usecase.FeedState) {
		s.client.EnqueueJSON(ws.MessageTypeFeed, state)
	}))
}

func (s *feedSession) close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sub != nil {
		s.sub.Close()
		s.sub = nil
	}
}

func (s *feedSession) handle(msg ws.WSMessage) {
	switch msg.Type {
	case ws.MessageTypePing:
		s.client.EnqueueJSON(ws.MessageTypePong, nil)

	case ws.MessageTypeWatch:
		var data ws.WatchData
		if err := json.Unmarshal(msg.Data, &data); err != nil || data.ConversationKey == "" {
			s.notify(errors.BadRequest("conversation_key is required", err))
			return
		}
		if ok, _ := s.handler.limiter.Allow(s.client.UserID, ratelimit.ActionWatch); !ok {
			s.notify(errors.RateLimited("Too many requests. Please slow down."))
			return
		}
		if !s.allowed(data.ConversationKey) {
			s.notify(errors.Forbidden("You cannot view this conversation", nil))
			return
		}
		s.watch(data.ConversationKey)

	default:
		logger.Debug("websocket: unknown message type %q from %s", msg.Type, s.client.UserID)
	}
}

// allowed lets users watch only their own conversation; admins any.
func (s *feedSession) allowed(conversationKey string) bool {
	if _, ok := entity.SupportConversationOwner(conversationKey); !ok {
		return false
	}
	if conversationKey == entity.SupportConversationKey(s.client.UserID) {
		return true
	}
	return s.handler.admins.IsPrivileged(context.Background(), s.client.UserID)
}

func (s *feedSession) notify(err error) {
	s.client.EnqueueJSON(ws.MessageTypeNotice, usecase.NoticeFor(err))
}
