package handler

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"

	"talentflow/internal/domain/entity"
	"talentflow/internal/usecase"
	"talentflow/pkg/errors"
	"talentflow/pkg/logger"
	"talentflow/pkg/response"
)

type MessageSender interface {
	Send(ctx context.Context, conversationKey string, sender entity.Identity, content entity.MessageContent) (*usecase.SendResult, error)
}

type MessageLister interface {
	Messages(ctx context.Context, conversationKey string) ([]*entity.Message, error)
}

type ChatHandler struct {
	sender      MessageSender
	lister      MessageLister
	maxFileSize int64

	// conversations with a send in flight
	inflight sync.Map
}

func NewChatHandler(sender MessageSender, lister MessageLister, maxFileSize int64) *ChatHandler {
	return &ChatHandler{
		sender:      sender,
		lister:      lister,
		maxFileSize: maxFileSize,
	}
}

func getUserIDFromContext(c echo.Context) string {
	if uid, ok := c.Get("uid").(string); ok {
		return uid
	}
	return ""
}

// GetMessages returns the caller's own support conversation.
func (h *ChatHandler) GetMessages(c echo.Context) error {
	uid := getUserIDFromContext(c)
	return h.listMessages(c, entity.SupportConversationKey(uid))
}

// GetUserMessages returns the support conversation of the :uid user.
func (h *ChatHandler) GetUserMessages(c echo.Context) error {
	return h.listMessages(c, entity.SupportConversationKey(c.Param("uid")))
}

func (h *ChatHandler) listMessages(c echo.Context, conversationKey string) error {
	messages, err := h.lister.Messages(c.Request().Context(), conversationKey)
	if err != nil {
		return response.ErrorWith(c, err, nil, usecase.NoticeFor(err))
	}

	return response.Success(c, map[string]interface{}{
		"conversation_key": conversationKey,
		"messages":         messages,
	})
}

// SendMessage posts into the caller's own support conversation. The body is
// multipart with an optional "text" field and an optional "file".
func (h *ChatHandler) SendMessage(c echo.Context) error {
	uid := getUserIDFromContext(c)
	return h.send(c, entity.SupportConversationKey(uid), uid)
}

// ReplyMessage lets an admin post into the support conversation of :uid.
func (h *ChatHandler) ReplyMessage(c echo.Context) error {
	uid := getUserIDFromContext(c)
	return h.send(c, entity.SupportConversationKey(c.Param("uid")), uid)
}

func (h *ChatHandler) send(c echo.Context, conversationKey, senderID string) error {
	if senderID == "" {
		return response.Error(c, errors.Unauthorized("Authentication required", nil))
	}

	attachment, closeFile, err := h.readAttachment(c)
	if err != nil {
		result := &usecase.SendResult{ResetAttachment: true}
		return response.ErrorWith(c, err, result, usecase.NoticeFor(err))
	}
	defer closeFile()

	content := entity.NewMessageContent(c.FormValue("text"), attachment)

	if _, busy := h.inflight.LoadOrStore(conversationKey, struct{}{}); busy {
		err := errors.Conflict("A message is already being sent. Please wait.")
		return response.ErrorWith(c, err, nil, usecase.NoticeFor(err))
	}
	defer h.inflight.Delete(conversationKey)

	result, err := h.sender.Send(c.Request().Context(), conversationKey, entity.Identity{UID: senderID}, content)
	if err != nil {
		return response.ErrorWith(c, err, result, usecase.NoticeFor(err))
	}

	if result.Skipped {
		return response.Success(c, result)
	}
	return response.Created(c, result)
}

func (h *ChatHandler) readAttachment(c echo.Context) (*entity.Attachment, func(), error) {
	noop := func() {}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		if stderrors.Is(err, http.ErrMissingFile) || stderrors.Is(err, http.ErrNotMultipart) {
			return nil, noop, nil
		}
		logger.Warn("Error getting file from form: %v", err)
		return nil, noop, errors.BadRequest("Missing or invalid file", err)
	}

	if h.maxFileSize > 0 && fileHeader.Size > h.maxFileSize {
		logger.Warn("File too large: %d bytes (max: %d)", fileHeader.Size, h.maxFileSize)
		return nil, noop, errors.BadRequest(fmt.Sprintf("File size exceeds maximum allowed (%dMB)", h.maxFileSize/(1024*1024)), nil)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, noop, errors.Internal("Unable to read file", err)
	}

	attachment := &entity.Attachment{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Body:        src,
	}
	return attachment, func() { src.Close() }, nil
}
