package usecase

import (
	"context"
	"fmt"
	"strings"

	"talentflow/internal/domain/entity"
	"talentflow/internal/domain/repository"
	"talentflow/internal/domain/service"
	"talentflow/pkg/errors"
	"talentflow/pkg/logger"
)

const (
	msgBlockedFileType = "This file type is not allowed for security reasons."
	msgUploadFailed    = "Could not upload your file. Please try again."
	msgPermission      = "Permission Denied. Your Firestore security rules might be blocking this action."
	msgSendFailed      = "Could not send message. Please try again."
)

// blockedExtensions are executable or script-like file types that may never
// be attached to a message.
var blockedExtensions = map[string]struct{}{
	".exe": {}, ".msi": {}, ".bat": {}, ".com": {}, ".cmd": {},
	".inf": {}, ".ipa": {}, ".osx": {}, ".pif": {}, ".run": {},
	".wsh": {}, ".sh": {}, ".dll": {}, ".scr": {}, ".jar": {},
}

// IsBlockedFileName reports whether the extension of name, the text after its
// final dot compared case-insensitively, is on the denylist. A name without a
// dot is its own extension.
func IsBlockedFileName(name string) bool {
	ext := name
	if i := strings.LastIndex(name, "."); i >= 0 {
		ext = name[i+1:]
	}
	_, blocked := blockedExtensions["."+strings.ToLower(ext)]
	return blocked
}

type ChatUseCase struct {
	chatRepo    repository.ChatRepository
	files       service.FileUploadService
	counterpart string
	clock       Clock
}

func NewChatUseCase(
	chatRepo repository.ChatRepository,
	files service.FileUploadService,
	counterpart string,
	clock Clock,
) *ChatUseCase {
	if clock == nil {
		clock = SystemClock()
	}
	return &ChatUseCase{
		chatRepo:    chatRepo,
		files:       files,
		counterpart: counterpart,
		clock:       clock,
	}
}

// SendResult tells the caller how to update its inputs after a send. It is
// returned on failure too: ResetAttachment is then still set.
type SendResult struct {
	Message         *entity.Message `json:"message,omitempty"`
	Skipped         bool            `json:"skipped"`
	ClearText       bool            `json:"clear_text"`
	ResetAttachment bool            `json:"reset_attachment"`
}

// Send uploads the attachment, if any, and commits the message together with
// the conversation summary in one atomic write. A nil content is a no-op.
func (uc *ChatUseCase) Send(ctx context.Context, conversationKey string, sender entity.Identity, content entity.MessageContent) (*SendResult, error) {
	result := &SendResult{ResetAttachment: true}
	if content == nil {
		result.Skipped = true
		return result, nil
	}

	owner, ok := entity.SupportConversationOwner(conversationKey)
	if !ok {
		return result, errors.BadRequest("Unknown conversation", nil)
	}
	if sender.UID == "" {
		return result, errors.Unauthorized("Authentication required", nil)
	}

	var text *string
	var file *entity.Attachment
	switch c := content.(type) {
	case entity.TextContent:
		text = nonBlank(c.Text)
	case entity.AttachmentContent:
		file = &c.File
	case entity.MixedContent:
		text = nonBlank(c.Text)
		file = &c.File
	default:
		return result, errors.BadRequest("Unsupported message content", nil)
	}

	if text == nil && file == nil {
		result.Skipped = true
		return result, nil
	}
	if file != nil && strings.TrimSpace(file.FileName) == "" {
		return result, errors.BadRequest("Attachment has no file name", nil)
	}

	// Once issued, upload and commit run to completion even if the caller
	// goes away.
	ioCtx := context.WithoutCancel(ctx)

	draft := entity.MessageDraft{
		SenderID: sender.UID,
		Text:     text,
	}

	if file != nil {
		if IsBlockedFileName(file.FileName) {
			logger.Warn("Send: blocked attachment %q from %s", file.FileName, sender.UID)
			return result, errors.PolicyViolation(msgBlockedFileType)
		}

		url, err := uc.upload(ioCtx, conversationKey, file)
		if err != nil {
			logger.Error("Send: upload of %q to chat %s failed: %v", file.FileName, conversationKey, err)
			return result, errors.UploadFailed(msgUploadFailed, err)
		}
		fileName := file.FileName
		draft.FileURL = &url
		draft.FileName = &fileName
	}

	participants := []string{owner, uc.counterpart}
	id, err := uc.chatRepo.CommitMessage(ioCtx, conversationKey, draft, participants)
	if err != nil {
		logger.Error("Send: commit to chat %s failed: %v", conversationKey, err)
		if errors.Is(err, errors.CodePermissionDenied) {
			return result, errors.PermissionDenied(msgPermission, err)
		}
		return result, errors.CommitFailed(msgSendFailed, err)
	}

	result.Message = &entity.Message{
		ID:       id,
		SenderID: draft.SenderID,
		Text:     draft.Text,
		FileURL:  draft.FileURL,
		FileName: draft.FileName,
	}
	result.ClearText = text != nil
	return result, nil
}

func nonBlank(text string) *string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return &text
}

func (uc *ChatUseCase) upload(ctx context.Context, conversationKey string, file *entity.Attachment) (string, error) {
	objectName := fmt.Sprintf("chat_files/%s/%d_%s", conversationKey, uc.clock.Now().UnixMilli(), file.FileName)

	if err := uc.files.Upload(ctx, objectName, file.Body, file.ContentType); err != nil {
		return "", err
	}

	return uc.files.DownloadURL(ctx, objectName)
}
