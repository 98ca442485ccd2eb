package usecase

import (
	stderrors "errors"

	"talentflow/internal/domain/entity"
	"talentflow/pkg/errors"
)

// NoticeFor translates an error into the toast shown to the user.
func NoticeFor(err error) entity.Notice {
	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		return entity.Notice{
			Variant:     entity.NoticeDestructive,
			Title:       "Error",
			Description: "Something went wrong. Please try again.",
		}
	}

	title := "Error"
	switch appErr.Code {
	case errors.CodePolicyViolation, errors.CodeUploadFailed:
		title = "Upload Failed"
	case errors.CodePermissionDenied, errors.CodeCommitFailed, errors.CodeConflict:
		title = "Send Failed"
	case errors.CodeUnauthorized:
		title = "Sign in failed"
	case errors.CodeBadRequest:
		title = "Invalid Request"
	}

	return entity.Notice{
		Variant:     entity.NoticeDestructive,
		Title:       title,
		Description: appErr.Message,
	}
}
