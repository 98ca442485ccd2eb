package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"talentflow/internal/usecase"
	"talentflow/pkg/response"
)

type Authenticator interface {
	Login(ctx context.Context, email, password string) (*usecase.AuthResult, error)
	Session(ctx context.Context, idToken string) (*usecase.AuthResult, error)
}

type AuthHandler struct {
	authUseCase Authenticator
}

func NewAuthHandler(authUseCase Authenticator) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.authUseCase.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return response.ErrorWith(c, err, nil, usecase.NoticeFor(err))
	}

	return response.Success(c, result)
}

// Session completes a client-side sign-in. The bearer token was verified by
// the auth middleware.
func (h *AuthHandler) Session(c echo.Context) error {
	token, _ := c.Get("token").(string)

	result, err := h.authUseCase.Session(c.Request().Context(), token)
	if err != nil {
		return response.ErrorWith(c, err, nil, usecase.NoticeFor(err))
	}

	return response.Success(c, result)
}
