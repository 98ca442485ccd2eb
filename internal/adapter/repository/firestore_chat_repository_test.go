package repository

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestIsPermissionDenied(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"grpc permission denied", status.Error(codes.PermissionDenied, "Missing or insufficient permissions."), true},
		{"wrapped grpc status", fmt.Errorf("commit: %w", status.Error(codes.PermissionDenied, "denied")), true},
		{"message mentions permission", stderrors.New("caller lacks Permission to write"), true},
		{"unavailable", status.Error(codes.Unavailable, "backend down"), false},
		{"plain error", stderrors.New("deadline exceeded"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isPermissionDenied(tt.err))
		})
	}
}

func TestNullable(t *testing.T) {
	assert.Nil(t, nullable(nil))

	s := "hello"
	assert.Equal(t, "hello", nullable(&s))
}
