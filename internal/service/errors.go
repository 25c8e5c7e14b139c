package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/nurpe/siteops-admin/internal/model"
)

var (
	ErrNotFound              = errors.New("not found")
	ErrPermissionDenied      = errors.New("permission denied")
	ErrInvalidInput          = errors.New("invalid input")
	ErrConflict              = errors.New("conflict")
	ErrUnauthorized          = errors.New("invalid credentials")
	ErrSummarizerUnavailable = errors.New("summarizer is not configured")
)

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func requireWriter(principal model.Principal) error {
	if !principal.CanWrite() {
		return ErrPermissionDenied
	}
	return nil
}

func requireAdmin(principal model.Principal) error {
	if !principal.IsAdmin() {
		return ErrPermissionDenied
	}
	return nil
}
