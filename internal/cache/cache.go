package cache

import (
	"context"
	"errors"

	"github.com/ayush2735/claynest-web-craft/internal/domain"
)

// CartCache persists session cart lines between process restarts.
type CartCache interface {
	Get(ctx context.Context, sessionID string) ([]domain.CartLine, error)
	Set(ctx context.Context, sessionID string, lines []domain.CartLine) error
	Delete(ctx context.Context, sessionID string) error
}

var ErrCacheMiss = errors.New("cache miss")
