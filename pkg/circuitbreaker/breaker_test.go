package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	cb := New(Settings{Name: "test", MaxFailures: 2, OpenTimeout: time.Minute}, zap.NewNop())
	boom := errors.New("boom")

	for i := 0; i < 2; i++ {
		_, err := cb.Execute(func() (any, error) { return nil, boom })
		assert.ErrorIs(t, err, boom)
	}

	assert.Equal(t, gobreaker.StateOpen, cb.State())
	_, err := cb.Execute(func() (any, error) { return nil, nil })
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
}

func TestBreaker_DefaultsApplied(t *testing.T) {
	cb := New(Settings{Name: "defaults"}, zap.NewNop())
	for i := 0; i < 4; i++ {
		_, _ = cb.Execute(func() (any, error) { return nil, errors.New("x") })
	}
	assert.Equal(t, gobreaker.StateClosed, cb.State())
}
