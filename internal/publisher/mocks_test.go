package publisher

import (
	"context"
	"slices"
	"sync"

	"github.com/ayush2735/claynest-web-craft/internal/repository"
	"github.com/segmentio/kafka-go"
)

type MockRepository struct {
	mu           sync.Mutex
	OutboxEvents []*repository.OutboxEvent
	GetErr       error
	MarkErr      error
	ProcessedIDs []int64
}

// GetUnprocessedEvents returns the events not yet marked as processed.
func (m *MockRepository) GetUnprocessedEvents(context.Context, int) ([]*repository.OutboxEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	var pending []*repository.OutboxEvent
	for _, ev := range m.OutboxEvents {
		if !slices.Contains(m.ProcessedIDs, ev.ID) {
			pending = append(pending, ev)
		}
	}
	return pending, nil
}

func (m *MockRepository) MarkEventAsProcessed(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.MarkErr != nil {
		return m.MarkErr
	}
	m.ProcessedIDs = append(m.ProcessedIDs, id)
	return nil
}

func (m *MockRepository) processed() []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int64(nil), m.ProcessedIDs...)
}

type MockWriter struct {
	Err      error
	FailKeys map[string]bool
	Messages []kafka.Message
	Calls    int
}

func (m *MockWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	m.Calls++
	if m.Err != nil {
		return m.Err
	}
	for _, msg := range msgs {
		if m.FailKeys[string(msg.Key)] {
			return errWriteFailed
		}
	}
	m.Messages = append(m.Messages, msgs...)
	return nil
}

func (m *MockWriter) Close() error { return nil }
