package cart

import (
	"sync"

	"github.com/ayush2735/claynest-web-craft/internal/domain"
	"github.com/shopspring/decimal"
)

// Store holds the cart of one session. Lines keep insertion order and there is
// at most one line per product.
//
// Mutations hold writeMu until their subscribers have returned, so subscribers
// see changes in the order they were applied. Subscribers must not mutate the
// store they are subscribed to.
type Store struct {
	writeMu sync.Mutex
	mu      sync.RWMutex
	lines   []domain.CartLine
	nextID  int
	subs    map[int]func([]domain.CartLine)
}

func NewStore() *Store {
	return &Store{subs: make(map[int]func([]domain.CartLine))}
}

// NewStoreFrom rebuilds a store from previously captured lines.
func NewStoreFrom(lines []domain.CartLine) *Store {
	s := NewStore()
	for _, l := range lines {
		s.upsert(l.Product, l.Quantity)
	}
	return s
}

// Add inserts a line for product or replaces the quantity of the existing one.
// Quantities below the product minimum are raised to it.
func (s *Store) Add(product domain.Product, quantity int) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	s.upsert(product, quantity)
	snapshot := s.copyLines()
	s.mu.Unlock()

	s.notify(snapshot)
}

func (s *Store) upsert(product domain.Product, quantity int) {
	quantity = ClampQuantity(product, quantity)
	for i := range s.lines {
		if s.lines[i].Product.ID == product.ID {
			s.lines[i].Product = product
			s.lines[i].Quantity = quantity
			return
		}
	}
	s.lines = append(s.lines, domain.CartLine{Product: product, Quantity: quantity})
}

// UpdateQuantity sets the quantity of an existing line; unknown products are ignored.
func (s *Store) UpdateQuantity(productID string, quantity int) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	changed := false
	for i := range s.lines {
		if s.lines[i].Product.ID == productID {
			s.lines[i].Quantity = ClampQuantity(s.lines[i].Product, quantity)
			changed = true
			break
		}
	}
	snapshot := s.copyLines()
	s.mu.Unlock()

	if changed {
		s.notify(snapshot)
	}
}

// Remove deletes the line of productID if present.
func (s *Store) Remove(productID string) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	changed := false
	for i := range s.lines {
		if s.lines[i].Product.ID == productID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			changed = true
			break
		}
	}
	snapshot := s.copyLines()
	s.mu.Unlock()

	if changed {
		s.notify(snapshot)
	}
}

func (s *Store) Clear() {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	s.lines = nil
	s.mu.Unlock()

	s.notify(nil)
}

// RemoveLines deletes the lines equal to one of ordered, matching product and
// quantity. Lines added or re-quantified since ordered was read are kept.
func (s *Store) RemoveLines(ordered []domain.CartLine) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	done := make(map[string]int, len(ordered))
	for _, l := range ordered {
		done[l.Product.ID] = l.Quantity
	}

	s.mu.Lock()
	kept := s.lines[:0:0]
	for _, l := range s.lines {
		if q, ok := done[l.Product.ID]; ok && q == l.Quantity {
			continue
		}
		kept = append(kept, l)
	}
	changed := len(kept) != len(s.lines)
	if len(kept) == 0 {
		kept = nil
	}
	s.lines = kept
	snapshot := s.copyLines()
	s.mu.Unlock()

	if changed {
		s.notify(snapshot)
	}
}

func (s *Store) Lines() []domain.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyLines()
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lines)
}

func (s *Store) TotalItems() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return totalItems(s.lines)
}

func (s *Store) TotalAmount() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return totalAmount(s.lines)
}

// Snapshot returns lines and totals computed under a single read lock.
func (s *Store) Snapshot(sessionID string) domain.CartSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.CartSnapshot{
		SessionID:   sessionID,
		Lines:       s.copyLines(),
		TotalItems:  totalItems(s.lines),
		TotalAmount: totalAmount(s.lines),
	}
}

// Subscribe registers fn to receive the lines after every mutation. The returned
// func removes the subscription.
func (s *Store) Subscribe(fn func([]domain.CartLine)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) notify(lines []domain.CartLine) {
	s.mu.RLock()
	subs := make([]func([]domain.CartLine), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.RUnlock()

	for _, fn := range subs {
		fn(lines)
	}
}

func (s *Store) copyLines() []domain.CartLine {
	if len(s.lines) == 0 {
		return nil
	}
	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

func totalItems(lines []domain.CartLine) int {
	n := 0
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}

func totalAmount(lines []domain.CartLine) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.LineTotal())
	}
	return sum
}
