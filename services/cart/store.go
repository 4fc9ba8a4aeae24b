package cart

import (
	"context"
	"sync"

	"github.com/electromart/storefrontbackend/lib/mylog"
)

// Store is the single source of truth for one basket. It hydrates from the
// snapshot storage once, applies pure transitions under a lock, and saves
// synchronously before a mutation is considered complete.
type Store struct {
	mutex     sync.Mutex
	lines     Lines
	snapshots Snapshots
	logger    mylog.Logger
}

func NewStore(c context.Context, snapshots Snapshots, logger mylog.Logger) *Store {
	lines, found, err := snapshots.Load(c)
	if err != nil {
		logger.Log(c, "", mylog.SeverityWarn, "Error loading basket snapshot, starting empty: %s", err)
		lines = Lines{}
	}
	if !found && lines == nil {
		lines = Lines{}
	}

	return &Store{
		lines:     lines,
		snapshots: snapshots,
		logger:    logger,
	}
}

func (s *Store) AddItem(c context.Context, p Snapshot, quantity int) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.commit(c, s.lines.Add(p, quantity))
}

func (s *Store) RemoveItem(c context.Context, productUID string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.commit(c, s.lines.Remove(productUID))
}

func (s *Store) SetQuantity(c context.Context, productUID string, quantity int) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.commit(c, s.lines.SetQuantity(productUID, quantity))
}

func (s *Store) Clear(c context.Context) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.commit(c, Lines{})
}

// commit makes a transition durable: the snapshot is written before the
// in-memory state moves on, so the durable copy is never more than one
// operation behind.
func (s *Store) commit(c context.Context, next Lines) error {
	err := s.snapshots.Save(c, next)
	if err != nil {
		return err
	}

	s.lines = next
	return nil
}

func (s *Store) Lines() Lines {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	result := make(Lines, len(s.lines))
	copy(result, s.lines)
	return result
}

func (s *Store) TotalItemCount() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.lines.ItemCount()
}

func (s *Store) TotalPrice() float64 {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.lines.TotalPrice()
}

func (s *Store) TotalSavings() float64 {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.lines.TotalSavings()
}
