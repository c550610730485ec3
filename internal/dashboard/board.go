// Package dashboard holds the dashboard's local UI state: recommendation
// lifecycle, navigation, and the sample data shown on first render.
// Nothing here talks to the API or persists.
package dashboard

import (
	"errors"
	"fmt"

	"github.com/cloudtrim/cloudtrim/internal/model"
)

var (
	// ErrUnknownRecommendation is returned for ids the board was not seeded with.
	ErrUnknownRecommendation = errors.New("unknown recommendation")
	// ErrInvalidTransition is returned when a status change is not allowed
	// from the current status.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Board tracks recommendation statuses keyed by id.
// It is owned by a single UI loop and is not safe for concurrent use.
type Board struct {
	order  []string
	status map[string]model.RecommendationStatus
}

// NewBoard seeds every id as pending. Duplicate ids are kept once.
func NewBoard(ids ...string) *Board {
	b := &Board{status: make(map[string]model.RecommendationStatus, len(ids))}
	for _, id := range ids {
		if _, ok := b.status[id]; ok {
			continue
		}
		b.order = append(b.order, id)
		b.status[id] = model.StatusPending
	}
	return b
}

// NewBoardFrom seeds a board from recommendation records. Their Status
// fields are ignored.
func NewBoardFrom(recs []model.Recommendation) *Board {
	ids := make([]string, len(recs))
	for i, r := range recs {
		ids[i] = r.ID
	}
	return NewBoard(ids...)
}

// Status returns the current status of id.
func (b *Board) Status(id string) (model.RecommendationStatus, error) {
	st, ok := b.status[id]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownRecommendation, id)
	}
	return st, nil
}

// Apply moves a pending recommendation to applied.
func (b *Board) Apply(id string) error {
	return b.transition(id, model.StatusPending, model.StatusApplied)
}

// Rollback moves an applied recommendation to rolled_back.
func (b *Board) Rollback(id string) error {
	return b.transition(id, model.StatusApplied, model.StatusRolledBack)
}

func (b *Board) transition(id string, from, to model.RecommendationStatus) error {
	cur, err := b.Status(id)
	if err != nil {
		return err
	}
	if cur != from {
		return fmt.Errorf("%w: %s from %s to %s", ErrInvalidTransition, id, cur, to)
	}
	b.status[id] = to
	return nil
}

// AppliedCount is the number of recommendations currently applied.
func (b *Board) AppliedCount() int {
	n := 0
	for _, st := range b.status {
		if st == model.StatusApplied {
			n++
		}
	}
	return n
}

// Entry is one row of the board.
type Entry struct {
	ID     string
	Status model.RecommendationStatus
}

// Entries lists the board in seeding order.
func (b *Board) Entries() []Entry {
	out := make([]Entry, len(b.order))
	for i, id := range b.order {
		out[i] = Entry{ID: id, Status: b.status[id]}
	}
	return out
}
