package syllabus

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/prepiz/internal/store"
)

// ErrUnknownItem is returned for item IDs that are not in the syllabus.
var ErrUnknownItem = errors.New("syllabus: unknown item")

// Location names the branch an item belongs to.
type Location struct {
	Subject  string
	Unit     string
	SubTopic string
}

type itemRef struct {
	subject, unit, subTopic, item int
}

// Tracker joins the static syllabus tree with persisted completion state.
type Tracker struct {
	mu       sync.RWMutex
	subjects []Subject
	index    map[string]itemRef

	tracking store.TrackingRepo
	activity store.ActivityRepo
	logger   *zap.Logger
	now      func() time.Time
}

// NewTracker indexes subjects. Call Sync before reading completion state.
func NewTracker(subjects []Subject, tracking store.TrackingRepo, activity store.ActivityRepo, logger *zap.Logger) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	t := &Tracker{
		subjects: cloneSubjects(subjects),
		index:    make(map[string]itemRef),
		tracking: tracking,
		activity: activity,
		logger:   logger.Named("syllabus"),
		now:      time.Now,
	}
	for si := range t.subjects {
		for ui, u := range t.subjects[si].Units {
			for ti, st := range u.SubTopics {
				for ii, it := range st.Items {
					t.index[it.ID] = itemRef{si, ui, ti, ii}
				}
			}
		}
	}
	return t
}

// Sync registers every item with the tracking store and loads persisted
// completion flags into the tree.
func (t *Tracker) Sync(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	var records []store.TrackingRecord
	for si := range t.subjects {
		s := &t.subjects[si]
		walk(s, func(u *Unit, st *SubTopic, it *Item) {
			status := store.StatusNotStarted
			if it.Completed {
				status = store.StatusCompleted
			}
			records = append(records, store.TrackingRecord{
				ItemID:    it.ID,
				Subject:   s.Name,
				Unit:      u.Name,
				SubTopic:  st.Name,
				Name:      it.Name,
				Status:    status,
				UpdatedAt: now,
			})
		})
	}
	if err := t.tracking.Seed(ctx, records); err != nil {
		return fmt.Errorf("seed tracking items: %w", err)
	}

	statuses, err := t.tracking.Statuses(ctx)
	if err != nil {
		return fmt.Errorf("load tracking statuses: %w", err)
	}
	for id, ref := range t.index {
		t.item(ref).Completed = statuses[id] == store.StatusCompleted
	}
	t.logger.Debug("syllabus synced", zap.Int("items", len(t.index)))
	return nil
}

// Subjects returns a copy of the tree with current completion flags.
func (t *Tracker) Subjects() []Subject {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return cloneSubjects(t.subjects)
}

// Subject looks a subject up by name, ignoring case.
func (t *Tracker) Subject(name string) (Subject, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, s := range t.subjects {
		if strings.EqualFold(s.Name, name) {
			return cloneSubjects([]Subject{s})[0], true
		}
	}
	return Subject{}, false
}

// Find returns an item and its location.
func (t *Tracker) Find(itemID string) (Item, Location, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	ref, ok := t.index[itemID]
	if !ok {
		return Item{}, Location{}, false
	}
	return *t.item(ref), t.location(ref), true
}

// SetCompleted persists the completion flag of one item and logs it to the
// activity feed.
func (t *Tracker) SetCompleted(ctx context.Context, itemID string, done bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	ref, ok := t.index[itemID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownItem, itemID)
	}
	status := store.StatusInProgress
	if done {
		status = store.StatusCompleted
	}
	now := t.now()
	if err := t.tracking.SetStatus(ctx, itemID, status, now); err != nil {
		return fmt.Errorf("set status of %s: %w", itemID, err)
	}

	it := t.item(ref)
	it.Completed = done
	verb := "Reopened"
	if done {
		verb = "Completed"
	}
	desc := fmt.Sprintf("%s %s (%s)", verb, it.Name, t.subjects[ref.subject].Name)
	if err := t.activity.Append(ctx, "syllabus_update", desc, now); err != nil {
		t.logger.Warn("append activity", zap.String("item", itemID), zap.Error(err))
	}
	return nil
}

// Totals returns completed and total item counts across all subjects.
func (t *Tracker) Totals() (completed, total int) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, s := range t.subjects {
		completed += s.CompletedItems()
		total += s.TotalItems()
	}
	return completed, total
}

func (t *Tracker) item(ref itemRef) *Item {
	return &t.subjects[ref.subject].Units[ref.unit].SubTopics[ref.subTopic].Items[ref.item]
}

func (t *Tracker) location(ref itemRef) Location {
	s := t.subjects[ref.subject]
	u := s.Units[ref.unit]
	return Location{Subject: s.Name, Unit: u.Name, SubTopic: u.SubTopics[ref.subTopic].Name}
}

func cloneSubjects(in []Subject) []Subject {
	out := make([]Subject, len(in))
	for si, s := range in {
		s.Units = append([]Unit(nil), s.Units...)
		for ui, u := range s.Units {
			u.SubTopics = append([]SubTopic(nil), u.SubTopics...)
			for ti, st := range u.SubTopics {
				st.Items = append([]Item(nil), st.Items...)
				u.SubTopics[ti] = st
			}
			s.Units[ui] = u
		}
		out[si] = s
	}
	return out
}
