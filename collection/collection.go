package collection

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-signals/dsp/signal"
)

// Errors returned by Collection methods.
var (
	ErrNotFound         = errors.New("collection: signal not found")
	ErrDuplicateID      = errors.New("collection: duplicate signal id")
	ErrMissingSelection = errors.New("collection: no signal selected")
)

// DefaultHistoryLimit is the number of undo steps a Collection keeps.
const DefaultHistoryLimit = 100

// Collection is an ordered list of signals with one optional selection.
// Every mutation of the list is recorded for undo and redo; selection
// changes are not.
type Collection struct {
	history  *History[[]signal.Signal]
	selected string
	logger   *zap.Logger
	notify   Notifier
}

// Option configures a Collection.
type Option func(*Collection)

// WithLogger sets the logger used for mutation events.
func WithLogger(l *zap.Logger) Option {
	return func(c *Collection) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithNotifier sets a callback that receives a Status for each user-visible
// event.
func WithNotifier(n Notifier) Option {
	return func(c *Collection) { c.notify = n }
}

// WithHistoryLimit caps the number of undo steps. n <= 0 keeps every step.
func WithHistoryLimit(n int) Option {
	return func(c *Collection) { c.history.limit = n }
}

// New returns an empty collection.
func New(opts ...Option) *Collection {
	c := &Collection{
		history: NewHistory[[]signal.Signal](nil, DefaultHistoryLimit),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Collection) emit(s Status) {
	if c.notify != nil {
		c.notify(s)
	}
}

func (c *Collection) current() []signal.Signal { return c.history.Present() }

func (c *Collection) index(id string) int {
	for i, s := range c.current() {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// Len returns the number of signals.
func (c *Collection) Len() int { return len(c.current()) }

// Signals returns deep copies of all signals in insertion order.
func (c *Collection) Signals() []signal.Signal {
	cur := c.current()
	out := make([]signal.Signal, len(cur))
	for i, s := range cur {
		out[i] = s.Clone()
	}
	return out
}

// Get returns a copy of the signal with id.
func (c *Collection) Get(id string) (signal.Signal, error) {
	i := c.index(id)
	if i < 0 {
		return signal.Signal{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return c.current()[i].Clone(), nil
}

// Add appends sig after validating it. The first signal added to a
// collection without a selection becomes selected.
func (c *Collection) Add(sig signal.Signal) error {
	if err := sig.Validate(); err != nil {
		return fmt.Errorf("collection: add %q: %w", sig.Name, err)
	}
	if c.index(sig.ID) >= 0 {
		return fmt.Errorf("%w: %q", ErrDuplicateID, sig.ID)
	}

	cur := c.current()
	next := make([]signal.Signal, len(cur), len(cur)+1)
	copy(next, cur)
	c.history.Push(append(next, sig.Clone()))

	if c.selected == "" {
		c.selected = sig.ID
	}
	c.logger.Debug("signal added", zap.String("id", sig.ID), zap.String("name", sig.Name))
	c.emit(added(sig.Name))
	return nil
}

// Remove deletes the signal with id. Removing the selected signal selects
// the first remaining one, or nothing if the collection becomes empty.
func (c *Collection) Remove(id string) error {
	i := c.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}

	cur := c.current()
	gone := cur[i]
	next := make([]signal.Signal, 0, len(cur)-1)
	next = append(next, cur[:i]...)
	next = append(next, cur[i+1:]...)
	c.history.Push(next)

	if c.selected == id {
		c.selectFirst()
	}
	c.logger.Debug("signal removed", zap.String("id", id), zap.String("name", gone.Name))
	c.emit(removed(gone.Name))
	return nil
}

// Update applies fn to a copy of the signal with id and stores the result if
// it validates. The ID cannot be changed.
func (c *Collection) Update(id string, fn func(*signal.Signal)) error {
	i := c.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}

	cur := c.current()
	edited := cur[i].Clone()
	fn(&edited)
	edited.ID = id
	if err := edited.Validate(); err != nil {
		return fmt.Errorf("collection: update %q: %w", id, err)
	}

	next := make([]signal.Signal, len(cur))
	copy(next, cur)
	next[i] = edited
	c.history.Push(next)

	c.logger.Debug("signal updated", zap.String("id", id), zap.String("name", edited.Name))
	c.emit(updated(edited.Name))
	return nil
}

// Clear removes every signal and the selection.
func (c *Collection) Clear() {
	c.history.Push(nil)
	c.selected = ""
	c.logger.Debug("collection cleared")
}

// Replace swaps in a whole new list, as after loading a file, and selects
// its first signal. Every signal must validate and IDs must be unique.
func (c *Collection) Replace(signals []signal.Signal) error {
	next := make([]signal.Signal, len(signals))
	seen := make(map[string]struct{}, len(signals))
	for i, s := range signals {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("collection: replace: signal %d: %w", i, err)
		}
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateID, s.ID)
		}
		seen[s.ID] = struct{}{}
		next[i] = s.Clone()
	}

	c.history.Push(next)
	c.selectFirst()
	c.logger.Debug("collection replaced", zap.Int("signals", len(next)))
	return nil
}

// Selected returns a copy of the selected signal.
func (c *Collection) Selected() (signal.Signal, error) {
	if c.selected == "" {
		return signal.Signal{}, ErrMissingSelection
	}
	return c.Get(c.selected)
}

// Select makes id the selected signal.
func (c *Collection) Select(id string) error {
	if c.index(id) < 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	c.selected = id
	return nil
}

func (c *Collection) selectFirst() {
	c.selected = ""
	if cur := c.current(); len(cur) > 0 {
		c.selected = cur[0].ID
	}
}

// CanUndo reports whether Undo has an effect.
func (c *Collection) CanUndo() bool { return c.history.CanUndo() }

// CanRedo reports whether Redo has an effect.
func (c *Collection) CanRedo() bool { return c.history.CanRedo() }

// Undo reverts the last mutation. If the selected signal no longer exists
// afterwards, the first signal becomes selected.
func (c *Collection) Undo() bool {
	if !c.history.Undo() {
		return false
	}
	c.reconcileSelection()
	return true
}

// Redo re-applies the last undone mutation.
func (c *Collection) Redo() bool {
	if !c.history.Redo() {
		return false
	}
	c.reconcileSelection()
	return true
}

func (c *Collection) reconcileSelection() {
	if c.selected == "" || c.index(c.selected) < 0 {
		c.selectFirst()
	}
}
