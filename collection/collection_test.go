package collection_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/cwbudde/algo-signals/collection"
	"github.com/cwbudde/algo-signals/dsp/signal"
	"github.com/cwbudde/algo-signals/internal/testutil"
)

// CollectionSuite exercises mutations, selection and history together.
type CollectionSuite struct {
	suite.Suite
	c        *collection.Collection
	statuses []collection.Status
}

func (s *CollectionSuite) SetupTest() {
	s.statuses = nil
	s.c = collection.New(collection.WithNotifier(func(st collection.Status) {
		s.statuses = append(s.statuses, st)
	}))
}

func (s *CollectionSuite) add(sigs ...signal.Signal) {
	for _, sig := range sigs {
		require.NoError(s.T(), s.c.Add(sig))
	}
}

func (s *CollectionSuite) ids() []string {
	var out []string
	for _, sig := range s.c.Signals() {
		out = append(out, sig.ID)
	}
	return out
}

func (s *CollectionSuite) selectedID() string {
	sel, err := s.c.Selected()
	if err != nil {
		return ""
	}
	return sel.ID
}

// TestFirstAddSelects: the first signal added becomes selected, later ones do not.
func (s *CollectionSuite) TestFirstAddSelects() {
	_, err := s.c.Selected()
	require.ErrorIs(s.T(), err, collection.ErrMissingSelection)

	lib := testutil.Library()
	s.add(lib[0], lib[1])
	require.Equal(s.T(), "sine", s.selectedID())
	require.Equal(s.T(), []string{"sine", "cosine"}, s.ids())
	require.Len(s.T(), s.statuses, 2)
	require.Equal(s.T(), collection.Success, s.statuses[0].Level)
	require.Contains(s.T(), s.statuses[0].Message, `"sine"`)
}

// TestAddRejects invalid and duplicate records.
func (s *CollectionSuite) TestAddRejects() {
	bad := testutil.Continuous("bad", "t", 0, 0, 1)
	require.ErrorIs(s.T(), s.c.Add(bad), signal.ErrInvalidRate)

	s.add(testutil.Library()[0])
	require.ErrorIs(s.T(), s.c.Add(testutil.Library()[0]), collection.ErrDuplicateID)
	require.Equal(s.T(), 1, s.c.Len())
}

// TestRemoveSelectedSelectsFirstRemaining.
func (s *CollectionSuite) TestRemoveSelectedSelectsFirstRemaining() {
	lib := testutil.Library()
	s.add(lib[0], lib[1], lib[2])
	require.NoError(s.T(), s.c.Select("cosine"))

	require.NoError(s.T(), s.c.Remove("cosine"))
	require.Equal(s.T(), "sine", s.selectedID())
	require.Equal(s.T(), collection.Info, s.statuses[len(s.statuses)-1].Level)

	require.NoError(s.T(), s.c.Remove("ramp"))
	require.Equal(s.T(), "sine", s.selectedID(), "removing an unselected signal keeps the selection")

	require.NoError(s.T(), s.c.Remove("sine"))
	require.Equal(s.T(), "", s.selectedID())

	require.ErrorIs(s.T(), s.c.Remove("sine"), collection.ErrNotFound)
	require.ErrorIs(s.T(), s.c.Select("sine"), collection.ErrNotFound)
}

// TestUpdate edits a copy, keeps the ID and validates.
func (s *CollectionSuite) TestUpdate() {
	s.add(testutil.Library()[0])

	require.NoError(s.T(), s.c.Update("sine", func(sig *signal.Signal) {
		sig.Expression = "2*sin(2*pi*t)"
		sig.ID = "hijacked"
	}))
	got, err := s.c.Get("sine")
	require.NoError(s.T(), err)
	require.Equal(s.T(), "2*sin(2*pi*t)", got.Expression)

	err = s.c.Update("sine", func(sig *signal.Signal) { sig.Type = "analog" })
	require.ErrorIs(s.T(), err, signal.ErrInvalidType)
	got, _ = s.c.Get("sine")
	require.Equal(s.T(), signal.Continuous, got.Type, "failed update must not apply")

	require.ErrorIs(s.T(), s.c.Update("nope", func(*signal.Signal) {}), collection.ErrNotFound)
}

// TestReturnedSignalsAreCopies: callers cannot mutate stored state.
func (s *CollectionSuite) TestReturnedSignalsAreCopies() {
	s.add(testutil.Library()[3])
	list := s.c.Signals()
	list[0].Points[0] = 99
	list[0].Name = "changed"

	got, err := s.c.Get("picked")
	require.NoError(s.T(), err)
	require.Equal(s.T(), 0.0, got.Points[0])
	require.Equal(s.T(), "picked", got.Name)
}

// TestUndoRedo walks the history of add, update and remove.
func (s *CollectionSuite) TestUndoRedo() {
	require.False(s.T(), s.c.CanUndo())
	require.False(s.T(), s.c.Undo())

	lib := testutil.Library()
	s.add(lib[0], lib[1])
	require.NoError(s.T(), s.c.Update("cosine", func(sig *signal.Signal) { sig.Name = "cos" }))
	require.NoError(s.T(), s.c.Remove("sine"))
	require.Equal(s.T(), "cosine", s.selectedID())

	require.True(s.T(), s.c.Undo())
	require.Equal(s.T(), []string{"sine", "cosine"}, s.ids())
	require.Equal(s.T(), "cosine", s.selectedID(), "existing selection survives undo")

	require.True(s.T(), s.c.Undo())
	got, _ := s.c.Get("cosine")
	require.Equal(s.T(), "cosine", got.Name)
	require.True(s.T(), s.c.CanRedo())

	require.True(s.T(), s.c.Redo())
	got, _ = s.c.Get("cosine")
	require.Equal(s.T(), "cos", got.Name)

	// A new mutation drops the redo branch.
	s.add(lib[2])
	require.False(s.T(), s.c.CanRedo())
	require.False(s.T(), s.c.Redo())

	for s.c.Undo() {
	}
	require.Equal(s.T(), 0, s.c.Len())
	require.Equal(s.T(), "", s.selectedID())

	require.True(s.T(), s.c.Redo())
	require.Equal(s.T(), "sine", s.selectedID(), "selection follows the restored list")
}

// TestClearAndReplace.
func (s *CollectionSuite) TestClearAndReplace() {
	lib := testutil.Library()
	s.add(lib[0])
	s.c.Clear()
	require.Equal(s.T(), 0, s.c.Len())
	require.Equal(s.T(), "", s.selectedID())
	require.True(s.T(), s.c.Undo())
	require.Equal(s.T(), 1, s.c.Len())

	require.NoError(s.T(), s.c.Replace(lib[2:]))
	require.Equal(s.T(), []string{"ramp", "picked", "reciprocal"}, s.ids())
	require.Equal(s.T(), "ramp", s.selectedID())

	dup := []signal.Signal{lib[0], lib[0]}
	require.ErrorIs(s.T(), s.c.Replace(dup), collection.ErrDuplicateID)
	require.Equal(s.T(), 3, s.c.Len(), "failed replace leaves the collection unchanged")
}

func TestCollectionSuite(t *testing.T) {
	suite.Run(t, new(CollectionSuite))
}

func TestHistoryLimit(t *testing.T) {
	h := collection.NewHistory(0, 2)
	for i := 1; i <= 5; i++ {
		h.Push(i)
	}
	require.True(t, h.Undo())
	require.True(t, h.Undo())
	require.False(t, h.Undo())
	require.Equal(t, 3, h.Present())
	require.True(t, h.Redo())
	require.Equal(t, 4, h.Present())
}
