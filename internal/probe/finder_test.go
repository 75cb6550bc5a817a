package probe

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wotw/pointerwin/internal/geometry"
)

const root WindowID = 1

func newTestFinder(s Stacking) *Finder {
	return NewFinder(zerolog.Nop(), s)
}

func TestFindUnderPointer_LeafReturnsItselfWithoutQueries(t *testing.T) {
	srv := newFakeServer(root, 100, 100)

	got, err := newTestFinder(DefaultStacking).FindUnderPointer(srv, root)
	require.NoError(t, err)
	assert.Equal(t, root, got)
	assert.Equal(t, []string{"QueryTree:1"}, srv.calls)
}

func TestFindUnderPointer_PicksLastQualifyingChild(t *testing.T) {
	srv := newFakeServer(root, 100, 100).
		add(root, 10, 0, 0, 50, 50, Viewable).
		add(root, 20, 10, 10, 50, 50, Viewable)
	srv.pointer = geometry.NewPoint(20, 20)

	got, err := newTestFinder(BottomToTop).FindUnderPointer(srv, root)
	require.NoError(t, err)
	assert.Equal(t, WindowID(20), got)
}

func TestFindUnderPointer_StackingOrders(t *testing.T) {
	tests := []struct {
		name     string
		stacking Stacking
		want     WindowID
	}{
		{"bottom-to-top keeps the last match", BottomToTop, 30},
		{"top-to-bottom keeps the first match", TopToBottom, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newFakeServer(root, 100, 100).
				add(root, 10, 0, 0, 50, 50, Viewable).
				add(root, 20, 60, 60, 10, 10, Viewable).
				add(root, 30, 5, 5, 50, 50, Viewable)
			srv.pointer = geometry.NewPoint(25, 25)

			got, err := newTestFinder(tt.stacking).FindUnderPointer(srv, root)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindUnderPointer_ScansEveryChild(t *testing.T) {
	srv := newFakeServer(root, 100, 100).
		add(root, 10, 0, 0, 50, 50, Viewable).
		add(root, 20, 0, 0, 50, 50, Viewable).
		add(root, 30, 0, 0, 50, 50, Viewable)
	srv.pointer = geometry.NewPoint(1, 1)

	_, err := newTestFinder(TopToBottom).FindUnderPointer(srv, root)
	require.NoError(t, err)
	assert.Equal(t, 3, srv.countOp("GetGeometry"))
}

func TestFindUnderPointer_SkipsNonViewableContainers(t *testing.T) {
	for _, state := range []MapState{Unmapped, Unviewable} {
		t.Run(state.String(), func(t *testing.T) {
			srv := newFakeServer(root, 100, 100).
				add(root, 10, 0, 0, 50, 50, state).
				add(10, 11, 0, 0, 10, 10, Viewable)
			srv.pointer = geometry.NewPoint(5, 5)

			got, err := newTestFinder(DefaultStacking).FindUnderPointer(srv, root)
			require.NoError(t, err)
			assert.Equal(t, root, got)
			assert.NotContains(t, srv.calls, "QueryTree:10", "pruned subtree must not be walked")
		})
	}
}

func TestFindUnderPointer_AttributesOnlyForContainingChildren(t *testing.T) {
	srv := newFakeServer(root, 100, 100).
		add(root, 10, 0, 0, 10, 10, Viewable).
		add(root, 20, 50, 50, 10, 10, Viewable)
	srv.pointer = geometry.NewPoint(55, 55)

	got, err := newTestFinder(DefaultStacking).FindUnderPointer(srv, root)
	require.NoError(t, err)
	assert.Equal(t, WindowID(20), got)
	assert.NotContains(t, srv.calls, "GetWindowAttributes:10")
	assert.Contains(t, srv.calls, "GetWindowAttributes:20")
}

func TestFindUnderPointer_PointerOutsideEveryChild(t *testing.T) {
	srv := newFakeServer(root, 100, 100).
		add(root, 10, 0, 0, 10, 10, Viewable)
	srv.pointer = geometry.NewPoint(90, 90)

	got, err := newTestFinder(DefaultStacking).FindUnderPointer(srv, root)
	require.NoError(t, err)
	assert.Equal(t, root, got)
}

func TestFindUnderPointer_RecursiveNarrowing(t *testing.T) {
	srv := newFakeServer(root, 200, 200).
		add(root, 10, 20, 20, 100, 100, Viewable).
		add(10, 11, 10, 10, 30, 30, Viewable).
		add(10, 12, 60, 60, 30, 30, Viewable)
	srv.pointer = geometry.NewPoint(40, 40) // (20,20) inside 10, inside 11

	got, err := newTestFinder(DefaultStacking).FindUnderPointer(srv, root)
	require.NoError(t, err)
	assert.Equal(t, WindowID(11), got)
	assert.Contains(t, srv.calls, "QueryPointer:10", "pointer must be re-read relative to each level")
}

func TestFindUnderPointer_BoundaryPixelCounts(t *testing.T) {
	srv := newFakeServer(root, 100, 100).
		add(root, 10, 0, 0, 10, 10, Viewable)
	srv.pointer = geometry.NewPoint(10, 10)

	got, err := newTestFinder(DefaultStacking).FindUnderPointer(srv, root)
	require.NoError(t, err)
	assert.Equal(t, WindowID(10), got)
}

func TestFindUnderPointer_QueryFailureAborts(t *testing.T) {
	tests := []struct {
		op     string
		window WindowID
	}{
		{"QueryTree", root},
		{"QueryPointer", root},
		{"GetGeometry", 20},
		{"GetWindowAttributes", 10},
		{"QueryTree", 10},
	}
	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			srv := newFakeServer(root, 100, 100).
				add(root, 10, 0, 0, 50, 50, Viewable).
				add(root, 20, 60, 60, 10, 10, Viewable).
				failOn(tt.op, tt.window)
			srv.pointer = geometry.NewPoint(5, 5)

			got, err := newTestFinder(DefaultStacking).FindUnderPointer(srv, root)
			require.Error(t, err)
			assert.Zero(t, got)
			assert.True(t, errors.Is(err, ErrQueryFailed))

			var qe *QueryError
			require.True(t, errors.As(err, &qe))
			assert.Equal(t, tt.op, qe.Op)
			assert.Equal(t, tt.window, qe.Window)
		})
	}
}

func TestParseStacking(t *testing.T) {
	for _, s := range []Stacking{BottomToTop, TopToBottom} {
		got, err := ParseStacking(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	got, err := ParseStacking("")
	require.NoError(t, err)
	assert.Equal(t, DefaultStacking, got)

	_, err = ParseStacking("random")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
