package probe

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/wotw/pointerwin/internal/geometry"
)

// Stacking says how the server orders a window's children.
type Stacking int

const (
	// BottomToTop: later children are drawn above earlier ones, so the last
	// qualifying child wins. This is what X11 QueryTree reports.
	BottomToTop Stacking = iota
	// TopToBottom: the first qualifying child wins.
	TopToBottom
)

// DefaultStacking is the child-order policy used unless configured.
const DefaultStacking = BottomToTop

func (s Stacking) String() string {
	switch s {
	case BottomToTop:
		return "bottom-to-top"
	case TopToBottom:
		return "top-to-bottom"
	default:
		return fmt.Sprintf("stacking(%d)", int(s))
	}
}

// ParseStacking accepts the names produced by Stacking.String.
func ParseStacking(s string) (Stacking, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "bottom-to-top":
		return BottomToTop, nil
	case "top-to-bottom":
		return TopToBottom, nil
	default:
		return 0, fmt.Errorf("%w: unknown stacking order %q (want bottom-to-top or top-to-bottom)", ErrInvalidInput, s)
	}
}

// Finder searches a window tree for the deepest viewable window containing
// the pointer.
type Finder struct {
	log      zerolog.Logger
	stacking Stacking
}

// NewFinder returns a Finder that logs to log and orders children by stacking.
func NewFinder(log zerolog.Logger, stacking Stacking) *Finder {
	return &Finder{log: log, stacking: stacking}
}

// FindUnderPointer descends from root to the most specific window under the
// pointer. A window whose region holds the pointer but is not viewable is
// skipped together with its subtree. Any query failure aborts the search.
func (f *Finder) FindUnderPointer(q Querier, root WindowID) (WindowID, error) {
	f.log.Trace().Stringer("root", root).Msg("searching for the window under the pointer")

	children, err := q.Children(root)
	if err != nil {
		return 0, err
	}
	f.log.Trace().Stringer("window", root).Int("children", len(children)).Msg("parsed window tree")
	if len(children) == 0 {
		f.log.Debug().Stringer("window", root).Msg("leaf window; returning it")
		return root, nil
	}

	_, pointer, err := q.PointerPosition(root)
	if err != nil {
		return 0, err
	}
	f.log.Trace().Stringer("pointer", pointer).Stringer("relative_to", root).Msg("pointer location")

	best := root
	for _, child := range children {
		ok, err := f.underPointer(q, child, pointer)
		if err != nil {
			return 0, err
		}
		if !ok {
			continue
		}
		if f.stacking == TopToBottom && best != root {
			continue
		}
		best = child
		f.log.Trace().Stringer("window", child).Msg("window might be the target")
	}

	if best == root {
		f.log.Debug().Stringer("window", root).Msg("no other viable children found; returning it")
		return root, nil
	}
	return f.FindUnderPointer(q, best)
}

// underPointer checks containment first and only then pays for the
// attributes round-trip.
func (f *Finder) underPointer(q Querier, w WindowID, pointer geometry.Point) (bool, error) {
	region, err := q.WindowRegion(w)
	if err != nil {
		return false, err
	}
	if !region.Contains(pointer) {
		f.log.Trace().Stringer("window", w).Stringer("region", region).Msg("window does not contain the pointer")
		return false, nil
	}

	attrs, err := q.WindowAttributes(w)
	if err != nil {
		return false, err
	}
	f.log.Trace().Stringer("window", w).Stringer("region", region).Stringer("map_state", attrs.MapState).Msg("window contains the pointer")
	return attrs.Viewable(), nil
}
