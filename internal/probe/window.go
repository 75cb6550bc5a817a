// Package probe finds the window under the mouse pointer by walking the
// server's window tree, and resolves a display name for it.
//
// The package talks to the window server only through the Session
// interfaces below; internal/x11 supplies the real implementation.
package probe

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wotw/pointerwin/internal/geometry"
)

// WindowID identifies a server-side window. The server owns its lifetime.
type WindowID uint32

func (w WindowID) String() string {
	return fmt.Sprintf("0x%x", uint32(w))
}

// ParseWindowID accepts decimal or 0x-prefixed hexadecimal ids, the two forms
// xprop and xwininfo print.
func ParseWindowID(s string) (WindowID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty window id", ErrInvalidInput)
	}
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: window id %q: %v", ErrInvalidInput, s, err)
	}
	return WindowID(v), nil
}

// MapState is a window's visibility classification at query time.
type MapState uint8

const (
	Unmapped   MapState = 0
	Unviewable MapState = 1
	Viewable   MapState = 2
)

func (m MapState) String() string {
	switch m {
	case Unmapped:
		return "unmapped"
	case Unviewable:
		return "unviewable"
	case Viewable:
		return "viewable"
	default:
		return fmt.Sprintf("mapstate(%d)", uint8(m))
	}
}

// Attributes is the subset of window attributes the search consumes.
type Attributes struct {
	MapState         MapState
	OverrideRedirect bool
	InputOnly        bool
}

// Viewable reports whether the window is mapped with all ancestors mapped.
func (a Attributes) Viewable() bool {
	return a.MapState == Viewable
}

// Querier is the read-only window tree view the search needs. Every call is
// a blocking round-trip and may fail with a *QueryError.
type Querier interface {
	// PointerPosition returns the pointer relative to the screen root and
	// relative to the given window.
	PointerPosition(relativeTo WindowID) (root, window geometry.Point, err error)
	// WindowRegion returns the window rectangle in its parent's coordinates.
	WindowRegion(w WindowID) (geometry.Region, error)
	WindowAttributes(w WindowID) (Attributes, error)
	// Children lists direct children in server order (bottom-most first for
	// X11). An empty slice means a leaf.
	Children(w WindowID) ([]WindowID, error)
}

// Namer fetches the two name candidates for a window. An absent property is
// the empty string, not an error.
type Namer interface {
	WindowName(w WindowID) (string, error)
	IconName(w WindowID) (string, error)
}

// Session is an open server connection as seen by the Resolver.
type Session interface {
	Querier
	Namer
	RootWindow() WindowID
}
