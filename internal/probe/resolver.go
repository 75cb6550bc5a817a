package probe

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Identity is the resolved window under the pointer.
type Identity struct {
	Window   WindowID `json:"window"`
	Root     WindowID `json:"root"`
	Name     string   `json:"name"`
	WMName   string   `json:"wm_name"`
	IconName string   `json:"icon_name"`
}

// Resolver wires the search and name choice into one lookup. It borrows the
// session and never closes it.
type Resolver struct {
	finder *Finder
	log    zerolog.Logger
	root   WindowID
}

// NewResolver returns a Resolver that searches from the session's root.
func NewResolver(finder *Finder, log zerolog.Logger) *Resolver {
	return &Resolver{finder: finder, log: log}
}

// WithRoot returns a copy of r that starts its search at root instead of the
// session's root window. A zero id restores the default.
func (r *Resolver) WithRoot(root WindowID) *Resolver {
	cp := *r
	cp.root = root
	return &cp
}

// Resolve finds the window under the pointer and names it.
func (r *Resolver) Resolve(s Session) (Identity, error) {
	root := r.root
	if root == 0 {
		root = s.RootWindow()
	}

	r.log.Info().Stringer("root", root).Msg("beginning search")
	window, err := r.finder.FindUnderPointer(s, root)
	if err != nil {
		return Identity{}, fmt.Errorf("find window under pointer: %w", err)
	}
	r.log.Info().Stringer("window", window).Msg("window candidate found")

	wmName, err := s.WindowName(window)
	if err != nil {
		return Identity{}, fmt.Errorf("name window %s: %w", window, err)
	}
	iconName, err := s.IconName(window)
	if err != nil {
		return Identity{}, fmt.Errorf("name window %s: %w", window, err)
	}
	r.log.Trace().Str("wm_name", wmName).Str("icon_name", iconName).Msg("name candidates")

	name := ChooseName(wmName, iconName)
	r.log.Info().Str("name", name).Msg("picked name")

	return Identity{
		Window:   window,
		Root:     root,
		Name:     name,
		WMName:   wmName,
		IconName: iconName,
	}, nil
}
