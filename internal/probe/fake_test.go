package probe

import (
	"errors"
	"fmt"

	"github.com/wotw/pointerwin/internal/geometry"
)

// fakeNode is one window of a fakeServer tree. Region is in the parent's
// coordinate space, as GetGeometry reports it.
type fakeNode struct {
	parent   WindowID
	region   geometry.Region
	state    MapState
	children []WindowID
	wmName   string
	iconName string
}

// fakeServer is an in-memory window tree with a fixed pointer position.
type fakeServer struct {
	root    WindowID
	pointer geometry.Point // relative to root
	nodes   map[WindowID]*fakeNode
	calls   []string

	failOp     string
	failWindow WindowID
}

func newFakeServer(root WindowID, width, height int) *fakeServer {
	return &fakeServer{
		root: root,
		nodes: map[WindowID]*fakeNode{
			root: {region: geometry.NewRegion(geometry.Point{}, width, height), state: Viewable},
		},
	}
}

func (s *fakeServer) add(parent, id WindowID, x, y, w, h int, state MapState) *fakeServer {
	s.nodes[id] = &fakeNode{
		parent: parent,
		region: geometry.NewRegion(geometry.NewPoint(x, y), w, h),
		state:  state,
	}
	p := s.nodes[parent]
	p.children = append(p.children, id)
	return s
}

func (s *fakeServer) named(id WindowID, wmName, iconName string) *fakeServer {
	s.nodes[id].wmName = wmName
	s.nodes[id].iconName = iconName
	return s
}

func (s *fakeServer) failOn(op string, w WindowID) *fakeServer {
	s.failOp = op
	s.failWindow = w
	return s
}

func (s *fakeServer) record(op string, w WindowID) error {
	s.calls = append(s.calls, fmt.Sprintf("%s:%d", op, w))
	if s.failOp == op && s.failWindow == w {
		return &QueryError{Op: op, Window: w, Display: ":99", Err: errors.New("bad window")}
	}
	if _, ok := s.nodes[w]; !ok {
		return &QueryError{Op: op, Window: w, Display: ":99", Err: errors.New("no such window")}
	}
	return nil
}

// origin returns the window's top-left corner in root coordinates.
func (s *fakeServer) origin(w WindowID) geometry.Point {
	var p geometry.Point
	for w != s.root {
		n := s.nodes[w]
		p = p.Add(n.region.TopLeft.X, n.region.TopLeft.Y)
		w = n.parent
	}
	return p
}

func (s *fakeServer) RootWindow() WindowID { return s.root }

func (s *fakeServer) PointerPosition(relativeTo WindowID) (geometry.Point, geometry.Point, error) {
	if err := s.record("QueryPointer", relativeTo); err != nil {
		return geometry.Point{}, geometry.Point{}, err
	}
	o := s.origin(relativeTo)
	return s.pointer, s.pointer.Add(-o.X, -o.Y), nil
}

func (s *fakeServer) WindowRegion(w WindowID) (geometry.Region, error) {
	if err := s.record("GetGeometry", w); err != nil {
		return geometry.Region{}, err
	}
	return s.nodes[w].region, nil
}

func (s *fakeServer) WindowAttributes(w WindowID) (Attributes, error) {
	if err := s.record("GetWindowAttributes", w); err != nil {
		return Attributes{}, err
	}
	return Attributes{MapState: s.nodes[w].state}, nil
}

func (s *fakeServer) Children(w WindowID) ([]WindowID, error) {
	if err := s.record("QueryTree", w); err != nil {
		return nil, err
	}
	return append([]WindowID(nil), s.nodes[w].children...), nil
}

func (s *fakeServer) WindowName(w WindowID) (string, error) {
	if err := s.record("WM_NAME", w); err != nil {
		return "", err
	}
	return s.nodes[w].wmName, nil
}

func (s *fakeServer) IconName(w WindowID) (string, error) {
	if err := s.record("WM_ICON_NAME", w); err != nil {
		return "", err
	}
	return s.nodes[w].iconName, nil
}

func (s *fakeServer) countOp(op string) int {
	n := 0
	for _, c := range s.calls {
		if len(c) > len(op) && c[:len(op)+1] == op+":" {
			n++
		}
	}
	return n
}
