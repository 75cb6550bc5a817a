package x11

import (
	"errors"
	"strings"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/wotw/pointerwin/internal/geometry"
	"github.com/wotw/pointerwin/internal/probe"
)

var errOtherScreen = errors.New("pointer is on another screen")

// PointerPosition queries the pointer relative to the root and to relativeTo.
func (c *Connection) PointerPosition(relativeTo probe.WindowID) (geometry.Point, geometry.Point, error) {
	win := xproto.Window(relativeTo)
	reply, err := xproto.QueryPointer(c.XUtil.Conn(), win).Reply()
	if err != nil {
		return geometry.Point{}, geometry.Point{}, c.queryError("QueryPointer", win, err)
	}
	root, window, ok := pointerFromReply(reply)
	if !ok {
		return geometry.Point{}, geometry.Point{}, c.queryError("QueryPointer", win, errOtherScreen)
	}
	return root, window, nil
}

// WindowRegion returns the window geometry relative to its parent.
func (c *Connection) WindowRegion(w probe.WindowID) (geometry.Region, error) {
	win := xproto.Window(w)
	reply, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(win)).Reply()
	if err != nil {
		return geometry.Region{}, c.queryError("GetGeometry", win, err)
	}
	return regionFromGeometry(reply), nil
}

// WindowAttributes returns the window's map state and class.
func (c *Connection) WindowAttributes(w probe.WindowID) (probe.Attributes, error) {
	win := xproto.Window(w)
	reply, err := xproto.GetWindowAttributes(c.XUtil.Conn(), win).Reply()
	if err != nil {
		return probe.Attributes{}, c.queryError("GetWindowAttributes", win, err)
	}
	return attributesFromReply(reply), nil
}

// Children returns the window's children in stacking order, bottom-most first.
func (c *Connection) Children(w probe.WindowID) ([]probe.WindowID, error) {
	win := xproto.Window(w)
	reply, err := xproto.QueryTree(c.XUtil.Conn(), win).Reply()
	if err != nil {
		return nil, c.queryError("QueryTree", win, err)
	}
	children := make([]probe.WindowID, len(reply.Children))
	for i, child := range reply.Children {
		children[i] = probe.WindowID(child)
	}
	return children, nil
}

// WindowName returns WM_NAME, or "" when the window has none.
func (c *Connection) WindowName(w probe.WindowID) (string, error) {
	return c.textProperty("WM_NAME", xproto.Window(w), xproto.AtomWmName)
}

// IconName returns WM_ICON_NAME, or "" when the window has none.
func (c *Connection) IconName(w probe.WindowID) (string, error) {
	return c.textProperty("WM_ICON_NAME", xproto.Window(w), xproto.AtomWmIconName)
}

func (c *Connection) textProperty(op string, win xproto.Window, atom xproto.Atom) (string, error) {
	reply, err := xproto.GetProperty(c.XUtil.Conn(), false, win, atom,
		xproto.GetPropertyTypeAny, 0, (1<<32)-1).Reply()
	if err != nil {
		return "", c.queryError(op, win, err)
	}
	return propertyString(reply), nil
}

func pointerFromReply(reply *xproto.QueryPointerReply) (root, window geometry.Point, ok bool) {
	root = geometry.NewPoint(int(reply.RootX), int(reply.RootY))
	if !reply.SameScreen {
		return root, geometry.Point{}, false
	}
	return root, geometry.NewPoint(int(reply.WinX), int(reply.WinY)), true
}

func regionFromGeometry(reply *xproto.GetGeometryReply) geometry.Region {
	return geometry.NewRegion(
		geometry.NewPoint(int(reply.X), int(reply.Y)),
		int(reply.Width),
		int(reply.Height),
	)
}

func attributesFromReply(reply *xproto.GetWindowAttributesReply) probe.Attributes {
	return probe.Attributes{
		MapState:         probe.MapState(reply.MapState),
		OverrideRedirect: reply.OverrideRedirect,
		InputOnly:        reply.Class == xproto.WindowClassInputOnly,
	}
}

// propertyString decodes an 8-bit text property. Format 0 means the property
// does not exist.
func propertyString(reply *xproto.GetPropertyReply) string {
	if reply == nil || reply.Format != 8 {
		return ""
	}
	return strings.TrimRight(string(reply.Value), "\x00")
}
