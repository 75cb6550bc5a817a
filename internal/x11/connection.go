// Package x11 implements the probe session over an X11 connection using
// xgb and xgbutil.
package x11

import (
	"fmt"
	"os"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"

	"github.com/wotw/pointerwin/internal/probe"
)

// Connection manages the X11 connection and the default screen's root window.
// It is not safe for concurrent use.
type Connection struct {
	XUtil   *xgbutil.XUtil
	Root    xproto.Window
	display string
}

var _ probe.Session = (*Connection)(nil)

// NewConnection connects to display, or to $DISPLAY when display is empty.
func NewConnection(display string) (*Connection, error) {
	var (
		xu  *xgbutil.XUtil
		err error
	)
	if display == "" {
		xu, err = xgbutil.NewConn()
		display = os.Getenv("DISPLAY")
	} else {
		xu, err = xgbutil.NewConnDisplay(display)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X display %q: %w", display, err)
	}

	return &Connection{
		XUtil:   xu,
		Root:    xu.RootWin(),
		display: display,
	}, nil
}

// Display returns the display name this connection was opened against.
func (c *Connection) Display() string {
	return c.display
}

// RootWindow returns the default screen's root window.
func (c *Connection) RootWindow() probe.WindowID {
	return probe.WindowID(c.Root)
}

// Close cleanly disconnects from the X11 server
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}

func (c *Connection) queryError(op string, w xproto.Window, err error) error {
	return &probe.QueryError{
		Op:      op,
		Window:  probe.WindowID(w),
		Display: c.display,
		Err:     err,
	}
}
