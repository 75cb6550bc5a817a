package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"

	"github.com/wotw/pointerwin/internal/probe"
)

// StickyDesktop is reported for windows shown on every desktop.
const StickyDesktop = -1

// Details is window metadata published by the window manager and client.
// Every field is best-effort: unset properties leave the zero value.
type Details struct {
	NetWMName string `json:"net_wm_name,omitempty"`
	Instance  string `json:"instance,omitempty"`
	Class     string `json:"class,omitempty"`
	PID       int    `json:"pid,omitempty"`
	Desktop   *int   `json:"desktop,omitempty"`
	Active    bool   `json:"active"`
}

// Describe collects EWMH and ICCCM metadata for w.
func (c *Connection) Describe(w probe.WindowID) Details {
	win := xproto.Window(w)
	var d Details

	if name, err := ewmh.WmNameGet(c.XUtil, win); err == nil {
		d.NetWMName = name
	}
	if class, err := icccm.WmClassGet(c.XUtil, win); err == nil && class != nil {
		d.Instance = class.Instance
		d.Class = class.Class
	}
	if pid, err := ewmh.WmPidGet(c.XUtil, win); err == nil {
		d.PID = int(pid)
	}
	if desktop, err := c.windowDesktop(win); err == nil {
		d.Desktop = &desktop
	}
	if active, err := c.GetActiveWindow(); err == nil {
		d.Active = active == win
	}
	return d
}

// windowDesktop returns the desktop number a window is on, or StickyDesktop.
func (c *Connection) windowDesktop(win xproto.Window) (int, error) {
	desktop, err := ewmh.WmDesktopGet(c.XUtil, win)
	if err != nil {
		return 0, err
	}
	// 0xFFFFFFFF means the window is on all desktops (sticky)
	if desktop == 0xFFFFFFFF {
		return StickyDesktop, nil
	}
	return int(desktop), nil
}

// GetActiveWindow returns _NET_ACTIVE_WINDOW.
func (c *Connection) GetActiveWindow() (xproto.Window, error) {
	return ewmh.ActiveWindowGet(c.XUtil)
}
