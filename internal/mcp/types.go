package mcp

import "github.com/wotw/pointerwin/internal/x11"

// WindowUnderPointerInput is the input for the window_under_pointer tool.
type WindowUnderPointerInput struct {
	Display string `json:"display,omitempty" jsonschema:"X display to query, e.g. :0 (default: the server's configured display, then $DISPLAY)"`
	Root    string `json:"root,omitempty" jsonschema:"Window id (decimal or 0x hex) to start the search from instead of the screen root"`
	Details bool   `json:"details,omitempty" jsonschema:"When true, include EWMH/ICCCM metadata: _NET_WM_NAME, WM_CLASS, PID, desktop and focus"`
}

// WindowUnderPointerOutput is the output for the window_under_pointer tool.
type WindowUnderPointerOutput struct {
	Window   string       `json:"window"`
	WindowID uint32       `json:"window_id"`
	Root     string       `json:"root"`
	Name     string       `json:"name"`
	WMName   string       `json:"wm_name"`
	IconName string       `json:"icon_name"`
	Details  *x11.Details `json:"details,omitempty"`
}
