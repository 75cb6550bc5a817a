package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/wotw/pointerwin/internal/config"
	"github.com/wotw/pointerwin/internal/probe"
	"github.com/wotw/pointerwin/internal/x11"
)

// identityJSON is the machine-readable probe result.
type identityJSON struct {
	Window   string       `json:"window"`
	WindowID uint32       `json:"window_id"`
	Root     string       `json:"root"`
	Name     string       `json:"name"`
	WMName   string       `json:"wm_name"`
	IconName string       `json:"icon_name"`
	Details  *x11.Details `json:"details,omitempty"`
}

type printer struct {
	mode  config.OutputMode
	color config.ColorMode
	isTTY bool
}

func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func (p printer) json() bool {
	switch p.mode {
	case config.OutputJSON:
		return true
	case config.OutputText:
		return false
	default:
		return !p.isTTY
	}
}

func (p printer) colorize(attrs ...color.Attribute) func(a ...interface{}) string {
	c := color.New(attrs...)
	switch {
	case p.color == config.ColorAlways:
		c.EnableColor()
	case p.color == config.ColorNever || !p.isTTY:
		c.DisableColor()
	}
	return c.SprintFunc()
}

func (p printer) write(w io.Writer, id probe.Identity, d *x11.Details) error {
	if p.json() {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(identityJSON{
			Window:   id.Window.String(),
			WindowID: uint32(id.Window),
			Root:     id.Root.String(),
			Name:     id.Name,
			WMName:   id.WMName,
			IconName: id.IconName,
			Details:  d,
		})
	}

	label := p.colorize(color.Faint)
	ident := p.colorize(color.FgCyan)
	name := p.colorize(color.FgGreen, color.Bold)

	fmt.Fprintf(w, "%s %s\n", label("window:   "), ident(id.Window.String()))
	fmt.Fprintf(w, "%s %s\n", label("name:     "), name(id.Name))
	fmt.Fprintf(w, "%s %q\n", label("wm_name:  "), id.WMName)
	fmt.Fprintf(w, "%s %q\n", label("icon_name:"), id.IconName)
	if d == nil {
		return nil
	}
	if d.NetWMName != "" {
		fmt.Fprintf(w, "%s %q\n", label("net_name: "), d.NetWMName)
	}
	if d.Class != "" || d.Instance != "" {
		fmt.Fprintf(w, "%s %s (%s)\n", label("class:    "), d.Class, d.Instance)
	}
	if d.PID != 0 {
		fmt.Fprintf(w, "%s %d\n", label("pid:      "), d.PID)
	}
	if d.Desktop != nil {
		desktop := fmt.Sprint(*d.Desktop)
		if *d.Desktop == x11.StickyDesktop {
			desktop = "all (sticky)"
		}
		fmt.Fprintf(w, "%s %s\n", label("desktop:  "), desktop)
	}
	fmt.Fprintf(w, "%s %v\n", label("active:   "), d.Active)
	return nil
}
