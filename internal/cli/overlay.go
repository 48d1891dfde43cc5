package cli

import (
	"fmt"

	"github.com/runnerr0/browseiq/internal/overlay"
)

// Execute implements the go-flags Commander interface for OverlayCommand.
func (c *OverlayCommand) Execute(args []string) error {
	el := &overlay.Element{
		Tag:  c.Tag,
		Type: c.Type,
		Rect: overlay.Rect{Top: c.Top, Left: c.Left, Width: c.Width, Height: c.Height},
	}
	vp := overlay.Viewport{ScrollX: c.ScrollX, ScrollY: c.ScrollY}

	st := overlay.New().Focus(el, vp)

	if wantJSON(c.globals) {
		return printJSON(st)
	}

	if !st.Visible {
		fmt.Printf("hidden (<%s type=%q> is not a text field)\n", c.Tag, c.Type)
		return nil
	}
	fmt.Printf("visible at top=%g left=%g (icon %dpx)\n", st.Top, st.Left, overlay.IconSize)
	return nil
}
