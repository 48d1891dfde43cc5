// Package overlay places the floating assistant icon next to the focused
// text field.
package overlay

import (
	"strings"
	"sync"
)

const (
	// IconSize is the icon's width and height in CSS pixels.
	IconSize = 30
	// CenterOffset is subtracted from the field midline; it is not IconSize/2.
	CenterOffset = 20
	// Gap separates the icon from the field's right edge.
	Gap = 10
)

// Rect is an element's bounding box relative to the viewport.
type Rect struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Element describes a focusable page element.
type Element struct {
	Tag  string `json:"tag"`
	Type string `json:"type,omitempty"`
	Rect Rect   `json:"rect"`
}

// Viewport is the document's scroll offset and size.
type Viewport struct {
	ScrollX float64 `json:"scroll_x"`
	ScrollY float64 `json:"scroll_y"`
	Width   float64 `json:"width,omitempty"`
	Height  float64 `json:"height,omitempty"`
}

// State is where the icon is drawn, in document coordinates.
type State struct {
	Visible bool    `json:"visible"`
	Top     float64 `json:"top"`
	Left    float64 `json:"left"`
}

var textInputTypes = map[string]bool{
	"":       true,
	"text":   true,
	"search": true,
}

// IsEditable reports whether el accepts free text: a textarea or an input
// of type text or search. An input with no type is a text input.
func IsEditable(el *Element) bool {
	if el == nil {
		return false
	}
	switch strings.ToLower(el.Tag) {
	case "textarea":
		return true
	case "input":
		return textInputTypes[strings.ToLower(strings.TrimSpace(el.Type))]
	default:
		return false
	}
}

// Position computes the icon placement for el under vp.
func Position(el Element, vp Viewport) State {
	r := el.Rect
	return State{
		Visible: true,
		Top:     r.Top + vp.ScrollY + r.Height/2 - CenterOffset,
		Left:    r.Left + vp.ScrollX + r.Width + Gap,
	}
}

// Overlay tracks the focused element and keeps the icon beside it.
type Overlay struct {
	mu       sync.Mutex
	target   *Element
	viewport Viewport
	state    State
}

// New returns a hidden overlay.
func New() *Overlay {
	return &Overlay{}
}

// State returns the current icon state.
func (o *Overlay) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Focus handles a focus change. A nil or non-editable element hides the
// icon.
func (o *Overlay) Focus(el *Element, vp Viewport) State {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.viewport = vp
	if !IsEditable(el) {
		o.target = nil
		o.state = State{}
		return o.state
	}

	target := *el
	o.target = &target
	o.state = Position(target, vp)
	return o.state
}

// Blur hides the icon.
func (o *Overlay) Blur() State {
	return o.Focus(nil, o.currentViewport())
}

// Scroll recomputes the position after the document scrolls. rect is the
// target's new viewport-relative box; nil keeps the last known one.
func (o *Overlay) Scroll(vp Viewport, rect *Rect) State {
	return o.relayout(vp, rect)
}

// Resize recomputes the position after the window is resized.
func (o *Overlay) Resize(vp Viewport, rect *Rect) State {
	return o.relayout(vp, rect)
}

func (o *Overlay) relayout(vp Viewport, rect *Rect) State {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.viewport = vp
	if o.target == nil {
		return o.state
	}
	if rect != nil {
		o.target.Rect = *rect
	}
	o.state = Position(*o.target, vp)
	return o.state
}

func (o *Overlay) currentViewport() Viewport {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.viewport
}
