package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEditable(t *testing.T) {
	tests := []struct {
		name string
		el   *Element
		want bool
	}{
		{"text input", &Element{Tag: "input", Type: "text"}, true},
		{"untyped input", &Element{Tag: "INPUT"}, true},
		{"search input", &Element{Tag: "input", Type: "search"}, true},
		{"textarea", &Element{Tag: "textarea"}, true},
		{"password", &Element{Tag: "input", Type: "password"}, false},
		{"checkbox", &Element{Tag: "input", Type: "checkbox"}, false},
		{"div", &Element{Tag: "div"}, false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsEditable(tt.el))
		})
	}
}

func TestFocus_PositionsBesideField(t *testing.T) {
	o := New()
	el := &Element{Tag: "input", Type: "text", Rect: Rect{Top: 100, Left: 50, Width: 200, Height: 40}}

	st := o.Focus(el, Viewport{ScrollX: 0, ScrollY: 300})

	assert.Equal(t, State{Visible: true, Top: 400, Left: 260}, st)
	assert.Equal(t, st, o.State())
}

func TestFocus_NonEditableHides(t *testing.T) {
	o := New()
	o.Focus(&Element{Tag: "textarea", Rect: Rect{Height: 20}}, Viewport{})

	st := o.Focus(&Element{Tag: "input", Type: "checkbox"}, Viewport{})

	assert.False(t, st.Visible)
	assert.Equal(t, State{}, o.State())
}

func TestScroll_RecomputesWhileFocused(t *testing.T) {
	o := New()
	o.Focus(&Element{Tag: "input", Rect: Rect{Top: 100, Left: 50, Width: 200, Height: 40}}, Viewport{})

	st := o.Scroll(Viewport{ScrollY: 300}, &Rect{Top: -200, Left: 50, Width: 200, Height: 40})

	assert.True(t, st.Visible)
	assert.Equal(t, 100.0, st.Top)
	assert.Equal(t, 260.0, st.Left)
}

func TestScroll_KeepsLastRectWhenNil(t *testing.T) {
	o := New()
	o.Focus(&Element{Tag: "input", Rect: Rect{Top: 10, Left: 10, Width: 100, Height: 20}}, Viewport{})

	st := o.Resize(Viewport{ScrollX: 5, ScrollY: 5}, nil)

	assert.Equal(t, State{Visible: true, Top: 5, Left: 125}, st)
}

func TestScroll_IgnoredWhenHidden(t *testing.T) {
	o := New()

	st := o.Scroll(Viewport{ScrollY: 1000}, &Rect{Top: 1, Height: 1})

	assert.Equal(t, State{}, st)
}

func TestBlur(t *testing.T) {
	o := New()
	o.Focus(&Element{Tag: "textarea"}, Viewport{})

	assert.False(t, o.Blur().Visible)
	assert.False(t, o.Scroll(Viewport{}, nil).Visible)
}
