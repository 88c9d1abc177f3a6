package types

import "errors"

// ErrElementNotFound is returned when no on-screen element matches a selector.
var ErrElementNotFound = errors.New("element not found")

type ScreenElementRect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Center returns the point a tap on this rect should land on.
func (r ScreenElementRect) Center() (int, int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// IsEmpty reports whether the rect has no visible area.
func (r ScreenElementRect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

type ScreenElement struct {
	Type       string            `json:"type"`
	Label      *string           `json:"label,omitempty"`
	Text       *string           `json:"text,omitempty"`
	Identifier *string           `json:"identifier,omitempty"`
	Package    *string           `json:"package,omitempty"`
	Rect       ScreenElementRect `json:"rect"`
	Focused    *bool             `json:"focused,omitempty"`
}

// ResourceID returns the element's resource id, or "" when it has none.
func (e ScreenElement) ResourceID() string {
	if e.Identifier == nil {
		return ""
	}
	return *e.Identifier
}
