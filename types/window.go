package types

// WindowingModePinned is the window manager's name for picture-in-picture.
const WindowingModePinned = "pinned"

// WindowInfo describes one window as reported by the window manager.
type WindowInfo struct {
	Token         string            `json:"token"`
	Title         string            `json:"title"`
	WindowingMode string            `json:"windowingMode,omitempty"`
	Frame         ScreenElementRect `json:"frame"`
}

// IsPinned reports whether the window is shown in picture-in-picture mode.
func (w WindowInfo) IsPinned() bool {
	return w.WindowingMode == WindowingModePinned
}
