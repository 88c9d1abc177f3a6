// Package testutil contains a scripted device used by tests of the automation
// layer, the app helpers and the commands. It is not intended for production
// usage.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/mobile-next/flicker/types"
)

// Tap records one tap gesture.
type Tap struct {
	X, Y int
}

// FakeDevice answers element and window queries from in-memory state and
// records every interaction. Hooks can change that state in response to a
// click or a tap, which is how tests model the device reacting.
type FakeDevice struct {
	mu sync.Mutex

	elements []types.ScreenElement
	windows  []types.WindowInfo

	FindErr    error
	ListErr    error
	OnClick    func(d *FakeDevice, element types.ScreenElement)
	OnTap      func(d *FakeDevice, tap Tap)
	Clicks     []types.ScreenElement
	Taps       []Tap
	Calls      []string
	Launched   []string
	Stopped    []string
	Screenshot []byte
}

func NewFakeDevice() *FakeDevice {
	return &FakeDevice{}
}

func (d *FakeDevice) ID() string {
	return "fake-device"
}

// Element builds a visible element with a resource id (chainable).
func (d *FakeDevice) Element(pkg, resName string, rect types.ScreenElementRect) *FakeDevice {
	d.SetElements(append(d.currentElements(), NewElement(pkg, resName, rect))...)
	return d
}

// Window adds a window to the window list (chainable).
func (d *FakeDevice) Window(title, mode string, frame types.ScreenElementRect) *FakeDevice {
	d.SetWindows(append(d.currentWindows(), types.WindowInfo{Title: title, WindowingMode: mode, Frame: frame})...)
	return d
}

// NewElement returns an element carrying the resource id "<pkg>:id/<resName>".
func NewElement(pkg, resName string, rect types.ScreenElementRect) types.ScreenElement {
	id := types.Res(pkg, resName).ResourceID()
	return types.ScreenElement{Type: "android.widget.Button", Identifier: &id, Package: &pkg, Rect: rect}
}

func (d *FakeDevice) currentElements() []types.ScreenElement {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]types.ScreenElement(nil), d.elements...)
}

func (d *FakeDevice) currentWindows() []types.WindowInfo {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]types.WindowInfo(nil), d.windows...)
}

// SetElements replaces what is on screen.
func (d *FakeDevice) SetElements(elements ...types.ScreenElement) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.elements = elements
}

// SetWindows replaces the window list.
func (d *FakeDevice) SetWindows(windows ...types.WindowInfo) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.windows = windows
}

func (d *FakeDevice) record(call string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Calls = append(d.Calls, call)
}

func (d *FakeDevice) FindObject(_ context.Context, selector types.Selector) (*types.ScreenElement, error) {
	d.record("find " + selector.ResourceID())
	if d.FindErr != nil {
		return nil, d.FindErr
	}

	for _, element := range d.currentElements() {
		if selector.Matches(element) {
			found := element
			return &found, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", selector, types.ErrElementNotFound)
}

func (d *FakeDevice) Click(_ context.Context, element *types.ScreenElement) error {
	d.record("click " + element.ResourceID())

	d.mu.Lock()
	d.Clicks = append(d.Clicks, *element)
	hook := d.OnClick
	d.mu.Unlock()

	if hook != nil {
		hook(d, *element)
	}
	return nil
}

func (d *FakeDevice) Tap(_ context.Context, x, y int) error {
	d.record(fmt.Sprintf("tap %d,%d", x, y))

	d.mu.Lock()
	d.Taps = append(d.Taps, Tap{X: x, Y: y})
	hook := d.OnTap
	d.mu.Unlock()

	if hook != nil {
		hook(d, Tap{X: x, Y: y})
	}
	return nil
}

func (d *FakeDevice) ListWindows(_ context.Context) ([]types.WindowInfo, error) {
	d.record("windows")
	if d.ListErr != nil {
		return nil, d.ListErr
	}
	return d.currentWindows(), nil
}

func (d *FakeDevice) LaunchApp(_ context.Context, packageName string) error {
	d.record("launch " + packageName)
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Launched = append(d.Launched, packageName)
	return nil
}

func (d *FakeDevice) TerminateApp(_ context.Context, packageName string) error {
	d.record("stop " + packageName)
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Stopped = append(d.Stopped, packageName)
	return nil
}

func (d *FakeDevice) TakeScreenshot(_ context.Context) ([]byte, error) {
	d.record("screenshot")
	return d.Screenshot, nil
}

// CallCount returns how many recorded calls equal call.
func (d *FakeDevice) CallCount(call string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, c := range d.Calls {
		if c == call {
			n++
		}
	}
	return n
}
