package types

import "fmt"

// Selector locates a view by its resource name inside an application package,
// the same way By.res(pkg, name) does in UI Automator.
type Selector struct {
	Package      string `json:"package"`
	ResourceName string `json:"resourceName"`
}

// Res builds a selector for resource name inside pkg.
func Res(pkg, name string) Selector {
	return Selector{Package: pkg, ResourceName: name}
}

// ResourceID returns the fully qualified id, e.g. "com.android.systemui:id/dismiss".
// Without a package only the bare name is returned.
func (s Selector) ResourceID() string {
	if s.Package == "" {
		return s.ResourceName
	}
	return fmt.Sprintf("%s:id/%s", s.Package, s.ResourceName)
}

// Matches reports whether element carries the selector's resource id.
func (s Selector) Matches(element ScreenElement) bool {
	id := element.ResourceID()
	return id != "" && id == s.ResourceID()
}

func (s Selector) String() string {
	return "res=" + s.ResourceID()
}
