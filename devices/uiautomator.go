package devices

import (
	"context"
	"encoding/xml"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/mobile-next/flicker/types"
)

type uiAutomatorXmlNode struct {
	Class       string               `xml:"class,attr"`
	Package     string               `xml:"package,attr"`
	Text        string               `xml:"text,attr"`
	ContentDesc string               `xml:"content-desc,attr"`
	Hint        string               `xml:"hint,attr"`
	ResourceID  string               `xml:"resource-id,attr"`
	Focused     string               `xml:"focused,attr"`
	Bounds      string               `xml:"bounds,attr"`
	Nodes       []uiAutomatorXmlNode `xml:"node"`
}

type uiAutomatorXml struct {
	XMLName xml.Name             `xml:"hierarchy"`
	Nodes   []uiAutomatorXmlNode `xml:"node"`
}

var boundsRegexp = regexp.MustCompile(`^\[(-?\d+),(-?\d+)\]\[(-?\d+),(-?\d+)\]$`)

// getScreenElementRect converts "[x1,y1][x2,y2]" into a rect, or a zero rect
// when the bounds cannot be parsed.
func getScreenElementRect(bounds string) types.ScreenElementRect {
	m := boundsRegexp.FindStringSubmatch(strings.TrimSpace(bounds))
	if m == nil {
		return types.ScreenElementRect{}
	}

	var v [4]int
	for i := range v {
		v[i], _ = strconv.Atoi(m[i+1])
	}

	return types.ScreenElementRect{
		X:      v[0],
		Y:      v[1],
		Width:  v[2] - v[0],
		Height: v[3] - v[1],
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// collectElements flattens the hierarchy below node. Only visible nodes that
// carry something to locate them by are kept.
func collectElements(node uiAutomatorXmlNode) []types.ScreenElement {
	var elements []types.ScreenElement

	rect := getScreenElementRect(node.Bounds)
	hasLocator := node.Text != "" || node.ContentDesc != "" || node.Hint != "" || node.ResourceID != ""
	if hasLocator && !rect.IsEmpty() {
		element := types.ScreenElement{
			Type:       node.Class,
			Text:       optional(node.Text),
			Label:      optional(node.ContentDesc),
			Identifier: optional(node.ResourceID),
			Package:    optional(node.Package),
			Rect:       rect,
		}
		if element.Label == nil {
			element.Label = optional(node.Hint)
		}
		if node.Focused == "true" {
			focused := true
			element.Focused = &focused
		}
		elements = append(elements, element)
	}

	for _, child := range node.Nodes {
		elements = append(elements, collectElements(child)...)
	}

	return elements
}

// extractHierarchy cuts the xml document out of the dump output, which is
// followed by a "UI hierchary dumped to: /dev/tty" trailer.
func extractHierarchy(output string) (string, error) {
	start := strings.Index(output, "<?xml")
	if start < 0 {
		start = strings.Index(output, "<hierarchy")
	}
	end := strings.LastIndex(output, "</hierarchy>")
	if start < 0 || end < start {
		return "", fmt.Errorf("no ui hierarchy in uiautomator output: %q", strings.TrimSpace(output))
	}
	return output[start : end+len("</hierarchy>")], nil
}

func parseUIAutomatorDump(output string) ([]types.ScreenElement, error) {
	content, err := extractHierarchy(output)
	if err != nil {
		return nil, err
	}

	var hierarchy uiAutomatorXml
	if err := xml.Unmarshal([]byte(content), &hierarchy); err != nil {
		return nil, fmt.Errorf("failed to parse ui hierarchy: %w", err)
	}

	var elements []types.ScreenElement
	for _, node := range hierarchy.Nodes {
		elements = append(elements, collectElements(node)...)
	}
	return elements, nil
}

// DumpSource returns the elements currently on screen.
func (d *AndroidDevice) DumpSource(ctx context.Context) ([]types.ScreenElement, error) {
	output, err := d.runAdbCommand(ctx, "exec-out", "uiautomator", "dump", "/dev/tty")
	if err != nil {
		return nil, fmt.Errorf("failed to dump ui hierarchy: %w\nOutput: %s", err, string(output))
	}

	return parseUIAutomatorDump(string(output))
}
