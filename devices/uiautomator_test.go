package devices

import (
	"testing"

	"github.com/mobile-next/flicker/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetScreenElementRect(t *testing.T) {
	tests := []struct {
		name   string
		bounds string
		want   types.ScreenElementRect
	}{
		{"valid bounds", "[0,0][1080,2400]", types.ScreenElementRect{X: 0, Y: 0, Width: 1080, Height: 2400}},
		{"offset bounds", "[100,200][500,600]", types.ScreenElementRect{X: 100, Y: 200, Width: 400, Height: 400}},
		{"negative origin", "[-10,0][90,50]", types.ScreenElementRect{X: -10, Y: 0, Width: 100, Height: 50}},
		{"invalid format", "invalid", types.ScreenElementRect{}},
		{"empty string", "", types.ScreenElementRect{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, getScreenElementRect(tt.bounds))
		})
	}
}

func TestCollectElements(t *testing.T) {
	node := uiAutomatorXmlNode{
		Class:  "android.widget.FrameLayout",
		Bounds: "[0,0][1080,2400]",
		Nodes: []uiAutomatorXmlNode{
			{
				Class:       "android.widget.TextView",
				Package:     "com.example",
				Text:        "Hello World",
				ContentDesc: "greeting",
				Bounds:      "[10,20][200,60]",
				ResourceID:  "com.example:id/text",
			},
			{
				Class:   "android.widget.EditText",
				Hint:    "Enter name",
				Focused: "true",
				Bounds:  "[10,70][200,110]",
			},
			{
				Class:  "android.widget.View",
				Bounds: "[0,0][0,0]", // zero-size, should be excluded
				Text:   "invisible",
			},
		},
	}

	elements := collectElements(node)
	require.Len(t, elements, 2)

	assert.Equal(t, "android.widget.TextView", elements[0].Type)
	assert.Equal(t, "Hello World", *elements[0].Text)
	assert.Equal(t, "greeting", *elements[0].Label)
	assert.Equal(t, "com.example:id/text", elements[0].ResourceID())
	assert.Equal(t, "com.example", *elements[0].Package)

	assert.Equal(t, "Enter name", *elements[1].Label)
	require.NotNil(t, elements[1].Focused)
	assert.True(t, *elements[1].Focused)
	assert.Empty(t, elements[1].ResourceID())
}

func TestParseUIAutomatorDump(t *testing.T) {
	output := `<?xml version='1.0' encoding='UTF-8' standalone='yes' ?>
<hierarchy rotation="0">
  <node class="android.widget.FrameLayout" package="com.android.systemui" bounds="[0,0][1080,2400]">
    <node class="android.widget.FrameLayout" resource-id="com.android.systemui:id/background" package="com.android.systemui" bounds="[600,1500][1040,1748]">
      <node class="android.widget.ImageButton" content-desc="Close" resource-id="com.android.systemui:id/dismiss" package="com.android.systemui" bounds="[960,1510][1030,1580]" />
      <node class="android.widget.ImageButton" content-desc="Full screen" resource-id="com.android.systemui:id/expand_button" package="com.android.systemui" bounds="[780,1590][860,1670]" />
    </node>
  </node>
</hierarchy>UI hierchary dumped to: /dev/tty
`

	elements, err := parseUIAutomatorDump(output)
	require.NoError(t, err)
	require.Len(t, elements, 3)

	dismiss := types.Res("com.android.systemui", "dismiss")
	assert.True(t, dismiss.Matches(elements[1]))
	assert.Equal(t, "Close", *elements[1].Label)

	x, y := elements[2].Rect.Center()
	assert.Equal(t, 820, x)
	assert.Equal(t, 1630, y)
}

func TestParseUIAutomatorDump_Errors(t *testing.T) {
	_, err := parseUIAutomatorDump("ERROR: could not get idle state.")
	assert.Error(t, err)

	_, err = parseUIAutomatorDump(`<hierarchy><node bounds="[0,0][1,1]"</hierarchy>`)
	assert.Error(t, err)
}
