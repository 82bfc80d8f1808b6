package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promptbench/celebrate"
)

func TestHeaderAnchors(t *testing.T) {
	header := NewHeader("PromptBench")
	header.Resize(100)

	title, ok := header.Anchor(AnchorHeaderTitle)
	require.True(t, ok)
	assert.Equal(t, titleCol*celebrate.PxPerCell, title.X)
	assert.Equal(t, float64(len("PromptBench"))*celebrate.PxPerCell, title.W)

	// The generic id answers with the same rect
	generic, ok := header.Anchor(AnchorTitle)
	require.True(t, ok)
	assert.Equal(t, title, generic)

	gear, ok := header.Anchor(AnchorGear)
	require.True(t, ok)
	assert.Equal(t, float64(100-gearColRight)*celebrate.PxPerCell, gear.X)
}

func TestHeaderAnchorsTrackResize(t *testing.T) {
	header := NewHeader("PromptBench")
	header.Resize(100)
	wide, _ := header.Anchor(AnchorGear)

	header.Resize(60)
	narrow, ok := header.Anchor(AnchorGear)
	require.True(t, ok)
	assert.Less(t, narrow.X, wide.X, "gear anchor must follow the live layout")
}

func TestHeaderAnchorsUnknownID(t *testing.T) {
	header := NewHeader("PromptBench")
	header.Resize(100)

	_, ok := header.Anchor("status")
	assert.False(t, ok, "the status element is never exposed as an anchor")
}

func TestHeaderAnchorsBeforeResize(t *testing.T) {
	header := NewHeader("PromptBench")

	_, ok := header.Anchor(AnchorTitle)
	assert.False(t, ok, "no layout yet means no anchors")
}

func TestHeaderPathAcrossBand(t *testing.T) {
	header := NewHeader("PromptBench")
	header.Resize(120)

	path, ok := celebrate.ResolvePath(header, []string{AnchorHeaderTitle, AnchorTitle}, AnchorGear, 7*celebrate.PxPerCell)
	require.True(t, ok)
	assert.Equal(t, path.StartX, path.EndX)
	assert.Greater(t, path.GearX, path.StartX, "ghost must have room to travel on a 120-column screen")
}
