package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableAlignsColumns(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)

	table := w.NewTable("Plan", "Total")
	table.AddRow("Enterprise", "$21.00")
	table.AddRow("Free")
	table.Render()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, []string{
		"Plan       │ Total",
		"───────────┼───────",
		"Enterprise │ $21.00",
		"Free       │",
	}, lines)
}

func TestColorCanBeDisabled(t *testing.T) {
	assert.Equal(t, "x", NewWriter(nil, true).Color(Red, "x"))
	assert.Equal(t, Red+"x"+Reset, NewWriter(nil, false).Color(Red, "x"))
}

func TestVerbosity(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)

	w.Debug("hidden")
	assert.Empty(t, buf.String())
	assert.False(t, w.Verbose())

	w.SetVerbosity(2)
	w.Debug("shown")
	assert.True(t, w.Verbose())
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	w.SetVerbosity(0)
	w.Info("quiet")
	assert.Empty(t, buf.String())
}

func TestRecommendationBox(t *testing.T) {
	var buf bytes.Buffer
	box := NewWriter(&buf, true).NewRecommendationBox()
	box.Found = true
	box.Plan = "Team"
	box.Total = "$170.00"
	box.Message = "cheapest eligible plan"
	box.Render()
	assert.Contains(t, buf.String(), "Team: $170.00/month")

	buf.Reset()
	box.Found = false
	box.Message = "No plan can support the declared usage."
	box.Render()
	assert.Contains(t, buf.String(), "✗ No plan can support the declared usage.")
	assert.NotContains(t, buf.String(), "╭")
}
