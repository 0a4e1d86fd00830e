package main

import (
	"strconv"

	"github.com/clipsmith/clipsmith/internal/display"
	"github.com/clipsmith/clipsmith/internal/montage"
)

func summaryRows(sum *montage.Summary) [][]string {
	return [][]string{
		{"Sources", strconv.Itoa(sum.Sources)},
		{"Clips planned", strconv.Itoa(sum.Planned)},
		{"Clips extracted", strconv.Itoa(sum.Extracted)},
		{"Clips failed", strconv.Itoa(sum.Failed)},
		{"Output", sum.Output},
		{"Size", display.FormatBytes(sum.OutputBytes)},
		{"Elapsed", display.FormatElapsed(sum.Elapsed)},
	}
}

func renderSummary(sum *montage.Summary) string {
	return display.RenderTable([]string{"Field", "Value"}, summaryRows(sum), nil)
}
