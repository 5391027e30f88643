package ui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/idlab-discover/aqpredict-cli/internal/aqi"
)

const barWidth = 30

// timestampLayout mirrors a en-US locale date string.
const timestampLayout = "1/2/2006, 3:04:05 PM"

// RenderResult renders a successful prediction: the category card, the
// probability breakdown, the echoed inputs and the prediction time.
func RenderResult(p *aqi.Prediction) string {
	if p == nil {
		return ""
	}

	var b strings.Builder

	b.WriteString(Title.Render("Prediction Result"))
	b.WriteString("\n")
	b.WriteString(Subtitle.Render("Based on the environmental parameters provided"))
	b.WriteString("\n\n")

	b.WriteString(renderCategoryCard(p))
	b.WriteString("\n\n")

	if len(p.Probabilities) > 0 {
		b.WriteString(SectionHeader.Render("Prediction Probabilities"))
		b.WriteString("\n")
		b.WriteString(renderProbabilities(p))
		b.WriteString("\n\n")
	}

	if len(p.InputData) > 0 {
		b.WriteString(SectionHeader.Render("Input Parameters"))
		b.WriteString("\n")
		b.WriteString(renderInputs(p))
		b.WriteString("\n\n")
	}

	b.WriteString(Dim.Render("Prediction made on: " + formatTimestamp(p)))

	return Box.Render(b.String())
}

func renderCategoryCard(p *aqi.Prediction) string {
	var b strings.Builder
	b.WriteString(CategoryStyle(p.Category).Bold(true).Render(p.Category))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(60).Render(aqi.CategoryDescription(p.Category)))
	b.WriteString("\n\n")
	b.WriteString(ConfidenceBadge(p.Confidence, "Confidence: "+formatPercent(p.Confidence)))
	return CategoryBox(p.Category).Render(b.String())
}

func renderProbabilities(p *aqi.Prediction) string {
	entries := p.SortedProbabilities()

	labelWidth := 0
	for _, e := range entries {
		labelWidth = max(labelWidth, lipgloss.Width(e.Category))
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		marker := "  "
		if e.Category == p.Category {
			marker = Highlight.Render("▶ ")
		}
		label := fmt.Sprintf("%-*s", labelWidth, e.Category)
		lines = append(lines, fmt.Sprintf("%s%s %s %s",
			marker,
			label,
			renderBar(e.Category, e.Probability, barWidth),
			CategoryStyle(e.Category).Render(formatPercent(e.Probability)),
		))
	}
	return strings.Join(lines, "\n")
}

// renderBar draws a bar of width cells filled to percent in the category color.
func renderBar(category string, percent float64, width int) string {
	filled := int(math.Round(percent / 100 * float64(width)))
	filled = min(max(filled, 0), width)

	fill := CategoryStyle(category).Render(strings.Repeat("█", filled))
	track := lipgloss.NewStyle().Foreground(ColorTrack).Render(strings.Repeat("░", width-filled))
	return fill + track
}

func renderInputs(p *aqi.Prediction) string {
	keys := p.SortedInputKeys()
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, FormatKeyValue(strings.ToUpper(k), fmt.Sprintf("%.2f", p.InputData[k])))
	}
	return strings.Join(lines, "\n")
}

// formatPercent prints v the way the service sent it, followed by %.
func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

// formatTimestamp shows the prediction time in local time. A timestamp that
// cannot be parsed is shown as sent.
func formatTimestamp(p *aqi.Prediction) string {
	if t, ok := p.Time(); ok {
		return t.Local().Format(timestampLayout)
	}
	if strings.TrimSpace(p.Timestamp) == "" {
		return "unknown"
	}
	return p.Timestamp
}
