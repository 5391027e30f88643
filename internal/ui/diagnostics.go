package ui

import (
	"fmt"
	"strings"

	"github.com/idlab-discover/aqpredict-cli/internal/predictor"
)

// RenderHealth renders a /health answer.
func RenderHealth(h *predictor.Health) string {
	status := "error"
	if strings.EqualFold(h.Status, "healthy") {
		status = "success"
	}

	loaded := GetCrossMark() + " no"
	if h.ModelLoaded {
		loaded = GetCheckMark() + " yes"
	}

	lines := []string{
		Title.Render("Service Health"),
		"",
		FormatStatus(status, h.Status),
		FormatKeyValue("Model loaded", loaded),
	}
	if h.Timestamp != "" {
		lines = append(lines, FormatKeyValue("Checked at", h.Timestamp))
	}
	return Box.Render(strings.Join(lines, "\n"))
}

// RenderModelInfo renders a /model-info answer.
func RenderModelInfo(m *predictor.ModelInfo) string {
	lines := []string{
		Title.Render("Model"),
		"",
		FormatKeyValue("Type", m.ModelType),
		FormatKeyValue("Features", fmt.Sprintf("%d", m.NFeatures)),
	}
	if len(m.FeatureColumns) > 0 {
		lines = append(lines, FormatKeyValue("Columns", strings.Join(m.FeatureColumns, ", ")))
	}
	if len(m.Classes) > 0 {
		lines = append(lines, "", SectionHeader.Render("Classes"))
		for _, c := range m.Classes {
			lines = append(lines, GetBullet()+" "+CategoryStyle(c).Render(c))
		}
	}
	return Box.Render(strings.Join(lines, "\n"))
}

// RenderFeatures renders a /features answer.
func RenderFeatures(f *predictor.FeatureList) string {
	lines := []string{Title.Render("Features"), ""}
	if len(f.Features) == 0 {
		lines = append(lines, Muted.Render("(none)"))
	}
	for _, feat := range f.Features {
		lines = append(lines, GetBullet()+" "+Bold.Render(feat.Name)+Dim.Render(" "+feat.Description))
	}
	return Box.Render(strings.Join(lines, "\n"))
}
