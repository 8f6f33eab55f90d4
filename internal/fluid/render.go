package fluid

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	markdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
	)
	sanitizer = bluemonday.UGCPolicy()
)

// RenderMarkdown converts markdown to HTML and sanitizes the result so
// user-authored text sections cannot inject scripts.
func RenderMarkdown(source string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return sanitizer.Sanitize(buf.String()), nil
}

// RenderedSection is one section of a dashboard prepared for display
type RenderedSection struct {
	Type         string         `json:"type"`
	HTML         string         `json:"html,omitempty"`
	Spacing      string         `json:"spacing,omitempty"`
	GridTemplate string         `json:"gridTemplate,omitempty"`
	Components   []ComponentRef `json:"components,omitempty"`
}

// RenderedDashboard is a validated config prepared for display: text
// sections as sanitized HTML, rows with computed grid templates.
type RenderedDashboard struct {
	Sections    []RenderedSection `json:"sections"`
	Connections []Connection      `json:"connections"`
}

// Render prepares a config for display. The config must have passed
// ValidateConfig; a malformed dashboard is never partially rendered.
func Render(cfg Config, registry *Registry) (RenderedDashboard, error) {
	out := RenderedDashboard{Sections: make([]RenderedSection, 0, len(cfg.Sections))}

	for _, section := range cfg.Sections {
		switch section.Type {
		case SectionText:
			html, err := RenderMarkdown(section.Content)
			if err != nil {
				return RenderedDashboard{}, err
			}
			spacing := section.Spacing
			if spacing == "" {
				spacing = SpacingComfortable
			}
			out.Sections = append(out.Sections, RenderedSection{
				Type:    SectionText,
				HTML:    html,
				Spacing: spacing,
			})
		case SectionRow:
			template, err := CalculateGridLayout(section.Components, section.Layout, registry)
			if err != nil {
				return RenderedDashboard{}, err
			}
			out.Sections = append(out.Sections, RenderedSection{
				Type:         SectionRow,
				GridTemplate: template,
				Components:   section.Components,
			})
		}
	}

	out.Connections = DetectConnections(RowComponents(cfg), registry)
	return out, nil
}
