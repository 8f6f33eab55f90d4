package fluid

import (
	"fmt"
	"strings"
)

// Layout error codes
const (
	CodeUnknownLayout = "UNKNOWN_LAYOUT"
)

// LayoutError is a typed grid calculation failure. Layout problems surface
// through the same structured channel as config validation; nothing panics.
type LayoutError struct {
	Code    string
	Message string
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// CalculateGridLayout computes a CSS grid-template-columns string for one
// row of components.
//
//   - a single component always spans the full width
//   - "auto" (or no preference) uses each component's preferred ratio
//   - presets "1:1", "2:1", "3:1" and "sidebar" map to fixed templates
//   - a custom list of column sizes is joined verbatim
//
// A full-span component combined with others is a LAYOUT_CONFLICT error.
func CalculateGridLayout(components []ComponentRef, layout Layout, registry *Registry) (string, error) {
	n := len(components)
	if n == 0 {
		return "", &LayoutError{Code: CodeInvalidRowSize, Message: "a row requires at least one component"}
	}

	for _, ref := range components {
		if meta, ok := registry.Get(ref.Type); ok && meta.MustSpanFull && n > 1 {
			return "", &LayoutError{
				Code:    CodeLayoutConflict,
				Message: fmt.Sprintf("component %q must span the full row", ref.Type),
			}
		}
	}

	if n == 1 {
		return "1fr", nil
	}

	if len(layout.Custom) > 0 {
		return strings.Join(layout.Custom, " "), nil
	}

	switch layout.Preset {
	case "", "auto":
		return autoTemplate(components, registry), nil
	case "1:1":
		return repeatColumns("1fr", n), nil
	case "2:1":
		return weightedTemplate("2fr", n), nil
	case "3:1":
		return weightedTemplate("3fr", n), nil
	case "sidebar":
		return weightedTemplate("300px", n), nil
	default:
		return "", &LayoutError{
			Code:    CodeUnknownLayout,
			Message: fmt.Sprintf("unknown layout preset %q", layout.Preset),
		}
	}
}

// autoTemplate uses each component's preferred ratio, defaulting to 1fr
func autoTemplate(components []ComponentRef, registry *Registry) string {
	cols := make([]string, len(components))
	for i, ref := range components {
		ratio := "1fr"
		if meta, ok := registry.Get(ref.Type); ok && meta.PreferredRatio != "" {
			ratio = meta.PreferredRatio
		}
		cols[i] = ratio
	}
	return strings.Join(cols, " ")
}

// weightedTemplate gives the first column the given size, the rest 1fr
func weightedTemplate(first string, n int) string {
	cols := make([]string, n)
	cols[0] = first
	for i := 1; i < n; i++ {
		cols[i] = "1fr"
	}
	return strings.Join(cols, " ")
}

func repeatColumns(size string, n int) string {
	cols := make([]string, n)
	for i := range cols {
		cols[i] = size
	}
	return strings.Join(cols, " ")
}
