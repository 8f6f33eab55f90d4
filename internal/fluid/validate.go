package fluid

import (
	"fmt"
)

// Validation error codes
const (
	CodeInvalidSection   = "INVALID_SECTION"
	CodeMaxRowsExceeded  = "MAX_ROWS_EXCEEDED"
	CodeInvalidRowSize   = "INVALID_ROW_SIZE"
	CodeInvalidComponent = "INVALID_COMPONENT"
	CodeLayoutConflict   = "LAYOUT_CONFLICT"
	CodeMissingProp      = "MISSING_PROP"
	CodeUnknownProp      = "UNKNOWN_PROP"
	CodeInvalidPropType  = "INVALID_PROP_TYPE"
)

// Business limits on a dashboard config
const (
	MaxRowSections   = 2
	MaxRowComponents = 3
)

// ValidationError is one violation found in a dashboard config
type ValidationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Path    string `json:"path"`
}

// Result collects every violation; a config renders only when Valid.
type Result struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors"`
}

func (r *Result) add(code, message, path string) {
	r.Errors = append(r.Errors, ValidationError{Code: code, Message: message, Path: path})
}

// ValidateConfig checks a dashboard config against section shape rules and
// the component registry. All violations are collected; it never panics, so
// callers can render a diagnostic view instead of crashing.
func ValidateConfig(cfg Config, registry *Registry) Result {
	result := Result{}

	rowCount := 0
	for i, section := range cfg.Sections {
		path := fmt.Sprintf("sections[%d]", i)

		switch section.Type {
		case SectionText:
			validateTextSection(section, path, &result)
		case SectionRow:
			rowCount++
			if rowCount > MaxRowSections {
				result.add(CodeMaxRowsExceeded,
					fmt.Sprintf("a dashboard allows at most %d component rows", MaxRowSections),
					path)
			}
			validateRowSection(section, path, registry, &result)
		default:
			result.add(CodeInvalidSection,
				fmt.Sprintf("unknown section type %q", section.Type),
				path)
		}
	}

	result.Valid = len(result.Errors) == 0
	return result
}

func validateTextSection(section Section, path string, result *Result) {
	if section.Content == "" {
		result.add(CodeInvalidSection, "text section requires content", path+".content")
	}
	switch section.Spacing {
	case "", SpacingComfortable, SpacingTight, SpacingFlush:
	default:
		result.add(CodeInvalidSection,
			fmt.Sprintf("unknown spacing %q", section.Spacing),
			path+".spacing")
	}
	if len(section.Components) > 0 {
		result.add(CodeInvalidSection, "text section cannot contain components", path+".components")
	}
}

func validateRowSection(section Section, path string, registry *Registry, result *Result) {
	n := len(section.Components)
	if n < 1 || n > MaxRowComponents {
		result.add(CodeInvalidRowSize,
			fmt.Sprintf("a row requires 1 to %d components, got %d", MaxRowComponents, n),
			path+".components")
		return
	}

	fullSpanPresent := false
	for j, ref := range section.Components {
		compPath := fmt.Sprintf("%s.components[%d]", path, j)

		meta, ok := registry.Get(ref.Type)
		if !ok {
			result.add(CodeInvalidComponent,
				fmt.Sprintf("component type %q is not registered", ref.Type),
				compPath)
			continue
		}

		if meta.MustSpanFull {
			fullSpanPresent = true
		}

		validateProps(ref, meta, compPath, result)
	}

	if fullSpanPresent && n > 1 {
		result.add(CodeLayoutConflict,
			"a full-span component cannot share a row with other components",
			path)
	}
}

func validateProps(ref ComponentRef, meta ComponentMeta, compPath string, result *Result) {
	for name, spec := range meta.Props {
		if !spec.Required {
			continue
		}
		if _, present := ref.Props[name]; !present {
			result.add(CodeMissingProp,
				fmt.Sprintf("component %q requires prop %q", ref.Type, name),
				fmt.Sprintf("%s.props.%s", compPath, name))
		}
	}

	for name, value := range ref.Props {
		spec, known := meta.Props[name]
		if !known {
			result.add(CodeUnknownProp,
				fmt.Sprintf("component %q does not accept prop %q", ref.Type, name),
				fmt.Sprintf("%s.props.%s", compPath, name))
			continue
		}
		if got := runtimeType(value); got != spec.Type {
			result.add(CodeInvalidPropType,
				fmt.Sprintf("prop %q expects %s, got %s", name, spec.Type, got),
				fmt.Sprintf("%s.props.%s", compPath, name))
		}
	}
}

// runtimeType maps a decoded JSON value to its prop type. Configs built in
// Go directly may carry native ints, which still count as numbers.
func runtimeType(value interface{}) PropType {
	switch value.(type) {
	case string:
		return PropString
	case float64, float32, int, int32, int64:
		return PropNumber
	case bool:
		return PropBoolean
	case []interface{}:
		return PropArray
	case map[string]interface{}:
		return PropObject
	default:
		return PropType("null")
	}
}
