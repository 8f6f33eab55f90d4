package fluid

import (
	"encoding/json"
	"fmt"
)

// Section types
const (
	SectionText = "text"
	SectionRow  = "row"
)

// Spacing options for text sections
const (
	SpacingComfortable = "comfortable"
	SpacingTight       = "tight"
	SpacingFlush       = "flush"
)

// Config is the declarative dashboard description stored per event
type Config struct {
	Sections []Section              `json:"sections"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// Section is either a free-form text block or a row of components
type Section struct {
	Type       string         `json:"type"`
	Content    string         `json:"content,omitempty"`
	Spacing    string         `json:"spacing,omitempty"`
	Layout     Layout         `json:"layout,omitempty"`
	Components []ComponentRef `json:"components,omitempty"`
}

// ComponentRef places one registered component in a row
type ComponentRef struct {
	Type  string                 `json:"type"`
	Props map[string]interface{} `json:"props"`
	ID    string                 `json:"id,omitempty"`
}

// Layout is either a named preset ("auto", "1:1", "2:1", "3:1", "sidebar")
// or a custom list of CSS grid column sizes.
type Layout struct {
	Preset string
	Custom []string
}

// IsZero reports whether no layout preference was given
func (l Layout) IsZero() bool {
	return l.Preset == "" && len(l.Custom) == 0
}

func (l Layout) MarshalJSON() ([]byte, error) {
	if len(l.Custom) > 0 {
		return json.Marshal(l.Custom)
	}
	if l.Preset == "" {
		return json.Marshal(nil)
	}
	return json.Marshal(l.Preset)
}

func (l *Layout) UnmarshalJSON(data []byte) error {
	var preset string
	if err := json.Unmarshal(data, &preset); err == nil {
		l.Preset = preset
		l.Custom = nil
		return nil
	}
	var custom []string
	if err := json.Unmarshal(data, &custom); err == nil {
		l.Preset = ""
		l.Custom = custom
		return nil
	}
	if string(data) == "null" {
		*l = Layout{}
		return nil
	}
	return fmt.Errorf("layout must be a string preset or an array of column sizes")
}

// ParseConfig decodes a stored dashboard config
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if len(data) == 0 {
		return cfg, nil
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse dashboard config: %w", err)
	}
	return cfg, nil
}
