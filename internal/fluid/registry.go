// Package fluid implements the declarative dashboard layout system:
// a component registry, config validation, grid layout calculation,
// a per-dashboard event bus, and markdown rendering for text sections.
package fluid

import (
	"sync"
)

// PropType is the JSON runtime type a component prop must carry
type PropType string

const (
	PropString  PropType = "string"
	PropNumber  PropType = "number"
	PropBoolean PropType = "boolean"
	PropObject  PropType = "object"
	PropArray   PropType = "array"
)

// PropSpec declares one prop of a component
type PropSpec struct {
	Type     PropType `json:"type"`
	Required bool     `json:"required"`
}

// ComponentMeta declares a dashboard component: the events it emits and
// listens to, the props it accepts, and its layout preferences.
type ComponentMeta struct {
	Type           string              `json:"type"`
	Emits          []string            `json:"emits,omitempty"`
	ListensTo      []string            `json:"listensTo,omitempty"`
	Props          map[string]PropSpec `json:"props,omitempty"`
	PreferredRatio string              `json:"preferredRatio,omitempty"`
	MustSpanFull   bool                `json:"mustSpanFull,omitempty"`
}

// Registry is the dispatch table from component type name to metadata
type Registry struct {
	mu         sync.RWMutex
	components map[string]ComponentMeta
}

func NewRegistry() *Registry {
	return &Registry{components: make(map[string]ComponentMeta)}
}

// Register adds or replaces a component declaration
func (r *Registry) Register(meta ComponentMeta) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.components[meta.Type] = meta
}

// Get returns the metadata for a component type
func (r *Registry) Get(componentType string) (ComponentMeta, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	meta, ok := r.components[componentType]
	return meta, ok
}

// Has reports whether a component type is registered
func (r *Registry) Has(componentType string) bool {
	_, ok := r.Get(componentType)
	return ok
}

// Types returns the registered component type names
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]string, 0, len(r.components))
	for t := range r.components {
		types = append(types, t)
	}
	return types
}

// DefaultRegistry returns the built-in event-planning widget set
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register(ComponentMeta{
		Type:  "VendorList",
		Emits: []string{"vendorSelected"},
		Props: map[string]PropSpec{
			"eventId":      {Type: PropString, Required: true},
			"showArchived": {Type: PropBoolean},
		},
		PreferredRatio: "2fr",
	})
	r.Register(ComponentMeta{
		Type:      "ExpenseList",
		ListensTo: []string{"vendorSelected"},
		Props: map[string]PropSpec{
			"eventId":  {Type: PropString, Required: true},
			"currency": {Type: PropString},
			"limit":    {Type: PropNumber},
		},
		PreferredRatio: "1fr",
	})
	r.Register(ComponentMeta{
		Type:  "GuestList",
		Emits: []string{"guestSelected"},
		Props: map[string]PropSpec{
			"eventId": {Type: PropString, Required: true},
			"filters": {Type: PropObject},
		},
		PreferredRatio: "1fr",
	})
	r.Register(ComponentMeta{
		Type:      "BudgetSummary",
		ListensTo: []string{"vendorSelected", "expenseAdded"},
		Props: map[string]PropSpec{
			"eventId": {Type: PropString, Required: true},
		},
		PreferredRatio: "1fr",
	})
	r.Register(ComponentMeta{
		Type: "ChatPanel",
		Props: map[string]PropSpec{
			"roomId": {Type: PropString, Required: true},
		},
		PreferredRatio: "1fr",
	})
	r.Register(ComponentMeta{
		Type:  "ScheduleTimeline",
		Emits: []string{"slotSelected"},
		Props: map[string]PropSpec{
			"eventId": {Type: PropString, Required: true},
			"days":    {Type: PropArray},
		},
		MustSpanFull: true,
	})

	return r
}
