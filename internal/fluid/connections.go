package fluid

import "fmt"

// Connection is a static master/detail wiring detected from component
// metadata: the master emits at least one event type the detail listens to.
// Advisory only; the bus never enforces declared event types at emit time.
type Connection struct {
	MasterID   string   `json:"masterId"`
	DetailID   string   `json:"detailId"`
	EventTypes []string `json:"eventTypes"`
}

// DetectConnections cross-references each component's declared emits and
// listensTo sets. Component identity is "Type-N" where N counts earlier
// instances of the same type, so the same type placed twice yields
// distinct endpoints.
func DetectConnections(components []ComponentRef, registry *Registry) []Connection {
	ids := componentIDs(components)

	var connections []Connection
	for i, master := range components {
		masterMeta, ok := registry.Get(master.Type)
		if !ok || len(masterMeta.Emits) == 0 {
			continue
		}

		for j, detail := range components {
			if i == j {
				continue
			}
			detailMeta, ok := registry.Get(detail.Type)
			if !ok || len(detailMeta.ListensTo) == 0 {
				continue
			}

			shared := intersect(masterMeta.Emits, detailMeta.ListensTo)
			if len(shared) == 0 {
				continue
			}

			connections = append(connections, Connection{
				MasterID:   ids[i],
				DetailID:   ids[j],
				EventTypes: shared,
			})
		}
	}

	return connections
}

// componentIDs assigns each component its identity: an explicit instance id
// wins, otherwise "Type-N" with N the per-type occurrence index.
func componentIDs(components []ComponentRef) []string {
	ids := make([]string, len(components))
	seen := make(map[string]int, len(components))
	for i, ref := range components {
		if ref.ID != "" {
			ids[i] = ref.ID
		} else {
			ids[i] = fmt.Sprintf("%s-%d", ref.Type, seen[ref.Type])
		}
		seen[ref.Type]++
	}
	return ids
}

// intersect keeps emit declaration order
func intersect(emits, listensTo []string) []string {
	listens := make(map[string]bool, len(listensTo))
	for _, t := range listensTo {
		listens[t] = true
	}
	var shared []string
	for _, t := range emits {
		if listens[t] {
			shared = append(shared, t)
		}
	}
	return shared
}

// RowComponents flattens every row section's components in config order,
// preserving the order DetectConnections assigns identities in.
func RowComponents(cfg Config) []ComponentRef {
	var components []ComponentRef
	for _, section := range cfg.Sections {
		if section.Type == SectionRow {
			components = append(components, section.Components...)
		}
	}
	return components
}
