package ratelimit

import "context"

// Status colors for the rate-limit gauge
const (
	ColorGreen  = "green"
	ColorYellow = "yellow"
	ColorRed    = "red"
)

// Status describes the bucket for a status display
type Status struct {
	Remaining  int     `json:"remaining"`
	Capacity   int     `json:"capacity"`
	Percentage float64 `json:"percentage"`
	Color      string  `json:"color"`
}

// ColorFor maps a remaining-token count to a gauge color:
// more than 7 green, 4 through 7 yellow, 3 or fewer red.
func ColorFor(remaining int) string {
	switch {
	case remaining > 7:
		return ColorGreen
	case remaining >= 4:
		return ColorYellow
	default:
		return ColorRed
	}
}

// StatusFor builds a Status from a remaining count and capacity
func StatusFor(remaining, capacity int) Status {
	pct := 0.0
	if capacity > 0 {
		pct = float64(remaining) / float64(capacity)
	}
	return Status{
		Remaining:  remaining,
		Capacity:   capacity,
		Percentage: pct,
		Color:      ColorFor(remaining),
	}
}

// Status reports the current bucket state for a key without consuming
func (l *Limiter) Status(ctx context.Context, key string) (Status, error) {
	remaining, err := l.Remaining(ctx, key)
	if err != nil {
		return Status{}, err
	}
	return StatusFor(remaining, l.Capacity()), nil
}
