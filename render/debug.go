package render

import "sort"

// DebugOptions toggles per-fish overlays
type DebugOptions struct {
	Acceleration  bool
	Align         bool
	Cohere        bool
	Contain       bool
	NearRange     bool
	Separate      bool
	SeparateRange bool
	Velocity      bool
	Wander        bool
	WanderRadius  bool
}

// flags maps overlay names to their fields
func (d *DebugOptions) flags() map[string]*bool {
	return map[string]*bool{
		"acceleration":  &d.Acceleration,
		"align":         &d.Align,
		"cohere":        &d.Cohere,
		"contain":       &d.Contain,
		"nearRange":     &d.NearRange,
		"separate":      &d.Separate,
		"separateRange": &d.SeparateRange,
		"velocity":      &d.Velocity,
		"wander":        &d.Wander,
		"wanderRadius":  &d.WanderRadius,
	}
}

// Toggle flips one overlay by name, returning the new value and whether the name exists
func (d *DebugOptions) Toggle(name string) (bool, bool) {
	p, ok := d.flags()[name]
	if !ok {
		return false, false
	}
	*p = !*p
	return *p, true
}

// Any reports whether any overlay is on
func (d *DebugOptions) Any() bool {
	for _, p := range d.flags() {
		if *p {
			return true
		}
	}
	return false
}

// SetAll switches every overlay
func (d *DebugOptions) SetAll(on bool) {
	for _, p := range d.flags() {
		*p = on
	}
}

// DebugNames returns overlay names in sorted order
func DebugNames() []string {
	var d DebugOptions
	names := make([]string, 0, 10)
	for k := range d.flags() {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
