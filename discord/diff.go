package discord

import "sort"

// Diff is the result of a diffing update: it maps the name of every field that changed to the
// value it had before the update. An update that changed nothing returns an empty, non-nil Diff.
type Diff map[string]any

// Changed returns true if the named field changed.
func (d Diff) Changed(name string) bool {
	_, ok := d[name]
	return ok
}

// Names returns the names of all changed fields, sorted.
func (d Diff) Names() []string {
	names := make([]string, 0, len(d))
	for k := range d {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
