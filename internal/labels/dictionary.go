// Package labels holds the static display dictionaries used on printed
// cut lists and the part classifier that decides which section a part is
// printed in.
package labels

import (
	"sort"
	"strings"
)

// Dictionary is a read-only key to display-label mapping.
type Dictionary struct {
	name    string
	entries map[string]string
}

func newDictionary(name string, entries map[string]string) Dictionary {
	return Dictionary{name: name, entries: entries}
}

// Name returns the dictionary identifier used by the API.
func (d Dictionary) Name() string { return d.name }

// Len returns the number of entries.
func (d Dictionary) Len() int { return len(d.entries) }

// Get returns the label stored under key exactly.
func (d Dictionary) Get(key string) (string, bool) {
	v, ok := d.entries[key]
	return v, ok
}

// Keys returns the dictionary keys in sorted order.
func (d Dictionary) Keys() []string {
	keys := make([]string, 0, len(d.entries))
	for k := range d.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Entries returns a copy of the mapping.
func (d Dictionary) Entries() map[string]string {
	cp := make(map[string]string, len(d.entries))
	for k, v := range d.entries {
		cp[k] = v
	}
	return cp
}

// LabelFor looks key up in d, then its lower-cased form, and finally
// returns key unchanged.
func LabelFor(d Dictionary, key string) string {
	if v, ok := d.entries[key]; ok {
		return v
	}
	if v, ok := d.entries[strings.ToLower(key)]; ok {
		return v
	}
	return key
}

// UnitTypeLabel is LabelFor(UnitTypes, key).
func UnitTypeLabel(key string) string { return LabelFor(UnitTypes, key) }

// PartNameLabel is LabelFor(PartNames, key).
func PartNameLabel(key string) string { return LabelFor(PartNames, key) }

// EdgeOptionLabel is LabelFor(EdgeOptions, key).
func EdgeOptionLabel(key string) string { return LabelFor(EdgeOptions, key) }

// ByName returns the built-in dictionary with the given API name.
func ByName(name string) (Dictionary, bool) {
	for _, d := range []Dictionary{UnitTypes, PartNames, EdgeOptions} {
		if d.name == name {
			return d, true
		}
	}
	return Dictionary{}, false
}
