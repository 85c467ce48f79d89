// Package document implements the free-form nested licence document and the
// path operations the workflow components perform on it. The document has no
// fixed schema; shape is enforced by the form configuration used to build it.
package document

import "reflect"

// Document is the licence body: section name -> form name -> answers. Values
// are the types produced by encoding/json: string, []any, map[string]any.
type Document map[string]any

// Copy returns a deep copy. Callers mutate the copy and compare against the
// original to detect no-op writes.
func (d Document) Copy() Document {
	if d == nil {
		return nil
	}
	return copyValue(map[string]any(d)).(map[string]any)
}

func copyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			out[k] = copyValue(inner)
		}
		return out
	case Document:
		return copyValue(map[string]any(val))
	case []any:
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = copyValue(inner)
		}
		return out
	default:
		return v
	}
}

// Equal reports deep equality of two documents.
func (d Document) Equal(other Document) bool {
	if len(d) == 0 && len(other) == 0 {
		return true
	}
	return reflect.DeepEqual(map[string]any(d), map[string]any(other))
}

// Get returns the value at path, walking nested maps.
func (d Document) Get(path ...string) (any, bool) {
	var current any = map[string]any(d)
	for _, key := range path {
		m, ok := asMap(current)
		if !ok {
			return nil, false
		}
		current, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// GetString returns the string at path, or "" when absent or not a string.
func (d Document) GetString(path ...string) string {
	v, ok := d.Get(path...)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetMap returns the map at path, or nil when absent or not a map.
func (d Document) GetMap(path ...string) map[string]any {
	v, ok := d.Get(path...)
	if !ok {
		return nil
	}
	m, _ := asMap(v)
	return m
}

// Set writes value at path, creating intermediate maps as needed. The
// receiver is mutated; use Copy first when the original must be preserved.
func (d Document) Set(value any, path ...string) {
	if len(path) == 0 {
		return
	}
	current := map[string]any(d)
	for _, key := range path[:len(path)-1] {
		next, ok := asMap(current[key])
		if !ok {
			next = map[string]any{}
			current[key] = next
		}
		current = next
	}
	current[path[len(path)-1]] = value
}

// SetIfPresent writes value at path unless value is nil. Used by reinstate,
// which must leave absent fields untouched rather than writing nulls.
func (d Document) SetIfPresent(value any, path ...string) {
	if value == nil {
		return
	}
	d.Set(value, path...)
}

// Remove deletes the value at path. Removing an absent path is a no-op.
func (d Document) Remove(path ...string) {
	if len(path) == 0 {
		return
	}
	current := map[string]any(d)
	for _, key := range path[:len(path)-1] {
		next, ok := asMap(current[key])
		if !ok {
			return
		}
		current = next
	}
	delete(current, path[len(path)-1])
}

// RemovePaths deletes every listed path.
func (d Document) RemovePaths(paths [][]string) {
	for _, p := range paths {
		d.Remove(p...)
	}
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Document:
		return map[string]any(m), true
	default:
		return nil, false
	}
}

// AllValuesEmpty reports whether every value in m is empty: "" for strings,
// nil, or an empty nested map/list. Used to drop blank repeatable entries.
func AllValuesEmpty(m map[string]any) bool {
	for _, v := range m {
		if !valueEmpty(v) {
			return false
		}
	}
	return true
}

func valueEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case map[string]any:
		return AllValuesEmpty(val)
	case []any:
		for _, item := range val {
			if !valueEmpty(item) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
