package document

// Record list operations over the ordered history lists embedded in the
// document (address and BASS rejection history). History order is
// append-at-end; the most recent entry is always the last element, and
// reinstatement pops in LIFO order.

// AppendRecord appends entry to the list at path, creating the list when
// absent. An absent or empty history is valid.
func (d Document) AppendRecord(entry map[string]any, path ...string) {
	list, _ := d.Get(path...)
	items, _ := list.([]any)
	items = append(items, entry)
	d.Set(items, path...)
}

// LastRecord returns the most recent entry of the list at path.
func (d Document) LastRecord(path ...string) (map[string]any, bool) {
	list, ok := d.Get(path...)
	if !ok {
		return nil, false
	}
	items, ok := list.([]any)
	if !ok || len(items) == 0 {
		return nil, false
	}
	entry, ok := items[len(items)-1].(map[string]any)
	return entry, ok
}

// PopRecord removes and returns the most recent entry of the list at path.
func (d Document) PopRecord(path ...string) (map[string]any, bool) {
	entry, ok := d.LastRecord(path...)
	if !ok {
		return nil, false
	}
	list, _ := d.Get(path...)
	items := list.([]any)
	d.Set(items[:len(items)-1], path...)
	return entry, true
}

// RecordCount returns the length of the list at path, 0 when absent.
func (d Document) RecordCount(path ...string) int {
	list, ok := d.Get(path...)
	if !ok {
		return 0
	}
	items, ok := list.([]any)
	if !ok {
		return 0
	}
	return len(items)
}
