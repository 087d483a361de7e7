package graphics

// Item is a resource owned by an ItemManager.
type Item interface {
	comparable
	Destroy()
}

// ItemManager owns a list of device resources. Callers keep the returned
// values as borrowed references that stay valid until Remove.
type ItemManager[T Item] struct {
	items []T
}

// Add takes ownership of item.
func (m *ItemManager[T]) Add(item T) {
	m.items = append(m.items, item)
}

// Remove destroys item and drops it from the manager. Removing the zero
// value, an unknown item or an already removed item does nothing.
func (m *ItemManager[T]) Remove(item T) bool {
	var zero T
	if item == zero {
		return false
	}
	i := m.Index(item)
	if i < 0 {
		return false
	}
	m.items = append(m.items[:i], m.items[i+1:]...)
	item.Destroy()
	return true
}

// Size returns the number of owned items.
func (m *ItemManager[T]) Size() int {
	return len(m.items)
}

// Get returns item i, or the zero value when i is out of range.
func (m *ItemManager[T]) Get(i int) T {
	if i < 0 || i >= len(m.items) {
		var zero T
		return zero
	}
	return m.items[i]
}

// Index returns the position of item, or -1.
func (m *ItemManager[T]) Index(item T) int {
	for i, it := range m.items {
		if it == item {
			return i
		}
	}
	return -1
}

// Contains reports whether the manager owns item.
func (m *ItemManager[T]) Contains(item T) bool {
	return m.Index(item) >= 0
}

// Clear destroys every item, newest first.
func (m *ItemManager[T]) Clear() {
	for i := len(m.items) - 1; i >= 0; i-- {
		m.items[i].Destroy()
	}
	m.items = nil
}
