// Package selection tracks which visible assets are chosen for a bulk operation and maps
// keyboard shortcuts onto it.
package selection

// Set holds the selected ids of the visible page. Ids outside the page can never be
// selected. A Set is owned by one caller and is not safe for concurrent use.
type Set struct {
	visible  []string
	index    map[string]struct{}
	selected map[string]struct{}
}

func NewSet() *Set {
	return &Set{
		index:    map[string]struct{}{},
		selected: map[string]struct{}{},
	}
}

// SetVisible replaces the visible page. Selected ids that left the page are dropped.
func (s *Set) SetVisible(ids []string) {
	s.visible = append(s.visible[:0], ids...)
	s.index = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		s.index[id] = struct{}{}
	}

	for id := range s.selected {
		if _, ok := s.index[id]; !ok {
			delete(s.selected, id)
		}
	}
}

// Toggle flips id and reports whether it is now selected.
func (s *Set) Toggle(id string) bool {
	if _, ok := s.index[id]; !ok {
		return false
	}

	if _, ok := s.selected[id]; ok {
		delete(s.selected, id)

		return false
	}
	s.selected[id] = struct{}{}

	return true
}

func (s *Set) SelectAll() {
	for _, id := range s.visible {
		s.selected[id] = struct{}{}
	}
}

func (s *Set) Clear() {
	clear(s.selected)
}

func (s *Set) IsSelected(id string) bool {
	_, ok := s.selected[id]

	return ok
}

func (s *Set) Len() int {
	return len(s.selected)
}

// Selected returns the selection in page order.
func (s *Set) Selected() []string {
	out := make([]string, 0, len(s.selected))
	for _, id := range s.visible {
		if _, ok := s.selected[id]; ok {
			out = append(out, id)
		}
	}

	return out
}
