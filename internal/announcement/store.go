package announcement

// CategoryAll is the selection value that shows every announcement.
const CategoryAll = "All"

// Item is one announcement from the local announcements resource.
type Item struct {
	Category    string `json:"category"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

// Store holds the immutable master announcement list. Filtering is a pure
// projection of the master; the master itself is never narrowed, so
// selecting "All" after any filter sequence restores the full set.
type Store struct {
	master []Item
}

// NewStore creates a store over its own copy of the given items.
func NewStore(items []Item) *Store {
	master := make([]Item, len(items))
	copy(master, items)
	return &Store{master: master}
}

// All returns the master list.
func (s *Store) All() []Item {
	return s.master
}

// Filter returns the announcements matching the selected category in
// original order. "All" returns the master list.
func (s *Store) Filter(category string) []Item {
	if category == CategoryAll {
		return s.master
	}
	filtered := make([]Item, 0, len(s.master))
	for _, item := range s.master {
		if item.Category == category {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// Categories returns the distinct categories present in the master list, in
// first-appearance order, prefixed with "All".
func (s *Store) Categories() []string {
	seen := map[string]bool{}
	categories := []string{CategoryAll}
	for _, item := range s.master {
		if item.Category != "" && !seen[item.Category] {
			seen[item.Category] = true
			categories = append(categories, item.Category)
		}
	}
	return categories
}
