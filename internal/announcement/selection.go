package announcement

import (
	"errors"
	"sync"

	"github.com/vendorlink/supplier-dashboard/internal/notice"
)

// ErrEmptySelection is returned when a selection change would leave zero
// products selected. The change is reverted; at least one product always
// stays selected.
var ErrEmptySelection = errors.New("at least one product must remain selected")

// Product is one entry of the product multi-select filter.
type Product struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Selected bool   `json:"selected"`
}

// DefaultProducts is the initial product filter, everything selected.
func DefaultProducts() []Product {
	return []Product{
		{Key: "Bearings", Name: "Bearings", Selected: true},
		{Key: "Hydraulic Pumps", Name: "Hydraulic Pumps", Selected: true},
		{Key: "Valves", Name: "Valves", Selected: true},
	}
}

// Selection is the dashboard session's filter state: the product
// multi-select and the current announcement category.
type Selection struct {
	notices *notice.Center

	mu       sync.Mutex
	products []Product
	category string
}

// NewSelection creates the session filter state with every product selected
// and the announcement category set to "All".
func NewSelection(notices *notice.Center) *Selection {
	return &Selection{
		notices:  notices,
		products: DefaultProducts(),
		category: CategoryAll,
	}
}

// Products returns a copy of the product filter entries.
func (s *Selection) Products() []Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out
}

// SetSelectedProducts applies a new set of selected product keys. A change
// that would deselect everything is rejected: the previous selection is
// kept, a validation warning is published, and ErrEmptySelection returned.
func (s *Selection) SetSelectedProducts(keys []string) error {
	selected := map[string]bool{}
	for _, key := range keys {
		selected[key] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	any := false
	for _, p := range s.products {
		if selected[p.Key] {
			any = true
			break
		}
	}
	if !any {
		s.notices.Warnf("At least one product must remain selected")
		return ErrEmptySelection
	}

	for i := range s.products {
		s.products[i].Selected = selected[s.products[i].Key]
	}
	return nil
}

// Category returns the current announcement category selection.
func (s *Selection) Category() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.category
}

// SetCategory records a new announcement category selection.
func (s *Selection) SetCategory(category string) {
	if category == "" {
		category = CategoryAll
	}
	s.mu.Lock()
	s.category = category
	s.mu.Unlock()
}
