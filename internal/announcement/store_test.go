package announcement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleItems() []Item {
	return []Item{
		{Category: "RFQ", Title: "RFQ for bearings Q3"},
		{Category: "Business Announcement", Title: "New supplier portal"},
		{Category: "RFQ", Title: "RFQ for valves"},
		{Category: "Urgent", Title: "Plant shutdown notice"},
	}
}

func TestFilterAllReturnsMaster(t *testing.T) {
	store := NewStore(sampleItems())
	assert.Equal(t, store.All(), store.Filter(CategoryAll))
}

func TestFilterByCategoryPreservesOrder(t *testing.T) {
	store := NewStore(sampleItems())

	filtered := store.Filter("RFQ")
	require.Len(t, filtered, 2)
	assert.Equal(t, "RFQ for bearings Q3", filtered[0].Title)
	assert.Equal(t, "RFQ for valves", filtered[1].Title)
}

func TestFilterUnknownCategoryIsEmpty(t *testing.T) {
	store := NewStore(sampleItems())
	assert.Empty(t, store.Filter("Maintenance"))
}

// The master list must survive any sequence of filters: narrowing to a
// category and then selecting "All" restores the full original set.
func TestFilterNeverNarrowsMaster(t *testing.T) {
	items := sampleItems()
	store := NewStore(items)

	store.Filter("RFQ")
	store.Filter("Urgent")
	store.Filter("does-not-exist")

	assert.Equal(t, items, store.Filter(CategoryAll))
	assert.Equal(t, items, store.All())
	assert.Len(t, store.Filter("RFQ"), 2, "repeated filters stay repeatable")
}

func TestStoreCopiesInput(t *testing.T) {
	items := sampleItems()
	store := NewStore(items)

	items[0].Title = "mutated by caller"
	assert.Equal(t, "RFQ for bearings Q3", store.All()[0].Title)
}

func TestCategories(t *testing.T) {
	store := NewStore(sampleItems())
	assert.Equal(t,
		[]string{"All", "RFQ", "Business Announcement", "Urgent"},
		store.Categories())
}

func TestDisplayLookups(t *testing.T) {
	assert.Equal(t, "sap-icon://bell", Icon("Business Announcement"))
	assert.Equal(t, "sap-icon://hint", Icon("Something Else"))
	assert.Equal(t, "Accent4", Color("Urgent"))
	assert.Equal(t, "Accent6", Color("Something Else"))
	assert.Equal(t, "Error", StatusState("Alert"))
	assert.Equal(t, "None", StatusState("Something Else"))
}
