package localdata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestLoadResources(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "announcements.json", `{
		"announcements": {"items": [
			{"category": "RFQ", "title": "RFQ for bearings"},
			{"category": "Urgent", "title": "Plant shutdown"}
		]}
	}`)
	writeFile(t, dir, "categories.json", `{"categories": ["Bearings", "Valves"]}`)

	source := Load(dir, zap.NewNop())

	assert.Equal(t, []string{"announcements", "categories"}, source.Names())

	payload, ok := source.Resource("categories")
	require.True(t, ok)
	assert.JSONEq(t, `{"categories": ["Bearings", "Valves"]}`, string(payload))

	_, ok = source.Resource("compliance")
	assert.False(t, ok, "missing files are simply absent")

	items, err := source.Announcements()
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "RFQ", items[0].Category)
	assert.Equal(t, "Plant shutdown", items[1].Title)
}

func TestLoadSkipsInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "compliance.json", `{not json`)

	source := Load(dir, zap.NewNop())

	_, ok := source.Resource("compliance")
	assert.False(t, ok)
}

func TestAnnouncementsAbsentResource(t *testing.T) {
	source := Load(t.TempDir(), zap.NewNop())

	items, err := source.Announcements()
	require.NoError(t, err)
	assert.Empty(t, items)
}
