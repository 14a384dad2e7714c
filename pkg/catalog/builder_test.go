package catalog

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_FromLayout(t *testing.T) {
	root := filepath.Join(t.TempDir(), "lib")
	entries := []Entry{
		{Name: "text", FilePath: filepath.Join(root, "input", "text", "text.props.js")},
		{Name: "button", FilePath: filepath.Join(root, "basic", "button", "button.props.js")},
		{Name: "label", FilePath: filepath.Join(root, "label.props.js")},
	}

	cat, err := Build(BuildConfig{RootDir: root}, entries)
	require.NoError(t, err)

	assert.Equal(t, "lib", cat.Name)
	assert.Equal(t, "1.0", cat.Version)
	require.Len(t, cat.Widgets, 3)
	assert.Equal(t, "button", cat.Widgets[0].Name)
	assert.Equal(t, "basic", cat.Widgets[0].Category)
	assert.Equal(t, "button", cat.Widgets[0].ID)
	assert.Equal(t, "components", cat.Widgets[1].Category)
	assert.Equal(t, "input", cat.Widgets[2].Category)

	var names []string
	for _, c := range cat.Categories {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"basic", "components", "input"}, names)
}

func TestBuild_DuplicateNames(t *testing.T) {
	root := t.TempDir()
	cat, err := Build(BuildConfig{RootDir: root, Name: "dup"}, []Entry{
		{Name: "button", FilePath: filepath.Join(root, "a", "button.props.js")},
		{Name: "wm-button", FilePath: filepath.Join(root, "b", "wm-button.props.js")},
	})
	require.NoError(t, err)
	require.Len(t, cat.Widgets, 1)
	assert.Equal(t, "a", cat.Widgets[0].Category)
}

func TestBuild_MergesBase(t *testing.T) {
	base := &Catalog{
		Name:       "base",
		Version:    "2",
		Categories: []Category{{Name: "data", Description: "Data widgets"}},
		Widgets: []Widget{
			{Name: "progressbar", Category: "data", ID: "progress-bar", Description: "Shows progress", Aliases: []string{"progress"}},
		},
	}
	qs := NewQueryService(base, base.BuildIndex())

	root := t.TempDir()
	cat, err := Build(BuildConfig{RootDir: root, Base: qs}, []Entry{
		{Name: "progressbar", FilePath: filepath.Join(root, "misc", "progressbar.props.js")},
	})
	require.NoError(t, err)

	require.Len(t, cat.Widgets, 1)
	w := cat.Widgets[0]
	assert.Equal(t, "data", w.Category)
	assert.Equal(t, "progress-bar", w.ID)
	assert.Equal(t, []string{"progress"}, w.Aliases)
	require.Len(t, cat.Categories, 1)
	assert.Equal(t, "Data widgets", cat.Categories[0].Description)
}

func TestBuild_Empty(t *testing.T) {
	cat, err := Build(BuildConfig{Name: "empty"}, nil)
	require.NoError(t, err)
	assert.Empty(t, cat.Widgets)
	assert.Empty(t, cat.Categories)
}

func TestComputeCategory(t *testing.T) {
	root := "/lib"
	assert.Equal(t, "basic", computeCategory("/lib/basic/button/button.props.js", root))
	assert.Equal(t, "components", computeCategory("/lib/button.props.js", root))
	assert.Equal(t, "components", computeCategory("/elsewhere/x.props.js", root))
	assert.Equal(t, "components", computeCategory("/lib/x.props.js", ""))
}
