package opener

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/cells/pkg/models"
	"github.com/grovetools/cells/pkg/registry"
)

func newTestRegistry(t *testing.T, descs ...*models.NotebookTypeDescriptor) *registry.Registry {
	t.Helper()
	r := registry.New()
	for _, d := range descs {
		require.NoError(t, r.Register(d))
	}
	return r
}

func TestCanHandleNoMatch(t *testing.T) {
	r := newTestRegistry(t, &models.NotebookTypeDescriptor{
		ID:        "markdown-notebook",
		Selectors: []models.Selector{{FilenamePattern: "*.nb.md"}},
	})
	h := New(r, nil)

	assert.Equal(t, models.RankNone, h.CanHandle("notes.txt"))

	// Unmatched resources must not leave a cache entry behind.
	_, ok := h.Resolved("notes.txt")
	assert.False(t, ok)
}

func TestCanHandleRanks(t *testing.T) {
	r := newTestRegistry(t,
		&models.NotebookTypeDescriptor{
			ID:        "optional",
			Priority:  models.PriorityOption,
			Selectors: []models.Selector{{FilenamePattern: "*.md"}},
		},
		&models.NotebookTypeDescriptor{
			ID:        "claiming",
			Priority:  models.PriorityDefault,
			Selectors: []models.Selector{{FilenamePattern: "*.nb.md"}},
		},
	)
	h := New(r, nil)

	assert.Equal(t, models.RankOption, h.CanHandle("plain.md"))
	// *.nb.md matches both; the default-priority type outranks the option.
	assert.Equal(t, models.RankDefault, h.CanHandle("notes.nb.md"))

	desc, ok := h.Resolved("notes.nb.md")
	require.True(t, ok)
	assert.Equal(t, "claiming", desc.ID)
}

func TestEqualRankFirstRegisteredWins(t *testing.T) {
	r := newTestRegistry(t,
		&models.NotebookTypeDescriptor{
			ID:        "first",
			Selectors: []models.Selector{{FilenamePattern: "*.cells"}},
		},
		&models.NotebookTypeDescriptor{
			ID:        "second",
			Selectors: []models.Selector{{FilenamePattern: "*.cells"}},
		},
	)
	h := New(r, nil)

	require.Equal(t, models.RankDefault, h.CanHandle("scratch.cells"))
	desc, ok := h.Resolved("scratch.cells")
	require.True(t, ok)
	assert.Equal(t, "first", desc.ID)
}

func TestCacheInvalidatedByRegistryMutation(t *testing.T) {
	r := newTestRegistry(t, &models.NotebookTypeDescriptor{
		ID:        "optional",
		Priority:  models.PriorityOption,
		Selectors: []models.Selector{{FilenamePattern: "*.md"}},
	})
	h := New(r, nil)

	require.Equal(t, models.RankOption, h.CanHandle("doc.md"))

	// Registering a stronger type bumps the registry version, which must
	// invalidate the cached resolution on the next call.
	require.NoError(t, r.Register(&models.NotebookTypeDescriptor{
		ID:        "strong",
		Priority:  models.PriorityDefault,
		Selectors: []models.Selector{{FilenamePattern: "*.md"}},
	}))

	_, ok := h.Resolved("doc.md")
	assert.False(t, ok, "stale cache entry must not be served")

	assert.Equal(t, models.RankDefault, h.CanHandle("doc.md"))
	desc, ok := h.Resolved("doc.md")
	require.True(t, ok)
	assert.Equal(t, "strong", desc.ID)
}

func TestWidgetOptionsRequiresResolution(t *testing.T) {
	r := newTestRegistry(t, &models.NotebookTypeDescriptor{
		ID:        "markdown-notebook",
		Selectors: []models.Selector{{FilenamePattern: "*.nb.md"}},
	})
	h := New(r, nil)

	_, err := h.WidgetOptions("notes.nb.md", OpenOptions{})
	assert.ErrorIs(t, err, ErrNotResolved)

	require.GreaterOrEqual(t, h.CanHandle("notes.nb.md"), 0)
	opts, err := h.WidgetOptions("notes.nb.md", OpenOptions{ReadOnly: true})
	require.NoError(t, err)
	assert.Equal(t, "markdown-notebook", opts.NotebookType)
	assert.Equal(t, "notes.nb.md", opts.URI)
	assert.True(t, opts.ReadOnly)
}

func TestOpen(t *testing.T) {
	r := newTestRegistry(t, &models.NotebookTypeDescriptor{
		ID:        "markdown-notebook",
		Selectors: []models.Selector{{FilenamePattern: "*.nb.md"}},
	})
	h := New(r, nil)

	opts, err := h.Open("notes.nb.md", OpenOptions{})
	require.NoError(t, err)
	assert.Equal(t, "markdown-notebook", opts.NotebookType)

	_, err = h.Open("unrelated.txt", OpenOptions{})
	assert.ErrorIs(t, err, ErrNoHandler)
}

func TestEmptyRegistry(t *testing.T) {
	h := New(registry.New(), nil)
	assert.Equal(t, models.RankNone, h.CanHandle("anything.md"))
}
