package out_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	practiceout "zenstreak/internal/modules/practice/adapter/out"
)

func TestBuiltinCatalogIsValid(t *testing.T) {
	t.Parallel()
	c, err := practiceout.NewYAMLCatalog("").Load(context.Background())
	require.NoError(t, err)
	require.Len(t, c.Types, 7)
	require.Len(t, c.Meditations, 4)
	require.Len(t, c.Quotes, 12)

	m, ok := c.Meditation("body-scan-10min")
	require.True(t, ok)
	require.Equal(t, 600, m.Seconds)
	require.Len(t, m.Phases, 5)
	require.Equal(t, "Whole Body Integration", m.Phases[4].Title)
}

func TestMissingOverrideFallsBackToBuiltin(t *testing.T) {
	t.Parallel()
	c, err := practiceout.NewYAMLCatalog(filepath.Join(t.TempDir(), "catalog.yaml")).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, c.Meditations, 4)
}

func TestOverrideCatalog(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	doc := `types:
  - id: walking
    name: Walking
meditations:
  - id: walk-2min
    title: Two Minute Walk
    type: walking
    seconds: 120
    phases:
      - title: Steps
        seconds: 120
        guidance: [Feel each step.]
quotes:
  - text: Walk as if you are kissing the earth with your feet.
    author: Thich Nhat Hanh
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	c, err := practiceout.NewYAMLCatalog(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, c.Meditations, 1)
	require.Equal(t, "walk-2min", c.Meditations[0].ID)
}

func TestOverrideCatalogRejectsUnknownFieldsAndBadSums(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	unknown := filepath.Join(dir, "unknown.yaml")
	require.NoError(t, os.WriteFile(unknown, []byte("types: []\ncolour: blue\n"), 0o644))
	_, err := practiceout.NewYAMLCatalog(unknown).Load(context.Background())
	require.Error(t, err)

	badSum := filepath.Join(dir, "sum.yaml")
	doc := `types: [{id: mantra, name: Mantra}]
meditations:
  - id: short
    type: mantra
    seconds: 100
    phases: [{title: Om, seconds: 90, guidance: [Om.]}]
quotes: [{text: q, author: a}]
`
	require.NoError(t, os.WriteFile(badSum, []byte(doc), 0o644))
	_, err = practiceout.NewYAMLCatalog(badSum).Load(context.Background())
	require.ErrorContains(t, err, "phases sum")
}
