package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDocumentsSortsByNameAndAssignsSequentialIDs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("beta content"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("alpha content"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden"), []byte("ignored"), 0o644))

	docs, err := loadDocuments(dir)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a.txt", docs[0].Name)
	assert.Equal(t, 1, docs[0].ID)
	assert.Equal(t, "b.txt", docs[1].Name)
	assert.Equal(t, 2, docs[1].ID)
}

func TestLoadDocumentsMissingDirReturnsError(t *testing.T) {
	_, err := loadDocuments(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
