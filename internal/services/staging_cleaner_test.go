package services

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func Test_StagingCleaner_ShouldRemoveOnlyStaleFiles(t *testing.T) {
	dir := t.TempDir()

	stale := filepath.Join(dir, "stale.png")
	fresh := filepath.Join(dir, "fresh.png")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0644))
	require.NoError(t, os.WriteFile(fresh, []byte("new"), 0644))
	old := time.Now().Add(-3 * time.Hour)
	require.NoError(t, os.Chtimes(stale, old, old))

	cleaner, err := NewStagingCleaner(dir, time.Hour)
	require.NoError(t, err)
	defer cleaner.Stop()

	removed, err := cleaner.removeOlderThan(time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	assert.NoFileExists(t, stale)
	assert.FileExists(t, fresh)
}

func Test_StagingCleaner_MissingDir_IsNotAnError(t *testing.T) {
	cleaner, err := NewStagingCleaner(filepath.Join(t.TempDir(), "absent"), time.Hour)
	require.NoError(t, err)
	defer cleaner.Stop()

	removed, err := cleaner.removeOlderThan(time.Now())
	assert.NoError(t, err)
	assert.Zero(t, removed)
}

func Test_NewStagingCleaner_InvalidMaxAge_ShouldFail(t *testing.T) {
	_, err := NewStagingCleaner(t.TempDir(), 0)
	assert.Error(t, err)
}
