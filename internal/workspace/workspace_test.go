package workspace

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_NewDirConcurrentUnique(t *testing.T) {
	m, err := NewManager(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)

	const workers = 50
	dirs := make([]string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			dir, err := m.NewDir()
			assert.NoError(t, err)
			dirs[i] = dir
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool, workers)
	for _, dir := range dirs {
		require.NotEmpty(t, dir)
		assert.False(t, seen[dir], "workspace name collision: %s", dir)
		seen[dir] = true
		assert.DirExists(t, dir)
	}
}

func TestManager_Release(t *testing.T) {
	m, err := NewManager(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)

	dir, err := m.NewDir()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "artifact.pdf"), []byte("x"), 0o600))

	m.Release(dir)
	assert.NoDirExists(t, dir)

	// Releasing a gone or empty dir must be harmless.
	m.Release(dir)
	m.Release("")
}

func TestManager_SweepOnlyOldPrefixedDirs(t *testing.T) {
	base := t.TempDir()
	m, err := NewManager(base, zerolog.Nop())
	require.NoError(t, err)

	old, err := m.NewDir()
	require.NoError(t, err)
	past := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(old, past, past))

	fresh, err := m.NewDir()
	require.NoError(t, err)

	foreign := filepath.Join(base, "unrelated-dir")
	require.NoError(t, os.Mkdir(foreign, 0o700))
	require.NoError(t, os.Chtimes(foreign, past, past))

	m.Sweep(30 * time.Minute)

	assert.NoDirExists(t, old)
	assert.DirExists(t, fresh)
	assert.DirExists(t, foreign, "sweep must not touch dirs it did not create")
}
