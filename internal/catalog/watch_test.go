package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldReload(t *testing.T) {
	target := filepath.Join("data", "catalog.json")

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"write to target", fsnotify.Event{Name: target, Op: fsnotify.Write}, true},
		{"create target", fsnotify.Event{Name: target, Op: fsnotify.Create}, true},
		{"unclean target path", fsnotify.Event{Name: "data/./catalog.json", Op: fsnotify.Write}, true},
		{"chmod target", fsnotify.Event{Name: target, Op: fsnotify.Chmod}, false},
		{"remove target", fsnotify.Event{Name: target, Op: fsnotify.Remove}, false},
		{"write sibling", fsnotify.Event{Name: filepath.Join("data", "other.json"), Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shouldReload(tt.event, target))
		})
	}
}

const watchSkills = `["Writing"]`

func writeCatalog(t *testing.T, path, version string) {
	t.Helper()
	doc := `{"version": "` + version + `", "skill_names": ` + watchSkills + `, "occupations": [{
		"career_id": "w", "name": "Writer", "skill_vector": [0.9],
		"interest_vector": [0, 0, 1, 0, 0, 0], "value_vector": [0.5, 0.5, 0.5, 0.5, 0.5, 0.5]
	}]}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	writeCatalog(t, path, "v1")

	cache := NewCache(NewFileProvider(path), nil)
	_, err := cache.Get(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Watch(ctx, path, cache, nil) }()

	// Give the watcher time to register.
	time.Sleep(100 * time.Millisecond)
	writeCatalog(t, path, "v2")

	assert.Eventually(t, func() bool {
		return cache.Peek().Version == "v2"
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestWatch_MissingDirectory(t *testing.T) {
	cache := NewCache(NewFileProvider("/nonexistent/dir/catalog.json"), nil)
	err := Watch(context.Background(), "/nonexistent/dir/catalog.json", cache, nil)
	require.Error(t, err)
}
