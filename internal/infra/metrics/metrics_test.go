package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textfile(t *testing.T, r *Recorder) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "verse_bot.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	return string(data)
}

func TestRecorder_ObservePost(t *testing.T) {
	r := NewRecorder()

	r.ObservePost("DONE", 4, 6236, nil)
	r.ObservePost("LOADED", 0, 6236, errors.New("not connected"))
	r.ObserveStateFallback()

	out := textfile(t, r)
	assert.Contains(t, out, `verse_bot_posts_total{phase="DONE",result="success"} 1`)
	assert.Contains(t, out, `verse_bot_posts_total{phase="LOADED",result="failure"} 1`)
	assert.Contains(t, out, "verse_bot_cursor 4\n", "failed cycles must not move the cursor gauge")
	assert.Contains(t, out, "verse_bot_dataset_size 6236\n")
	assert.Contains(t, out, "verse_bot_state_fallback_total 1\n")
	assert.Contains(t, out, "verse_bot_last_success_timestamp_seconds ")
}

func TestRecorder_FreshRegistry(t *testing.T) {
	out := textfile(t, NewRecorder())

	assert.Contains(t, out, "verse_bot_cursor 0\n")
	assert.NotContains(t, out, "verse_bot_posts_total{")

	families, err := NewRecorder().Registry().Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}
