package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"verse_channel_bot/internal/domain/verse"
)

func TestLoadMessageTemplate(t *testing.T) {
	t.Run("no file uses defaults", func(t *testing.T) {
		tmpl, err := LoadMessageTemplate("")
		require.NoError(t, err)
		assert.Equal(t, verse.DefaultTemplate(), tmpl)
	})

	t.Run("partial override", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "message.yaml")
		require.NoError(t, os.WriteFile(path, []byte("title: \"📜 *Daily Verse* 📜\"\nhashtags: \"#Quran\"\n"), 0o600))

		tmpl, err := LoadMessageTemplate(path)
		require.NoError(t, err)
		assert.Equal(t, "📜 *Daily Verse* 📜", tmpl.Title)
		assert.Equal(t, "#Quran", tmpl.Hashtags)
		assert.Equal(t, verse.DefaultTemplate().Blessing, tmpl.Blessing)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadMessageTemplate(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "message.yaml")
		require.NoError(t, os.WriteFile(path, []byte("title: [unclosed"), 0o600))

		_, err := LoadMessageTemplate(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse message config")
	})
}
