package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "engine.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[engine]
name = "test"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Engine.Name)
	assert.Equal(t, 50*time.Millisecond, cfg.Engine.TickRate)
	assert.Equal(t, int32(16), cfg.World.ChunkSizeX)
	assert.Equal(t, int32(256), cfg.World.ChunkSizeY)
	assert.Equal(t, int32(2), cfg.World.RenderDistance)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.NotZero(t, cfg.Engine.StartTime)
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
[world]
chunk_size_x = 32
chunk_size_z = 32
render_distance = 4
max_render_distance = 320.0

[logging]
level = "debug"
format = "json"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int32(32), cfg.World.ChunkSizeX)
	assert.Equal(t, int32(4), cfg.World.RenderDistance)
	assert.Equal(t, 320.0, cfg.World.MaxRenderDistance)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadRejectsInvalidWorld(t *testing.T) {
	for name, body := range map[string]string{
		"zero chunk size": `
[world]
chunk_size_x = 0
`,
		"negative render distance": `
[world]
render_distance = -1
`,
		"zero render distance": `
[world]
render_distance = 0
`,
		"zero max render distance": `
[world]
max_render_distance = 0.0
`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
