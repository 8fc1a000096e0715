package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mozvip/gopho/scale"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	prefs, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, NewPreferences(), prefs)
	assert.Equal(t, Size{W: 800, H: 600}, prefs.WindowedSize)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	data := []byte(`scale_mode: fullscreen
delay_seconds: 4
presentation: true
remove_borders: true
windowed_size:
  w: 1024
  h: 768
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), data, 0644))

	prefs, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, scale.FullScreen, prefs.ScaleMode)
	assert.Equal(t, 1.0, prefs.ScaleRatio)
	assert.Equal(t, 4, prefs.DelaySeconds)
	assert.True(t, prefs.Presentation)
	assert.True(t, prefs.RemoveBorders)
	assert.False(t, prefs.Debug)
	assert.Equal(t, Size{W: 1024, H: 768}, prefs.WindowedSize)
}

func TestLoadRejectsBadValues(t *testing.T) {
	for name, body := range map[string]string{
		"mode":  "scale_mode: sideways\n",
		"ratio": "scale_ratio: -2\n",
		"delay": "delay_seconds: -1\n",
		"yaml":  "scale_ratio: [\n",
	} {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(body), 0644))
			_, err := Load(dir)
			assert.Error(t, err)
		})
	}
}

func TestLoadRepairsWindowSize(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("windowed_size: {w: 0, h: 0}\n"), 0644))
	prefs, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, Size{W: 800, H: 600}, prefs.WindowedSize)
}
