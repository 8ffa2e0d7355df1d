package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/citadel/config"
	"github.com/s0up4200/citadel/filter"
)

func TestParseIDs(t *testing.T) {
	ids, err := parseIDs([]string{"1", "#2", "826"})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 826}, ids)

	for _, bad := range []string{"0", "-3", "rick", ""} {
		_, err := parseIDs([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestSetupLogger(t *testing.T) {
	t.Run("quiet discards", func(t *testing.T) {
		logger, closer, err := setupLogger(config.LoggingConfig{Level: "info", Format: "console"}, true)
		require.NoError(t, err)
		assert.Nil(t, closer)
		assert.Equal(t, zerolog.Disabled, logger.GetLevel())
	})

	t.Run("file output", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "citadel.log")
		logger, closer, err := setupLogger(config.LoggingConfig{Level: "debug", Format: "json", File: path}, true)
		require.NoError(t, err)
		require.NotNil(t, closer)

		logger.Info().Str("kind", "initial").Msg("Fetch complete")
		require.NoError(t, closer.Close())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"kind":"initial"`)
		assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
	})

	t.Run("unwritable file", func(t *testing.T) {
		_, _, err := setupLogger(config.LoggingConfig{Level: "info", File: filepath.Join(t.TempDir(), "missing", "x.log")}, false)
		assert.Error(t, err)
	})

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func TestResolveFilter(t *testing.T) {
	filters = filter.NewManager()
	t.Cleanup(func() {
		filterExpr, preset = "", ""
		_ = filters.Close(context.Background())
	})
	require.NoError(t, filters.RegisterPresets(presetsFromConfig(config.FilterConfig{
		Presets: map[string]config.PresetConfig{
			"humans": {Expression: `Species == "Human"`},
		},
	})))
	cfg = &config.Config{Filter: config.FilterConfig{DefaultExpression: `isAlive()`}}
	logger = zerolog.Nop()

	f, err := resolveFilter()
	require.NoError(t, err)
	assert.Equal(t, `isAlive()`, f.Expression())

	preset = "humans"
	f, err = resolveFilter()
	require.NoError(t, err)
	assert.Equal(t, `Species == "Human"`, f.Expression())

	filterExpr, preset = `isDead()`, ""
	f, err = resolveFilter()
	require.NoError(t, err)
	assert.Equal(t, `isDead()`, f.Expression())

	filterExpr, preset = "", "missing"
	_, err = resolveFilter()
	assert.ErrorIs(t, err, filter.ErrUnknownPreset)
}

func TestSearchRejectsBlankName(t *testing.T) {
	for _, args := range [][]string{{"   "}, {"", "\t"}} {
		err := runSearch(searchCmd, args)
		assert.ErrorIs(t, err, errBlankQuery)
	}
}
