package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		wantLevel zerolog.Level
	}{
		{name: "default level", cfg: Config{}, wantLevel: zerolog.WarnLevel},
		{name: "debug", cfg: Config{Level: "debug"}, wantLevel: zerolog.DebugLevel},
		{name: "upper case", cfg: Config{Level: "ERROR"}, wantLevel: zerolog.ErrorLevel},
		{name: "invalid falls back", cfg: Config{Level: "loud"}, wantLevel: zerolog.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(&bytes.Buffer{}, tt.cfg)
			assert.Equal(t, tt.wantLevel, l.GetLevel())
		})
	}
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l := ComponentLogger(New(&buf, Config{Level: "info", Format: FormatJSON}), "engine")
	l.Info().Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["message"])
	assert.Equal(t, "engine", entry["component"])
}

func TestFromContext(t *testing.T) {
	t.Run("no logger", func(t *testing.T) {
		l := FromContext(context.Background())
		require.NotNil(t, l)
		l.Error().Msg("dropped")
	})

	t.Run("stored logger", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(&buf, Config{Level: "debug", Format: FormatJSON})
		ctx := l.WithContext(context.Background())
		FromContext(ctx).Debug().Msg("from ctx")
		assert.Contains(t, buf.String(), "from ctx")
	})
}

func TestRunID(t *testing.T) {
	id := NewRunID()
	_, err := ulid.Parse(id)
	require.NoError(t, err)

	ctx := context.Background()
	assert.Empty(t, RunIDFromContext(ctx))
	assert.NotEmpty(t, GetOrGenerateRunID(ctx))

	ctx = ContextWithRunID(ctx, id)
	assert.Equal(t, id, RunIDFromContext(ctx))
	assert.Equal(t, id, GetOrGenerateRunID(ctx))
}
