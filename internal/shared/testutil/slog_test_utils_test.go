package testutil

import (
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferedSlogHandler(t *testing.T) {
	t.Run("captures log records", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Info("test message", slog.String("key", "value"))
		logger.Error("error message", slog.Int("code", 500))

		assert.Len(t, handler.GetRecords(), 2)
		assert.True(t, handler.ContainsMessage("test message"))
		assert.True(t, handler.ContainsAttr("key", "value"))
	})

	t.Run("filters by level", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Debug("debug msg")
		logger.Info("info msg")
		logger.Warn("warn msg")
		logger.Error("error msg")

		assert.Len(t, handler.GetRecordsByLevel(slog.LevelInfo), 1)
		assert.Len(t, handler.GetRecordsByLevel(slog.LevelError), 1)
	})

	t.Run("derived loggers share the buffer and keep attrs", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.With(slog.String("component", "merge")).Info("merged")

		require.Equal(t, 1, handler.Count())
		assert.True(t, handler.ContainsAttr("component", "merge"))
	})

	t.Run("clear", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Info("message 1")
		logger.Info("message 2")
		assert.Equal(t, 2, handler.Count())

		handler.Clear()
		assert.Equal(t, 0, handler.Count())
	})
}

func TestFixtures(t *testing.T) {
	rows := []Row{{H: 1, K: 2, L: 3, I: 100, Sigma: 5, STL: 0.25}}
	dir := t.TempDir()

	tests := []struct {
		name      string
		file      string
		content   string
		wantLines int
	}{
		{name: "raw", file: "a.raw", content: RAW(rows), wantLines: 1},
		{name: "fco", file: "a.fco", content: FCO(rows), wantLines: 27},
		{name: "sortav", file: "a.sortav", content: Sortav(rows), wantLines: 3},
		{name: "shelx", file: "a.hkl", content: SHELX(rows), wantLines: 18},
		{name: "xd", file: "b.hkl", content: XD(rows), wantLines: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := WriteFixture(t, dir, tt.file, tt.content)

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
			assert.Len(t, lines, tt.wantLines)
		})
	}
}
