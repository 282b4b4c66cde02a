package errors

import (
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "without cause",
			err:  NewNoDataError("no data in 2"),
			want: "[NO_DATA] no data in 2",
		},
		{
			name: "with cause",
			err:  NewConfigError("read config", errors.New("permission denied")),
			want: "[CONFIG] read config: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	_, cause := strconv.ParseFloat("abc", 64)
	err := NewFormatError("x.raw", 3, "invalid intensity", cause)

	assert.True(t, errors.Is(err, strconv.ErrSyntax))
}

func TestIsType(t *testing.T) {
	wrapped := fmt.Errorf("load dataset 1: %w", NewFormatError("x.raw", 3, "short line", nil))

	assert.True(t, IsType(wrapped, ErrTypeFormat))
	assert.False(t, IsType(wrapped, ErrTypeNoData))
	assert.False(t, IsType(errors.New("plain"), ErrTypeFormat))

	typ, ok := TypeOf(wrapped)
	require.True(t, ok)
	assert.Equal(t, ErrTypeFormat, typ)
}

func TestConstructors(t *testing.T) {
	t.Run("format error without line", func(t *testing.T) {
		err := NewFormatError("a.xyz", 0, "unsupported extension", nil)
		assert.Equal(t, "a.xyz", err.Context["path"])
		_, hasLine := err.Context["line"]
		assert.False(t, hasLine)
	})

	t.Run("unknown symmetry", func(t *testing.T) {
		err := NewUnknownSymmetryError("p42")
		assert.Equal(t, ErrTypeSymmetry, err.Type)
		assert.Contains(t, err.Message, `"p42"`)
	})

	t.Run("data mismatch", func(t *testing.T) {
		err := NewDataMismatchError(10, 9)
		assert.Equal(t, "data mismatch: 10 != 9", err.Message)
		assert.Equal(t, 10, err.Context["first"])
		assert.Equal(t, 9, err.Context["second"])
	})
}
