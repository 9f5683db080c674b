package scaling

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeSample(t *testing.T) {
	m := Mapping{RawMin: 4000, RawMax: 20000, EngMin: 0, EngMax: 60}

	t.Run("structured text carries the affine form", func(t *testing.T) {
		code, err := m.CodeSample(PlatformST)
		require.NoError(t, err)
		assert.Contains(t, code, "(rawValue - 4000)")
		assert.Contains(t, code, "(20000 - 4000)")
		assert.Contains(t, code, "(60 - 0) + 0")
		assert.NotContains(t, code, "IF engValue", "no clamp block without Clamp")
	})

	t.Run("clamp flag emits a limit block", func(t *testing.T) {
		clamped := m
		clamped.Clamp = true

		code, err := clamped.CodeSample(PlatformST)
		require.NoError(t, err)
		assert.Contains(t, code, "IF engValue < 0")
		assert.Contains(t, code, "ELSIF engValue > 60")

		rw, err := clamped.CodeSample(PlatformRockwell)
		require.NoError(t, err)
		assert.Contains(t, rw, "LIM 0 EngValue 60")
	})

	t.Run("rockwell renders a CPT expression", func(t *testing.T) {
		code, err := m.CodeSample(PlatformRockwell)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(code, "CPT EngValue"))
	})

	t.Run("unknown platform rejected", func(t *testing.T) {
		_, err := m.CodeSample(Platform("ladder95"))
		assert.Error(t, err)
	})

	t.Run("invalid mapping rejected before rendering", func(t *testing.T) {
		bad := Mapping{RawMin: 1, RawMax: 1, EngMin: 0, EngMax: 60}
		_, err := bad.CodeSample(PlatformST)
		assert.ErrorIs(t, err, ErrDegenerateRange)
	})
}
