package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePatch(t *testing.T) {
	t.Run("strings numbers and booleans", func(t *testing.T) {
		patch, err := parsePatch([]string{
			"title=Buy milk",
			"progress=42",
			"enabled=true",
		})
		require.NoError(t, err)
		assert.JSONEq(t, `{"title":"Buy milk","progress":42,"enabled":true}`, string(patch))
	})

	t.Run("value with equals sign", func(t *testing.T) {
		patch, err := parsePatch([]string{"notes=a=b"})
		require.NoError(t, err)
		assert.JSONEq(t, `{"notes":"a=b"}`, string(patch))
	})

	t.Run("empty value", func(t *testing.T) {
		patch, err := parsePatch([]string{"notes="})
		require.NoError(t, err)
		assert.JSONEq(t, `{"notes":""}`, string(patch))
	})

	t.Run("missing equals sign", func(t *testing.T) {
		_, err := parsePatch([]string{"title"})
		assert.Error(t, err)
	})

	t.Run("empty field name", func(t *testing.T) {
		_, err := parsePatch([]string{"=value"})
		assert.Error(t, err)
	})
}
