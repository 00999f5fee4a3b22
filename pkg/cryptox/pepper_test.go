package cryptox_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wattlefin/identity/pkg/cryptox"
)

func TestLoadOrGeneratePepper(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "pepper")

	first, err := cryptox.LoadOrGeneratePepper(path)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	// The generated value must be persisted and stable across loads.
	second, err := cryptox.LoadOrGeneratePepper(path)
	require.NoError(t, err)
	require.Equal(t, first, second)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, first, string(data))
}

func TestLoadOrGeneratePepperUsesExistingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "pepper")
	require.NoError(t, os.WriteFile(path, []byte("preseeded-pepper"), 0600))

	pepper, err := cryptox.LoadOrGeneratePepper(path)
	require.NoError(t, err)
	require.Equal(t, "preseeded-pepper", pepper)
}
