package cryptox_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wattlefin/identity/pkg/cryptox"
)

func TestGenerateOTPFormat(t *testing.T) {
	t.Parallel()

	for range 200 {
		code, err := cryptox.GenerateOTP()
		require.NoError(t, err)
		require.Len(t, code, 6)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, 100000)
		require.LessOrEqual(t, n, 999999)
	}
}

func TestGenerateOTPVaries(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{})
	for range 50 {
		code, err := cryptox.GenerateOTP()
		require.NoError(t, err)
		seen[code] = struct{}{}
	}

	// 50 draws from a 900k space colliding down to a handful would mean
	// the source is broken.
	require.Greater(t, len(seen), 40)
}
