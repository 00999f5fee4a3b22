package cryptox_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wattlefin/identity/pkg/cryptox"
)

// fastParams keeps the argon2 cost low so the suite stays quick.
var fastParams = cryptox.Argon2Params{
	Memory:      8 * 1024,
	Iterations:  1,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

func TestHashAndVerify(t *testing.T) {
	t.Parallel()

	h := cryptox.NewArgon2HasherWithParams("test-pepper", fastParams)

	hash, err := h.Hash("correct horse battery staple")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))
	require.NotContains(t, hash, "correct horse battery staple")

	require.NoError(t, h.Verify("correct horse battery staple", hash))
	require.ErrorIs(t, h.Verify("wrong password", hash), cryptox.ErrPasswordMismatch)
}

func TestHashIsSaltedPerCall(t *testing.T) {
	t.Parallel()

	h := cryptox.NewArgon2HasherWithParams("test-pepper", fastParams)

	first, err := h.Hash("same input")
	require.NoError(t, err)
	second, err := h.Hash("same input")
	require.NoError(t, err)

	require.NotEqual(t, first, second)
	require.NoError(t, h.Verify("same input", first))
	require.NoError(t, h.Verify("same input", second))
}

func TestVerifyReadsParamsFromHash(t *testing.T) {
	t.Parallel()

	old := cryptox.NewArgon2HasherWithParams("test-pepper", fastParams)
	hash, err := old.Hash("password1")
	require.NoError(t, err)

	// A hasher configured with different cost still verifies old hashes.
	current := cryptox.NewArgon2HasherWithParams("test-pepper", cryptox.Argon2Params{
		Memory:      16 * 1024,
		Iterations:  2,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	})
	require.NoError(t, current.Verify("password1", hash))
}

func TestPepperIsPartOfTheHash(t *testing.T) {
	t.Parallel()

	a := cryptox.NewArgon2HasherWithParams("pepper-a", fastParams)
	b := cryptox.NewArgon2HasherWithParams("pepper-b", fastParams)

	hash, err := a.Hash("password1")
	require.NoError(t, err)

	require.ErrorIs(t, b.Verify("password1", hash), cryptox.ErrPasswordMismatch)
}

func TestVerifyRejectsMalformedHashes(t *testing.T) {
	t.Parallel()

	h := cryptox.NewArgon2HasherWithParams("test-pepper", fastParams)

	for _, bad := range []string{
		"",
		"plaintext",
		"$bcrypt$v=19$m=8,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=8,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=8,t=1,p=1$!!!$aGFzaA",
	} {
		err := h.Verify("password1", bad)
		require.Error(t, err)
		require.NotErrorIs(t, err, cryptox.ErrPasswordMismatch)
	}
}
