package jwtx_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/wattlefin/identity/pkg/jwtx"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func TestSignAndVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	signer, err := jwtx.NewSignerHS256(testSecret)
	require.NoError(t, err)
	require.NoError(t, signer.Validate())
	require.Equal(t, "HS256", signer.Alg())

	now := time.Now().UTC()
	claims := jwtx.NewSessionClaims(
		"a@x.com", "USER", "01JC0000000000000000000000",
		"identity-service", jwtx.DefaultSessionTTL, now,
	)

	token, err := signer.Sign(claims)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	verifier := jwtx.NewCommonHS256(testSecret, "identity-service")
	got, err := verifier.Verify(token)
	require.NoError(t, err)

	require.Equal(t, "a@x.com", got.Subject)
	require.Equal(t, "USER", got.Role)
	require.Equal(t, "01JC0000000000000000000000", got.UserID)
	require.WithinDuration(t, now.Add(jwtx.DefaultSessionTTL), got.ExpiresAt.Time, time.Second)
	require.NotEmpty(t, got.ID)
}

func TestRejectsShortSecret(t *testing.T) {
	t.Parallel()

	_, err := jwtx.NewSignerHS256([]byte("too-short"))
	require.Error(t, err)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	signer, err := jwtx.NewSignerHS256(testSecret)
	require.NoError(t, err)

	claims := jwtx.NewSessionClaims(
		"a@x.com", "USER", "uid", "identity-service",
		jwtx.DefaultSessionTTL, time.Now().UTC(),
	)
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	other := jwtx.NewCommonHS256([]byte("ffffffffffffffffffffffffffffffff"), "identity-service")
	_, err = other.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	signer, err := jwtx.NewSignerHS256(testSecret)
	require.NoError(t, err)

	claims := jwtx.NewSessionClaims(
		"a@x.com", "USER", "uid", "identity-service",
		time.Minute, time.Now().UTC().Add(-2*time.Minute),
	)
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	verifier := jwtx.NewCommonHS256(testSecret, "identity-service")
	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrExpired)
}

func TestVerifyRejectsMalformedToken(t *testing.T) {
	t.Parallel()

	verifier := jwtx.NewCommonHS256(testSecret, "identity-service")

	for _, bad := range []string{"", "garbage", "a.b", "a.b.c"} {
		_, err := verifier.Verify(bad)
		require.ErrorIs(t, err, jwtx.ErrMalformed, "token %q", bad)
	}
}

func TestVerifyRejectsIssuerMismatch(t *testing.T) {
	t.Parallel()

	signer, err := jwtx.NewSignerHS256(testSecret)
	require.NoError(t, err)

	claims := jwtx.NewSessionClaims(
		"a@x.com", "USER", "uid", "some-other-service",
		jwtx.DefaultSessionTTL, time.Now().UTC(),
	)
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	verifier := jwtx.NewCommonHS256(testSecret, "identity-service")
	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrIssuer)
}
