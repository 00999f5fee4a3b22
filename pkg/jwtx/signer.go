package jwtx

// Signer is our interface for anything that can sign session tokens.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
	Validate() error
}

// NewSignerHS256 creates an HMAC-SHA256 signer from a server-held secret.
// The secret must be at least MinSecretBytes long.
func NewSignerHS256(secret []byte) (Signer, error) {
	return newHS256Signer(secret)
}
