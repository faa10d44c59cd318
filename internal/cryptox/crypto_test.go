package cryptox

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashSecret_Format(t *testing.T) {
	ctx := context.Background()

	hash, err := HashSecret(ctx, []byte("secret1"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=65536,t=1,p=4$"))
	require.Len(t, strings.Split(hash, "$"), 6)
}

func TestHashSecret_SaltsDiffer(t *testing.T) {
	ctx := context.Background()

	a, err := HashSecret(ctx, []byte("secret1"))
	require.NoError(t, err)
	b, err := HashSecret(ctx, []byte("secret1"))
	require.NoError(t, err)

	// random salt: same secret, different encodings
	require.NotEqual(t, a, b)

	for _, hash := range []string{a, b} {
		ok, err := VerifySecret(ctx, []byte("secret1"), hash)
		require.NoError(t, err)
		require.True(t, ok)
	}
}

func TestVerifySecret_WrongSecret(t *testing.T) {
	ctx := context.Background()

	hash, err := HashSecret(ctx, []byte("secret1"))
	require.NoError(t, err)

	ok, err := VerifySecret(ctx, []byte("wrong"), hash)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerifySecret_Malformed(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		encoded string
		want    error
	}{
		{"empty", "", ErrMalformedHash},
		{"plaintext", "secret1", ErrMalformedHash},
		{"wrong algorithm", "$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$a2V5", ErrUnsupportedHash},
		{"wrong version", "$argon2id$v=18$m=65536,t=1,p=4$c2FsdA$a2V5", ErrUnsupportedHash},
		{"bad params", "$argon2id$v=19$m=x,t=y,p=z$c2FsdA$a2V5", ErrMalformedHash},
		{"bad salt b64", "$argon2id$v=19$m=65536,t=1,p=4$!!!$a2V5", ErrMalformedHash},
		{"empty key", "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$", ErrMalformedHash},
		// a corrupt record must come back as an error, never crash the
		// derivation
		{"zero rounds", "$argon2id$v=19$m=65536,t=0,p=4$c2FsdA$a2V5", ErrMalformedHash},
		{"zero lanes", "$argon2id$v=19$m=65536,t=1,p=0$c2FsdA$a2V5", ErrMalformedHash},
		{"zero memory", "$argon2id$v=19$m=0,t=1,p=4$c2FsdA$a2V5", ErrMalformedHash},
		{"absurd memory", "$argon2id$v=19$m=4294967295,t=1,p=4$c2FsdA$a2V5", ErrMalformedHash},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := VerifySecret(ctx, []byte("secret1"), tc.encoded)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestVerifySecret_EmbeddedParamsHonored(t *testing.T) {
	ctx := context.Background()

	hash, err := HashSecret(ctx, []byte("secret1"))
	require.NoError(t, err)

	// The stored parameters drive the recomputation: weakening the cost
	// section changes the derived digest, so the same secret no longer
	// matches.
	tampered := strings.Replace(hash, "m=65536,t=1,p=4", "m=1024,t=2,p=1", 1)
	require.NotEqual(t, hash, tampered)

	ok, err := VerifySecret(ctx, []byte("secret1"), tampered)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestHashSecret_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := HashSecret(ctx, []byte("secret1"))
	require.ErrorIs(t, err, context.Canceled)
}
