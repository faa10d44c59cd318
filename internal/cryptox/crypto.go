// Package cryptox implements the password hashing policy: salted Argon2id
// digests stored in a self-describing PHC-style string, so that verification
// needs no out-of-band knowledge of the hash parameters.
package cryptox

import (
	"context"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/jfmartinez/credvault/internal/common"
	"golang.org/x/crypto/argon2"
)

// Argon2id cost parameters. Memory-hard: 64 MiB per hash.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4

	saltSize = 16
	keySize  = 32

	// maxMemory caps the m= parameter accepted from a stored hash (KiB).
	// A corrupt record must not be able to demand an arbitrary allocation.
	maxMemory = 1 << 21 // 2 GiB
)

var (
	// ErrMalformedHash indicates a stored hash that cannot be decoded.
	ErrMalformedHash = errors.New("malformed password hash")

	// ErrUnsupportedHash indicates a decodable hash produced by an
	// algorithm or version this build cannot verify.
	ErrUnsupportedHash = errors.New("unsupported password hash")
)

// HashSecret derives a salted Argon2id digest of secret using a fresh random
// salt and returns it encoded as
//
//	$argon2id$v=19$m=65536,t=1,p=4$<base64(salt)>$<base64(key)>
//
// Hashing the same secret twice yields different strings (random salt), yet
// both verify. The derivation is CPU/memory-bound and honors ctx cancellation.
func HashSecret(ctx context.Context, secret []byte) (string, error) {
	salt := common.GenerateRandByteArray(saltSize)

	key, err := deriveKey(ctx, secret, salt)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key)), nil
}

// VerifySecret reports whether secret matches the encoded hash. The digest is
// recomputed with the salt and cost parameters embedded in the hash and
// compared in constant time.
func VerifySecret(ctx context.Context, secret []byte, encoded string) (bool, error) {
	salt, key, memory, time, threads, err := decodeHash(encoded)
	if err != nil {
		return false, err
	}

	candidate, err := deriveKeyWithParams(ctx, secret, salt, time, memory, threads, uint32(len(key)))
	if err != nil {
		return false, err
	}

	return subtle.ConstantTimeCompare(key, candidate) == 1, nil
}

// deriveKey runs Argon2id with the package cost parameters.
func deriveKey(ctx context.Context, secret, salt []byte) ([]byte, error) {
	return deriveKeyWithParams(ctx, secret, salt, argonTime, argonMemory, argonThreads, keySize)
}

// deriveKeyWithParams offloads the derivation to a goroutine so callers are
// not stalled past ctx cancellation. The computation has no side effects, so
// an abandoned derivation needs no rollback.
func deriveKeyWithParams(ctx context.Context, secret, salt []byte, time, memory uint32, threads uint8, keyLen uint32) ([]byte, error) {
	done := make(chan []byte, 1)

	go func() {
		done <- argon2.IDKey(secret, salt, time, memory, threads, keyLen)
	}()

	select {
	case key := <-done:
		return key, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// decodeHash strictly parses a PHC-style Argon2id string.
func decodeHash(encoded string) (salt, key []byte, memory, time uint32, threads uint8, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return nil, nil, 0, 0, 0, ErrMalformedHash
	}

	if parts[1] != "argon2id" {
		return nil, nil, 0, 0, 0, ErrUnsupportedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, nil, 0, 0, 0, ErrMalformedHash
	}
	if version != argon2.Version {
		return nil, nil, 0, 0, 0, ErrUnsupportedHash
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return nil, nil, 0, 0, 0, ErrMalformedHash
	}
	// argon2.IDKey panics on zero rounds or zero lanes, so a corrupt record
	// with t=0 or p=0 must be rejected here, as an error, not downstream.
	if time < 1 || threads < 1 || memory < 1 || memory > maxMemory {
		return nil, nil, 0, 0, 0, ErrMalformedHash
	}

	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, 0, 0, 0, ErrMalformedHash
	}

	key, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return nil, nil, 0, 0, 0, ErrMalformedHash
	}

	return salt, key, memory, time, threads, nil
}
