// Package password hashes and verifies account passwords with Argon2id.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	hashTime    uint32 = 1
	hashMemory  uint32 = 64 * 1024
	hashThreads uint8  = 4
	hashKeyLen  uint32 = 32
	hashSaltLen        = 16
)

// Hash returns the password encoded in the standard argon2id format.
func Hash(plain string) (string, error) {
	salt := make([]byte, hashSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	key := argon2.IDKey([]byte(plain), salt, hashTime, hashMemory, hashThreads, hashKeyLen)

	return fmt.Sprintf("$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		hashMemory, hashTime, hashThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify reports whether plain matches the encoded hash. Parameters are read
// from the encoding so old hashes keep verifying after a cost change.
func Verify(plain, encoded string) bool {
	memory, timeCost, threads, salt, key, ok := decode(encoded)
	if !ok {
		return false
	}
	check := argon2.IDKey([]byte(plain), salt, timeCost, memory, threads, uint32(len(key)))
	return subtle.ConstantTimeCompare(key, check) == 1
}

func decode(encoded string) (memory, timeCost uint32, threads uint8, salt, key []byte, ok bool) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" || parts[2] != "v=19" {
		return 0, 0, 0, nil, nil, false
	}

	params := strings.Split(parts[3], ",")
	if len(params) != 3 {
		return 0, 0, 0, nil, nil, false
	}
	m, err := parseParam(params[0], "m=", 32)
	if err != nil {
		return 0, 0, 0, nil, nil, false
	}
	t, err := parseParam(params[1], "t=", 32)
	if err != nil {
		return 0, 0, 0, nil, nil, false
	}
	p, err := parseParam(params[2], "p=", 8)
	if err != nil {
		return 0, 0, 0, nil, nil, false
	}

	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return 0, 0, 0, nil, nil, false
	}
	key, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return 0, 0, 0, nil, nil, false
	}

	return uint32(m), uint32(t), uint8(p), salt, key, true
}

func parseParam(raw, prefix string, bits int) (uint64, error) {
	val, found := strings.CutPrefix(raw, prefix)
	if !found {
		return 0, fmt.Errorf("malformed hash parameter %q", raw)
	}
	return strconv.ParseUint(val, 10, bits)
}
