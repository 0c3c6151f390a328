package loader

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/sha3"

	"github.com/fortiblox/intcode/internal/types"
)

// HashAlgorithm names a fingerprint hash function.
type HashAlgorithm string

// Supported fingerprint algorithms.
const (
	HashBlake3    HashAlgorithm = "blake3"
	HashKeccak256 HashAlgorithm = "keccak256"
)

// ErrUnknownAlgorithm is returned for an unsupported HashAlgorithm.
var ErrUnknownAlgorithm = errors.New("unknown hash algorithm")

// ParseHashAlgorithm validates an algorithm name. The empty string selects
// blake3.
func ParseHashAlgorithm(name string) (HashAlgorithm, error) {
	switch HashAlgorithm(name) {
	case "", HashBlake3:
		return HashBlake3, nil
	case HashKeccak256:
		return HashKeccak256, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
}

func newHasher(algo HashAlgorithm) (hash.Hash, error) {
	switch algo {
	case "", HashBlake3:
		return blake3.New(), nil
	case HashKeccak256:
		return sha3.NewLegacyKeccak256(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algo)
	}
}

// Fingerprint hashes a memory tape. Cells are fed to the hash as 8-byte
// little-endian words, so the fingerprint does not depend on text formatting.
func Fingerprint(memory []int64, algo HashAlgorithm) (types.Hash, error) {
	h, err := newHasher(algo)
	if err != nil {
		return types.Hash{}, err
	}

	var cell [8]byte
	for _, v := range memory {
		binary.LittleEndian.PutUint64(cell[:], uint64(v))
		h.Write(cell[:])
	}

	return types.HashFromBytes(h.Sum(nil))
}
