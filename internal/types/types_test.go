package types

import (
	"errors"
	"testing"
)

func TestHashBase58RoundTrip(t *testing.T) {
	var h Hash
	for i := range h {
		h[i] = byte(i * 7)
	}

	s := h.String()
	back, err := HashFromBase58(s)
	if err != nil {
		t.Fatalf("HashFromBase58(%q) failed: %v", s, err)
	}
	if back != h {
		t.Errorf("round trip = %x, want %x", back, h)
	}
	if len(h.Short()) != 8 || h.Short() != s[:8] {
		t.Errorf("Short() = %q, want prefix of %q", h.Short(), s)
	}
}

func TestHashFromBytes(t *testing.T) {
	if _, err := HashFromBytes(make([]byte, 31)); !errors.Is(err, ErrInvalidHash) {
		t.Errorf("HashFromBytes(31 bytes) = %v, want ErrInvalidHash", err)
	}
	h, err := HashFromBytes(make([]byte, HashSize))
	if err != nil {
		t.Fatalf("HashFromBytes failed: %v", err)
	}
	if !h.IsZero() {
		t.Error("IsZero() = false for zero hash")
	}
}

func TestHashFromBase58Invalid(t *testing.T) {
	if _, err := HashFromBase58("0OIl"); err == nil {
		t.Error("HashFromBase58 accepted invalid alphabet")
	}
	if _, err := HashFromBase58("3mJr7AoUXx2Wqd"); !errors.Is(err, ErrInvalidHash) {
		t.Errorf("HashFromBase58(short) = %v, want ErrInvalidHash", err)
	}
}
