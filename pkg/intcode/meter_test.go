package intcode

import (
	"errors"
	"testing"
)

func TestStepMeterUnlimited(t *testing.T) {
	m := NewStepMeter(0)
	for i := 0; i < 1000; i++ {
		if err := m.Consume(); err != nil {
			t.Fatalf("Consume() failed at %d: %v", i, err)
		}
	}
	if m.Used() != 1000 {
		t.Errorf("Used() = %d, want 1000", m.Used())
	}
	if m.Remaining() != 0 || m.Limit() != 0 {
		t.Errorf("Remaining() = %d, Limit() = %d, want 0, 0", m.Remaining(), m.Limit())
	}
}

func TestStepMeterLimit(t *testing.T) {
	m := NewStepMeter(3)
	for i := 0; i < 3; i++ {
		if err := m.Consume(); err != nil {
			t.Fatalf("Consume() failed at %d: %v", i, err)
		}
	}
	if m.Remaining() != 0 {
		t.Errorf("Remaining() = %d, want 0", m.Remaining())
	}

	err := m.Consume()
	if !errors.Is(err, ErrStepLimitExceeded) {
		t.Fatalf("Consume() = %v, want ErrStepLimitExceeded", err)
	}
	if m.Used() != 3 {
		t.Errorf("Used() = %d after exceeding, want 3", m.Used())
	}
}
