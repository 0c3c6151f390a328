package intcode

// StepMeter counts executed instructions against an optional budget.
type StepMeter struct {
	used  uint64
	limit uint64 // 0 means unlimited
}

// NewStepMeter creates a meter. A limit of 0 disables the budget.
func NewStepMeter(limit uint64) *StepMeter {
	return &StepMeter{limit: limit}
}

// Consume records one instruction. It fails without recording once the
// budget is spent.
func (m *StepMeter) Consume() error {
	if m.limit != 0 && m.used >= m.limit {
		return newError(KindStepLimitExceeded)
	}
	m.used++
	return nil
}

// Used returns the number of instructions recorded.
func (m *StepMeter) Used() uint64 {
	return m.used
}

// Remaining returns the instructions left in the budget, or 0 when unlimited.
func (m *StepMeter) Remaining() uint64 {
	if m.limit == 0 {
		return 0
	}
	return m.limit - m.used
}

// Limit returns the budget, 0 meaning unlimited.
func (m *StepMeter) Limit() uint64 {
	return m.limit
}
