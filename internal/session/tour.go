package session

// Tour is the cursor over the onboarding steps.
type Tour struct {
	step  int
	total int
}

func NewTour(total int) *Tour {
	return &Tour{total: total}
}

func (t *Tour) Step() int  { return t.step }
func (t *Tour) Total() int { return t.total }

// Last reports whether the cursor is on the final step.
func (t *Tour) Last() bool { return t.step >= t.total-1 }

// Next advances one step. It reports false on the last step, where the
// caller finishes the tour instead.
func (t *Tour) Next() bool {
	if t.Last() {
		return false
	}
	t.step++
	return true
}

func (t *Tour) Back() bool {
	if t.step == 0 {
		return false
	}
	t.step--
	return true
}

func (t *Tour) Reset() { t.step = 0 }
