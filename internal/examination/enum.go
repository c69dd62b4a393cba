package examination

// Status is the forward-only lifecycle of an examination:
// PENDING → IN_PROGRESS → COMPLETED → EVALUATED.
type Status string

const (
	PENDING     Status = "PENDING"
	IN_PROGRESS Status = "IN_PROGRESS"
	COMPLETED   Status = "COMPLETED"
	EVALUATED   Status = "EVALUATED"
)

var AllStatuses = []Status{
	PENDING,
	IN_PROGRESS,
	COMPLETED,
	EVALUATED,
}

func (s Status) IsValid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Next returns the only status reachable from s, or empty if s is terminal.
func (s Status) Next() Status {
	switch s {
	case PENDING:
		return IN_PROGRESS
	case IN_PROGRESS:
		return COMPLETED
	case COMPLETED:
		return EVALUATED
	default:
		return ""
	}
}
