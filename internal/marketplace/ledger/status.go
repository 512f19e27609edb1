package ledger

import "fmt"

// TaskStatus is the lifecycle state of a task. The numeric values match
// the enum discriminants of the recorded on-chain data and must not be
// reordered.
type TaskStatus uint8

const (
	StatusOpen TaskStatus = iota
	StatusInProgress
	StatusPendingApproval
	StatusCompleted
	StatusCancelled
	StatusExpired
)

func (s TaskStatus) String() string {
	switch s {
	case StatusOpen:
		return "open"
	case StatusInProgress:
		return "in_progress"
	case StatusPendingApproval:
		return "pending_approval"
	case StatusCompleted:
		return "completed"
	case StatusCancelled:
		return "cancelled"
	case StatusExpired:
		return "expired"
	}
	return fmt.Sprintf("unknown(%d)", uint8(s))
}

// Terminal reports whether no further transition may leave this state.
func (s TaskStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusExpired
}

// Category classifies a task. Opaque to the lifecycle rules beyond
// validity at creation.
type Category uint8

const (
	CategoryDevelopment Category = iota
	CategoryDesign
	CategoryWriting
	CategoryAudit
	CategoryMarketing
	CategoryOther
)

func (c Category) Valid() bool {
	return c <= CategoryOther
}

func (c Category) String() string {
	switch c {
	case CategoryDevelopment:
		return "development"
	case CategoryDesign:
		return "design"
	case CategoryWriting:
		return "writing"
	case CategoryAudit:
		return "audit"
	case CategoryMarketing:
		return "marketing"
	case CategoryOther:
		return "other"
	}
	return fmt.Sprintf("unknown(%d)", uint8(c))
}

// ParseCategory maps the string form back to a Category.
func ParseCategory(s string) (Category, error) {
	for c := CategoryDevelopment; c <= CategoryOther; c++ {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("invalid category %q", s)
}
