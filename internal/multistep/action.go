package multistep

import (
	"fmt"

	"github.com/bnema/usergrid-go/internal/domain"
)

// Action tags the step a compound operation has outstanding.
type Action int

const (
	ActionNone Action = iota
	ActionCreateActivity
	ActionPostActivity
	ActionCreateGroupActivity
	ActionPostGroupActivity
	ActionCleanup
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionCreateActivity:
		return "create_activity"
	case ActionPostActivity:
		return "post_activity"
	case ActionCreateGroupActivity:
		return "create_group_activity"
	case ActionPostGroupActivity:
		return "post_group_activity"
	case ActionCleanup:
		return "cleanup"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Target says whether the activity is posted to a user or a group.
type Target int

const (
	TargetUser Target = iota
	TargetGroup
)

func (t Target) createAction() Action {
	if t == TargetGroup {
		return ActionCreateGroupActivity
	}
	return ActionCreateActivity
}

// Record is the bookkeeping of one compound operation in flight.
type Record struct {
	// TransactionID is the channel id of the step outstanding.
	TransactionID domain.TransactionID
	NextAction    Action
	OutwardID     domain.TransactionID
	TargetID      string
	Activity      domain.Entity
	ActivityID    string
	// ReportToClient is false while the outstanding step is intermediate.
	// Nothing is delivered for a record that has not set it.
	ReportToClient bool

	token      string
	generation uint64
	deliver    Deliver
}
