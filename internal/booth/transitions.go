package booth

import "ms-booths/internal/models"

// TransitionRules maps a current status to the statuses an admin may move it
// to. A missing entry means nothing is reachable from that status.
type TransitionRules map[models.BoothStatus][]models.BoothStatus

// DefaultRules permits every transition between the three statuses, matching
// the historical behavior of the admin workflow.
func DefaultRules() TransitionRules {
	all := []models.BoothStatus{models.StatusPending, models.StatusAccepted, models.StatusRejected}
	return TransitionRules{
		models.StatusPending:  all,
		models.StatusAccepted: all,
		models.StatusRejected: all,
	}
}

// StrictRules only allows the forward accept/reject flow: a Pending booth can
// be accepted or rejected, an Accepted one can still be rejected, and a
// Rejected one can be reset to Pending.
func StrictRules() TransitionRules {
	return TransitionRules{
		models.StatusPending:  {models.StatusAccepted, models.StatusRejected},
		models.StatusAccepted: {models.StatusRejected},
		models.StatusRejected: {models.StatusPending},
	}
}

func (r TransitionRules) Allowed(from, to models.BoothStatus) bool {
	if from == to {
		return true
	}
	for _, s := range r[from] {
		if s == to {
			return true
		}
	}
	return false
}
