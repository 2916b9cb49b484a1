package db

import (
	"testing"

	"equipment_borrow/api"
)

func TestValidTransition(t *testing.T) {
	tests := []struct {
		from, to api.Status
		ok       bool
	}{
		{api.StatusPending, api.StatusApproved, true},
		{api.StatusPending, api.StatusRejected, true},
		{api.StatusPending, api.StatusCancelled, true},
		{api.StatusApproved, api.StatusReturned, true},
		{api.StatusPending, api.StatusReturned, false},
		{api.StatusApproved, api.StatusCancelled, false},
		{api.StatusReturned, api.StatusApproved, false},
		{api.StatusCancelled, api.StatusPending, false},
		{api.StatusRejected, api.StatusApproved, false},
		{api.StatusUnknown, api.StatusApproved, false},
	}
	for _, tt := range tests {
		if got := ValidTransition(tt.from, tt.to); got != tt.ok {
			t.Errorf("%s -> %s: got %v want %v", tt.from, tt.to, got, tt.ok)
		}
	}
}

func TestModeratorStatusesAreReachable(t *testing.T) {
	for _, to := range ModeratorStatuses() {
		reachable := false
		for from := range transitions {
			if ValidTransition(from, to) {
				reachable = true
			}
		}
		if !reachable {
			t.Errorf("%s offered to moderators but never reachable", to)
		}
	}
}
