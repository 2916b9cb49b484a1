package db

import "equipment_borrow/api"

var transitions = map[api.Status][]api.Status{
	api.StatusPending:  {api.StatusApproved, api.StatusRejected, api.StatusCancelled},
	api.StatusApproved: {api.StatusReturned},
}

func ValidTransition(from, to api.Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ModeratorStatuses 审批员可选的目标状态（下拉列表）
func ModeratorStatuses() []api.Status {
	return []api.Status{api.StatusApproved, api.StatusReturned, api.StatusCancelled, api.StatusRejected}
}
