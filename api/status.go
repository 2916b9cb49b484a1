// api/status.go
package api

import "strings"

// Status 借用申请状态；流转只由后端决定，客户端只负责展示和可用操作
type Status int

const (
	StatusUnknown Status = iota
	StatusPending
	StatusApproved
	StatusReturned
	StatusCancelled
	StatusRejected
)

const (
	LabelPending   = "Đang chờ duyệt"
	LabelApproved  = "Đã duyệt"
	LabelReturned  = "Đã trả"
	LabelCancelled = "Đã hủy"
	LabelRejected  = "Từ chối"
	LabelUnknown   = "Không xác định"

	FilterAll = "all"
)

type Action string

const ActionCancel Action = "cancel"

type statusInfo struct {
	label   string
	color   string
	actions []Action
}

// label → 颜色 → 可用操作，所有界面共用这一张表
var statusTable = map[Status]statusInfo{
	StatusPending:   {label: LabelPending, color: "#ff9800", actions: []Action{ActionCancel}},
	StatusApproved:  {label: LabelApproved, color: "#4caf50"},
	StatusReturned:  {label: LabelReturned, color: "#2196f3"},
	StatusCancelled: {label: LabelCancelled, color: "#f44336"},
	StatusRejected:  {label: LabelRejected, color: "#f44336"},
	StatusUnknown:   {label: LabelUnknown, color: "#666"},
}

var knownStatuses = []Status{StatusPending, StatusApproved, StatusReturned, StatusCancelled, StatusRejected}

// ParseStatus 未知或空标签一律归为 StatusUnknown
func ParseStatus(label string) Status {
	label = strings.TrimSpace(label)
	for _, s := range knownStatuses {
		if statusTable[s].label == label {
			return s
		}
	}
	return StatusUnknown
}

func (s Status) info() statusInfo {
	if in, ok := statusTable[s]; ok {
		return in
	}
	return statusTable[StatusUnknown]
}

func (s Status) Label() string  { return s.info().label }
func (s Status) String() string { return s.info().label }
func (s Status) Color() string  { return s.info().color }

func (s Status) Actions() []Action {
	acts := s.info().actions
	out := make([]Action, len(acts))
	copy(out, acts)
	return out
}

func (s Status) Allows(a Action) bool {
	for _, x := range s.info().actions {
		if x == a {
			return true
		}
	}
	return false
}

// CanCancel 只有待审批的申请允许借用人取消
func (s Status) CanCancel() bool { return s.Allows(ActionCancel) }

// Known 返回五个已知状态（固定顺序）
func Known() []Status {
	out := make([]Status, len(knownStatuses))
	copy(out, knownStatuses)
	return out
}

// FilterOptions 审批界面的筛选项：all + 五个状态标签
func FilterOptions() []string {
	opts := []string{FilterAll}
	for _, s := range knownStatuses {
		opts = append(opts, s.Label())
	}
	return opts
}
