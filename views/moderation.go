package views

import (
	"fmt"
	"strings"
	"time"

	"equipment_borrow/api"
)

// FilterRequests 按状态标签筛选；"all" 不过滤
func FilterRequests(reqs []api.BorrowRequest, filter string) []api.BorrowRequest {
	if filter == "" || filter == api.FilterAll {
		return reqs
	}
	out := make([]api.BorrowRequest, 0, len(reqs))
	for _, r := range reqs {
		if r.Status().Label() == filter {
			out = append(out, r)
		}
	}
	return out
}

// StatusCounts 每个筛选项对应的数量，包括 all
func StatusCounts(reqs []api.BorrowRequest) map[string]int {
	counts := make(map[string]int, len(api.FilterOptions()))
	for _, opt := range api.FilterOptions() {
		counts[opt] = len(FilterRequests(reqs, opt))
	}
	return counts
}

func FilterLabel(filter string) string {
	if filter == "" || filter == api.FilterAll {
		return "Tất cả"
	}
	return filter
}

// RenderFilterOptions "1) Tất cả (12)" 这样的列表
func RenderFilterOptions(reqs []api.BorrowRequest) string {
	counts := StatusCounts(reqs)
	var b strings.Builder
	for i, opt := range api.FilterOptions() {
		fmt.Fprintf(&b, "%d) %s (%d)\n", i+1, FilterLabel(opt), counts[opt])
	}
	return b.String()
}

func FilterSummary(shown int, filter string) string {
	if filter == "" || filter == api.FilterAll {
		return fmt.Sprintf("Đang hiển thị %d yêu cầu", shown)
	}
	return fmt.Sprintf("Đang hiển thị %d yêu cầu có trạng thái %q", shown, filter)
}

func EmptyModerationText(filter string) string {
	if filter == "" || filter == api.FilterAll {
		return "Không có yêu cầu mượn thiết bị nào"
	}
	return fmt.Sprintf("Không có yêu cầu mượn thiết bị nào có trạng thái %q", filter)
}

func RenderModeration(reqs []api.BorrowRequest, filter string, loc *time.Location) string {
	var b strings.Builder
	b.WriteString("DANH SÁCH THIẾT BỊ NGƯỜI DÙNG ĐĂNG KÝ MƯỢN\n")
	shown := FilterRequests(reqs, filter)
	if len(shown) == 0 {
		b.WriteString(EmptyModerationText(filter))
		b.WriteByte('\n')
		return b.String()
	}
	b.WriteString(FilterSummary(len(shown), filter))
	b.WriteByte('\n')
	for _, r := range shown {
		st := r.Status()
		fmt.Fprintf(&b, "\n#%d  %s (%s)\n", r.ID, st.Label(), st.Color())
		fmt.Fprintf(&b, "  Tên CBVC/GV mượn: %s\n", r.BorrowerName)
		fmt.Fprintf(&b, "  Tên thiết bị mượn: %s\n", r.EquipmentName)
		fmt.Fprintf(&b, "  Phòng học mượn: %s\n", r.ClassroomName)
		fmt.Fprintf(&b, "  Số lượng mượn: %d\n", r.Quantity)
		if r.Note != "" {
			fmt.Fprintf(&b, "  Yêu cầu của người mượn: %s\n", r.Note)
		}
		fmt.Fprintf(&b, "  Ngày đăng ký mượn: %s\n", FormatTimestamp(r.RegisteredAt, loc))
		writeLifecycle(&b, r, loc)
	}
	return b.String()
}

// ReasonPrompt 选择"Đã hủy"时要求填写取消理由，其余状态为备注
func ReasonPrompt(status string) string {
	if api.ParseStatus(status) == api.StatusCancelled {
		return "Lý do hủy:"
	}
	return "Ghi chú:"
}

// RenderStatusChoices 审批弹窗的状态下拉
func RenderStatusChoices(statuses []api.ApprovalStatus) string {
	var b strings.Builder
	b.WriteString("0) Chọn trạng thái\n")
	for i, s := range statuses {
		fmt.Fprintf(&b, "%d) %s\n", i+1, s.Label)
	}
	return b.String()
}

// FindRequest 按 id 查找
func FindRequest(reqs []api.BorrowRequest, id int64) (api.BorrowRequest, bool) {
	for _, r := range reqs {
		if r.ID == id {
			return r, true
		}
	}
	return api.BorrowRequest{}, false
}
