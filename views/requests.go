package views

import (
	"fmt"
	"strings"
	"time"

	"equipment_borrow/api"
)

const EmptyMyRequestsText = "Chưa có thiết bị nào được mượn"

// RenderMyRequests 用户自己的申请卡片；只有待审批的申请显示取消操作
func RenderMyRequests(reqs []api.BorrowRequest, loc *time.Location) string {
	var b strings.Builder
	b.WriteString("DANH SÁCH THIẾT BỊ ĐÃ MƯỢN\n")
	if len(reqs) == 0 {
		b.WriteString(EmptyMyRequestsText)
		b.WriteByte('\n')
		return b.String()
	}
	for i, r := range reqs {
		st := r.Status()
		fmt.Fprintf(&b, "\n[%d] #%d  %s (%s)\n", i+1, r.ID, st.Label(), st.Color())
		fmt.Fprintf(&b, "  Tên thiết bị: %s\n", orDefault(r.EquipmentName, NoInfo))
		fmt.Fprintf(&b, "  Phòng học: %s\n", orDefault(r.ClassroomName, NoInfo))
		fmt.Fprintf(&b, "  Số lượng mượn: %d\n", r.Quantity)
		fmt.Fprintf(&b, "  Yêu cầu: %s\n", orDefault(r.Note, "Không có"))
		fmt.Fprintf(&b, "  Ngày đăng ký: %s\n", FormatTimestamp(r.RegisteredAt, loc))
		writeLifecycle(&b, r, loc)
		if st.CanCancel() {
			fmt.Fprintf(&b, "  -> huy %d: Hủy yêu cầu\n", r.ID)
		}
	}
	return b.String()
}

// writeLifecycle 只输出已经发生的时间点
func writeLifecycle(b *strings.Builder, r api.BorrowRequest, loc *time.Location) {
	if happened(r.BorrowedAt) {
		fmt.Fprintf(b, "  Ngày mượn: %s\n", FormatOptional(r.BorrowedAt, loc))
	}
	if happened(r.ReturnedAt) {
		fmt.Fprintf(b, "  Ngày trả: %s\n", FormatOptional(r.ReturnedAt, loc))
	}
	if happened(r.CancelledAt) {
		fmt.Fprintf(b, "  Ngày hủy: %s\n", FormatOptional(r.CancelledAt, loc))
	}
	if r.CancelReason != nil && *r.CancelReason != "" {
		label := "Lý do hủy"
		if r.Status() == api.StatusRejected {
			label = "Ghi chú"
		}
		fmt.Fprintf(b, "  %s: %s\n", label, *r.CancelReason)
	}
}

func happened(ts *int64) bool { return ts != nil && *ts > 0 }

// FindCancelable 按 id 查找仍可取消的申请
func FindCancelable(reqs []api.BorrowRequest, id int64) (api.BorrowRequest, bool) {
	for _, r := range reqs {
		if r.ID == id && r.Status().CanCancel() {
			return r, true
		}
	}
	return api.BorrowRequest{}, false
}
