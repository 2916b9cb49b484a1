package views

import (
	"fmt"
	"time"
)

const NoInfo = "Chưa có thông tin"

var weekdays = [...]string{
	time.Sunday:    "Chủ Nhật",
	time.Monday:    "Thứ Hai",
	time.Tuesday:   "Thứ Ba",
	time.Wednesday: "Thứ Tư",
	time.Thursday:  "Thứ Năm",
	time.Friday:    "Thứ Sáu",
	time.Saturday:  "Thứ Bảy",
}

// FormatTimestamp 秒级时间戳 → "Thứ Hai, 15 tháng 1, 2024 lúc 10:30"；≤0 视为未发生
func FormatTimestamp(ts int64, loc *time.Location) string {
	if ts <= 0 {
		return NoInfo
	}
	if loc == nil {
		loc = time.Local
	}
	t := time.Unix(ts, 0).In(loc)
	return fmt.Sprintf("%s, %d tháng %d, %d lúc %02d:%02d",
		weekdays[t.Weekday()], t.Day(), int(t.Month()), t.Year(), t.Hour(), t.Minute())
}

// FormatOptional 可空时间戳
func FormatOptional(ts *int64, loc *time.Location) string {
	if ts == nil {
		return NoInfo
	}
	return FormatTimestamp(*ts, loc)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
