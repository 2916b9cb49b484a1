package controllers

import (
	"errors"
	"log"

	"equipment_borrow/api"
	"equipment_borrow/db"
)

const (
	msgLoginOK          = "Đăng nhập thành công"
	msgAccountNotFound  = "Tài khoản không tồn tại trong hệ thống"
	msgLoggedOut        = "Đăng xuất thành công"
	msgBorrowOK         = "Đăng ký mượn thiết bị thành công, vui lòng chờ duyệt"
	msgCancelOK         = "Hủy yêu cầu mượn thành công"
	msgStatusUpdated    = "Cập nhật trạng thái thành công"
	msgOnlyPending      = "Chỉ có thể hủy yêu cầu đang chờ duyệt"
	msgNotOwner         = "Bạn không thể hủy yêu cầu của người khác"
	msgInsufficient     = "Số lượng mượn vượt quá số lượng còn lại"
	msgInvalidQuantity  = "Số lượng mượn không hợp lệ"
	msgEquipmentMissing = "Không tìm thấy thiết bị"
	msgClassroomMissing = "Không tìm thấy phòng học"
	msgRequestMissing   = "Không tìm thấy yêu cầu mượn"
	msgBadTransition    = "Không thể chuyển yêu cầu sang trạng thái này"
	msgUnknownStatus    = "Trạng thái không hợp lệ"
	msgEquipmentDiffers = "Thiết bị không khớp với yêu cầu mượn"
)

var errMessages = []struct {
	err error
	msg string
}{
	{db.ErrUserNotFound, msgAccountNotFound},
	{db.ErrEquipmentNotFound, msgEquipmentMissing},
	{db.ErrClassroomNotFound, msgClassroomMissing},
	{db.ErrRequestNotFound, msgRequestMissing},
	{db.ErrInvalidQuantity, msgInvalidQuantity},
	{db.ErrInsufficientStock, msgInsufficient},
	{db.ErrNotPending, msgOnlyPending},
	{db.ErrNotOwner, msgNotOwner},
	{db.ErrInvalidTransition, msgBadTransition},
	{db.ErrUnknownStatus, msgUnknownStatus},
	{db.ErrEquipmentMismatch, msgEquipmentDiffers},
}

// messageFor 业务错误映射为提示语；其他错误记录日志后返回通用提示
func messageFor(op string, err error) string {
	for _, m := range errMessages {
		if errors.Is(err, m.err) {
			return m.msg
		}
	}
	log.Printf("controllers: %s: %v", op, err)
	return api.GenericFailureMessage
}
