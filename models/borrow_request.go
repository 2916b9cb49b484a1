// models/borrow_request.go
package models

import "time"

const (
	BorrowRequestTable   = "borrow_requests"
	BorrowStatusLogTable = "borrow_status_logs"
)

// BorrowRequest Status 存状态标签原文（Đang chờ duyệt / Đã duyệt ...）
type BorrowRequest struct {
	ID           int64     `gorm:"primaryKey"`
	UserID       string    `gorm:"type:uuid;index;not null"`
	User         User      `gorm:"constraint:OnDelete:CASCADE"`
	EquipmentID  int64     `gorm:"index;not null"`
	Equipment    Equipment `gorm:"constraint:OnDelete:RESTRICT"`
	ClassroomID  int64     `gorm:"index;not null"`
	Classroom    Classroom `gorm:"constraint:OnDelete:RESTRICT"`
	Quantity     int       `gorm:"not null;check:quantity > 0"`
	Note         string    `gorm:"size:500"`
	Status       string    `gorm:"size:50;index;not null"`
	CancelReason *string   `gorm:"size:500"`

	RegisteredAt time.Time `gorm:"index;not null"`
	CancelledAt  *time.Time
	BorrowedAt   *time.Time
	ReturnedAt   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BorrowStatusLog 每次状态变更一条审计记录
type BorrowStatusLog struct {
	ID         string    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RequestID  int64     `gorm:"index;not null" json:"requestId"`
	FromStatus string    `gorm:"size:50;not null" json:"fromStatus"`
	ToStatus   string    `gorm:"size:50;not null" json:"toStatus"`
	ActorEmail string    `gorm:"size:255" json:"actorEmail"`
	Reason     *string   `json:"reason,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (BorrowRequest) TableName() string   { return BorrowRequestTable }
func (BorrowStatusLog) TableName() string { return BorrowStatusLogTable }
