package db

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"equipment_borrow/models"
)

func logStatusChange(tx *gorm.DB, requestID int64, from, to, actorEmail string, reason *string) error {
	entry := &models.BorrowStatusLog{
		RequestID:  requestID,
		FromStatus: from,
		ToStatus:   to,
		ActorEmail: actorEmail,
		Reason:     reason,
	}
	if err := tx.Create(entry).Error; err != nil {
		return fmt.Errorf("insert status log: %w", err)
	}
	return nil
}

// ListStatusLogs 某申请的状态历史，按时间正序
func (r *Repo) ListStatusLogs(ctx context.Context, requestID int64) ([]models.BorrowStatusLog, error) {
	var logs []models.BorrowStatusLog
	err := r.DB.WithContext(ctx).
		Where("request_id = ?", requestID).
		Order("created_at ASC").
		Find(&logs).Error
	return logs, err
}
