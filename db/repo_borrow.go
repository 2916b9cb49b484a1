// db/repo_borrow.go
package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"equipment_borrow/api"
	"equipment_borrow/models"
)

type BorrowParams struct {
	Email         string
	EquipmentName string
	ClassroomName string
	Quantity      int
	Note          string
}

// CreateBorrowRequest 锁住设备行检查可借数量，登记一条待审批申请；
// 库存在审批通过时才扣减
func (r *Repo) CreateBorrowRequest(ctx context.Context, in BorrowParams) (*models.BorrowRequest, error) {
	if in.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	u, err := r.FindUserByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}

	var req *models.BorrowRequest
	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		e, err := findEquipmentByName(tx.Clauses(clause.Locking{Strength: "UPDATE"}), in.EquipmentName)
		if err != nil {
			return err
		}
		if in.Quantity > e.Quantity {
			return ErrInsufficientStock
		}
		room, err := findClassroomByName(tx, in.ClassroomName)
		if err != nil {
			return err
		}
		req = &models.BorrowRequest{
			UserID:       u.ID,
			EquipmentID:  e.ID,
			ClassroomID:  room.ID,
			Quantity:     in.Quantity,
			Note:         in.Note,
			Status:       api.LabelPending,
			RegisteredAt: time.Now().UTC(),
		}
		return tx.Create(req).Error
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *Repo) withRelations() *gorm.DB {
	return r.DB.Preload("User").Preload("Equipment").Preload("Classroom")
}

// ListRequestsByEmail 某人的全部申请，最新在前
func (r *Repo) ListRequestsByEmail(ctx context.Context, email string) ([]models.BorrowRequest, error) {
	u, err := r.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	var rs []models.BorrowRequest
	err = r.withRelations().WithContext(ctx).
		Where("user_id = ?", u.ID).
		Order("registered_at DESC").
		Find(&rs).Error
	return rs, err
}

func (r *Repo) ListAllRequests(ctx context.Context) ([]models.BorrowRequest, error) {
	var rs []models.BorrowRequest
	err := r.withRelations().WithContext(ctx).
		Order("registered_at DESC").
		Find(&rs).Error
	return rs, err
}

func lockRequest(tx *gorm.DB, id int64) (*models.BorrowRequest, error) {
	var req models.BorrowRequest
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&req, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// CancelOwnRequest 申请人取消：只允许待审批状态。
// actor 不是审批员时必须是申请人本人
func (r *Repo) CancelOwnRequest(ctx context.Context, id int64, reason string, actor *models.User) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		req, err := lockRequest(tx, id)
		if err != nil {
			return err
		}
		if actor != nil && actor.RoleID != int(api.RoleModerator) && req.UserID != actor.ID {
			return ErrNotOwner
		}
		if api.ParseStatus(req.Status) != api.StatusPending {
			return ErrNotPending
		}
		now := time.Now().UTC()
		from := req.Status
		req.Status = api.LabelCancelled
		req.CancelledAt = &now
		req.CancelReason = &reason
		if err := tx.Omit(clause.Associations).Save(req).Error; err != nil {
			return err
		}
		email := ""
		if actor != nil {
			email = actor.Email
		}
		return logStatusChange(tx, req.ID, from, req.Status, email, &reason)
	})
}

type StatusChange struct {
	RequestID     int64
	EquipmentName string
	Status        string
	Reason        *string
	ActorEmail    string
}

// SetRequestStatus 审批员变更状态：校验流转表，审批通过扣库存，归还加库存
func (r *Repo) SetRequestStatus(ctx context.Context, in StatusChange) (*models.BorrowRequest, error) {
	to := api.ParseStatus(in.Status)
	if to == api.StatusUnknown {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStatus, in.Status)
	}

	var out *models.BorrowRequest
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		req, err := lockRequest(tx, in.RequestID)
		if err != nil {
			return err
		}
		var e models.Equipment
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&e, "id = ?", req.EquipmentID).Error; err != nil {
			return err
		}
		if in.EquipmentName != "" && in.EquipmentName != e.Name {
			return ErrEquipmentMismatch
		}

		from := api.ParseStatus(req.Status)
		if !ValidTransition(from, to) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
		}

		now := time.Now().UTC()
		switch to {
		case api.StatusApproved:
			if e.Quantity < req.Quantity {
				return ErrInsufficientStock
			}
			if err := tx.Model(&e).Update("quantity", gorm.Expr("quantity - ?", req.Quantity)).Error; err != nil {
				return err
			}
			req.BorrowedAt = &now
		case api.StatusReturned:
			if err := tx.Model(&e).Update("quantity", gorm.Expr("quantity + ?", req.Quantity)).Error; err != nil {
				return err
			}
			req.ReturnedAt = &now
		case api.StatusCancelled:
			req.CancelledAt = &now
			req.CancelReason = in.Reason
		case api.StatusRejected:
			// 拒绝不算取消：ngay_huy 留空，只记备注
			req.CancelReason = in.Reason
		}

		prev := req.Status
		req.Status = to.Label()
		if err := tx.Omit(clause.Associations).Save(req).Error; err != nil {
			return err
		}
		if err := logStatusChange(tx, req.ID, prev, req.Status, in.ActorEmail, in.Reason); err != nil {
			return err
		}
		out = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
