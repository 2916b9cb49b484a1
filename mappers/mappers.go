// file: mappers/mappers.go
package mappers

import (
	"time"

	"equipment_borrow/api"
	"equipment_borrow/models"
)

func MapEquipment(e models.Equipment) api.Equipment {
	return api.Equipment{
		ID:                e.ID,
		Name:              e.Name,
		Specification:     e.Specification,
		Brand:             e.Brand,
		QuantityAvailable: e.Quantity,
		Description:       e.Description,
		Category:          e.Category.Name,
		StatusLabel:       e.StockLabel(),
		Unit:              e.Unit.Name,
	}
}

func MapEquipmentList(es []models.Equipment) []api.Equipment {
	out := make([]api.Equipment, 0, len(es))
	for _, e := range es {
		out = append(out, MapEquipment(e))
	}
	return out
}

func MapCategories(cs []models.Category) []api.Category {
	out := make([]api.Category, 0, len(cs))
	for _, c := range cs {
		out = append(out, api.Category{ID: c.ID, Name: c.Name})
	}
	return out
}

func MapClassrooms(rs []models.Classroom) []api.Classroom {
	out := make([]api.Classroom, 0, len(rs))
	for _, r := range rs {
		out = append(out, api.Classroom{ID: r.ID, Name: r.Name})
	}
	return out
}

// MapBorrowRequest 时间转秒级时间戳，未发生的保持 null
func MapBorrowRequest(r models.BorrowRequest) api.BorrowRequest {
	return api.BorrowRequest{
		ID:            r.ID,
		BorrowerName:  r.User.DisplayName,
		ClassroomName: r.Classroom.Name,
		EquipmentName: r.Equipment.Name,
		Quantity:      r.Quantity,
		Note:          r.Note,
		StatusLabel:   r.Status,
		CancelReason:  r.CancelReason,
		RegisteredAt:  r.RegisteredAt.Unix(),
		CancelledAt:   unixPtr(r.CancelledAt),
		BorrowedAt:    unixPtr(r.BorrowedAt),
		ReturnedAt:    unixPtr(r.ReturnedAt),
	}
}

func MapBorrowRequests(rs []models.BorrowRequest) []api.BorrowRequest {
	out := make([]api.BorrowRequest, 0, len(rs))
	for _, r := range rs {
		out = append(out, MapBorrowRequest(r))
	}
	return out
}

func unixPtr(t *time.Time) *int64 {
	if t == nil || t.IsZero() {
		return nil
	}
	v := t.Unix()
	return &v
}
