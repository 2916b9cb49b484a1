// db/repo_catalog.go
package db

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"equipment_borrow/models"
)

func (r *Repo) ListEquipment(ctx context.Context) ([]models.Equipment, error) {
	var items []models.Equipment
	err := r.DB.WithContext(ctx).
		Preload("Category").
		Preload("Unit").
		Order("name ASC").
		Find(&items).Error
	return items, err
}

func (r *Repo) ListCategories(ctx context.Context) ([]models.Category, error) {
	var cs []models.Category
	err := r.DB.WithContext(ctx).Order("name ASC").Find(&cs).Error
	return cs, err
}

func (r *Repo) ListClassrooms(ctx context.Context) ([]models.Classroom, error) {
	var rs []models.Classroom
	err := r.DB.WithContext(ctx).Order("name ASC").Find(&rs).Error
	return rs, err
}

func findEquipmentByName(tx *gorm.DB, name string) (*models.Equipment, error) {
	var e models.Equipment
	err := tx.Where("name = ?", strings.TrimSpace(name)).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEquipmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func findClassroomByName(tx *gorm.DB, name string) (*models.Classroom, error) {
	var c models.Classroom
	err := tx.Where("name = ?", strings.TrimSpace(name)).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrClassroomNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
