// db/seed.go
package db

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"equipment_borrow/models"
)

type demoEquipment struct {
	name, spec, brand, category, unit string
	quantity                          int
}

var demoCatalog = []demoEquipment{
	{"Máy chiếu Epson EB-X06", "3600 lumens, XGA", "Epson", "Thiết bị trình chiếu", "Cái", 5},
	{"Loa kéo JBL PartyBox", "160W, Bluetooth", "JBL", "Thiết bị âm thanh", "Cái", 3},
	{"Micro không dây Shure", "UHF, 2 micro", "Shure", "Thiết bị âm thanh", "Bộ", 4},
	{"Bảng tương tác ViewSonic", "75 inch, 4K", "ViewSonic", "Thiết bị trình chiếu", "Cái", 1},
	{"Laptop Dell Latitude", "i5, 16GB RAM", "Dell", "Máy tính", "Cái", 6},
	{"Cáp HDMI 10m", "HDMI 2.0", "Ugreen", "Phụ kiện", "Sợi", 0},
}

var demoClassrooms = []string{"A101", "A102", "B201", "C305", "Hội trường 1"}

// SeedDemo 幂等：按名称去重
func (r *Repo) SeedDemo(ctx context.Context) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cats := map[string]int64{}
		units := map[string]int64{}
		for _, d := range demoCatalog {
			if _, ok := cats[d.category]; !ok {
				c := models.Category{Name: d.category}
				if err := tx.Where(models.Category{Name: d.category}).FirstOrCreate(&c).Error; err != nil {
					return err
				}
				cats[d.category] = c.ID
			}
			if _, ok := units[d.unit]; !ok {
				u := models.Unit{Name: d.unit}
				if err := tx.Where(models.Unit{Name: d.unit}).FirstOrCreate(&u).Error; err != nil {
					return err
				}
				units[d.unit] = u.ID
			}
			e := models.Equipment{
				Name:          d.name,
				Specification: d.spec,
				Brand:         d.brand,
				Quantity:      d.quantity,
				CategoryID:    cats[d.category],
				UnitID:        units[d.unit],
			}
			if err := tx.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
				Omit(clause.Associations).Create(&e).Error; err != nil {
				return err
			}
		}
		for _, name := range demoClassrooms {
			room := models.Classroom{Name: name}
			if err := tx.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
				Create(&room).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
