// models/equipment.go
package models

import "time"

const (
	CategoryTable  = "equipment_categories"
	UnitTable      = "equipment_units"
	EquipmentTable = "equipment"
	ClassroomTable = "classrooms"
)

type Category struct {
	ID   int64  `gorm:"primaryKey" json:"id_phan_loai"`
	Name string `gorm:"size:200;uniqueIndex;not null" json:"ten_phan_loai"`
}

// Unit 计量单位（cái、bộ...）
type Unit struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"size:100;uniqueIndex;not null"`
}

// Equipment Quantity 为当前可借数量：审批通过时扣减，归还时加回
type Equipment struct {
	ID            int64   `gorm:"primaryKey"`
	Name          string  `gorm:"size:200;uniqueIndex;not null"`
	Specification string  `gorm:"size:500"`
	Brand         string  `gorm:"size:200"`
	Quantity      int     `gorm:"not null;default:0;check:quantity >= 0"`
	Description   *string `gorm:"type:text"`

	CategoryID int64 `gorm:"index;not null"`
	Category   Category
	UnitID     int64 `gorm:"index;not null"`
	Unit       Unit

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Classroom struct {
	ID   int64  `gorm:"primaryKey" json:"id_phong_hoc"`
	Name string `gorm:"size:100;uniqueIndex;not null" json:"ten_phong_hoc"`
}

// 库存状态标签
const (
	StockAvailable = "Còn"
	StockOut       = "Hết"
)

func (e Equipment) StockLabel() string {
	if e.Quantity > 0 {
		return StockAvailable
	}
	return StockOut
}

func (Category) TableName() string  { return CategoryTable }
func (Unit) TableName() string      { return UnitTable }
func (Equipment) TableName() string { return EquipmentTable }
func (Classroom) TableName() string { return ClassroomTable }
