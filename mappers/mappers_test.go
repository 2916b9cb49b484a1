package mappers

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"equipment_borrow/api"
	"equipment_borrow/models"
)

func TestMapEquipmentStockLabel(t *testing.T) {
	e := models.Equipment{ID: 7, Name: "Máy chiếu", Quantity: 0,
		Category: models.Category{Name: "Trình chiếu"}, Unit: models.Unit{Name: "Cái"}}
	got := MapEquipment(e)
	if got.StatusLabel != models.StockOut || got.Category != "Trình chiếu" || got.Unit != "Cái" {
		t.Fatalf("unexpected %+v", got)
	}
	e.Quantity = 3
	if MapEquipment(e).StatusLabel != models.StockAvailable {
		t.Fatal("expected available label")
	}
}

func TestMapBorrowRequestTimestamps(t *testing.T) {
	reg := time.Unix(1705314600, 0)
	borrowed := reg.Add(time.Hour)
	r := models.BorrowRequest{
		ID: 42, Quantity: 2, Status: api.LabelApproved, RegisteredAt: reg, BorrowedAt: &borrowed,
		User: models.User{DisplayName: "Nguyễn Văn A"}, Equipment: models.Equipment{Name: "Loa"},
		Classroom: models.Classroom{Name: "A101"},
	}
	got := MapBorrowRequest(r)
	if got.RegisteredAt != 1705314600 || got.BorrowedAt == nil || *got.BorrowedAt != 1705318200 {
		t.Fatalf("unexpected times %+v", got)
	}
	if got.CancelledAt != nil || got.ReturnedAt != nil {
		t.Fatal("events that did not happen must stay nil")
	}

	b, err := json.Marshal(got)
	if err != nil {
		t.Fatal(err)
	}
	for _, field := range []string{`"name_CBVC":"Nguyễn Văn A"`, `"ngay_tra":null`, `"ly_do_huy":null`, `"ten_trang_thaii":"Đã duyệt"`} {
		if !strings.Contains(string(b), field) {
			t.Fatalf("missing %s in %s", field, b)
		}
	}
}
