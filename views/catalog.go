package views

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"equipment_borrow/api"
)

const PageSize = 5

// Page 当前页，Number 从 1 开始
type Page[T any] struct {
	Items  []T
	Number int
	Pages  int
	Total  int
}

// Paginate 页码越界时夹到 [1, Pages]
func Paginate[T any](items []T, page, size int) Page[T] {
	if size <= 0 {
		size = PageSize
	}
	total := len(items)
	pages := (total + size - 1) / size
	if pages == 0 {
		pages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}
	start := (page - 1) * size
	end := min(start+size, total)
	return Page[T]{Items: items[start:end], Number: page, Pages: pages, Total: total}
}

// FilterEquipment category 为 "all" 或空时不过滤
func FilterEquipment(items []api.Equipment, category string) []api.Equipment {
	if category == "" || category == api.FilterAll {
		return items
	}
	out := make([]api.Equipment, 0, len(items))
	for _, it := range items {
		if it.Category == category {
			out = append(out, it)
		}
	}
	return out
}

func EmptyCatalogText(category string) string {
	if category == "" || category == api.FilterAll {
		return "Không có thiết bị nào"
	}
	return fmt.Sprintf("Không có thiết bị loại %q", category)
}

// RenderCatalog 同样的输入得到同样的文本
func RenderCatalog(items []api.Equipment, category string, page int) string {
	var b strings.Builder
	b.WriteString("DANH SÁCH THIẾT BỊ\n")
	filtered := FilterEquipment(items, category)
	if len(filtered) == 0 {
		b.WriteString(EmptyCatalogText(category))
		b.WriteByte('\n')
		return b.String()
	}

	p := Paginate(filtered, page, PageSize)
	tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tTên thiết bị\tThương hiệu\tSố lượng còn\tĐơn vị tính\tLoại\tTrạng thái")
	offset := (p.Number - 1) * PageSize
	for i, it := range p.Items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\t%s\n",
			offset+i+1, it.Name, it.Brand, it.QuantityAvailable, it.Unit, it.Category, it.StatusLabel)
	}
	_ = tw.Flush()

	fmt.Fprintf(&b, "Trang %d / %d (Hiển thị %d / %d thiết bị)", p.Number, p.Pages, len(p.Items), p.Total)
	if category != "" && category != api.FilterAll {
		fmt.Fprintf(&b, " - Lọc: %s", category)
	}
	b.WriteByte('\n')
	return b.String()
}

// RenderEquipmentDetail 借用弹窗上方的设备信息
func RenderEquipmentDetail(it api.Equipment) string {
	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 4, 1, ' ', 0)
	fmt.Fprintf(tw, "Tên thiết bị:\t%s\n", it.Name)
	fmt.Fprintf(tw, "Thông số:\t%s\n", it.Specification)
	fmt.Fprintf(tw, "Thương hiệu:\t%s\n", it.Brand)
	fmt.Fprintf(tw, "Số lượng còn:\t%d\n", it.QuantityAvailable)
	fmt.Fprintf(tw, "Loại:\t%s\n", it.Category)
	fmt.Fprintf(tw, "Đơn vị tính:\t%s\n", it.Unit)
	if it.Description != nil && *it.Description != "" {
		fmt.Fprintf(tw, "Mô tả:\t%s\n", *it.Description)
	}
	fmt.Fprintf(tw, "Trạng thái:\t%s\n", it.StatusLabel)
	_ = tw.Flush()
	return b.String()
}

// BorrowForm 借用表单原始输入
type BorrowForm struct {
	Equipment string
	Classroom string
	Quantity  string
	Note      string
}

// Input 数量无法解析时记为 0，由必填检查拦下
func (f BorrowForm) Input(email string) api.BorrowInput {
	q, err := strconv.Atoi(strings.TrimSpace(f.Quantity))
	if err != nil {
		q = 0
	}
	return api.BorrowInput{
		Email:         email,
		EquipmentName: strings.TrimSpace(f.Equipment),
		ClassroomName: strings.TrimSpace(f.Classroom),
		Quantity:      api.Quantity(q),
		Note:          strings.TrimSpace(f.Note),
	}
}
