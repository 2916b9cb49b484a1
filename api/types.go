// api/types.go
package api

// Role 对应后端 idRole
type Role int

const (
	RoleUser      Role = 1
	RoleAdmin     Role = 2 // 仅限网页端
	RoleModerator Role = 3
)

func (r Role) Valid() bool { return r == RoleUser || r == RoleAdmin || r == RoleModerator }

// Result 所有写操作统一返回 {success, message}
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type LoginRequest struct {
	Email string `json:"email"`
}

type LoginResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	IDRole  Role   `json:"idRole"`
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
}

type Equipment struct {
	ID                int64   `json:"id_thiet_bi"`
	Name              string  `json:"ten_thiet_bi"`
	Specification     string  `json:"thong_so"`
	Brand             string  `json:"ten_thuong_hieu"`
	QuantityAvailable int     `json:"so_luong"`
	Description       *string `json:"mo_ta"`
	Category          string  `json:"ten_phan_loai"`
	StatusLabel       string  `json:"ten_trang_thaii"`
	Unit              string  `json:"ten_don_vi_tinh"`
}

type Category struct {
	ID   int64  `json:"id_phan_loai"`
	Name string `json:"ten_phan_loai"`
}

type Classroom struct {
	ID   int64  `json:"id_phong_hoc"`
	Name string `json:"ten_phong_hoc"`
}

// BorrowRequest 时间均为秒级时间戳，0 或 null 表示尚未发生
type BorrowRequest struct {
	ID            int64   `json:"id_danh_sach_muon"`
	BorrowerName  string  `json:"name_CBVC"`
	ClassroomName string  `json:"ten_phong_hoc"`
	EquipmentName string  `json:"ten_thiet_bi"`
	Quantity      int     `json:"so_luong_muon"`
	Note          string  `json:"yeu_cau"`
	StatusLabel   string  `json:"ten_trang_thaii"`
	CancelReason  *string `json:"ly_do_huy"`
	RegisteredAt  int64   `json:"ngay_dang_ky_muon"`
	CancelledAt   *int64  `json:"ngay_huy"`
	BorrowedAt    *int64  `json:"ngay_muon"`
	ReturnedAt    *int64  `json:"ngay_tra"`
}

func (r BorrowRequest) Status() Status { return ParseStatus(r.StatusLabel) }

type ApprovalStatus struct {
	Label string `json:"ten_trang_thaii"`
}

type BorrowInput struct {
	Email         string   `json:"email"`
	EquipmentName string   `json:"ten_thiet_bi"`
	ClassroomName string   `json:"ten_phong_hoc"`
	Quantity      Quantity `json:"so_luong_muon"`
	Note          string   `json:"yeu_cau"`
}

type MyRequestsInput struct {
	Email string `json:"email"`
}

type CancelInput struct {
	RequestID int64  `json:"id_danh_sach_muon"`
	Reason    string `json:"ly_do_huy"`
}

// SetStatusInput ly_do_huy 为空时序列化为 null
type SetStatusInput struct {
	RequestID     int64   `json:"id_danh_sach_muon"`
	EquipmentName string  `json:"ten_thiet_bi"`
	Status        string  `json:"ten_trang_thai"`
	Reason        *string `json:"ly_do_huy"`
}
