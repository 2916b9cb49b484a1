// api/endpoints.go
package api

// 后端固定地址与版本前缀
const (
	DefaultBaseURL = "https://kimhoang.site/api/v1"
	BasePath       = "/api/v1"
)

const (
	PathLoginWithGoogle    = "/login-with-google"
	PathClearSession       = "/clear_session"
	PathEquipment          = "/get_full_thiet_bi"
	PathCategories         = "/droplist-phan-loai"
	PathClassrooms         = "/get_full_phong_hoc"
	PathBorrow             = "/user_muon_thiet_bi"
	PathMyRequests         = "/get-full-thiet-bi-muon-by-cbvc"
	PathCancelRequest      = "/user-huy-muon-thiet-bi"
	PathAllRequests        = "/get-full-thiet-bi-muon"
	PathApprovalStatuses   = "/droplist_trang_thai_duyet_muon"
	PathSetRequestStatus   = "/duyet-muon-user"
	HeaderFromMobile       = "X-From-Mobile"
	DefaultCancelReason    = "Người dùng hủy"
	AdminWebOnlyNotice     = "Đây là tài khoản Admin, vui lòng truy cập vào trang web để quản lý hệ thống"
	GenericFailureMessage  = "Có lỗi xảy ra, vui lòng thử lại"
	StatusRequiredMessage  = "Vui lòng chọn trạng thái"
	RequiredFieldsMessage  = "Vui lòng nhập đầy đủ thông tin"
	LogoutFailedMessage    = "Không thể đăng xuất. Vui lòng thử lại."
	UnsupportedRoleMessage = "Vai trò tài khoản không được hỗ trợ trên ứng dụng"
)
