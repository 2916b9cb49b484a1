package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"equipment_borrow/api"
	"equipment_borrow/gateway"
	"equipment_borrow/identity"
	"equipment_borrow/session"
)

func TestSplitCommand(t *testing.T) {
	tests := []struct{ in, cmd, arg string }{
		{"loc Máy chiếu", "loc", "Máy chiếu"},
		{"  HUY 42 ", "huy", "42"},
		{"xem", "xem", ""},
		{"", "", ""},
	}
	for _, tt := range tests {
		cmd, arg := splitCommand(tt.in)
		if cmd != tt.cmd || arg != tt.arg {
			t.Fatalf("%q: got (%q,%q)", tt.in, cmd, arg)
		}
	}
}

func newTestShell(t *testing.T, input string, h http.Handler) (*shell, *bytes.Buffer, *session.MemoryStore) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	secret := []byte("test-secret")
	provider := &identity.StaticProvider{Email: "a@tdmu.edu.vn", Name: "A", Secret: secret}
	auth := &identity.TokenAuthenticator{Secret: secret}
	client := gateway.New(srv.URL+api.BasePath, gateway.WithHTTPClient(srv.Client()))
	store := session.NewMemoryStore()

	out := &bytes.Buffer{}
	in := bufio.NewScanner(strings.NewReader(input))
	n := &terminalNotifier{in: in, out: out}
	return &shell{
		in: in, out: out,
		gw:       gateway.NewSessionGateway(client, provider, auth, store, n),
		client:   client,
		provider: provider,
		notify:   n,
		loc:      time.UTC,
	}, out, store
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func TestShellSignInLandsOnCatalog(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(api.BasePath+api.PathLoginWithGoogle, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, api.LoginResult{Success: true, IDRole: api.RoleUser, Name: "A", Email: "a@tdmu.edu.vn"})
	})
	mux.HandleFunc(api.BasePath+api.PathEquipment, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []api.Equipment{{ID: 1, Name: "Máy chiếu Epson", QuantityAvailable: 2}})
	})

	sh, out, store := newTestShell(t, "\nthoat\n", mux)
	if err := sh.run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "Máy chiếu Epson") {
		t.Fatalf("catalog not rendered:\n%s", out.String())
	}
	if s, _ := store.Load(context.Background()); s == nil || s.RoleID != api.RoleUser {
		t.Fatalf("session not persisted: %+v", s)
	}
}

func TestShellAdminStaysOnSignIn(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(api.BasePath+api.PathLoginWithGoogle, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, api.LoginResult{Success: true, IDRole: api.RoleAdmin})
	})

	sh, out, store := newTestShell(t, "\nq\n", mux)
	if err := sh.run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), api.AdminWebOnlyNotice) {
		t.Fatalf("admin notice missing:\n%s", out.String())
	}
	if s, _ := store.Load(context.Background()); s != nil {
		t.Fatalf("admin session persisted: %+v", s)
	}
}

// backend 按路径计数的假后端；取消和审批会改动内存里的申请状态
type backend struct {
	role api.Role

	mu       sync.Mutex
	hits     map[string]int
	requests []api.BorrowRequest
	borrow   api.BorrowInput
	cancel   api.CancelInput
	review   api.SetStatusInput
}

func newBackend(role api.Role) *backend {
	return &backend{
		role: role,
		hits: map[string]int{},
		requests: []api.BorrowRequest{
			{ID: 42, EquipmentName: "Máy chiếu Epson", ClassroomName: "A101", Quantity: 1, StatusLabel: api.LabelPending, BorrowerName: "A"},
			{ID: 7, EquipmentName: "Loa kéo JBL PartyBox", ClassroomName: "B201", Quantity: 1, StatusLabel: api.LabelApproved, BorrowerName: "A"},
		},
	}
}

func (b *backend) count(path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits[path]
}

func (b *backend) setStatus(id int64, label string) {
	for i := range b.requests {
		if b.requests[i].ID == id {
			b.requests[i].StatusLabel = label
		}
	}
}

func (b *backend) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	handle := func(path string, fn func(w http.ResponseWriter, r *http.Request)) {
		mux.HandleFunc(api.BasePath+path, func(w http.ResponseWriter, r *http.Request) {
			b.mu.Lock()
			defer b.mu.Unlock()
			b.hits[path]++
			fn(w, r)
		})
	}
	decode := func(r *http.Request, v any) {
		if err := json.NewDecoder(r.Body).Decode(v); err != nil {
			t.Errorf("decode %s: %v", r.URL.Path, err)
		}
	}

	handle(api.PathLoginWithGoogle, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, api.LoginResult{Success: true, IDRole: b.role, Name: "A", Email: "a@tdmu.edu.vn"})
	})
	handle(api.PathClearSession, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, api.Result{Success: true})
	})
	handle(api.PathEquipment, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []api.Equipment{{ID: 1, Name: "Máy chiếu Epson", QuantityAvailable: 2}})
	})
	handle(api.PathClassrooms, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []api.Classroom{{ID: 1, Name: "A101"}, {ID: 2, Name: "B201"}})
	})
	handle(api.PathBorrow, func(w http.ResponseWriter, r *http.Request) {
		decode(r, &b.borrow)
		writeJSON(w, api.Result{Success: true, Message: "Đăng ký mượn thành công"})
	})
	handle(api.PathMyRequests, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, b.requests)
	})
	handle(api.PathCancelRequest, func(w http.ResponseWriter, r *http.Request) {
		decode(r, &b.cancel)
		b.setStatus(b.cancel.RequestID, api.LabelCancelled)
		writeJSON(w, api.Result{Success: true, Message: "Hủy thành công"})
	})
	handle(api.PathAllRequests, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, b.requests)
	})
	handle(api.PathApprovalStatuses, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []api.ApprovalStatus{
			{Label: api.LabelApproved}, {Label: api.LabelReturned}, {Label: api.LabelCancelled}, {Label: api.LabelRejected},
		})
	})
	handle(api.PathSetRequestStatus, func(w http.ResponseWriter, r *http.Request) {
		decode(r, &b.review)
		b.setStatus(b.review.RequestID, b.review.Status)
		writeJSON(w, api.Result{Success: true, Message: "Cập nhật trạng thái thành công"})
	})
	return mux
}

func TestShellBorrowRefetchesCatalog(t *testing.T) {
	be := newBackend(api.RoleUser)
	// 登录 → 借第 1 个 → 选 A101、数量 2、无备注 → 退出
	sh, out, _ := newTestShell(t, "\nmuon 1\n1\n2\n\nthoat\n", be.handler(t))
	if err := sh.run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	if got := be.count(api.PathBorrow); got != 1 {
		t.Fatalf("expected one borrow call, got %d", got)
	}
	if got := be.count(api.PathEquipment); got != 2 {
		t.Fatalf("expected catalog fetched on entry and after borrow, got %d", got)
	}
	if be.borrow.EquipmentName != "Máy chiếu Epson" || be.borrow.ClassroomName != "A101" ||
		be.borrow.Quantity != 2 || be.borrow.Email != "a@tdmu.edu.vn" {
		t.Fatalf("unexpected borrow body: %+v", be.borrow)
	}
	if !strings.Contains(out.String(), "Đăng ký mượn thành công") {
		t.Fatalf("success notice missing:\n%s", out.String())
	}
}

func TestShellBorrowMissingQuantityDoesNotSubmit(t *testing.T) {
	be := newBackend(api.RoleUser)
	sh, out, _ := newTestShell(t, "\nmuon 1\n1\nabc\n\nthoat\n", be.handler(t))
	if err := sh.run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := be.count(api.PathBorrow); got != 0 {
		t.Fatalf("invalid form must not be submitted, got %d calls", got)
	}
	if got := be.count(api.PathEquipment); got != 1 {
		t.Fatalf("catalog should not reload after a failed borrow, got %d", got)
	}
	if !strings.Contains(out.String(), api.RequiredFieldsMessage) {
		t.Fatalf("required-fields notice missing:\n%s", out.String())
	}
}

func TestShellCancelOnlyPending(t *testing.T) {
	be := newBackend(api.RoleUser)
	// 7 已审批不能取消；42 空理由取消；再取消 42 被拦下
	sh, out, _ := newTestShell(t, "\nxem\nhuy 7\nhuy 42\n\nhuy 42\nthoat\n", be.handler(t))
	if err := sh.run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	if got := be.count(api.PathCancelRequest); got != 1 {
		t.Fatalf("expected exactly one cancel call, got %d", got)
	}
	if be.cancel.RequestID != 42 || be.cancel.Reason != api.DefaultCancelReason {
		t.Fatalf("unexpected cancel body: %+v", be.cancel)
	}
	if got := be.count(api.PathMyRequests); got != 4 {
		t.Fatalf("expected list fetched on entry and after every action, got %d", got)
	}
	if n := strings.Count(out.String(), "Chỉ có thể hủy yêu cầu đang chờ duyệt"); n != 2 {
		t.Fatalf("expected pending-only notice twice, got %d:\n%s", n, out.String())
	}
}

func TestShellModeratorReviewRefetches(t *testing.T) {
	be := newBackend(api.RoleModerator)
	// duyệt 42 → chọn 3 (Đã hủy) → lý do
	sh, out, store := newTestShell(t, "\nduyet 42\n3\nMáy hỏng\nduyet 99\nthoat\n", be.handler(t))
	if err := sh.run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	if s, _ := store.Load(context.Background()); s == nil || s.RoleID != api.RoleModerator {
		t.Fatalf("moderator session not persisted: %+v", s)
	}
	if got := be.count(api.PathSetRequestStatus); got != 1 {
		t.Fatalf("expected one status update, got %d", got)
	}
	if be.review.RequestID != 42 || be.review.Status != api.LabelCancelled ||
		be.review.Reason == nil || *be.review.Reason != "Máy hỏng" {
		t.Fatalf("unexpected review body: %+v", be.review)
	}
	if got := be.count(api.PathAllRequests); got != 3 {
		t.Fatalf("expected list fetched on entry and after each action, got %d", got)
	}
	if !strings.Contains(out.String(), "Lý do hủy:") || !strings.Contains(out.String(), "Không tìm thấy yêu cầu") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}

func TestShellLogoutReturnsToSignIn(t *testing.T) {
	be := newBackend(api.RoleUser)
	sh, out, store := newTestShell(t, "\ndangxuat\ny\nq\n", be.handler(t))
	if err := sh.run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	if got := be.count(api.PathClearSession); got != 1 {
		t.Fatalf("expected clear_session once, got %d", got)
	}
	if s, _ := store.Load(context.Background()); s != nil {
		t.Fatalf("local session should be cleared: %+v", s)
	}
	if id, _ := sh.provider.CurrentUser(context.Background()); id != nil {
		t.Fatalf("provider still signed in: %+v", id)
	}
	if strings.Count(out.String(), "HỆ THỐNG MƯỢN THIẾT BỊ") != 2 {
		t.Fatalf("expected sign-in screen shown again:\n%s", out.String())
	}
}

func TestShellLogoutDeclinedKeepsSession(t *testing.T) {
	be := newBackend(api.RoleUser)
	sh, _, store := newTestShell(t, "\ndangxuat\nn\nthoat\n", be.handler(t))
	if err := sh.run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := be.count(api.PathClearSession); got != 0 {
		t.Fatalf("declined logout must not clear the server session, got %d", got)
	}
	if s, _ := store.Load(context.Background()); s == nil {
		t.Fatal("declined logout must keep the local session")
	}
}
