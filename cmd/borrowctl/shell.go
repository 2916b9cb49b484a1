package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"equipment_borrow/api"
	"equipment_borrow/gateway"
	"equipment_borrow/identity"
	"equipment_borrow/session"
	"equipment_borrow/views"
)

var errQuit = errors.New("quit")

type shell struct {
	in       *bufio.Scanner
	out      io.Writer
	gw       *gateway.SessionGateway
	client   *gateway.Client
	provider identity.Provider
	notify   *terminalNotifier
	loc      *time.Location

	sess *session.UserSession
}

// run 按路由在各屏幕之间切换，直到退出或输入结束
func (s *shell) run(ctx context.Context) error {
	route := s.restore(ctx)
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		var (
			next gateway.Route
			err  error
		)
		switch route {
		case gateway.RouteCatalog:
			next, err = s.catalog(ctx)
		case gateway.RouteMyRequests:
			next, err = s.mine(ctx)
		case gateway.RouteModeration:
			next, err = s.moderate(ctx)
		default:
			next, err = s.signin(ctx)
		}
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			return err
		}
		route = next
	}
}

// restore 有本地会话时重新和后端交换身份，拿到新的服务端会话 cookie
func (s *shell) restore(ctx context.Context) gateway.Route {
	sess, err := s.gw.Session(ctx)
	if err != nil || sess == nil {
		return gateway.RouteSignIn
	}
	out, err := s.gw.ExchangeIdentity(ctx, sess.Email)
	if err != nil {
		return gateway.RouteSignIn
	}
	s.sess = out.Session
	return out.Route
}

func (s *shell) signin(ctx context.Context) (gateway.Route, error) {
	s.sess = nil
	identity.ResetStale(ctx, s.provider)
	fmt.Fprintln(s.out, "\nHỆ THỐNG MƯỢN THIẾT BỊ - TDMU")
	for {
		line, ok := s.notify.Ask("Nhấn Enter để đăng nhập bằng Google (q để thoát): ")
		if !ok || line == "q" {
			return "", errQuit
		}
		out, err := s.gw.SignIn(ctx)
		if err != nil {
			var be *gateway.BusinessError
			if !errors.As(err, &be) && !errors.Is(err, gateway.ErrAdminOnWeb) && !errors.Is(err, gateway.ErrUnsupportedRole) {
				s.notify.Alert("Lỗi đăng nhập", api.GenericFailureMessage)
			}
			continue
		}
		s.sess = out.Session
		fmt.Fprintf(s.out, "Xin chào %s (%s)\n", s.sess.Name, s.sess.Email)
		return out.Route, nil
	}
}

func (s *shell) catalog(ctx context.Context) (gateway.Route, error) {
	category, page := api.FilterAll, 1
	reload := true
	var items []api.Equipment
	for {
		if reload {
			res := views.LoadCatalog(ctx, s.client)
			if !res.OK() {
				s.notify.Alert("Lỗi", gateway.MessageOf(res.Err, "Không thể tải danh sách thiết bị. Vui lòng thử lại."))
			}
			items = res.Value
			reload = false
		}
		fmt.Fprintln(s.out)
		fmt.Fprint(s.out, views.RenderCatalog(items, category, page))
		line, ok := s.notify.Ask("[loc <loại>|trang <n>|muon <stt>|xem|lammoi|dangxuat|thoat] > ")
		if !ok {
			return "", errQuit
		}
		cmd, arg := splitCommand(line)
		switch cmd {
		case "loc":
			category, page = s.pickCategory(ctx, arg), 1
		case "trang":
			if n, err := strconv.Atoi(arg); err == nil {
				page = n
			}
		case "muon":
			p := views.Paginate(views.FilterEquipment(items, category), page, views.PageSize)
			n, err := strconv.Atoi(arg)
			idx := n - 1 - (p.Number-1)*views.PageSize
			if err != nil || idx < 0 || idx >= len(p.Items) {
				fmt.Fprintln(s.out, "Số thứ tự không hợp lệ")
				continue
			}
			if s.borrow(ctx, p.Items[idx]) {
				reload = true
			}
		case "xem":
			return gateway.RouteMyRequests, nil
		case "lammoi":
			reload = true
		case "dangxuat":
			if s.logout(ctx) {
				return gateway.RouteSignIn, nil
			}
		case "thoat", "q":
			return "", errQuit
		}
	}
}

func (s *shell) pickCategory(ctx context.Context, arg string) string {
	if arg != "" {
		return arg
	}
	res := views.LoadCategories(ctx, s.client)
	if !res.OK() {
		s.notify.Alert("Lỗi", gateway.MessageOf(res.Err, api.GenericFailureMessage))
		return api.FilterAll
	}
	fmt.Fprintln(s.out, "0) Tất cả")
	for i, c := range res.Value {
		fmt.Fprintf(s.out, "%d) %s\n", i+1, c.Name)
	}
	line, ok := s.notify.Ask("Lọc theo phân loại thiết bị: ")
	n, err := strconv.Atoi(line)
	if !ok || err != nil || n <= 0 || n > len(res.Value) {
		return api.FilterAll
	}
	return res.Value[n-1].Name
}

// borrow 借用弹窗；成功返回 true，调用方刷新列表
func (s *shell) borrow(ctx context.Context, it api.Equipment) bool {
	fmt.Fprintln(s.out)
	fmt.Fprint(s.out, views.RenderEquipmentDetail(it))

	rooms := views.LoadClassrooms(ctx, s.client)
	if !rooms.OK() {
		s.notify.Alert("Lỗi", gateway.MessageOf(rooms.Err, "Không thể tải danh sách phòng học. Vui lòng thử lại."))
		return false
	}
	for i, r := range rooms.Value {
		fmt.Fprintf(s.out, "%d) %s\n", i+1, r.Name)
	}
	form := views.BorrowForm{Equipment: it.Name}
	line, _ := s.notify.Ask("Phòng học: ")
	if n, err := strconv.Atoi(line); err == nil && n > 0 && n <= len(rooms.Value) {
		form.Classroom = rooms.Value[n-1].Name
	}
	form.Quantity, _ = s.notify.Ask("Số lượng mượn: ")
	form.Note, _ = s.notify.Ask("Yêu cầu (nếu có): ")

	res, err := s.client.Borrow(ctx, form.Input(s.email()))
	switch {
	case errors.Is(err, gateway.ErrMissingField):
		s.notify.Alert("Lỗi", api.RequiredFieldsMessage)
		return false
	case err != nil:
		s.notify.Alert("Lỗi", gateway.MessageOf(err, api.GenericFailureMessage))
		return false
	}
	s.notify.Alert("Thành công", res.Message)
	return true
}

func (s *shell) mine(ctx context.Context) (gateway.Route, error) {
	for {
		res := views.LoadMyRequests(ctx, s.client, s.email())
		if errors.Is(res.Err, gateway.ErrNoSession) {
			s.notify.Alert("Lỗi", "Không tìm thấy thông tin người dùng")
			return gateway.RouteSignIn, nil
		}
		if !res.OK() {
			s.notify.Alert("Lỗi", gateway.MessageOf(res.Err, "Không thể tải danh sách thiết bị đã mượn"))
		}
		fmt.Fprintln(s.out)
		fmt.Fprint(s.out, views.RenderMyRequests(res.Value, s.loc))
		line, ok := s.notify.Ask("[huy <id>|lammoi|quaylai|thoat] > ")
		if !ok {
			return "", errQuit
		}
		cmd, arg := splitCommand(line)
		switch cmd {
		case "huy":
			id, err := strconv.ParseInt(arg, 10, 64)
			if err != nil {
				continue
			}
			if _, ok := views.FindCancelable(res.Value, id); !ok {
				fmt.Fprintln(s.out, "Chỉ có thể hủy yêu cầu đang chờ duyệt")
				continue
			}
			reason, _ := s.notify.Ask("Lý do hủy: ")
			r, err := s.client.CancelRequest(ctx, id, reason)
			if err != nil {
				s.notify.Alert("Lỗi", gateway.MessageOf(err, "Không thể hủy thiết bị mượn"))
				continue
			}
			s.notify.Alert("Thành công", r.Message)
		case "quaylai":
			return gateway.RouteCatalog, nil
		case "thoat", "q":
			return "", errQuit
		}
	}
}

func (s *shell) moderate(ctx context.Context) (gateway.Route, error) {
	filter := api.FilterAll
	for {
		res := views.LoadAllRequests(ctx, s.client)
		if !res.OK() {
			s.notify.Alert("Lỗi", gateway.MessageOf(res.Err, "Không thể tải danh sách thiết bị mượn"))
		}
		if s.sess != nil {
			fmt.Fprintf(s.out, "\n%s <%s>\n", s.sess.Name, s.sess.Email)
		}
		fmt.Fprint(s.out, views.RenderModeration(res.Value, filter, s.loc))
		line, ok := s.notify.Ask("[loc|duyet <id>|lammoi|dangxuat|thoat] > ")
		if !ok {
			return "", errQuit
		}
		cmd, arg := splitCommand(line)
		switch cmd {
		case "loc":
			fmt.Fprint(s.out, views.RenderFilterOptions(res.Value))
			choice, _ := s.notify.Ask("Lọc theo trạng thái: ")
			opts := api.FilterOptions()
			if n, err := strconv.Atoi(choice); err == nil && n > 0 && n <= len(opts) {
				filter = opts[n-1]
			}
		case "duyet":
			id, err := strconv.ParseInt(arg, 10, 64)
			if err != nil {
				continue
			}
			req, found := views.FindRequest(res.Value, id)
			if !found {
				fmt.Fprintln(s.out, "Không tìm thấy yêu cầu")
				continue
			}
			s.review(ctx, req)
		case "dangxuat":
			if s.logout(ctx) {
				return gateway.RouteSignIn, nil
			}
		case "thoat", "q":
			return "", errQuit
		}
	}
}

// review 审批弹窗：选状态 → 填理由/备注 → 提交
func (s *shell) review(ctx context.Context, req api.BorrowRequest) {
	statuses := views.LoadApprovalStatuses(ctx, s.client)
	if !statuses.OK() {
		s.notify.Alert("Lỗi", gateway.MessageOf(statuses.Err, "Không thể tải danh sách trạng thái"))
		return
	}
	fmt.Fprintf(s.out, "\nDuyệt yêu cầu mượn thiết bị\nNgười mượn: %s\nThiết bị: %s\nPhòng học: %s\nSố lượng: %d\n",
		req.BorrowerName, req.EquipmentName, req.ClassroomName, req.Quantity)
	fmt.Fprint(s.out, views.RenderStatusChoices(statuses.Value))
	choice, _ := s.notify.Ask("Trạng thái: ")
	var status string
	if n, err := strconv.Atoi(choice); err == nil && n > 0 && n <= len(statuses.Value) {
		status = statuses.Value[n-1].Label
	}
	var reason string
	if status != "" {
		reason, _ = s.notify.Ask(views.ReasonPrompt(status) + " ")
	}
	_, err := s.client.SetRequestStatus(ctx, req, status, reason)
	switch {
	case errors.Is(err, gateway.ErrStatusRequired):
		s.notify.Alert("Lỗi", api.StatusRequiredMessage)
	case err != nil:
		s.notify.Alert("Lỗi", gateway.MessageOf(err, "Không thể cập nhật trạng thái"))
	default:
		s.notify.Alert("Thành công", "Cập nhật trạng thái thành công")
	}
}

// logout 成功返回 true；失败时提示已由 gateway 弹出
func (s *shell) logout(ctx context.Context) bool {
	if s.gw.LoggingOut() {
		fmt.Fprintln(s.out, "Đang đăng xuất...")
		return false
	}
	err := s.gw.Logout(ctx)
	switch {
	case err == nil:
		s.sess = nil
		return true
	case errors.Is(err, gateway.ErrLogoutDeclined), errors.Is(err, gateway.ErrLogoutInProgress):
		return false
	}
	// 本地会话已清掉，回到登录页
	s.sess = nil
	return true
}

func (s *shell) email() string {
	if s.sess == nil {
		return ""
	}
	return s.sess.Email
}

func splitCommand(line string) (string, string) {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	return strings.ToLower(cmd), strings.TrimSpace(arg)
}
