package gateway

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync/atomic"

	"equipment_borrow/api"
	"equipment_borrow/identity"
	"equipment_borrow/session"
)

// Notifier 阻塞式提示，由界面层实现
type Notifier interface {
	Confirm(ctx context.Context, title, message string) bool
	Alert(title, message string)
}

type Route string

const (
	RouteSignIn     Route = "signin"
	RouteCatalog    Route = "catalog"
	RouteMyRequests Route = "mine"
	RouteModeration Route = "moderate"
)

// Outcome 登录结果：下一个界面 + 已保存的会话（失败时为 nil）
type Outcome struct {
	Route   Route
	Session *session.UserSession
	Message string
}

// SessionGateway 把外部身份换成应用会话，并负责登出
type SessionGateway struct {
	Client   *Client
	Provider identity.Provider
	Auth     identity.Authenticator
	Store    session.LocalStore
	Notify   Notifier

	loggingOut atomic.Bool
}

func NewSessionGateway(c *Client, p identity.Provider, a identity.Authenticator, st session.LocalStore, n Notifier) *SessionGateway {
	return &SessionGateway{Client: c, Provider: p, Auth: a, Store: st, Notify: n}
}

// Session 界面挂载时读取本地会话
func (g *SessionGateway) Session(ctx context.Context) (*session.UserSession, error) {
	return g.Store.Load(ctx)
}

func (g *SessionGateway) LoggingOut() bool { return g.loggingOut.Load() }

// SignIn 外部登录 → 校验 ID token → 与后端交换身份
func (g *SessionGateway) SignIn(ctx context.Context) (Outcome, error) {
	id, err := g.Provider.SignIn(ctx)
	if err != nil {
		return Outcome{Route: RouteSignIn}, fmt.Errorf("identity provider sign-in: %w", err)
	}
	if id.IDToken == "" {
		g.signOutIdentity(ctx)
		return Outcome{Route: RouteSignIn}, identity.ErrNoIDToken
	}
	cred, err := g.Auth.SignInWithToken(ctx, id.IDToken)
	if err != nil {
		g.signOutIdentity(ctx)
		return Outcome{Route: RouteSignIn}, fmt.Errorf("exchange id token: %w", err)
	}
	email := cred.Email
	if email == "" {
		email = id.Email
	}
	return g.ExchangeIdentity(ctx, email)
}

// ExchangeIdentity 把已验证邮箱交给后端，按角色决定去向。
// 管理员（role 2）不支持移动端：不保存会话，两层登录态都登出。
func (g *SessionGateway) ExchangeIdentity(ctx context.Context, email string) (Outcome, error) {
	email = strings.TrimSpace(email)
	var res api.LoginResult
	err := g.Client.Call(ctx, http.MethodPost, api.PathLoginWithGoogle, api.LoginRequest{Email: email}, &res,
		WithHeader(api.HeaderFromMobile, "true"))
	if err != nil {
		log.Printf("gateway: login-with-google email=%s: %v", email, err)
		g.clearLocal(ctx)
		var be *BusinessError
		if errors.As(err, &be) {
			g.Notify.Alert("Lỗi đăng nhập", be.Message)
			g.signOutIdentity(ctx)
			return Outcome{Route: RouteSignIn, Message: be.Message}, err
		}
		return Outcome{Route: RouteSignIn}, err
	}

	if !res.Success {
		g.Notify.Alert("Lỗi đăng nhập", res.Message)
		g.signOutIdentity(ctx)
		g.clearLocal(ctx)
		return Outcome{Route: RouteSignIn, Message: res.Message}, &BusinessError{Message: res.Message}
	}

	switch res.IDRole {
	case api.RoleAdmin:
		g.clearLocal(ctx)
		g.Notify.Alert("Thông báo quan trọng", api.AdminWebOnlyNotice)
		log.Printf("gateway: admin account %s blocked on mobile", email)
		g.signOutIdentity(ctx)
		return Outcome{Route: RouteSignIn, Message: api.AdminWebOnlyNotice}, ErrAdminOnWeb
	case api.RoleUser, api.RoleModerator:
	default:
		g.clearLocal(ctx)
		g.Notify.Alert("Lỗi đăng nhập", api.UnsupportedRoleMessage)
		g.signOutIdentity(ctx)
		return Outcome{Route: RouteSignIn, Message: api.UnsupportedRoleMessage}, fmt.Errorf("%w: %d", ErrUnsupportedRole, res.IDRole)
	}

	sess := session.UserSession{Name: res.Name, Email: res.Email, RoleID: res.IDRole}
	if sess.Email == "" {
		sess.Email = email
	}
	if err := g.Store.Save(ctx, sess); err != nil {
		return Outcome{Route: RouteSignIn}, fmt.Errorf("persist session: %w", err)
	}

	route := RouteCatalog
	if res.IDRole == api.RoleModerator {
		route = RouteModeration
	}
	return Outcome{Route: route, Session: &sess, Message: res.Message}, nil
}

// Logout 确认后依次执行四步：身份提供方登出、认证层登出、清本地会话、通知后端清会话。
// 每一步都会尝试；本地会话无论网络结果如何都会清掉。进行中再次调用直接返回 ErrLogoutInProgress。
func (g *SessionGateway) Logout(ctx context.Context) error {
	if !g.loggingOut.CompareAndSwap(false, true) {
		return ErrLogoutInProgress
	}
	defer g.loggingOut.Store(false)

	if !g.Notify.Confirm(ctx, "Xác nhận đăng xuất", "Bạn có chắc chắn muốn đăng xuất không?") {
		return ErrLogoutDeclined
	}

	var errs []error
	if err := g.Provider.SignOut(ctx); err != nil {
		errs = append(errs, fmt.Errorf("identity provider sign-out: %w", err))
	}
	if err := g.Auth.SignOut(ctx); err != nil {
		errs = append(errs, fmt.Errorf("auth sign-out: %w", err))
	}
	if err := g.Store.Clear(ctx); err != nil {
		errs = append(errs, fmt.Errorf("clear local session: %w", err))
	}
	if err := g.Client.ClearSession(ctx); err != nil {
		errs = append(errs, fmt.Errorf("clear server session: %w", err))
	}
	if len(errs) == 0 {
		return nil
	}
	err := errors.Join(errs...)
	log.Printf("gateway: logout: %v", err)
	g.Notify.Alert("Lỗi", api.LogoutFailedMessage)
	return err
}

func (g *SessionGateway) signOutIdentity(ctx context.Context) {
	if err := g.Provider.SignOut(ctx); err != nil {
		log.Printf("gateway: identity provider sign-out: %v", err)
	}
	if err := g.Auth.SignOut(ctx); err != nil {
		log.Printf("gateway: auth sign-out: %v", err)
	}
}

func (g *SessionGateway) clearLocal(ctx context.Context) {
	if err := g.Store.Clear(ctx); err != nil {
		log.Printf("gateway: clear local session: %v", err)
	}
}
