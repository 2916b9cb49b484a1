// controllers/srv.go
package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"equipment_borrow/app"
	"equipment_borrow/db"
	"equipment_borrow/models"
	"equipment_borrow/session"
)

// Store handlers 用到的持久化操作，*db.Repo 满足
type Store interface {
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	TouchUserLogin(ctx context.Context, userID, ip, ua string) error

	ListEquipment(ctx context.Context) ([]models.Equipment, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListClassrooms(ctx context.Context) ([]models.Classroom, error)

	CreateBorrowRequest(ctx context.Context, in db.BorrowParams) (*models.BorrowRequest, error)
	ListRequestsByEmail(ctx context.Context, email string) ([]models.BorrowRequest, error)
	ListAllRequests(ctx context.Context) ([]models.BorrowRequest, error)
	CancelOwnRequest(ctx context.Context, id int64, reason string, actor *models.User) error
	SetRequestStatus(ctx context.Context, in db.StatusChange) (*models.BorrowRequest, error)
	ListStatusLogs(ctx context.Context, requestID int64) ([]models.BorrowStatusLog, error)
}

// Sessions 服务端会话，*session.AppSessionStore 满足
type Sessions interface {
	Create(ctx context.Context, id, userID, email string, roleID int) error
	Get(ctx context.Context, id string) (*session.AppSession, error)
	Delete(ctx context.Context, id string) error
	TTL() time.Duration
}

type Srv struct {
	Store        Store
	Sessions     Sessions
	SecureCookie bool
}

func GetSrv(a *app.App) *Srv {
	return NewSrv(a.Repo, a.AppSessions(), a.Config.SecureCookie())
}

func NewSrv(store Store, sessions Sessions, secureCookie bool) *Srv {
	return &Srv{Store: store, Sessions: sessions, SecureCookie: secureCookie}
}

// --- helpers ---

// 统一设置业务会话 Cookie；maxAge < 0 表示删除
func (s *Srv) setAppCookie(w http.ResponseWriter, sessionID string, maxAge time.Duration) {
	age := int(maxAge / time.Second)
	if maxAge < 0 {
		age = -1
	}
	http.SetCookie(w, &http.Cookie{
		Name:     app.AppSessionCookie,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   s.SecureCookie,
		MaxAge:   age,
	})
}

// 登录成功：创建会话 + 下发 cookie
func (s *Srv) issueSession(ctx context.Context, w http.ResponseWriter, u *models.User) error {
	id := uuid.NewString()
	if err := s.Sessions.Create(ctx, id, u.ID, u.Email, u.RoleID); err != nil {
		return err
	}
	s.setAppCookie(w, id, s.Sessions.TTL())
	return nil
}
