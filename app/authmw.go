package app

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"equipment_borrow/api"
	"equipment_borrow/models"
	"equipment_borrow/session"
)

const AppSessionCookie = "app_session"

const (
	msgUnauthorized = "Phiên đăng nhập không hợp lệ, vui lòng đăng nhập lại"
	msgForbidden    = "Bạn không có quyền thực hiện thao tác này"
)

type SessionLookup interface {
	Get(ctx context.Context, id string) (*session.AppSession, error)
	Delete(ctx context.Context, id string) error
	Refresh(ctx context.Context, id string, as *session.AppSession) (bool, error)
}

type UserLookup interface {
	FindUserByID(ctx context.Context, id string) (*models.User, error)
}

// AuthRequired 从 cookie 取会话并确认用户仍存在；用户放进 Context
func AuthRequired(sessions SessionLookup, users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		ck, err := c.Request.Cookie(AppSessionCookie)
		if err != nil || ck.Value == "" {
			Abort(c, http.StatusUnauthorized, msgUnauthorized)
			return
		}
		as, err := sessions.Get(c.Request.Context(), ck.Value)
		if err != nil {
			Abort(c, http.StatusUnauthorized, msgUnauthorized)
			return
		}
		u, err := users.FindUserByID(c.Request.Context(), as.UserID)
		if err != nil {
			_ = sessions.Delete(c.Request.Context(), ck.Value)
			Abort(c, http.StatusUnauthorized, msgUnauthorized)
			return
		}
		if _, err := sessions.Refresh(c.Request.Context(), ck.Value, as); err != nil {
			log.Printf("auth: refresh session user=%s: %v", u.ID, err)
		}
		c.Set("userID", u.ID)
		c.Set("user", u)
		c.Next()
	}
}

// ModeratorOnly 必须挂在 AuthRequired 之后；角色以数据库为准
func ModeratorOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok {
			Abort(c, http.StatusUnauthorized, msgUnauthorized)
			return
		}
		if u.RoleID != int(api.RoleModerator) {
			Abort(c, http.StatusForbidden, msgForbidden)
			return
		}
		c.Next()
	}
}

func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get("user")
	if !ok {
		return nil, false
	}
	u, ok := v.(*models.User)
	return u, ok && u != nil
}
