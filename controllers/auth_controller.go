// controllers/auth_controller.go
package controllers

import (
	"errors"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"equipment_borrow/api"
	"equipment_borrow/app"
	"equipment_borrow/db"
)

type AuthController struct{ *Srv }

func NewAuthController(s *Srv) *AuthController { return &AuthController{Srv: s} }

// POST /login-with-google {email}
// 管理员从移动端登录时不创建会话，由客户端提示去网页端
func (ac *AuthController) LoginWithGoogle(c *gin.Context) {
	var in api.LoginRequest
	if err := c.ShouldBindJSON(&in); err != nil || strings.TrimSpace(in.Email) == "" {
		app.Fail(c, api.RequiredFieldsMessage)
		return
	}
	ctx := c.Request.Context()
	fromMobile := c.GetHeader(api.HeaderFromMobile) == "true"

	u, err := ac.Store.FindUserByEmail(ctx, in.Email)
	if errors.Is(err, db.ErrUserNotFound) {
		log.Printf("login: unknown account email=%s mobile=%v", in.Email, fromMobile)
		app.Fail(c, msgAccountNotFound)
		return
	}
	if err != nil {
		app.Fail(c, messageFor("login", err))
		return
	}

	// 旧会话作废
	if ck, err := c.Request.Cookie(app.AppSessionCookie); err == nil && ck.Value != "" {
		_ = ac.Sessions.Delete(ctx, ck.Value)
	}

	if !(fromMobile && u.RoleID == int(api.RoleAdmin)) {
		if err := ac.issueSession(ctx, c.Writer, u); err != nil {
			app.Fail(c, messageFor("issue session", err))
			return
		}
		// 只统计真正建立了会话的登录
		if err := ac.Store.TouchUserLogin(ctx, u.ID, c.ClientIP(), c.Request.UserAgent()); err != nil {
			log.Printf("login: touch user=%s: %v", u.ID, err)
		}
	}

	c.JSON(200, api.LoginResult{
		Success: true,
		Message: msgLoginOK,
		IDRole:  api.Role(u.RoleID),
		Name:    u.DisplayName,
		Email:   u.Email,
	})
}

// POST /clear_session 删除 cookie 对应的会话；没有会话也算成功
func (ac *AuthController) ClearSession(c *gin.Context) {
	if ck, err := c.Request.Cookie(app.AppSessionCookie); err == nil && ck.Value != "" {
		if err := ac.Sessions.Delete(c.Request.Context(), ck.Value); err != nil {
			log.Printf("clear_session: %v", err)
		}
	}
	ac.setAppCookie(c.Writer, "", -1)
	app.Success(c, msgLoggedOut)
}
