// controllers/moderation_controller.go
package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"equipment_borrow/api"
	"equipment_borrow/app"
	"equipment_borrow/db"
	"equipment_borrow/mappers"
)

type ModerationController struct{ *Srv }

func NewModerationController(s *Srv) *ModerationController { return &ModerationController{Srv: s} }

// GET /get-full-thiet-bi-muon
func (mc *ModerationController) AllRequests(c *gin.Context) {
	rs, err := mc.Store.ListAllRequests(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.Result{Message: messageFor("all requests", err)})
		return
	}
	c.JSON(http.StatusOK, mappers.MapBorrowRequests(rs))
}

// POST /duyet-muon-user {id_danh_sach_muon, ten_thiet_bi, ten_trang_thai, ly_do_huy}
func (mc *ModerationController) SetRequestStatus(c *gin.Context) {
	var in api.SetStatusInput
	if err := c.ShouldBindJSON(&in); err != nil || in.RequestID <= 0 {
		app.Fail(c, api.RequiredFieldsMessage)
		return
	}
	if strings.TrimSpace(in.Status) == "" {
		app.Fail(c, api.StatusRequiredMessage)
		return
	}

	// 1) 操作者来自鉴权中间件
	actor, ok := app.CurrentUser(c)
	if !ok {
		app.Abort(c, http.StatusUnauthorized, api.GenericFailureMessage)
		return
	}

	// 2) 变更状态 + 写审计日志（同一事务）
	_, err := mc.Store.SetRequestStatus(c.Request.Context(), db.StatusChange{
		RequestID:     in.RequestID,
		EquipmentName: strings.TrimSpace(in.EquipmentName),
		Status:        strings.TrimSpace(in.Status),
		Reason:        in.Reason,
		ActorEmail:    actor.Email,
	})
	if err != nil {
		app.Fail(c, messageFor("set status", err))
		return
	}
	app.Success(c, msgStatusUpdated)
}

// GET /borrow-requests/:id/history 状态变更记录
func (mc *ModerationController) StatusHistory(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, api.Result{Message: msgRequestMissing})
		return
	}
	logs, err := mc.Store.ListStatusLogs(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.Result{Message: messageFor("status history", err)})
		return
	}
	c.JSON(http.StatusOK, logs)
}
