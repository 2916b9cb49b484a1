// controllers/borrow_controller.go
package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"equipment_borrow/api"
	"equipment_borrow/app"
	"equipment_borrow/db"
	"equipment_borrow/mappers"
)

type BorrowController struct{ *Srv }

func NewBorrowController(s *Srv) *BorrowController { return &BorrowController{Srv: s} }

// POST /user_muon_thiet_bi
func (bc *BorrowController) Borrow(c *gin.Context) {
	var in api.BorrowInput
	if err := c.ShouldBindJSON(&in); err != nil {
		app.Fail(c, api.RequiredFieldsMessage)
		return
	}
	if strings.TrimSpace(in.Email) == "" || strings.TrimSpace(in.EquipmentName) == "" ||
		strings.TrimSpace(in.ClassroomName) == "" || in.Quantity == 0 {
		app.Fail(c, api.RequiredFieldsMessage)
		return
	}

	_, err := bc.Store.CreateBorrowRequest(c.Request.Context(), db.BorrowParams{
		Email:         in.Email,
		EquipmentName: in.EquipmentName,
		ClassroomName: in.ClassroomName,
		Quantity:      int(in.Quantity),
		Note:          strings.TrimSpace(in.Note),
	})
	if err != nil {
		app.Fail(c, messageFor("borrow", err))
		return
	}
	app.Success(c, msgBorrowOK)
}

// POST /get-full-thiet-bi-muon-by-cbvc {email}
func (bc *BorrowController) MyRequests(c *gin.Context) {
	var in api.MyRequestsInput
	if err := c.ShouldBindJSON(&in); err != nil || strings.TrimSpace(in.Email) == "" {
		c.JSON(http.StatusOK, []api.BorrowRequest{})
		return
	}
	rs, err := bc.Store.ListRequestsByEmail(c.Request.Context(), in.Email)
	if errors.Is(err, db.ErrUserNotFound) {
		c.JSON(http.StatusOK, []api.BorrowRequest{})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.Result{Message: messageFor("my requests", err)})
		return
	}
	c.JSON(http.StatusOK, mappers.MapBorrowRequests(rs))
}

// POST /user-huy-muon-thiet-bi {id_danh_sach_muon, ly_do_huy}
func (bc *BorrowController) CancelRequest(c *gin.Context) {
	var in api.CancelInput
	if err := c.ShouldBindJSON(&in); err != nil || in.RequestID <= 0 {
		app.Fail(c, api.RequiredFieldsMessage)
		return
	}
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		reason = api.DefaultCancelReason
	}
	actor, _ := app.CurrentUser(c)
	if err := bc.Store.CancelOwnRequest(c.Request.Context(), in.RequestID, reason, actor); err != nil {
		app.Fail(c, messageFor("cancel", err))
		return
	}
	app.Success(c, msgCancelOK)
}
