package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"equipment_borrow/api"
	"equipment_borrow/db"
	"equipment_borrow/mappers"
)

type CatalogController struct{ *Srv }

func NewCatalogController(s *Srv) *CatalogController { return &CatalogController{Srv: s} }

// 列表接口直接返回 JSON 数组

func (cc *CatalogController) Equipment(c *gin.Context) {
	items, err := cc.Store.ListEquipment(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.Result{Message: messageFor("list equipment", err)})
		return
	}
	c.JSON(http.StatusOK, mappers.MapEquipmentList(items))
}

func (cc *CatalogController) Categories(c *gin.Context) {
	cs, err := cc.Store.ListCategories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.Result{Message: messageFor("list categories", err)})
		return
	}
	c.JSON(http.StatusOK, mappers.MapCategories(cs))
}

func (cc *CatalogController) Classrooms(c *gin.Context) {
	rs, err := cc.Store.ListClassrooms(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.Result{Message: messageFor("list classrooms", err)})
		return
	}
	c.JSON(http.StatusOK, mappers.MapClassrooms(rs))
}

// ApprovalStatuses 审批员可选的目标状态
func (cc *CatalogController) ApprovalStatuses(c *gin.Context) {
	statuses := db.ModeratorStatuses()
	out := make([]api.ApprovalStatus, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, api.ApprovalStatus{Label: s.Label()})
	}
	c.JSON(http.StatusOK, out)
}
