package routes

import (
	"github.com/gin-gonic/gin"

	"equipment_borrow/api"
	"equipment_borrow/app"
	"equipment_borrow/controllers"
)

// PathStatusHistory 状态变更记录，只有服务端提供，客户端不调用
const PathStatusHistory = "/borrow-requests/:id/history"

// Middlewares 路由分组用到的中间件
type Middlewares struct {
	Auth      gin.HandlerFunc
	Moderator gin.HandlerFunc
	Seen      gin.HandlerFunc
}

func RegisterRoutes(r *gin.Engine, a *app.App) {
	// 控制器依赖与复用的中间件
	Mount(r, controllers.GetSrv(a), Middlewares{
		Auth:      app.AuthRequired(a.AppSessions(), a.Repo),
		Moderator: app.ModeratorOnly(),
		Seen:      app.TouchLastSeen(a.Repo, a.RDB, a.Config.SeenEvery),
	})
}

// Mount 挂载 /api/v1 路由表；哪些接口公开、哪些要会话或审批员都在这里决定
func Mount(r gin.IRouter, s *controllers.Srv, mw Middlewares) {
	authCtl := controllers.NewAuthController(s)
	catalogCtl := controllers.NewCatalogController(s)
	borrowCtl := controllers.NewBorrowController(s)
	modCtl := controllers.NewModerationController(s)

	v1 := r.Group(api.BasePath)

	// ------------------------------
	// 登录 / 登出
	// ------------------------------
	v1.POST(api.PathLoginWithGoogle, authCtl.LoginWithGoogle)
	v1.POST(api.PathClearSession, authCtl.ClearSession)

	// ------------------------------
	// 目录（公开）
	// ------------------------------
	v1.GET(api.PathEquipment, catalogCtl.Equipment)
	v1.GET(api.PathCategories, catalogCtl.Categories)
	v1.GET(api.PathClassrooms, catalogCtl.Classrooms)
	v1.GET(api.PathApprovalStatuses, catalogCtl.ApprovalStatuses)

	// ------------------------------
	// 借用：按 email 提交 / 查询
	// ------------------------------
	v1.POST(api.PathBorrow, borrowCtl.Borrow)
	v1.POST(api.PathMyRequests, borrowCtl.MyRequests)

	// 取消需要会话：本人或审批员
	user := v1.Group("", mw.Auth, mw.Seen)
	{
		user.POST(api.PathCancelRequest, borrowCtl.CancelRequest)
	}

	// ------------------------------
	// 审批（仅审批员）
	// ------------------------------
	mod := v1.Group("", mw.Auth, mw.Moderator, mw.Seen)
	{
		mod.GET(api.PathAllRequests, modCtl.AllRequests)
		mod.POST(api.PathSetRequestStatus, modCtl.SetRequestStatus)
		mod.GET(PathStatusHistory, modCtl.StatusHistory)
	}
}
