// app/response.go
package app

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"equipment_borrow/api"
)

// Success 业务成功，HTTP 200
func Success(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, api.Result{Success: true, Message: msg})
}

// Fail 业务失败同样返回 200，客户端按 success 字段判断
func Fail(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, api.Result{Success: false, Message: msg})
}

// Abort 鉴权类错误：带状态码，仍是同一个信封
func Abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, api.Result{Success: false, Message: msg})
}
