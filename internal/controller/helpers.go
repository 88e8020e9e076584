package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"catalog_admin_v1/pkg/gateway"
)

// relay 把后端信封原样转给浏览器，信封契约端到端不变形
// 成功 200；失败 502（上游拒绝或不可达），调用方统一看 success 字段
func relay(c *gin.Context, env *gateway.Envelope) {
	status := http.StatusOK
	if !env.Success {
		status = http.StatusBadGateway
	}
	c.JSON(status, env)
}

// relayAuth 鉴权接口的转发：失败按 401 返回，方便前端直接跳登录
func relayAuth(c *gin.Context, env *gateway.Envelope) {
	status := http.StatusOK
	if !env.Success {
		status = http.StatusUnauthorized
	}
	c.JSON(status, env)
}

// badRequest 参数绑定失败的统一应答
func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"code":    400,
		"message": "参数错误: " + err.Error(),
	})
}

// okData 本地操作成功应答
func okData(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    data,
	})
}
