package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marwahavanshika/FYP2025/internal/api/middleware"
	"github.com/marwahavanshika/FYP2025/internal/permission"
	"github.com/marwahavanshika/FYP2025/pkg/jwt"
	"github.com/marwahavanshika/FYP2025/pkg/response"
)

// MustGetActor 从 Gin 上下文中安全提取当前调用者。
// 如果 JWT 中间件未正确注入，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetActor(c *gin.Context) (*permission.Actor, bool) {
	v, exists := c.Get(middleware.CtxActor)
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return nil, false
	}
	actor, ok := v.(*permission.Actor)
	if !ok || actor == nil || actor.UserID == "" {
		response.Unauthorized(c, 10002, "not authenticated")
		return nil, false
	}
	return actor, true
}

// MustGetClaims 从 Gin 上下文中提取 Token 声明（登出时使用）
func MustGetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get(middleware.CtxClaims)
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	if !ok || claims == nil {
		response.Unauthorized(c, 10002, "not authenticated")
		return nil, false
	}
	return claims, true
}

// bindError 请求体超限返回 413，其余绑定错误返回 400
func bindError(c *gin.Context, err error) {
	if middleware.IsBodyTooLarge(err) {
		response.Error(c, http.StatusRequestEntityTooLarge, 10005, "request body too large")
		return
	}
	response.BadRequest(c, 10001, "validation failed: "+err.Error())
}
