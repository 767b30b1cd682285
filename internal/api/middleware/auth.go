package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/marwahavanshika/FYP2025/internal/permission"
	"github.com/marwahavanshika/FYP2025/pkg/jwt"
	"github.com/marwahavanshika/FYP2025/pkg/response"
)

// 上下文键
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
	CtxHostel = "hostel"
	CtxActor  = "actor"
	CtxClaims = "claims"
)

// ActorResolver 根据 Token 声明加载当前用户
// 实现需检查黑名单、用户是否存在及是否启用
type ActorResolver interface {
	ResolveActor(ctx context.Context, claims *jwt.Claims) (*permission.Actor, error)
}

// JWTAuth JWT 认证中间件
// 从 Authorization: Bearer <token> 中提取并验证 Access Token，
// 随后通过 resolver 从库中加载用户；注入上下文的角色与宿舍楼均为库中的值
func JWTAuth(jwtMgr *jwt.Manager, resolver ActorResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			response.Unauthorized(c, 10002, "invalid authorization header")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(strings.TrimSpace(parts[1]))
		if err != nil {
			response.Unauthorized(c, 10002, "could not validate credentials")
			c.Abort()
			return
		}

		actor, err := resolver.ResolveActor(c.Request.Context(), claims)
		if err != nil {
			response.Unauthorized(c, 10002, "could not validate credentials")
			c.Abort()
			return
		}

		c.Set(CtxUserID, actor.UserID)
		c.Set(CtxRole, actor.Role)
		c.Set(CtxHostel, actor.Hostel)
		c.Set(CtxActor, actor)
		c.Set(CtxClaims, claims)

		c.Next()
	}
}

// RequireCapability 能力校验中间件，须位于 JWTAuth 之后
func RequireCapability(caps ...permission.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(CtxRole)
		if role == "" {
			response.Unauthorized(c, 10002, "not authenticated")
			c.Abort()
			return
		}

		for _, cp := range caps {
			if !permission.Can(role, cp) {
				response.Forbidden(c, 10003, "not enough permissions")
				c.Abort()
				return
			}
		}

		c.Next()
	}
}

// RoleAuth 角色权限中间件
// 检查当前用户是否具有指定角色之一
func RoleAuth(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(CtxRole)
		if role == "" {
			response.Unauthorized(c, 10002, "not authenticated")
			c.Abort()
			return
		}

		for _, r := range allowedRoles {
			if role == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, 10003, "not enough permissions")
		c.Abort()
	}
}
