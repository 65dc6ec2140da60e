package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cvform/internal/session"
)

const workspaceKey = "workspace"

// SessionOptions 描述会话 cookie 的属性。
type SessionOptions struct {
	CookieName string
	Secure     bool
}

// SessionMiddleware 根据 cookie 找到（或新建）当前浏览器的 Workspace 并注入上下文。
func SessionMiddleware(manager *session.Manager, opts SessionOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, _ := c.Cookie(opts.CookieName)

		id, ws, created := manager.Resolve(current)
		if created {
			http.SetCookie(c.Writer, &http.Cookie{
				Name:     opts.CookieName,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				Secure:   opts.Secure,
				SameSite: http.SameSiteLaxMode,
			})
			LoggerFromContext(c).Debug("workspace created")
		}

		c.Set(workspaceKey, ws)
		c.Next()
	}
}

// WorkspaceFromContext 返回当前请求的 Workspace。
func WorkspaceFromContext(c *gin.Context) (*session.Workspace, bool) {
	value, ok := c.Get(workspaceKey)
	if !ok {
		return nil, false
	}
	ws, ok := value.(*session.Workspace)
	return ws, ok
}
