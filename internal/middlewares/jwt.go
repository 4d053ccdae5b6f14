package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/usermenei/E-ses/internal/domain"
	a "github.com/usermenei/E-ses/pkg/auth"
)

// JWTAuth accepts the token from the Authorization header or, failing that,
// the http-only cookie set at login. On success the actor lands in the gin
// context under "sub"/"role"/"email".
func JWTAuth(tokens *a.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok := ""
		if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
			tok = strings.TrimPrefix(h, "Bearer ")
		} else if v, err := c.Cookie("token"); err == nil {
			tok = v
		}
		if tok == "" || tok == "none" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authorized to access this route"})
			return
		}
		claims, err := tokens.ParseValidate(tok)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authorized to access this route"})
			return
		}
		c.Set("sub", claims.Sub)
		c.Set("role", claims.Role)
		c.Set("email", claims.Email)
		c.Next()
	}
}

func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	allowed := map[domain.Role]struct{}{}
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		v, _ := c.Get("role")
		role, _ := v.(string)
		if _, ok := allowed[domain.Role(role)]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Not authorized"})
			return
		}
		c.Next()
	}
}

// Actor rebuilds the authenticated caller from the context values set by
// JWTAuth.
func Actor(c *gin.Context) domain.Actor {
	sub, _ := c.Get("sub")
	role, _ := c.Get("role")
	id, _ := sub.(string)
	r, _ := role.(string)
	return domain.Actor{ID: id, Role: domain.Role(r)}
}
