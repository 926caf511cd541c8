package auth

import "github.com/gin-gonic/gin"

const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleHotelOwner = "hotel_owner"
)

// Context carries the authenticated identity for one request. It is built
// once by the auth middleware and read-only after that.
type Context struct {
	UserID string
	Role   string
}

func (ac Context) IsAdmin() bool {
	return ac.Role == RoleAdmin
}

func (ac Context) IsHotelOwner() bool {
	return ac.Role == RoleHotelOwner
}

func (ac Context) IsOwner(userID string) bool {
	return ac.UserID == userID
}

const ginContextKey = "auth_context"

func WithGin(c *gin.Context, ac Context) {
	c.Set(ginContextKey, ac)
}

func FromGin(c *gin.Context) (Context, bool) {
	v, exists := c.Get(ginContextKey)
	if !exists {
		return Context{}, false
	}
	ac, ok := v.(Context)
	return ac, ok
}
