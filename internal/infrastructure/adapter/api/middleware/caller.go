package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/amirhossein-jamali/credit-ledger/internal/domain/entity"
)

// CallerHeader names the authenticated caller address. The relay in front of the
// API authenticates; this service only compares addresses.
const CallerHeader = "X-Caller-Address"

const callerKey = "caller"

// CallerIdentity reads the caller address when one is present
func CallerIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := c.GetHeader(CallerHeader); raw != "" {
			if addr, err := entity.NewAddress(raw); err == nil {
				c.Set(callerKey, addr)
			}
		}
		c.Next()
	}
}

// CallerFrom returns the caller address of the current request
func CallerFrom(c *gin.Context) (entity.Address, bool) {
	v, ok := c.Get(callerKey)
	if !ok {
		return "", false
	}
	addr, ok := v.(entity.Address)
	return addr, ok
}
