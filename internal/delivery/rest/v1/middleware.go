package v1

import (
	"crypto/subtle"
	"net/http"

	"paygate/internal/domain"

	"github.com/gin-gonic/gin"
)

// indexerAuthMiddleware gates the ingress route. Only the indexing service
// knows the shared secret; everything else is rejected before any body
// parsing happens.
func (h *Handler) indexerAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.Request.Header.Get("Authorization")
		if header == "" {
			responseErr(c, http.StatusForbidden, domain.ErrMsgUnauthorized, "")
			c.Abort()
			return
		}

		if subtle.ConstantTimeCompare([]byte(header), []byte(h.config.IndexerSecret)) != 1 {
			responseErr(c, http.StatusForbidden, domain.ErrMsgInvalidAuthHeader, "")
			c.Abort()
			return
		}

		c.Next()
	}
}

func (h *Handler) adminAccessMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.config.PrivateKey != c.Request.Header.Get("Access") {
			responseErr(c, http.StatusUnauthorized, "access denied", "")
			c.Abort()
			return
		}
		c.Next()
	}
}
