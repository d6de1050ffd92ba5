package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/entity"
	domainerr "github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/error"
	coreport "github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/port/core"
	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/infrastructure/adapter/api/dto"
)

const principalKey = "principal"

// PrincipalParser turns a bearer token into the caller it identifies
type PrincipalParser interface {
	ParsePrincipal(token string) (entity.Principal, error)
}

// Auth requires a valid bearer token and stores the caller in the gin context
func Auth(parser PrincipalParser, logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		scheme, token, found := strings.Cut(c.GetHeader("Authorization"), " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Failure(domainerr.ErrMissingCredentials.Error(), nil))
			return
		}

		principal, err := parser.ParsePrincipal(strings.TrimSpace(token))
		if err != nil {
			logger.Warn("Rejected bearer token", map[string]any{
				"path":  c.FullPath(),
				"error": err.Error(),
			})
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Failure(domainerr.ErrInvalidToken.Error(), nil))
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// PrincipalFrom returns the caller stored by Auth. The zero Principal means unauthenticated.
func PrincipalFrom(c *gin.Context) entity.Principal {
	if value, ok := c.Get(principalKey); ok {
		if principal, ok := value.(entity.Principal); ok {
			return principal
		}
	}
	return entity.Principal{}
}
