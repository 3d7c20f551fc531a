package middleware

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"wedding_manager/apperr"
	"wedding_manager/helper"
	"wedding_manager/resolver"
	"wedding_manager/utils"
)

func Protected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies("access_token")

		if token == "" {
			auth := c.Get("Authorization")
			if strings.HasPrefix(auth, "Bearer ") {
				token = strings.TrimPrefix(auth, "Bearer ")
			}
		}

		if token == "" {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Missing token", errors.New("no token"))
		}

		jwtToken, err := helper.ParseToken(token)
		if err != nil || !jwtToken.Valid {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid token", err)
		}

		c.Locals("user", jwtToken)
		return c.Next()
	}
}

// TenantSite resolves the first path segment as a tenant slug for every
// request that is not aimed at a reserved surface. The resolved identity is
// a small fixed set in Locals; any failure, including the resolution timeout,
// falls back to a redirect to the root path so nothing about tenant existence
// leaks.
func TenantSite(res *resolver.Resolver, reserved map[string]struct{}, timeout time.Duration) fiber.Handler {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return func(c *fiber.Ctx) error {
		slug := firstSegment(c.Path())
		if slug == "" {
			return c.Next()
		}
		if _, ok := reserved[slug]; ok {
			return c.Next()
		}
		// Static assets keep their extension; they never name a tenant.
		if strings.Contains(slug, ".") {
			return c.Next()
		}

		ctx, cancel := context.WithTimeout(c.Context(), timeout)
		defer cancel()

		tenant, err := res.Resolve(ctx, slug)
		if err != nil {
			if !apperr.Is(err, apperr.KindNotFound) {
				log.Warn().Err(err).Str("slug", slug).Msg("tenant resolution failed")
			}
			return c.Redirect("/", fiber.StatusFound)
		}

		c.Locals("tenant", tenant)
		c.Locals("tenantId", tenant.ID)
		c.Locals("tenantSlug", tenant.Slug)
		c.Locals("groomName", tenant.GroomName)
		c.Locals("brideName", tenant.BrideName)
		c.Locals("weddingDate", tenant.WeddingDate)
		return c.Next()
	}
}

func firstSegment(path string) string {
	path = strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(path, '/'); i >= 0 {
		path = path[:i]
	}
	return path
}

// ResolvedTenant pulls the tenant the TenantSite middleware attached, for
// handlers mounted under the slug fallback routes.
func ResolvedTenant(c *fiber.Ctx) *resolver.ResolvedTenant {
	t, _ := c.Locals("tenant").(*resolver.ResolvedTenant)
	return t
}
