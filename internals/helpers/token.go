package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sindiplus_backend/internals/constants"
)

// Locals keys set by the auth middleware.
const (
	LocUserID       = "user_id"
	LocCompanyID    = "company_id"
	LocCompanyTaxID = "company_tax_id"
	LocRole         = "role"
	LocRawToken     = "raw_token"
)

// GetRawAccessToken returns the access token from, in order:
// cookie "access_token", Locals set by the middleware, Authorization header.
func GetRawAccessToken(c *fiber.Ctx) string {
	if v := strings.TrimSpace(c.Cookies("access_token")); v != "" {
		return v
	}
	if v, ok := c.Locals(LocRawToken).(string); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	const p = "Bearer "
	auth := c.Get("Authorization")
	if len(auth) > len(p) && strings.HasPrefix(auth, p) {
		return strings.TrimSpace(auth[len(p):])
	}
	return ""
}

func GetRefreshTokenFromCookie(c *fiber.Ctx) string {
	return strings.TrimSpace(c.Cookies("refresh_token"))
}

// SetRawAccessToken stores the verified token in Locals for later reuse.
func SetRawAccessToken(c *fiber.Ctx, raw string) {
	if strings.TrimSpace(raw) != "" {
		c.Locals(LocRawToken, strings.TrimSpace(raw))
	}
}

// GetUserID reads the authenticated user id placed in Locals by the auth
// middleware. Returns uuid.Nil when the request is unauthenticated.
func GetUserID(c *fiber.Ctx) uuid.UUID {
	if s, ok := c.Locals(LocUserID).(string); ok {
		if id, err := uuid.Parse(s); err == nil {
			return id
		}
	}
	return uuid.Nil
}

// GetCompanyID reads the caller's tenant id from Locals.
func GetCompanyID(c *fiber.Ctx) uuid.UUID {
	if s, ok := c.Locals(LocCompanyID).(string); ok {
		if id, err := uuid.Parse(s); err == nil {
			return id
		}
	}
	return uuid.Nil
}

func GetRole(c *fiber.Ctx) string {
	if s, ok := c.Locals(LocRole).(string); ok {
		return s
	}
	return ""
}

func IsAdmin(c *fiber.Ctx) bool {
	return GetRole(c) == constants.RoleAdmin
}

// IsOwnerTenant reports whether the caller belongs to the platform-owner
// company AND holds the admin role. Only this combination unlocks
// cross-tenant dashboard scope.
func IsOwnerTenant(c *fiber.Ctx) bool {
	taxID, _ := c.Locals(LocCompanyTaxID).(string)
	return taxID == constants.OwnerCompanyTaxID && IsAdmin(c)
}
