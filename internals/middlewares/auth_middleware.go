// internals/middlewares/auth_middleware.go
package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"bitacademy_backend/internals/constants"
)

// Locals keys hydrated from the token
const (
	LocUserID   = "user_id"
	LocUserRole = "userRole"
)

type AuthJWTOpts struct {
	Secret              string
	AllowCookieFallback bool // use the access_token cookie when no Bearer header
}

// AuthJWT validates tokens issued by the external identity service.
// Issuance/refresh live elsewhere; this only verifies and hydrates locals.
func AuthJWT(o AuthJWTOpts) fiber.Handler {
	secret := strings.TrimSpace(o.Secret)
	if secret == "" {
		panic("AuthJWT: Secret is required")
	}

	return func(c *fiber.Ctx) error {
		// 1) Token from Authorization: Bearer xxx (or cookie when allowed)
		raw := ""
		if authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			raw = strings.TrimSpace(authz[7:])
		} else if o.AllowCookieFallback {
			raw = strings.TrimSpace(c.Cookies("access_token"))
		}
		if raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}

		// 2) Parse + verify algorithm
		tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !tok.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
		}

		claims, ok := tok.Claims.(jwt.MapClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
		}
		c.Locals("jwt_claims", claims)

		// user_id: id/sub/user_id in order of preference
		switch {
		case strClaim(claims, "id") != "":
			c.Locals(LocUserID, strClaim(claims, "id"))
		case strClaim(claims, "sub") != "":
			c.Locals(LocUserID, strClaim(claims, "sub"))
		case strClaim(claims, "user_id") != "":
			c.Locals(LocUserID, strClaim(claims, "user_id"))
		}

		if role := strClaim(claims, "role"); role != "" {
			c.Locals(LocUserRole, role)
		}

		return c.Next()
	}
}

// RequireAdmin gates the /api/a group.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(LocUserRole).(string)
		if !ok || role == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized: missing role information")
		}
		if role != constants.RoleAdmin && role != constants.RoleOwner {
			return fiber.NewError(fiber.StatusForbidden, constants.RoleErrorAdmin("cohort scheduling"))
		}
		return c.Next()
	}
}

func strClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key]; ok {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
