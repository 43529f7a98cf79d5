package server

import (
	"crypto/subtle"
	"fmt"
	"time"

	"atelier/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AdminLogin handles POST /api/admin/login. A correct password yields a
// signed session token, returned both in the body and as a cookie.
func (s *Server) AdminLogin(c *fiber.Ctx) error {
	var req struct {
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if !s.checkAdminPassword(req.Password) {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}

	token, err := s.generateSessionToken()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Expires:  time.Now().Add(sessionTTL),
		HTTPOnly: true,
		Secure:   s.config.IsProduction(),
		SameSite: "Lax",
	})

	return c.JSON(fiber.Map{
		"status": "success",
		"token":  token,
	})
}

// checkAdminPassword verifies the submitted password against the configured
// bcrypt hash, or the plain dev password when no hash is set.
func (s *Server) checkAdminPassword(password string) bool {
	if password == "" {
		return false
	}
	if s.config.AdminPasswordHash != "" {
		return bcrypt.CompareHashAndPassword(
			[]byte(s.config.AdminPasswordHash), []byte(password)) == nil
	}
	if s.config.AdminPassword == "" {
		return false
	}
	return subtle.ConstantTimeCompare(
		[]byte(s.config.AdminPassword), []byte(password)) == 1
}

// generateSessionToken creates a signed admin session JWT.
func (s *Server) generateSessionToken() (string, error) {
	if s.config.SessionSecret == "" {
		return "", fmt.Errorf("session secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   "admin",
		"admin": true,
		"iss":   tokenIssuer,
		"aud":   tokenAudience,
		"exp":   now.Add(sessionTTL).Unix(),
		"iat":   now.Unix(),
		"nbf":   now.Unix(),
		"jti":   generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.SessionSecret))
}

// generateJTI creates a unique token ID so individual sessions can be revoked.
func generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}

// Logout handles GET /logout. The session's jti is blacklisted until the
// token would have expired anyway, the cookie is cleared, and the visitor
// lands back on the home page.
func (s *Server) Logout(c *fiber.Ctx) error {
	tokenString := c.Cookies(sessionCookie)
	if tokenString != "" && s.redis != nil {
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(s.config.SessionSecret), nil
		})
		if err == nil && token.Valid {
			if claims, ok := token.Claims.(jwt.MapClaims); ok {
				if jti, exists := claims["jti"].(string); exists && jti != "" {
					ttl := sessionTTL
					if exp, expOk := claims["exp"].(float64); expOk {
						if remaining := time.Until(time.Unix(int64(exp), 0)); remaining > 0 {
							ttl = remaining
						}
					}
					s.redis.Set(c.Context(), "blacklist:"+jti, "1", ttl)
				}
			}
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return c.Redirect("/", fiber.StatusFound)
}
