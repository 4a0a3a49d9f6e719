package blog

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"inkreel/internal/cache"
	"inkreel/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	sessionCookie   = "inkreel_session"
	sessionIssuer   = "inkreel-blog"
	sessionAudience = "inkreel-web"
	sessionLifetime = 7 * 24 * time.Hour
)

// issueSession creates a signed session token for the user and sets it as an
// HTTP-only cookie.
func (s *Server) issueSession(c *fiber.Ctx, userID uint, name string) error {
	if s.config.SessionSecret == "" {
		return fmt.Errorf("session secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  strconv.FormatUint(uint64(userID), 10),
		"name": name,
		"iss":  sessionIssuer,
		"aud":  sessionAudience,
		"exp":  now.Add(sessionLifetime).Unix(),
		"iat":  now.Unix(),
		"nbf":  now.Unix(),
		"jti":  generateJTI(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(s.config.SessionSecret))
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Expires:  now.Add(sessionLifetime),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
	return nil
}

// generateJTI creates a unique session token ID so individual sessions can be revoked.
func generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}

// sessionClaims parses and validates the session cookie. It returns the user
// ID and the raw claims, or an error for a missing, invalid, expired, or
// revoked session.
func (s *Server) sessionClaims(c *fiber.Ctx) (uint, jwt.MapClaims, error) {
	tokenString := c.Cookies(sessionCookie)
	if tokenString == "" {
		return 0, nil, fmt.Errorf("no session cookie")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("invalid signing method")
		}
		return []byte(s.config.SessionSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, nil, fmt.Errorf("invalid or expired session")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, nil, fmt.Errorf("invalid session claims")
	}

	if issuer, ok := claims["iss"].(string); !ok || issuer != sessionIssuer {
		return 0, nil, fmt.Errorf("invalid session issuer")
	}
	if audience, ok := claims["aud"].(string); !ok || audience != sessionAudience {
		return 0, nil, fmt.Errorf("invalid session audience")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, nil, fmt.Errorf("invalid subject claim")
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, nil, fmt.Errorf("invalid user ID in session")
	}

	// A logged-out session is revoked by jti until it would have expired.
	if jti, exists := claims["jti"].(string); exists && jti != "" && s.redis != nil {
		denied, err := s.redis.Exists(c.Context(), cache.SessionDenyKey(jti)).Result()
		if err == nil && denied > 0 {
			return 0, nil, fmt.Errorf("session has been revoked")
		}
	}

	return uint(userID), claims, nil
}

// setSessionLocals records the authenticated user in Fiber locals and the
// request context for logging and downstream services.
func setSessionLocals(c *fiber.Ctx, userID uint, claims jwt.MapClaims) {
	c.Locals("userID", userID)
	if name, ok := claims["name"].(string); ok {
		c.Locals("userName", name)
	}
	ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, userID)
	c.SetUserContext(ctx)
}

// SessionRequired returns middleware that redirects unauthenticated requests
// to the login page.
func (s *Server) SessionRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, claims, err := s.sessionClaims(c)
		if err != nil {
			return c.Redirect("/login", fiber.StatusFound)
		}
		setSessionLocals(c, userID, claims)
		return c.Next()
	}
}

// WithSession returns middleware that records the session user when one is
// present but never rejects the request.
func (s *Server) WithSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if userID, claims, err := s.sessionClaims(c); err == nil {
			setSessionLocals(c, userID, claims)
		}
		return c.Next()
	}
}

// revokeSession denylists the current session's jti until its expiry and
// clears the cookie.
func (s *Server) revokeSession(c *fiber.Ctx) {
	_, claims, err := s.sessionClaims(c)
	if err == nil && s.redis != nil {
		jti, _ := claims["jti"].(string)
		if jti != "" {
			ttl := sessionLifetime
			if exp, ok := claims["exp"].(float64); ok {
				if until := time.Until(time.Unix(int64(exp), 0)); until > 0 {
					ttl = until
				}
			}
			s.redis.Set(c.Context(), cache.SessionDenyKey(jti), "1", ttl)
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

// currentUserID returns the authenticated user's ID from locals.
func currentUserID(c *fiber.Ctx) (uint, bool) {
	userID, ok := c.Locals("userID").(uint)
	return userID, ok
}
