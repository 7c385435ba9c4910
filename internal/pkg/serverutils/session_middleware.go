package serverutils

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	SessionHeader    = "X-Session-Token"
	SessionLocalsKey = "session_id"
)

var ErrInvalidSessionToken = errors.New("invalid session token")

// SessionTokens signs session IDs so clients cannot pick arbitrary session keys.
type SessionTokens struct {
	secret []byte
}

func NewSessionTokens(secret string) *SessionTokens {
	return &SessionTokens{secret: []byte(secret)}
}

func (s *SessionTokens) Issue(sessionID string) (string, error) {
	claims := jwt.MapClaims{
		"session_id": sessionID,
		"iat":        time.Now().Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *SessionTokens) Parse(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", ErrInvalidSessionToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidSessionToken
	}
	sessionID, ok := claims["session_id"].(string)
	if !ok || sessionID == "" {
		return "", ErrInvalidSessionToken
	}
	return sessionID, nil
}

// TokenFromRequest prefers the header over the cookie.
func TokenFromRequest(ctx *fiber.Ctx, cookieName string) string {
	if h := ctx.Get(SessionHeader); h != "" {
		return h
	}
	return ctx.Cookies(cookieName)
}

func SessionMiddleware(tokens *SessionTokens, cookieName string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		tokenStr := TokenFromRequest(ctx, cookieName)
		if tokenStr == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Missing session"))
		}

		sessionID, err := tokens.Parse(tokenStr)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Invalid session"))
		}

		ctx.Locals(SessionLocalsKey, sessionID)
		return ctx.Next()
	}
}

// SessionID reads what SessionMiddleware stored.
func SessionID(ctx *fiber.Ctx) string {
	id, _ := ctx.Locals(SessionLocalsKey).(string)
	return id
}
