package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"casework-backend/internal/models"
)

// CallerKey is the gin context key under which the resolved caller is stored.
const CallerKey = "caller"

var (
	ErrNoCaller      = errors.New("missing caller identity")
	ErrUnknownCaller = errors.New("unknown caller")
)

// UserLoader is the slice of the store needed to resolve a caller.
type UserLoader interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// CallerResolver maps an incoming request to a user account. Implementations
// are the only place that knows how identity travels on the wire, so the
// header scheme can later be swapped for real session verification without
// touching handlers.
type CallerResolver interface {
	Resolve(c *gin.Context) (*models.User, error)
}

// HeaderResolver trusts the caller-supplied X-User-Id header (or the
// currentUserId query parameter) and resolves it to a user row. This is not
// a security boundary.
type HeaderResolver struct {
	users UserLoader
}

func NewHeaderResolver(users UserLoader) *HeaderResolver {
	return &HeaderResolver{users: users}
}

func (r *HeaderResolver) Resolve(c *gin.Context) (*models.User, error) {
	raw := c.GetHeader("X-User-Id")
	if raw == "" {
		raw = c.Query("currentUserId")
	}
	if raw == "" {
		return nil, ErrNoCaller
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad user id %q", ErrUnknownCaller, raw)
	}

	return loadCaller(c, r.users, id)
}

// TokenResolver verifies an HS256 bearer token and resolves the user id from
// its "sub" claim. Active when AUTH_JWT_SECRET is configured.
type TokenResolver struct {
	users  UserLoader
	secret []byte
}

func NewTokenResolver(users UserLoader, secret string) *TokenResolver {
	return &TokenResolver{users: users, secret: []byte(secret)}
}

func (r *TokenResolver) Resolve(c *gin.Context) (*models.User, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, ErrNoCaller
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, fmt.Errorf("%w: invalid authorization header format", ErrUnknownCaller)
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return r.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownCaller, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: invalid token claims", ErrUnknownCaller)
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: missing user id in token", ErrUnknownCaller)
	}
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad user id in token", ErrUnknownCaller)
	}

	return loadCaller(c, r.users, id)
}

func loadCaller(c *gin.Context, users UserLoader, id int64) (*models.User, error) {
	user, err := users.GetUserByID(c.Request.Context(), id)
	if err != nil {
		return nil, fmt.Errorf("%w: user %d", ErrUnknownCaller, id)
	}
	return user, nil
}

// Auth rejects requests whose caller cannot be resolved and stores the
// resolved user in the context for handlers.
func Auth(resolver CallerResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := resolver.Resolve(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
			return
		}
		c.Set(CallerKey, user)
		c.Next()
	}
}

// CallerFromContext returns the user resolved by the Auth middleware.
func CallerFromContext(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(CallerKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}
