package middleware

import (
	"errors"
	"fmt"
	"strings"

	autherrors "hris-portal/internal/auth/errors"
	"hris-portal/internal/shared/contextutil"
	"hris-portal/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"

	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// ParseToken validates an HS256 token of the given type and returns its claims.
func ParseToken(secret, raw, tokenType string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(raw, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, autherrors.ErrTokenExpired
		}
		return nil, autherrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, autherrors.ErrInvalidToken
	}
	if typ, _ := claims["typ"].(string); typ != tokenType {
		return nil, autherrors.ErrInvalidToken
	}
	for _, k := range []string{"user_id", "company_id", "role"} {
		if v, _ := claims[k].(string); v == "" {
			return nil, autherrors.ErrInvalidToken
		}
	}
	return claims, nil
}

// AuthMiddleware accepts a bearer token or the access_token cookie.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, _ := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if tokenString == "" {
			if cookie, err := c.Cookie(AccessTokenCookie); err == nil {
				tokenString = cookie
			}
		}
		if tokenString == "" {
			response.AbortFail(c, autherrors.ErrTokenMissing)
			return
		}

		claims, err := ParseToken(secret, tokenString, TokenTypeAccess)
		if err != nil {
			response.AbortFail(c, err)
			return
		}

		userID := claims["user_id"].(string)
		companyID := claims["company_id"].(string)
		role := claims["role"].(string)

		c.Set("user_id", userID)
		c.Set("company_id", companyID)
		c.Set("role", role)

		ctx := contextutil.WithPrincipal(c.Request.Context(), contextutil.Principal{
			Kind:      contextutil.PrincipalUser,
			ID:        userID,
			CompanyID: companyID,
			Role:      role,
		})
		logger := contextutil.GetLogger(ctx, zap.L()).With(
			zap.String("user_id", userID),
			zap.String("company_id", companyID),
		)
		c.Request = c.Request.WithContext(contextutil.WithLogger(ctx, logger))

		c.Next()
	}
}
