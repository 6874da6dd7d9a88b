package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/jangsalab/storeops-backend/config"
	"github.com/jangsalab/storeops-backend/internal/errors"
	"github.com/jangsalab/storeops-backend/pkg/redis"
)

// Context keys for user information
const (
	UserIDKey       = "user_id"
	ClaimStoreIDKey = "claim_store_id"
	UserRoleKey     = "user_role"
	RawTokenKey     = "raw_token"
)

// Claims 외부 인증 제공자가 발급한 토큰의 클레임.
// 이 서버는 토큰을 검증만 하고, 로그인은 어디서도 처리하지 않는다.
type Claims struct {
	UserID  string `json:"user_id"`
	StoreID string `json:"store_id,omitempty"` // 레거시 토큰에만 존재
	Role    string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

type AuthMiddleware struct {
	jwtSecret    string
	dev          config.DevConfig
	redisEnabled bool
}

func NewAuthMiddleware(cfg *config.Config, redisEnabled bool) *AuthMiddleware {
	return &AuthMiddleware{
		jwtSecret:    cfg.JWT.Secret,
		dev:          cfg.Dev,
		redisEnabled: redisEnabled,
	}
}

// Authenticate validates JWT token (required)
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			// 개발 자동 세션: 토큰 없이 고정 사용자로 동작
			if m.dev.DevMode && m.dev.AutoLoginDev {
				c.Set(UserIDKey, "")
				c.Set(UserRoleKey, "owner")
				log.Debug("Dev auto-login session", map[string]interface{}{
					"path": c.Request.URL.Path,
				})
				c.Next()
				return
			}
			log.Warn("Missing authorization header", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.Unauthorized(c, "로그인이 필요합니다")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			log.Warn("Invalid authorization header format", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "인증 형식이 올바르지 않습니다")
			c.Abort()
			return
		}
		token := parts[1]

		claims, err := m.validateToken(token)
		if err != nil {
			log.Warn("Token validation failed", map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})
			if strings.Contains(err.Error(), jwt.ErrTokenExpired.Error()) {
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenExpired, "로그인이 만료되었습니다")
			} else {
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "유효하지 않은 인증 토큰입니다")
			}
			c.Abort()
			return
		}

		// 외부 제공자가 철회한 토큰인지 확인 (Redis가 있을 때만)
		if m.redisEnabled {
			blacklisted, err := redis.IsTokenBlacklisted(c.Request.Context(), token)
			if err != nil {
				log.Warn("Token blacklist check failed", map[string]interface{}{
					"error": err.Error(),
				})
			} else if blacklisted {
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "철회된 인증 토큰입니다")
				c.Abort()
				return
			}
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(ClaimStoreIDKey, claims.StoreID)
		c.Set(UserRoleKey, claims.Role)
		c.Set(RawTokenKey, token)

		log.Debug("User authenticated successfully", map[string]interface{}{
			"user_id": claims.UserID,
		})

		c.Next()
	}
}

func (m *AuthMiddleware) validateToken(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(m.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}

// RevokeToken 현재 요청의 토큰을 블랙리스트에 올린다 (세션 종료용).
// Redis가 없으면 아무것도 하지 않는다.
func (m *AuthMiddleware) RevokeToken(c *gin.Context, ttl time.Duration) error {
	if !m.redisEnabled {
		return nil
	}
	token := c.GetString(RawTokenKey)
	if token == "" {
		return nil
	}
	return redis.BlacklistToken(c.Request.Context(), token, ttl)
}

// GetUserID extracts user ID from context
func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return "", false
	}
	return userID.(string), true
}

// GetClaimStoreID extracts legacy store_id claim from context
func GetClaimStoreID(c *gin.Context) string {
	return c.GetString(ClaimStoreIDKey)
}
