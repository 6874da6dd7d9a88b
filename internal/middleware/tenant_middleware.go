package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "github.com/jangsalab/storeops-backend/internal/errors"
	"github.com/jangsalab/storeops-backend/internal/tenant"
)

// TenantKey gin 컨텍스트의 테넌트 정보 키
const TenantKey = "tenant"

// TenantMiddleware 요청의 활성 매장을 확정한다.
// 우선순위: X-Store-ID 헤더 > 토큰 클레임 store_id > DEV_STORE_ID (dev 전용).
// 확정 실패면 요청 전체를 거부한다.
func TenantMiddleware(resolver *tenant.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		userID, _ := GetUserID(c)
		headerStoreID := c.GetHeader("X-Store-ID")
		claimStoreID := GetClaimStoreID(c)

		tc, err := resolver.Resolve(c.Request.Context(), userID, headerStoreID, claimStoreID)
		if err != nil {
			log.Warn("Tenant resolution failed", map[string]interface{}{
				"user_id": userID,
				"path":    c.Request.URL.Path,
				"error":   err.Error(),
			})
			if errors.Is(err, apperrors.ErrMissingTenant) {
				apperrors.RespondWithError(c, 400, apperrors.TenantMissing, "활성 매장이 없습니다. 매장을 선택해주세요")
			} else if errors.Is(err, apperrors.ErrPermissionDenied) {
				apperrors.RespondWithError(c, 403, apperrors.TenantNotMember, "해당 매장에 대한 권한이 없습니다")
			} else {
				apperrors.InternalError(c, "")
			}
			c.Abort()
			return
		}

		c.Set(TenantKey, tc)
		c.Next()
	}
}

// GetTenant gin 컨텍스트에서 테넌트 정보 조회
func GetTenant(c *gin.Context) (*tenant.Context, bool) {
	value, exists := c.Get(TenantKey)
	if !exists {
		return nil, false
	}
	tc, ok := value.(*tenant.Context)
	return tc, ok
}

// GetStoreID 확정된 매장 ID. 미들웨어를 통과한 요청에서만 호출한다.
func GetStoreID(c *gin.Context) string {
	if tc, ok := GetTenant(c); ok {
		return tc.StoreID
	}
	return ""
}
