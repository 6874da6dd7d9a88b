// Package tenant 요청별 매장 컨텍스트 해석.
// 모든 조회/쓰기는 여기서 확정된 StoreID를 기준으로 동작한다.
package tenant

import (
	"context"

	"github.com/jangsalab/storeops-backend/config"
	apperrors "github.com/jangsalab/storeops-backend/internal/errors"
	"github.com/jangsalab/storeops-backend/pkg/logger"
)

// Context 인증된 요청의 테넌트 정보
type Context struct {
	UserID  string `json:"user_id"`
	StoreID string `json:"store_id"`
	Role    string `json:"role"`
}

// MembershipChecker 사용자-매장 소속 확인
type MembershipChecker interface {
	// IsMember 사용자가 해당 매장 소속이면 역할을 반환한다
	IsMember(ctx context.Context, userID, storeID string) (string, bool, error)
}

// Resolver 매장 ID 해석기. 우선순위:
//  1. 명시적 헤더 (X-Store-ID)
//  2. 토큰 클레임의 store_id (레거시)
//  3. 개발 모드의 DEV_STORE_ID
type Resolver struct {
	cfg        *config.Config
	membership MembershipChecker
}

func NewResolver(cfg *config.Config, membership MembershipChecker) *Resolver {
	return &Resolver{cfg: cfg, membership: membership}
}

// Resolve 요청에서 테넌트 컨텍스트를 확정한다.
// headerStoreID, claimStoreID는 없으면 빈 문자열.
func (r *Resolver) Resolve(ctx context.Context, userID, headerStoreID, claimStoreID string) (*Context, error) {
	log := logger.Get()

	storeID := headerStoreID
	source := "header"
	if storeID == "" {
		storeID = claimStoreID
		source = "claim"
	}
	if storeID == "" && r.cfg.Dev.DevMode {
		storeID = r.cfg.Dev.DevStoreID
		source = "dev_fallback"
	}
	if storeID == "" {
		log.Warn("매장 컨텍스트 해석 실패", map[string]interface{}{
			"user_id": userID,
		})
		return nil, apperrors.ErrMissingTenant
	}

	// 개발 모드의 service role 세션은 소속 검증 없이 읽기 접근을 허용한다
	if r.cfg.Dev.DevMode && r.cfg.Dev.UseServiceRoleDev {
		log.Debug("매장 소속 검증 우회 (dev service role)", map[string]interface{}{
			"user_id":  userID,
			"store_id": storeID,
		})
		return &Context{UserID: userID, StoreID: storeID, Role: "owner"}, nil
	}

	role := ""
	if userID != "" && r.membership != nil {
		memberRole, ok, err := r.membership.IsMember(ctx, userID, storeID)
		if err != nil {
			return nil, err
		}
		if !ok {
			log.Warn("매장 소속이 아닌 사용자의 접근", map[string]interface{}{
				"user_id":  userID,
				"store_id": storeID,
			})
			return nil, apperrors.ErrPermissionDenied
		}
		role = memberRole
	}

	log.Debug("매장 컨텍스트 해석 완료", map[string]interface{}{
		"user_id":  userID,
		"store_id": storeID,
		"source":   source,
	})

	return &Context{UserID: userID, StoreID: storeID, Role: role}, nil
}

// SwitchStore 사용자의 활성 매장 전환. 소속 검증 후 새 컨텍스트를 반환한다.
func (r *Resolver) SwitchStore(ctx context.Context, userID, targetStoreID string) (*Context, error) {
	if targetStoreID == "" {
		return nil, apperrors.ErrInvalidInput
	}
	if r.membership == nil {
		return nil, apperrors.ErrBackendUnavailable
	}

	role, ok, err := r.membership.IsMember(ctx, userID, targetStoreID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.ErrPermissionDenied
	}

	logger.Get().Info("매장 전환", map[string]interface{}{
		"user_id":  userID,
		"store_id": targetStoreID,
	})

	return &Context{UserID: userID, StoreID: targetStoreID, Role: role}, nil
}

type contextKey string

const tenantKey contextKey = "tenant"

// WithTenant 컨텍스트에 테넌트 정보 저장
func WithTenant(ctx context.Context, tc *Context) context.Context {
	return context.WithValue(ctx, tenantKey, tc)
}

// FromContext 컨텍스트에서 테넌트 정보 조회
func FromContext(ctx context.Context) (*Context, bool) {
	tc, ok := ctx.Value(tenantKey).(*Context)
	return tc, ok
}
