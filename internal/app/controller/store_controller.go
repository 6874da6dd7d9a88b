package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jangsalab/storeops-backend/internal/app/service"
	"github.com/jangsalab/storeops-backend/internal/errors"
	"github.com/jangsalab/storeops-backend/internal/middleware"
	"github.com/jangsalab/storeops-backend/internal/tenant"
)

// StoreController 매장 목록·생성·전환과 세션 종료
type StoreController struct {
	storeService *service.StoreService
	resolver     *tenant.Resolver
	auth         *middleware.AuthMiddleware
}

func NewStoreController(
	storeService *service.StoreService,
	resolver *tenant.Resolver,
	auth *middleware.AuthMiddleware,
) *StoreController {
	return &StoreController{
		storeService: storeService,
		resolver:     resolver,
		auth:         auth,
	}
}

type CreateStoreRequest struct {
	Name string `json:"name" binding:"required"`
}

type SwitchStoreRequest struct {
	StoreID string `json:"store_id" binding:"required"`
}

// GetMyStores 내가 소속된 매장 목록
// GET /api/v1/stores
func (ctrl *StoreController) GetMyStores(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	stores, err := ctrl.storeService.GetMyStores(userID)
	if err != nil {
		errors.RespondWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stores": stores, "count": len(stores)})
}

// CreateStore 매장 생성
// POST /api/v1/stores
func (ctrl *StoreController) CreateStore(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	var req CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "매장명이 필요합니다")
		return
	}

	store, err := ctrl.storeService.CreateStore(userID, req.Name)
	if err != nil {
		errors.RespondWithKind(c, err)
		return
	}

	log.Info("Store created", map[string]interface{}{
		"store_id": store.ID,
		"user_id":  userID,
	})
	c.JSON(http.StatusCreated, store)
}

// SwitchStore 활성 매장 전환. 소속 검증 후 새 테넌트 컨텍스트를 돌려준다.
// 클라이언트는 이후 요청에 X-Store-ID 헤더로 이 매장을 싣는다.
// POST /api/v1/stores/switch
func (ctrl *StoreController) SwitchStore(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	var req SwitchStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "store_id가 필요합니다")
		return
	}

	tc, err := ctrl.resolver.SwitchStore(c.Request.Context(), userID, req.StoreID)
	if err != nil {
		errors.RespondWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, tc)
}

// Logout 현재 토큰을 철회한다. 토큰 발급은 외부 인증 제공자 소관이다.
// POST /api/v1/auth/logout
func (ctrl *StoreController) Logout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	if err := ctrl.auth.RevokeToken(c, 24*time.Hour); err != nil {
		log.Error("Failed to revoke token", err, nil)
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "로그아웃되었습니다"})
}
