package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo 에러 정보 구조
type ErrorInfo struct {
	Code    string // 에러 코드 (codes.go 참조)
	Message string // 사용자 친화적 메시지
}

// ParseError 에러를 파싱하여 사용자 친화적인 메시지와 코드로 변환
// 보안상 민감한 정보는 숨기되, 사용자가 문제를 해결할 수 있는 정보 제공
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{Code: InternalServerError, Message: "서버 오류가 발생했습니다"}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	// 1. 종류(sentinel) 에러
	switch {
	case errors.Is(err, ErrMissingTenant):
		return ErrorInfo{Code: TenantMissing, Message: "활성 매장을 찾을 수 없습니다. 매장을 선택해주세요"}
	case errors.Is(err, ErrPermissionDenied):
		return ErrorInfo{Code: AuthzForbidden, Message: "접근 권한이 없습니다"}
	case errors.Is(err, ErrBackendUnavailable):
		return ErrorInfo{Code: InternalBackendDown, Message: "데이터베이스 연결에 실패했습니다. 잠시 후 다시 시도해주세요"}
	case errors.Is(err, ErrInvalidInput):
		return ErrorInfo{Code: ValidationInvalidInput, Message: firstLine(errStr)}
	case errors.Is(err, ErrConflict):
		return ErrorInfo{Code: MenuReferenced, Message: firstLine(errStr)}
	case errors.Is(err, ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return ErrorInfo{Code: ResourceNotFound, Message: getNotFoundMessage(context)}
	}

	// 2. PostgreSQL 에러 파싱

	// 2-1. Unique constraint violation (23505)
	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		return parseDuplicateKeyError(errStr, context)
	}

	// 2-2. Foreign key constraint violation (23503)
	if strings.Contains(errStrLower, "foreign key constraint") {
		return ErrorInfo{
			Code:    MenuReferenced,
			Message: "다른 데이터에서 사용 중이라 처리할 수 없습니다",
		}
	}

	// 2-3. Not null constraint violation (23502)
	if strings.Contains(errStrLower, "null value") && strings.Contains(errStrLower, "violates not-null constraint") {
		return ErrorInfo{
			Code:    ValidationInvalidInput,
			Message: "필수 입력값이 누락되었습니다",
		}
	}

	// 2-4. Check constraint violation (23514)
	if strings.Contains(errStrLower, "check constraint") {
		return ErrorInfo{
			Code:    ValidationInvalidInput,
			Message: "입력값이 허용 범위를 벗어났습니다",
		}
	}

	// 3. 네트워크/연결 에러
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalBackendDown,
			Message: "데이터베이스 연결에 실패했습니다. 잠시 후 다시 시도해주세요",
		}
	}

	// 4. 기본 내부 서버 오류
	return ErrorInfo{Code: InternalServerError, Message: "서버 오류가 발생했습니다"}
}

func parseDuplicateKeyError(errStr, context string) ErrorInfo {
	errStrLower := strings.ToLower(errStr)
	switch {
	case strings.Contains(errStrLower, "menu"):
		return ErrorInfo{Code: MenuAlreadyExists, Message: "이미 등록된 메뉴명입니다"}
	case strings.Contains(errStrLower, "ingredient"):
		return ErrorInfo{Code: IngredientExists, Message: "이미 등록된 재료명입니다"}
	default:
		return ErrorInfo{Code: ValidationInvalidInput, Message: "이미 존재하는 데이터입니다"}
	}
}

func getNotFoundMessage(context string) string {
	switch context {
	case "menu":
		return "메뉴를 찾을 수 없습니다"
	case "ingredient":
		return "재료를 찾을 수 없습니다"
	case "target":
		return "해당 월의 목표가 없습니다"
	case "store":
		return "매장을 찾을 수 없습니다"
	default:
		return "대상을 찾을 수 없습니다"
	}
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx > 0 {
		return s[:idx]
	}
	return s
}
