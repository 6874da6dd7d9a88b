package errors

import "errors"

// 에러 종류(sentinel). 서비스/레포지토리는 도메인 에러를 이 종류로 감싸서 올린다.
// errors.Is로 분기하고, HTTP 경계에서는 response.go가 상태코드로 변환한다.
var (
	// ErrMissingTenant 활성 매장을 해석할 수 없음. 해당 작업은 즉시 실패한다.
	ErrMissingTenant = errors.New("활성 매장을 찾을 수 없습니다")

	// ErrBackendUnavailable DB 연결 불가. 읽기는 빈 결과로 대체, 쓰기는 실패로 기록.
	ErrBackendUnavailable = errors.New("데이터베이스에 연결할 수 없습니다")

	// ErrPermissionDenied 테넌트/역할 위반. 재시도 없이 치명 처리.
	ErrPermissionDenied = errors.New("접근 권한이 없습니다")

	// ErrConflict 참조 무결성 위반 (사용 중인 마스터 삭제 등)
	ErrConflict = errors.New("다른 데이터에서 사용 중입니다")

	// ErrInvalidInput 형태/범위 위반. 백엔드 호출 전에 거부된다.
	ErrInvalidInput = errors.New("입력값이 올바르지 않습니다")

	// ErrNotFound 조회 대상 없음
	ErrNotFound = errors.New("대상을 찾을 수 없습니다")
)

// Kind 에러 종류 문자열 (감사 로그의 error_type 필드용)
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingTenant):
		return "MissingTenant"
	case errors.Is(err, ErrBackendUnavailable):
		return "BackendUnavailable"
	case errors.Is(err, ErrPermissionDenied):
		return "PermissionDenied"
	case errors.Is(err, ErrConflict):
		return "Conflict"
	case errors.Is(err, ErrInvalidInput):
		return "InvalidInput"
	case errors.Is(err, ErrNotFound):
		return "NotFound"
	default:
		return "Internal"
	}
}
