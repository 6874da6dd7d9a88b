package errors

// 에러 코드 상수 정의
// 형식: CATEGORY_SPECIFIC_DETAIL
// 프론트엔드에서 이 코드를 기반으로 메시지를 매핑함

const (
	// ==================== 인증/테넌트 (AUTH_/TENANT_) ====================
	AuthUnauthorized = "AUTH_UNAUTHORIZED" // 로그인 필요
	AuthTokenExpired = "AUTH_TOKEN_EXPIRED" // 토큰 만료
	AuthTokenInvalid = "AUTH_TOKEN_INVALID" // 잘못된 토큰
	AuthzForbidden   = "AUTHZ_FORBIDDEN"    // 접근 권한 없음
	TenantMissing    = "TENANT_MISSING"     // 활성 매장 없음
	TenantNotMember  = "TENANT_NOT_MEMBER"  // 속하지 않은 매장으로 전환 시도

	// ==================== 매출/마감 (SALES_) ====================
	SalesInvalidAmount   = "SALES_INVALID_AMOUNT"   // 음수 금액 등
	SalesTotalMismatch   = "SALES_TOTAL_MISMATCH"   // 합계 != 카드+현금
	SalesCloseConflict   = "SALES_CLOSE_CONFLICT"   // 마감 기록 위에 덮어씀 (경고성)
	SalesDateInvalid     = "SALES_DATE_INVALID"     // 날짜 형식 오류
	VisitorsInvalidCount = "VISITORS_INVALID_COUNT" // 방문자 수 음수

	// ==================== 마스터 (MENU_/INGREDIENT_/RECIPE_) ====================
	MenuNotFound         = "MENU_NOT_FOUND"           // 메뉴 없음
	MenuAlreadyExists    = "MENU_ALREADY_EXISTS"      // 메뉴명 중복
	MenuReferenced       = "MENU_REFERENCED"          // 레시피/판매내역에서 사용 중
	IngredientNotFound   = "INGREDIENT_NOT_FOUND"     // 재료 없음
	IngredientExists     = "INGREDIENT_ALREADY_EXISTS" // 재료명 중복
	IngredientReferenced = "INGREDIENT_REFERENCED"    // 레시피/재고에서 사용 중
	RecipeNotFound       = "RECIPE_NOT_FOUND"         // 레시피 없음

	// ==================== 비용구조/목표 (EXPENSE_/TARGET_) ====================
	ExpenseInvalidCategory = "EXPENSE_INVALID_CATEGORY" // 허용되지 않은 카테고리
	ExpenseRatioOverflow   = "EXPENSE_RATIO_OVERFLOW"   // 변동비 비율 합계 100% 초과
	ExpenseNotFound        = "EXPENSE_NOT_FOUND"        // 비용 항목 없음
	TargetNotFound         = "TARGET_NOT_FOUND"         // 목표 없음
	TargetInvalidRatio     = "TARGET_INVALID_RATIO"     // 목표 비율 범위 오류

	// ==================== 분석 (ANALYTICS_) ====================
	AnalyticsSplitInvalid = "ANALYTICS_SPLIT_INVALID" // 평일+주말 비율 합계 != 100%
	AnalyticsNoData       = "ANALYTICS_NO_DATA"       // 분석 대상 데이터 없음

	// ==================== 공통 ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT" // 입력값 검증 실패
	ResourceNotFound       = "RESOURCE_NOT_FOUND"       // 일반 조회 실패
	InternalServerError    = "INTERNAL_SERVER_ERROR"    // 내부 오류
	InternalBackendDown    = "INTERNAL_BACKEND_DOWN"    // DB/네트워크 연결 실패
)
