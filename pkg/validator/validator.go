package validator

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/jangsalab/storeops-backend/internal/app/model"
)

// Register gin 바인딩 엔진에 도메인 검증 태그를 등록한다.
// 서버 기동 시 한 번 호출한다.
func Register() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterValidation("kstdate", validateKSTDate)
	v.RegisterValidation("expense_category", validateExpenseCategory)
}

// kstdate YYYY-MM-DD 형식의 영업일 문자열
func validateKSTDate(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// expense_category 허용된 비용 카테고리 문자열
func validateExpenseCategory(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	return model.IsValidExpenseCategory(s)
}
