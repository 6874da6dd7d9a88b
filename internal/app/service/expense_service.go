package service

import (
	"fmt"

	"github.com/jangsalab/storeops-backend/internal/app/model"
	"github.com/jangsalab/storeops-backend/internal/app/repository"
	"github.com/jangsalab/storeops-backend/internal/cache"
	apperrors "github.com/jangsalab/storeops-backend/internal/errors"
)

// ExpenseService 월별 비용구조 서비스.
// 고정비 카테고리의 금액은 원, 변동비 카테고리의 금액은 매출 대비 퍼센트다.
type ExpenseService struct {
	expenseRepo repository.ExpenseRepository
	coordinator *WriteCoordinator
	cache       *cache.Layer
}

func NewExpenseService(
	expenseRepo repository.ExpenseRepository,
	coordinator *WriteCoordinator,
	cacheLayer *cache.Layer,
) *ExpenseService {
	return &ExpenseService{
		expenseRepo: expenseRepo,
		coordinator: coordinator,
		cache:       cacheLayer,
	}
}

// ExpenseItemInput 비용 항목 입력
type ExpenseItemInput struct {
	Category string  `json:"category" binding:"required,expense_category"`
	ItemName string  `json:"item_name" binding:"required"`
	Amount   float64 `json:"amount"`
	Notes    string  `json:"notes"`
}

// SaveExpenses 월별 비용 항목 일괄 upsert.
// 변동비 비율 합이 100%를 넘으면 전체를 거부한다 (저장 후 상태 기준).
func (s *ExpenseService) SaveExpenses(storeID string, year, month int, inputs []ExpenseItemInput) (*WriteOutcome, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: 월은 1~12 사이여야 합니다", apperrors.ErrInvalidInput)
	}
	for _, input := range inputs {
		if !model.IsValidExpenseCategory(input.Category) {
			return nil, fmt.Errorf("%w: 허용되지 않은 카테고리입니다: %s", apperrors.ErrInvalidInput, input.Category)
		}
		if input.Amount < 0 {
			return nil, fmt.Errorf("%w: 금액은 음수일 수 없습니다", apperrors.ErrInvalidInput)
		}
		if !model.IsFixedCategory(input.Category) && input.Amount > 100 {
			return nil, fmt.Errorf("%w: 변동비 비율은 100%%를 넘을 수 없습니다", apperrors.ErrInvalidInput)
		}
	}

	return s.coordinator.RunWrite("save_expenses", []string{cache.TargetExpense},
		map[string]interface{}{"year": year, "month": month},
		func() (*WriteOutcome, error) {
			if err := s.checkVariableSum(storeID, year, month, inputs); err != nil {
				return nil, err
			}

			items := make([]model.ExpenseItem, 0, len(inputs))
			for _, input := range inputs {
				items = append(items, model.ExpenseItem{
					StoreID:  storeID,
					Year:     year,
					Month:    month,
					Category: input.Category,
					ItemName: input.ItemName,
					Amount:   input.Amount,
					Notes:    input.Notes,
				})
			}
			if err := s.expenseRepo.UpsertMany(items); err != nil {
				return nil, err
			}
			return &WriteOutcome{OK: true, RowsWritten: len(items)}, nil
		})
}

// DeleteExpense 비용 항목 단건 삭제
func (s *ExpenseService) DeleteExpense(storeID string, expenseID uint) (*WriteOutcome, error) {
	return s.coordinator.RunWrite("delete_expense", []string{cache.TargetExpense},
		map[string]interface{}{"expense_id": expenseID},
		func() (*WriteOutcome, error) {
			if err := s.expenseRepo.Delete(storeID, expenseID); err != nil {
				return nil, err
			}
			return &WriteOutcome{OK: true, RowsWritten: 1}, nil
		})
}

// CopyFromPreviousMonth 전월 비용구조를 해당 월로 복사한다.
// 해당 월에 이미 항목이 있으면 덮어쓰지 않고 거부한다.
func (s *ExpenseService) CopyFromPreviousMonth(storeID string, year, month int) (*WriteOutcome, error) {
	prevYear, prevMonth := year, month-1
	if prevMonth == 0 {
		prevYear, prevMonth = year-1, 12
	}

	return s.coordinator.RunWrite("copy_expenses_prev_month", []string{cache.TargetExpense},
		map[string]interface{}{"year": year, "month": month},
		func() (*WriteOutcome, error) {
			current, err := s.expenseRepo.FindByMonth(storeID, year, month)
			if err != nil {
				return nil, err
			}
			if len(current) > 0 {
				return &WriteOutcome{
					OK:     false,
					Reason: fmt.Sprintf("%d년 %d월에 이미 비용 항목이 있어 복사하지 않았습니다", year, month),
				}, nil
			}

			prev, err := s.expenseRepo.FindByMonth(storeID, prevYear, prevMonth)
			if err != nil {
				return nil, err
			}
			if len(prev) == 0 {
				return &WriteOutcome{
					OK:     false,
					Reason: fmt.Sprintf("%d년 %d월에 복사할 비용 항목이 없습니다", prevYear, prevMonth),
				}, nil
			}

			items := make([]model.ExpenseItem, 0, len(prev))
			for _, p := range prev {
				items = append(items, model.ExpenseItem{
					StoreID:  storeID,
					Year:     year,
					Month:    month,
					Category: p.Category,
					ItemName: p.ItemName,
					Amount:   p.Amount,
					Notes:    p.Notes,
				})
			}
			if err := s.expenseRepo.UpsertMany(items); err != nil {
				return nil, err
			}
			return &WriteOutcome{OK: true, RowsWritten: len(items)}, nil
		})
}

// GetExpenses 월별 비용 항목 조회 (캐시, 짧은 TTL)
func (s *ExpenseService) GetExpenses(storeID string, year, month int) ([]model.ExpenseItem, error) {
	return cache.Fetch(s.cache, cache.FnExpenseStructure, map[string]string{
		"store_id": storeID,
		"year":     fmt.Sprintf("%d", year),
		"month":    fmt.Sprintf("%d", month),
	}, func() ([]model.ExpenseItem, error) {
		return s.expenseRepo.FindByMonth(storeID, year, month)
	})
}

// checkVariableSum 저장 후 기준으로 변동비 비율 합 <= 100을 검증한다.
// 기존 행 위에 같은 자연키로 덮는 항목은 입력값으로 대체해서 계산한다.
func (s *ExpenseService) checkVariableSum(storeID string, year, month int, inputs []ExpenseItemInput) error {
	existing, err := s.expenseRepo.FindByMonth(storeID, year, month)
	if err != nil {
		return err
	}

	amounts := make(map[string]float64)
	for _, e := range existing {
		if !model.IsFixedCategory(e.Category) {
			amounts[e.Category+"/"+e.ItemName] = e.Amount
		}
	}
	for _, input := range inputs {
		if !model.IsFixedCategory(input.Category) {
			amounts[input.Category+"/"+input.ItemName] = input.Amount
		}
	}

	var sum float64
	for _, amount := range amounts {
		sum += amount
	}
	if sum > 100 {
		return fmt.Errorf("%w: 변동비 비율 합이 100%%를 넘습니다 (%.1f%%)", apperrors.ErrInvalidInput, sum)
	}
	return nil
}
