package service

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jangsalab/storeops-backend/pkg/logger"
	"github.com/jangsalab/storeops-backend/pkg/timeutil"
)

// ReportService 월간 리포트 엑셀 생성
type ReportService struct {
	resolver  *ResolverService
	analytics *AnalyticsService
	targets   *TargetService
}

func NewReportService(resolver *ResolverService, analyticsService *AnalyticsService, targets *TargetService) *ReportService {
	return &ReportService{
		resolver:  resolver,
		analytics: analyticsService,
		targets:   targets,
	}
}

// BuildMonthlyReport 월간 운영 리포트를 엑셀 파일로 만든다.
// 시트: 요약, 메뉴 ABC, 재료 사용.
func (s *ReportService) BuildMonthlyReport(storeID string, year, month int) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := s.writeSummarySheet(f, storeID, year, month); err != nil {
		return nil, err
	}
	if err := s.writeABCSheet(f, storeID, year, month); err != nil {
		return nil, err
	}
	if err := s.writeUsageSheet(f, storeID, year, month); err != nil {
		return nil, err
	}

	f.DeleteSheet("Sheet1")

	logger.Info("월간 리포트 생성", map[string]interface{}{
		"store_id": storeID,
		"year":     year,
		"month":    month,
	})
	return f, nil
}

func (s *ReportService) writeSummarySheet(f *excelize.File, storeID string, year, month int) error {
	sheet := "요약"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	total, err := s.resolver.MonthlySalesTotal(storeID, year, month)
	if err != nil {
		return err
	}
	breakEven, err := s.analytics.GetBreakEven(storeID, year, month)
	if err != nil {
		return err
	}
	target, err := s.targets.GetTarget(storeID, year, month)
	if err != nil {
		return err
	}

	rows := [][]interface{}{
		{"항목", "값"},
		{"대상 월", fmt.Sprintf("%d년 %d월", year, month)},
		{"월 매출 합계 (원)", total},
		{"월 고정비 (원)", breakEven.Structure.FixedTotal},
		{"변동비율 (%)", breakEven.Structure.VariableRatio * 100},
	}
	if breakEven.BreakEven != nil {
		rows = append(rows, []interface{}{"손익분기 매출 (원)", int64(*breakEven.BreakEven)})
	} else {
		rows = append(rows, []interface{}{"손익분기 매출 (원)", "계산 불가"})
	}
	if target != nil {
		rows = append(rows, []interface{}{"목표 매출 (원)", target.TargetSales})
		rows = append(rows, []interface{}{"목표 대비 (원)", total - target.TargetSales})
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func (s *ReportService) writeABCSheet(f *excelize.File, storeID string, year, month int) error {
	sheet := "메뉴 ABC"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	startDate, endDate := timeutil.MonthRange(year, month)
	rows, err := s.analytics.GetMenuABC(storeID, startDate, endDate)
	if err != nil {
		return err
	}

	header := []interface{}{"순위", "메뉴", "수량", "매출 (원)", "비중 (%)", "누적 비중 (%)", "등급"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{row.Rank, row.Name, row.Qty, row.Value, row.Share, row.CumShare, row.Grade}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return nil
}

func (s *ReportService) writeUsageSheet(f *excelize.File, storeID string, year, month int) error {
	sheet := "재료 사용"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	startDate, endDate := timeutil.MonthRange(year, month)
	report, err := s.analytics.GetIngredientUsage(storeID, startDate, endDate)
	if err != nil {
		return err
	}

	header := []interface{}{"재료", "단위", "사용량", "지출 (원)"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, summary := range report.Summaries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{summary.Name, summary.Unit, summary.TotalAmount, summary.TotalSpend}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return nil
}
