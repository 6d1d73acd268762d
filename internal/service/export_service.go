package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Dhruv-477/SGPA-calculator/internal/dto"
	apperrors "github.com/Dhruv-477/SGPA-calculator/pkg/errors"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoSemesters  = fmt.Errorf("%w: no semesters to export", apperrors.ErrInvalidOperation)
	ErrExportGenerateFail = errors.New("failed to generate Excel file")
)

// 表头列
var exportHeaders = []string{"Semester", "Subject", "Grade Point", "Credit Hours", "Weighted"}

// ExportService 导出业务接口
//
// 设计说明：
//   - 汇总导出为 Excel (.xlsx)，只写不读，不作为存储格式
//   - 导出以 bytes.Buffer 返回，由调用方决定写入文件或其他 io.Writer
//   - 单个 Sheet：标题行、表头、按学期号升序的课程行，每学期一行 SGPA，末尾一行 CGPA
type ExportService interface {
	// ExportSummary 导出汇总为 Excel
	ExportSummary(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	grades GradeService
	sheet  string
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(grades GradeService, sheet string, logger *zap.Logger) ExportService {
	if sheet == "" {
		sheet = "Summary"
	}
	return &exportService{grades: grades, sheet: sheet, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportSummary — 导出汇总为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - A1 标题 "<姓名> — SGPA & CGPA Summary"（合并 A1:E1）
//   - 第 2 行表头
//   - 课程行：学期号 | 课程 | 绩点 | 学分 | 加权绩点
//   - 学期小计行：学期号 | "SGPA" | SGPA(2 位) | 学期学分 | 学期加权绩点
//   - 末行：空 | "CGPA" | CGPA(2 位) | 总学分 | 空
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportSummary(ctx context.Context) (*bytes.Buffer, string, error) {
	summary, err := s.grades.Summary(ctx)
	if err != nil {
		return nil, "", err
	}
	if len(summary.Semesters) == 0 {
		return nil, "", ErrExportNoSemesters
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := s.sheet
	idx, err := f.NewSheet(sheet)
	if err != nil {
		s.logger.Error("创建工作表失败", zap.String("sheet", sheet), zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	// 删除默认 Sheet1
	if sheet != "Sheet1" {
		f.DeleteSheet("Sheet1")
	}

	// 设置列宽
	f.SetColWidth(sheet, "A", "A", 10)
	f.SetColWidth(sheet, "B", "B", 28)
	f.SetColWidth(sheet, "C", "E", 14)

	// 样式
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	totalStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})

	// 标题行
	lastCol := colName(len(exportHeaders) - 1)
	f.SetCellValue(sheet, "A1", fmt.Sprintf("%s — SGPA & CGPA Summary", summary.StudentName))
	f.MergeCell(sheet, "A1", cell(lastCol, 1))
	f.SetCellStyle(sheet, "A1", "A1", headerStyle)

	// 表头
	row := 2
	for i, h := range exportHeaders {
		f.SetCellValue(sheet, cell(colName(i), row), h)
	}
	f.SetCellStyle(sheet, cell("A", row), cell(lastCol, row), headerStyle)

	// 数据行
	row = 3
	for _, sem := range summary.Semesters {
		row = writeSemesterRows(f, sheet, row, &sem)
		f.SetCellStyle(sheet, cell("A", row-1), cell(lastCol, row-1), totalStyle)
	}

	// CGPA 行
	f.SetCellValue(sheet, cell("B", row), "CGPA")
	f.SetCellValue(sheet, cell("C", row), round2(summary.CGPA))
	f.SetCellValue(sheet, cell("D", row), summary.TotalCreditHours)
	f.SetCellStyle(sheet, cell("A", row), cell(lastCol, row), totalStyle)

	// 写入 buffer
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("SGPA_%s.xlsx", summary.StudentName)
	s.logger.Info("汇总已导出",
		zap.String("filename", filename),
		zap.Int("semesters", len(summary.Semesters)),
	)
	return buf, filename, nil
}

// writeSemesterRows 写入一个学期的课程行与 SGPA 行，返回下一可用行号
func writeSemesterRows(f *excelize.File, sheet string, row int, sem *dto.SemesterResponse) int {
	for _, sub := range sem.Subjects {
		f.SetCellValue(sheet, cell("A", row), sem.Number)
		f.SetCellValue(sheet, cell("B", row), sub.Name)
		f.SetCellValue(sheet, cell("C", row), sub.GradePoint)
		f.SetCellValue(sheet, cell("D", row), sub.CreditHours)
		f.SetCellValue(sheet, cell("E", row), sub.WeightedGradePoints)
		row++
	}
	f.SetCellValue(sheet, cell("A", row), sem.Number)
	f.SetCellValue(sheet, cell("B", row), "SGPA")
	f.SetCellValue(sheet, cell("C", row), round2(sem.SGPA))
	f.SetCellValue(sheet, cell("D", row), sem.TotalCreditHours)
	f.SetCellValue(sheet, cell("E", row), sem.TotalWeightedGradePoints)
	return row + 1
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// round2 保留两位小数，与文本报告一致
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
