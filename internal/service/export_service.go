package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/marwahavanshika/FYP2025/internal/dto"
	"github.com/marwahavanshika/FYP2025/internal/permission"
	"github.com/marwahavanshika/FYP2025/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoComplaints = errors.New("no complaints match the filter")
	ErrExportGenerateFail = errors.New("failed to generate spreadsheet")
)

// ExportService 导出业务接口
// 导出以 bytes.Buffer 返回，由 Handler 层设置下载响应头
type ExportService interface {
	// ExportComplaints 按可见范围与过滤条件导出投诉为 Excel
	ExportComplaints(ctx context.Context, actor *permission.Actor, req *dto.ComplaintListRequest) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

var complaintExportHeaders = []string{
	"ID", "Title", "Category", "Priority", "Status", "Hostel", "Location",
	"Submitted By", "Assignee", "Upvotes", "Sentiment", "Created At", "Resolved At",
}

// ════════════════════════════════════════════════
// ExportComplaints 导出投诉为 Excel
// ════════════════════════════════════════════════
//
// 输出格式：
//   - 单 Sheet "Complaints"，第 1 行标题，第 2 行表头，第 3 行起为数据
//   - 按创建时间倒序
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportComplaints(ctx context.Context, actor *permission.Actor, req *dto.ComplaintListRequest) (*bytes.Buffer, string, error) {
	if !actor.Can(permission.CapComplaintExport) {
		return nil, "", ErrNoPermission
	}

	filter := visibilityFilter(actor)
	filter.Status = req.Status
	filter.Category = req.Category
	filter.Priority = req.Priority
	filter.Hostel = req.Hostel

	list, err := s.repo.Complaint.ListAll(ctx, filter)
	if err != nil {
		s.logger.Error("查询导出投诉失败", zap.Error(err))
		return nil, "", err
	}
	if len(list) == 0 {
		return nil, "", ErrExportNoComplaints
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Complaints"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	// 列宽
	widths := []float64{38, 40, 14, 10, 12, 18, 24, 24, 24, 9, 10, 22, 22}
	for i, w := range widths {
		col := colName(i)
		f.SetColWidth(sheetName, col, col, w)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	scope := "All hostels"
	if h := permission.WardenHostel(actor.Role); h != "" {
		scope = h
	} else if req.Hostel != "" {
		scope = req.Hostel
	}
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("Complaints: %s", scope))
	f.MergeCell(sheetName, "A1", cell(colName(len(complaintExportHeaders)-1), 1))
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	row := 2
	for i, h := range complaintExportHeaders {
		f.SetCellValue(sheetName, cell(colName(i), row), h)
	}
	f.SetCellStyle(sheetName, cell("A", row), cell(colName(len(complaintExportHeaders)-1), row), headerStyle)

	// 数据行
	row = 3
	for i := range list {
		c := &list[i]

		submitter := c.UserID
		if c.User != nil {
			submitter = c.User.FullName
		}
		assignee := "-"
		if c.Assignee != nil {
			assignee = c.Assignee.FullName
		}
		sentiment := "-"
		if c.SentimentScore != nil {
			sentiment = fmt.Sprintf("%.3f", *c.SentimentScore)
		}
		resolvedAt := "-"
		if c.ResolvedAt != nil {
			resolvedAt = formatTime(*c.ResolvedAt)
		}

		values := []interface{}{
			c.ComplaintID, c.Title, c.Category, c.Priority, c.Status, c.Hostel, c.Location,
			submitter, assignee, c.UpvoteCount, sentiment, formatTime(c.CreatedAt), resolvedAt,
		}
		for j, v := range values {
			f.SetCellValue(sheetName, cell(colName(j), row), v)
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("complaints_%s.xlsx", scopeSlug(scope))
	return buf, filename, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func scopeSlug(scope string) string {
	if scope == "All hostels" {
		return "all"
	}
	return scope
}
