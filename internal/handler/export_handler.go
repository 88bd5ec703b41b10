package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/edustack/schoolhub/internal/model"
	"github.com/edustack/schoolhub/internal/response"
	"github.com/edustack/schoolhub/internal/service"
)

// ExportHandler streams the admin summary as an .xlsx workbook.
type ExportHandler struct {
	summaryService *service.SummaryService
	log            zerolog.Logger
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(summaryService *service.SummaryService, log zerolog.Logger) *ExportHandler {
	return &ExportHandler{
		summaryService: summaryService,
		log:            log.With().Str("component", "export_handler").Logger(),
	}
}

// ExportSummary godoc
// GET /api/admin/summary/export
// Builds a workbook with an Overview sheet, a Students sheet and a
// Teachers sheet, and streams it as an attachment.
func (h *ExportHandler) ExportSummary(c *gin.Context) {
	summary, err := h.summaryService.GetSummary(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	f, err := buildSummaryWorkbook(summary)
	if err != nil {
		h.log.Error().Err(err).Msg("Build summary workbook failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			h.log.Warn().Err(err).Msg("Close workbook failed")
		}
	}()

	c.Header("Content-Disposition", `attachment; filename="summary.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		h.log.Error().Err(err).Msg("Stream workbook failed")
	}
}

func buildSummaryWorkbook(summary *model.Summary) (*excelize.File, error) {
	f := excelize.NewFile()

	const overview = "Overview"
	if err := f.SetSheetName("Sheet1", overview); err != nil {
		return nil, err
	}

	counts := summary.Counts
	overviewRows := [][]interface{}{
		{"Metric", "Value"},
		{"Students", counts.TotalStudents},
		{"Teachers", counts.TotalTeachers},
		{"Courses", counts.TotalCourses},
		{"Classes", counts.TotalClasses},
		{"Students in classes", counts.StudentsInClasses},
		{"Students not assigned", counts.StudentsNotAssigned},
	}
	for i, row := range overviewRows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(overview, cell, &row); err != nil {
			return nil, err
		}
	}

	const students = "Students"
	if _, err := f.NewSheet(students); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(students, "A1", &[]interface{}{"Name", "Email", "Class", "Course", "Teacher"}); err != nil {
		return nil, err
	}
	for i, s := range summary.Students {
		row := []interface{}{s.Name, s.Email, s.Class, s.Course, s.Teacher}
		if err := f.SetSheetRow(students, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return nil, err
		}
	}

	const teachers = "Teachers"
	if _, err := f.NewSheet(teachers); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(teachers, "A1", &[]interface{}{"Name", "Email", "Classes", "Students"}); err != nil {
		return nil, err
	}
	for i, t := range summary.Teachers {
		row := []interface{}{t.Name, t.Email, t.Classes, t.Students}
		if err := f.SetSheetRow(teachers, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return nil, err
		}
	}

	return f, nil
}
