package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/Kingsley6145/gamebridge-admin/internal/domains/course/model"
	"github.com/Kingsley6145/gamebridge-admin/internal/domains/course/service"
	"github.com/Kingsley6145/gamebridge-admin/internal/shared/response"
)

// BulkHandler moves the course catalog in and out of spreadsheets.
// Rows carry only the flat course fields; modules and questions are
// edited per course.
type BulkHandler struct {
	sync service.CourseSync
}

func NewBulkHandler(sync service.CourseSync) *BulkHandler {
	return &BulkHandler{sync: sync}
}

var bulkHeaders = []string{"Title", "Duration", "Rating", "Students", "Is Trendy", "Is Premium", "Cover URL"}

type rowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportCourses - POST /v1/courses/import
// Each data row becomes one create. Rows fail independently; the
// report lists every rejected row with its reason.
func (h *BulkHandler) ImportCourses(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "missing file part")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "unreadable file")
		return
	}
	defer file.Close()

	workbook, err := excelize.OpenReader(file)
	if err != nil {
		response.BadRequest(c, "file is not a valid xlsx workbook")
		return
	}
	defer workbook.Close()

	rows, err := workbook.GetRows(workbook.GetSheetName(0))
	if err != nil {
		response.BadRequest(c, "failed to read worksheet")
		return
	}
	if len(rows) < 2 {
		response.BadRequest(c, "worksheet has no data rows")
		return
	}

	actor := c.GetString("userID")
	imported := 0
	var failures []rowError

	// Row 1 is the header.
	for i, row := range rows[1:] {
		rowNum := i + 2

		data, err := parseCourseRow(row)
		if err != nil {
			failures = append(failures, rowError{Row: rowNum, Message: err.Error()})
			continue
		}

		if _, err := h.sync.Create(c.Request.Context(), actor, data, nil); err != nil {
			failures = append(failures, rowError{Row: rowNum, Message: err.Error()})
			continue
		}
		imported++
	}

	response.Success(c, http.StatusOK, gin.H{
		"imported": imported,
		"failed":   len(failures),
		"errors":   failures,
	})
}

// ExportCourses - GET /v1/courses/export
func (h *BulkHandler) ExportCourses(c *gin.Context) {
	workbook := excelize.NewFile()
	defer workbook.Close()

	sheetName := "Courses"
	workbook.SetSheetName("Sheet1", sheetName)

	for col, header := range bulkHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		workbook.SetCellValue(sheetName, cell, header)
	}

	for i, course := range h.sync.Courses() {
		values := []interface{}{
			course.Title,
			course.Duration,
			course.Rating,
			course.Students,
			course.IsTrendy,
			course.IsPremium,
			course.CoverImage,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			workbook.SetCellValue(sheetName, cell, v)
		}
	}

	filename := fmt.Sprintf("courses_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := workbook.Write(c.Writer); err != nil {
		model.HandleCourseError(c, err)
	}
}

func parseCourseRow(row []string) (model.CourseData, error) {
	var data model.CourseData

	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	data.Title = cell(0)
	data.Duration = cell(1)

	if raw := cell(2); raw != "" {
		rating, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return data, fmt.Errorf("invalid rating %q", raw)
		}
		data.Rating = rating
	}
	if raw := cell(3); raw != "" {
		students, err := strconv.Atoi(raw)
		if err != nil {
			return data, fmt.Errorf("invalid students count %q", raw)
		}
		data.Students = students
	}

	data.IsTrendy = parseBoolCell(cell(4))
	data.IsPremium = parseBoolCell(cell(5))
	data.CoverImage = cell(6)

	return data, nil
}

func parseBoolCell(raw string) bool {
	switch strings.ToLower(raw) {
	case "true", "yes", "1":
		return true
	default:
		return false
	}
}
