package handler

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/pollapp-api/internal/domain/entity"
)

const scoresSheetName = "Scores"

var scoresExportHeaders = []string{"Participant ID", "Username", "Total score", "Scores", "Feedbacks"}

// exportScoresCSV отдает оценки в CSV
func exportScoresCSV(c *gin.Context, totals []entity.ParticipantTotal, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))
	c.Status(http.StatusOK)

	if err := writeScoresCSV(c.Writer, totals); err != nil {
		log.Printf("[CompetitionHandler] Ошибка записи CSV: %v", err)
	}
}

// writeScoresCSV пишет BOM, заголовки и по строке на участника
func writeScoresCSV(w io.Writer, totals []entity.ParticipantTotal) error {
	// BOM для корректного отображения UTF-8 в Excel
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(scoresExportHeaders); err != nil {
		return err
	}
	for _, t := range totals {
		if err := writer.Write([]string{
			strconv.FormatUint(uint64(t.ID), 10),
			sanitizeForExcel(t.Username),
			strconv.Itoa(t.TotalScore),
			joinScores(t.Scores),
			sanitizeForExcel(joinFeedbacks(t.Feedbacks)),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// exportScoresXLSX отдает оценки в Excel
func exportScoresXLSX(c *gin.Context, totals []entity.ParticipantTotal, filename string) {
	f, err := buildScoresWorkbook(totals)
	if err != nil {
		log.Printf("[CompetitionHandler] Ошибка создания Excel файла: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))
	c.Status(http.StatusOK)

	if err := f.Write(c.Writer); err != nil {
		log.Printf("[CompetitionHandler] Ошибка записи Excel в response: %v", err)
	}
}

// buildScoresWorkbook собирает книгу через StreamWriter
func buildScoresWorkbook(totals []entity.ParticipantTotal) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", scoresSheetName); err != nil {
		f.Close()
		return nil, err
	}

	sw, err := f.NewStreamWriter(scoresSheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create stream writer: %w", err)
	}

	headers := make([]interface{}, len(scoresExportHeaders))
	for i, h := range scoresExportHeaders {
		headers[i] = h
	}
	if err := sw.SetRow("A1", headers); err != nil {
		f.Close()
		return nil, fmt.Errorf("write headers: %w", err)
	}

	for i, t := range totals {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		row := []interface{}{t.ID, sanitizeForExcel(t.Username), t.TotalScore, joinScores(t.Scores), sanitizeForExcel(joinFeedbacks(t.Feedbacks))}
		if err := sw.SetRow(cell, row); err != nil {
			f.Close()
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		f.Close()
		return nil, fmt.Errorf("flush: %w", err)
	}
	return f, nil
}

func joinScores(scores []int) string {
	parts := make([]string, len(scores))
	for i, s := range scores {
		parts[i] = strconv.Itoa(s)
	}
	return strings.Join(parts, ", ")
}

func joinFeedbacks(feedbacks []*string) string {
	parts := make([]string, 0, len(feedbacks))
	for _, f := range feedbacks {
		if f != nil && *f != "" {
			parts = append(parts, *f)
		}
	}
	return strings.Join(parts, " | ")
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}
