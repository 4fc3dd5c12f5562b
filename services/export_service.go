package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"blogapi/models"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const (
	ExportSheet      = "Sheet1"
	exportDateLayout = "2006-01-02 15:04"
)

var exportHeader = []string{"ID", "Title", "Slug", "Status", "Category", "Published At", "Created At"}

type ExportService struct {
	db *gorm.DB
}

func NewExportService(db *gorm.DB) *ExportService {
	return &ExportService{db: db}
}

// AuthorPosts loads every live post of the user, newest first.
func (s *ExportService) AuthorPosts(userID uint) ([]models.Post, error) {
	posts := []models.Post{}
	err := s.db.Preload("Category").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&posts).Error
	return posts, err
}

func exportRow(p models.Post) []string {
	category := ""
	if p.Category != nil {
		category = p.Category.Name
	}
	publishedAt := ""
	if p.PublishedAt != nil {
		publishedAt = p.PublishedAt.UTC().Format(exportDateLayout)
	}
	return []string{
		strconv.FormatUint(uint64(p.ID), 10),
		p.Title,
		p.Slug,
		string(p.Status),
		category,
		publishedAt,
		p.CreatedAt.UTC().Format(exportDateLayout),
	}
}

func (s *ExportService) WriteCSV(w io.Writer, posts []models.Post) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		return err
	}
	for _, p := range posts {
		if err := writer.Write(exportRow(p)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func (s *ExportService) WriteXLSX(w io.Writer, posts []models.Post) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, h := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(ExportSheet, cell, h); err != nil {
			return err
		}
	}
	for idx, p := range posts {
		for col, value := range exportRow(p) {
			cell, err := excelize.CoordinatesToCellName(col+1, idx+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(ExportSheet, cell, value); err != nil {
				return err
			}
		}
	}

	widths := []struct {
		from, to string
		width    float64
	}{
		{"B", "B", 40},
		{"C", "C", 30},
		{"F", "G", 18},
	}
	for _, cw := range widths {
		if err := f.SetColWidth(ExportSheet, cw.from, cw.to, cw.width); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// ExportFilename names the download after the format and the current date.
func ExportFilename(format string, now time.Time) string {
	return fmt.Sprintf("posts_%s.%s", now.Format("20060102"), format)
}
