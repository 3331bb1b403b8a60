package reports

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"Backend-GnaasCMS/src/models"
	"Backend-GnaasCMS/src/store"

	"github.com/xuri/excelize/v2"
)

var exportHeaders = []string{
	"Code", "Full Name", "Gender", "Level", "Program of Study",
	"Program Duration (Years)", "Hall", "Date of Admission", "Phone", "Email",
}

func exportRow(st *models.Student) []string {
	return []string{
		st.Code, st.FullName, st.Gender, st.Level, st.ProgramOfStudy,
		strconv.Itoa(st.ProgramDurationYears), st.Hall, st.DateOfAdmission,
		st.Phone, st.Email,
	}
}

// ExportStudentsCSV renders the filtered roster as CSV bytes.
func (s *Service) ExportStudentsCSV(ctx context.Context, f store.StudentFilter) ([]byte, error) {
	students, err := s.students.List(ctx, f)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeaders); err != nil {
		return nil, err
	}
	for i := range students {
		if err := w.Write(exportRow(&students[i])); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportStudentsExcel renders the filtered roster as an xlsx workbook.
func (s *Service) ExportStudentsExcel(ctx context.Context, f store.StudentFilter) ([]byte, error) {
	students, err := s.students.List(ctx, f)
	if err != nil {
		return nil, err
	}

	wb := excelize.NewFile()
	defer wb.Close()
	sheet := "Students"
	wb.SetSheetName(wb.GetSheetName(0), sheet)

	for col, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := wb.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}
	for i := range students {
		for col, v := range exportRow(&students[i]) {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := wb.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := wb.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
