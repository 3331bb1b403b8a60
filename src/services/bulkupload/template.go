package bulkupload

import (
	"bytes"

	"github.com/xuri/excelize/v2"
)

var templateHeaders = []string{
	"Full Name", "Gender", "Level", "Program of Study", "Program Duration Years",
	"Hall", "Date of Admission", "Date of Birth", "Residence", "Guardian Name",
	"Guardian Contact", "Local Church Name", "Local Church Location", "District",
	"Phone", "Email",
}

var templateSample = []string{
	"Ama Mensah", "Female", "L200", "BSc Nursing", "4",
	"Volta Hall", "2024-09-01", "2004-05-12", "Ho", "Kofi Mensah",
	"0244000000", "GNAAS Chapel", "Ho Central", "Volta",
	"0550000000", "ama.mensah@example.com",
}

// Template builds the sample workbook users download before a bulk upload.
// It carries the recognized column headers plus one illustrative row.
func Template() (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for col, header := range templateHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}
	for col, value := range templateSample {
		cell, err := excelize.CoordinatesToCellName(col+1, 2)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return &buf, nil
}
