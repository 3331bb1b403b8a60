package bulkupload

import (
	"testing"
	"time"

	"Backend-GnaasCMS/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLevel(t *testing.T) {
	cases := map[string]string{
		"L300":      "L300",
		"level 300": "L300",
		"300":       "L300",
		"l200":      "L200",
		"Alumni":    models.LevelAlumni,
		"GRADUATE":  models.LevelAlumni,
		"":          "L100",
		"freshman":  "L100",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeLevel(in), "input %q", in)
	}
}

func TestConvertExcelDate(t *testing.T) {
	assert.Equal(t, "2024-01-01", ConvertExcelDate(45292).Format("2006-01-02"))
	assert.Equal(t, "2023-01-01", ConvertExcelDate(44927).Format("2006-01-02"))
}

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "fullname", normalizeHeader("Full Name"))
	assert.Equal(t, "fullname", normalizeHeader("full_name"))
	assert.Equal(t, "dateofadmission", normalizeHeader("Date of Admission"))
}

func TestMapRowDefaults(t *testing.T) {
	req, err := MapRow(Row{"fullname": "Kofi Boateng", "gender": "M"})
	require.NoError(t, err)
	assert.Equal(t, "Kofi Boateng", req.FullName)
	assert.Equal(t, "Male", req.Gender)
	assert.Equal(t, "L100", req.Level)
	assert.Equal(t, 4, req.ProgramDurationYears)
	assert.Equal(t, "Unknown", req.Hall)
	assert.NotEmpty(t, req.DateOfAdmission)
}

func TestMapRowRequiredFields(t *testing.T) {
	_, err := MapRow(Row{"gender": "F"})
	assert.True(t, models.IsValidation(err))

	_, err = MapRow(Row{"fullname": "No Gender"})
	assert.True(t, models.IsValidation(err))
}

func TestMapRowDateFormats(t *testing.T) {
	req, err := MapRow(Row{"fullname": "A", "gender": "F", "dateofadmission": "15/01/2026"})
	require.NoError(t, err)
	assert.Equal(t, "2026-01-15", req.DateOfAdmission)

	req, err = MapRow(Row{"fullname": "A", "gender": "F", "dateofbirth": "45292"})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", req.DateOfBirth)
}

func TestNormalizeDateRejectsGarbageSerials(t *testing.T) {
	// Sub-1 serials and serials landing outside 1900-2100 are dropped, so
	// the field stays empty instead of carrying a nonsense date.
	req, err := MapRow(Row{"fullname": "A", "gender": "F", "dateofbirth": "0.5"})
	require.NoError(t, err)
	assert.Empty(t, req.DateOfBirth)

	req, err = MapRow(Row{"fullname": "A", "gender": "F", "dateofbirth": "999999"})
	require.NoError(t, err)
	assert.Empty(t, req.DateOfBirth)

	// A garbage admission serial falls back to the today default.
	req, err = MapRow(Row{"fullname": "A", "gender": "F", "dateofadmission": "0.5"})
	require.NoError(t, err)
	assert.Equal(t, time.Now().Format("2006-01-02"), req.DateOfAdmission)
}

func TestMapRowLevelBeyondProgram(t *testing.T) {
	_, err := MapRow(Row{"fullname": "A", "gender": "F", "level": "L300", "duration": "2"})
	assert.True(t, models.IsValidation(err))
}

func TestParseCSV(t *testing.T) {
	content := []byte("Full Name,Gender,Level\nAma Mensah,Female,L200\nKofi Boateng,Male,level 300\n")
	rows, err := ParseFile("students.csv", content)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Ama Mensah", rows[0]["fullname"])
	assert.Equal(t, "L300", NormalizeLevel(rows[1]["level"]))
}

func TestParseFileUnsupportedExtension(t *testing.T) {
	_, err := ParseFile("students.pdf", []byte("x"))
	assert.True(t, models.IsValidation(err))
}

func TestTemplateRoundTrips(t *testing.T) {
	buf, err := Template()
	require.NoError(t, err)

	rows, err := ParseFile("template.xlsx", buf.Bytes())
	require.NoError(t, err)
	require.Len(t, rows, 1)

	req, err := MapRow(rows[0])
	require.NoError(t, err)
	assert.Equal(t, "Ama Mensah", req.FullName)
	assert.Equal(t, "L200", req.Level)
	assert.Equal(t, 4, req.ProgramDurationYears)
	assert.Equal(t, "2024-09-01", req.DateOfAdmission)
}
