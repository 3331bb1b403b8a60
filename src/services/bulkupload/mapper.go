package bulkupload

import (
	"strconv"
	"strings"
	"time"

	"Backend-GnaasCMS/src/models"
	"Backend-GnaasCMS/src/services/students"
)

// headerAliases maps the normalized header variants seen in real files to
// canonical field names.
var headerAliases = map[string]string{
	"fullname":               "fullName",
	"name":                   "fullName",
	"studentname":            "fullName",
	"studentid":              "code",
	"studentcode":            "code",
	"code":                   "code",
	"gender":                 "gender",
	"sex":                    "gender",
	"level":                  "level",
	"class":                  "level",
	"programofstudy":         "programOfStudy",
	"program":                "programOfStudy",
	"course":                 "programOfStudy",
	"programdurationyears":   "programDurationYears",
	"programduration":        "programDurationYears",
	"duration":               "programDurationYears",
	"expectedcompletionyear": "expectedCompletionYear",
	"completionyear":         "expectedCompletionYear",
	"hall":                   "hall",
	"hostel":                 "hall",
	"dateofadmission":        "dateOfAdmission",
	"admissiondate":          "dateOfAdmission",
	"dateofbirth":            "dateOfBirth",
	"dob":                    "dateOfBirth",
	"residence":              "residence",
	"guardianname":           "guardianName",
	"guardiancontact":        "guardianContact",
	"localchurchname":        "localChurchName",
	"church":                 "localChurchName",
	"localchurchlocation":    "localChurchLocation",
	"district":               "district",
	"phone":                  "phone",
	"phonenumber":            "phone",
	"contact":                "phone",
	"email":                  "email",
	"emailaddress":           "email",
}

func fieldValue(row Row, canonical string) string {
	for alias, field := range headerAliases {
		if field != canonical {
			continue
		}
		if v, ok := row[alias]; ok && v != "" {
			return v
		}
	}
	return ""
}

// MapRow converts one decoded row into a student create request, applying
// level normalization, spreadsheet date conversion and defaults.
func MapRow(row Row) (students.CreateRequest, error) {
	req := students.CreateRequest{
		Code:                strings.ToUpper(strings.TrimSpace(fieldValue(row, "code"))),
		FullName:            fieldValue(row, "fullName"),
		Gender:              normalizeGender(fieldValue(row, "gender")),
		Level:               NormalizeLevel(fieldValue(row, "level")),
		ProgramOfStudy:      fieldValue(row, "programOfStudy"),
		Hall:                fieldValue(row, "hall"),
		DateOfAdmission:     normalizeDate(fieldValue(row, "dateOfAdmission")),
		DateOfBirth:         normalizeDate(fieldValue(row, "dateOfBirth")),
		Residence:           fieldValue(row, "residence"),
		GuardianName:        fieldValue(row, "guardianName"),
		GuardianContact:     fieldValue(row, "guardianContact"),
		LocalChurchName:     fieldValue(row, "localChurchName"),
		LocalChurchLocation: fieldValue(row, "localChurchLocation"),
		District:            fieldValue(row, "district"),
		Phone:               fieldValue(row, "phone"),
		Email:               strings.ToLower(fieldValue(row, "email")),
	}

	if req.FullName == "" {
		return req, models.Validationf("fullName is required")
	}
	if req.Gender == "" {
		return req, models.Validationf("gender is required")
	}

	if v := fieldValue(row, "programDurationYears"); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n < 1 || n > 6 {
			return req, models.Validationf("invalid programDurationYears %q", v)
		}
		req.ProgramDurationYears = n
	} else {
		req.ProgramDurationYears = 4
	}
	if v := fieldValue(row, "expectedCompletionYear"); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			req.ExpectedCompletionYear = n
		}
	}

	if req.Hall == "" {
		req.Hall = "Unknown"
	}
	if req.DateOfAdmission == "" {
		req.DateOfAdmission = time.Now().Format("2006-01-02")
	}
	if models.LevelNumber(req.Level) > req.ProgramDurationYears*100 {
		return req, models.Validationf("level %s exceeds a %d-year program", req.Level, req.ProgramDurationYears)
	}
	return req, nil
}

// NormalizeLevel coerces the free-form level strings found in spreadsheets
// ("level 300", "L300", "300") to the canonical codes. Unrecognized values
// default to L100.
func NormalizeLevel(raw string) string {
	v := strings.ToUpper(strings.TrimSpace(raw))
	if strings.Contains(v, "ALUMNI") || strings.Contains(v, "GRADUATE") {
		return models.LevelAlumni
	}
	for _, n := range []string{"600", "500", "400", "300", "200", "100"} {
		if strings.Contains(v, n) {
			return "L" + n
		}
	}
	return "L100"
}

func normalizeGender(raw string) string {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "M", "MALE":
		return "Male"
	case "F", "FEMALE":
		return "Female"
	default:
		return strings.TrimSpace(raw)
	}
}

// normalizeDate accepts YYYY-MM-DD, DD/MM/YYYY and bare Excel date serials.
// Serials below 1 and conversions landing outside 1900-2100 are discarded.
func normalizeDate(raw string) string {
	v := strings.TrimSpace(raw)
	if v == "" {
		return ""
	}
	if _, err := time.Parse("2006-01-02", v); err == nil {
		return v
	}
	for _, layout := range []string{"02/01/2006", "2/1/2006", "02-01-2006", "January 2, 2006", "2 January 2006"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format("2006-01-02")
		}
	}
	if serial, err := strconv.ParseFloat(v, 64); err == nil && serial >= 1 {
		d := ConvertExcelDate(serial)
		if y := d.Year(); y >= 1900 && y <= 2100 {
			return d.Format("2006-01-02")
		}
	}
	return ""
}

// ConvertExcelDate turns a 1900-epoch spreadsheet serial into a date. The
// 1899-12-30 epoch absorbs Excel's phantom 1900 leap day, so every serial
// from March 1900 onward maps to the calendar date Excel displays.
func ConvertExcelDate(serial float64) time.Time {
	epoch := time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)
	return epoch.AddDate(0, 0, int(serial))
}
