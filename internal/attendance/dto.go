package attendance

import (
	"strconv"
)

// ValidationError represents a simple validation error from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

// MarkAttendanceDTO carries the parsed multipart fields of a check-in.
type MarkAttendanceDTO struct {
	Latitude  float64
	Longitude float64
}

// ParseLocation validates the raw latitude/longitude form values. Both must
// be present and numeric; malformed input is a caller error, never silently
// defaulted.
func ParseLocation(latStr, lonStr string) (MarkAttendanceDTO, error) {
	if latStr == "" || lonStr == "" {
		return MarkAttendanceDTO{}, ValidationError{Msg: "latitude and longitude are required"}
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return MarkAttendanceDTO{}, ValidationError{Msg: "latitude must be numeric"}
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return MarkAttendanceDTO{}, ValidationError{Msg: "longitude must be numeric"}
	}

	if lat < -90 || lat > 90 {
		return MarkAttendanceDTO{}, ValidationError{Msg: "latitude must be between -90 and 90"}
	}
	if lon < -180 || lon > 180 {
		return MarkAttendanceDTO{}, ValidationError{Msg: "longitude must be between -180 and 180"}
	}

	return MarkAttendanceDTO{Latitude: lat, Longitude: lon}, nil
}

// ReportQuery is the validated year/month pair of the report endpoints.
type ReportQuery struct {
	Year  int
	Month int
}

func ParseReportQuery(yearStr, monthStr string) (ReportQuery, error) {
	if yearStr == "" || monthStr == "" {
		return ReportQuery{}, ValidationError{Msg: "year and month are required"}
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 1970 || year > 9999 {
		return ReportQuery{}, ValidationError{Msg: "year must be a valid four-digit year"}
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		return ReportQuery{}, ValidationError{Msg: "month must be between 1 and 12"}
	}

	return ReportQuery{Year: year, Month: month}, nil
}
