// Package report renders monthly attendance rows into the export formats
// served by the report endpoints.
package report

import (
	"fmt"
	"time"
)

// Row is one formatted report line, already joined with the user projection.
type Row struct {
	Name      string
	Email     string
	Role      string
	Date      time.Time
	Latitude  float64
	Longitude float64
	SelfieURL string
}

func (r Row) FormattedDate() string {
	return r.Date.Format("2006-01-02")
}

func (r Row) FormattedLocation() string {
	return fmt.Sprintf("Lat: %g, Lon: %g", r.Latitude, r.Longitude)
}
