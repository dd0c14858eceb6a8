package attendance

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/frahmantamala/attendance-management/internal/auth"
	"github.com/frahmantamala/attendance-management/internal/report"
	"github.com/frahmantamala/attendance-management/internal/transport"
	"github.com/frahmantamala/attendance-management/pkg/logger"
)

// maxSelfieSize caps the multipart form we are willing to buffer.
const maxSelfieSize = 10 << 20

type ServiceAPI interface {
	Mark(ctx context.Context, userID int64, dto MarkAttendanceDTO, selfie io.ReadSeeker, filename, contentType string, now time.Time) (*Attendance, error)
	ListAll() ([]*RecordWithUser, error)
	MonthlyReport(q ReportQuery) ([]*RecordWithUser, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.L()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

// Mark handles POST /attendance/mark: multipart form with a selfie file part
// and latitude/longitude fields.
func (h *Handler) Mark(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := r.ParseMultipartForm(maxSelfieSize); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	dto, err := ParseLocation(r.FormValue("latitude"), r.FormValue("longitude"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	file, header, err := r.FormFile("selfie")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "selfie file is required")
		return
	}
	defer file.Close()

	// buffer so the blob store gets a seekable body
	body, err := io.ReadAll(io.LimitReader(file, maxSelfieSize))
	if err != nil {
		h.Logger.Error("Mark: reading selfie failed", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if len(body) == 0 {
		h.WriteError(w, http.StatusBadRequest, "selfie file is empty")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	record, err := h.Service.Mark(r.Context(), user.ID, dto, bytes.NewReader(body), header.Filename, contentType, time.Now())
	if err != nil {
		var marked *AlreadyMarkedError
		if errors.As(err, &marked) {
			h.WriteJSON(w, http.StatusBadRequest, map[string]interface{}{
				"message":    "Attendance already marked for today",
				"attendance": marked.Existing,
			})
			return
		}
		h.Logger.Error("Mark: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message":    "Attendance marked successfully",
		"attendance": record,
	})
}

// List handles GET /attendance.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.Service.ListAll()
	if err != nil {
		h.Logger.Error("List: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.WriteJSON(w, http.StatusOK, records)
}

// Report handles GET /attendance/report?year=&month=.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	records, ok := h.monthlyRecords(w, r)
	if !ok {
		return
	}

	h.WriteJSON(w, http.StatusOK, records)
}

// ExportXLSX handles GET /attendance/report/export.
func (h *Handler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	records, ok := h.monthlyRecords(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := report.WriteXLSX(&buf, toReportRows(records)); err != nil {
		h.Logger.Error("ExportXLSX: rendering failed", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Disposition", "attachment; filename=attendance_report.xlsx")
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Write(buf.Bytes())
}

// ExportPDF handles GET /attendance/report/export/pdf.
func (h *Handler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	records, ok := h.monthlyRecords(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := report.WritePDF(&buf, toReportRows(records)); err != nil {
		h.Logger.Error("ExportPDF: rendering failed", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Disposition", "attachment; filename=attendance_report.pdf")
	w.Header().Set("Content-Type", "application/pdf")
	w.Write(buf.Bytes())
}

func (h *Handler) monthlyRecords(w http.ResponseWriter, r *http.Request) ([]*RecordWithUser, bool) {
	q, err := ParseReportQuery(r.URL.Query().Get("year"), r.URL.Query().Get("month"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}

	records, err := h.Service.MonthlyReport(q)
	if err != nil {
		h.Logger.Error("monthly report failed", "error", err, "year", q.Year, "month", q.Month)
		h.HandleServiceError(w, err)
		return nil, false
	}

	return records, true
}

func toReportRows(records []*RecordWithUser) []report.Row {
	rows := make([]report.Row, len(records))
	for i, rec := range records {
		rows[i] = report.Row{
			Name:      rec.UserName,
			Email:     rec.UserEmail,
			Role:      rec.UserRole,
			Date:      rec.Date,
			Latitude:  rec.Latitude,
			Longitude: rec.Longitude,
			SelfieURL: rec.SelfieURL,
		}
	}
	return rows
}
