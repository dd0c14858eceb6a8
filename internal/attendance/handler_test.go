package attendance_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/frahmantamala/attendance-management/internal/attendance"
	"github.com/frahmantamala/attendance-management/internal/auth"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func multipartMarkRequest(lat, lon string, withSelfie bool) *http.Request {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if lat != "" {
		Expect(w.WriteField("latitude", lat)).To(Succeed())
	}
	if lon != "" {
		Expect(w.WriteField("longitude", lon)).To(Succeed())
	}
	if withSelfie {
		part, err := w.CreateFormFile("selfie", "me.jpg")
		Expect(err).NotTo(HaveOccurred())
		_, err = part.Write([]byte("fake-jpeg-bytes"))
		Expect(err).NotTo(HaveOccurred())
	}
	Expect(w.Close()).To(Succeed())

	req := httptest.NewRequest(http.MethodPost, "/api/attendance/mark", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func asUser(req *http.Request, id int64) *http.Request {
	ctx := auth.ContextWithUser(req.Context(), &auth.User{ID: id, Role: "employee"})
	return req.WithContext(ctx)
}

var _ = Describe("Attendance Handler", func() {
	var (
		mockRepo *MockRepository
		blobs    *MockBlobStore
		handler  *attendance.Handler
	)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		blobs = &MockBlobStore{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service := attendance.NewService(mockRepo, blobs, nil, logger)
		handler = attendance.NewHandler(service)
	})

	Describe("POST /api/attendance/mark", func() {
		It("returns 201 with the stored record", func() {
			rec := httptest.NewRecorder()
			handler.Mark(rec, asUser(multipartMarkRequest("-6.2", "106.8", true), 1))

			Expect(rec.Code).To(Equal(http.StatusCreated))
			var body map[string]interface{}
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			Expect(body["message"]).To(Equal("Attendance marked successfully"))

			record := body["attendance"].(map[string]interface{})
			Expect(record["userId"]).To(BeNumerically("==", 1))
			Expect(record["selfie"]).To(HavePrefix("https://blobs.example.com/selfies/"))
		})

		It("returns 400 with the existing record on a repeat check-in", func() {
			rec := httptest.NewRecorder()
			handler.Mark(rec, asUser(multipartMarkRequest("-6.2", "106.8", true), 1))
			Expect(rec.Code).To(Equal(http.StatusCreated))

			rec = httptest.NewRecorder()
			handler.Mark(rec, asUser(multipartMarkRequest("-6.2", "106.8", true), 1))

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			var body map[string]interface{}
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			Expect(body["message"]).To(Equal("Attendance already marked for today"))
			Expect(body["attendance"]).NotTo(BeNil())
		})

		It("returns 400 when coordinates are missing", func() {
			rec := httptest.NewRecorder()
			handler.Mark(rec, asUser(multipartMarkRequest("", "106.8", true), 1))

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 400 when the selfie part is missing", func() {
			rec := httptest.NewRecorder()
			handler.Mark(rec, asUser(multipartMarkRequest("-6.2", "106.8", false), 1))

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			var body map[string]interface{}
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			Expect(body["message"]).To(Equal("selfie file is required"))
		})

		It("returns 401 without an authenticated user", func() {
			rec := httptest.NewRecorder()
			handler.Mark(rec, multipartMarkRequest("-6.2", "106.8", true))

			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		})
	})

	Describe("GET /api/attendance/report", func() {
		It("returns 400 for a missing year", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/attendance/report?month=3", nil)
			rec := httptest.NewRecorder()
			handler.Report(rec, req)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns the month's records as JSON", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/attendance/report?year=2025&month=3", nil)
			rec := httptest.NewRecorder()
			handler.Report(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
		})
	})

	Describe("report exports", func() {
		It("serves the XLSX attachment", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/attendance/report/export?year=2025&month=3", nil)
			rec := httptest.NewRecorder()
			handler.ExportXLSX(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Header().Get("Content-Type")).To(Equal("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"))
			Expect(rec.Header().Get("Content-Disposition")).To(ContainSubstring("attendance_report.xlsx"))
			Expect(rec.Body.Len()).To(BeNumerically(">", 0))
		})

		It("serves the PDF attachment", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/attendance/report/export/pdf?year=2025&month=3", nil)
			rec := httptest.NewRecorder()
			handler.ExportPDF(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Header().Get("Content-Type")).To(Equal("application/pdf"))
			Expect(rec.Body.Bytes()[:5]).To(Equal([]byte("%PDF-")))
		})
	})
})
