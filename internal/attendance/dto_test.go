package attendance_test

import (
	"github.com/frahmantamala/attendance-management/internal/attendance"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ParseLocation", func() {
	It("parses valid coordinates", func() {
		dto, err := attendance.ParseLocation("-6.2", "106.816666")
		Expect(err).NotTo(HaveOccurred())
		Expect(dto.Latitude).To(Equal(-6.2))
		Expect(dto.Longitude).To(Equal(106.816666))
	})

	It("requires both values", func() {
		_, err := attendance.ParseLocation("", "106.8")
		Expect(err).To(MatchError(attendance.ValidationError{Msg: "latitude and longitude are required"}))

		_, err = attendance.ParseLocation("-6.2", "")
		Expect(err).To(HaveOccurred())
	})

	It("rejects non-numeric input", func() {
		_, err := attendance.ParseLocation("north", "106.8")
		Expect(err).To(HaveOccurred())

		_, err = attendance.ParseLocation("-6.2", "east")
		Expect(err).To(HaveOccurred())
	})

	It("rejects out-of-range coordinates", func() {
		_, err := attendance.ParseLocation("91", "0")
		Expect(err).To(HaveOccurred())

		_, err = attendance.ParseLocation("0", "-181")
		Expect(err).To(HaveOccurred())
	})

	It("accepts the boundary values", func() {
		_, err := attendance.ParseLocation("90", "180")
		Expect(err).NotTo(HaveOccurred())

		_, err = attendance.ParseLocation("-90", "-180")
		Expect(err).NotTo(HaveOccurred())
	})
})

var _ = Describe("ParseReportQuery", func() {
	It("parses a valid year and month", func() {
		q, err := attendance.ParseReportQuery("2025", "3")
		Expect(err).NotTo(HaveOccurred())
		Expect(q.Year).To(Equal(2025))
		Expect(q.Month).To(Equal(3))
	})

	It("requires both parameters", func() {
		_, err := attendance.ParseReportQuery("", "3")
		Expect(err).To(HaveOccurred())

		_, err = attendance.ParseReportQuery("2025", "")
		Expect(err).To(HaveOccurred())
	})

	It("rejects month 0 and month 13", func() {
		_, err := attendance.ParseReportQuery("2025", "0")
		Expect(err).To(HaveOccurred())

		_, err = attendance.ParseReportQuery("2025", "13")
		Expect(err).To(HaveOccurred())
	})

	It("rejects non-numeric values", func() {
		_, err := attendance.ParseReportQuery("march", "3")
		Expect(err).To(HaveOccurred())

		_, err = attendance.ParseReportQuery("2025", "march")
		Expect(err).To(HaveOccurred())
	})
})
