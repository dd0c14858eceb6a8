package postgres_test

import (
	"errors"
	"testing"
	"time"

	"github.com/frahmantamala/attendance-management/internal/attendance"
	attendancePostgres "github.com/frahmantamala/attendance-management/internal/attendance/postgres"
	attendanceDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/attendance"
	userDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/user"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestAttendancePostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Attendance Postgres Suite")
}

var _ = Describe("Attendance PostgreSQL Repository", func() {
	var (
		db   *gorm.DB
		repo *attendancePostgres.Repository
		day  time.Time
	)

	seedUser := func(name, email string) int64 {
		u := &userDatamodel.User{
			UserID:       "EMP-" + email,
			Name:         name,
			Email:        email,
			PasswordHash: "hash",
			Role:         userDatamodel.RoleEmployee,
			Department:   "Engineering",
			Status:       userDatamodel.StatusActive,
			Salary:       "8000000",
		}
		Expect(db.Create(u).Error).NotTo(HaveOccurred())
		return u.ID
	}

	newRecord := func(userID int64, d time.Time) *attendance.Attendance {
		return &attendance.Attendance{
			UserID:    userID,
			Date:      d,
			Latitude:  -6.2,
			Longitude: 106.8,
			SelfieURL: "https://blobs.example.com/selfies/1_me.jpg",
		}
	}

	BeforeEach(func() {
		var err error
		// Use SQLite in-memory database for testing
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Silent),
			TranslateError: true,
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&userDatamodel.User{}, &attendanceDatamodel.Attendance{})
		Expect(err).NotTo(HaveOccurred())

		repo = attendancePostgres.NewRepository(db)
		day = time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	})

	Describe("Create", func() {
		It("inserts a record and assigns an id", func() {
			userID := seedUser("Budi", "budi@mail.com")

			created, err := repo.Create(newRecord(userID, day))
			Expect(err).NotTo(HaveOccurred())
			Expect(created.ID).To(BeNumerically(">", 0))
		})

		It("returns AlreadyMarkedError with the winning record on a duplicate day", func() {
			userID := seedUser("Budi", "budi@mail.com")

			first, err := repo.Create(newRecord(userID, day))
			Expect(err).NotTo(HaveOccurred())

			_, err = repo.Create(newRecord(userID, day))
			var marked *attendance.AlreadyMarkedError
			Expect(errors.As(err, &marked)).To(BeTrue())
			Expect(marked.Existing.ID).To(Equal(first.ID))
		})

		It("allows the same day for different users", func() {
			budi := seedUser("Budi", "budi@mail.com")
			rahma := seedUser("Rahma", "rahma@mail.com")

			_, err := repo.Create(newRecord(budi, day))
			Expect(err).NotTo(HaveOccurred())

			_, err = repo.Create(newRecord(rahma, day))
			Expect(err).NotTo(HaveOccurred())
		})

		It("allows consecutive days for the same user", func() {
			userID := seedUser("Budi", "budi@mail.com")

			_, err := repo.Create(newRecord(userID, day))
			Expect(err).NotTo(HaveOccurred())

			_, err = repo.Create(newRecord(userID, day.AddDate(0, 0, 1)))
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("GetForUserOnDay", func() {
		It("finds the record for the day", func() {
			userID := seedUser("Budi", "budi@mail.com")
			created, err := repo.Create(newRecord(userID, day))
			Expect(err).NotTo(HaveOccurred())

			found, err := repo.GetForUserOnDay(userID, day)
			Expect(err).NotTo(HaveOccurred())
			Expect(found.ID).To(Equal(created.ID))
		})

		It("returns ErrNotFound when the user has no record that day", func() {
			userID := seedUser("Budi", "budi@mail.com")

			_, err := repo.GetForUserOnDay(userID, day)
			Expect(err).To(MatchError(attendance.ErrNotFound))
		})
	})

	Describe("ListWithUsers", func() {
		It("joins user details onto every record ordered by date", func() {
			budi := seedUser("Budi", "budi@mail.com")
			rahma := seedUser("Rahma", "rahma@mail.com")

			_, err := repo.Create(newRecord(budi, day.AddDate(0, 0, 1)))
			Expect(err).NotTo(HaveOccurred())
			_, err = repo.Create(newRecord(rahma, day))
			Expect(err).NotTo(HaveOccurred())

			rows, err := repo.ListWithUsers()
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(2))
			Expect(rows[0].UserName).To(Equal("Rahma"))
			Expect(rows[0].UserEmail).To(Equal("rahma@mail.com"))
			Expect(rows[1].UserName).To(Equal("Budi"))
		})
	})

	Describe("ListRangeWithUsers", func() {
		It("filters records to the half-open interval", func() {
			userID := seedUser("Budi", "budi@mail.com")

			march := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
			april := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
			_, err := repo.Create(newRecord(userID, march))
			Expect(err).NotTo(HaveOccurred())
			_, err = repo.Create(newRecord(userID, april))
			Expect(err).NotTo(HaveOccurred())

			start, end := attendance.MonthRange(2025, 3)
			rows, err := repo.ListRangeWithUsers(start, end)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].Date.Day()).To(Equal(31))
		})
	})
})
