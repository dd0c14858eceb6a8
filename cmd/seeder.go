package cmd

import (
	"fmt"
	"log"

	userDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/user"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var clearData bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		if clearData {
			if _, err := db.Exec("DELETE FROM attendances"); err != nil {
				log.Fatalf("failed to clear attendances: %v", err)
			}
			if _, err := db.Exec("DELETE FROM users"); err != nil {
				log.Fatalf("failed to clear users: %v", err)
			}
			fmt.Println("Cleared existing data")
		}

		password := "password"
		hash, err := bcrypt.GenerateFromPassword([]byte(password), cfg.Security.BCryptCost)
		if err != nil {
			log.Fatalf("failed to hash seed password: %v", err)
		}

		seedUsers := []struct {
			UserID     string
			Name       string
			Email      string
			Role       string
			Department string
			Salary     string
		}{
			{"EMP001", "Padil Admin", "padil@mail.com", userDatamodel.RoleAdmin, "Human Resources", "12000000"},
			{"EMP002", "Fadhil", "fadhil@mail.com", userDatamodel.RoleEmployee, "Engineering", "8000000"},
			{"EMP003", "Rahma", "rahma@mail.com", userDatamodel.RoleEmployee, "Finance", "8500000"},
		}

		for _, u := range seedUsers {
			var exists int
			if err := db.QueryRow("SELECT 1 FROM users WHERE email = $1", u.Email).Scan(&exists); err == nil {
				fmt.Printf("user %s already exists, skipping\n", u.Email)
				continue
			}

			_, err := db.Exec(`
				INSERT INTO users (user_id, name, email, password_hash, role, department, status, leave_balance, working_days, salary, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), now())`,
				u.UserID, u.Name, u.Email, string(hash), u.Role, u.Department,
				userDatamodel.StatusActive, userDatamodel.DefaultLeaveBalance, userDatamodel.DefaultWorkingDays, u.Salary)
			if err != nil {
				log.Fatalf("failed to insert user %s: %v", u.Email, err)
			}
			fmt.Printf("Seeded %s user: %s\n", u.Role, u.Email)
		}

		fmt.Println("Seed data inserted successfully")
	},
}
