package main

import (
	"context"
	"errors"
	"log"
	"math/rand"

	"github.com/Houeta/staff-api/internal/config"
	"github.com/Houeta/staff-api/internal/metrics"
	"github.com/Houeta/staff-api/internal/repository"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/tamathecxder/randomail"
)

const seedCount = 25

var firstNames = []string{"Alice", "Bob", "Carol", "Dmytro", "Eve", "Frank", "Grace", "Henrik", "Iryna", "Jack"}

var lastNames = []string{"Smith", "Johnson", "Kovalenko", "Brown", "Garcia", "Miller", "Shevchenko", "Davis"}

var departments = []string{"Engineering", "Sales", "Marketing", "Support", "Finance"}

// main fills the employees table with sample data for local development.
// Existing emails are skipped, so the seeder can be re-run safely.
func main() {
	cfg := config.MustLoad()

	dbpool, dbErr := repository.NewDatabase(
		cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Dbname)
	if dbErr != nil {
		log.Fatalf("Failed to connect to DB: %v", dbErr)
	}
	defer dbpool.Close()

	repo := repository.NewEmployeeRepository(dbpool, metrics.NewMetrics(prometheus.NewRegistry()))

	ctx := context.Background()
	minAge, ageSpread := 18, 83
	var seeded, skipped int

	for range seedCount {
		name := firstNames[rand.Intn(len(firstNames))] + " " + lastNames[rand.Intn(len(lastNames))]
		email := randomail.GenerateRandomEmail()
		age := minAge + rand.Intn(ageSpread)
		department := departments[rand.Intn(len(departments))]

		employee, err := repo.CreateEmployee(ctx, name, email, age, department)
		if err != nil {
			if errors.Is(err, repository.ErrDuplicateEmail) {
				skipped++
				continue
			}
			log.Fatalf("Failed to seed employee: %v", err)
		}

		seeded++
		log.Printf("seeded employee %d: %s <%s> (%s)", employee.ID, employee.Name, employee.Email, employee.Department)
	}

	log.Printf("✅ Seeding finished: %d created, %d skipped", seeded, skipped)
}
