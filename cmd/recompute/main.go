// Command recompute runs the batch benefit evaluation over every student,
// assigning benefits for approved results that never went through the
// ingestion path or were imported before the policy was in place.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"scorebridge/internal/config"
	"scorebridge/internal/database"
	"scorebridge/internal/models"
	"scorebridge/internal/repository"
	"scorebridge/internal/service"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "report qualifying students without creating benefits")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to load .env file: %v", err)
	}

	cfg := config.Load()

	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	studentRepo := repository.NewStudentRepository(db)
	resultRepo := repository.NewResultRepository(db)
	benefitRepo := repository.NewBenefitRepository(db)

	if *dryRun {
		count, err := countQualifying(studentRepo, resultRepo, benefitRepo)
		if err != nil {
			log.Fatalf("Dry run failed: %v", err)
		}
		log.Printf("Dry run: %d students would receive a benefit", count)
		return
	}

	benefitService := service.NewBenefitService(benefitRepo, resultRepo, studentRepo)

	created, err := benefitService.RecomputeAll()
	if err != nil {
		log.Fatalf("Recompute failed: %v", err)
	}
	log.Printf("Recompute completed: %d benefits created", created)
}

// countQualifying walks students the same way RecomputeAll does, but only counts
func countQualifying(students *repository.StudentRepository, results *repository.ResultRepository, benefits *repository.BenefitRepository) (int, error) {
	all, err := students.List()
	if err != nil {
		return 0, err
	}

	count := 0
	for _, student := range all {
		hasActive, err := benefits.HasActive(student.Document)
		if err != nil {
			return 0, err
		}
		if hasActive {
			continue
		}

		studentResults, err := results.ListByStudent(student.Document)
		if err != nil {
			return 0, err
		}
		for _, r := range studentResults {
			if r.Status != models.StatusApproved || r.GlobalScore == nil {
				continue
			}
			if _, ok := service.LookupBand(r.Track, *r.GlobalScore); ok {
				count++
			}
			break
		}
	}
	return count, nil
}
