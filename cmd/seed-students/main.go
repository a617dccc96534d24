package main

import (
	"fmt"
	"math/rand"

	"github.com/schoolhq/registrar/internal/catalog"
	"github.com/schoolhq/registrar/internal/config"
	"github.com/schoolhq/registrar/internal/logger"
	"github.com/schoolhq/registrar/internal/model"
	"github.com/schoolhq/registrar/internal/service"
	"github.com/schoolhq/registrar/internal/store"
	"github.com/schoolhq/registrar/internal/validator"
)

var seedNames = []string{
	"Ann Carter", "Bilal Ahmed", "Clara Osei", "Daniel Reyes", "Elif Demir",
	"Farah Khan", "Gustav Lind", "Hana Sato", "Ivan Petrov", "Jade Nguyen",
}

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)
	validator.Setup()

	if err := store.EnsureDataFiles(cfg); err != nil {
		log.Fatal().Err(err).Msg("Failed to prepare data directory")
	}

	st, err := store.Load(cfg.StudentsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load students file")
	}
	ledger, err := store.LoadLedger(cfg.BalanceFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load balance file")
	}
	courses, err := catalog.Load(cfg.CoursesFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load course catalog")
	}

	svc := service.NewRegistryService(st, ledger, log)

	fmt.Printf("=== Seeding %d Students ===\n", len(seedNames))

	for i, name := range seedNames {
		picked := pickCourses(courses)
		req := model.AddStudentRequest{
			Name:    name,
			Class:   fmt.Sprintf("%d", 7+i%5),
			RollNo:  fmt.Sprintf("%05d", 10000+i),
			Courses: picked,
		}

		id, err := svc.AddStudent(req)
		if err != nil {
			log.Fatal().Err(err).Str("name", name).Msg("Failed to seed student")
		}
		fmt.Printf("Added %s (id %s) with %d courses\n", name, id, len(picked))
	}

	fmt.Printf("Done. Store now holds %d students.\n", svc.Count())
}

// pickCourses takes a random non-empty sample of the catalog.
func pickCourses(courses []string) []string {
	if len(courses) == 0 {
		return nil
	}
	n := 1 + rand.Intn(len(courses))
	shuffled := make([]string, len(courses))
	copy(shuffled, courses)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:n]
}
