// Command main runs the database seeder for Playreel.
package main

import (
	"flag"
	"log"

	"playreel/internal/config"
	"playreel/internal/database"
	"playreel/internal/seed"
)

func main() {
	numProfiles := flag.Int("profiles", 50, "Number of profiles to create")
	numClips := flag.Int("clips", 200, "Number of clips to create")
	shouldClean := flag.Bool("clean", true, "Clean generated data before seeding")
	sportsOnly := flag.Bool("sports-only", false, "Only upsert the sports catalog")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if *sportsOnly {
		if err := seed.Sports(db); err != nil {
			log.Fatalf("Sports seeding failed: %v", err)
		}
		log.Println("Sports catalog up to date.")
		return
	}

	s := seed.NewSeeder(db)
	err = s.Run(seed.Options{
		NumProfiles: *numProfiles,
		NumClips:    *numClips,
		ShouldClean: *shouldClean,
	})
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
