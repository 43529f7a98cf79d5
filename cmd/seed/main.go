// Command main runs the demo-data seeder for the Atelier backend.
package main

import (
	"log"

	"atelier/internal/config"
	"atelier/internal/database"
	"atelier/internal/seed"
)

func main() {
	log.Println("Database Seeder")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.DemoData(db); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Println("Done")
}
