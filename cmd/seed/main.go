package main

import (
	"fmt"
	"os"

	"github.com/platewire/eatery-backend/internal/db"
	"github.com/platewire/eatery-backend/internal/logger"
	"github.com/platewire/eatery-backend/internal/types"
)

// Seeds an empty database with the campus eateries the app launches with.
func main() {
	log, err := logger.New(os.Getenv("LOG_MODE"))
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err := postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}

	eateries := []types.Eatery{
		{Name: "104West!", Location: "104 West Avenue"},
		{Name: "Libe Cafe", Location: "Olin Library"},
		{Name: "Atrium Cafe", Location: "Sage Hall"},
		{Name: "Bear Necessities", Location: "Robert Purcell Community Center"},
		{Name: "Becker House Dining Room", Location: "Carl Becker House"},
		{Name: "Big Red Barn", Location: "Big Red Barn"},
		{Name: "Bus Stop Bagels", Location: "Kennedy Hall"},
		{Name: "Cafe Jennie", Location: "The Cornell Store"},
		{Name: "Cook House Dining Room", Location: "Alice Cook House"},
		{Name: "Dairy Bar", Location: "Stocking Hall"},
		{Name: "Crossing's Cafe", Location: "Toni Morrison Hall"},
		{Name: "Goldie's Cafe", Location: "Physical Sciences Building"},
		{Name: "Green Dragon", Location: "Sibley Hall"},
		{Name: "Bethe House Dining Room", Location: "Hans Bethe House"},
		{Name: "Jansen's Market", Location: "Noyes Community Recreation Center"},
		{Name: "Keeton House Dining Room", Location: "William Keeton House"},
		{Name: "Mann Cafe", Location: "Mann Library"},
		{Name: "Martha's Cafe", Location: "Martha Van Rensselaer Hall"},
		{Name: "Mattin's Cafe", Location: "Duffield Hall"},
		{Name: "Morrison Dining", Location: "Toni Morrison Hall"},
		{Name: "North Star Dining Room", Location: "Appel Commons"},
		{Name: "Novick's Cafe", Location: "Ruth Bader Ginsburg Hall"},
		{Name: "Okenshields", Location: "Willard Straight Hall"},
		{Name: "Risley Dining Room", Location: "Risley Residential College"},
		{Name: "Rose House Dining Room", Location: "Flora Rose House"},
		{Name: "Rusty's", Location: "Uris Hall"},
		{Name: "Straight from the Market", Location: "Willard Straight Hall"},
		{Name: "Trillium", Location: "Kennedy Hall"},
	}

	if err := postgresService.DB().Create(&eateries).Error; err != nil {
		log.Error("Seeding eateries failed", "error", err)
		os.Exit(1)
	}
	log.Info("Database seeded", "eateries", len(eateries))
}
