package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mauv0809/courtside/internal/availability"
	"github.com/mauv0809/courtside/internal/changefeed"
	"github.com/mauv0809/courtside/internal/database"
	"github.com/mauv0809/courtside/internal/fines"
)

var names = []string{"Anna", "Bo", "Cy", "Di", "Eve", "Finn", "Gry", "Hans", "Ida", "Jens", "Kim", "Lea"}

var catalog = []fines.Fine{
	{Name: "Late arrival", Description: "Shows up after warm-up", Price: 20},
	{Name: "Forgot shuttles", Description: "Turn without a tube", Price: 30},
	{Name: "Net touch", Description: "Per touch", Price: 5, Multiply: true},
}

func main() {
	days := flag.Int("days", 7, "Number of days to seed from today")
	players := flag.Int("players", 9, "Number of players per day")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}
	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "courtside.db"
	}

	db, teardown, err := database.InitDB(dbName, os.Getenv("TURSO_PRIMARY_URL"), os.Getenv("TURSO_AUTH_TOKEN"))
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	ctx := context.Background()
	avail := availability.New(db, changefeed.New())
	fineStore := fines.New(db)

	n, err := seedAvailability(ctx, avail, rand.New(rand.NewSource(time.Now().UnixNano())), time.Now(), *days, *players)
	if err != nil {
		log.Fatalf("Failed to seed availability: %s", err)
	}
	log.Info("Seeded availability", "rows", n)

	for _, f := range catalog {
		if _, err := fineStore.CreateFine(ctx, f); err != nil {
			log.Warn("Skipping fine", "name", f.Name, "error", err)
		}
	}
	log.Info("Seeding finished")
}

// seedAvailability adds one evening window per player and day.
func seedAvailability(ctx context.Context, store availability.Store, rng *rand.Rand, from time.Time, days, players int) (int, error) {
	if players > len(names) {
		players = len(names)
	}
	count := 0
	for d := 0; d < days; d++ {
		date := from.AddDate(0, 0, d).Format("2006-01-02")
		for i := 0; i < players; i++ {
			start := 16 + rng.Intn(3)
			end := start + 1 + rng.Intn(3)
			row := availability.Row{
				UID:       fmt.Sprintf("seed-%d", i+1),
				Name:      names[i],
				Date:      date,
				StartTime: fmt.Sprintf("%02d:00", start),
				EndTime:   fmt.Sprintf("%02d:00", end),
			}
			if _, err := store.Add(ctx, row); err != nil {
				return count, err
			}
			count++
		}
	}
	return count, nil
}
