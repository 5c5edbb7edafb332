package main

import (
	"fmt"
	"os"

	"locker-booking/database"
	"locker-booking/database/seeders"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage:")
		fmt.Println("  go run tools/migrate.go migrate - Run migrations, constraints and indexes")
		fmt.Println("  go run tools/migrate.go seed    - Run migrations and seed the demo catalog")
		return
	}

	command := os.Args[1]

	switch command {
	case "migrate":
		fmt.Println("🚀 Running database migrations...")
		if _, err := database.InitDB(); err != nil {
			fmt.Printf("❌ Migration failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("✅ Migration completed successfully!")

	case "seed":
		db, err := database.InitDB()
		if err != nil {
			fmt.Printf("❌ Migration failed: %v\n", err)
			os.Exit(1)
		}
		seeders.SeedDemoCatalog(db)

	default:
		fmt.Printf("Unknown command: %s\n", command)
		fmt.Println("Available commands: migrate, seed")
	}
}
