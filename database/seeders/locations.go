package seeders

import (
	"fmt"
	"log"

	locationModel "locker-booking/models/location"
	lockerModel "locker-booking/models/locker"

	"gorm.io/gorm"
)

// SeedDemoCatalog inserts a small demo catalog of locations and lockers when
// the tables are empty. Intended for local development only.
func SeedDemoCatalog(db *gorm.DB) {
	log.Printf("🔍 Checking demo catalog data...")

	var locationCount int64
	if err := db.Model(&locationModel.Location{}).Count(&locationCount).Error; err != nil {
		log.Printf("❌ Failed to count locations: %v", err)
		return
	}
	if locationCount > 0 {
		log.Printf("✅ Catalog already populated (%d locations). No seeding needed.", locationCount)
		return
	}

	locations := []locationModel.Location{
		{Name: "Central Station", StreetAddress: "100 Main St", City: "Springfield", State: "IL", Zip: "62701", Description: "Ground floor, next to the ticket hall"},
		{Name: "Airport Terminal B", StreetAddress: "1 Airport Rd", City: "Springfield", State: "IL", Zip: "62707", Description: "Arrivals level, past baggage claim"},
		{Name: "Riverside Mall", StreetAddress: "42 River Ave", City: "Shelbyville", State: "IL", Zip: "62565", Description: "Food court entrance"},
	}

	sizes := []struct {
		size  lockerModel.LockerSize
		price float64
		count int
	}{
		{lockerModel.SizeSmall, 5.00, 4},
		{lockerModel.SizeMedium, 8.50, 3},
		{lockerModel.SizeLarge, 12.00, 2},
		{lockerModel.SizeXLarge, 18.00, 1},
	}

	seeded := 0
	for li := range locations {
		if err := db.Create(&locations[li]).Error; err != nil {
			log.Printf("❌ Failed to seed location %s: %v", locations[li].Name, err)
			continue
		}

		number := 1
		for _, sz := range sizes {
			for i := 0; i < sz.count; i++ {
				unit := lockerModel.Locker{
					LockerNumber: formatLockerNumber(number),
					LocationID:   locations[li].ID,
					Size:         sz.size,
					Status:       lockerModel.StatusAvailable,
					DailyPrice:   sz.price,
				}
				if err := db.Create(&unit).Error; err != nil {
					log.Printf("❌ Failed to seed locker %s at %s: %v", unit.LockerNumber, locations[li].Name, err)
					continue
				}
				number++
				seeded++
			}
		}
	}

	log.Printf("🎉 Seeding completed! Inserted %d locations and %d lockers", len(locations), seeded)
}

func formatLockerNumber(n int) string {
	return fmt.Sprintf("L%03d", n)
}
