package main

import (
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/4shenafi/alx-travel-app-0x02/internal/modules/listings"
	"github.com/4shenafi/alx-travel-app-0x02/internal/modules/users"
)

// Seeds a sample owner account and a handful of listings for local
// development.
func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN environment variable is required")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	var owner users.User
	err = db.First(&owner, "email = ?", "owner@alxtravel.local").Error
	if err == gorm.ErrRecordNotFound {
		hashed, herr := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
		if herr != nil {
			log.Fatalf("Failed to hash password: %v", herr)
		}
		owner = users.User{
			ID:           uuid.NewString(),
			Email:        "owner@alxtravel.local",
			PasswordHash: string(hashed),
			FirstName:    "Sample",
			LastName:     "Owner",
			CreatedAt:    time.Now(),
		}
		if err := db.Create(&owner).Error; err != nil {
			log.Fatalf("Failed to create owner: %v", err)
		}
	} else if err != nil {
		log.Fatalf("Failed to look up owner: %v", err)
	}

	samples := []listings.Listing{
		{
			Title:         "Cozy Cottage",
			Description:   "A cozy cottage in the countryside.",
			Location:      "Countryside",
			PricePerNight: 12000,
		},
		{
			Title:         "Beach House",
			Description:   "Enjoy the sea breeze in this beach house.",
			Location:      "Beachside",
			PricePerNight: 20000,
		},
		{
			Title:         "City Apartment",
			Description:   "Modern apartment in the city center.",
			Location:      "City Center",
			PricePerNight: 15000,
		},
	}

	for _, l := range samples {
		var existing listings.Listing
		err := db.First(&existing, "title = ? AND owner_id = ?", l.Title, owner.ID).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			log.Fatalf("Failed to check listing %q: %v", l.Title, err)
		}

		l.ID = uuid.NewString()
		l.Currency = "ETB"
		l.OwnerID = owner.ID
		l.CreatedAt = time.Now()
		if err := db.Create(&l).Error; err != nil {
			log.Fatalf("Failed to seed listing %q: %v", l.Title, err)
		}
	}

	log.Println("Sample listings seeded successfully")
}
