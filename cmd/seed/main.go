package main

import (
	"log"
	"os"
	"time"

	"staybook/internal/database"
	"staybook/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "staybook.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM payments")
	db.Exec("DELETE FROM reviews")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM listings")
	db.Exec("DELETE FROM users")

	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{Email: "admin@staybook.dev", PasswordHash: string(adminHash), Role: domain.RoleAdmin, Name: "Admin"}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatal(err)
	}

	hostHash, _ := bcrypt.GenerateFromPassword([]byte("host1234"), bcrypt.DefaultCost)
	host := domain.User{Email: "host@staybook.dev", PasswordHash: string(hostHash), Role: domain.RoleHost, Name: "Hana Host"}
	if err := db.Create(&host).Error; err != nil {
		log.Fatal(err)
	}

	guestHash, _ := bcrypt.GenerateFromPassword([]byte("guest1234"), bcrypt.DefaultCost)
	guest := domain.User{Email: "guest@staybook.dev", PasswordHash: string(guestHash), Role: domain.RoleGuest, Name: "Gideon Guest"}
	if err := db.Create(&guest).Error; err != nil {
		log.Fatal(err)
	}

	log.Println("Creating listings...")

	listings := []domain.Listing{
		{HostID: host.ID, Name: "Lakeside Cabin", Description: "Quiet cabin with a private dock", Location: "Bahir Dar", PricePerNight: 100},
		{HostID: host.ID, Name: "City Loft", Description: "Walkable to everything", Location: "Addis Ababa", PricePerNight: 75},
		{HostID: host.ID, Name: "Mountain View Cottage", Location: "Lalibela", PricePerNight: 120},
	}
	for i := range listings {
		if err := db.Create(&listings[i]).Error; err != nil {
			log.Fatal(err)
		}
	}

	log.Println("Creating bookings...")

	start := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	b := domain.Booking{
		ListingID:  listings[0].ID,
		UserID:     guest.ID,
		StartDate:  start,
		EndDate:    start.AddDate(0, 0, 3),
		TotalPrice: 300,
		Status:     domain.BookingConfirmed,
	}
	if err := db.Create(&b).Error; err != nil {
		log.Fatal(err)
	}

	rv := domain.Review{ListingID: listings[0].ID, UserID: guest.ID, Rating: 5, Comment: "Would stay again."}
	if err := db.Create(&rv).Error; err != nil {
		log.Fatal(err)
	}

	log.Println("Seed complete.")
	log.Printf("admin=%s host=%s guest=%s", admin.Email, host.Email, guest.Email)
}
