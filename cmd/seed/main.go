package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/config"
	"github.com/Skotchmaster/storefront/internal/db"
	"github.com/Skotchmaster/storefront/internal/hash"
	"github.com/Skotchmaster/storefront/internal/models"
)

var sampleProducts = []models.Product{
	{
		Name:         "Airpods Wireless Bluetooth Headphones",
		Description:  "Bluetooth technology lets you connect it with compatible devices wirelessly",
		Image:        "/uploads/airpods.jpg",
		Brand:        "Apple",
		Category:     "Electronics",
		Price:        8999,
		CountInStock: 10,
	},
	{
		Name:         "iPhone 13 Pro 256GB Memory",
		Description:  "Introducing the iPhone 13 Pro. A transformative triple-camera system",
		Image:        "/uploads/phone.jpg",
		Brand:        "Apple",
		Category:     "Electronics",
		Price:        59999,
		CountInStock: 7,
	},
	{
		Name:         "Cannon EOS 80D DSLR Camera",
		Description:  "Characterized by versatile imaging specs and a pair of robust focusing systems",
		Image:        "/uploads/camera.jpg",
		Brand:        "Cannon",
		Category:     "Electronics",
		Price:        92999,
		CountInStock: 5,
	},
	{
		Name:         "Sony Playstation 5",
		Description:  "The ultimate home entertainment center starts with PlayStation",
		Image:        "/uploads/playstation.jpg",
		Brand:        "Sony",
		Category:     "Electronics",
		Price:        39999,
		CountInStock: 11,
	},
	{
		Name:         "Logitech G-Series Gaming Mouse",
		Description:  "Get a better handle on your games with this Logitech gaming mouse",
		Image:        "/uploads/mouse.jpg",
		Brand:        "Logitech",
		Category:     "Electronics",
		Price:        4999,
		CountInStock: 7,
	},
	{
		Name:         "Amazon Echo Dot 3rd Generation",
		Description:  "Meet Echo Dot, our most popular smart speaker with a fabric design",
		Image:        "/uploads/alexa.jpg",
		Brand:        "Amazon",
		Category:     "Electronics",
		Price:        2999,
		CountInStock: 0,
	},
}

func destroyData(database *gorm.DB) error {
	for _, m := range []any{&models.OrderItem{}, &models.Order{}, &models.Review{}, &models.Product{}, &models.User{}} {
		if err := database.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
			return err
		}
	}
	return nil
}

func importData(database *gorm.DB) error {
	if err := destroyData(database); err != nil {
		return err
	}

	adminHash, err := hash.HashPassword("admin123")
	if err != nil {
		return err
	}
	admin := models.User{
		Name:         "Admin",
		Email:        "admin@example.com",
		PasswordHash: adminHash,
		IsAdmin:      true,
	}
	if err := database.Create(&admin).Error; err != nil {
		return err
	}

	userHash, err := hash.HashPassword("user123")
	if err != nil {
		return err
	}
	customer := models.User{
		Name:         "John Doe",
		Email:        "john@example.com",
		PasswordHash: userHash,
	}
	if err := database.Create(&customer).Error; err != nil {
		return err
	}

	for _, p := range sampleProducts {
		p.UserID = admin.ID
		p.NumReviews = 1
		p.Rating = 5
		p.Reviews = []models.Review{{
			UserID:    admin.ID,
			Name:      admin.Name,
			Rating:    5,
			Comment:   "Great quality, exactly as described",
			CreatedAt: time.Now().UTC(),
		}}
		if err := database.Create(&p).Error; err != nil {
			return err
		}
	}

	return nil
}

func main() {
	destroy := flag.Bool("d", false, "destroy all data instead of importing")
	flag.Parse()

	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	database, err := db.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := db.Migrate(database); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	if *destroy {
		if err := destroyData(database); err != nil {
			log.Fatalf("destroy: %v", err)
		}
		log.Println("data destroyed")
		return
	}

	if err := importData(database); err != nil {
		log.Fatalf("import: %v", err)
	}
	log.Println("data imported")
}
