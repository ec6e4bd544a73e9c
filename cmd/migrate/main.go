package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"ms-booths/internal/models"
)

func main() {
	drop := flag.Bool("drop", false, "drop existing tables first")
	seed := flag.Bool("seed", false, "insert sample categories, enterprises and booths")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found, using environment variables")
	}

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		log.Fatal("POSTGRES_DSN not set")
	}

	sqldb, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("Failed to open PostgreSQL: %v", err)
	}
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	ctx := context.Background()

	if *drop {
		if err := dropTables(ctx, db); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("Dropped existing tables")
	}

	if err := createTables(ctx, db); err != nil {
		log.Fatalf("Failed to create tables: %v", err)
	}
	log.Println("Tables created")

	if *seed {
		if err := seedData(ctx, db); err != nil {
			log.Fatalf("Failed to seed data: %v", err)
		}
		log.Println("Seed data inserted")
	}
}

func dropTables(ctx context.Context, db *bun.DB) error {
	for _, model := range []interface{}{
		(*models.Booth)(nil),
		(*models.Category)(nil),
		(*models.Enterprise)(nil),
	} {
		if _, err := db.NewDropTable().Model(model).IfExists().Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

func createTables(ctx context.Context, db *bun.DB) error {
	for _, model := range []interface{}{
		(*models.Enterprise)(nil),
		(*models.Category)(nil),
		(*models.Booth)(nil),
	} {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

func seedData(ctx context.Context, db *bun.DB) error {
	categories := []models.Category{
		{
			Name:               "Standard",
			Description:        "Standard booth with basic amenities",
			Dimensions:         models.Dimensions{Width: 3, Height: 3},
			PriceWithoutAddons: 1000,
			Addons: []models.Addon{
				{Name: "Extra Table", Description: "Additional display table", Price: 50},
				{Name: "Extra Chair", Description: "Additional seating", Price: 25},
			},
		},
		{
			Name:               "Premium",
			Description:        "Premium booth with enhanced features",
			Dimensions:         models.Dimensions{Width: 4, Height: 4},
			PriceWithoutAddons: 2000,
			Addons: []models.Addon{
				{Name: "LED Display", Description: "Digital display screen", Price: 200},
				{Name: "Premium Lighting", Description: "Enhanced lighting setup", Price: 150},
			},
		},
		{
			Name:               "Deluxe",
			Description:        "Deluxe booth with all amenities",
			Dimensions:         models.Dimensions{Width: 5, Height: 5},
			PriceWithoutAddons: 3500,
			Addons: []models.Addon{
				{Name: "Conference Room", Description: "Private meeting space", Price: 500},
				{Name: "Catering Service", Description: "Food and beverage service", Price: 300},
			},
		},
		{
			Name:               "Corner",
			Description:        "Corner booth with double exposure",
			Dimensions:         models.Dimensions{Width: 4, Height: 4},
			PriceWithoutAddons: 2500,
			Addons: []models.Addon{
				{Name: "Double Signage", Description: "Two-sided signage", Price: 100},
				{Name: "Extra Storage", Description: "Additional storage space", Price: 75},
			},
		},
	}

	var seeded []models.Category
	for _, category := range categories {
		existing := new(models.Category)
		err := db.NewSelect().Model(existing).Where("name = ?", category.Name).Limit(1).Scan(ctx)
		if err == nil {
			seeded = append(seeded, *existing)
			log.Printf("Category already exists: %s", existing.Name)
			continue
		}
		if err != sql.ErrNoRows {
			return err
		}

		category.ID = uuid.NewString()
		category.CreatedAt = time.Now()
		if _, err := db.NewInsert().Model(&category).Exec(ctx); err != nil {
			return err
		}
		seeded = append(seeded, category)
		log.Printf("Created category: %s", category.Name)
	}

	enterprises := []models.Enterprise{
		{ID: "ent-acme", CompanyName: "Acme Exhibitions", Email: "events@acme.example"},
		{ID: "ent-globex", CompanyName: "Globex Corporation", Email: "expo@globex.example"},
		{ID: "ent-initech", CompanyName: "Initech Solutions", Email: "booth@initech.example"},
	}
	for _, enterprise := range enterprises {
		_, err := db.NewInsert().Model(&enterprise).On("CONFLICT (id) DO NOTHING").Exec(ctx)
		if err != nil {
			return err
		}
	}

	boothNames := []string{
		"Innovation Hub", "Tech Central", "Future Zone", "Digital Plaza", "Smart Space",
		"Creative Corner", "Business Bay", "Enterprise Center", "Startup Station", "Growth Gallery",
		"Success Spot", "Visionary Venue", "Pioneer Place", "Leader's Lodge", "Expert Exchange",
		"Professional Point", "Executive Edge", "Premier Position", "Elite Exhibit", "Superior Stand",
	}

	for i, name := range boothNames {
		number := i + 1
		exists, err := db.NewSelect().Model((*models.Booth)(nil)).Where("number = ?", number).Exists(ctx)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		category := seeded[i%len(seeded)]
		now := time.Now()
		booth := models.Booth{
			ID:                 uuid.NewString(),
			Name:               name,
			Description:        fmt.Sprintf("%s exhibition booth, %s tier", name, category.Name),
			Number:             number,
			Dimensions:         category.Dimensions,
			PriceWithoutAddons: category.PriceWithoutAddons,
			FinalPrice:         category.PriceWithoutAddons,
			Status:             models.StatusPending,
			Addons:             category.Addons,
			CategoryID:         &category.ID,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		if _, err := db.NewInsert().Model(&booth).Exec(ctx); err != nil {
			return err
		}
		log.Printf("Created booth #%d: %s", number, name)
	}

	return nil
}
