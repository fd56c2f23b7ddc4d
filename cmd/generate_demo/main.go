// Command generate_demo creates a demo database with a sample catalog, so a
// demo-mode deployment has something to browse without vendor credentials.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db]
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/svaldez/catalog-admin/internal/auth"
	"github.com/svaldez/catalog-admin/internal/config"
	"github.com/svaldez/catalog-admin/internal/database"
	"github.com/svaldez/catalog-admin/internal/database/banners"
	"github.com/svaldez/catalog-admin/internal/database/brands"
	"github.com/svaldez/catalog-admin/internal/database/categories"
	"github.com/svaldez/catalog-admin/internal/database/colors"
	"github.com/svaldez/catalog-admin/internal/database/orders"
	"github.com/svaldez/catalog-admin/internal/database/products"
	"github.com/svaldez/catalog-admin/internal/entities"
)

const defaultDemoDatabasePath = "./demo.db"

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	log.Printf("Generating demo database at %s...", *dbPath)

	// Delete existing demo database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}

	db, err := database.NewDatabase(config.Database{Driver: "sqlite", Path: *dbPath})
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	brandsByName := createBrands(db)
	categoriesByName := createCategories(db)
	colorsByName := createColors(db)
	createProducts(db, brandsByName, categoriesByName, colorsByName)
	createBanners(db)
	createOrders(db)
	createAdminUser(db)

	log.Println("Demo database generated successfully!")
}

func createBrands(db *database.Database) map[string]entities.Brand {
	repo := brands.NewRepository(db.DB)

	demoBrands := []entities.Brand{
		{ExternalID: 101, Name: "Aurora Living", Image: "/uploads/brands/aurora.png"},
		{ExternalID: 102, Name: "Nordhaus"},
		{ExternalID: 103, Name: "Casa Lumen", Image: "/uploads/brands/casa-lumen.png"},
		{ExternalID: 104, Name: "Verde Hogar"},
	}

	byName := make(map[string]entities.Brand)
	for i := range demoBrands {
		if err := repo.Create(&demoBrands[i]); err != nil {
			log.Fatalf("Failed to create brand %s: %v", demoBrands[i].Name, err)
		}
		byName[demoBrands[i].Name] = demoBrands[i]
	}
	return byName
}

func createCategories(db *database.Database) map[string]entities.Category {
	repo := categories.NewRepository(db.DB)

	demoCategories := []entities.Category{
		{Name: "Lighting", Slug: "lighting", Description: "Lamps and fixtures for every room"},
		{Name: "Furniture", Slug: "furniture", Description: "Tables, chairs and storage"},
		{Name: "Textiles", Slug: "textiles", Description: "Rugs, cushions and throws"},
	}

	byName := make(map[string]entities.Category)
	for i := range demoCategories {
		if err := repo.Create(&demoCategories[i]); err != nil {
			log.Fatalf("Failed to create category %s: %v", demoCategories[i].Name, err)
		}
		byName[demoCategories[i].Name] = demoCategories[i]
	}
	return byName
}

func createColors(db *database.Database) map[string]entities.Color {
	repo := colors.NewRepository(db.DB)

	demoColors := []entities.Color{
		{Name: "Charcoal", HexCode: "#36454F"},
		{Name: "Sand", HexCode: "#C2B280"},
		{Name: "Forest", HexCode: "#228B22"},
		{Name: "Terracotta", HexCode: "#E2725B"},
	}

	byName := make(map[string]entities.Color)
	for i := range demoColors {
		if err := repo.Create(&demoColors[i]); err != nil {
			log.Fatalf("Failed to create color %s: %v", demoColors[i].Name, err)
		}
		byName[demoColors[i].Name] = demoColors[i]
	}
	return byName
}

// productConfig holds a product plus its association names for deferred lookup.
type productConfig struct {
	product    entities.Product
	brand      string
	categories []string
	colors     []string
	images     []string
}

func createProducts(
	db *database.Database,
	brandsByName map[string]entities.Brand,
	categoriesByName map[string]entities.Category,
	colorsByName map[string]entities.Color,
) {
	repo := products.NewRepository(db.DB)

	configs := []productConfig{
		{
			brand:      "Aurora Living",
			categories: []string{"Lighting"},
			colors:     []string{"Charcoal", "Sand"},
			images:     []string{"/uploads/1/arc-floor-lamp.jpg", "/uploads/1/arc-floor-lamp-detail.jpg"},
			product: entities.Product{
				ExternalID:       2001,
				Name:             "Arc Floor Lamp",
				PriceList1:       149.90,
				PriceList2:       129.90,
				VATPercent:       21,
				Quantity:         12,
				ShortDescription: "Curved steel floor lamp with a linen shade.",
				LongDescription:  "A floor lamp with a sweeping steel arc and a weighted marble base. The linen drum shade throws a warm, even light that suits reading corners and sofas alike.",
				Slug:             "arc-floor-lamp",
				Featured:         true,
			},
		},
		{
			brand:      "Nordhaus",
			categories: []string{"Furniture"},
			colors:     []string{"Sand"},
			images:     []string{"/uploads/2/oak-side-table.jpg"},
			product: entities.Product{
				ExternalID:       2002,
				Name:             "Oak Side Table",
				PriceList1:       89.00,
				PriceList2:       79.00,
				VATPercent:       21,
				Quantity:         30,
				ShortDescription: "Solid oak side table, 45 cm.",
				LongDescription:  "A compact side table in solid white oak with a soaped finish. Assembles without tools and seats flush against sofa arms.",
				Slug:             "oak-side-table",
			},
		},
		{
			brand:      "Casa Lumen",
			categories: []string{"Lighting"},
			colors:     []string{"Terracotta"},
			product: entities.Product{
				// Curation still pending: no descriptions or images yet
				ExternalID: 2003,
				Name:       "Ceramic Table Lamp",
				PriceList1: 64.50,
				PriceList2: 59.00,
				VATPercent: 21,
				Quantity:   8,
			},
		},
		{
			brand:      "Verde Hogar",
			categories: []string{"Textiles"},
			colors:     []string{"Forest", "Sand"},
			images:     []string{"/uploads/4/wool-throw.jpg"},
			product: entities.Product{
				ExternalID:       2004,
				Name:             "Wool Throw Blanket",
				PriceList1:       54.00,
				PriceList2:       48.00,
				VATPercent:       10,
				Quantity:         45,
				ShortDescription: "Herringbone wool throw, 130x180 cm.",
				LongDescription:  "A lambswool throw in a classic herringbone weave with fringed edges. Machine washable on the wool cycle.",
				Slug:             "wool-throw-blanket",
				Featured:         true,
			},
		},
	}

	for _, cfg := range configs {
		if brand, ok := brandsByName[cfg.brand]; ok {
			cfg.product.BrandID = &brand.ID
		}
		if err := repo.Create(&cfg.product); err != nil {
			log.Fatalf("Failed to create product %s: %v", cfg.product.Name, err)
		}

		var cats []entities.Category
		for _, name := range cfg.categories {
			cats = append(cats, categoriesByName[name])
		}
		if err := repo.SetCategories(&cfg.product, cats); err != nil {
			log.Fatalf("Failed to set categories on %s: %v", cfg.product.Name, err)
		}

		var cols []entities.Color
		for _, name := range cfg.colors {
			cols = append(cols, colorsByName[name])
		}
		if err := repo.SetColors(&cfg.product, cols); err != nil {
			log.Fatalf("Failed to set colors on %s: %v", cfg.product.Name, err)
		}

		for _, path := range cfg.images {
			if _, err := repo.AddImage(cfg.product.ID, path); err != nil {
				log.Fatalf("Failed to add image to %s: %v", cfg.product.Name, err)
			}
		}

		log.Printf("Saved: %s (%d categories, %d colors, %d images)",
			cfg.product.Name, len(cfg.categories), len(cfg.colors), len(cfg.images))
	}
}

func createBanners(db *database.Database) {
	repo := banners.NewRepository(db.DB)

	demoBanners := []entities.Banner{
		{Title: "Autumn Collection", ImageURL: "/uploads/banners/autumn.jpg", IsActive: true},
		{Title: "Lighting Sale", ImageURL: "/uploads/banners/lighting-sale.jpg", IsActive: false},
	}

	for i := range demoBanners {
		if err := repo.Create(&demoBanners[i]); err != nil {
			log.Fatalf("Failed to create banner %s: %v", demoBanners[i].Title, err)
		}
	}
}

func createOrders(db *database.Database) {
	repo := orders.NewRepository(db.DB)

	now := time.Now()
	demoOrders := []entities.Order{
		{CustomerName: "Maria Lopez", CustomerEmail: "maria@example.com", Total: 238.90, Status: entities.OrderStatusShipped, OrderedAt: now.AddDate(0, 0, -9)},
		{CustomerName: "Jonas Berg", CustomerEmail: "jonas@example.com", Total: 89.00, Status: entities.OrderStatusPaid, OrderedAt: now.AddDate(0, 0, -3)},
		{CustomerName: "Elena Ricci", CustomerEmail: "elena@example.com", Total: 54.00, Status: entities.OrderStatusPending, OrderedAt: now.AddDate(0, 0, -1)},
	}

	for i := range demoOrders {
		if err := repo.Create(&demoOrders[i]); err != nil {
			log.Fatalf("Failed to create order for %s: %v", demoOrders[i].CustomerName, err)
		}
	}
}

func createAdminUser(db *database.Database) {
	service := auth.NewService(db.DB, config.Auth{Mode: config.AuthModeLocal, BcryptCost: 12})

	user, err := service.CreateUser("demo", "demo@example.com", "demo-password", true)
	if err != nil {
		log.Fatalf("Failed to create demo user: %v", err)
	}
	log.Printf("Created admin user %q (id %d), password \"demo-password\"", user.Username, user.ID)
}
