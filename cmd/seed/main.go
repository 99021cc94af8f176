package main

import (
	"errors"
	"os"

	"github.com/vastra-shop/internal/config"
	"github.com/vastra-shop/internal/logger"
	"github.com/vastra-shop/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type seedProduct struct {
	Category    string
	Name        string
	Description string
	Price       string
	Images      []string
	Stock       int
	SortOrder   int
}

var seedCategories = []models.Category{
	{Slug: "saree", Name: "Saree", Image: "https://images.unsplash.com/photo-1610030469983-98e550d6193c?w=800", SortOrder: 100},
	{Slug: "kurti", Name: "Kurti", Image: "https://images.unsplash.com/photo-1583391733956-6c78276477e2?w=800", SortOrder: 90},
	{Slug: "lehenga", Name: "Lehenga", Image: "https://images.unsplash.com/photo-1617627143750-d86bc21e42bb?w=800", SortOrder: 80},
	{Slug: "dupatta", Name: "Dupatta", Image: "https://images.unsplash.com/photo-1602810318383-e386cc2a3ccf?w=800", SortOrder: 70},
}

var seedProducts = []seedProduct{
	{
		Category:    "saree",
		Name:        "Banarasi Silk Saree",
		Description: "Handwoven silk with zari border, blouse piece included.",
		Price:       "4999.00",
		Images:      []string{"https://images.unsplash.com/photo-1610030469983-98e550d6193c?w=800"},
		Stock:       12,
		SortOrder:   100,
	},
	{
		Category:    "saree",
		Name:        "Chanderi Cotton Saree",
		Description: "Lightweight chanderi cotton for daily wear.",
		Price:       "1899.00",
		Images:      []string{"https://images.unsplash.com/photo-1594463750939-ebb28c3f7f75?w=800"},
		Stock:       25,
		SortOrder:   90,
	},
	{
		Category:    "kurti",
		Name:        "Block Print Cotton Kurti",
		Description: "Jaipuri block print, straight cut, three-quarter sleeves.",
		Price:       "799.00",
		Images:      []string{"https://images.unsplash.com/photo-1583391733956-6c78276477e2?w=800"},
		Stock:       40,
		SortOrder:   100,
	},
	{
		Category:    "kurti",
		Name:        "Chikankari Anarkali Kurti",
		Description: "Lucknowi chikankari on georgette with inner lining.",
		Price:       "1499.00",
		Images:      []string{"https://images.unsplash.com/photo-1595341595379-cf1cd3b3a4bd?w=800"},
		Stock:       18,
		SortOrder:   90,
	},
	{
		Category:    "lehenga",
		Name:        "Bridal Velvet Lehenga",
		Description: "Embroidered velvet lehenga with net dupatta.",
		Price:       "18999.00",
		Images:      []string{"https://images.unsplash.com/photo-1617627143750-d86bc21e42bb?w=800"},
		Stock:       4,
		SortOrder:   100,
	},
	{
		Category:    "dupatta",
		Name:        "Phulkari Dupatta",
		Description: "Hand embroidered phulkari on chiffon.",
		Price:       "999.00",
		Images:      []string{"https://images.unsplash.com/photo-1602810318383-e386cc2a3ccf?w=800"},
		Stock:       30,
		SortOrder:   100,
	},
}

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, cfg.Database.LogLevel, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	if _, err := models.InitDefaultAdmin(os.Getenv("VASTRA_DEFAULT_ADMIN_USERNAME"), os.Getenv("VASTRA_DEFAULT_ADMIN_PASSWORD")); err != nil {
		stdLog.Printf("Failed to init default admin: %v", err)
	}

	categoryIDs := make(map[string]uint, len(seedCategories))
	for _, cat := range seedCategories {
		cat := cat
		if err := models.DB.Where("slug = ?", cat.Slug).FirstOrCreate(&cat).Error; err != nil {
			stdLog.Printf("Failed to seed category %s: %v", cat.Slug, err)
			continue
		}
		categoryIDs[cat.Slug] = cat.ID
		logger.Infow("seed_category_ready", "slug", cat.Slug, "category_id", cat.ID)
	}

	for _, item := range seedProducts {
		categoryID, ok := categoryIDs[item.Category]
		if !ok {
			stdLog.Printf("Skip product %s: category %s missing", item.Name, item.Category)
			continue
		}
		if err := upsertProduct(models.DB, categoryID, item); err != nil {
			stdLog.Printf("Failed to seed product %s: %v", item.Name, err)
			continue
		}
		logger.Infow("seed_product_ready", "name", item.Name, "stock", item.Stock)
	}

	stdLog.Printf("Seed completed: %d categories, %d products", len(categoryIDs), len(seedProducts))
}

// upsertProduct 按名称与分类查找商品，存在时只刷新展示字段，不覆盖库存
func upsertProduct(db *gorm.DB, categoryID uint, item seedProduct) error {
	price, err := decimal.NewFromString(item.Price)
	if err != nil {
		return err
	}
	var existing models.Product
	err = db.Where("category_id = ? AND name = ?", categoryID, item.Name).First(&existing).Error
	if err == nil {
		return db.Model(&existing).Updates(map[string]interface{}{
			"description":  item.Description,
			"price_amount": models.NewMoneyFromDecimal(price),
			"images":       models.StringArray(item.Images),
			"sort_order":   item.SortOrder,
		}).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return db.Create(&models.Product{
		CategoryID:  categoryID,
		Name:        item.Name,
		Description: item.Description,
		PriceAmount: models.NewMoneyFromDecimal(price),
		Images:      models.StringArray(item.Images),
		Stock:       item.Stock,
		IsActive:    true,
		SortOrder:   item.SortOrder,
	}).Error
}
