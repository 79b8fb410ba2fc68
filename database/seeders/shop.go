package seeders

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pedalpoint/bikeshop/app/models"
	"github.com/pedalpoint/bikeshop/config"
	"github.com/pedalpoint/bikeshop/pkg/auth"
)

func init() {
	Register("admin_user", SeedAdminUser)
	Register("sample_catalog", SeedSampleCatalog)
}

// SeedAdminUser creates the initial admin account unless one exists.
// Credentials come from ADMIN_USERNAME / ADMIN_PASSWORD.
func SeedAdminUser(db *gorm.DB) error {
	var n int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	hash, err := auth.HashPassword(config.Get("ADMIN_PASSWORD", "changeme-now"))
	if err != nil {
		return err
	}
	admin := models.User{
		Username: config.Get("ADMIN_USERNAME", "admin"),
		Email:    config.Get("ADMIN_EMAIL", "admin@bikeshop.local"),
		Password: hash,
		FullName: "Shop Administrator",
		Role:     models.RoleAdmin,
	}
	return db.Create(&admin).Error
}

// SeedSampleCatalog inserts a handful of bikes when the catalog is empty.
func SeedSampleCatalog(db *gorm.DB) error {
	var n int64
	if err := db.Model(&models.Product{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	products := []models.Product{
		{
			Name:        "Trail 29 Hardtail",
			Description: "29er hardtail with a 120mm fork, built for singletrack.",
			Price:       decimal.RequireFromString("499.90"),
			Category:    "mountain",
			Brand:       "Ridgeline",
			Quantity:    12,
			Colors:      []string{"matte black", "forest green"},
			Attributes: []models.ProductAttribute{
				{Name: "frame_size", Value: "M"},
				{Name: "wheel_size", Value: "29\""},
			},
		},
		{
			Name:        "Gravel 700c Apex",
			Description: "All-road gravel frame with clearance for 45mm tyres.",
			Price:       decimal.RequireFromString("1249.00"),
			Category:    "gravel",
			Brand:       "Northwind",
			Quantity:    6,
			Colors:      []string{"sand", "slate blue"},
			Attributes: []models.ProductAttribute{
				{Name: "frame_size", Value: "L"},
				{Name: "groupset", Value: "SRAM Apex"},
			},
		},
		{
			Name:        "City Step-Through",
			Description: "Upright commuter with rack and fender mounts.",
			Price:       decimal.RequireFromString("389.50"),
			Category:    "city",
			Brand:       "Ridgeline",
			Quantity:    20,
			Colors:      []string{"cream", "burgundy"},
		},
	}
	return db.Create(&products).Error
}
