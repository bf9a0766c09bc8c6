package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/mtran/inventory-web/internal/config"
	"github.com/mtran/inventory-web/internal/domain"
	"github.com/mtran/inventory-web/internal/repository/postgres"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Seeds the database with the role/permission catalogue, demo accounts
// and a small inventory so a fresh environment is usable immediately.
// Safe to run repeatedly.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := postgres.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := seedRBAC(db); err != nil {
		log.Fatalf("failed to seed roles and permissions: %v", err)
	}
	if err := seedUsers(db); err != nil {
		log.Fatalf("failed to seed users: %v", err)
	}
	if err := seedInventory(db); err != nil {
		log.Fatalf("failed to seed inventory: %v", err)
	}

	log.Println("Seed completed")
}

func seedRBAC(db *gorm.DB) error {
	permissionDescriptions := map[string]string{
		domain.PermissionUserRead:        "View user accounts",
		domain.PermissionUserWrite:       "Create and edit user accounts",
		domain.PermissionUserDelete:      "Remove user accounts",
		domain.PermissionAdminAccess:     "Access the admin area",
		domain.PermissionContentModerate: "Moderate user-generated content",
	}

	permissionIDs := make(map[string]uint)
	for name, description := range permissionDescriptions {
		permission := domain.Permission{Name: name, Description: description}
		if err := db.Where(domain.Permission{Name: name}).
			Assign(domain.Permission{Description: description}).
			FirstOrCreate(&permission).Error; err != nil {
			return err
		}
		permissionIDs[name] = permission.ID
	}

	for role, permissions := range domain.RolePermissions {
		roleDef := domain.RoleDefinition{Name: role.String()}
		if err := db.Where(domain.RoleDefinition{Name: role.String()}).
			FirstOrCreate(&roleDef).Error; err != nil {
			return err
		}

		for _, name := range permissions {
			link := domain.RolePermission{RoleID: roleDef.ID, PermissionID: permissionIDs[name]}
			if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

func seedUsers(db *gorm.DB) error {
	demo := []struct {
		Username string
		Email    string
		Name     string
		Password string
		Role     domain.Role
	}{
		{"admin", "admin@example.com", "Admin User", "admin123", domain.RoleAdmin},
		{"moderator", "moderator@example.com", "Moderator User", "moderator123", domain.RoleModerator},
		{"user", "user@example.com", "Regular User", "user123", domain.RoleUser},
		{"guest", "guest@example.com", "Guest User", "guest123", domain.RoleGuest},
	}

	for _, entry := range demo {
		hash, err := bcrypt.GenerateFromPassword([]byte(entry.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		email := entry.Email
		name := entry.Name
		user := domain.User{
			Username:     entry.Username,
			Email:        &email,
			Name:         &name,
			PasswordHash: string(hash),
			Role:         entry.Role,
			Status:       domain.UserStatusActive,
		}
		if err := db.Where(domain.User{Username: entry.Username}).
			FirstOrCreate(&user).Error; err != nil {
			return err
		}
	}

	return nil
}

func seedInventory(db *gorm.DB) error {
	electronics, err := upsertCategory(db, "Electronics", "Electronic devices and accessories", nil)
	if err != nil {
		return err
	}
	computers, err := upsertCategory(db, "Computers", "Desktop and laptop computers", &electronics.ID)
	if err != nil {
		return err
	}
	laptops, err := upsertCategory(db, "Laptops", "Portable computers", &computers.ID)
	if err != nil {
		return err
	}
	if _, err := upsertCategory(db, "Accessories", "Cables, adapters and peripherals", &electronics.ID); err != nil {
		return err
	}
	office, err := upsertCategory(db, "Office Supplies", "General office supplies", nil)
	if err != nil {
		return err
	}

	acme, err := upsertSupplier(db, "Acme Electronics", "sales@acme-electronics.example", "John Doe")
	if err != nil {
		return err
	}
	globex, err := upsertSupplier(db, "Globex Office", "orders@globex-office.example", "Jane Roe")
	if err != nil {
		return err
	}

	cost := func(v float64) *float64 { return &v }
	maxQty := func(v int) *int { return &v }

	products := []domain.Product{
		{
			Name:        "UltraBook Pro 14",
			Description: "14-inch business laptop",
			SKU:         "LAP-0001",
			Price:       1299.99,
			Cost:        cost(950),
			Quantity:    25,
			MinQuantity: 5,
			MaxQuantity: maxQty(50),
			Status:      domain.ProductStatusActive,
			CategoryID:  laptops.ID,
			SupplierID:  acme.ID,
			Attributes:  datatypes.JSON([]byte(`{"cpu":"8-core","ram":"16GB","storage":"512GB SSD"}`)),
		},
		{
			Name:        "USB-C Hub",
			Description: "7-port USB-C hub with HDMI",
			SKU:         "ACC-0042",
			Price:       49.99,
			Cost:        cost(22.5),
			Quantity:    3,
			MinQuantity: 10,
			Status:      domain.ProductStatusActive,
			CategoryID:  electronics.ID,
			SupplierID:  acme.ID,
		},
		{
			Name:        "Copy Paper A4",
			Description: "500-sheet ream, 80gsm",
			SKU:         "OFF-0100",
			Price:       6.5,
			Quantity:    240,
			MinQuantity: 40,
			Status:      domain.ProductStatusActive,
			CategoryID:  office.ID,
			SupplierID:  globex.ID,
		},
	}

	for i := range products {
		if err := db.Where(domain.Product{SKU: products[i].SKU}).
			FirstOrCreate(&products[i]).Error; err != nil {
			return err
		}
	}

	return nil
}

func upsertCategory(db *gorm.DB, name, description string, parentID *uint) (*domain.Category, error) {
	category := domain.Category{Name: name, Description: description, ParentID: parentID}
	if err := db.Where(domain.Category{Name: name}).
		Assign(domain.Category{Description: description, ParentID: parentID}).
		FirstOrCreate(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func upsertSupplier(db *gorm.DB, name, email, contact string) (*domain.Supplier, error) {
	supplier := domain.Supplier{Name: name, Email: &email, ContactPerson: &contact}
	if err := db.Where("name = ?", name).FirstOrCreate(&supplier).Error; err != nil {
		return nil, err
	}
	return &supplier, nil
}
