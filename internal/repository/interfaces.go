package repository

import (
	"context"

	"github.com/mtran/inventory-web/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uint) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	// UpdateRefreshToken overwrites the stored refresh token; nil revokes it
	UpdateRefreshToken(ctx context.Context, id uint, token *string) error
	List(ctx context.Context) ([]domain.User, error)
}

type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, id uint) (*domain.Category, error)
	GetByName(ctx context.Context, name string) (*domain.Category, error)
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]domain.Category, error)
	CountChildren(ctx context.Context, id uint) (int64, error)
}

// ProductFilter narrows and pages product listings
type ProductFilter struct {
	Page       int
	Limit      int
	Search     string
	CategoryID *uint
	SupplierID *uint
}

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id uint) (*domain.Product, error)
	GetBySKU(ctx context.Context, sku string) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, int64, error)
	CountByCategory(ctx context.Context, categoryID uint) (int64, error)
	CountBySupplier(ctx context.Context, supplierID uint) (int64, error)
}

type SupplierRepository interface {
	Create(ctx context.Context, supplier *domain.Supplier) error
	GetByID(ctx context.Context, id uint) (*domain.Supplier, error)
	Update(ctx context.Context, supplier *domain.Supplier) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]domain.Supplier, error)
}

type Repositories struct {
	User     UserRepository
	Category CategoryRepository
	Product  ProductRepository
	Supplier SupplierRepository
}
