package service

import (
	"github.com/mtran/inventory-web/internal/auth"
	"github.com/mtran/inventory-web/internal/repository"
)

type Services struct {
	Auth     *AuthService
	Category *CategoryService
	Product  *ProductService
	Supplier *SupplierService
}

func NewServices(repos *repository.Repositories, tokens *auth.Manager, events EventEmitter) *Services {
	if events == nil {
		events = NopEmitter{}
	}
	return &Services{
		Auth:     NewAuthService(repos.User, tokens),
		Category: NewCategoryService(repos.Category, repos.Product),
		Product:  NewProductService(repos.Product, repos.Category, repos.Supplier, events),
		Supplier: NewSupplierService(repos.Supplier, repos.Product),
	}
}
