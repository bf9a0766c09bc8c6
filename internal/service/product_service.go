package service

import (
	"context"
	"errors"
	"math"

	"github.com/mtran/inventory-web/internal/domain"
	"github.com/mtran/inventory-web/internal/repository"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	supplierRepo repository.SupplierRepository
	events       EventEmitter
}

func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	supplierRepo repository.SupplierRepository,
	events EventEmitter,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		supplierRepo: supplierRepo,
		events:       events,
	}
}

type ProductInput struct {
	Name        string
	Description string
	SKU         string
	Barcode     *string
	Price       float64
	Cost        *float64
	Quantity    int
	MinQuantity int
	MaxQuantity *int
	Status      domain.ProductStatus
	CategoryID  uint
	SupplierID  uint
	Attributes  datatypes.JSON
}

// Pagination mirrors the listing envelope the dashboard expects
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

type ProductPage struct {
	Products   []domain.Product `json:"products"`
	Pagination Pagination       `json:"pagination"`
}

func (s *ProductService) Create(ctx context.Context, input ProductInput) (*domain.Product, error) {
	if err := s.checkReferences(ctx, input.CategoryID, input.SupplierID); err != nil {
		return nil, err
	}

	existing, err := s.productRepo.GetBySKU(ctx, input.SKU)
	if err == nil && existing != nil {
		return nil, domain.ErrSKUExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = domain.ProductStatusActive
	}

	product := &domain.Product{
		Name:        input.Name,
		Description: input.Description,
		SKU:         input.SKU,
		Barcode:     input.Barcode,
		Price:       input.Price,
		Cost:        input.Cost,
		Quantity:    input.Quantity,
		MinQuantity: input.MinQuantity,
		MaxQuantity: input.MaxQuantity,
		Status:      status,
		CategoryID:  input.CategoryID,
		SupplierID:  input.SupplierID,
		Attributes:  input.Attributes,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.events.Emit(EventProductCreated, product)
	s.emitLowStock(product)
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, id uint, input ProductInput) (*domain.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}

	if input.SKU != product.SKU {
		existing, err := s.productRepo.GetBySKU(ctx, input.SKU)
		if err == nil && existing != nil && existing.ID != id {
			return nil, domain.ErrSKUExists
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	if err := s.checkReferences(ctx, input.CategoryID, input.SupplierID); err != nil {
		return nil, err
	}

	product.Name = input.Name
	product.Description = input.Description
	product.SKU = input.SKU
	product.Barcode = input.Barcode
	product.Price = input.Price
	product.Cost = input.Cost
	product.Quantity = input.Quantity
	product.MinQuantity = input.MinQuantity
	product.MaxQuantity = input.MaxQuantity
	if input.Status != "" {
		product.Status = input.Status
	}
	product.CategoryID = input.CategoryID
	product.SupplierID = input.SupplierID
	if input.Attributes != nil {
		product.Attributes = input.Attributes
	}
	product.Category = nil
	product.Supplier = nil

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	s.events.Emit(EventProductUpdated, product)
	s.emitLowStock(product)
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, id uint) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrProductNotFound
		}
		return err
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.events.Emit(EventProductDeleted, map[string]uint{"id": product.ID})
	return nil
}

func (s *ProductService) Get(ctx context.Context, id uint) (*domain.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *ProductService) List(ctx context.Context, filter repository.ProductFilter) (*ProductPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}

	products, total, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	if products == nil {
		products = []domain.Product{}
	}

	return &ProductPage{
		Products: products,
		Pagination: Pagination{
			Page:  filter.Page,
			Limit: filter.Limit,
			Total: total,
			Pages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		},
	}, nil
}

func (s *ProductService) checkReferences(ctx context.Context, categoryID, supplierID uint) error {
	if _, err := s.categoryRepo.GetByID(ctx, categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrCategoryNotFound
		}
		return err
	}
	if _, err := s.supplierRepo.GetByID(ctx, supplierID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrSupplierNotFound
		}
		return err
	}
	return nil
}

func (s *ProductService) emitLowStock(product *domain.Product) {
	if product.IsLowStock() {
		s.events.Emit(EventProductLowStock, map[string]interface{}{
			"id":          product.ID,
			"name":        product.Name,
			"sku":         product.SKU,
			"quantity":    product.Quantity,
			"minQuantity": product.MinQuantity,
		})
	}
}
