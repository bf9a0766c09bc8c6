package service

import (
	"context"
	"errors"

	"github.com/mtran/inventory-web/internal/domain"
	"github.com/mtran/inventory-web/internal/repository"
	"gorm.io/gorm"
)

type SupplierService struct {
	supplierRepo repository.SupplierRepository
	productRepo  repository.ProductRepository
}

func NewSupplierService(supplierRepo repository.SupplierRepository, productRepo repository.ProductRepository) *SupplierService {
	return &SupplierService{
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
	}
}

type SupplierInput struct {
	Name          string
	Email         *string
	Phone         *string
	Address       *string
	ContactPerson *string
	Website       *string
	Notes         *string
}

func (s *SupplierService) Create(ctx context.Context, input SupplierInput) (*domain.Supplier, error) {
	supplier := &domain.Supplier{
		Name:          input.Name,
		Email:         input.Email,
		Phone:         input.Phone,
		Address:       input.Address,
		ContactPerson: input.ContactPerson,
		Website:       input.Website,
		Notes:         input.Notes,
	}
	if err := s.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

func (s *SupplierService) Update(ctx context.Context, id uint, input SupplierInput) (*domain.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSupplierNotFound
		}
		return nil, err
	}

	supplier.Name = input.Name
	supplier.Email = input.Email
	supplier.Phone = input.Phone
	supplier.Address = input.Address
	supplier.ContactPerson = input.ContactPerson
	supplier.Website = input.Website
	supplier.Notes = input.Notes

	if err := s.supplierRepo.Update(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// Delete refuses to remove a supplier that products still reference
func (s *SupplierService) Delete(ctx context.Context, id uint) error {
	if _, err := s.supplierRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrSupplierNotFound
		}
		return err
	}

	count, err := s.productRepo.CountBySupplier(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrSupplierHasProducts
	}

	return s.supplierRepo.Delete(ctx, id)
}

func (s *SupplierService) Get(ctx context.Context, id uint) (*domain.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSupplierNotFound
		}
		return nil, err
	}
	return supplier, nil
}

func (s *SupplierService) List(ctx context.Context) ([]domain.Supplier, error) {
	return s.supplierRepo.List(ctx)
}
