package service

import (
	"context"
	"errors"

	"github.com/mtran/inventory-web/internal/domain"
	"github.com/mtran/inventory-web/internal/repository"
	"gorm.io/gorm"
)

type CategoryService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

type CategoryInput struct {
	Name        string
	Description string
	ParentID    *uint
}

func (s *CategoryService) Create(ctx context.Context, input CategoryInput) (*domain.Category, error) {
	existing, err := s.categoryRepo.GetByName(ctx, input.Name)
	if err == nil && existing != nil {
		return nil, domain.ErrDuplicateName
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if input.ParentID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *input.ParentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrParentNotFound
			}
			return nil, err
		}
	}

	category := &domain.Category{
		Name:        input.Name,
		Description: input.Description,
		ParentID:    input.ParentID,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Update validates every constraint before touching the row, so a
// rejected update leaves the category unchanged.
func (s *CategoryService) Update(ctx context.Context, id uint, input CategoryInput) (*domain.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}

	if input.Name != category.Name {
		existing, err := s.categoryRepo.GetByName(ctx, input.Name)
		if err == nil && existing != nil && existing.ID != id {
			return nil, domain.ErrDuplicateName
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	if input.ParentID != nil {
		if *input.ParentID == id {
			return nil, domain.ErrSelfParent
		}
		if err := s.checkAncestry(ctx, id, *input.ParentID); err != nil {
			return nil, err
		}
	}

	category.Name = input.Name
	category.Description = input.Description
	category.ParentID = input.ParentID
	category.Parent = nil // drop the preloaded association before saving

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// checkAncestry walks the ancestor chain of the proposed parent and
// rejects the assignment if the category being moved appears in it.
// The single-hop self check is not enough: moving A under B when B is
// already a descendant of A would close a multi-hop cycle.
func (s *CategoryService) checkAncestry(ctx context.Context, id, parentID uint) error {
	visited := map[uint]bool{}
	current := parentID
	for {
		if visited[current] {
			// pre-existing cycle in stored data; refuse the move
			return domain.ErrCyclicParent
		}
		visited[current] = true

		node, err := s.categoryRepo.GetByID(ctx, current)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				if current == parentID {
					return domain.ErrParentNotFound
				}
				// broken link mid-chain; the chain ends here
				return nil
			}
			return err
		}
		if node.ID == id {
			return domain.ErrCyclicParent
		}
		if node.ParentID == nil {
			return nil
		}
		current = *node.ParentID
	}
}

// Delete refuses to remove a category that still anchors products or
// child categories. No cascade, no soft delete.
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	if _, err := s.categoryRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrCategoryNotFound
		}
		return err
	}

	productCount, err := s.productRepo.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if productCount > 0 {
		return domain.ErrHasProducts
	}

	childCount, err := s.categoryRepo.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	if childCount > 0 {
		return domain.ErrHasChildren
	}

	return s.categoryRepo.Delete(ctx, id)
}

func (s *CategoryService) Get(ctx context.Context, id uint) (*domain.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.categoryRepo.List(ctx)
}

// Tree returns the full category forest as a read-side projection
func (s *CategoryService) Tree(ctx context.Context) ([]*CategoryNode, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return BuildTree(categories), nil
}

// CategoryNode annotates a category with its computed children. The
// projection lives only in responses; the stored rows keep nothing but
// parent_id.
type CategoryNode struct {
	domain.Category
	Children []*CategoryNode `json:"children"`
}

// BuildTree reconstructs the category forest from a flat list. A node
// whose declared parent is missing from the input is treated as a root
// rather than dropped.
func BuildTree(categories []domain.Category) []*CategoryNode {
	nodes := make(map[uint]*CategoryNode, len(categories))
	for _, category := range categories {
		category.Parent = nil
		nodes[category.ID] = &CategoryNode{
			Category: category,
			Children: []*CategoryNode{},
		}
	}

	var roots []*CategoryNode
	for _, category := range categories {
		node := nodes[category.ID]
		if category.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[*category.ParentID]
		if !ok {
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	return roots
}

// DisplayName renders "Parent > Name" when the parent is loaded
func DisplayName(category *domain.Category) string {
	if category.Parent != nil {
		return category.Parent.Name + " > " + category.Name
	}
	return category.Name
}
