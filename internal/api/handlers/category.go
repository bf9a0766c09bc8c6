package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/mtran/inventory-web/internal/domain"
	"github.com/mtran/inventory-web/internal/service"
)

type CategoryHandler struct {
	categoryService *service.CategoryService
}

func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ParentID    *uint  `json:"parentId"`
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryService.List(r.Context())
	if err != nil {
		log.Printf("ERROR [handlers.Category] list failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *CategoryHandler) Tree(w http.ResponseWriter, r *http.Request) {
	tree, err := h.categoryService.Tree(r.Context())
	if err != nil {
		log.Printf("ERROR [handlers.Category] tree failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if tree == nil {
		tree = []*service.CategoryNode{}
	}
	writeJSON(w, http.StatusOK, tree)
}

func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid category id")
		return
	}

	category, err := h.categoryService.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCategoryRequest(w, r)
	if !ok {
		return
	}

	category, err := h.categoryService.Create(r.Context(), service.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
		ParentID:    req.ParentID,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, category)
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid category id")
		return
	}

	req, ok := decodeCategoryRequest(w, r)
	if !ok {
		return
	}

	category, err := h.categoryService.Update(r.Context(), id, service.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
		ParentID:    req.ParentID,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid category id")
		return
	}

	if err := h.categoryService.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Category deleted successfully"})
}

func decodeCategoryRequest(w http.ResponseWriter, r *http.Request) (*CategoryRequest, bool) {
	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return nil, false
	}
	return &req, true
}

func (h *CategoryHandler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrCategoryNotFound):
		writeError(w, http.StatusNotFound, "Category not found")
	case errors.Is(err, domain.ErrDuplicateName):
		writeError(w, http.StatusConflict, "Category name already exists")
	case errors.Is(err, domain.ErrParentNotFound):
		writeError(w, http.StatusBadRequest, "Parent category not found")
	case errors.Is(err, domain.ErrSelfParent):
		writeError(w, http.StatusBadRequest, "Category cannot be its own parent")
	case errors.Is(err, domain.ErrCyclicParent):
		writeError(w, http.StatusBadRequest, "Category cannot be moved under one of its descendants")
	case errors.Is(err, domain.ErrHasProducts):
		writeError(w, http.StatusBadRequest, "Cannot delete category with existing products")
	case errors.Is(err, domain.ErrHasChildren):
		writeError(w, http.StatusBadRequest, "Cannot delete category with child categories")
	default:
		log.Printf("ERROR [handlers.Category] %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
