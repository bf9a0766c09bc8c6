package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/mtran/inventory-web/internal/domain"
	"github.com/mtran/inventory-web/internal/repository"
	"github.com/mtran/inventory-web/internal/service"
	"gorm.io/datatypes"
)

type ProductHandler struct {
	productService *service.ProductService
}

func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

type ProductRequest struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	SKU         string               `json:"sku"`
	Barcode     *string              `json:"barcode"`
	Price       float64              `json:"price"`
	Cost        *float64             `json:"cost"`
	Quantity    int                  `json:"quantity"`
	MinQuantity int                  `json:"minQuantity"`
	MaxQuantity *int                 `json:"maxQuantity"`
	Status      domain.ProductStatus `json:"status"`
	CategoryID  uint                 `json:"categoryId"`
	SupplierID  uint                 `json:"supplierId"`
	Attributes  datatypes.JSON       `json:"attributes"`
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := repository.ProductFilter{
		Page:   intQuery(query.Get("page"), 1),
		Limit:  intQuery(query.Get("limit"), 10),
		Search: query.Get("search"),
	}
	if raw := query.Get("categoryId"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			categoryID := uint(id)
			filter.CategoryID = &categoryID
		}
	}
	if raw := query.Get("supplierId"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			supplierID := uint(id)
			filter.SupplierID = &supplierID
		}
	}

	page, err := h.productService.List(r.Context(), filter)
	if err != nil {
		log.Printf("ERROR [handlers.Product] list failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	product, err := h.productService.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, ok := decodeProductRequest(w, r)
	if !ok {
		return
	}

	product, err := h.productService.Create(r.Context(), *input)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	input, ok := decodeProductRequest(w, r)
	if !ok {
		return
	}

	product, err := h.productService.Update(r.Context(), id, *input)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	if err := h.productService.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}

func decodeProductRequest(w http.ResponseWriter, r *http.Request) (*service.ProductInput, bool) {
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}

	switch {
	case req.Name == "":
		writeError(w, http.StatusBadRequest, "Name is required")
	case req.SKU == "":
		writeError(w, http.StatusBadRequest, "SKU is required")
	case req.Price < 0:
		writeError(w, http.StatusBadRequest, "Price must be non-negative")
	case req.Quantity < 0:
		writeError(w, http.StatusBadRequest, "Quantity must be non-negative")
	case req.MinQuantity < 0:
		writeError(w, http.StatusBadRequest, "Minimum quantity must be non-negative")
	case req.CategoryID == 0:
		writeError(w, http.StatusBadRequest, "Category is required")
	case req.SupplierID == 0:
		writeError(w, http.StatusBadRequest, "Supplier is required")
	case req.Status != "" && !req.Status.IsValid():
		writeError(w, http.StatusBadRequest, "Invalid product status")
	default:
		return &service.ProductInput{
			Name:        req.Name,
			Description: req.Description,
			SKU:         req.SKU,
			Barcode:     req.Barcode,
			Price:       req.Price,
			Cost:        req.Cost,
			Quantity:    req.Quantity,
			MinQuantity: req.MinQuantity,
			MaxQuantity: req.MaxQuantity,
			Status:      req.Status,
			CategoryID:  req.CategoryID,
			SupplierID:  req.SupplierID,
			Attributes:  req.Attributes,
		}, true
	}
	return nil, false
}

func (h *ProductHandler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		writeError(w, http.StatusNotFound, "Product not found")
	case errors.Is(err, domain.ErrSKUExists):
		writeError(w, http.StatusConflict, "SKU or barcode already exists")
	case errors.Is(err, domain.ErrCategoryNotFound):
		writeError(w, http.StatusBadRequest, "Category not found")
	case errors.Is(err, domain.ErrSupplierNotFound):
		writeError(w, http.StatusBadRequest, "Supplier not found")
	default:
		log.Printf("ERROR [handlers.Product] %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func intQuery(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}
