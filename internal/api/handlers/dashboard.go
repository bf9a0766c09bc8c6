package handlers

import (
	"log"
	"net/http"

	"github.com/mtran/inventory-web/internal/api/middleware"
	"github.com/mtran/inventory-web/internal/repository"
	"github.com/mtran/inventory-web/internal/service"
)

type DashboardHandler struct {
	productService  *service.ProductService
	categoryService *service.CategoryService
	supplierService *service.SupplierService
}

func NewDashboardHandler(
	productService *service.ProductService,
	categoryService *service.CategoryService,
	supplierService *service.SupplierService,
) *DashboardHandler {
	return &DashboardHandler{
		productService:  productService,
		categoryService: categoryService,
		supplierService: supplierService,
	}
}

// Overview returns the landing-page summary for an authenticated user
func (h *DashboardHandler) Overview(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx := r.Context()

	productPage, err := h.productService.List(ctx, repository.ProductFilter{Page: 1, Limit: 1})
	if err != nil {
		log.Printf("ERROR [handlers.Dashboard] product count failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	categories, err := h.categoryService.List(ctx)
	if err != nil {
		log.Printf("ERROR [handlers.Dashboard] category list failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	suppliers, err := h.supplierService.List(ctx)
	if err != nil {
		log.Printf("ERROR [handlers.Dashboard] supplier list failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"username":   session.User.Username,
		"role":       session.User.Role,
		"products":   productPage.Pagination.Total,
		"categories": len(categories),
		"suppliers":  len(suppliers),
	})
}
