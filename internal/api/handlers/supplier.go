package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/mtran/inventory-web/internal/domain"
	"github.com/mtran/inventory-web/internal/service"
)

type SupplierHandler struct {
	supplierService *service.SupplierService
}

func NewSupplierHandler(supplierService *service.SupplierService) *SupplierHandler {
	return &SupplierHandler{supplierService: supplierService}
}

type SupplierRequest struct {
	Name          string  `json:"name"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	Address       *string `json:"address"`
	ContactPerson *string `json:"contactPerson"`
	Website       *string `json:"website"`
	Notes         *string `json:"notes"`
}

func (h *SupplierHandler) List(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.supplierService.List(r.Context())
	if err != nil {
		log.Printf("ERROR [handlers.Supplier] list failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, suppliers)
}

func (h *SupplierHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid supplier id")
		return
	}

	supplier, err := h.supplierService.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, supplier)
}

func (h *SupplierHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeSupplierRequest(w, r)
	if !ok {
		return
	}

	supplier, err := h.supplierService.Create(r.Context(), req.toInput())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, supplier)
}

func (h *SupplierHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid supplier id")
		return
	}

	req, ok := decodeSupplierRequest(w, r)
	if !ok {
		return
	}

	supplier, err := h.supplierService.Update(r.Context(), id, req.toInput())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, supplier)
}

func (h *SupplierHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid supplier id")
		return
	}

	if err := h.supplierService.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Supplier deleted successfully"})
}

func (r *SupplierRequest) toInput() service.SupplierInput {
	return service.SupplierInput{
		Name:          r.Name,
		Email:         r.Email,
		Phone:         r.Phone,
		Address:       r.Address,
		ContactPerson: r.ContactPerson,
		Website:       r.Website,
		Notes:         r.Notes,
	}
}

func decodeSupplierRequest(w http.ResponseWriter, r *http.Request) (*SupplierRequest, bool) {
	var req SupplierRequest
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

func (h *SupplierHandler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrSupplierNotFound):
		writeError(w, http.StatusNotFound, "Supplier not found")
	case errors.Is(err, domain.ErrSupplierHasProducts):
		writeError(w, http.StatusBadRequest, "Cannot delete supplier with existing products")
	default:
		log.Printf("ERROR [handlers.Supplier] %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
