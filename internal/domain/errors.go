package domain

import "errors"

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountNotActive   = errors.New("account is not active")
	ErrRefreshInvalid     = errors.New("refresh token is invalid")
	ErrUsernameExists     = errors.New("username already exists")
)

// Category errors
var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrDuplicateName    = errors.New("category name already exists")
	ErrParentNotFound   = errors.New("parent category not found")
	ErrSelfParent       = errors.New("category cannot be its own parent")
	ErrCyclicParent     = errors.New("category cannot be moved under one of its descendants")
	ErrHasProducts      = errors.New("category has products and cannot be deleted")
	ErrHasChildren      = errors.New("category has child categories and cannot be deleted")
)

// Product errors
var (
	ErrProductNotFound = errors.New("product not found")
	ErrSKUExists       = errors.New("SKU or barcode already exists")
)

// Supplier errors
var (
	ErrSupplierNotFound    = errors.New("supplier not found")
	ErrSupplierHasProducts = errors.New("supplier has products and cannot be deleted")
)
