package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/mtran/inventory-web/internal/domain"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	username string
	password string
	role     domain.Role
	status   domain.UserStatus
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		username: fmt.Sprintf("testuser_%s", uuid.New().String()[:8]),
		password: "testpassword123",
		role:     domain.RoleUser,
		status:   domain.UserStatusActive,
	}
}

// WithUsername sets the username
func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.username = username
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// WithRole sets the role
func (b *UserBuilder) WithRole(role domain.Role) *UserBuilder {
	b.role = role
	return b
}

// WithStatus sets the account status
func (b *UserBuilder) WithStatus(status domain.UserStatus) *UserBuilder {
	b.status = status
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	email := b.username + "@example.com"
	user := &domain.User{
		Username:     b.username,
		Email:        &email,
		PasswordHash: string(hashedPassword),
		Role:         b.role,
		Status:       b.status,
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// SessionResponse matches the API session payload
type SessionResponse struct {
	User struct {
		ID       uint   `json:"id"`
		Username string `json:"username"`
		Role     string `json:"role"`
	} `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenExpires int64  `json:"tokenExpires"`
	Error        string `json:"error,omitempty"`
}

// BuildAndLogin creates a user in the database and logs in via the API,
// returning the user and the session tokens
func (b *UserBuilder) BuildAndLogin(t *testing.T, ts *TestServer) (*domain.User, *SessionResponse) {
	t.Helper()

	user, password := b.Build(t, ts.DB.DB)

	body, _ := json.Marshal(map[string]string{
		"username": b.username,
		"password": password,
	})

	resp, err := http.Post(ts.BaseURL()+"/auth/login", "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to log in: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected login status code: %d", resp.StatusCode)
	}

	var session SessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		t.Fatalf("failed to decode session: %v", err)
	}

	return user, &session
}

// CategoryBuilder creates test categories
type CategoryBuilder struct {
	name        string
	description string
	parentID    *uint
}

// NewCategoryBuilder creates a new CategoryBuilder with default values
func NewCategoryBuilder() *CategoryBuilder {
	return &CategoryBuilder{
		name: fmt.Sprintf("Category %s", uuid.New().String()[:8]),
	}
}

// WithName sets the category name
func (b *CategoryBuilder) WithName(name string) *CategoryBuilder {
	b.name = name
	return b
}

// WithDescription sets the description
func (b *CategoryBuilder) WithDescription(description string) *CategoryBuilder {
	b.description = description
	return b
}

// WithParent sets the parent category
func (b *CategoryBuilder) WithParent(parent *domain.Category) *CategoryBuilder {
	b.parentID = &parent.ID
	return b
}

// Build creates the category in the database
func (b *CategoryBuilder) Build(t *testing.T, db *gorm.DB) *domain.Category {
	t.Helper()

	category := &domain.Category{
		Name:        b.name,
		Description: b.description,
		ParentID:    b.parentID,
	}

	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create category: %v", err)
	}

	return category
}

// SupplierBuilder creates test suppliers
type SupplierBuilder struct {
	name  string
	email *string
}

// NewSupplierBuilder creates a new SupplierBuilder with default values
func NewSupplierBuilder() *SupplierBuilder {
	return &SupplierBuilder{
		name: fmt.Sprintf("Supplier %s", uuid.New().String()[:8]),
	}
}

// WithName sets the supplier name
func (b *SupplierBuilder) WithName(name string) *SupplierBuilder {
	b.name = name
	return b
}

// WithEmail sets the contact email
func (b *SupplierBuilder) WithEmail(email string) *SupplierBuilder {
	b.email = &email
	return b
}

// Build creates the supplier in the database
func (b *SupplierBuilder) Build(t *testing.T, db *gorm.DB) *domain.Supplier {
	t.Helper()

	supplier := &domain.Supplier{
		Name:  b.name,
		Email: b.email,
	}

	if err := db.Create(supplier).Error; err != nil {
		t.Fatalf("failed to create supplier: %v", err)
	}

	return supplier
}

// ProductBuilder creates test products
type ProductBuilder struct {
	name        string
	sku         string
	price       float64
	quantity    int
	minQuantity int
	category    *domain.Category
	supplier    *domain.Supplier
}

// NewProductBuilder creates a new ProductBuilder with default values
func NewProductBuilder() *ProductBuilder {
	suffix := uuid.New().String()[:8]
	return &ProductBuilder{
		name:        fmt.Sprintf("Product %s", suffix),
		sku:         fmt.Sprintf("SKU-%s", suffix),
		price:       9.99,
		quantity:    10,
		minQuantity: 2,
	}
}

// WithName sets the product name
func (b *ProductBuilder) WithName(name string) *ProductBuilder {
	b.name = name
	return b
}

// WithSKU sets the SKU
func (b *ProductBuilder) WithSKU(sku string) *ProductBuilder {
	b.sku = sku
	return b
}

// WithPrice sets the price
func (b *ProductBuilder) WithPrice(price float64) *ProductBuilder {
	b.price = price
	return b
}

// WithQuantity sets the stock quantity
func (b *ProductBuilder) WithQuantity(quantity int) *ProductBuilder {
	b.quantity = quantity
	return b
}

// WithMinQuantity sets the low-stock threshold
func (b *ProductBuilder) WithMinQuantity(minQuantity int) *ProductBuilder {
	b.minQuantity = minQuantity
	return b
}

// WithCategory sets the category
func (b *ProductBuilder) WithCategory(category *domain.Category) *ProductBuilder {
	b.category = category
	return b
}

// WithSupplier sets the supplier
func (b *ProductBuilder) WithSupplier(supplier *domain.Supplier) *ProductBuilder {
	b.supplier = supplier
	return b
}

// Build creates the product in the database, creating a category and
// supplier when none were provided
func (b *ProductBuilder) Build(t *testing.T, db *gorm.DB) *domain.Product {
	t.Helper()

	if b.category == nil {
		b.category = NewCategoryBuilder().Build(t, db)
	}
	if b.supplier == nil {
		b.supplier = NewSupplierBuilder().Build(t, db)
	}

	product := &domain.Product{
		Name:        b.name,
		SKU:         b.sku,
		Price:       b.price,
		Quantity:    b.quantity,
		MinQuantity: b.minQuantity,
		Status:      domain.ProductStatusActive,
		CategoryID:  b.category.ID,
		SupplierID:  b.supplier.ID,
	}

	if err := db.Create(product).Error; err != nil {
		t.Fatalf("failed to create product: %v", err)
	}

	return product
}

// CreateAuthenticatedRequest creates an HTTP request with auth token
func CreateAuthenticatedRequest(t *testing.T, method, url string, body interface{}, token string) *http.Request {
	t.Helper()

	var bodyReader *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	} else {
		bodyReader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, bodyReader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}
