// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (Business layer) → validates, enforces rules, orchestrates
//	Repository (Data layer)  → reads/writes to the database
//
// Services accept primitives and return domain errors — they know nothing
// about HTTP. Each service takes its repository as an interface, so tests
// swap in in-memory mocks (see the _test.go files in this package).
//
// All input validation lives here. The repositories store whatever they are
// given; the handlers only parse JSON. Every rule about required fields,
// lengths, formats, and uniqueness is enforced in this package, so it holds
// for every caller.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/HerosSMP/Heros-shop.de/internal/apperror"
	"github.com/HerosSMP/Heros-shop.de/internal/model"
	"github.com/HerosSMP/Heros-shop.de/internal/repository"
)

// Validation constants. Named constants instead of magic numbers — easy to
// find, self-documenting, referenceable in error messages.
const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 2000
)

// ProductService handles business logic for the product catalog.
type ProductService struct {
	repo   repository.ProductRepository
	logger *slog.Logger
}

// NewProductService creates a ProductService. The caller decides which
// repository implementation to inject (sqlite in production, a mock in tests).
func NewProductService(repo repository.ProductRepository, logger *slog.Logger) *ProductService {
	return &ProductService{
		repo:   repo,
		logger: logger,
	}
}

// validateProductFields checks the shared rules for create and update.
func validateProductFields(title, description string, price float64) error {
	if title == "" {
		return apperror.ValidationFailed("title", "product title is required")
	}
	if len(title) > MaxTitleLength {
		return apperror.ValidationFailed("title",
			fmt.Sprintf("product title must be %d characters or less", MaxTitleLength))
	}
	if len(description) > MaxDescriptionLength {
		return apperror.ValidationFailed("description",
			fmt.Sprintf("product description must be %d characters or less", MaxDescriptionLength))
	}
	if price < 0 {
		return apperror.ValidationFailed("price", "product price must not be negative")
	}
	return nil
}

// Create validates and saves a new product. The repository assigns the ID
// and creation timestamp.
func (s *ProductService) Create(ctx context.Context, title, description string, price float64, image string) (*model.Product, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)

	if err := validateProductFields(title, description, price); err != nil {
		return nil, err
	}

	product := &model.Product{
		Title:       title,
		Description: description,
		Price:       price,
		Image:       strings.TrimSpace(image),
	}

	if err := s.repo.Create(ctx, product); err != nil {
		s.logger.Error("failed to create product",
			slog.String("title", title),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating product: %w", err)
	}

	s.logger.Info("product created",
		slog.String("id", product.ID),
		slog.String("title", product.Title),
		slog.Float64("price", product.Price),
	)

	return product, nil
}

// GetByID retrieves a product by its ID.
// Returns apperror.ErrNotFound if the product doesn't exist.
func (s *ProductService) GetByID(ctx context.Context, id string) (*model.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "product ID is required")
	}

	return s.repo.GetByID(ctx, id)
}

// List returns the whole catalog.
func (s *ProductService) List(ctx context.Context) ([]model.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list products", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing products: %w", err)
	}
	return products, nil
}

// Update replaces all of a product's mutable fields with the given values.
// Unlike user edits, a product update is wholesale: the admin form always
// submits every field, so there is no merge.
func (s *ProductService) Update(ctx context.Context, id, title, description string, price float64, image string) (*model.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "product ID is required")
	}

	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)

	if err := validateProductFields(title, description, price); err != nil {
		return nil, err
	}

	// Fetch first so the returned product keeps its immutable fields
	// (CreatedAt) and so "not found" surfaces before the write.
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Title = title
	product.Description = description
	product.Price = price
	product.Image = strings.TrimSpace(image)

	if err := s.repo.Update(ctx, product); err != nil {
		s.logger.Error("failed to update product",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating product: %w", err)
	}

	s.logger.Info("product updated",
		slog.String("id", product.ID),
		slog.String("title", product.Title),
	)

	return product, nil
}

// Delete removes a product by its ID. Existing orders referencing it keep
// their productId — order history is never rewritten.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "product ID is required")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("product deleted", slog.String("id", id))
	return nil
}
