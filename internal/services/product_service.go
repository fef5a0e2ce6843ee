package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"katalog/internal/models"
	"katalog/internal/repositories"
)

// ErrProductNotFound is returned when no product has the requested ID.
var ErrProductNotFound = repositories.ErrNotFound

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
	logger    *slog.Logger
	now       func() time.Time
}

// NewProductService creates a new ProductService. publisher may be nil, in
// which case no lifecycle events are sent.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
		logger:    slog.Default().With("component", "product_service"),
		now:       time.Now,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateProduct validates the submitted fields and stores a new product.
// The store assigns the ID; createdAt is the current time.
func (s *ProductService) CreateProduct(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	product := &models.Product{
		CreatedAt: s.now().UTC().Truncate(time.Millisecond),
	}
	in.Apply(product)

	if err := s.validateNew(in, product); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	s.publish(ctx, EventProductCreated, product)
	return product, nil
}

// UpdateProduct changes the submitted fields of an existing product.
// The ID and createdAt are never modified.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, in models.ProductInput) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	in.Apply(product)
	if err := ValidateProduct(product); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, product); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update product %s: %w", id, err)
	}
	s.publish(ctx, EventProductUpdated, product)
	return product, nil
}

// DeleteProduct deletes a product by its ID and returns it.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, EventProductDeleted, product)
	return product, nil
}

func (s *ProductService) validateNew(in models.ProductInput, product *models.Product) error {
	missing := validateCreateInput(in)
	err := ValidateProduct(product)
	if missing == nil {
		return err
	}

	var verr *ValidationError
	if errors.As(err, &verr) {
		for field, msg := range verr.Fields {
			if _, ok := missing.Fields[field]; !ok {
				missing.Fields[field] = msg
			}
		}
	}
	return missing
}

// publish sends a lifecycle event. Failures are logged and never returned.
func (s *ProductService) publish(ctx context.Context, eventType string, product *models.Product) {
	if s.publisher == nil {
		return
	}

	body, err := json.Marshal(ProductEvent{
		Type:       eventType,
		Product:    *product,
		OccurredAt: s.now().UTC(),
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to marshal product event", "type", eventType, "error", err)
		return
	}

	if err := s.publisher.Publish(ctx, eventType, body); err != nil {
		s.logger.WarnContext(ctx, "failed to publish product event",
			"type", eventType, "product_id", product.ID, "error", err)
		return
	}
	s.logger.DebugContext(ctx, "published product event", "type", eventType, "product_id", product.ID)
}
