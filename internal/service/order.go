package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/HerosSMP/Heros-shop.de/internal/apperror"
	"github.com/HerosSMP/Heros-shop.de/internal/model"
	"github.com/HerosSMP/Heros-shop.de/internal/repository"
)

// emailPattern is the same loose shape check the storefront form applies:
// something, an @, something, a dot, something. Real validation happens when
// the admin actually mails the customer.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// OrderService handles the voucher checkout and the admin order queue.
type OrderService struct {
	repo   repository.OrderRepository
	logger *slog.Logger
}

func NewOrderService(repo repository.OrderRepository, logger *slog.Logger) *OrderService {
	return &OrderService{
		repo:   repo,
		logger: logger,
	}
}

// Create validates and places a new order. The order always starts in
// pending status, whatever the caller sent.
//
// productID is required but deliberately NOT checked against the catalog —
// an order placed moments after its product was deleted is still accepted,
// and the admin sorts it out by hand. The paysafecard code is an unverified
// free-text voucher; the admin redeems it manually before completing the
// order.
func (s *OrderService) Create(ctx context.Context, productID, email, discordName, paysafecardCode string) (*model.Order, error) {
	productID = strings.TrimSpace(productID)
	email = strings.TrimSpace(email)
	discordName = strings.TrimSpace(discordName)
	paysafecardCode = strings.TrimSpace(paysafecardCode)

	if productID == "" {
		return nil, apperror.ValidationFailed("productId", "product ID is required")
	}
	if email == "" {
		return nil, apperror.ValidationFailed("email", "email is required")
	}
	if !emailPattern.MatchString(email) {
		return nil, apperror.ValidationFailed("email", "a valid email address is required")
	}
	if discordName == "" {
		return nil, apperror.ValidationFailed("discordName", "Discord name is required")
	}
	if paysafecardCode == "" {
		return nil, apperror.ValidationFailed("paysafecardCode", "paysafecard code is required")
	}

	order := &model.Order{
		ProductID:       productID,
		Email:           email,
		DiscordName:     discordName,
		PaysafecardCode: paysafecardCode,
	}

	if err := s.repo.Create(ctx, order); err != nil {
		s.logger.Error("failed to create order",
			slog.String("productID", productID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating order: %w", err)
	}

	s.logger.Info("order placed",
		slog.String("id", order.ID),
		slog.String("productID", order.ProductID),
		slog.String("discordName", order.DiscordName),
	)

	return order, nil
}

// GetByID retrieves an order by its ID.
func (s *OrderService) GetByID(ctx context.Context, id string) (*model.Order, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "order ID is required")
	}

	return s.repo.GetByID(ctx, id)
}

// List returns all orders, newest first.
func (s *OrderService) List(ctx context.Context) ([]model.Order, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list orders", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus sets an order's status. The VALUE is validated (only the four
// known statuses are accepted); the TRANSITION is not — any status is
// reachable from any other.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "order ID is required")
	}
	if !status.Valid() {
		return apperror.ValidationFailed("status",
			fmt.Sprintf("unknown order status %q", status))
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	s.logger.Info("order status updated",
		slog.String("id", id),
		slog.String("status", string(status)),
	)
	return nil
}

// Delete removes an order by its ID.
func (s *OrderService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "order ID is required")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("order deleted", slog.String("id", id))
	return nil
}

// DeleteLast removes the newest order. Returns apperror.ErrNotFound when
// there are no orders to remove.
func (s *OrderService) DeleteLast(ctx context.Context) error {
	id, err := s.repo.DeleteLast(ctx)
	if err != nil {
		return err
	}

	s.logger.Info("latest order deleted", slog.String("id", id))
	return nil
}
