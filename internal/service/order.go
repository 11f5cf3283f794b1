package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/bazario/bazario/internal/domain"
	"github.com/bazario/bazario/internal/repository"
)

// orderService implements domain.OrderService.
type orderService struct {
	repo   repository.Querier
	logger zerolog.Logger
}

// NewOrderService creates a new domain.OrderService instance.
func NewOrderService(repo repository.Querier, logger zerolog.Logger) domain.OrderService {
	return &orderService{repo: repo, logger: logger}
}

func (s *orderService) GetOrder(ctx context.Context, auth domain.AuthContext, orderID string) (*domain.Order, error) {
	if err := auth.RequireUser(); err != nil {
		return nil, err
	}
	order, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, orDomainErr(err, domain.ErrOrderNotFound)
	}
	// Someone else's order reads the same as a missing one.
	if order.UserID != auth.UserID {
		return nil, domain.ErrOrderNotFound
	}
	return &order, nil
}

// sellerStore verifies the seller role and ownership of the store.
func (s *orderService) sellerStore(ctx context.Context, auth domain.AuthContext, storeID string) (domain.Store, error) {
	if err := auth.RequireSeller(); err != nil {
		return domain.Store{}, err
	}
	store, err := s.repo.GetStoreByID(ctx, storeID)
	if err != nil {
		return domain.Store{}, orDomainErr(err, domain.ErrStoreNotFound)
	}
	if store.OwnerID != auth.UserID {
		return domain.Store{}, ErrNotStoreOwner
	}
	return store, nil
}

func (s *orderService) UpdateGroupStatus(ctx context.Context, auth domain.AuthContext, storeID, groupID string, status domain.OrderStatus) (domain.OrderStatus, error) {
	const op = "order.updateGroupStatus"

	if _, err := s.sellerStore(ctx, auth, storeID); err != nil {
		return "", err
	}
	if !status.Valid() {
		return "", domain.Invalid(op, "Unknown order status.")
	}

	group, err := s.repo.GetOrderGroup(ctx, groupID, storeID)
	if err != nil {
		return "", orDomainErr(err, domain.ErrOrderGroupNotFound)
	}
	if err := s.repo.UpdateOrderGroupStatus(ctx, group.ID, status); err != nil {
		return "", orDomainErr(err, domain.ErrOrderGroupNotFound)
	}

	s.logger.Info().
		Str("order_group_id", group.ID).
		Str("store_id", storeID).
		Str("status", string(status)).
		Msg("order group status updated")

	return status, nil
}

func (s *orderService) UpdateItemStatus(ctx context.Context, auth domain.AuthContext, storeID, itemID string, status domain.OrderStatus) (domain.OrderStatus, error) {
	const op = "order.updateItemStatus"

	if _, err := s.sellerStore(ctx, auth, storeID); err != nil {
		return "", err
	}
	if !status.Valid() {
		return "", domain.Invalid(op, "Unknown order status.")
	}

	item, err := s.repo.GetOrderItem(ctx, itemID)
	if err != nil {
		return "", orDomainErr(err, domain.ErrOrderItemNotFound)
	}
	// The item must sit in a group belonging to the seller's store.
	if _, err := s.repo.GetOrderGroup(ctx, item.OrderGroupID, storeID); err != nil {
		return "", orDomainErr(err, domain.ErrOrderItemNotFound)
	}
	if err := s.repo.UpdateOrderItemStatus(ctx, item.ID, status); err != nil {
		return "", orDomainErr(err, domain.ErrOrderItemNotFound)
	}

	s.logger.Info().
		Str("order_item_id", item.ID).
		Str("store_id", storeID).
		Str("status", string(status)).
		Msg("order item status updated")

	return status, nil
}
