// Package repository is the persistence layer: a pgx-backed implementation
// of the Querier interface the services depend on. Services never see SQL;
// they see typed find/create/update/delete operations plus a transaction
// wrapper for multi-step writes.
package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bazario/bazario/internal/domain"
)

// ErrNotFound is returned when a lookup matches no rows. Services translate
// it into the appropriate domain error.
var ErrNotFound = errors.New("repository: not found")

// DBTX is the subset of pgx operations shared by pools and transactions.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PricingProduct is the joined view a single cart line needs for
// revalidation: the product, its store, the selected variant and size, and
// the optional free-shipping configuration.
type PricingProduct struct {
	Product      domain.Product
	Store        domain.Store
	Variant      domain.Variant
	Size         domain.Size
	FreeShipping *domain.FreeShipping
}

// Querier is the persistence contract for the pricing/checkout core.
type Querier interface {
	// WithTx runs fn against a transaction-scoped Querier. fn returning an
	// error rolls everything back.
	WithTx(ctx context.Context, fn func(Querier) error) error

	// Countries
	GetCountryByID(ctx context.Context, id string) (domain.Country, error)
	GetCountryByNameAndCode(ctx context.Context, name, code string) (domain.Country, error)

	// Stores and shipping rates
	GetStoreByID(ctx context.Context, id string) (domain.Store, error)
	GetStoreBySlug(ctx context.Context, slug string) (domain.Store, error)
	GetShippingRate(ctx context.Context, storeID, countryID string) (domain.ShippingRate, error)

	// Catalog
	GetPricingProduct(ctx context.Context, productID, variantID, sizeID string) (PricingProduct, error)

	// Carts
	GetCartByID(ctx context.Context, id string) (domain.Cart, error)
	GetCartByUserID(ctx context.Context, userID string) (domain.Cart, error)
	DeleteCartByUserID(ctx context.Context, userID string) error
	CreateCart(ctx context.Context, cart domain.Cart) (domain.Cart, error)
	CreateCartItem(ctx context.Context, item domain.CartItem) (domain.CartItem, error)
	UpdateCartItemPricing(ctx context.Context, item domain.CartItem) error
	UpdateCartTotals(ctx context.Context, cartID string, subTotal, shippingFees, total float64) error
	SetCartCoupon(ctx context.Context, cartID, couponID string, total float64) error
	ClearCartCoupon(ctx context.Context, cartID string, total float64) error

	// Coupons
	GetCouponByID(ctx context.Context, id string) (domain.Coupon, error)
	GetCouponByCode(ctx context.Context, code string) (domain.Coupon, error)
	FindConflictingCoupon(ctx context.Context, storeID, code, excludeID string) (domain.Coupon, error)
	UpsertCoupon(ctx context.Context, coupon domain.Coupon) (domain.Coupon, error)
	ListCouponsByStore(ctx context.Context, storeID string) ([]domain.Coupon, error)
	DeleteCoupon(ctx context.Context, couponID, storeID string) error

	// Orders
	CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error)
	CreateOrderGroup(ctx context.Context, group domain.OrderGroup) (domain.OrderGroup, error)
	CreateOrderItem(ctx context.Context, item domain.OrderItem) (domain.OrderItem, error)
	UpdateOrderTotals(ctx context.Context, orderID string, subTotal, shippingFees, total float64) error
	GetOrder(ctx context.Context, orderID string) (domain.Order, error)
	GetOrderGroup(ctx context.Context, groupID, storeID string) (domain.OrderGroup, error)
	UpdateOrderGroupStatus(ctx context.Context, groupID string, status domain.OrderStatus) error
	GetOrderItem(ctx context.Context, itemID string) (domain.OrderItem, error)
	UpdateOrderItemStatus(ctx context.Context, itemID string, status domain.OrderStatus) error
	UpdateOrderPayment(ctx context.Context, orderID string, status domain.PaymentStatus, method domain.PaymentMethod) error

	// Payments
	UpsertPaymentDetails(ctx context.Context, details domain.PaymentDetails) (domain.PaymentDetails, error)
}

// Repository implements Querier over a pgx pool or transaction.
type Repository struct {
	db   DBTX
	pool *pgxpool.Pool
}

// New creates a Repository backed by a connection pool.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{db: pool, pool: pool}
}

// WithTx runs fn inside a database transaction. Nested calls reuse the
// enclosing transaction.
func (r *Repository) WithTx(ctx context.Context, fn func(Querier) error) error {
	if r.pool == nil {
		return fn(r)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(&Repository{db: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// notFound converts pgx.ErrNoRows into the package sentinel.
func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
