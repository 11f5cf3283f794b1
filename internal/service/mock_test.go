package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/bazario/bazario/internal/domain"
	"github.com/bazario/bazario/internal/repository"
)

// mockQuerier implements repository.Querier for testing. Set a *Func field
// to override a call; unset write operations record into the mock's state,
// unset getters report not-found. WithTx runs fn against the mock itself.
type mockQuerier struct {
	GetCountryByIDFunc          func(ctx context.Context, id string) (domain.Country, error)
	GetCountryByNameAndCodeFunc func(ctx context.Context, name, code string) (domain.Country, error)
	GetStoreByIDFunc            func(ctx context.Context, id string) (domain.Store, error)
	GetStoreBySlugFunc          func(ctx context.Context, slug string) (domain.Store, error)
	GetShippingRateFunc         func(ctx context.Context, storeID, countryID string) (domain.ShippingRate, error)
	GetPricingProductFunc       func(ctx context.Context, productID, variantID, sizeID string) (repository.PricingProduct, error)

	GetCartByIDFunc           func(ctx context.Context, id string) (domain.Cart, error)
	GetCartByUserIDFunc       func(ctx context.Context, userID string) (domain.Cart, error)
	DeleteCartByUserIDFunc    func(ctx context.Context, userID string) error
	UpdateCartItemPricingFunc func(ctx context.Context, item domain.CartItem) error
	UpdateCartTotalsFunc      func(ctx context.Context, cartID string, subTotal, shippingFees, total float64) error
	SetCartCouponFunc         func(ctx context.Context, cartID, couponID string, total float64) error
	ClearCartCouponFunc       func(ctx context.Context, cartID string, total float64) error

	GetCouponByIDFunc         func(ctx context.Context, id string) (domain.Coupon, error)
	GetCouponByCodeFunc       func(ctx context.Context, code string) (domain.Coupon, error)
	FindConflictingCouponFunc func(ctx context.Context, storeID, code, excludeID string) (domain.Coupon, error)
	ListCouponsByStoreFunc    func(ctx context.Context, storeID string) ([]domain.Coupon, error)
	DeleteCouponFunc          func(ctx context.Context, couponID, storeID string) error

	CreateOrderFunc           func(ctx context.Context, order domain.Order) (domain.Order, error)
	GetOrderFunc              func(ctx context.Context, orderID string) (domain.Order, error)
	GetOrderGroupFunc         func(ctx context.Context, groupID, storeID string) (domain.OrderGroup, error)
	GetOrderItemFunc          func(ctx context.Context, itemID string) (domain.OrderItem, error)
	UpdateOrderGroupStatusFunc func(ctx context.Context, groupID string, status domain.OrderStatus) error
	UpdateOrderItemStatusFunc  func(ctx context.Context, itemID string, status domain.OrderStatus) error

	// Recorded state for unset write operations.
	seq            int
	createdCarts   []domain.Cart
	createdItems   []domain.CartItem
	deletedCarts   []string
	upsertedCoupons []domain.Coupon

	orders         []domain.Order
	orderGroups    []domain.OrderGroup
	orderItems     []domain.OrderItem
	paymentDetails []domain.PaymentDetails

	setCoupons     []string
	clearedCoupons []string
	cartTotals     [][3]float64
}

func (m *mockQuerier) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

func (m *mockQuerier) WithTx(ctx context.Context, fn func(repository.Querier) error) error {
	return fn(m)
}

func (m *mockQuerier) GetCountryByID(ctx context.Context, id string) (domain.Country, error) {
	if m.GetCountryByIDFunc != nil {
		return m.GetCountryByIDFunc(ctx, id)
	}
	return domain.Country{}, repository.ErrNotFound
}

func (m *mockQuerier) GetCountryByNameAndCode(ctx context.Context, name, code string) (domain.Country, error) {
	if m.GetCountryByNameAndCodeFunc != nil {
		return m.GetCountryByNameAndCodeFunc(ctx, name, code)
	}
	return domain.Country{}, repository.ErrNotFound
}

func (m *mockQuerier) GetStoreByID(ctx context.Context, id string) (domain.Store, error) {
	if m.GetStoreByIDFunc != nil {
		return m.GetStoreByIDFunc(ctx, id)
	}
	return domain.Store{}, repository.ErrNotFound
}

func (m *mockQuerier) GetStoreBySlug(ctx context.Context, slug string) (domain.Store, error) {
	if m.GetStoreBySlugFunc != nil {
		return m.GetStoreBySlugFunc(ctx, slug)
	}
	return domain.Store{}, repository.ErrNotFound
}

func (m *mockQuerier) GetShippingRate(ctx context.Context, storeID, countryID string) (domain.ShippingRate, error) {
	if m.GetShippingRateFunc != nil {
		return m.GetShippingRateFunc(ctx, storeID, countryID)
	}
	return domain.ShippingRate{}, repository.ErrNotFound
}

func (m *mockQuerier) GetPricingProduct(ctx context.Context, productID, variantID, sizeID string) (repository.PricingProduct, error) {
	if m.GetPricingProductFunc != nil {
		return m.GetPricingProductFunc(ctx, productID, variantID, sizeID)
	}
	return repository.PricingProduct{}, repository.ErrNotFound
}

func (m *mockQuerier) GetCartByID(ctx context.Context, id string) (domain.Cart, error) {
	if m.GetCartByIDFunc != nil {
		return m.GetCartByIDFunc(ctx, id)
	}
	return domain.Cart{}, repository.ErrNotFound
}

func (m *mockQuerier) GetCartByUserID(ctx context.Context, userID string) (domain.Cart, error) {
	if m.GetCartByUserIDFunc != nil {
		return m.GetCartByUserIDFunc(ctx, userID)
	}
	return domain.Cart{}, repository.ErrNotFound
}

func (m *mockQuerier) DeleteCartByUserID(ctx context.Context, userID string) error {
	if m.DeleteCartByUserIDFunc != nil {
		return m.DeleteCartByUserIDFunc(ctx, userID)
	}
	m.deletedCarts = append(m.deletedCarts, userID)
	return nil
}

func (m *mockQuerier) CreateCart(ctx context.Context, cart domain.Cart) (domain.Cart, error) {
	if cart.ID == "" {
		cart.ID = m.nextID("cart")
	}
	m.createdCarts = append(m.createdCarts, cart)
	return cart, nil
}

func (m *mockQuerier) CreateCartItem(ctx context.Context, item domain.CartItem) (domain.CartItem, error) {
	if item.ID == "" {
		item.ID = m.nextID("cart-item")
	}
	m.createdItems = append(m.createdItems, item)
	return item, nil
}

func (m *mockQuerier) UpdateCartItemPricing(ctx context.Context, item domain.CartItem) error {
	if m.UpdateCartItemPricingFunc != nil {
		return m.UpdateCartItemPricingFunc(ctx, item)
	}
	return nil
}

func (m *mockQuerier) UpdateCartTotals(ctx context.Context, cartID string, subTotal, shippingFees, total float64) error {
	if m.UpdateCartTotalsFunc != nil {
		return m.UpdateCartTotalsFunc(ctx, cartID, subTotal, shippingFees, total)
	}
	m.cartTotals = append(m.cartTotals, [3]float64{subTotal, shippingFees, total})
	return nil
}

func (m *mockQuerier) SetCartCoupon(ctx context.Context, cartID, couponID string, total float64) error {
	if m.SetCartCouponFunc != nil {
		return m.SetCartCouponFunc(ctx, cartID, couponID, total)
	}
	m.setCoupons = append(m.setCoupons, couponID)
	return nil
}

func (m *mockQuerier) ClearCartCoupon(ctx context.Context, cartID string, total float64) error {
	if m.ClearCartCouponFunc != nil {
		return m.ClearCartCouponFunc(ctx, cartID, total)
	}
	m.clearedCoupons = append(m.clearedCoupons, cartID)
	return nil
}

func (m *mockQuerier) GetCouponByID(ctx context.Context, id string) (domain.Coupon, error) {
	if m.GetCouponByIDFunc != nil {
		return m.GetCouponByIDFunc(ctx, id)
	}
	return domain.Coupon{}, repository.ErrNotFound
}

func (m *mockQuerier) GetCouponByCode(ctx context.Context, code string) (domain.Coupon, error) {
	if m.GetCouponByCodeFunc != nil {
		return m.GetCouponByCodeFunc(ctx, code)
	}
	return domain.Coupon{}, repository.ErrNotFound
}

func (m *mockQuerier) FindConflictingCoupon(ctx context.Context, storeID, code, excludeID string) (domain.Coupon, error) {
	if m.FindConflictingCouponFunc != nil {
		return m.FindConflictingCouponFunc(ctx, storeID, code, excludeID)
	}
	return domain.Coupon{}, repository.ErrNotFound
}

func (m *mockQuerier) UpsertCoupon(ctx context.Context, coupon domain.Coupon) (domain.Coupon, error) {
	if coupon.ID == "" {
		coupon.ID = m.nextID("coupon")
	}
	m.upsertedCoupons = append(m.upsertedCoupons, coupon)
	return coupon, nil
}

func (m *mockQuerier) ListCouponsByStore(ctx context.Context, storeID string) ([]domain.Coupon, error) {
	if m.ListCouponsByStoreFunc != nil {
		return m.ListCouponsByStoreFunc(ctx, storeID)
	}
	return nil, nil
}

func (m *mockQuerier) DeleteCoupon(ctx context.Context, couponID, storeID string) error {
	if m.DeleteCouponFunc != nil {
		return m.DeleteCouponFunc(ctx, couponID, storeID)
	}
	return nil
}

func (m *mockQuerier) CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	if m.CreateOrderFunc != nil {
		return m.CreateOrderFunc(ctx, order)
	}
	if order.ID == "" {
		order.ID = m.nextID("order")
	}
	m.orders = append(m.orders, order)
	return order, nil
}

func (m *mockQuerier) CreateOrderGroup(ctx context.Context, group domain.OrderGroup) (domain.OrderGroup, error) {
	if group.ID == "" {
		group.ID = m.nextID("group")
	}
	m.orderGroups = append(m.orderGroups, group)
	return group, nil
}

func (m *mockQuerier) CreateOrderItem(ctx context.Context, item domain.OrderItem) (domain.OrderItem, error) {
	if item.ID == "" {
		item.ID = m.nextID("order-item")
	}
	m.orderItems = append(m.orderItems, item)
	return item, nil
}

func (m *mockQuerier) UpdateOrderTotals(ctx context.Context, orderID string, subTotal, shippingFees, total float64) error {
	for i := range m.orders {
		if m.orders[i].ID == orderID {
			m.orders[i].SubTotal = subTotal
			m.orders[i].ShippingFees = shippingFees
			m.orders[i].Total = total
			return nil
		}
	}
	return repository.ErrNotFound
}

// GetOrder assembles the order from recorded creates, groups sorted by
// total descending, the same shape the real repository returns.
func (m *mockQuerier) GetOrder(ctx context.Context, orderID string) (domain.Order, error) {
	if m.GetOrderFunc != nil {
		return m.GetOrderFunc(ctx, orderID)
	}
	for _, o := range m.orders {
		if o.ID != orderID {
			continue
		}
		for _, g := range m.orderGroups {
			if g.OrderID != orderID {
				continue
			}
			for _, it := range m.orderItems {
				if it.OrderGroupID == g.ID {
					g.Items = append(g.Items, it)
				}
			}
			o.Groups = append(o.Groups, g)
		}
		sort.SliceStable(o.Groups, func(i, j int) bool {
			return o.Groups[i].Total > o.Groups[j].Total
		})
		return o, nil
	}
	return domain.Order{}, repository.ErrNotFound
}

func (m *mockQuerier) GetOrderGroup(ctx context.Context, groupID, storeID string) (domain.OrderGroup, error) {
	if m.GetOrderGroupFunc != nil {
		return m.GetOrderGroupFunc(ctx, groupID, storeID)
	}
	for _, g := range m.orderGroups {
		if g.ID == groupID && g.StoreID == storeID {
			return g, nil
		}
	}
	return domain.OrderGroup{}, repository.ErrNotFound
}

func (m *mockQuerier) UpdateOrderGroupStatus(ctx context.Context, groupID string, status domain.OrderStatus) error {
	if m.UpdateOrderGroupStatusFunc != nil {
		return m.UpdateOrderGroupStatusFunc(ctx, groupID, status)
	}
	for i := range m.orderGroups {
		if m.orderGroups[i].ID == groupID {
			m.orderGroups[i].Status = status
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *mockQuerier) GetOrderItem(ctx context.Context, itemID string) (domain.OrderItem, error) {
	if m.GetOrderItemFunc != nil {
		return m.GetOrderItemFunc(ctx, itemID)
	}
	for _, it := range m.orderItems {
		if it.ID == itemID {
			return it, nil
		}
	}
	return domain.OrderItem{}, repository.ErrNotFound
}

func (m *mockQuerier) UpdateOrderItemStatus(ctx context.Context, itemID string, status domain.OrderStatus) error {
	if m.UpdateOrderItemStatusFunc != nil {
		return m.UpdateOrderItemStatusFunc(ctx, itemID, status)
	}
	for i := range m.orderItems {
		if m.orderItems[i].ID == itemID {
			m.orderItems[i].Status = status
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *mockQuerier) UpdateOrderPayment(ctx context.Context, orderID string, status domain.PaymentStatus, method domain.PaymentMethod) error {
	for i := range m.orders {
		if m.orders[i].ID == orderID {
			m.orders[i].PaymentStatus = status
			m.orders[i].PaymentMethod = method
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *mockQuerier) UpsertPaymentDetails(ctx context.Context, details domain.PaymentDetails) (domain.PaymentDetails, error) {
	if details.ID == "" {
		details.ID = m.nextID("payment")
	}
	for i := range m.paymentDetails {
		if m.paymentDetails[i].OrderID == details.OrderID {
			m.paymentDetails[i] = details
			return details, nil
		}
	}
	m.paymentDetails = append(m.paymentDetails, details)
	return details, nil
}

var errDatabase = errors.New("database unavailable")
