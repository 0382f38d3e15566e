package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	stripeclient "github.com/yungbote/sportshop-backend/internal/clients/stripe"
	"github.com/yungbote/sportshop-backend/internal/platform/apperr"
	"github.com/yungbote/sportshop-backend/internal/platform/ctxutil"
	"github.com/yungbote/sportshop-backend/internal/platform/logger"
	"github.com/yungbote/sportshop-backend/internal/repos"
	"github.com/yungbote/sportshop-backend/internal/types"
)

type CheckoutItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

type CheckoutRequest struct {
	Items           []CheckoutItem `json:"items"`
	PaymentMethodID string         `json:"payment_method_id"`
	CustomerID      string         `json:"customer_id"`
}

type CheckoutService interface {
	Checkout(ctx context.Context, req CheckoutRequest) (*types.Order, error)
}

type checkoutService struct {
	db          *gorm.DB
	log         *logger.Logger
	productRepo repos.ProductRepo
	orderRepo   repos.OrderRepo
	gateway     stripeclient.Gateway
}

func NewCheckoutService(db *gorm.DB, log *logger.Logger, productRepo repos.ProductRepo, orderRepo repos.OrderRepo, gateway stripeclient.Gateway) CheckoutService {
	serviceLog := log.With("service", "CheckoutService")
	return &checkoutService{
		db:          db,
		log:         serviceLog,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		gateway:     gateway,
	}
}

// Checkout prices the cart from stored products, charges the gateway, and
// only then persists the order. Client-supplied prices are never trusted.
// A declined or failed charge leaves no order row behind.
func (cs *checkoutService) Checkout(ctx context.Context, req CheckoutRequest) (*types.Order, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil {
		return nil, apperr.ErrUnauthenticated
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", apperr.ErrInvalidArgument)
	}

	productIDs := make([]uuid.UUID, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive", apperr.ErrInvalidArgument)
		}
		productIDs = append(productIDs, item.ProductID)
	}

	products, err := cs.productRepo.GetByIDs(ctx, nil, productIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: load products: %v", apperr.ErrStoreUnavailable, err)
	}
	byID := make(map[uuid.UUID]*types.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var totalCents int64
	lineItems := make([]types.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		product, ok := byID[item.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: product %s", apperr.ErrNotFound, item.ProductID)
		}
		totalCents += product.PriceCents * int64(item.Quantity)
		lineItems = append(lineItems, types.OrderItem{
			ProductID:  product.ID,
			Title:      product.Title,
			Quantity:   item.Quantity,
			PriceCents: product.PriceCents,
		})
	}

	orderID := uuid.New()
	result, err := cs.gateway.Charge(ctx, stripeclient.ChargeRequest{
		AmountCents:     totalCents,
		Currency:        "usd",
		CustomerID:      req.CustomerID,
		PaymentMethodID: req.PaymentMethodID,
		Description:     fmt.Sprintf("sportshop order %s", orderID),
		ReferenceID:     orderID.String(),
	})
	if err != nil {
		cs.log.Warn("Charge failed", "order_id", orderID, "error", err)
		return nil, err
	}

	itemsJSON, err := json.Marshal(lineItems)
	if err != nil {
		return nil, fmt.Errorf("marshal line items: %w", err)
	}
	order := &types.Order{
		ID:              orderID,
		UserID:          rd.UserID,
		Items:           datatypes.JSON(itemsJSON),
		TotalCents:      totalCents,
		Currency:        "usd",
		Status:          types.OrderStatusPaid,
		PaymentIntentID: result.PaymentIntentID,
	}
	created, err := cs.orderRepo.Create(ctx, nil, []*types.Order{order})
	if err != nil {
		// The charge went through; surface loudly so it can be reconciled.
		cs.log.Error("Order persist failed after successful charge",
			"order_id", orderID, "payment_intent_id", result.PaymentIntentID, "error", err)
		return nil, fmt.Errorf("%w: persist order: %v", apperr.ErrStoreUnavailable, err)
	}
	return created[0], nil
}
