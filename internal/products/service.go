package products

import (
	"context"
	"strings"
	"time"

	"github.com/pricewatch/pricewatch-bff/internal/tracker"
	"github.com/pricewatch/pricewatch-bff/pkg/auth"
	"github.com/pricewatch/pricewatch-bff/pkg/enums"
	pkgerrors "github.com/pricewatch/pricewatch-bff/pkg/errors"
	"github.com/pricewatch/pricewatch-bff/pkg/format"
	"github.com/pricewatch/pricewatch-bff/pkg/logger"
)

// Gateway is the tracker backend surface the service consumes.
// *tracker.Client satisfies it.
type Gateway interface {
	ListProducts(ctx context.Context, userID string) ([]tracker.RawProduct, error)
	GetProduct(ctx context.Context, productID, userID string) (tracker.RawProduct, error)
	GetPriceHistory(ctx context.Context, productID string, limit int) ([]tracker.HistoryPoint, error)
	AddProduct(ctx context.Context, payload tracker.AddProductPayload) (tracker.RawProduct, error)
	UpdateTargetPrice(ctx context.Context, productID, userID string, payload tracker.UpdateTargetPricePayload) (tracker.RawProduct, error)
	DeleteProduct(ctx context.Context, productID, userID string) error
}

// ServiceParams groups dependencies for the products service.
type ServiceParams struct {
	Gateway  Gateway
	Identity auth.Resolver
	Logger   *logger.Logger
	Now      func() time.Time
}

// Service exposes the product tracking operations behind the frontend API.
type Service interface {
	ListProducts(ctx context.Context) ([]ProductView, error)
	GetProduct(ctx context.Context, productID string) (ProductView, error)
	GetPriceHistory(ctx context.Context, productID string, rng enums.HistoryRange, limit int) (PriceHistoryView, error)
	AddProduct(ctx context.Context, input CreateProductInput) (Product, error)
	UpdateTargetPrice(ctx context.Context, productID string, input UpdateTargetPriceInput) (Product, error)
	DeleteProduct(ctx context.Context, productID string) error
}

type service struct {
	gateway  Gateway
	identity auth.Resolver
	logg     *logger.Logger
	now      func() time.Time
}

// NewService builds a products service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Gateway == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "tracker gateway is required")
	}
	if params.Identity == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "identity resolver is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		gateway:  params.Gateway,
		identity: params.Identity,
		logg:     params.Logger,
		now:      now,
	}, nil
}

// ListProducts fetches and normalizes the caller's tracked products.
func (s *service) ListProducts(ctx context.Context) ([]ProductView, error) {
	identity, err := s.identity.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	raws, err := s.gateway.ListProducts(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}

	mapped, err := MapBackendProducts(raws)
	if err != nil {
		return nil, err
	}

	views := make([]ProductView, 0, len(mapped))
	for _, product := range mapped {
		views = append(views, s.cardView(product))
	}
	return views, nil
}

// GetProduct fetches one product with summary, prediction and insight.
func (s *service) GetProduct(ctx context.Context, productID string) (ProductView, error) {
	identity, err := s.identity.Resolve(ctx)
	if err != nil {
		return ProductView{}, err
	}
	if err := requireProductID(productID); err != nil {
		return ProductView{}, err
	}

	raw, err := s.gateway.GetProduct(ctx, productID, identity.UserID)
	if err != nil {
		return ProductView{}, err
	}

	product, err := MapBackendProduct(raw)
	if err != nil {
		return ProductView{}, err
	}

	view := s.cardView(product)
	if product.LastCheckedAt != nil {
		view.LastCheckedDisplay = format.LongDate(*product.LastCheckedAt)
	}
	return view, nil
}

// cardView renders the display strings a product card needs; the detail
// view replaces the relative timestamp with the full date.
func (s *service) cardView(product Product) ProductView {
	view := ProductView{
		Product:             product,
		DisplayName:         product.DisplayName(),
		CurrentPriceDisplay: format.CurrencyPtr(product.CurrentPrice),
		Insight:             Classify(product),
	}
	if product.LastCheckedAt != nil {
		view.LastCheckedDisplay = format.RelativeTime(*product.LastCheckedAt, s.now())
	}
	return view
}

// GetPriceHistory returns the filtered chart series for a product.
//
// History is supplementary to the primary product view: fetch failures
// degrade to an empty series with a warning instead of propagating, unlike
// the CRUD operations.
func (s *service) GetPriceHistory(ctx context.Context, productID string, rng enums.HistoryRange, limit int) (PriceHistoryView, error) {
	if _, err := s.identity.Resolve(ctx); err != nil {
		return PriceHistoryView{}, err
	}
	if err := requireProductID(productID); err != nil {
		return PriceHistoryView{}, err
	}
	if !rng.IsValid() {
		rng = enums.HistoryRangeAll
	}

	points, err := s.gateway.GetPriceHistory(ctx, productID, limit)
	if err != nil {
		if s.logg != nil {
			ctx = s.logg.WithFields(ctx, map[string]any{
				"product_id": productID,
				"error":      err.Error(),
			})
			s.logg.Warn(ctx, "price history fetch failed, serving empty series")
		}
		points = nil
	}

	filtered := FilterRange(MapHistoryPoints(points), rng, s.now())
	return PriceHistoryView{
		ProductID: productID,
		Range:     rng,
		Points:    filtered,
		Count:     len(filtered),
		Trend:     Trend(filtered),
	}, nil
}

// AddProduct validates the form input and registers the product upstream.
func (s *service) AddProduct(ctx context.Context, input CreateProductInput) (Product, error) {
	if err := input.Validate(); err != nil {
		return Product{}, err
	}

	identity, err := s.identity.Resolve(ctx)
	if err != nil {
		return Product{}, err
	}

	raw, err := s.gateway.AddProduct(ctx, input.BackendPayload(identity.UserID))
	if err != nil {
		return Product{}, err
	}
	return MapBackendProduct(raw)
}

// UpdateTargetPrice changes the target price; it is the only mutable field.
func (s *service) UpdateTargetPrice(ctx context.Context, productID string, input UpdateTargetPriceInput) (Product, error) {
	if err := input.Validate(); err != nil {
		return Product{}, err
	}
	if err := requireProductID(productID); err != nil {
		return Product{}, err
	}

	identity, err := s.identity.Resolve(ctx)
	if err != nil {
		return Product{}, err
	}

	raw, err := s.gateway.UpdateTargetPrice(ctx, productID, identity.UserID, input.BackendPayload())
	if err != nil {
		return Product{}, err
	}
	return MapBackendProduct(raw)
}

// DeleteProduct stops tracking a product.
func (s *service) DeleteProduct(ctx context.Context, productID string) error {
	if err := requireProductID(productID); err != nil {
		return err
	}

	identity, err := s.identity.Resolve(ctx)
	if err != nil {
		return err
	}
	return s.gateway.DeleteProduct(ctx, productID, identity.UserID)
}

func requireProductID(productID string) error {
	if strings.TrimSpace(productID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	return nil
}
