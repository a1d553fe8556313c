package services

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/spanner"
	"github.com/redis/go-redis/v9"
	grpchealth "google.golang.org/grpc/health"

	"github.com/light-bringer/storefront-service/internal/adapters/commerceapi"
	"github.com/light-bringer/storefront-service/internal/app/cart/queries/get_cart"
	"github.com/light-bringer/storefront-service/internal/app/cart/repo"
	"github.com/light-bringer/storefront-service/internal/app/cart/usecases/add_item"
	"github.com/light-bringer/storefront-service/internal/app/cart/usecases/clear_cart"
	"github.com/light-bringer/storefront-service/internal/app/cart/usecases/persist"
	"github.com/light-bringer/storefront-service/internal/app/cart/usecases/remove_item"
	"github.com/light-bringer/storefront-service/internal/app/cart/usecases/update_item"
	"github.com/light-bringer/storefront-service/internal/app/catalog/feed"
	"github.com/light-bringer/storefront-service/internal/app/catalog/queries/get_facets"
	"github.com/light-bringer/storefront-service/internal/app/catalog/queries/get_product"
	"github.com/light-bringer/storefront-service/internal/app/catalog/queries/list_products"
	"github.com/light-bringer/storefront-service/internal/app/catalog/queries/search_products"
	"github.com/light-bringer/storefront-service/internal/app/checkout/reconciler"
	"github.com/light-bringer/storefront-service/internal/app/checkout/usecases/confirm_changes"
	"github.com/light-bringer/storefront-service/internal/app/checkout/usecases/place_order"
	"github.com/light-bringer/storefront-service/internal/app/checkout/usecases/reconcile_cart"
	"github.com/light-bringer/storefront-service/internal/app/checkout/usecases/start_payment"
	"github.com/light-bringer/storefront-service/internal/app/coupon/queries/list_my_coupons"
	"github.com/light-bringer/storefront-service/internal/app/coupon/usecases/auto_apply"
	"github.com/light-bringer/storefront-service/internal/app/coupon/usecases/remove_coupon"
	"github.com/light-bringer/storefront-service/internal/app/coupon/usecases/select_coupon"
	"github.com/light-bringer/storefront-service/internal/app/coupon/usecases/validate_code"
	"github.com/light-bringer/storefront-service/internal/config"
	"github.com/light-bringer/storefront-service/internal/messaging"
	"github.com/light-bringer/storefront-service/internal/messaging/kafka"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
	"github.com/light-bringer/storefront-service/internal/pkg/committer"
	"github.com/light-bringer/storefront-service/internal/transport/grpc/health"
	httphandler "github.com/light-bringer/storefront-service/internal/transport/http"
)

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	SpannerClient *spanner.Client
	RedisClient   *redis.Client
	Publisher     messaging.Publisher
	Commerce      *commerceapi.Client
	Registry      *feed.Registry
	Health        *health.Checker
	HealthServer  *grpchealth.Server
	Handlers      httphandler.Handlers
}

// NewServiceOptions creates and wires up all application dependencies.
func NewServiceOptions(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*ServiceOptions, error) {
	// 1. Initialize Spanner client
	spannerClient, err := spanner.NewClient(ctx, cfg.Spanner.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create Spanner client: %w", err)
	}

	// 2. Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// 3. Event publisher: Kafka when brokers are configured, the log otherwise
	var publisher messaging.Publisher
	if len(cfg.Kafka.Brokers) > 0 {
		publisher = kafka.NewBroker(cfg.Kafka.Brokers, logger)
	} else {
		logger.Warn("no kafka brokers configured, events are only logged")
		publisher = messaging.NewLogPublisher(logger)
	}

	// 4. Create infrastructure components
	clk := clock.NewRealClock()
	comm := committer.NewCommitter(spannerClient)

	commerce, err := commerceapi.NewClient(commerceapi.Config{
		BaseURL:     cfg.Commerce.BaseURL,
		APIPrefix:   cfg.Commerce.APIPrefix,
		Timeout:     cfg.Commerce.Timeout,
		DedupWindow: cfg.Commerce.DedupWindow,
		RateLimit:   cfg.Commerce.RateLimit,
		RateBurst:   cfg.Commerce.RateBurst,
	}, nil, clk, logger)
	if err != nil {
		spannerClient.Close()
		_ = redisClient.Close()
		_ = publisher.Close()
		return nil, fmt.Errorf("failed to create commerce api client: %w", err)
	}

	// 5. Create repositories
	cartRepo := repo.NewCartRepo(spannerClient, clk)
	cartCache := repo.NewRedisCache(redisClient, cfg.Redis.CartTTL)
	cartStore := repo.NewStore(cartRepo, cartCache, comm, clk, logger)
	mutator := persist.NewMutator(cartStore, publisher, cfg.Kafka.Topic, clk, logger)

	registry := feed.NewRegistry(commerce, feed.Options{
		Limit:    cfg.Feed.PageSize,
		Interval: cfg.Feed.ThrottleWindow,
		Clock:    clk,
		Logger:   logger,
	}, cfg.Feed.SessionIdleTTL)
	rec := reconciler.New(commerce, cfg.Feed.ReconcileFanout, logger)

	// 6. Create command use cases (write operations)
	addItem := add_item.NewInteractor(commerce, mutator)
	updateItem := update_item.NewInteractor(commerce, mutator)
	removeItem := remove_item.NewInteractor(mutator)
	clearCart := clear_cart.NewInteractor(mutator)

	validateCode := validate_code.NewInteractor(commerce, mutator, logger)
	selectCoupon := select_coupon.NewInteractor(commerce, mutator, clk)
	autoApply := auto_apply.NewInteractor(commerce, mutator)
	removeCoupon := remove_coupon.NewInteractor(mutator)

	reconcileCart := reconcile_cart.NewInteractor(cartStore, rec)
	confirmChanges := confirm_changes.NewInteractor(mutator, rec)
	placeOrder := place_order.NewInteractor(place_order.Deps{
		Mutator:    mutator,
		Reconciler: rec,
		Orders:     commerce,
		Coupons:    commerce,
		Publisher:  publisher,
		Topic:      cfg.Kafka.Topic,
		Clock:      clk,
		Logger:     logger,
	})
	startPayment := start_payment.NewInteractor(commerce)

	// 7. Create query use cases (read operations)
	listProducts := list_products.NewQuery(commerce, cfg.Feed.PageSize)
	getFacets := get_facets.NewQuery(commerce)
	searchProducts := search_products.NewQuery(commerce)
	getProduct := get_product.NewQuery(commerce)
	getCart := get_cart.NewQuery(cartStore)
	listMyCoupons := list_my_coupons.NewQuery(commerce, cartStore, clk)

	// 8. Health checks for the gRPC health service
	healthServer := grpchealth.NewServer()
	checker := health.NewChecker(healthServer, clk, logger)
	checker.Register("redis", cartCache)
	checker.Register("spanner", health.PingFunc(func(ctx context.Context) error {
		return pingSpanner(ctx, spannerClient)
	}))

	// 9. Create HTTP handlers
	handlers := httphandler.Handlers{
		Catalog:  httphandler.NewCatalogHandler(listProducts, getFacets, searchProducts, getProduct),
		Browse:   httphandler.NewBrowseHandler(registry),
		Cart:     httphandler.NewCartHandler(getCart, addItem, updateItem, removeItem, clearCart),
		Coupon:   httphandler.NewCouponHandler(validateCode, selectCoupon, autoApply, removeCoupon, listMyCoupons),
		Checkout: httphandler.NewCheckoutHandler(reconcileCart, confirmChanges, placeOrder, startPayment),
		Session:  httphandler.NewSessionHandler(commerce, registry),
	}

	return &ServiceOptions{
		SpannerClient: spannerClient,
		RedisClient:   redisClient,
		Publisher:     publisher,
		Commerce:      commerce,
		Registry:      registry,
		Health:        checker,
		HealthServer:  healthServer,
		Handlers:      handlers,
	}, nil
}

func pingSpanner(ctx context.Context, client *spanner.Client) error {
	iter := client.Single().Query(ctx, spanner.Statement{SQL: "SELECT 1"})
	defer iter.Stop()
	_, err := iter.Next()
	return err
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.Registry != nil {
		s.Registry.CloseAll()
	}
	if s.Publisher != nil {
		if err := s.Publisher.Close(); err != nil {
			slog.Error("failed to close publisher", "error", err)
		}
	}
	if s.RedisClient != nil {
		if err := s.RedisClient.Close(); err != nil {
			slog.Error("failed to close redis client", "error", err)
		}
	}
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
}
