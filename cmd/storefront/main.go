// Command storefront serves the subscription storefront.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/storefront/pkg/backend"
	"github.com/dmitrymomot/storefront/pkg/broadcast"
	"github.com/dmitrymomot/storefront/pkg/broker"
	"github.com/dmitrymomot/storefront/pkg/catalog"
	"github.com/dmitrymomot/storefront/pkg/checkout"
	"github.com/dmitrymomot/storefront/pkg/config"
	"github.com/dmitrymomot/storefront/pkg/cookie"
	"github.com/dmitrymomot/storefront/pkg/httpserver"
	"github.com/dmitrymomot/storefront/pkg/identity"
	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/pkg/pricing"
	"github.com/dmitrymomot/storefront/pkg/ratelimiter"
	"github.com/dmitrymomot/storefront/pkg/redis"
	"github.com/dmitrymomot/storefront/pkg/requestid"
	"github.com/dmitrymomot/storefront/svc/storefront"
)

const sweepInterval = time.Minute

func main() {
	cfg := config.MustLoad[appConfig]()

	log := logger.New(
		logger.WithEnvironment(cfg.Env, cfg.Name),
		logger.WithContextExtractors(requestid.LogExtractor, storefront.LogExtractor),
	)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("storefront stopped", logger.Error(err))
		os.Exit(1)
	}
	log.Info("storefront stopped")
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	mode, _ := cfg.identityMode()

	rules := pricing.DefaultFeatureRules()
	if cfg.FeatureRulesFile != "" {
		var err error
		if rules, err = pricing.LoadFeatureRules(cfg.FeatureRulesFile); err != nil {
			return err
		}
	}
	formatter, err := pricing.NewFormatter(cfg.Locale)
	if err != nil {
		return err
	}
	cookies, err := cookie.NewFromConfig(cfg.Cookie)
	if err != nil {
		return err
	}

	api := backend.NewFromConfig(cfg.Backend)
	if cfg.Backend.UseMock {
		log.Warn("using the in-memory mock backend")
	}
	payments := broker.New(api, log)

	updates := broadcast.New[catalog.State]()
	defer updates.Close()

	plans := catalog.NewLoader(api,
		catalog.WithNormalizer(pricing.NewNormalizer(rules)),
		catalog.WithLogger(log),
		catalog.WithObserver(updates.Publish),
	)

	g, ctx := errgroup.WithContext(ctx)

	st, err := newStores(ctx, cfg, log, g)
	if err != nil {
		return err
	}
	defer st.close()

	var limiter ratelimiter.Limiter
	if cfg.RateLimitEnabled {
		if limiter, err = ratelimiter.NewBucket(st.limits, cfg.RateLimit); err != nil {
			return err
		}
	}

	flow := checkout.NewService(st.checkout, plans, payments,
		checkout.WithLogger(log),
		checkout.WithStaleAfter(cfg.PendingStaleAfter),
	)

	svc, err := storefront.New(cfg.Storefront, storefront.Deps{
		Catalog:   plans,
		Updates:   updates,
		Checkout:  flow,
		Backend:   api,
		Canceler:  payments,
		Identity:  identity.NewResolver(cookies, identity.WithMode(mode), identity.WithLogger(log)),
		Cookies:   cookies,
		Formatter: formatter,
		Limiter:   limiter,
		Logger:    log,
		Checks:    st.checks,
	})
	if err != nil {
		return err
	}

	server := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))

	g.Go(func() error { return plans.Run(ctx, cfg.CatalogRefresh) })
	g.Go(func() error { return server.Run(ctx, svc.Handler()) })

	return g.Wait()
}

type stores struct {
	checkout checkout.Store
	limits   ratelimiter.Store
	checks   []httpserver.Check
	close    func()
}

// newStores picks the checkout and rate limit stores. Memory store sweepers join g.
func newStores(ctx context.Context, cfg appConfig, log *slog.Logger, g *errgroup.Group) (stores, error) {
	if cfg.CheckoutStore == storeRedis {
		client, err := redis.Connect(ctx, cfg.Redis, log)
		if err != nil {
			return stores{}, err
		}
		return stores{
			checkout: checkout.NewRedisStore(client, cfg.CheckoutStateTTL),
			limits:   ratelimiter.NewRedisStore(client),
			checks:   []httpserver.Check{{Name: "redis", Fn: redis.Healthcheck(client)}},
			close: func() {
				if err := client.Close(); err != nil {
					log.Warn("closing redis client", logger.Error(err))
				}
			},
		}, nil
	}

	selections := checkout.NewMemoryStore(cfg.CheckoutStateTTL)
	limits := ratelimiter.NewMemoryStore()
	g.Go(func() error { return selections.RunSweeper(ctx, sweepInterval) })
	g.Go(func() error { return limits.RunSweeper(ctx, sweepInterval) })
	return stores{checkout: selections, limits: limits, close: func() {}}, nil
}
