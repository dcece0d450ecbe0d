package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	cartgrpc "github.com/dwikikusuma/storefront/internal/cart/grpc"
	"github.com/dwikikusuma/storefront/internal/cart/infra/file"
	"github.com/dwikikusuma/storefront/internal/cart/infra/memory"
	cartpg "github.com/dwikikusuma/storefront/internal/cart/infra/postgres"

	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
	"github.com/dwikikusuma/storefront/internal/catalog/infra/noroff"

	checkoutapp "github.com/dwikikusuma/storefront/internal/checkout/app"
	contactapp "github.com/dwikikusuma/storefront/internal/contact/app"
	"github.com/dwikikusuma/storefront/internal/httpapi"

	"github.com/dwikikusuma/storefront/pkg/config"
	"github.com/dwikikusuma/storefront/pkg/logger"
	"github.com/dwikikusuma/storefront/pkg/postgres"
	"github.com/dwikikusuma/storefront/pkg/shutdown"
)

const catalogConcurrency = 8

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{Service: "storefront", Env: cfg.AppEnv, Level: cfg.LogLevel, AddSource: true})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	slots, closeSlots, err := openSlotStore(ctx, cfg, log)
	if err != nil {
		log.Error("slot store open failed", slog.Any("err", err), slog.String("storage", cfg.CartStorage))
		os.Exit(1)
	}
	defer closeSlots()

	// Cart
	cart, err := cartapp.NewStore(ctx, slots,
		cartapp.WithKey(cfg.CartKey),
		cartapp.WithPersistTimeout(cfg.CartPersistTimeout),
		cartapp.WithLogger(log),
	)
	if err != nil {
		log.Error("cart store init failed", slog.Any("err", err))
		os.Exit(1)
	}

	// Catalog
	source := noroff.NewClient(cfg.CatalogBaseURL, noroff.WithTimeout(cfg.CatalogTimeout), noroff.WithLogger(log))
	catalogSvc := catalogapp.NewService(source, catalogConcurrency)

	checkoutSvc := checkoutapp.NewService(cart, checkoutapp.WithLogger(log))
	contactSvc := contactapp.NewService(log)

	httpAddr := fmt.Sprintf(":%d", cfg.HTTPPort)
	httpServer := &http.Server{
		Addr: httpAddr,
		Handler: httpapi.NewRouter(httpapi.Deps{
			Catalog:  catalogSvc,
			Cart:     cart,
			Checkout: checkoutSvc,
			Contact:  contactSvc,
			Logger:   log,
		}),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	grpcAddr := fmt.Sprintf(":%d", cfg.GRPCPort)
	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		log.Error("listen failed", slog.Any("err", err), slog.String("addr", grpcAddr))
		os.Exit(1)
	}

	grpcServer := grpc.NewServer()
	cartgrpc.RegisterCartServiceServer(grpcServer, cartgrpc.NewServer(cart))

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http server starting", slog.String("addr", httpAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		log.Info("grpc starting", slog.String("addr", grpcAddr))
		if err := grpcServer.Serve(lis); err != nil {
			return fmt.Errorf("grpc serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown requested")

		if err := shutdown.Graceful(shutdown.DefaultTimeout, httpServer.Shutdown, func() { _ = httpServer.Close() }); err != nil {
			log.Error("http shutdown error", slog.Any("err", err))
		}

		err := shutdown.Graceful(shutdown.DefaultTimeout, func(context.Context) error {
			grpcServer.GracefulStop()
			return nil
		}, grpcServer.Stop)
		if errors.Is(err, shutdown.ErrForced) {
			log.Warn("graceful stop timeout, forcing stop")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", slog.Any("err", err))
	}
	log.Info("bye")
}

// openSlotStore picks the cart persistence backend. The returned close func
// is always safe to call.
func openSlotStore(ctx context.Context, cfg config.Config, log *slog.Logger) (cartapp.SlotStore, func(), error) {
	noop := func() {}

	switch cfg.CartStorage {
	case config.StorageMemory:
		return memory.NewSlotStore(), noop, nil
	case config.StorageFile:
		s, err := file.NewSlotStore(cfg.CartStorageDir)
		if err != nil {
			return nil, noop, err
		}
		return s, noop, nil
	case config.StoragePostgres:
		return openPostgresSlotStore(ctx, cfg.Postgres, log)
	default:
		return nil, noop, fmt.Errorf("unknown cart storage %q", cfg.CartStorage)
	}
}

func openPostgresSlotStore(ctx context.Context, cfg config.Postgres, log *slog.Logger) (cartapp.SlotStore, func(), error) {
	noop := func() {}
	pgCfg := postgres.Config{
		Host:    cfg.Host,
		Port:    cfg.Port,
		User:    cfg.User,
		Pass:    cfg.Pass,
		DB:      cfg.DB,
		SSLMode: cfg.SSLMode,
	}
	opts := []cartpg.Option{cartpg.WithTableName(cfg.SlotTable), cartpg.WithLogger(log)}

	var (
		store   *cartpg.SlotStore
		closeDB func()
		err     error
	)

	switch cfg.Adapter {
	case postgres.AdapterPGX:
		pool, perr := postgres.OpenPGXPool(ctx, pgCfg)
		if perr != nil {
			return nil, noop, perr
		}
		closeDB = pool.Close
		store, err = cartpg.NewSlotStoreFromPGXPool(pool, opts...)
	case postgres.AdapterSQL:
		db, perr := postgres.Open(pgCfg)
		if perr != nil {
			return nil, noop, perr
		}
		closeDB = func() { _ = db.Close() }
		store, err = cartpg.NewSlotStoreFromSQLDB(db, opts...)
	case postgres.AdapterSQLX:
		db, perr := postgres.OpenSQLX(pgCfg)
		if perr != nil {
			return nil, noop, perr
		}
		closeDB = func() { _ = db.Close() }
		store, err = cartpg.NewSlotStoreFromSQLX(db, opts...)
	default:
		return nil, noop, fmt.Errorf("unknown postgres adapter %q", cfg.Adapter)
	}

	if err != nil {
		closeDB()
		return nil, noop, err
	}

	if err := store.EnsureSchema(ctx); err != nil {
		closeDB()
		return nil, noop, err
	}

	return store, closeDB, nil
}
