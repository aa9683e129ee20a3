package cli

import (
	"log/slog"
	"os"

	"github.com/KennelyRay/E-Commerce-Website-sub000/config"
	"github.com/KennelyRay/E-Commerce-Website-sub000/internal/auth"
	"github.com/KennelyRay/E-Commerce-Website-sub000/internal/cart"
	"github.com/KennelyRay/E-Commerce-Website-sub000/internal/kv"
	"github.com/KennelyRay/E-Commerce-Website-sub000/internal/store"
)

// App wires the storefront together for one CLI invocation: config,
// the relational catalog store, the key/value substrate, and the two
// session stores layered on top of it.
type App struct {
	Config config.Config
	Store  *store.Store
	KV     *kv.Store
	Cart   *cart.Store
	Auth   *auth.Store
}

// openApp loads config, configures logging, and opens every store.
// Commands call this at the top of RunE and defer Close.
func openApp(opts *RootOptions) (*App, error) {
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}

	logLevel := cfg.SlogLevel()
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to create data dir", err)
	}

	st, err := store.Open(cfg.DatabasePath())
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open catalog store", err)
	}

	kvs, err := kv.Open(cfg.SessionPath())
	if err != nil {
		st.Close()
		return nil, WrapExitError(ExitCommandError, "failed to open session store", err)
	}

	return &App{
		Config: cfg,
		Store:  st,
		KV:     kvs,
		Cart: cart.NewStore(kvs,
			cart.WithOrderSink(st),
			cart.WithCheckoutDelay(cfg.CheckoutDelay)),
		Auth: auth.NewStore(kvs),
	}, nil
}

// Close releases both stores.
func (a *App) Close() {
	if err := a.KV.Close(); err != nil {
		slog.Error("error closing session store", "err", err)
	}
	if err := a.Store.Close(); err != nil {
		slog.Error("error closing catalog store", "err", err)
	}
}
