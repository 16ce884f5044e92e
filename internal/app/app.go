package app

import (
	"context"
	"fmt"
	"time"

	"github.com/mholtz/tote/internal/basket"
	"github.com/mholtz/tote/internal/catalog"
	"github.com/mholtz/tote/internal/config"
	"github.com/mholtz/tote/internal/localstore"
	"github.com/mholtz/tote/internal/prefs"
	"github.com/mholtz/tote/internal/session"
	"github.com/mholtz/tote/internal/shopapi"
	"github.com/mholtz/tote/internal/ui"
)

// Options configure the tote application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/tote/prefs.toml
	APIBase    string // overrides the configured API endpoint
	PollEvery  int    // seconds; zero uses default
}

// Run boots the tote TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.APIBase != "" {
		cfg.APIBase = opts.APIBase
	}

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		return fmt.Errorf("load prefs: %w", err)
	}

	dir, err := localstore.NewDir(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}

	sess := session.New(dir)

	client, err := shopapi.NewClient(cfg.APIBase, sess.ClientID())
	if err != nil {
		return fmt.Errorf("init shop client: %w", err)
	}
	client.SetToken(sess.Token())

	cart := basket.NewCart(dir, client, sess)
	wishlist := basket.NewWishlist(dir, client, sess)

	// Reconcile local and server collections once an authenticated identity
	// is known. The subscription covers logins during this run; the direct
	// call covers a session restored from disk.
	reconcile := func() {
		if !sess.IsAuthenticated() {
			return
		}
		if _, ok := sess.Identity(); !ok {
			return
		}
		go cart.Reconcile(ctx)
		go wishlist.Reconcile(ctx)
	}
	sess.Subscribe(reconcile)
	reconcile()

	store := &catalog.Store{}

	interval := 30 * time.Second
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	// Start background poller
	catalog.StartPoller(ctx, store, client, interval)

	// Do initial refresh to populate the store before the UI starts
	catalog.Refresh(ctx, store, client)

	uiOpts := ui.Options{
		Context:   ctx,
		Client:    client,
		Catalog:   store,
		Cart:      cart,
		Wishlist:  wishlist,
		Session:   sess,
		PollTick:  interval,
		ThemeName: userPrefs.Theme,
		Email:     userPrefs.Email,
		PrefsPath: opts.PrefsPath,
	}
	return ui.Run(uiOpts)
}
