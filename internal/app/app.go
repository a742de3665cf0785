package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/samvad-hq/fetchview/internal/config"
	"github.com/samvad-hq/fetchview/internal/logger"
	"github.com/samvad-hq/fetchview/internal/metrics"
	"github.com/samvad-hq/fetchview/internal/probe"
	"github.com/samvad-hq/fetchview/internal/storage"
	"github.com/samvad-hq/fetchview/internal/view"
	"github.com/samvad-hq/fetchview/pkg/endpoints"
	"github.com/samvad-hq/fetchview/pkg/fetch"
	"github.com/samvad-hq/fetchview/pkg/httpclient"
	"github.com/samvad-hq/fetchview/pkg/publishers"
)

// App is the wired fetchview runtime shared by the CLI, TUI and page server.
type App struct {
	cfg        *config.Config
	Endpoints  *endpoints.Registry
	Controller *Controller
	Metrics    *metrics.Metrics
	Registry   *prometheus.Registry
	prober     *probe.Service
	store      storage.Store
	fanout     *publishers.Fanout
	log        logger.Logger
}

// LoadEndpoints reads the endpoint catalogue, falling back to the built-in
// catalogue when the file does not exist.
func LoadEndpoints(path string, log logger.Logger) (*endpoints.Registry, error) {
	log = logger.Ensure(log)

	if strings.TrimSpace(path) != "" {
		reg, err := endpoints.LoadRegistry(path)
		switch {
		case err == nil:
			log.InfoObj("endpoints registry loaded", "endpoints_meta", map[string]any{
				"file": path,
				"ids":  reg.IDs(),
			})
			return reg, nil
		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("load endpoints registry: %w", err)
		}
	}

	reg := endpoints.DefaultRegistry()
	log.InfoObj("using built-in endpoints", "endpoints_meta", map[string]any{
		"file": path,
		"ids":  reg.IDs(),
	})
	return reg, nil
}

// New builds the runtime around renderer.
func New(ctx context.Context, cfg *config.Config, reg *endpoints.Registry, renderer view.Renderer, log logger.Logger) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if reg == nil {
		return nil, fmt.Errorf("endpoints registry must not be nil")
	}
	if renderer == nil {
		return nil, fmt.Errorf("renderer must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	log = logger.Ensure(log)

	client, err := httpclient.New(cfg.HTTPClient, cfg.RequestTimeout)
	if err != nil {
		return nil, fmt.Errorf("init http client: %w", err)
	}
	var headers map[string]string
	if cfg.UserAgent != "" {
		headers = map[string]string{"User-Agent": cfg.UserAgent}
	}
	dispatcher := fetch.NewDispatcher(client, cfg.RequestTimeout, headers)

	fanout, err := buildFanout(ctx, cfg.PublishersFile, log)
	if err != nil {
		return nil, err
	}

	store, err := OpenHistory(cfg, log)
	if err != nil {
		_ = fanout.Close()
		return nil, err
	}

	promReg := prometheus.NewRegistry()
	m := metrics.InitMetrics(promReg)

	presenter := view.NewPresenter(renderer, view.Options{
		Cap:                     cfg.DisplayCap,
		KeepContentWhileLoading: cfg.KeepContentWhileLoading,
	})
	controller := NewController(dispatcher, presenter, Options{
		Log:     log,
		Metrics: m,
		History: store,
		Fanout:  fanout,
	})

	log.InfoObj("fetchview initialized", "app_meta", map[string]any{
		"http_client":      cfg.HTTPClient,
		"request_timeout":  cfg.RequestTimeout.String(),
		"display_cap":      cfg.DisplayCap,
		"publishers_count": fanout.Size(),
		"storage_type":     cfg.StorageType,
	})

	return &App{
		cfg:        cfg,
		Endpoints:  reg,
		Controller: controller,
		Metrics:    m,
		Registry:   promReg,
		prober:     probe.NewService(dispatcher, log),
		store:      store,
		fanout:     fanout,
		log:        log,
	}, nil
}

// OpenHistory opens the configured history store.
func OpenHistory(cfg *config.Config, log logger.Logger) (storage.Store, error) {
	log = logger.Ensure(log)
	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath, storage.Options{
		EntryTTL:        cfg.HistoryTTL,
		CleanupInterval: cfg.HistoryCleanup,
	})
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type":                     cfg.StorageType,
		"path":                     cfg.BBoltPath,
		"entry_ttl_seconds":        int(cfg.HistoryTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.HistoryCleanup.Seconds()),
	})
	return store, nil
}

func buildFanout(ctx context.Context, path string, log logger.Logger) (*publishers.Fanout, error) {
	if strings.TrimSpace(path) == "" {
		return publishers.NewFanout(nil), nil
	}

	enabled, err := publishers.LoadConfigs(path)
	if err != nil {
		return nil, fmt.Errorf("load publishers: %w", err)
	}
	pubClients, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabled, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}

	summaries := make([]map[string]string, 0, len(enabled))
	for _, pubCfg := range enabled {
		summaries = append(summaries, map[string]string{
			"id":   pubCfg.ID,
			"type": pubCfg.Type,
		})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(summaries),
		"publishers": summaries,
	})
	return publishers.NewFanout(pubClients), nil
}

// Fetch runs FetchAndDisplay for the endpoint with the given id.
func (a *App) Fetch(ctx context.Context, endpointID, name string) (Result, error) {
	ep, ok := a.Endpoints.ByID(endpointID)
	if !ok {
		return Result{}, fmt.Errorf("unknown endpoint %q (available: %s)", endpointID, strings.Join(a.Endpoints.IDs(), ", "))
	}
	return a.Controller.FetchAndDisplay(ctx, Request{Endpoint: ep, Name: name}), nil
}

// Check probes every catalogue endpoint without touching the view.
func (a *App) Check(ctx context.Context) ([]probe.Report, error) {
	return a.prober.Run(ctx, a.Endpoints.All())
}

// History returns the most recent history entries.
func (a *App) History(limit int) ([]storage.Entry, error) {
	return a.store.Recent(limit)
}

// Close releases the controller, publishers and history store.
func (a *App) Close() error {
	if a == nil {
		return nil
	}
	a.Controller.Close()

	var errs []error
	if err := a.fanout.Close(); err != nil {
		errs = append(errs, err)
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close storage: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Clear returns the view to Idle.
func (a *App) Clear() { a.Controller.Clear() }
