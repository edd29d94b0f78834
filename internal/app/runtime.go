package app

import (
	"context"
	"fmt"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/five82/userdesk/internal/config"
	"github.com/five82/userdesk/internal/netmon"
	"github.com/five82/userdesk/internal/reqres"
	"github.com/five82/userdesk/internal/state"
)

// rateBurst lets a create and a fetch go out back to back before pacing.
const rateBurst = 2

// runtimeOptions override collaborators in tests.
type runtimeOptions struct {
	Logger *zap.Logger
	Prober netmon.Prober // nil dials cfg.ProbeAddress
	Doer   reqres.Doer   // nil uses a default http.Client
	Clock  clock.Clock
}

// runtime holds the long-lived components behind the UI.
type runtime struct {
	monitor *netmon.Monitor
	client  *reqres.Client
	loop    *state.Loop
	store   *state.Store

	cancel   context.CancelFunc
	loopDone chan struct{}
}

// start wires monitor, client, service, loop and store, and launches the
// background goroutines. Close stops them.
func start(ctx context.Context, cfg config.Config, opts runtimeOptions) (*runtime, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	prober := opts.Prober
	if prober == nil {
		prober = netmon.DialProber{Address: cfg.ProbeAddress}
	}
	monitor := netmon.New(netmon.Options{
		Prober:   prober,
		Interval: cfg.ProbeInterval,
		Clock:    opts.Clock,
		Logger:   logger.Named("netmon"),
	})

	clientOpts := []reqres.Option{
		reqres.WithConnectivity(monitor),
		reqres.WithTimeout(cfg.RequestTimeout),
		reqres.WithAPIKey(cfg.APIKey),
		reqres.WithRateLimit(cfg.RequestsPerSecond, rateBurst),
		reqres.WithLogger(logger.Named("reqres")),
	}
	if opts.Doer != nil {
		clientOpts = append(clientOpts, reqres.WithHTTPClient(opts.Doer))
	}
	client, err := reqres.NewClient(cfg.BaseURL, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("init reqres client: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	loop := state.NewLoop()
	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		_ = loop.Run(ctx)
	}()

	store := state.NewStore(state.Options{
		Users:         reqres.NewUserService(client, cfg.RequestTimeout),
		Executor:      loop,
		Connectivity:  monitor,
		Clock:         opts.Clock,
		ToastDuration: cfg.ToastDuration,
		Feedback:      state.LogFeedback{Logger: logger.Named("feedback")},
		Logger:        logger.Named("state"),
		Context:       ctx,
	})
	// Probe only once the store is subscribed.
	monitor.Start(ctx)

	return &runtime{
		monitor:  monitor,
		client:   client,
		loop:     loop,
		store:    store,
		cancel:   cancel,
		loopDone: loopDone,
	}, nil
}

// Close detaches the store, stops probing and shuts the loop down.
func (r *runtime) Close() {
	r.store.Close()
	r.monitor.Stop()
	r.cancel()
	<-r.loopDone
}
