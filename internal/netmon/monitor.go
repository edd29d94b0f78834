package netmon

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
)

const (
	DefaultProbeAddress  = "reqres.in:443"
	DefaultProbeInterval = 5 * time.Second
	defaultProbeTimeout  = 3 * time.Second
)

// Prober checks whether the network is usable. A nil error means reachable.
type Prober interface {
	Probe(ctx context.Context) error
}

// ProberFunc adapts a function to Prober.
type ProberFunc func(ctx context.Context) error

// Probe implements Prober.
func (f ProberFunc) Probe(ctx context.Context) error { return f(ctx) }

// DialProber reports reachability by opening a TCP connection.
type DialProber struct {
	Address string
	Timeout time.Duration
}

// Probe implements Prober.
func (p DialProber) Probe(ctx context.Context) error {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = defaultProbeTimeout
	}
	address := p.Address
	if address == "" {
		address = DefaultProbeAddress
	}
	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return err
	}
	return conn.Close()
}

// Options configure a Monitor.
type Options struct {
	Prober   Prober        // nil uses DialProber{}
	Interval time.Duration // zero uses DefaultProbeInterval
	Clock    clock.Clock   // nil uses the wall clock
	Logger   *zap.Logger
}

// Monitor tracks network reachability and notifies subscribers when it
// changes. The zero value is not usable; call New.
type Monitor struct {
	prober   Prober
	interval time.Duration
	clock    clock.Clock
	logger   *zap.Logger

	// setMu serialises Set so subscribers see transitions in order.
	setMu sync.Mutex

	mu        sync.Mutex
	connected bool
	subs      map[uint64]func(bool)
	nextSub   uint64
	cancel    context.CancelFunc
	done      chan struct{}
}

// New builds a Monitor. It reports connected until the first probe lands.
func New(opts Options) *Monitor {
	m := &Monitor{
		prober:    opts.Prober,
		interval:  opts.Interval,
		clock:     opts.Clock,
		logger:    opts.Logger,
		connected: true,
		subs:      make(map[uint64]func(bool)),
	}
	if m.prober == nil {
		m.prober = DialProber{}
	}
	if m.interval <= 0 {
		m.interval = DefaultProbeInterval
	}
	if m.clock == nil {
		m.clock = clock.New()
	}
	if m.logger == nil {
		m.logger = zap.NewNop()
	}
	return m
}

// IsConnected returns the latest known reachability.
func (m *Monitor) IsConnected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connected
}

// Subscribe registers fn for transitions. fn runs on the monitor's
// goroutine and must not call Set. The returned func unsubscribes.
func (m *Monitor) Subscribe(fn func(connected bool)) func() {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subs, id)
			m.mu.Unlock()
		})
	}
}

// Start launches the probe loop. Calling Start while running is a no-op.
func (m *Monitor) Start(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.done = make(chan struct{})
	go m.run(ctx, m.done)
}

// Stop halts the probe loop and waits for it to exit. Safe to call
// repeatedly or without Start.
func (m *Monitor) Stop() {
	m.mu.Lock()
	cancel, done := m.cancel, m.done
	m.cancel, m.done = nil, nil
	m.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Set records an observation and notifies subscribers if it changed.
func (m *Monitor) Set(connected bool) {
	m.setMu.Lock()
	defer m.setMu.Unlock()

	m.mu.Lock()
	if m.connected == connected {
		m.mu.Unlock()
		return
	}
	m.connected = connected
	subs := make([]func(bool), 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	m.mu.Unlock()

	m.logger.Info("connectivity changed", zap.Bool("connected", connected))
	for _, fn := range subs {
		fn(connected)
	}
}

func (m *Monitor) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := m.clock.Ticker(m.interval)
	defer ticker.Stop()

	for {
		m.probe(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (m *Monitor) probe(ctx context.Context) {
	err := m.prober.Probe(ctx)
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		m.logger.Debug("probe failed", zap.Error(err))
	}
	m.Set(err == nil)
}
