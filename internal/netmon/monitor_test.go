package netmon

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
)

// scriptedProber returns queued results and reports each call on calls.
type scriptedProber struct {
	mu      sync.Mutex
	results []error
	calls   chan struct{}
}

func (p *scriptedProber) Probe(context.Context) error {
	p.mu.Lock()
	var err error
	if len(p.results) > 0 {
		err = p.results[0]
		p.results = p.results[1:]
	}
	p.mu.Unlock()
	p.calls <- struct{}{}
	return err
}

func waitCall(t *testing.T, calls <-chan struct{}) {
	t.Helper()
	select {
	case <-calls:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for probe")
	}
}

func TestMonitor_DefaultsToConnected(t *testing.T) {
	m := New(Options{Prober: ProberFunc(func(context.Context) error { return nil })})
	if !m.IsConnected() {
		t.Fatal("IsConnected() = false before first probe, want true")
	}
}

func TestMonitor_NotifiesOnTransitionsOnly(t *testing.T) {
	m := New(Options{})

	var got []bool
	unsubscribe := m.Subscribe(func(connected bool) { got = append(got, connected) })

	m.Set(true) // unchanged from the optimistic default
	m.Set(false)
	m.Set(false)
	m.Set(true)
	m.Set(true)

	if len(got) != 2 || got[0] != false || got[1] != true {
		t.Fatalf("notifications = %v, want [false true]", got)
	}

	unsubscribe()
	unsubscribe()
	m.Set(false)
	if len(got) != 2 {
		t.Fatalf("notifications after unsubscribe = %v, want unchanged", got)
	}
	if m.IsConnected() {
		t.Fatal("IsConnected() = true, want false")
	}
}

func TestMonitor_ProbesOnStartAndEachTick(t *testing.T) {
	mock := clock.NewMock()
	prober := &scriptedProber{
		results: []error{nil, errors.New("unreachable"), errors.New("unreachable"), nil},
		calls:   make(chan struct{}),
	}
	m := New(Options{Prober: prober, Interval: time.Second, Clock: mock})

	changes := make(chan bool, 4)
	m.Subscribe(func(connected bool) { changes <- connected })

	m.Start(context.Background())
	m.Start(context.Background()) // idempotent
	t.Cleanup(m.Stop)

	waitCall(t, prober.calls) // initial probe: still connected, no change

	for i, want := range []*bool{ptr(false), nil, ptr(true)} {
		mock.Add(time.Second)
		waitCall(t, prober.calls)
		if want == nil {
			continue
		}
		select {
		case got := <-changes:
			if got != *want {
				t.Fatalf("tick %d: change = %v, want %v", i, got, *want)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("tick %d: no change notification", i)
		}
	}

	select {
	case got := <-changes:
		t.Fatalf("unexpected extra notification %v", got)
	default:
	}
}

func TestMonitor_StopIsIdempotent(t *testing.T) {
	m := New(Options{Prober: ProberFunc(func(context.Context) error { return nil }), Clock: clock.NewMock()})
	m.Stop()
	m.Start(context.Background())
	m.Stop()
	m.Stop()
	m.Start(context.Background())
	m.Stop()
}

func ptr(b bool) *bool { return &b }
