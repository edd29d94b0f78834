package state

import (
	"context"
	"math/rand"
	"regexp"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/five82/userdesk/internal/reqres"
)

const (
	// NoConnectionMessage is the failure shown when an operation is
	// attempted or interrupted while offline.
	NoConnectionMessage = "No internet connection"

	// DefaultToastDuration is how long the success toast stays visible.
	DefaultToastDuration = 3 * time.Second

	// DefaultUserName and DefaultUserEmail fill the one-key create request.
	DefaultUserName  = "Ronit"
	DefaultUserEmail = "ronit@example.com"

	randomUserMax = 12
)

// Slot identifies one of the two independent operation tracks.
type Slot int

const (
	SlotCreate Slot = iota
	SlotFetch
)

func (s Slot) String() string {
	switch s {
	case SlotCreate:
		return "create"
	case SlotFetch:
		return "fetch"
	default:
		return "unknown"
	}
}

// Snapshot is the read-only view the rendering layer consumes.
type Snapshot struct {
	Create           Async[reqres.CreatedUserRecord]
	Fetch            Async[reqres.UserRecord]
	ShowSuccessToast bool
	ToastSlot        Slot
	Connected        bool
}

// IsLoading reports whether either slot is in flight.
func (s Snapshot) IsLoading() bool {
	return s.Create.IsLoading() || s.Fetch.IsLoading()
}

// ErrorMessage returns the create failure, else the fetch failure, else "".
func (s Snapshot) ErrorMessage() string {
	if msg, ok := s.Create.Err(); ok {
		return msg
	}
	if msg, ok := s.Fetch.Err(); ok {
		return msg
	}
	return ""
}

// CreatedUser returns the last created user, if the create slot succeeded.
func (s Snapshot) CreatedUser() (reqres.CreatedUserRecord, bool) {
	return s.Create.Value()
}

// FetchedUser returns the last fetched user, if the fetch slot succeeded.
func (s Snapshot) FetchedUser() (reqres.UserRecord, bool) {
	return s.Fetch.Value()
}

// Feedback receives one signal per settled operation. It replaces the
// haptic cue a touch client would give.
type Feedback interface {
	Success(slot Slot)
	Failure(slot Slot, message string)
}

// ConnectivitySource is the subset of netmon.Monitor the store needs.
type ConnectivitySource interface {
	IsConnected() bool
	Subscribe(fn func(connected bool)) (unsubscribe func())
}

// Options configure a Store.
type Options struct {
	Users         reqres.Users
	Executor      Executor
	Connectivity  ConnectivitySource // nil means always connected
	Clock         clock.Clock
	ToastDuration time.Duration
	Feedback      Feedback
	Logger        *zap.Logger
	Context       context.Context // parent for service calls
	RandomID      func() int      // FetchRandomUser id source; nil picks 1..12
}

type slot[T any] struct {
	state Async[T]
	gen   uint64
}

// Store owns the view state for both operation slots. Every mutation runs
// on the Executor's goroutine; public methods only post work to it, so
// they are safe to call from any goroutine.
type Store struct {
	users         reqres.Users
	exec          Executor
	feedback      Feedback
	logger        *zap.Logger
	toastDuration time.Duration
	randomID      func() int
	ctx           context.Context
	cancel        context.CancelFunc
	unsubConn     func()

	// Owned by the executor goroutine.
	create    slot[reqres.CreatedUserRecord]
	fetch     slot[reqres.UserRecord]
	connected bool
	toastOn   bool
	toastSlot Slot
	toast     toastTimer

	pubMu     sync.RWMutex
	published Snapshot

	subMu   sync.Mutex
	subs    map[uint64]func(Snapshot)
	nextSub uint64
}

// NewStore builds a Store. Users and Executor are required.
func NewStore(opts Options) *Store {
	parent := opts.Context
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)

	s := &Store{
		users:         opts.Users,
		exec:          opts.Executor,
		feedback:      opts.Feedback,
		logger:        opts.Logger,
		toastDuration: opts.ToastDuration,
		randomID:      opts.RandomID,
		ctx:           ctx,
		cancel:        cancel,
		create:        slot[reqres.CreatedUserRecord]{state: Idle[reqres.CreatedUserRecord]()},
		fetch:         slot[reqres.UserRecord]{state: Idle[reqres.UserRecord]()},
		connected:     true,
		subs:          make(map[uint64]func(Snapshot)),
	}
	if s.feedback == nil {
		s.feedback = nopFeedback{}
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.toastDuration <= 0 {
		s.toastDuration = DefaultToastDuration
	}
	if s.randomID == nil {
		s.randomID = func() int { return rand.Intn(randomUserMax) + 1 }
	}
	s.toast.clock = opts.Clock
	if s.toast.clock == nil {
		s.toast.clock = clock.New()
	}
	if opts.Connectivity != nil {
		s.connected = opts.Connectivity.IsConnected()
		s.unsubConn = opts.Connectivity.Subscribe(func(connected bool) {
			s.exec.Post(func() { s.applyConnectivity(connected) })
		})
	}
	s.published = s.build()
	return s
}

// Snapshot returns the latest published state.
func (s *Store) Snapshot() Snapshot {
	s.pubMu.RLock()
	defer s.pubMu.RUnlock()
	return s.published
}

// Subscribe registers fn to run on the owner goroutine after every
// transition. The returned func removes the subscription.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

// CreateUser starts a create-user operation, superseding any in flight.
func (s *Store) CreateUser(name, email string) {
	s.exec.Post(func() {
		invoke(s, &s.create, SlotCreate, func(ctx context.Context) (reqres.CreatedUserRecord, error) {
			return s.users.CreateUser(ctx, name, email)
		})
	})
}

// SubmitDefaultUser creates the preset demo user.
func (s *Store) SubmitDefaultUser() {
	s.CreateUser(DefaultUserName, DefaultUserEmail)
}

// FetchUser starts a fetch-user operation, superseding any in flight.
func (s *Store) FetchUser(id int) {
	s.exec.Post(func() {
		invoke(s, &s.fetch, SlotFetch, func(ctx context.Context) (reqres.UserRecord, error) {
			return s.users.FetchUser(ctx, id)
		})
	})
}

// FetchRandomUser fetches one of the demo API's seeded users.
func (s *Store) FetchRandomUser() {
	s.FetchUser(s.randomID())
}

// Reset returns slot to idle, dismissing any error it shows.
func (s *Store) Reset(which Slot) {
	s.exec.Post(func() {
		switch which {
		case SlotCreate:
			reset(&s.create)
		case SlotFetch:
			reset(&s.fetch)
		default:
			return
		}
		s.publish()
	})
}

// DismissToast hides the success toast now and cancels its countdown.
func (s *Store) DismissToast() {
	s.exec.Post(func() {
		if s.toast.pending() {
			s.toast.cancel()
		}
		if !s.toastOn {
			return
		}
		s.toastOn = false
		s.publish()
	})
}

// Close detaches from connectivity updates, cancels the toast countdown,
// and cancels the context passed to in-flight service calls.
func (s *Store) Close() {
	if s.unsubConn != nil {
		s.unsubConn()
	}
	s.exec.Post(func() { s.toast.cancel() })
	s.cancel()
}

func invoke[T any](s *Store, sl *slot[T], which Slot, call func(context.Context) (T, error)) {
	sl.gen++
	if !s.connected {
		sl.state = Failed[T](NoConnectionMessage)
		s.feedback.Failure(which, NoConnectionMessage)
		s.publish()
		return
	}

	gen := sl.gen
	sl.state = Loading[T]()
	s.publish()

	go func() {
		value, err := call(s.ctx)
		s.exec.Post(func() { settle(s, sl, which, gen, value, err) })
	}()
}

func settle[T any](s *Store, sl *slot[T], which Slot, gen uint64, value T, err error) {
	if gen != sl.gen {
		s.logger.Debug("dropping stale result",
			zap.Stringer("slot", which),
			zap.Uint64("generation", gen),
			zap.Uint64("current", sl.gen),
		)
		return
	}
	if err != nil {
		msg := messageFor(err)
		sl.state = Failed[T](msg)
		s.logger.Info("operation failed", zap.Stringer("slot", which), zap.String("message", msg))
		s.feedback.Failure(which, msg)
		s.publish()
		return
	}
	sl.state = Succeeded(value)
	s.toastOn = true
	s.toastSlot = which
	s.toast.arm(s.toastDuration, s.expireToast)
	s.feedback.Success(which)
	s.publish()
}

// messageFor prefers the typed request message over any wrapping text.
func messageFor(err error) string {
	if reqErr, ok := reqres.AsRequestError(err); ok {
		return reqErr.Error()
	}
	return err.Error()
}

func reset[T any](sl *slot[T]) {
	sl.gen++
	sl.state = Idle[T]()
}

// interrupt forces a loading slot into the offline failure and reports
// whether it did.
func interrupt[T any](sl *slot[T]) bool {
	if !sl.state.IsLoading() {
		return false
	}
	sl.gen++
	sl.state = Failed[T](NoConnectionMessage)
	return true
}

func (s *Store) applyConnectivity(connected bool) {
	if s.connected == connected {
		return
	}
	s.connected = connected
	if !connected {
		if interrupt(&s.create) {
			s.feedback.Failure(SlotCreate, NoConnectionMessage)
		}
		if interrupt(&s.fetch) {
			s.feedback.Failure(SlotFetch, NoConnectionMessage)
		}
	}
	s.publish()
}

// expireToast runs on the timer goroutine.
func (s *Store) expireToast(token uint64) {
	s.exec.Post(func() {
		if !s.toast.claim(token) {
			return
		}
		s.toastOn = false
		s.publish()
	})
}

func (s *Store) build() Snapshot {
	return Snapshot{
		Create:           s.create.state,
		Fetch:            s.fetch.state,
		ShowSuccessToast: s.toastOn,
		ToastSlot:        s.toastSlot,
		Connected:        s.connected,
	}
}

func (s *Store) publish() {
	snap := s.build()

	s.pubMu.Lock()
	s.published = snap
	s.pubMu.Unlock()

	s.subMu.Lock()
	subs := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.subMu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

var emailPattern = regexp.MustCompile(`^[A-Z0-9a-z._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// ValidEmail applies the form's email check.
func ValidEmail(email string) bool {
	return email != "" && emailPattern.MatchString(email)
}

// FormValid reports whether a custom create-user submission may be sent.
func FormValid(name, email string) bool {
	return name != "" && ValidEmail(email)
}

type nopFeedback struct{}

func (nopFeedback) Success(Slot)         {}
func (nopFeedback) Failure(Slot, string) {}

// LogFeedback reports settled operations to a logger.
type LogFeedback struct {
	Logger *zap.Logger
}

// Success implements Feedback.
func (f LogFeedback) Success(slot Slot) {
	if f.Logger != nil {
		f.Logger.Info("operation succeeded", zap.Stringer("slot", slot))
	}
}

// Failure implements Feedback.
func (f LogFeedback) Failure(slot Slot, message string) {
	if f.Logger != nil {
		f.Logger.Warn("operation failed", zap.Stringer("slot", slot), zap.String("message", message))
	}
}
