package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/newsscope/newsscope/internal/client/api"
	"github.com/newsscope/newsscope/internal/client/models"
	"github.com/newsscope/newsscope/internal/logging"
)

// State of the purchase flow, for the shell to render.
type State string

const (
	StateIdle            State = "idle"
	StatePackagesLoading State = "packages_loading"
	StatePackagesReady   State = "packages_ready"
	StateOrderCreating   State = "order_creating"
	StateWidgetOpen      State = "widget_open"
	StateVerifying       State = "verifying"
	StateSettled         State = "settled"
	StateErrored         State = "errored"
)

var (
	// ErrPurchaseInFlight rejects a second purchase while one is pending.
	ErrPurchaseInFlight = errors.New("a purchase is already in progress")
	// ErrVerificationFailed is the backend saying the payment did not verify,
	// regardless of what the widget reported.
	ErrVerificationFailed = errors.New("payment verification failed")
	// ErrClosed is returned when the flow was closed before or during a call.
	ErrClosed = errors.New("purchase flow closed")
)

// displayName is shown in the widget's merchant line.
const displayName = "NewsScope"

// themeColor matches the product's gold accent.
const themeColor = "#d4a574"

// openDelay keeps the terminal prompt and the opening browser overlay from
// fighting for attention. Ordering nicety, not a correctness requirement.
const openDelay = 100 * time.Millisecond

// Outcome of a settled purchase attempt: either credits were added or the
// user walked away from the widget.
type Outcome struct {
	CreditsAdded int
	Dismissed    bool
}

// Orchestrator coordinates one purchase-modal instance. At most one purchase
// attempt is in flight at a time; completed gateway callbacks are verified
// exactly once per order.
type Orchestrator struct {
	client api.Client
	loader *ScriptLoader
	widget Widget
	log    logging.Logger

	// OnSuccess runs after a verified payment, with the credits added.
	// The shell points it at the session's credit refresh.
	OnSuccess func(creditsAdded int)

	// delay before the widget opens; overridable in tests.
	openDelay time.Duration

	mu       sync.Mutex
	state    State
	packages []models.CreditPackage
	pending  string
	closed   bool
	verified map[string]bool
}

func NewOrchestrator(client api.Client, loader *ScriptLoader, widget Widget, log logging.Logger) *Orchestrator {
	return &Orchestrator{
		client:    client,
		loader:    loader,
		widget:    widget,
		log:       log,
		openDelay: openDelay,
		state:     StateIdle,
		verified:  make(map[string]bool),
	}
}

func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Packages returns the list fetched by the last Open.
func (o *Orchestrator) Packages() []models.CreditPackage {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.packages
}

// Pending reports the package id currently being purchased, "" when none.
// The shell uses it to disable re-submission for that package.
func (o *Orchestrator) Pending() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.pending
}

// Open starts the flow: fetches the purchasable packages and warms the
// gateway script concurrently. The script warm-up is fire-and-forget; its
// failure only matters once a purchase actually needs the widget.
func (o *Orchestrator) Open(ctx context.Context) error {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return ErrClosed
	}
	o.state = StatePackagesLoading
	o.mu.Unlock()

	go func() {
		if _, err := o.loader.Load(context.Background()); err != nil {
			o.log.Warn(ctx, "gateway script preload failed", "error", err)
		}
	}()

	packages, err := o.client.CreditPackages(ctx)
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return ErrClosed
	}
	if err != nil {
		o.state = StateErrored
		return fmt.Errorf("loading credit packages: %w", err)
	}
	o.packages = packages
	o.state = StatePackagesReady
	return nil
}

// Purchase runs one attempt for the given package: script precondition,
// order creation, widget, verification. On any failure before settlement the
// flow returns to PackagesReady with no partial state retained.
func (o *Orchestrator) Purchase(ctx context.Context, packageID string, prefill Prefill) (*Outcome, error) {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return nil, ErrClosed
	}
	if o.pending != "" {
		o.mu.Unlock()
		return nil, ErrPurchaseInFlight
	}
	o.pending = packageID
	o.state = StateOrderCreating
	o.mu.Unlock()

	out, err := o.run(ctx, packageID, prefill)

	o.mu.Lock()
	defer o.mu.Unlock()
	o.pending = ""
	if o.closed {
		// The flow was closed while the attempt was in flight; whatever the
		// network said must not surface as fresh state.
		return nil, ErrClosed
	}
	if err != nil {
		o.state = StatePackagesReady
		return nil, err
	}
	if out.Dismissed {
		o.state = StatePackagesReady
	} else {
		o.state = StateSettled
	}
	return out, nil
}

func (o *Orchestrator) run(ctx context.Context, packageID string, prefill Prefill) (*Outcome, error) {
	// Hard precondition: no order is created while the gateway is down.
	if _, err := o.loader.Load(ctx); err != nil {
		return nil, err
	}

	order, err := o.client.CreateOrder(ctx, packageID)
	if err != nil {
		return nil, fmt.Errorf("creating payment order: %w", err)
	}
	o.log.Info(ctx, "payment order created", "order_id", order.OrderID, "package", packageID)

	if order.CustomerEmail != "" {
		prefill.Email = order.CustomerEmail
	}
	if order.CustomerName != "" {
		prefill.Name = order.CustomerName
	}
	opts := Options{
		Key:         order.KeyID,
		OrderID:     order.OrderID,
		Amount:      order.Amount,
		Currency:    order.Currency,
		Name:        displayName,
		Description: order.PackageName,
		Prefill:     prefill,
		ThemeColor:  themeColor,
		Timeout:     defaultWidgetTimeout,
	}

	o.setState(StateWidgetOpen)
	time.Sleep(o.openDelay)

	res, err := o.widget.Open(ctx, opts)
	if err != nil {
		return nil, err
	}
	if res.Dismissed {
		o.log.Info(ctx, "checkout dismissed", "order_id", order.OrderID)
		return &Outcome{Dismissed: true}, nil
	}
	return o.verify(ctx, order.OrderID, res.Completed)
}

// verify forwards the gateway identifiers to the backend, at most once per
// order. A duplicate completion event for an order already dispatched is
// dropped rather than re-submitted.
func (o *Orchestrator) verify(ctx context.Context, orderID string, c *Completion) (*Outcome, error) {
	o.mu.Lock()
	if o.verified[orderID] {
		o.mu.Unlock()
		return nil, fmt.Errorf("order %s: verification already dispatched", orderID)
	}
	o.verified[orderID] = true
	o.mu.Unlock()

	o.setState(StateVerifying)
	resp, err := o.client.VerifyPayment(ctx, c.OrderID, c.PaymentID, c.Signature)
	if err != nil {
		return nil, fmt.Errorf("verifying payment: %w", err)
	}
	if !resp.Success {
		return nil, ErrVerificationFailed
	}
	o.log.Info(ctx, "payment verified", "order_id", orderID, "credits_added", resp.CreditsAdded)

	// A verification that lands after Close must not leak through the
	// success callback; Purchase will report ErrClosed to the caller.
	o.mu.Lock()
	closed := o.closed
	o.mu.Unlock()
	if !closed && o.OnSuccess != nil {
		o.OnSuccess(resp.CreditsAdded)
	}
	return &Outcome{CreditsAdded: resp.CreditsAdded}, nil
}

// Close abandons the flow. Requests already in flight are not cancelled, but
// their results no longer mutate observable state.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.closed = true
	o.state = StateIdle
	o.packages = nil
}

func (o *Orchestrator) setState(s State) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	o.state = s
}
