package checkout

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"
)

// ScriptURL is the fixed location of the gateway's checkout script.
const ScriptURL = "https://checkout.razorpay.com/v1/checkout.js"

// ErrGatewayUnavailable means the payment script could not be loaded. It is a
// hard precondition failure: no order is created while the gateway is down.
var ErrGatewayUnavailable = errors.New("payment gateway not available")

type loadAttempt struct {
	done   chan struct{}
	script []byte
	err    error
}

// ScriptLoader fetches the checkout script at most once per process. All
// concurrent callers share the single in-flight attempt; a successful load is
// cached for the process lifetime, a failed one is discarded so a later
// purchase can try again.
type ScriptLoader struct {
	url string
	hc  *http.Client

	mu      sync.Mutex
	attempt *loadAttempt
}

func NewScriptLoader(url string, hc *http.Client) *ScriptLoader {
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	return &ScriptLoader{url: url, hc: hc}
}

// Load returns the script bytes, starting the fetch if nobody has yet.
// Waiting is bounded by ctx; the fetch itself keeps running for the benefit
// of other callers even if this one gives up.
func (l *ScriptLoader) Load(ctx context.Context) ([]byte, error) {
	l.mu.Lock()
	a := l.attempt
	if a == nil {
		a = &loadAttempt{done: make(chan struct{})}
		l.attempt = a
		go l.fetch(a)
	}
	l.mu.Unlock()

	select {
	case <-a.done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if a.err != nil {
		l.mu.Lock()
		if l.attempt == a {
			l.attempt = nil
		}
		l.mu.Unlock()
		return nil, a.err
	}
	return a.script, nil
}

// fetch downloads the script with a couple of backoff retries. This is an
// ambient asset fetch, not an API call; the no-retry rule for the backend
// client does not apply here.
func (l *ScriptLoader) fetch(a *loadAttempt) {
	defer close(a.done)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	b := retry.WithMaxRetries(2, retry.NewExponential(200*time.Millisecond))
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
		if err != nil {
			return err
		}
		resp, err := l.hc.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return retry.RetryableError(fmt.Errorf("status %d", resp.StatusCode))
		}
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return retry.RetryableError(err)
		}
		a.script = body
		return nil
	})
	if err != nil {
		a.err = fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
}
