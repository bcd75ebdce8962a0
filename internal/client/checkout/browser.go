package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"os/exec"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/newsscope/newsscope/internal/logging"
)

const defaultWidgetTimeout = 300 * time.Second

// openBrowser is a test seam; tests replace it to drive the page themselves.
var openBrowser = defaultOpenBrowser

func defaultOpenBrowser(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}

var checkoutPage = template.Must(template.New("checkout").Parse(`<!doctype html>
<html>
<head><meta charset="utf-8"><title>NewsScope Checkout</title></head>
<body>
<p id="msg">Opening secure checkout&hellip;</p>
<script>{{.Script}}</script>
<script>
var opts = {{.Options}};
opts.handler = function (resp) {
	fetch('/callback?state={{.State}}', {
		method: 'POST',
		headers: {'Content-Type': 'application/json'},
		body: JSON.stringify(resp)
	}).then(function () {
		document.getElementById('msg').textContent = 'Payment submitted. You can return to the terminal.';
	});
};
opts.modal = {
	ondismiss: function () {
		fetch('/dismiss?state={{.State}}', {method: 'POST'}).then(function () {
			document.getElementById('msg').textContent = 'Checkout closed. You can return to the terminal.';
		});
	},
	escape: true,
	confirm_close: true
};
new Razorpay(opts).open();
</script>
</body>
</html>`))

// BrowserWidget presents the gateway's hosted checkout in the user's browser.
// It serves a single-use localhost page embedding the loaded script and the
// per-attempt configuration, then waits for the page to post back either the
// completion identifiers or a dismissal.
type BrowserWidget struct {
	loader *ScriptLoader
	addr   string
	log    logging.Logger
}

var _ Widget = (*BrowserWidget)(nil)

// NewBrowserWidget builds a widget listening on addr (use "127.0.0.1:0" for
// an ephemeral port).
func NewBrowserWidget(loader *ScriptLoader, addr string, log logging.Logger) *BrowserWidget {
	return &BrowserWidget{loader: loader, addr: addr, log: log}
}

func (w *BrowserWidget) Open(ctx context.Context, opts Options) (*Result, error) {
	script, err := w.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	// Per-attempt token: stray or replayed posts from an old page are ignored.
	state := uuid.NewString()

	optJSON, err := json.Marshal(map[string]any{
		"key":         opts.Key,
		"amount":      opts.Amount,
		"currency":    opts.Currency,
		"name":        opts.Name,
		"description": opts.Description,
		"order_id":    opts.OrderID,
		"prefill": map[string]string{
			"email":   opts.Prefill.Email,
			"name":    opts.Prefill.Name,
			"contact": opts.Prefill.Contact,
		},
		"theme":             map[string]string{"color": opts.ThemeColor},
		"timeout":           int(w.timeout(opts).Seconds()),
		"remember_customer": false,
	})
	if err != nil {
		return nil, err
	}

	ln, err := net.Listen("tcp", w.addr)
	if err != nil {
		return nil, fmt.Errorf("checkout callback listener: %w", err)
	}

	results := make(chan *Result, 1)
	publish := func(r *Result) {
		select {
		case results <- r:
		default:
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(rw http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("state") != state {
			http.Error(rw, "unknown checkout attempt", http.StatusForbidden)
			return
		}
		rw.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = checkoutPage.Execute(rw, map[string]any{
			"Script":  template.JS(script),
			"Options": template.JS(optJSON),
			"State":   state,
		})
	})
	mux.HandleFunc("POST /callback", func(rw http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("state") != state {
			http.Error(rw, "unknown checkout attempt", http.StatusForbidden)
			return
		}
		var c Completion
		if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
			http.Error(rw, "bad callback payload", http.StatusBadRequest)
			return
		}
		publish(&Result{Completed: &c})
		rw.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("POST /dismiss", func(rw http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("state") != state {
			http.Error(rw, "unknown checkout attempt", http.StatusForbidden)
			return
		}
		publish(&Result{Dismissed: true})
		rw.WriteHeader(http.StatusNoContent)
	})

	srv := &http.Server{Handler: mux}
	go func() { _ = srv.Serve(ln) }()
	defer srv.Close()

	url := fmt.Sprintf("http://%s/?state=%s", ln.Addr(), state)
	w.log.Info(ctx, "opening checkout in browser", "url", url)
	if err := openBrowser(url); err != nil {
		return nil, fmt.Errorf("%w: cannot open browser: %v", ErrGatewayUnavailable, err)
	}

	timer := time.NewTimer(w.timeout(opts))
	defer timer.Stop()

	select {
	case r := <-results:
		return r, nil
	case <-timer.C:
		// The widget auto-dismisses on its fixed timeout.
		return &Result{Dismissed: true}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (w *BrowserWidget) timeout(opts Options) time.Duration {
	if opts.Timeout > 0 {
		return opts.Timeout
	}
	return defaultWidgetTimeout
}
