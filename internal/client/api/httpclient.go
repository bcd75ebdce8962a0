package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/newsscope/newsscope/internal/client/models"
)

// HTTPClient talks JSON over HTTP to the NewsScope backend. A cookie jar
// carries the session cookie across calls; SessionCookies/RestoreSessionCookies
// let the caller persist it between runs.
type HTTPClient struct {
	base *url.URL
	hc   *http.Client
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &HTTPClient{base: u, hc: &http.Client{Jar: jar, Timeout: timeout}}, nil
}

// SessionCookies returns the cookies currently held for the backend origin.
// The jar is queried under the auth path: a session cookie set without an
// explicit Path during login is default-scoped to /api/auth by RFC 6265 and
// would be invisible at the origin root.
func (c *HTTPClient) SessionCookies() []*http.Cookie {
	return c.hc.Jar.Cookies(c.base.JoinPath("api", "auth"))
}

// RestoreSessionCookies seeds the jar, typically from the local store on startup.
func (c *HTTPClient) RestoreSessionCookies(cookies []*http.Cookie) {
	c.hc.Jar.SetCookies(c.base, cookies)
}

// do dispatches one request. body and out may be nil. Transport failures are
// wrapped in ErrUnavailable; non-2xx statuses become a *RequestError with the
// backend's message when the body is parsable, a generic one otherwise.
func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base.String()+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newRequestError(resp.StatusCode, data)
	}
	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func newRequestError(status int, body []byte) *RequestError {
	var eb struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	msg := ""
	if err := json.Unmarshal(body, &eb); err == nil {
		msg = eb.Error
		if msg == "" {
			msg = eb.Message
		}
	}
	if msg == "" {
		msg = "request failed"
		if t := http.StatusText(status); t != "" {
			msg = t
		}
	}
	return &RequestError{Status: status, Message: msg}
}

// Is lets errors.Is(err, ErrUnauthorized) match 401 request errors.
func (e *RequestError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

func (c *HTTPClient) Signup(ctx context.Context, name, email, password string) (*AuthResponse, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/signup", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

func (c *HTTPClient) CurrentUser(ctx context.Context) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) ForgotPassword(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/forgot-password", map[string]string{"email": email}, nil)
}

func (c *HTTPClient) ResetPassword(ctx context.Context, token, newPassword string) error {
	body := map[string]string{"token": token, "password": newPassword}
	return c.do(ctx, http.MethodPost, "/api/auth/reset-password", body, nil)
}

func (c *HTTPClient) Analyze(ctx context.Context, text, headline string) (*models.AnalysisReport, error) {
	body := map[string]string{"text": text}
	if headline != "" {
		body["headline"] = headline
	}
	var resp struct {
		Success bool                   `json:"success"`
		Data    *models.AnalysisReport `json:"data"`
		Error   string                 `json:"error"`
		Message string                 `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/analyze", body, &resp); err != nil {
		return nil, err
	}
	if !resp.Success || resp.Data == nil {
		msg := resp.Error
		if msg == "" {
			msg = resp.Message
		}
		if msg == "" {
			msg = "analysis failed"
		}
		return nil, &RequestError{Status: http.StatusOK, Message: msg}
	}
	return resp.Data, nil
}

func (c *HTTPClient) Sources(ctx context.Context) ([]models.Source, error) {
	var resp struct {
		Success bool            `json:"success"`
		Sources []models.Source `json:"sources"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/sources", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Sources, nil
}

func (c *HTTPClient) SendFeedback(ctx context.Context, name, email, message string) error {
	body := map[string]string{"name": name, "email": email, "message": message}
	return c.do(ctx, http.MethodPost, "/api/feedback", body, nil)
}

func (c *HTTPClient) Dashboard(ctx context.Context) (*DashboardResponse, error) {
	var resp DashboardResponse
	if err := c.do(ctx, http.MethodGet, "/api/dashboard", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) History(ctx context.Context, page, perPage int) (*HistoryResponse, error) {
	q := url.Values{}
	q.Set("page", fmt.Sprint(page))
	q.Set("per_page", fmt.Sprint(perPage))
	var resp HistoryResponse
	if err := c.do(ctx, http.MethodGet, "/api/history?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) DeleteAnalysis(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/history/%d", id), nil, nil)
}

func (c *HTTPClient) DeleteAllAnalyses(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/history", nil, nil)
}

func (c *HTTPClient) CreditPackages(ctx context.Context) ([]models.CreditPackage, error) {
	var resp struct {
		Packages []models.CreditPackage `json:"packages"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/credits/packages", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Packages, nil
}

func (c *HTTPClient) CreateOrder(ctx context.Context, packageID string) (*models.PaymentOrder, error) {
	var order models.PaymentOrder
	body := map[string]string{"package_id": packageID}
	if err := c.do(ctx, http.MethodPost, "/api/payment/create-order", body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *HTTPClient) VerifyPayment(ctx context.Context, orderID, paymentID, signature string) (*VerifyResponse, error) {
	body := map[string]string{
		"razorpay_order_id":   orderID,
		"razorpay_payment_id": paymentID,
		"razorpay_signature":  signature,
	}
	var resp VerifyResponse
	if err := c.do(ctx, http.MethodPost, "/api/payment/verify", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/health", nil, nil)
}
