package api

import (
	"context"

	"github.com/newsscope/newsscope/internal/client/models"
)

// Client is the backend surface consumed by the rest of the application,
// one method per REST endpoint. Implementations perform no retries; a call
// is dispatched exactly once and the caller decides what to do on failure.
type Client interface {
	Signup(ctx context.Context, name, email, password string) (*AuthResponse, error)
	Login(ctx context.Context, email, password string) (*AuthResponse, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*AuthResponse, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error

	Analyze(ctx context.Context, text, headline string) (*models.AnalysisReport, error)
	Sources(ctx context.Context) ([]models.Source, error)
	SendFeedback(ctx context.Context, name, email, message string) error

	Dashboard(ctx context.Context) (*DashboardResponse, error)
	History(ctx context.Context, page, perPage int) (*HistoryResponse, error)
	DeleteAnalysis(ctx context.Context, id int64) error
	DeleteAllAnalyses(ctx context.Context) error

	CreditPackages(ctx context.Context) ([]models.CreditPackage, error)
	CreateOrder(ctx context.Context, packageID string) (*models.PaymentOrder, error)
	VerifyPayment(ctx context.Context, orderID, paymentID, signature string) (*VerifyResponse, error)

	Health(ctx context.Context) error
}

// AuthResponse is the shared shape of the signup/login/me endpoints. Success
// plus a populated User means an authenticated session; Message carries the
// backend's human-readable error otherwise.
type AuthResponse struct {
	Success bool         `json:"success"`
	User    *models.User `json:"user,omitempty"`
	Message string       `json:"message,omitempty"`
}

// DashboardResponse bundles aggregate stats with a bounded recent list.
type DashboardResponse struct {
	Success        bool                   `json:"success"`
	Statistics     *models.DashboardStats `json:"statistics"`
	RecentAnalyses []models.Analysis      `json:"recent_analyses"`
}

// HistoryResponse is one page of the stored analysis history.
type HistoryResponse struct {
	Success  bool              `json:"success"`
	Analyses []models.Analysis `json:"analyses"`
	Page     int               `json:"page"`
	PerPage  int               `json:"per_page"`
	Total    int               `json:"total"`
}

// VerifyResponse is the terminal artifact of one checkout attempt. The
// backend's verdict here is authoritative regardless of what the gateway
// widget reported.
type VerifyResponse struct {
	Success      bool   `json:"success"`
	CreditsAdded int    `json:"credits_added"`
	Message      string `json:"message,omitempty"`
}
