package models

// CreditPackage is a priced bundle of credits offered for purchase.
// Packages are fetched fresh each time the purchase flow opens and are
// never persisted locally.
type CreditPackage struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Credits     int    `json:"credits"`
	Price       int    `json:"price"`
	Currency    string `json:"currency"`
	Description string `json:"description,omitempty"`
	Popular     bool   `json:"popular,omitempty"`
}

// PaymentOrder is the server-created, single-use descriptor authorizing one
// checkout attempt. Amount is in the gateway's minor unit (paise for INR).
type PaymentOrder struct {
	OrderID       string `json:"order_id"`
	KeyID         string `json:"key_id"`
	Amount        int64  `json:"amount"`
	Currency      string `json:"currency"`
	PackageName   string `json:"package_name"`
	CustomerEmail string `json:"customer_email,omitempty"`
	CustomerName  string `json:"customer_name,omitempty"`
}
