package port

import "context"

// BalanceInfo is the prepaid ledger state reported by the broker.
type BalanceInfo struct {
	Total     float64 `json:"total"`
	Available float64 `json:"available"`
	Locked    float64 `json:"locked"`
}

// ServiceInfo describes one inference provider known to the broker.
type ServiceInfo struct {
	Provider  string `json:"provider"`
	Endpoint  string `json:"endpoint"`
	Model     string `json:"model"`
	Verified  bool   `json:"verified"`
	InputFee  string `json:"input_fee"`
	OutputFee string `json:"output_fee"`
}

// ComputeBroker is the access layer for metered, prepaid inference. It is an
// external collaborator: created once per process and injected by reference
// into every component that talks to a provider.
type ComputeBroker interface {
	// RequestHeaders returns the billing headers for one inference request
	// against the given provider, derived from a query fingerprint.
	RequestHeaders(ctx context.Context, provider, query string) (map[string]string, error)

	// Settle reports a received response back to the broker and returns
	// whether the provider properly accounted for it. Advisory only.
	Settle(ctx context.Context, provider, content, responseID string) (bool, error)

	// Balance returns the prepaid ledger state.
	Balance(ctx context.Context) (*BalanceInfo, error)

	// Services lists the providers known to the broker.
	Services(ctx context.Context) ([]ServiceInfo, error)

	// Acknowledge registers the provider's signer before first use.
	Acknowledge(ctx context.Context, provider string) error
}
