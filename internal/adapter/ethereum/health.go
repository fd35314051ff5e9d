package ethereum

import "context"

// HealthCheck pings the wallet provider with eth_chainId.
type HealthCheck struct {
	provider *RPCProvider
}

func NewHealthCheck(provider *RPCProvider) *HealthCheck {
	return &HealthCheck{provider: provider}
}

func (h *HealthCheck) Ping(ctx context.Context) error {
	_, err := h.provider.ChainID(ctx)
	return err
}

func (h *HealthCheck) Name() string {
	return "chain"
}
