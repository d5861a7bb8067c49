package payment

import "context"

// Verifier abstracts the payment gateway's confirmation check. The
// production integration is out of scope; the simulated verifier trusts
// the caller-supplied gateway reference.
type Verifier interface {
	VerifyPayment(ctx context.Context, gatewayRef string) (bool, error)
}

type SimulatedVerifier struct{}

func NewSimulatedVerifier() *SimulatedVerifier {
	return &SimulatedVerifier{}
}

func (v *SimulatedVerifier) VerifyPayment(_ context.Context, gatewayRef string) (bool, error) {
	return gatewayRef != "", nil
}
