package domain

import "context"

type PaymentResultStatus string

const (
	ResultSuccess PaymentResultStatus = "success"
	ResultFailure PaymentResultStatus = "failure"
)

// PaymentResult is what a checkout controller gets back from a payment gateway.
// Redirect is only set on success.
type PaymentResult struct {
	Result   PaymentResultStatus
	Redirect string
}

func Succeeded(redirect string) PaymentResult {
	return PaymentResult{Result: ResultSuccess, Redirect: redirect}
}

func Failed() PaymentResult {
	return PaymentResult{Result: ResultFailure}
}

type PaymentGateway interface {
	ID() string
	Config(ctx context.Context) (MerchantConfig, error)
	ProcessPayment(ctx context.Context, orderID int, sessionID string) (PaymentResult, error)
}
