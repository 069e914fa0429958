package billing

import "errors"

// ErrBillingFailed wraps any provider-side failure. No retry happens here;
// the caller reports the error directly.
var ErrBillingFailed = errors.New("billing provider request failed")

type Subscription struct {
	SubscriptionId string
	ClientSecret   string
	Status         string
}

// Provider is the subscription collaborator. The hub stores only the
// returned customer/subscription ids; webhook handling is out of scope.
type Provider interface {
	CreateCustomer(email, name string) (string, error)

	CreateSubscription(customerId, priceId string) (Subscription, error)

	GetSubscription(subscriptionId string) (Subscription, error)
}
