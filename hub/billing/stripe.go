package billing

import (
	"fmt"
	"log/slog"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

type StripeProvider struct {
	api *client.API
}

func NewStripeProvider(secretKey string) *StripeProvider {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeProvider{api: api}
}

func (p *StripeProvider) CreateCustomer(email, name string) (string, error) {
	customer, err := p.api.Customers.New(&stripe.CustomerParams{
		Email: stripe.String(email),
		Name:  stripe.String(name),
	})
	if err != nil {
		slog.Error("error creating billing customer", "error", err)
		return "", fmt.Errorf("%w: %v", ErrBillingFailed, err)
	}
	return customer.ID, nil
}

func (p *StripeProvider) CreateSubscription(customerId, priceId string) (Subscription, error) {
	params := &stripe.SubscriptionParams{
		Customer: stripe.String(customerId),
		Items: []*stripe.SubscriptionItemsParams{
			{Price: stripe.String(priceId)},
		},
		PaymentBehavior: stripe.String("default_incomplete"),
	}
	params.AddExpand("latest_invoice.payment_intent")

	sub, err := p.api.Subscriptions.New(params)
	if err != nil {
		slog.Error("error creating subscription", "customer_id", customerId, "error", err)
		return Subscription{}, fmt.Errorf("%w: %v", ErrBillingFailed, err)
	}

	return Subscription{
		SubscriptionId: sub.ID,
		ClientSecret:   clientSecret(sub),
		Status:         string(sub.Status),
	}, nil
}

func (p *StripeProvider) GetSubscription(subscriptionId string) (Subscription, error) {
	params := &stripe.SubscriptionParams{}
	params.AddExpand("latest_invoice.payment_intent")

	sub, err := p.api.Subscriptions.Get(subscriptionId, params)
	if err != nil {
		slog.Error("error retrieving subscription", "subscription_id", subscriptionId, "error", err)
		return Subscription{}, fmt.Errorf("%w: %v", ErrBillingFailed, err)
	}

	return Subscription{
		SubscriptionId: sub.ID,
		ClientSecret:   clientSecret(sub),
		Status:         string(sub.Status),
	}, nil
}

func clientSecret(sub *stripe.Subscription) string {
	if sub.LatestInvoice != nil && sub.LatestInvoice.PaymentIntent != nil {
		return sub.LatestInvoice.PaymentIntent.ClientSecret
	}
	return ""
}
