package billing

import (
	"fmt"
	"sync"
)

// StubProvider records customers and subscriptions in memory. Used in tests
// as a drop-in for the real provider.
type StubProvider struct {
	mu            sync.Mutex
	nextId        int
	Subscriptions map[string]Subscription
	Customers     map[string]string
}

func NewStubProvider() *StubProvider {
	return &StubProvider{
		Subscriptions: make(map[string]Subscription),
		Customers:     make(map[string]string),
	}
}

func (p *StubProvider) CreateCustomer(email, name string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.nextId++
	id := fmt.Sprintf("cus_stub_%d", p.nextId)
	p.Customers[id] = email
	return id, nil
}

func (p *StubProvider) CreateSubscription(customerId, priceId string) (Subscription, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.Customers[customerId]; !ok {
		return Subscription{}, fmt.Errorf("%w: unknown customer %v", ErrBillingFailed, customerId)
	}

	p.nextId++
	sub := Subscription{
		SubscriptionId: fmt.Sprintf("sub_stub_%d", p.nextId),
		ClientSecret:   fmt.Sprintf("secret_stub_%d", p.nextId),
		Status:         "incomplete",
	}
	p.Subscriptions[sub.SubscriptionId] = sub
	return sub, nil
}

func (p *StubProvider) GetSubscription(subscriptionId string) (Subscription, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	sub, ok := p.Subscriptions[subscriptionId]
	if !ok {
		return Subscription{}, fmt.Errorf("%w: unknown subscription %v", ErrBillingFailed, subscriptionId)
	}
	return sub, nil
}
