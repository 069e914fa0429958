package tests

import (
	"testing"

	"founderhub/hub/schema"
)

func TestCreateSubscription(t *testing.T) {
	env := setupTestEnv(t)

	user, err := env.newUser("hank")
	if err != nil {
		t.Fatal(err)
	}

	sub, err := user.createSubscription()
	if err != nil {
		t.Fatal(err)
	}
	if sub.SubscriptionId == "" || sub.ClientSecret == "" {
		t.Fatalf("subscription is missing provider ids: %+v", sub)
	}

	var row schema.User
	if result := env.db.First(&row, "id = ?", user.userId); result.Error != nil {
		t.Fatal(result.Error)
	}
	if row.BillingCustomerId == "" || row.BillingSubscriptionId != sub.SubscriptionId {
		t.Fatalf("provider ids should be stored on the user: %+v", row)
	}
	if row.SubscriptionStatus != schema.SubscriptionActive {
		t.Fatalf("subscription status should be active, got %v", row.SubscriptionStatus)
	}
}

func TestCreateSubscriptionReusesExisting(t *testing.T) {
	env := setupTestEnv(t)

	user, err := env.newUser("iris")
	if err != nil {
		t.Fatal(err)
	}

	first, err := user.createSubscription()
	if err != nil {
		t.Fatal(err)
	}
	second, err := user.createSubscription()
	if err != nil {
		t.Fatal(err)
	}

	if first.SubscriptionId != second.SubscriptionId {
		t.Fatalf("repeat calls should reuse the subscription: %v vs %v", first.SubscriptionId, second.SubscriptionId)
	}
	if len(env.billing.Subscriptions) != 1 {
		t.Fatalf("provider should hold exactly one subscription, got %d", len(env.billing.Subscriptions))
	}
}
