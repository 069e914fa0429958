package services

import (
	"fmt"
	"log/slog"
	"net/http"

	"founderhub/hub/auth"
	"founderhub/hub/billing"
	"founderhub/hub/schema"
	"founderhub/utils"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

type BillingService struct {
	db        *gorm.DB
	provider  billing.Provider
	userAuth  auth.IdentityProvider
	variables Variables
}

func (s *BillingService) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(s.userAuth.AuthMiddleware()...)

	r.Post("/subscription", s.CreateSubscription)

	return r
}

type SubscriptionInfo struct {
	SubscriptionId string `json:"subscription_id"`
	ClientSecret   string `json:"client_secret,omitempty"`
	Status         string `json:"status"`
}

// CreateSubscription starts the pro subscription for the user. If the user
// already has a subscription at the provider it is returned as-is instead
// of creating a second one. A provider customer is created on first use and
// its id kept on the user row.
func (s *BillingService) CreateSubscription(w http.ResponseWriter, r *http.Request) {
	user, err := auth.UserFromContext(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if user.BillingSubscriptionId != "" {
		existing, err := s.provider.GetSubscription(user.BillingSubscriptionId)
		if err != nil {
			slog.Error("billing provider error retrieving subscription", "user_id", user.Id, "error", err)
			http.Error(w, fmt.Sprintf("error retrieving subscription: %v", err), http.StatusBadGateway)
			return
		}
		utils.WriteJsonResponse(w, SubscriptionInfo{
			SubscriptionId: existing.SubscriptionId, ClientSecret: existing.ClientSecret, Status: existing.Status,
		})
		return
	}

	if user.Email == "" {
		http.Error(w, "user has no email address for billing", http.StatusBadRequest)
		return
	}

	customerId := user.BillingCustomerId
	if customerId == "" {
		name := fmt.Sprintf("%v %v", user.FirstName, user.LastName)
		customerId, err = s.provider.CreateCustomer(user.Email, name)
		if err != nil {
			slog.Error("billing provider error creating customer", "user_id", user.Id, "error", err)
			http.Error(w, fmt.Sprintf("error creating billing customer: %v", err), http.StatusBadGateway)
			return
		}
	}

	subscription, err := s.provider.CreateSubscription(customerId, s.variables.ProPriceId)
	if err != nil {
		slog.Error("billing provider error creating subscription", "user_id", user.Id, "error", err)
		http.Error(w, fmt.Sprintf("error creating subscription: %v", err), http.StatusBadGateway)
		return
	}

	updates := map[string]interface{}{
		"billing_customer_id":     customerId,
		"billing_subscription_id": subscription.SubscriptionId,
		"subscription_status":     schema.SubscriptionActive,
	}
	if result := s.db.Model(&schema.User{Id: user.Id}).Updates(updates); result.Error != nil {
		slog.Error("sql error saving billing ids", "user_id", user.Id, "error", result.Error)
		http.Error(w, fmt.Sprintf("error saving subscription: %v", schema.ErrDbAccessFailed), http.StatusInternalServerError)
		return
	}

	utils.WriteJsonResponse(w, SubscriptionInfo{
		SubscriptionId: subscription.SubscriptionId, ClientSecret: subscription.ClientSecret, Status: subscription.Status,
	})
}
