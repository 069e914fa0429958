package services

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"founderhub/hub/auth"
	"founderhub/hub/schema"
	"founderhub/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UserService struct {
	db       *gorm.DB
	userAuth auth.IdentityProvider
}

func (s *UserService) Routes() chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		if s.userAuth.AllowDirectSignup() {
			r.Post("/signup", s.Signup)
		}
		r.Get("/login", s.Login)
	})

	r.Group(func(r chi.Router) {
		r.Use(s.userAuth.AuthMiddleware()...)

		r.Get("/info", s.Info)
		r.Post("/sync", s.Sync)
		r.Post("/onboarding", s.CompleteOnboarding)
		r.Get("/badges", s.Badges)
	})

	r.Group(func(r chi.Router) {
		r.Use(s.userAuth.AuthMiddleware()...)
		r.Use(auth.AdminOnly)

		r.Delete("/{user_id}", s.DeleteUser)
	})

	return r
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupResponse struct {
	UserId uuid.UUID `json:"user_id"`
}

func (s *UserService) Signup(w http.ResponseWriter, r *http.Request) {
	var params signupRequest
	if !utils.ParseRequestBody(w, r, &params) {
		return
	}

	if params.Email == "" || params.Password == "" {
		http.Error(w, "email and password are required", http.StatusBadRequest)
		return
	}

	userId, err := s.userAuth.CreateUser(params.Email, params.Password)
	if err != nil {
		responseCode := http.StatusInternalServerError
		if errors.Is(err, auth.ErrEmailAlreadyInUse) {
			responseCode = http.StatusConflict
		}
		http.Error(w, err.Error(), responseCode)
		return
	}

	utils.WriteJsonResponse(w, signupResponse{UserId: userId})
}

type loginResponse struct {
	UserId      uuid.UUID `json:"user_id"`
	AccessToken string    `json:"access_token"`
}

func (s *UserService) Login(w http.ResponseWriter, r *http.Request) {
	email, password, ok := r.BasicAuth()
	if !ok {
		http.Error(w, "missing or invalid Authorization header", http.StatusUnauthorized)
		return
	}

	login, err := s.userAuth.LoginWithEmail(email, password)
	if err != nil {
		responseCode := http.StatusInternalServerError
		switch {
		case errors.Is(err, auth.ErrUserNotFoundWithEmail):
			responseCode = http.StatusNotFound
		case errors.Is(err, auth.ErrInvalidCredentials):
			responseCode = http.StatusUnauthorized
		}
		http.Error(w, fmt.Sprintf("login failed: %v", err), responseCode)
		return
	}

	utils.WriteJsonResponse(w, loginResponse{UserId: login.UserId, AccessToken: login.AccessToken})
}

type UserInfo struct {
	Id                  uuid.UUID `json:"id"`
	Email               string    `json:"email"`
	FirstName           string    `json:"first_name"`
	LastName            string    `json:"last_name"`
	ProfileImageUrl     string    `json:"profile_image_url"`
	Industry            string    `json:"industry"`
	ExperienceLevel     string    `json:"experience_level"`
	BudgetRange         string    `json:"budget_range"`
	BusinessGoals       string    `json:"business_goals"`
	Skills              []string  `json:"skills"`
	OnboardingCompleted bool      `json:"onboarding_completed"`
	SubscriptionStatus  string    `json:"subscription_status"`
	Admin               bool      `json:"admin"`
}

func convertToUserInfo(user *schema.User) UserInfo {
	return UserInfo{
		Id:                  user.Id,
		Email:               user.Email,
		FirstName:           user.FirstName,
		LastName:            user.LastName,
		ProfileImageUrl:     user.ProfileImageUrl,
		Industry:            user.Industry,
		ExperienceLevel:     user.ExperienceLevel,
		BudgetRange:         user.BudgetRange,
		BusinessGoals:       user.BusinessGoals,
		Skills:              user.Skills,
		OnboardingCompleted: user.OnboardingCompleted,
		SubscriptionStatus:  user.SubscriptionStatus,
		Admin:               user.IsAdmin,
	}
}

func (s *UserService) Info(w http.ResponseWriter, r *http.Request) {
	user, err := auth.UserFromContext(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.WriteJsonResponse(w, convertToUserInfo(&user))
}

type syncRequest struct {
	Email           *string `json:"email"`
	FirstName       *string `json:"first_name"`
	LastName        *string `json:"last_name"`
	ProfileImageUrl *string `json:"profile_image_url"`
}

// Sync merges profile claims from the identity provider into the user row.
// Only supplied fields are written, last write wins; a row is created if
// the id has not been seen before.
func (s *UserService) Sync(w http.ResponseWriter, r *http.Request) {
	user, err := auth.UserFromContext(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var params syncRequest
	if !utils.ParseRequestBody(w, r, &params) {
		return
	}

	updated, err := upsertUser(s.db, user.Id, params)
	if err != nil {
		http.Error(w, fmt.Sprintf("error syncing user: %v", err), GetResponseCode(err))
		return
	}

	utils.WriteJsonResponse(w, convertToUserInfo(&updated))
}

func upsertUser(db *gorm.DB, userId uuid.UUID, claims syncRequest) (schema.User, error) {
	var user schema.User

	err := db.Transaction(func(txn *gorm.DB) error {
		result := txn.Limit(1).Find(&user, "id = ?", userId)
		if result.Error != nil {
			slog.Error("sql error looking up user for upsert", "user_id", userId, "error", result.Error)
			return CodedError(schema.ErrDbAccessFailed, http.StatusInternalServerError)
		}

		if result.RowsAffected == 0 {
			user = schema.User{Id: userId, SubscriptionStatus: schema.SubscriptionFree}
			if claims.Email != nil {
				user.Email = *claims.Email
			}
			if claims.FirstName != nil {
				user.FirstName = *claims.FirstName
			}
			if claims.LastName != nil {
				user.LastName = *claims.LastName
			}
			if claims.ProfileImageUrl != nil {
				user.ProfileImageUrl = *claims.ProfileImageUrl
			}
			if result := txn.Create(&user); result.Error != nil {
				slog.Error("sql error creating user from identity claims", "user_id", userId, "error", result.Error)
				return CodedError(schema.ErrDbAccessFailed, http.StatusInternalServerError)
			}
			return nil
		}

		updates := map[string]interface{}{}
		if claims.Email != nil {
			updates["email"] = *claims.Email
		}
		if claims.FirstName != nil {
			updates["first_name"] = *claims.FirstName
		}
		if claims.LastName != nil {
			updates["last_name"] = *claims.LastName
		}
		if claims.ProfileImageUrl != nil {
			updates["profile_image_url"] = *claims.ProfileImageUrl
		}

		if len(updates) > 0 {
			if result := txn.Model(&user).Updates(updates); result.Error != nil {
				slog.Error("sql error merging identity claims", "user_id", userId, "error", result.Error)
				return CodedError(schema.ErrDbAccessFailed, http.StatusInternalServerError)
			}
		}

		return nil
	})
	if err != nil {
		return schema.User{}, err
	}

	return user, nil
}

type onboardingRequest struct {
	Industry        *string  `json:"industry"`
	ExperienceLevel *string  `json:"experience_level"`
	BudgetRange     *string  `json:"budget_range"`
	BusinessGoals   *string  `json:"business_goals"`
	Skills          []string `json:"skills"`
}

// The fixed compliance checklist every user starts with after onboarding.
var initialComplianceItems = []schema.ComplianceItem{
	{ItemType: "registration", Title: "Business Registration", Description: "Register your business entity with the appropriate government authorities", Order: 1},
	{ItemType: "tax_id", Title: "Tax ID (EIN)", Description: "Obtain a Federal Employer Identification Number", Order: 2},
	{ItemType: "privacy_policy", Title: "Privacy Policy", Description: "Create a comprehensive privacy policy for your business", Order: 3},
	{ItemType: "terms_of_service", Title: "Terms of Service", Description: "Draft terms of service for your platform", Order: 4},
}

// CompleteOnboarding sets the profile fields, marks onboarding complete, and
// seeds the compliance checklist. The whole compound action runs in one
// transaction so a failure leaves no partial checklist behind.
func (s *UserService) CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	user, err := auth.UserFromContext(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var params onboardingRequest
	if !utils.ParseRequestBody(w, r, &params) {
		return
	}

	err = s.db.Transaction(func(txn *gorm.DB) error {
		updates := map[string]interface{}{"onboarding_completed": true}
		if params.Industry != nil {
			updates["industry"] = *params.Industry
		}
		if params.ExperienceLevel != nil {
			updates["experience_level"] = *params.ExperienceLevel
		}
		if params.BudgetRange != nil {
			updates["budget_range"] = *params.BudgetRange
		}
		if params.BusinessGoals != nil {
			updates["business_goals"] = *params.BusinessGoals
		}
		if params.Skills != nil {
			updates["skills"] = datatypes.NewJSONSlice(params.Skills)
		}

		result := txn.Model(&schema.User{}).Where("id = ?", user.Id).Updates(updates)
		if result.Error != nil {
			slog.Error("sql error updating user onboarding", "user_id", user.Id, "error", result.Error)
			return CodedError(schema.ErrDbAccessFailed, http.StatusInternalServerError)
		}

		// Re-onboarding must not duplicate the checklist.
		var existing int64
		if result := txn.Model(&schema.ComplianceItem{}).Where("user_id = ?", user.Id).Count(&existing); result.Error != nil {
			slog.Error("sql error counting compliance items", "user_id", user.Id, "error", result.Error)
			return CodedError(schema.ErrDbAccessFailed, http.StatusInternalServerError)
		}

		if existing == 0 {
			for _, item := range initialComplianceItems {
				item.Id = uuid.New()
				item.UserId = user.Id
				item.Status = schema.CompliancePending
				if result := txn.Create(&item); result.Error != nil {
					slog.Error("sql error seeding compliance item", "user_id", user.Id, "item_type", item.ItemType, "error", result.Error)
					return CodedError(schema.ErrDbAccessFailed, http.StatusInternalServerError)
				}
			}
		}

		return nil
	})
	if err != nil {
		http.Error(w, fmt.Sprintf("error completing onboarding: %v", err), GetResponseCode(err))
		return
	}

	updated, err := schema.GetUser(user.Id, s.db)
	if err != nil {
		http.Error(w, fmt.Sprintf("error loading user: %v", err), GetResponseCode(notFoundOrInternal(err)))
		return
	}

	utils.WriteJsonResponse(w, convertToUserInfo(&updated))
}

type BadgeInfo struct {
	Id          uuid.UUID `json:"id"`
	BadgeType   string    `json:"badge_type"`
	BadgeName   string    `json:"badge_name"`
	Description string    `json:"description"`
	EarnedAt    time.Time `json:"earned_at"`
}

func (s *UserService) Badges(w http.ResponseWriter, r *http.Request) {
	user, err := auth.UserFromContext(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var badges []schema.UserBadge
	result := s.db.Where("user_id = ?", user.Id).Order("earned_at DESC").Find(&badges)
	if result.Error != nil {
		slog.Error("sql error listing badges", "user_id", user.Id, "error", result.Error)
		http.Error(w, fmt.Sprintf("error listing badges: %v", schema.ErrDbAccessFailed), http.StatusInternalServerError)
		return
	}

	infos := make([]BadgeInfo, 0, len(badges))
	for _, badge := range badges {
		infos = append(infos, BadgeInfo{
			Id:          badge.Id,
			BadgeType:   badge.BadgeType,
			BadgeName:   badge.BadgeName,
			Description: badge.Description,
			EarnedAt:    badge.EarnedAt,
		})
	}
	utils.WriteJsonResponse(w, infos)
}

// DeleteUser removes the user row; every owned entity goes with it via the
// cascade constraints.
func (s *UserService) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userId, err := utils.URLParamUUID(r, "user_id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	err = s.db.Transaction(func(txn *gorm.DB) error {
		if _, err := schema.GetUser(userId, txn); err != nil {
			return notFoundOrInternal(err)
		}

		// OnDelete:CASCADE on the owned associations removes everything
		// below the user, transitively through roadmaps and phases.
		result := txn.Delete(&schema.User{Id: userId})
		if result.Error != nil {
			slog.Error("sql error deleting user", "user_id", userId, "error", result.Error)
			return CodedError(schema.ErrDbAccessFailed, http.StatusInternalServerError)
		}

		return nil
	})
	if err != nil {
		http.Error(w, fmt.Sprintf("error deleting user %v: %v", userId, err), GetResponseCode(err))
		return
	}

	if err := s.userAuth.DeleteUser(userId); err != nil {
		http.Error(w, fmt.Sprintf("error deleting user %v: %v", userId, err), http.StatusInternalServerError)
		return
	}

	utils.WriteSuccess(w)
}
