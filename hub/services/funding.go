package services

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"founderhub/hub/auth"
	"founderhub/hub/schema"
	"founderhub/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FundingService struct {
	db       *gorm.DB
	userAuth auth.IdentityProvider
}

func (s *FundingService) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(s.userAuth.AuthMiddleware()...)

	r.Get("/opportunities", s.Opportunities)
	r.Get("/matches", s.Matches)
	r.Post("/matches", s.CreateMatch)

	return r
}

type OpportunityInfo struct {
	Id             uuid.UUID  `json:"id"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	Type           string     `json:"type"`
	Stage          string     `json:"stage"`
	MinAmount      float64    `json:"min_amount"`
	MaxAmount      float64    `json:"max_amount"`
	EquityRequired float64    `json:"equity_required"`
	Location       string     `json:"location"`
	Industries     []string   `json:"industries"`
	Deadline       *time.Time `json:"application_deadline"`
	Website        string     `json:"website"`
	ContactEmail   string     `json:"contact_email"`
}

func convertToOpportunityInfo(opp *schema.FundingOpportunity) OpportunityInfo {
	return OpportunityInfo{
		Id:             opp.Id,
		Name:           opp.Name,
		Description:    opp.Description,
		Type:           opp.Type,
		Stage:          opp.Stage,
		MinAmount:      opp.MinAmount,
		MaxAmount:      opp.MaxAmount,
		EquityRequired: opp.EquityRequired,
		Location:       opp.Location,
		Industries:     opp.Industries,
		Deadline:       opp.ApplicationDeadline,
		Website:        opp.Website,
		ContactEmail:   opp.ContactEmail,
	}
}

// Opportunities lists active funding opportunities. Inactive rows stay in
// the catalog for existing matches but are never offered for new ones.
func (s *FundingService) Opportunities(w http.ResponseWriter, r *http.Request) {
	var opportunities []schema.FundingOpportunity
	result := s.db.Where("active = ?", true).Order("created_at DESC").Find(&opportunities)
	if result.Error != nil {
		slog.Error("sql error listing funding opportunities", "error", result.Error)
		http.Error(w, fmt.Sprintf("error listing funding opportunities: %v", schema.ErrDbAccessFailed), http.StatusInternalServerError)
		return
	}

	infos := make([]OpportunityInfo, 0, len(opportunities))
	for _, opp := range opportunities {
		infos = append(infos, convertToOpportunityInfo(&opp))
	}
	utils.WriteJsonResponse(w, infos)
}

type MatchInfo struct {
	Id         uuid.UUID       `json:"id"`
	MatchScore float64         `json:"match_score"`
	Priority   string          `json:"priority"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	Funding    OpportunityInfo `json:"funding"`
}

// Matches returns the user's funding matches joined with their opportunity
// details, best match first.
func (s *FundingService) Matches(w http.ResponseWriter, r *http.Request) {
	user, err := auth.UserFromContext(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var matches []schema.UserFundingMatch
	result := s.db.Preload("Funding").Where("user_id = ?", user.Id).Order("match_score DESC").Find(&matches)
	if result.Error != nil {
		slog.Error("sql error listing funding matches", "user_id", user.Id, "error", result.Error)
		http.Error(w, fmt.Sprintf("error listing funding matches: %v", schema.ErrDbAccessFailed), http.StatusInternalServerError)
		return
	}

	infos := make([]MatchInfo, 0, len(matches))
	for _, match := range matches {
		info := MatchInfo{
			Id:         match.Id,
			MatchScore: match.MatchScore,
			Priority:   match.Priority,
			Status:     match.Status,
			CreatedAt:  match.CreatedAt,
		}
		if match.Funding != nil {
			info.Funding = convertToOpportunityInfo(match.Funding)
		}
		infos = append(infos, info)
	}
	utils.WriteJsonResponse(w, infos)
}

type createMatchRequest struct {
	FundingId  uuid.UUID `json:"funding_id"`
	MatchScore float64   `json:"match_score"`
	Priority   string    `json:"priority"`
}

// CreateMatch records a match between the user and an active opportunity.
// Unknown or inactive opportunities are rejected.
func (s *FundingService) CreateMatch(w http.ResponseWriter, r *http.Request) {
	user, err := auth.UserFromContext(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var params createMatchRequest
	if !utils.ParseRequestBody(w, r, &params) {
		return
	}

	if params.FundingId == uuid.Nil {
		http.Error(w, "funding_id is required", http.StatusBadRequest)
		return
	}

	priority := params.Priority
	if priority == "" {
		priority = schema.PriorityMedium
	}

	match := schema.UserFundingMatch{
		Id:         uuid.New(),
		UserId:     user.Id,
		FundingId:  params.FundingId,
		MatchScore: params.MatchScore,
		Priority:   priority,
		Status:     schema.MatchStatusMatched,
	}

	err = s.db.Transaction(func(txn *gorm.DB) error {
		opportunity, err := schema.GetFundingOpportunity(params.FundingId, txn)
		if err != nil {
			return notFoundOrInternal(err)
		}

		if !opportunity.Active {
			return CodedError(fmt.Errorf("funding opportunity is no longer active"), http.StatusBadRequest)
		}

		if result := txn.Create(&match); result.Error != nil {
			slog.Error("sql error creating funding match", "user_id", user.Id, "funding_id", params.FundingId, "error", result.Error)
			return CodedError(schema.ErrDbAccessFailed, http.StatusInternalServerError)
		}
		return nil
	})
	if err != nil {
		http.Error(w, fmt.Sprintf("error creating funding match: %v", err), GetResponseCode(err))
		return
	}

	utils.WriteJsonResponse(w, MatchInfo{
		Id:         match.Id,
		MatchScore: match.MatchScore,
		Priority:   match.Priority,
		Status:     match.Status,
		CreatedAt:  match.CreatedAt,
	})
}
