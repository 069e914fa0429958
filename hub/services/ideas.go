package services

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"founderhub/hub/auth"
	"founderhub/hub/generation"
	"founderhub/hub/schema"
	"founderhub/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IdeaService struct {
	db        *gorm.DB
	generator generation.Generator
	userAuth  auth.IdentityProvider
}

func (s *IdeaService) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(s.userAuth.AuthMiddleware()...)

	r.Post("/generate", s.Generate)
	r.Get("/list", s.List)
	r.Post("/market-analysis", s.MarketAnalysis)

	return r
}

type generateIdeasRequest struct {
	Industry        string   `json:"industry"`
	BusinessModel   string   `json:"business_model"`
	TargetMarket    string   `json:"target_market"`
	BudgetRange     string   `json:"budget_range"`
	ExperienceLevel string   `json:"experience_level"`
	UserSkills      []string `json:"user_skills"`
}

type IdeaInfo struct {
	Id               uuid.UUID `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Industry         string    `json:"industry"`
	BusinessModel    string    `json:"business_model"`
	TargetMarket     string    `json:"target_market"`
	MatchScore       float64   `json:"match_score"`
	MarketSize       string    `json:"market_size"`
	CompetitionLevel string    `json:"competition_level"`
	AiGenerated      bool      `json:"ai_generated"`
	CreatedAt        time.Time `json:"created_at"`
}

func convertToIdeaInfo(idea *schema.BusinessIdea) IdeaInfo {
	return IdeaInfo{
		Id:               idea.Id,
		Title:            idea.Title,
		Description:      idea.Description,
		Industry:         idea.Industry,
		BusinessModel:    idea.BusinessModel,
		TargetMarket:     idea.TargetMarket,
		MatchScore:       idea.MatchScore,
		MarketSize:       idea.MarketSize,
		CompetitionLevel: idea.CompetitionLevel,
		AiGenerated:      idea.AiGenerated,
		CreatedAt:        idea.CreatedAt,
	}
}

// Generate asks the content generator for ideas and records one row per
// idea, in generator order. Repeat calls with identical content create new
// rows: ideas are historical records, not deduplicated by content.
func (s *IdeaService) Generate(w http.ResponseWriter, r *http.Request) {
	user, err := auth.UserFromContext(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var params generateIdeasRequest
	if !utils.ParseRequestBody(w, r, &params) {
		return
	}

	if params.Industry == "" || params.BusinessModel == "" || params.TargetMarket == "" {
		http.Error(w, "industry, business_model, and target_market are required", http.StatusBadRequest)
		return
	}

	skills := params.UserSkills
	if len(skills) == 0 {
		skills = user.Skills
	}

	contents, err := s.generator.GenerateBusinessIdeas(r.Context(), generation.BusinessIdeaRequest{
		Industry:        params.Industry,
		BusinessModel:   params.BusinessModel,
		TargetMarket:    params.TargetMarket,
		UserSkills:      skills,
		BudgetRange:     params.BudgetRange,
		ExperienceLevel: params.ExperienceLevel,
	})
	recordGeneration("business-ideas", err)
	if err != nil {
		http.Error(w, fmt.Sprintf("error generating business ideas: %v", err), http.StatusBadGateway)
		return
	}

	infos := make([]IdeaInfo, 0, len(contents))
	err = s.db.Transaction(func(txn *gorm.DB) error {
		for _, content := range contents {
			idea := schema.BusinessIdea{
				Id:               uuid.New(),
				UserId:           user.Id,
				Title:            content.Title,
				Description:      content.Description,
				Industry:         content.Industry,
				BusinessModel:    content.BusinessModel,
				TargetMarket:     content.TargetMarket,
				MatchScore:       content.MatchScore,
				MarketSize:       content.MarketSize,
				CompetitionLevel: content.CompetitionLevel,
				AiGenerated:      true,
			}
			if result := txn.Create(&idea); result.Error != nil {
				slog.Error("sql error saving business idea", "user_id", user.Id, "error", result.Error)
				return CodedError(schema.ErrDbAccessFailed, http.StatusInternalServerError)
			}
			infos = append(infos, convertToIdeaInfo(&idea))
		}
		return nil
	})
	if err != nil {
		http.Error(w, fmt.Sprintf("error saving business ideas: %v", err), GetResponseCode(err))
		return
	}

	utils.WriteJsonResponse(w, infos)
}

func (s *IdeaService) List(w http.ResponseWriter, r *http.Request) {
	user, err := auth.UserFromContext(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var ideas []schema.BusinessIdea
	result := s.db.Where("user_id = ?", user.Id).Order("created_at DESC").Find(&ideas)
	if result.Error != nil {
		slog.Error("sql error listing business ideas", "user_id", user.Id, "error", result.Error)
		http.Error(w, fmt.Sprintf("error listing business ideas: %v", schema.ErrDbAccessFailed), http.StatusInternalServerError)
		return
	}

	infos := make([]IdeaInfo, 0, len(ideas))
	for _, idea := range ideas {
		infos = append(infos, convertToIdeaInfo(&idea))
	}
	utils.WriteJsonResponse(w, infos)
}

type marketAnalysisRequest struct {
	Industry     string `json:"industry"`
	BusinessIdea string `json:"business_idea"`
	TargetMarket string `json:"target_market"`
}

// MarketAnalysis returns the generated analysis directly; nothing is
// persisted for this operation.
func (s *IdeaService) MarketAnalysis(w http.ResponseWriter, r *http.Request) {
	var params marketAnalysisRequest
	if !utils.ParseRequestBody(w, r, &params) {
		return
	}

	if params.Industry == "" || params.BusinessIdea == "" {
		http.Error(w, "industry and business_idea are required", http.StatusBadRequest)
		return
	}

	analysis, err := s.generator.GenerateMarketAnalysis(r.Context(), generation.MarketAnalysisRequest{
		Industry:     params.Industry,
		BusinessIdea: params.BusinessIdea,
		TargetMarket: params.TargetMarket,
	})
	recordGeneration("market-analysis", err)
	if err != nil {
		http.Error(w, fmt.Sprintf("error generating market analysis: %v", err), http.StatusBadGateway)
		return
	}

	utils.WriteJsonResponse(w, analysis)
}
