package generation

import (
	"context"
	"errors"
)

// ErrGenerationFailed is returned for any provider failure or malformed
// response. Callers surface it directly; there is no retry or fallback
// content at this layer.
var ErrGenerationFailed = errors.New("content generation failed")

type BusinessIdeaRequest struct {
	Industry        string   `json:"industry"`
	BusinessModel   string   `json:"businessModel"`
	TargetMarket    string   `json:"targetMarket"`
	UserSkills      []string `json:"userSkills"`
	BudgetRange     string   `json:"budgetRange"`
	ExperienceLevel string   `json:"experienceLevel"`
}

type BusinessIdeaContent struct {
	Title            string  `json:"title"`
	Description      string  `json:"description"`
	Industry         string  `json:"industry"`
	BusinessModel    string  `json:"businessModel"`
	TargetMarket     string  `json:"targetMarket"`
	MatchScore       float64 `json:"matchScore"`
	MarketSize       string  `json:"marketSize"`
	CompetitionLevel string  `json:"competitionLevel"`
}

type RoadmapRequest struct {
	Skills          []string `json:"skills"`
	Industry        string   `json:"industry"`
	ExperienceLevel string   `json:"experienceLevel"`
	TargetRole      string   `json:"targetRole"`
}

type RoadmapContent struct {
	Title             string `json:"title"`
	Description       string `json:"description"`
	Category          string `json:"category"`
	EstimatedDuration string `json:"estimatedDuration"`
}

type PhaseContent struct {
	PhaseNumber int    `json:"phaseNumber"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

type MilestoneContent struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	ResourceType     string `json:"resourceType"`
	ResourceProvider string `json:"resourceProvider"`
	ResourceUrl      string `json:"resourceUrl"`
	EstimatedHours   int    `json:"estimatedHours"`
}

type RoadmapPlan struct {
	Roadmap    RoadmapContent       `json:"roadmap"`
	Phases     []PhaseContent       `json:"phases"`
	Milestones [][]MilestoneContent `json:"milestones"`
}

type MarketAnalysisRequest struct {
	Industry     string `json:"industry"`
	BusinessIdea string `json:"businessIdea"`
	TargetMarket string `json:"targetMarket"`
}

type Competitor struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Stage       string `json:"stage"`
}

type MarketAnalysis struct {
	MarketSize      string       `json:"marketSize"`
	GrowthRate      string       `json:"growthRate"`
	KeyTrends       []string     `json:"keyTrends"`
	Opportunities   []string     `json:"opportunities"`
	Challenges      []string     `json:"challenges"`
	CompetitorCount int          `json:"competitorCount"`
	TopCompetitors  []Competitor `json:"topCompetitors"`
}

type MentorContext struct {
	Industry        string `json:"industry"`
	ExperienceLevel string `json:"experienceLevel"`
	BusinessGoals   string `json:"businessGoals"`
}

type LegalDocumentRequest struct {
	DocumentType        string   `json:"documentType"`
	BusinessType        string   `json:"businessType"`
	Jurisdiction        string   `json:"jurisdiction"`
	SpecialRequirements []string `json:"specialRequirements"`
}

// Generator is the content generation collaborator. Each method has a fixed
// response shape; implementations translate to whatever provider protocol
// they speak.
type Generator interface {
	GenerateBusinessIdeas(ctx context.Context, req BusinessIdeaRequest) ([]BusinessIdeaContent, error)

	GenerateRoadmap(ctx context.Context, req RoadmapRequest) (RoadmapPlan, error)

	GenerateMarketAnalysis(ctx context.Context, req MarketAnalysisRequest) (MarketAnalysis, error)

	GenerateMentorReply(ctx context.Context, message string, userCtx MentorContext) (string, error)

	GenerateLegalDocument(ctx context.Context, req LegalDocumentRequest) (string, error)
}
