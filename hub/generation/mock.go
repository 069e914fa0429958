package generation

import (
	"context"
	"fmt"
	"strings"
)

// MockGenerator is a deterministic drop-in for the real provider, used in
// tests and for keyless local development. Shapes match the provider
// contract exactly.
type MockGenerator struct{}

func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

func (g *MockGenerator) GenerateBusinessIdeas(ctx context.Context, req BusinessIdeaRequest) ([]BusinessIdeaContent, error) {
	return []BusinessIdeaContent{
		{
			Title:            "AI-Powered Code Review Tool",
			Description:      "Automated code review system that detects bugs and suggests improvements.",
			Industry:         req.Industry,
			BusinessModel:    req.BusinessModel,
			TargetMarket:     req.TargetMarket,
			MatchScore:       8.5,
			MarketSize:       "$4.2B",
			CompetitionLevel: "Medium",
		},
		{
			Title:            "Smart Home Energy Manager",
			Description:      "IoT platform that optimizes home energy consumption using real-time data.",
			Industry:         req.Industry,
			BusinessModel:    req.BusinessModel,
			TargetMarket:     req.TargetMarket,
			MatchScore:       7.8,
			MarketSize:       "$12.8B",
			CompetitionLevel: "High",
		},
		{
			Title:            "Subscription Box Curation Service",
			Description:      "Curated product boxes tailored to customer preferences via a matching survey.",
			Industry:         req.Industry,
			BusinessModel:    req.BusinessModel,
			TargetMarket:     req.TargetMarket,
			MatchScore:       6.9,
			MarketSize:       "$22.7B",
			CompetitionLevel: "High",
		},
	}, nil
}

func (g *MockGenerator) GenerateRoadmap(ctx context.Context, req RoadmapRequest) (RoadmapPlan, error) {
	return RoadmapPlan{
		Roadmap: RoadmapContent{
			Title:             fmt.Sprintf("%v fundamentals for %v", req.Industry, req.TargetRole),
			Description:       "A structured path from fundamentals to applied practice.",
			Category:          req.Industry,
			EstimatedDuration: "12 weeks",
		},
		Phases: []PhaseContent{
			{PhaseNumber: 1, Title: "Foundations", Description: "Core concepts and terminology.", Status: "unlocked"},
			{PhaseNumber: 2, Title: "Applied Skills", Description: "Hands-on projects and tooling.", Status: "locked"},
			{PhaseNumber: 3, Title: "Launch Preparation", Description: "Bring it together into a launch plan.", Status: "locked"},
		},
		Milestones: [][]MilestoneContent{
			{
				{Title: "Industry Overview Course", Description: "Survey of the landscape.", ResourceType: "course", ResourceProvider: "Coursera", EstimatedHours: 10},
				{Title: "Foundational Reading", Description: "Key texts for the domain.", ResourceType: "book", ResourceProvider: "O'Reilly", EstimatedHours: 15},
			},
			{
				{Title: "Capstone Project", Description: "Build something real.", ResourceType: "project", ResourceProvider: "Self-guided", EstimatedHours: 40},
				{Title: "Tooling Deep Dive", Description: "Master the standard toolchain.", ResourceType: "course", ResourceProvider: "Udemy", EstimatedHours: 20},
			},
			{
				{Title: "Go-to-Market Plan", Description: "Draft and validate a launch plan.", ResourceType: "project", ResourceProvider: "Self-guided", EstimatedHours: 25},
			},
		},
	}, nil
}

func (g *MockGenerator) GenerateMarketAnalysis(ctx context.Context, req MarketAnalysisRequest) (MarketAnalysis, error) {
	return MarketAnalysis{
		MarketSize:      "$55.6B",
		GrowthRate:      "14% annually",
		KeyTrends:       []string{"Consolidation among incumbents", "Shift to subscription pricing", "Regulatory tightening"},
		Opportunities:   []string{"Underserved mid-market segment", "Integration partnerships"},
		Challenges:      []string{"High customer acquisition cost", "Entrenched competitors"},
		CompetitorCount: 12,
		TopCompetitors: []Competitor{
			{Name: "MarketLeader Inc", Description: "Dominant incumbent with enterprise focus.", Stage: "public"},
			{Name: "FastFollower Labs", Description: "Well-funded challenger targeting SMBs.", Stage: "series-b"},
		},
	}, nil
}

func (g *MockGenerator) GenerateMentorReply(ctx context.Context, message string, userCtx MentorContext) (string, error) {
	return fmt.Sprintf(
		"That's a great question about %q. Focus on validating demand before investing heavily: talk to potential customers in the %v space and let their feedback shape your next step.",
		message, userCtx.Industry,
	), nil
}

func (g *MockGenerator) GenerateLegalDocument(ctx context.Context, req LegalDocumentRequest) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "%v\n\n", strings.ToUpper(req.DocumentType))
	fmt.Fprintf(&b, "This %v is entered into by [COMPANY NAME], a %v organized under the laws of %v.\n\n", req.DocumentType, req.BusinessType, req.Jurisdiction)
	for i, requirement := range req.SpecialRequirements {
		fmt.Fprintf(&b, "Section %d. %v.\n", i+1, requirement)
	}
	b.WriteString("\nDISCLAIMER: This document is a template and does not constitute legal advice.\n")
	return b.String(), nil
}
