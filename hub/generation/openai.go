package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sashabaranov/go-openai"
)

const (
	structuredModel = openai.GPT4oMini
	freeformModel   = openai.GPT4oMini
)

type OpenAIGenerator struct {
	client *openai.Client
}

func NewOpenAIGenerator(apiKey string) *OpenAIGenerator {
	return &OpenAIGenerator{client: openai.NewClient(apiKey)}
}

func (g *OpenAIGenerator) completeJson(ctx context.Context, systemPrompt, userPrompt string, dest interface{}) error {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: structuredModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		slog.Error("error calling content generator", "error", err)
		return fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	if len(resp.Choices) == 0 {
		return fmt.Errorf("%w: empty response from provider", ErrGenerationFailed)
	}

	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), dest); err != nil {
		slog.Error("error parsing generated content", "error", err)
		return fmt.Errorf("%w: malformed response: %v", ErrGenerationFailed, err)
	}

	return nil
}

func (g *OpenAIGenerator) completeText(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: freeformModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		slog.Error("error calling content generator", "error", err)
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: empty response from provider", ErrGenerationFailed)
	}

	return resp.Choices[0].Message.Content, nil
}

func (g *OpenAIGenerator) GenerateBusinessIdeas(ctx context.Context, req BusinessIdeaRequest) ([]BusinessIdeaContent, error) {
	userPrompt := fmt.Sprintf(
		`Generate 3 personalized business ideas for an entrepreneur with this profile:
- Industry Interest: %v
- Preferred Business Model: %v
- Target Market: %v
- Skills: %v
- Budget Range: %v
- Experience Level: %v

For each idea provide title, description, industry, businessModel, targetMarket,
matchScore (1-10), marketSize (e.g. "$45B"), and competitionLevel ("Low", "Medium", or "High").

Respond with JSON: {"ideas": [{"title": "...", "description": "...", "industry": "...",
"businessModel": "...", "targetMarket": "...", "matchScore": 0, "marketSize": "...",
"competitionLevel": "..."}]}`,
		req.Industry, req.BusinessModel, req.TargetMarket,
		strings.Join(req.UserSkills, ", "), req.BudgetRange, req.ExperienceLevel,
	)

	var result struct {
		Ideas []BusinessIdeaContent `json:"ideas"`
	}
	err := g.completeJson(ctx, "You are a business strategy expert.", userPrompt, &result)
	if err != nil {
		return nil, err
	}

	return result.Ideas, nil
}

func (g *OpenAIGenerator) GenerateRoadmap(ctx context.Context, req RoadmapRequest) (RoadmapPlan, error) {
	userPrompt := fmt.Sprintf(
		`Create a learning roadmap for someone with this profile:
- Current Skills: %v
- Target Industry: %v
- Experience Level: %v
- Target Role: %v

Create 3 phases, each with 2-4 milestones. Respond with JSON:
{"roadmap": {"title": "...", "description": "...", "category": "...", "estimatedDuration": "..."},
"phases": [{"phaseNumber": 1, "title": "...", "description": "...", "status": "..."}],
"milestones": [[{"title": "...", "description": "...", "resourceType": "course",
"resourceProvider": "Coursera", "resourceUrl": "...", "estimatedHours": 0}]]}
The milestones field is one list per phase, in phase order.`,
		strings.Join(req.Skills, ", "), req.Industry, req.ExperienceLevel, req.TargetRole,
	)

	var plan RoadmapPlan
	err := g.completeJson(ctx, "You are a learning and development expert.", userPrompt, &plan)
	if err != nil {
		return RoadmapPlan{}, err
	}

	return plan, nil
}

func (g *OpenAIGenerator) GenerateMarketAnalysis(ctx context.Context, req MarketAnalysisRequest) (MarketAnalysis, error) {
	userPrompt := fmt.Sprintf(
		`Provide a market analysis for:
- Industry: %v
- Business Idea: %v
- Target Market: %v

Respond with JSON: {"marketSize": "...", "growthRate": "...", "keyTrends": ["..."],
"opportunities": ["..."], "challenges": ["..."], "competitorCount": 0,
"topCompetitors": [{"name": "...", "description": "...", "stage": "..."}]}`,
		req.Industry, req.BusinessIdea, req.TargetMarket,
	)

	var analysis MarketAnalysis
	err := g.completeJson(ctx, "You are a market research analyst.", userPrompt, &analysis)
	if err != nil {
		return MarketAnalysis{}, err
	}

	return analysis, nil
}

func (g *OpenAIGenerator) GenerateMentorReply(ctx context.Context, message string, userCtx MentorContext) (string, error) {
	orDefault := func(v string) string {
		if v == "" {
			return "Not specified"
		}
		return v
	}

	userPrompt := fmt.Sprintf(
		`User Context:
- Industry: %v
- Experience Level: %v
- Business Goals: %v

User Question: %v

Provide a helpful, actionable, and encouraging response as a mentor would.
Keep it conversational but professional. Limit to 2-3 paragraphs.`,
		orDefault(userCtx.Industry), orDefault(userCtx.ExperienceLevel), orDefault(userCtx.BusinessGoals), message,
	)

	return g.completeText(ctx, "You are an experienced business mentor who provides practical, actionable advice to entrepreneurs. Be encouraging but realistic.", userPrompt)
}

func (g *OpenAIGenerator) GenerateLegalDocument(ctx context.Context, req LegalDocumentRequest) (string, error) {
	userPrompt := fmt.Sprintf(
		`Generate a comprehensive %v for:
- Business Type: %v
- Jurisdiction: %v
- Special Requirements: %v

Create a professional, legally-structured document with all necessary sections
and clauses for the specified business type and jurisdiction. Use placeholders
for company-specific information like [COMPANY NAME] and [ADDRESS], and include
appropriate disclaimers.`,
		req.DocumentType, req.BusinessType, req.Jurisdiction, strings.Join(req.SpecialRequirements, ", "),
	)

	return g.completeText(ctx, "You are a legal expert who creates professional legal documents.", userPrompt)
}
