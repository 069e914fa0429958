package generation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockIdeasFollowRequest(t *testing.T) {
	g := NewMockGenerator()

	ideas, err := g.GenerateBusinessIdeas(context.Background(), BusinessIdeaRequest{
		Industry: "fintech", BusinessModel: "saas", TargetMarket: "smb",
	})
	require.NoError(t, err)
	require.Len(t, ideas, 3)

	for _, idea := range ideas {
		assert.Equal(t, "fintech", idea.Industry)
		assert.Equal(t, "saas", idea.BusinessModel)
		assert.Equal(t, "smb", idea.TargetMarket)
		assert.NotEmpty(t, idea.Title)
		assert.Greater(t, idea.MatchScore, 0.0)
	}
}

func TestMockRoadmapShape(t *testing.T) {
	g := NewMockGenerator()

	plan, err := g.GenerateRoadmap(context.Background(), RoadmapRequest{
		Industry: "saas", TargetRole: "founder",
	})
	require.NoError(t, err)

	require.Len(t, plan.Phases, 3)
	require.Len(t, plan.Milestones, 3)
	assert.Len(t, plan.Milestones[0], 2)
	assert.Len(t, plan.Milestones[1], 2)
	assert.Len(t, plan.Milestones[2], 1)

	for i, phase := range plan.Phases {
		assert.Equal(t, i+1, phase.PhaseNumber)
		assert.NotEmpty(t, phase.Title)
	}
}

func TestMockLegalDocumentIncludesRequirements(t *testing.T) {
	g := NewMockGenerator()

	content, err := g.GenerateLegalDocument(context.Background(), LegalDocumentRequest{
		DocumentType:        "privacy policy",
		BusinessType:        "LLC",
		Jurisdiction:        "Delaware",
		SpecialRequirements: []string{"GDPR compliance", "CCPA compliance"},
	})
	require.NoError(t, err)

	assert.Contains(t, content, "Delaware")
	assert.Contains(t, content, "Section 1. GDPR compliance")
	assert.Contains(t, content, "Section 2. CCPA compliance")
	assert.Contains(t, content, "DISCLAIMER")
}
