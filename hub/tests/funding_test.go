package tests

import (
	"testing"

	"founderhub/hub/schema"

	"github.com/google/uuid"
)

func seedOpportunity(t *testing.T, env *testEnv, name string, active bool) uuid.UUID {
	opp := schema.FundingOpportunity{
		Id:          uuid.New(),
		Name:        name,
		Description: "test opportunity",
		Type:        schema.FundingVc,
		Stage:       "seed",
		MinAmount:   100000,
		MaxAmount:   2000000,
		Active:      active,
	}
	if result := env.db.Create(&opp); result.Error != nil {
		t.Fatal(result.Error)
	}
	return opp.Id
}

func TestFundingMatchesOrderedByScore(t *testing.T) {
	env := setupTestEnv(t)

	user, err := env.newUser("carl")
	if err != nil {
		t.Fatal(err)
	}

	first := seedOpportunity(t, env, "Seed Fund A", true)
	second := seedOpportunity(t, env, "Seed Fund B", true)

	if _, err := user.createFundingMatch(map[string]interface{}{"funding_id": first, "match_score": 6.5}); err != nil {
		t.Fatal(err)
	}
	if _, err := user.createFundingMatch(map[string]interface{}{"funding_id": second, "match_score": 9.1, "priority": schema.PriorityHigh}); err != nil {
		t.Fatal(err)
	}

	matches, err := user.fundingMatches()
	if err != nil {
		t.Fatal(err)
	}

	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].MatchScore != 9.1 || matches[1].MatchScore != 6.5 {
		t.Fatalf("matches should be ordered best first: %v, %v", matches[0].MatchScore, matches[1].MatchScore)
	}
	if matches[0].Funding.Name != "Seed Fund B" {
		t.Fatalf("match should include opportunity details, got %+v", matches[0].Funding)
	}
	if matches[0].Priority != schema.PriorityHigh || matches[1].Priority != schema.PriorityMedium {
		t.Fatalf("unexpected priorities: %v, %v", matches[0].Priority, matches[1].Priority)
	}
	if matches[0].Status != schema.MatchStatusMatched {
		t.Fatalf("new match should have status matched, got %v", matches[0].Status)
	}
}

func TestCreateMatchRejectsInactiveOpportunity(t *testing.T) {
	env := setupTestEnv(t)

	user, err := env.newUser("dina")
	if err != nil {
		t.Fatal(err)
	}

	retired := seedOpportunity(t, env, "Retired Fund", false)

	if _, err := user.createFundingMatch(map[string]interface{}{"funding_id": retired, "match_score": 5.0}); err == nil {
		t.Fatal("matching an inactive opportunity should fail")
	}

	if _, err := user.createFundingMatch(map[string]interface{}{"funding_id": uuid.New(), "match_score": 5.0}); err != ErrNotFound {
		t.Fatalf("matching an unknown opportunity should return not found, got %v", err)
	}
}

func TestOpportunitiesListsOnlyActive(t *testing.T) {
	env := setupTestEnv(t)

	user, err := env.newUser("evan")
	if err != nil {
		t.Fatal(err)
	}

	seedOpportunity(t, env, "Active Fund", true)
	seedOpportunity(t, env, "Retired Fund", false)

	var opportunities []map[string]interface{}
	if err := user.Get("/funding/opportunities").Do(&opportunities); err != nil {
		t.Fatal(err)
	}

	if len(opportunities) != 1 {
		t.Fatalf("expected only the active opportunity, got %d", len(opportunities))
	}
	if opportunities[0]["name"] != "Active Fund" {
		t.Fatalf("unexpected opportunity: %v", opportunities[0]["name"])
	}
}

func TestMatchesArePerUser(t *testing.T) {
	env := setupTestEnv(t)

	a, err := env.newUser("fred")
	if err != nil {
		t.Fatal(err)
	}
	b, err := env.newUser("gina")
	if err != nil {
		t.Fatal(err)
	}

	opp := seedOpportunity(t, env, "Seed Fund", true)
	if _, err := a.createFundingMatch(map[string]interface{}{"funding_id": opp, "match_score": 7.0}); err != nil {
		t.Fatal(err)
	}

	matches, err := b.fundingMatches()
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 0 {
		t.Fatalf("user should not see another user's matches, got %d", len(matches))
	}
}
