package tests

import (
	"testing"
)

func TestGenerateIdeas(t *testing.T) {
	env := setupTestEnv(t)

	user, err := env.newUser("ivy")
	if err != nil {
		t.Fatal(err)
	}

	body := map[string]interface{}{
		"industry": "fintech", "business_model": "saas", "target_market": "smb",
	}

	ideas, err := user.generateIdeas(body)
	if err != nil {
		t.Fatal(err)
	}
	if len(ideas) != 3 {
		t.Fatalf("expected 3 ideas, got %d", len(ideas))
	}
	for _, idea := range ideas {
		if idea.Industry != "fintech" || !idea.AiGenerated {
			t.Fatalf("unexpected idea: %+v", idea)
		}
	}
}

func TestRepeatGenerationKeepsHistory(t *testing.T) {
	env := setupTestEnv(t)

	user, err := env.newUser("judy")
	if err != nil {
		t.Fatal(err)
	}

	body := map[string]interface{}{
		"industry": "fintech", "business_model": "saas", "target_market": "smb",
	}

	if _, err := user.generateIdeas(body); err != nil {
		t.Fatal(err)
	}
	if _, err := user.generateIdeas(body); err != nil {
		t.Fatal(err)
	}

	ideas, err := user.listIdeas()
	if err != nil {
		t.Fatal(err)
	}
	if len(ideas) != 6 {
		t.Fatalf("repeat generation should append, expected 6 ideas, got %d", len(ideas))
	}
}

func TestGenerateIdeasValidation(t *testing.T) {
	env := setupTestEnv(t)

	user, err := env.newUser("kevin")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := user.generateIdeas(map[string]interface{}{"industry": "fintech"}); err == nil {
		t.Fatal("generation without required fields should fail")
	}
}

func TestIdeasArePerUser(t *testing.T) {
	env := setupTestEnv(t)

	a, err := env.newUser("liam")
	if err != nil {
		t.Fatal(err)
	}
	b, err := env.newUser("mona")
	if err != nil {
		t.Fatal(err)
	}

	body := map[string]interface{}{
		"industry": "fintech", "business_model": "saas", "target_market": "smb",
	}
	if _, err := a.generateIdeas(body); err != nil {
		t.Fatal(err)
	}

	ideas, err := b.listIdeas()
	if err != nil {
		t.Fatal(err)
	}
	if len(ideas) != 0 {
		t.Fatalf("user should not see another user's ideas, got %d", len(ideas))
	}
}
