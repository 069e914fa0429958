package tests

import (
	"testing"

	"founderhub/hub/schema"
)

func TestSignupAndLogin(t *testing.T) {
	env := setupTestEnv(t)

	user, err := env.newUser("alice")
	if err != nil {
		t.Fatal(err)
	}

	info, err := user.userInfo()
	if err != nil {
		t.Fatal(err)
	}

	if info.Email != "alice@mail.com" {
		t.Fatalf("incorrect email: %v", info.Email)
	}
	if info.OnboardingCompleted {
		t.Fatal("onboarding should not be completed for new user")
	}
	if info.SubscriptionStatus != schema.SubscriptionFree {
		t.Fatalf("new user should be on the free plan, got %v", info.SubscriptionStatus)
	}
}

func TestDuplicateSignup(t *testing.T) {
	env := setupTestEnv(t)

	c := env.newClient()
	if _, err := c.signup("bob@mail.com", "password1"); err != nil {
		t.Fatal(err)
	}

	if _, err := c.signup("bob@mail.com", "password2"); err == nil {
		t.Fatal("duplicate signup should fail")
	}
}

func TestLoginBadPassword(t *testing.T) {
	env := setupTestEnv(t)

	c := env.newClient()
	if _, err := c.signup("carol@mail.com", "correct_password"); err != nil {
		t.Fatal(err)
	}

	if err := c.login(loginInfo{Email: "carol@mail.com", Password: "wrong_password"}); err != ErrUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestOnboardingSeedsComplianceChecklist(t *testing.T) {
	env := setupTestEnv(t)

	user, err := env.newUser("dave")
	if err != nil {
		t.Fatal(err)
	}

	info, err := user.completeOnboarding(map[string]interface{}{
		"industry":         "fintech",
		"experience_level": "beginner",
		"budget_range":     "$10k-$50k",
		"business_goals":   "build a payments startup",
		"skills":           []string{"go", "sql"},
	})
	if err != nil {
		t.Fatal(err)
	}

	if !info.OnboardingCompleted {
		t.Fatal("onboarding should be marked completed")
	}
	if info.Industry != "fintech" {
		t.Fatalf("incorrect industry: %v", info.Industry)
	}
	if len(info.Skills) != 2 {
		t.Fatalf("incorrect skills: %v", info.Skills)
	}

	items, err := user.complianceItems()
	if err != nil {
		t.Fatal(err)
	}

	if len(items) != 4 {
		t.Fatalf("expected 4 compliance items, got %d", len(items))
	}

	expectedTypes := []string{"registration", "tax_id", "privacy_policy", "terms_of_service"}
	for i, item := range items {
		if item.Order != i+1 {
			t.Fatalf("item %d has order %d", i, item.Order)
		}
		if item.ItemType != expectedTypes[i] {
			t.Fatalf("item %d has type %v, expected %v", i, item.ItemType, expectedTypes[i])
		}
		if item.Status != schema.CompliancePending {
			t.Fatalf("item %d should start pending, got %v", i, item.Status)
		}
		if item.CompletedAt != nil {
			t.Fatal("new compliance item should have no completion time")
		}
	}
}

func TestRepeatOnboardingDoesNotDuplicateChecklist(t *testing.T) {
	env := setupTestEnv(t)

	user, err := env.newUser("erin")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := user.completeOnboarding(map[string]interface{}{"industry": "saas"}); err != nil {
		t.Fatal(err)
	}
	if _, err := user.completeOnboarding(map[string]interface{}{"industry": "healthtech"}); err != nil {
		t.Fatal(err)
	}

	items, err := user.complianceItems()
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 4 {
		t.Fatalf("expected 4 compliance items after repeat onboarding, got %d", len(items))
	}

	info, err := user.userInfo()
	if err != nil {
		t.Fatal(err)
	}
	if info.Industry != "healthtech" {
		t.Fatalf("repeat onboarding should update profile, got industry %v", info.Industry)
	}
}

func TestDeleteUserCascades(t *testing.T) {
	env := setupTestEnv(t)

	user, err := env.newUser("frank")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := user.completeOnboarding(map[string]interface{}{"industry": "saas"}); err != nil {
		t.Fatal(err)
	}
	roadmap, err := user.generateRoadmap(map[string]interface{}{
		"industry": "saas", "target_role": "founder",
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := user.chat("how do I validate my idea?"); err != nil {
		t.Fatal(err)
	}

	admin, err := env.adminClient()
	if err != nil {
		t.Fatal(err)
	}
	if err := admin.deleteUser(user.userId); err != nil {
		t.Fatal(err)
	}

	var users, roadmaps, phases, milestones, items, messages int64
	env.db.Model(&schema.User{}).Where("id = ?", user.userId).Count(&users)
	env.db.Model(&schema.LearningRoadmap{}).Where("user_id = ?", user.userId).Count(&roadmaps)
	env.db.Model(&schema.RoadmapPhase{}).Where("roadmap_id = ?", roadmap.Id).Count(&phases)
	env.db.Model(&schema.RoadmapMilestone{}).Count(&milestones)
	env.db.Model(&schema.ComplianceItem{}).Where("user_id = ?", user.userId).Count(&items)
	env.db.Model(&schema.MentorMessage{}).Where("user_id = ?", user.userId).Count(&messages)

	if users != 0 || roadmaps != 0 || phases != 0 || milestones != 0 || items != 0 || messages != 0 {
		t.Fatalf("cascade delete left rows behind: users=%d roadmaps=%d phases=%d milestones=%d items=%d messages=%d",
			users, roadmaps, phases, milestones, items, messages)
	}
}

func TestDeleteUserRequiresAdmin(t *testing.T) {
	env := setupTestEnv(t)

	user, err := env.newUser("grace")
	if err != nil {
		t.Fatal(err)
	}
	other, err := env.newUser("heidi")
	if err != nil {
		t.Fatal(err)
	}

	if err := user.deleteUser(other.userId); err == nil {
		t.Fatal("non-admin should not be able to delete users")
	}
}
