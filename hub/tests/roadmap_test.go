package tests

import (
	"math"
	"testing"

	"founderhub/hub/schema"

	"github.com/google/uuid"
)

func generateTestRoadmap(t *testing.T, user client) string {
	roadmap, err := user.generateRoadmap(map[string]interface{}{
		"industry": "saas", "target_role": "founder", "experience_level": "beginner",
	})
	if err != nil {
		t.Fatal(err)
	}
	return roadmap.Id.String()
}

func TestGenerateRoadmapStructure(t *testing.T) {
	env := setupTestEnv(t)

	user, err := env.newUser("nick")
	if err != nil {
		t.Fatal(err)
	}

	roadmapId := generateTestRoadmap(t, user)

	detail, err := user.getRoadmap(roadmapId)
	if err != nil {
		t.Fatal(err)
	}

	if detail.TotalPhases != 3 || len(detail.Phases) != 3 {
		t.Fatalf("expected 3 phases, got total=%d len=%d", detail.TotalPhases, len(detail.Phases))
	}
	if detail.CurrentPhase != 1 {
		t.Fatalf("new roadmap should start at phase 1, got %d", detail.CurrentPhase)
	}
	if detail.ProgressPercentage != 0 {
		t.Fatalf("new roadmap should have 0 progress, got %v", detail.ProgressPercentage)
	}

	for i, phase := range detail.Phases {
		if phase.PhaseNumber != i+1 {
			t.Fatalf("phase %d has number %d", i, phase.PhaseNumber)
		}

		expectedStatus := schema.PhaseLocked
		if i == 0 {
			expectedStatus = schema.PhaseUnlocked
		}
		if phase.Status != expectedStatus {
			t.Fatalf("phase %d should be %v, got %v", i+1, expectedStatus, phase.Status)
		}

		for j, milestone := range phase.Milestones {
			if milestone.Order != j+1 {
				t.Fatalf("phase %d milestone %d has order %d", i+1, j, milestone.Order)
			}
			if milestone.Completed {
				t.Fatal("new milestone should not be completed")
			}
		}
	}

	if len(detail.Phases[0].Milestones) != 2 || len(detail.Phases[1].Milestones) != 2 || len(detail.Phases[2].Milestones) != 1 {
		t.Fatalf("unexpected milestone counts: %d/%d/%d",
			len(detail.Phases[0].Milestones), len(detail.Phases[1].Milestones), len(detail.Phases[2].Milestones))
	}
}

func TestCompleteMilestoneRecomputesProgress(t *testing.T) {
	env := setupTestEnv(t)

	user, err := env.newUser("olive")
	if err != nil {
		t.Fatal(err)
	}

	roadmapId := generateTestRoadmap(t, user)
	detail, err := user.getRoadmap(roadmapId)
	if err != nil {
		t.Fatal(err)
	}
	phase1 := detail.Phases[0]

	completed, err := user.completeMilestone(phase1.Milestones[0].Id.String())
	if err != nil {
		t.Fatal(err)
	}
	if !completed.Completed || completed.CompletedAt == nil {
		t.Fatal("milestone should be completed with a timestamp")
	}

	detail, err = user.getRoadmap(roadmapId)
	if err != nil {
		t.Fatal(err)
	}

	if detail.Phases[0].ProgressPercentage != 50 {
		t.Fatalf("phase 1 should be at 50%%, got %v", detail.Phases[0].ProgressPercentage)
	}
	if detail.Phases[0].Status != schema.PhaseInProgress {
		t.Fatalf("phase 1 should be in progress, got %v", detail.Phases[0].Status)
	}
	if detail.Phases[1].Status != schema.PhaseLocked {
		t.Fatalf("phase 2 should still be locked, got %v", detail.Phases[1].Status)
	}
	if math.Abs(detail.ProgressPercentage-50.0/3) > 0.01 {
		t.Fatalf("roadmap progress should be the mean of phase progress, got %v", detail.ProgressPercentage)
	}
}

func TestPhaseCompletionUnlocksNextPhase(t *testing.T) {
	env := setupTestEnv(t)

	user, err := env.newUser("peggy")
	if err != nil {
		t.Fatal(err)
	}

	roadmapId := generateTestRoadmap(t, user)
	detail, err := user.getRoadmap(roadmapId)
	if err != nil {
		t.Fatal(err)
	}

	for _, milestone := range detail.Phases[0].Milestones {
		if _, err := user.completeMilestone(milestone.Id.String()); err != nil {
			t.Fatal(err)
		}
	}

	detail, err = user.getRoadmap(roadmapId)
	if err != nil {
		t.Fatal(err)
	}

	if detail.Phases[0].Status != schema.PhaseCompleted {
		t.Fatalf("phase 1 should be completed, got %v", detail.Phases[0].Status)
	}
	if detail.Phases[0].ProgressPercentage != 100 {
		t.Fatalf("phase 1 should be at 100%%, got %v", detail.Phases[0].ProgressPercentage)
	}
	if detail.Phases[1].Status != schema.PhaseUnlocked {
		t.Fatalf("phase 2 should be unlocked, got %v", detail.Phases[1].Status)
	}
	if detail.Phases[2].Status != schema.PhaseLocked {
		t.Fatalf("phase 3 should still be locked, got %v", detail.Phases[2].Status)
	}
	if detail.CurrentPhase != 2 {
		t.Fatalf("roadmap should have advanced to phase 2, got %d", detail.CurrentPhase)
	}

	badges, err := user.badges()
	if err != nil {
		t.Fatal(err)
	}
	if len(badges) != 1 || badges[0].BadgeType != "phase_completed" {
		t.Fatalf("completing a phase should award a badge, got %+v", badges)
	}
}

func TestCompleteMilestoneIsIdempotent(t *testing.T) {
	env := setupTestEnv(t)

	user, err := env.newUser("quinn")
	if err != nil {
		t.Fatal(err)
	}

	roadmapId := generateTestRoadmap(t, user)
	detail, err := user.getRoadmap(roadmapId)
	if err != nil {
		t.Fatal(err)
	}
	milestoneId := detail.Phases[0].Milestones[0].Id.String()

	first, err := user.completeMilestone(milestoneId)
	if err != nil {
		t.Fatal(err)
	}
	second, err := user.completeMilestone(milestoneId)
	if err != nil {
		t.Fatal(err)
	}

	if first.CompletedAt == nil || second.CompletedAt == nil {
		t.Fatal("completion timestamp missing")
	}
	if !first.CompletedAt.Equal(*second.CompletedAt) {
		t.Fatalf("repeat completion should keep the original timestamp: %v vs %v", first.CompletedAt, second.CompletedAt)
	}

	detail, err = user.getRoadmap(roadmapId)
	if err != nil {
		t.Fatal(err)
	}
	if detail.Phases[0].ProgressPercentage != 50 {
		t.Fatalf("repeat completion should not change progress, got %v", detail.Phases[0].ProgressPercentage)
	}
}

func TestCompleteUnknownMilestone(t *testing.T) {
	env := setupTestEnv(t)

	user, err := env.newUser("ruth")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := user.completeMilestone(uuid.NewString()); err != ErrNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRoadmapAccessControl(t *testing.T) {
	env := setupTestEnv(t)

	owner, err := env.newUser("sam")
	if err != nil {
		t.Fatal(err)
	}
	other, err := env.newUser("tina")
	if err != nil {
		t.Fatal(err)
	}

	roadmapId := generateTestRoadmap(t, owner)

	if _, err := other.getRoadmap(roadmapId); err == nil {
		t.Fatal("user should not be able to read another user's roadmap")
	}

	detail, err := owner.getRoadmap(roadmapId)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := other.completeMilestone(detail.Phases[0].Milestones[0].Id.String()); err == nil {
		t.Fatal("user should not be able to complete another user's milestone")
	}
}
