package services

import (
	"net/http"
	"testing"

	"founderhub/hub/generation"
	"founderhub/hub/schema"

	"github.com/google/uuid"
)

func TestCreateRoadmapRejectsEmptyPlan(t *testing.T) {
	db := setupTestDb(t)

	_, err := createRoadmapWithStructure(db, uuid.New(), generation.RoadmapPlan{
		Roadmap: generation.RoadmapContent{Title: "empty plan", Category: "saas"},
	})
	if err == nil {
		t.Fatal("a plan with no phases should be rejected")
	}
	if code := GetResponseCode(err); code != http.StatusBadGateway {
		t.Fatalf("expected bad gateway for a malformed plan, got %d", code)
	}

	var roadmaps int64
	db.Model(&schema.LearningRoadmap{}).Count(&roadmaps)
	if roadmaps != 0 {
		t.Fatalf("rejected plan should write nothing, found %d roadmaps", roadmaps)
	}
}
