package schema

import (
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrRoadmapNotFound        = errors.New("roadmap not found")
	ErrMilestoneNotFound      = errors.New("milestone not found")
	ErrPhaseNotFound          = errors.New("roadmap phase not found")
	ErrComplianceItemNotFound = errors.New("compliance item not found")
	ErrFundingNotFound        = errors.New("funding opportunity not found")
	ErrDbAccessFailed         = errors.New("db access failed")
)

func GetUser(userId uuid.UUID, db *gorm.DB) (User, error) {
	var user User

	result := db.First(&user, "id = ?", userId)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return user, ErrUserNotFound
		}
		slog.Error("sql error in get user", "user_id", userId, "error", result.Error)
		return user, ErrDbAccessFailed
	}

	return user, nil
}

func GetRoadmap(roadmapId uuid.UUID, db *gorm.DB, loadPhases bool) (LearningRoadmap, error) {
	var roadmap LearningRoadmap

	query := db
	if loadPhases {
		query = query.
			Preload("Phases", func(db *gorm.DB) *gorm.DB {
				return db.Order("roadmap_phases.phase_number ASC")
			}).
			Preload("Phases.Milestones", func(db *gorm.DB) *gorm.DB {
				return db.Order("roadmap_milestones.item_order ASC")
			})
	}

	result := query.First(&roadmap, "id = ?", roadmapId)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return roadmap, ErrRoadmapNotFound
		}
		slog.Error("sql error in get roadmap", "roadmap_id", roadmapId, "error", result.Error)
		return roadmap, ErrDbAccessFailed
	}

	return roadmap, nil
}

func GetMilestone(milestoneId uuid.UUID, db *gorm.DB) (RoadmapMilestone, error) {
	var milestone RoadmapMilestone

	result := db.First(&milestone, "id = ?", milestoneId)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return milestone, ErrMilestoneNotFound
		}
		slog.Error("sql error in get milestone", "milestone_id", milestoneId, "error", result.Error)
		return milestone, ErrDbAccessFailed
	}

	return milestone, nil
}

func GetPhase(phaseId uuid.UUID, db *gorm.DB) (RoadmapPhase, error) {
	var phase RoadmapPhase

	result := db.First(&phase, "id = ?", phaseId)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return phase, ErrPhaseNotFound
		}
		slog.Error("sql error in get phase", "phase_id", phaseId, "error", result.Error)
		return phase, ErrDbAccessFailed
	}

	return phase, nil
}

func GetComplianceItem(itemId uuid.UUID, db *gorm.DB) (ComplianceItem, error) {
	var item ComplianceItem

	result := db.First(&item, "id = ?", itemId)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return item, ErrComplianceItemNotFound
		}
		slog.Error("sql error in get compliance item", "item_id", itemId, "error", result.Error)
		return item, ErrDbAccessFailed
	}

	return item, nil
}

func GetFundingOpportunity(fundingId uuid.UUID, db *gorm.DB) (FundingOpportunity, error) {
	var funding FundingOpportunity

	result := db.First(&funding, "id = ?", fundingId)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return funding, ErrFundingNotFound
		}
		slog.Error("sql error in get funding opportunity", "funding_id", fundingId, "error", result.Error)
		return funding, ErrDbAccessFailed
	}

	return funding, nil
}
