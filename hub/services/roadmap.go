package services

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"founderhub/hub/auth"
	"founderhub/hub/generation"
	"founderhub/hub/schema"
	"founderhub/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RoadmapService struct {
	db        *gorm.DB
	generator generation.Generator
	userAuth  auth.IdentityProvider
}

func (s *RoadmapService) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(s.userAuth.AuthMiddleware()...)

	r.Post("/generate", s.Generate)
	r.Get("/list", s.List)
	r.Get("/{roadmap_id}", s.Get)
	r.Post("/milestone/{milestone_id}/complete", s.CompleteMilestone)

	return r
}

type generateRoadmapRequest struct {
	Skills          []string `json:"skills"`
	Industry        string   `json:"industry"`
	ExperienceLevel string   `json:"experience_level"`
	TargetRole      string   `json:"target_role"`
}

type RoadmapInfo struct {
	Id                 uuid.UUID `json:"id"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	Category           string    `json:"category"`
	TotalPhases        int       `json:"total_phases"`
	CurrentPhase       int       `json:"current_phase"`
	ProgressPercentage float64   `json:"progress_percentage"`
	EstimatedDuration  string    `json:"estimated_duration"`
	CreatedAt          time.Time `json:"created_at"`
}

func convertToRoadmapInfo(roadmap *schema.LearningRoadmap) RoadmapInfo {
	return RoadmapInfo{
		Id:                 roadmap.Id,
		Title:              roadmap.Title,
		Description:        roadmap.Description,
		Category:           roadmap.Category,
		TotalPhases:        roadmap.TotalPhases,
		CurrentPhase:       roadmap.CurrentPhase,
		ProgressPercentage: roadmap.ProgressPercentage,
		EstimatedDuration:  roadmap.EstimatedDuration,
		CreatedAt:          roadmap.CreatedAt,
	}
}

// Generate asks the content generator for a roadmap plan and persists the
// full structure in one transaction.
func (s *RoadmapService) Generate(w http.ResponseWriter, r *http.Request) {
	user, err := auth.UserFromContext(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var params generateRoadmapRequest
	if !utils.ParseRequestBody(w, r, &params) {
		return
	}

	if params.Industry == "" || params.TargetRole == "" {
		http.Error(w, "industry and target_role are required", http.StatusBadRequest)
		return
	}

	plan, err := s.generator.GenerateRoadmap(r.Context(), generation.RoadmapRequest{
		Skills:          params.Skills,
		Industry:        params.Industry,
		ExperienceLevel: params.ExperienceLevel,
		TargetRole:      params.TargetRole,
	})
	recordGeneration("learning-roadmap", err)
	if err != nil {
		http.Error(w, fmt.Sprintf("error generating roadmap: %v", err), http.StatusBadGateway)
		return
	}

	roadmap, err := createRoadmapWithStructure(s.db, user.Id, plan)
	if err != nil {
		http.Error(w, fmt.Sprintf("error saving roadmap: %v", err), GetResponseCode(err))
		return
	}

	utils.WriteJsonResponse(w, convertToRoadmapInfo(&roadmap))
}

// createRoadmapWithStructure persists the roadmap, its phases, and their
// milestones. Phase numbers and milestone orders come from list position,
// not from the plan. Exactly one phase, the first, starts unlocked no
// matter what status the plan requested; every later phase starts locked.
func createRoadmapWithStructure(db *gorm.DB, userId uuid.UUID, plan generation.RoadmapPlan) (schema.LearningRoadmap, error) {
	if len(plan.Phases) == 0 {
		return schema.LearningRoadmap{}, CodedError(fmt.Errorf("generated roadmap plan has no phases"), http.StatusBadGateway)
	}

	roadmap := schema.LearningRoadmap{
		Id:                 uuid.New(),
		UserId:             userId,
		Title:              plan.Roadmap.Title,
		Description:        plan.Roadmap.Description,
		Category:           plan.Roadmap.Category,
		TotalPhases:        len(plan.Phases),
		CurrentPhase:       1,
		ProgressPercentage: 0,
		EstimatedDuration:  plan.Roadmap.EstimatedDuration,
	}

	err := db.Transaction(func(txn *gorm.DB) error {
		if result := txn.Create(&roadmap); result.Error != nil {
			slog.Error("sql error creating roadmap", "user_id", userId, "error", result.Error)
			return CodedError(schema.ErrDbAccessFailed, http.StatusInternalServerError)
		}

		for i, phaseContent := range plan.Phases {
			status := schema.PhaseLocked
			if i == 0 {
				status = schema.PhaseUnlocked
			}

			phase := schema.RoadmapPhase{
				Id:          uuid.New(),
				RoadmapId:   roadmap.Id,
				PhaseNumber: i + 1,
				Title:       phaseContent.Title,
				Description: phaseContent.Description,
				Status:      status,
			}
			if result := txn.Create(&phase); result.Error != nil {
				slog.Error("sql error creating roadmap phase", "roadmap_id", roadmap.Id, "phase_number", phase.PhaseNumber, "error", result.Error)
				return CodedError(schema.ErrDbAccessFailed, http.StatusInternalServerError)
			}

			if i >= len(plan.Milestones) {
				continue
			}
			for j, milestoneContent := range plan.Milestones[i] {
				milestone := schema.RoadmapMilestone{
					Id:               uuid.New(),
					PhaseId:          phase.Id,
					Title:            milestoneContent.Title,
					Description:      milestoneContent.Description,
					ResourceType:     milestoneContent.ResourceType,
					ResourceProvider: milestoneContent.ResourceProvider,
					ResourceUrl:      milestoneContent.ResourceUrl,
					EstimatedHours:   milestoneContent.EstimatedHours,
					Order:            j + 1,
				}
				if result := txn.Create(&milestone); result.Error != nil {
					slog.Error("sql error creating roadmap milestone", "phase_id", phase.Id, "order", milestone.Order, "error", result.Error)
					return CodedError(schema.ErrDbAccessFailed, http.StatusInternalServerError)
				}
			}
		}

		return nil
	})
	if err != nil {
		return schema.LearningRoadmap{}, err
	}

	return roadmap, nil
}

func (s *RoadmapService) List(w http.ResponseWriter, r *http.Request) {
	user, err := auth.UserFromContext(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var roadmaps []schema.LearningRoadmap
	result := s.db.Where("user_id = ?", user.Id).Order("created_at DESC").Find(&roadmaps)
	if result.Error != nil {
		slog.Error("sql error listing roadmaps", "user_id", user.Id, "error", result.Error)
		http.Error(w, fmt.Sprintf("error listing roadmaps: %v", schema.ErrDbAccessFailed), http.StatusInternalServerError)
		return
	}

	infos := make([]RoadmapInfo, 0, len(roadmaps))
	for _, roadmap := range roadmaps {
		infos = append(infos, convertToRoadmapInfo(&roadmap))
	}
	utils.WriteJsonResponse(w, infos)
}

type MilestoneInfo struct {
	Id               uuid.UUID  `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	ResourceType     string     `json:"resource_type"`
	ResourceProvider string     `json:"resource_provider"`
	ResourceUrl      string     `json:"resource_url"`
	EstimatedHours   int        `json:"estimated_hours"`
	Completed        bool       `json:"completed"`
	CompletedAt      *time.Time `json:"completed_at"`
	Order            int        `json:"order"`
}

type PhaseInfo struct {
	Id                 uuid.UUID       `json:"id"`
	PhaseNumber        int             `json:"phase_number"`
	Title              string          `json:"title"`
	Description        string          `json:"description"`
	Status             string          `json:"status"`
	ProgressPercentage float64         `json:"progress_percentage"`
	Milestones         []MilestoneInfo `json:"milestones"`
}

type RoadmapDetail struct {
	RoadmapInfo
	Phases []PhaseInfo `json:"phases"`
}

// Get returns the roadmap with phases ordered by phase number and each
// phase's milestones ordered by their position.
func (s *RoadmapService) Get(w http.ResponseWriter, r *http.Request) {
	user, err := auth.UserFromContext(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	roadmapId, err := utils.URLParamUUID(r, "roadmap_id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	roadmap, err := schema.GetRoadmap(roadmapId, s.db, true)
	if err != nil {
		http.Error(w, fmt.Sprintf("error getting roadmap: %v", err), GetResponseCode(notFoundOrInternal(err)))
		return
	}

	if roadmap.UserId != user.Id && !user.IsAdmin {
		http.Error(w, "user does not have access to this roadmap", http.StatusForbidden)
		return
	}

	detail := RoadmapDetail{RoadmapInfo: convertToRoadmapInfo(&roadmap), Phases: make([]PhaseInfo, 0, len(roadmap.Phases))}
	for _, phase := range roadmap.Phases {
		info := PhaseInfo{
			Id:                 phase.Id,
			PhaseNumber:        phase.PhaseNumber,
			Title:              phase.Title,
			Description:        phase.Description,
			Status:             phase.Status,
			ProgressPercentage: phase.ProgressPercentage,
			Milestones:         make([]MilestoneInfo, 0, len(phase.Milestones)),
		}
		for _, milestone := range phase.Milestones {
			info.Milestones = append(info.Milestones, MilestoneInfo{
				Id:               milestone.Id,
				Title:            milestone.Title,
				Description:      milestone.Description,
				ResourceType:     milestone.ResourceType,
				ResourceProvider: milestone.ResourceProvider,
				ResourceUrl:      milestone.ResourceUrl,
				EstimatedHours:   milestone.EstimatedHours,
				Completed:        milestone.Completed,
				CompletedAt:      milestone.CompletedAt,
				Order:            milestone.Order,
			})
		}
		detail.Phases = append(detail.Phases, info)
	}

	utils.WriteJsonResponse(w, detail)
}

// CompleteMilestone marks the milestone done and recomputes the derived
// state that depends on it: phase progress and status, unlocking of the
// next phase, and roadmap progress and current phase. Completing an
// already-completed milestone is a no-op; the original completion time is
// kept.
func (s *RoadmapService) CompleteMilestone(w http.ResponseWriter, r *http.Request) {
	user, err := auth.UserFromContext(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	milestoneId, err := utils.URLParamUUID(r, "milestone_id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var completed schema.RoadmapMilestone
	err = s.db.Transaction(func(txn *gorm.DB) error {
		milestone, err := schema.GetMilestone(milestoneId, txn)
		if err != nil {
			return notFoundOrInternal(err)
		}

		phase, err := schema.GetPhase(milestone.PhaseId, txn)
		if err != nil {
			return notFoundOrInternal(err)
		}

		roadmap, err := schema.GetRoadmap(phase.RoadmapId, txn, false)
		if err != nil {
			return notFoundOrInternal(err)
		}

		if roadmap.UserId != user.Id {
			return CodedError(fmt.Errorf("user does not have access to this roadmap"), http.StatusForbidden)
		}

		if milestone.Completed {
			completed = milestone
			return nil
		}

		now := time.Now().UTC()
		milestone.Completed = true
		milestone.CompletedAt = &now
		if result := txn.Save(&milestone); result.Error != nil {
			slog.Error("sql error completing milestone", "milestone_id", milestoneId, "error", result.Error)
			return CodedError(schema.ErrDbAccessFailed, http.StatusInternalServerError)
		}
		completed = milestone

		if err := recomputeProgress(txn, &roadmap, &phase); err != nil {
			return err
		}

		milestoneCompletions.Inc()
		return nil
	})
	if err != nil {
		http.Error(w, fmt.Sprintf("error completing milestone: %v", err), GetResponseCode(err))
		return
	}

	utils.WriteJsonResponse(w, MilestoneInfo{
		Id:               completed.Id,
		Title:            completed.Title,
		Description:      completed.Description,
		ResourceType:     completed.ResourceType,
		ResourceProvider: completed.ResourceProvider,
		ResourceUrl:      completed.ResourceUrl,
		EstimatedHours:   completed.EstimatedHours,
		Completed:        completed.Completed,
		CompletedAt:      completed.CompletedAt,
		Order:            completed.Order,
	})
}

// recomputeProgress rolls milestone state up into phase and roadmap rows.
// Runs inside the completion transaction so readers never observe a
// completed milestone with stale progress.
func recomputeProgress(txn *gorm.DB, roadmap *schema.LearningRoadmap, phase *schema.RoadmapPhase) error {
	var total, done int64
	if result := txn.Model(&schema.RoadmapMilestone{}).Where("phase_id = ?", phase.Id).Count(&total); result.Error != nil {
		slog.Error("sql error counting milestones", "phase_id", phase.Id, "error", result.Error)
		return CodedError(schema.ErrDbAccessFailed, http.StatusInternalServerError)
	}
	if result := txn.Model(&schema.RoadmapMilestone{}).Where("phase_id = ? AND completed = ?", phase.Id, true).Count(&done); result.Error != nil {
		slog.Error("sql error counting completed milestones", "phase_id", phase.Id, "error", result.Error)
		return CodedError(schema.ErrDbAccessFailed, http.StatusInternalServerError)
	}

	phase.ProgressPercentage = 0
	if total > 0 {
		phase.ProgressPercentage = float64(done) / float64(total) * 100
	}

	phaseFinished := total > 0 && done == total
	switch {
	case phaseFinished:
		phase.Status = schema.PhaseCompleted
	case phase.Status == schema.PhaseUnlocked:
		phase.Status = schema.PhaseInProgress
	}

	if result := txn.Save(phase); result.Error != nil {
		slog.Error("sql error updating phase progress", "phase_id", phase.Id, "error", result.Error)
		return CodedError(schema.ErrDbAccessFailed, http.StatusInternalServerError)
	}

	if phaseFinished {
		if err := advanceToNextPhase(txn, roadmap, phase); err != nil {
			return err
		}
	}

	// Roadmap progress is the mean of its phases' progress.
	var phases []schema.RoadmapPhase
	if result := txn.Where("roadmap_id = ?", roadmap.Id).Find(&phases); result.Error != nil {
		slog.Error("sql error loading phases for roadmap progress", "roadmap_id", roadmap.Id, "error", result.Error)
		return CodedError(schema.ErrDbAccessFailed, http.StatusInternalServerError)
	}

	progress := 0.0
	for _, p := range phases {
		progress += p.ProgressPercentage
	}
	if len(phases) > 0 {
		progress /= float64(len(phases))
	}

	updates := map[string]interface{}{"progress_percentage": progress}
	if phaseFinished && phase.PhaseNumber < roadmap.TotalPhases {
		updates["current_phase"] = phase.PhaseNumber + 1
	}
	if result := txn.Model(roadmap).Updates(updates); result.Error != nil {
		slog.Error("sql error updating roadmap progress", "roadmap_id", roadmap.Id, "error", result.Error)
		return CodedError(schema.ErrDbAccessFailed, http.StatusInternalServerError)
	}

	return nil
}

// advanceToNextPhase unlocks the phase after the one just finished and
// awards the completion badge.
func advanceToNextPhase(txn *gorm.DB, roadmap *schema.LearningRoadmap, phase *schema.RoadmapPhase) error {
	result := txn.Model(&schema.RoadmapPhase{}).
		Where("roadmap_id = ? AND phase_number = ? AND status = ?", roadmap.Id, phase.PhaseNumber+1, schema.PhaseLocked).
		Update("status", schema.PhaseUnlocked)
	if result.Error != nil {
		slog.Error("sql error unlocking next phase", "roadmap_id", roadmap.Id, "phase_number", phase.PhaseNumber+1, "error", result.Error)
		return CodedError(schema.ErrDbAccessFailed, http.StatusInternalServerError)
	}

	badge := schema.UserBadge{
		Id:          uuid.New(),
		UserId:      roadmap.UserId,
		BadgeType:   "phase_completed",
		BadgeName:   fmt.Sprintf("Completed: %v", phase.Title),
		Description: fmt.Sprintf("Finished phase %d of %q", phase.PhaseNumber, roadmap.Title),
		EarnedAt:    time.Now().UTC(),
	}
	if result := txn.Create(&badge); result.Error != nil {
		slog.Error("sql error awarding phase badge", "user_id", roadmap.UserId, "error", result.Error)
		return CodedError(schema.ErrDbAccessFailed, http.StatusInternalServerError)
	}

	return nil
}
