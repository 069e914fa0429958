package schema

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	SubscriptionFree   = "free"
	SubscriptionActive = "active"
)

type User struct {
	Id uuid.UUID `gorm:"type:uuid;primaryKey"`

	Email    string `gorm:"uniqueIndex;size:254"`
	Password []byte

	FirstName       string `gorm:"size:100"`
	LastName        string `gorm:"size:100"`
	ProfileImageUrl string `gorm:"size:500"`

	Industry        string `gorm:"size:100"`
	ExperienceLevel string `gorm:"size:100"`
	BudgetRange     string `gorm:"size:100"`
	BusinessGoals   string
	Skills          datatypes.JSONSlice[string]

	OnboardingCompleted bool   `gorm:"not null;default:false"`
	SubscriptionStatus  string `gorm:"size:50;not null;default:'free'"`

	BillingCustomerId     string `gorm:"size:100"`
	BillingSubscriptionId string `gorm:"size:100"`

	IsAdmin bool `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time

	BusinessIdeas   []BusinessIdea    `gorm:"constraint:OnDelete:CASCADE"`
	Roadmaps        []LearningRoadmap `gorm:"constraint:OnDelete:CASCADE"`
	Badges          []UserBadge       `gorm:"constraint:OnDelete:CASCADE"`
	FundingMatches  []UserFundingMatch `gorm:"constraint:OnDelete:CASCADE"`
	LegalDocuments  []LegalDocument   `gorm:"constraint:OnDelete:CASCADE"`
	ComplianceItems []ComplianceItem  `gorm:"constraint:OnDelete:CASCADE"`
	MentorMessages  []MentorMessage   `gorm:"constraint:OnDelete:CASCADE"`
}

const (
	CompetitionLow    = "Low"
	CompetitionMedium = "Medium"
	CompetitionHigh   = "High"
)

type BusinessIdea struct {
	Id     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId uuid.UUID `gorm:"type:uuid;not null;index"`

	Title         string `gorm:"size:200;not null"`
	Description   string `gorm:"not null"`
	Industry      string `gorm:"size:100;not null"`
	BusinessModel string `gorm:"size:100;not null"`
	TargetMarket  string `gorm:"size:200;not null"`

	MatchScore       float64 `gorm:"type:decimal(3,1)"`
	MarketSize       string  `gorm:"size:100"`
	CompetitionLevel string  `gorm:"size:50"`

	AiGenerated bool `gorm:"not null;default:true"`

	CreatedAt time.Time
}

type LearningRoadmap struct {
	Id     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId uuid.UUID `gorm:"type:uuid;not null;index"`

	Title       string `gorm:"size:200;not null"`
	Description string
	Category    string `gorm:"size:100;not null"`

	// No column default: a zero value here must be a visible bug, not a
	// silently filled-in phase count.
	TotalPhases        int     `gorm:"not null"`
	CurrentPhase       int     `gorm:"not null;default:1"`
	ProgressPercentage float64 `gorm:"type:decimal(5,2);not null;default:0"`

	EstimatedDuration string `gorm:"size:100"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Phases []RoadmapPhase `gorm:"foreignKey:RoadmapId;constraint:OnDelete:CASCADE"`
}

const (
	PhaseLocked     = "locked"
	PhaseUnlocked   = "unlocked"
	PhaseInProgress = "in_progress"
	PhaseCompleted  = "completed"
)

type RoadmapPhase struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	RoadmapId uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_roadmap_phase_number"`

	PhaseNumber int    `gorm:"not null;uniqueIndex:idx_roadmap_phase_number"`
	Title       string `gorm:"size:200;not null"`
	Description string

	Status             string  `gorm:"size:50;not null;default:'locked'"`
	ProgressPercentage float64 `gorm:"type:decimal(5,2);not null;default:0"`

	CreatedAt time.Time

	Milestones []RoadmapMilestone `gorm:"foreignKey:PhaseId;constraint:OnDelete:CASCADE"`
}

type RoadmapMilestone struct {
	Id      uuid.UUID `gorm:"type:uuid;primaryKey"`
	PhaseId uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_phase_milestone_order"`

	Title       string `gorm:"size:200;not null"`
	Description string

	ResourceType     string `gorm:"size:50"`
	ResourceProvider string `gorm:"size:100"`
	ResourceUrl      string `gorm:"size:500"`
	EstimatedHours   int

	Completed   bool `gorm:"not null;default:false"`
	CompletedAt *time.Time

	Order int `gorm:"column:item_order;not null;uniqueIndex:idx_phase_milestone_order"`

	CreatedAt time.Time
}

type UserBadge struct {
	Id     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId uuid.UUID `gorm:"type:uuid;not null;index"`

	BadgeType   string `gorm:"size:50;not null"`
	BadgeName   string `gorm:"size:100;not null"`
	Description string

	EarnedAt time.Time
}

const (
	FundingVc           = "vc"
	FundingAngel        = "angel"
	FundingGrant        = "grant"
	FundingCrowdfunding = "crowdfunding"
	FundingAccelerator  = "accelerator"
)

type FundingOpportunity struct {
	Id uuid.UUID `gorm:"type:uuid;primaryKey"`

	Name        string `gorm:"size:200;not null"`
	Description string `gorm:"not null"`
	Type        string `gorm:"size:50;not null"`
	Stage       string `gorm:"size:50"`

	MinAmount      float64 `gorm:"type:decimal(12,2)"`
	MaxAmount      float64 `gorm:"type:decimal(12,2)"`
	EquityRequired float64 `gorm:"type:decimal(5,2)"`

	Location   string `gorm:"size:200"`
	Industries datatypes.JSONSlice[string]

	ApplicationDeadline *time.Time
	Website             string `gorm:"size:500"`
	ContactEmail        string `gorm:"size:254"`

	// No column default: with one, gorm drops Active=false on insert and
	// retired opportunities would come back active. Writers set it explicitly.
	Active bool `gorm:"not null"`

	CreatedAt time.Time
}

const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"

	MatchStatusMatched    = "matched"
	MatchStatusApplied    = "applied"
	MatchStatusInterested = "interested"
	MatchStatusDismissed  = "dismissed"
)

type UserFundingMatch struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index"`
	FundingId uuid.UUID `gorm:"type:uuid;not null;index"`

	Funding *FundingOpportunity `gorm:"foreignKey:FundingId;constraint:OnDelete:CASCADE"`

	MatchScore float64 `gorm:"type:decimal(3,1)"`
	Priority   string  `gorm:"size:50;not null;default:'medium'"`
	Status     string  `gorm:"size:50;not null;default:'matched'"`

	CreatedAt time.Time
}

type LegalDocument struct {
	Id     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId uuid.UUID `gorm:"type:uuid;not null;index"`

	DocumentType string `gorm:"size:100;not null"`
	Title        string `gorm:"size:200;not null"`
	Content      string `gorm:"not null"`

	Jurisdiction        string `gorm:"size:100"`
	BusinessType        string `gorm:"size:100"`
	SpecialRequirements datatypes.JSONSlice[string]

	Version string `gorm:"size:20;not null;default:'1.0'"`

	CreatedAt time.Time
}

const (
	CompliancePending    = "pending"
	ComplianceInProgress = "in_progress"
	ComplianceCompleted  = "completed"
)

type ComplianceItem struct {
	Id     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_user_compliance_order"`

	ItemType    string `gorm:"size:100;not null"`
	Title       string `gorm:"size:200;not null"`
	Description string

	Status      string `gorm:"size:50;not null;default:'pending'"`
	DueDate     *time.Time
	CompletedAt *time.Time

	Order int `gorm:"column:item_order;not null;uniqueIndex:idx_user_compliance_order"`

	CreatedAt time.Time
}

type MentorMessage struct {
	Id     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId uuid.UUID `gorm:"type:uuid;not null;index"`

	Message string `gorm:"not null"`
	IsUser  bool   `gorm:"not null"`

	CreatedAt time.Time
}

// AllTables is the canonical migration order: parents before children so
// foreign key constraints resolve on create.
func AllTables() []interface{} {
	return []interface{}{
		&User{},
		&BusinessIdea{},
		&LearningRoadmap{},
		&RoadmapPhase{},
		&RoadmapMilestone{},
		&UserBadge{},
		&FundingOpportunity{},
		&UserFundingMatch{},
		&LegalDocument{},
		&ComplianceItem{},
		&MentorMessage{},
	}
}
