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

type LegalService struct {
	db        *gorm.DB
	generator generation.Generator
	userAuth  auth.IdentityProvider
}

func (s *LegalService) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(s.userAuth.AuthMiddleware()...)

	r.Post("/generate", s.Generate)
	r.Get("/documents", s.Documents)
	r.Get("/compliance", s.Compliance)
	r.Post("/compliance/{item_id}/start", s.StartComplianceItem)
	r.Post("/compliance/{item_id}/complete", s.CompleteComplianceItem)

	return r
}

type generateDocumentRequest struct {
	DocumentType        string   `json:"document_type"`
	BusinessType        string   `json:"business_type"`
	Jurisdiction        string   `json:"jurisdiction"`
	SpecialRequirements []string `json:"special_requirements"`
}

type DocumentInfo struct {
	Id           uuid.UUID `json:"id"`
	DocumentType string    `json:"document_type"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Jurisdiction string    `json:"jurisdiction"`
	BusinessType string    `json:"business_type"`
	Version      string    `json:"version"`
	CreatedAt    time.Time `json:"created_at"`
}

func convertToDocumentInfo(doc *schema.LegalDocument) DocumentInfo {
	return DocumentInfo{
		Id:           doc.Id,
		DocumentType: doc.DocumentType,
		Title:        doc.Title,
		Content:      doc.Content,
		Jurisdiction: doc.Jurisdiction,
		BusinessType: doc.BusinessType,
		Version:      doc.Version,
		CreatedAt:    doc.CreatedAt,
	}
}

// Generate creates a legal document draft. Every generation is a new row at
// version 1.0; regenerating the same type does not overwrite prior drafts.
func (s *LegalService) Generate(w http.ResponseWriter, r *http.Request) {
	user, err := auth.UserFromContext(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var params generateDocumentRequest
	if !utils.ParseRequestBody(w, r, &params) {
		return
	}

	if params.DocumentType == "" {
		http.Error(w, "document_type is required", http.StatusBadRequest)
		return
	}

	content, err := s.generator.GenerateLegalDocument(r.Context(), generation.LegalDocumentRequest{
		DocumentType:        params.DocumentType,
		BusinessType:        params.BusinessType,
		Jurisdiction:        params.Jurisdiction,
		SpecialRequirements: params.SpecialRequirements,
	})
	recordGeneration("legal-document", err)
	if err != nil {
		http.Error(w, fmt.Sprintf("error generating legal document: %v", err), http.StatusBadGateway)
		return
	}

	doc := schema.LegalDocument{
		Id:                  uuid.New(),
		UserId:              user.Id,
		DocumentType:        params.DocumentType,
		Title:               fmt.Sprintf("%v v1.0", params.DocumentType),
		Content:             content,
		Jurisdiction:        params.Jurisdiction,
		BusinessType:        params.BusinessType,
		SpecialRequirements: params.SpecialRequirements,
		Version:             "1.0",
	}
	if result := s.db.Create(&doc); result.Error != nil {
		slog.Error("sql error saving legal document", "user_id", user.Id, "error", result.Error)
		http.Error(w, fmt.Sprintf("error saving legal document: %v", schema.ErrDbAccessFailed), http.StatusInternalServerError)
		return
	}

	utils.WriteJsonResponse(w, convertToDocumentInfo(&doc))
}

func (s *LegalService) Documents(w http.ResponseWriter, r *http.Request) {
	user, err := auth.UserFromContext(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var docs []schema.LegalDocument
	result := s.db.Where("user_id = ?", user.Id).Order("created_at DESC").Find(&docs)
	if result.Error != nil {
		slog.Error("sql error listing legal documents", "user_id", user.Id, "error", result.Error)
		http.Error(w, fmt.Sprintf("error listing legal documents: %v", schema.ErrDbAccessFailed), http.StatusInternalServerError)
		return
	}

	infos := make([]DocumentInfo, 0, len(docs))
	for _, doc := range docs {
		infos = append(infos, convertToDocumentInfo(&doc))
	}
	utils.WriteJsonResponse(w, infos)
}

type ComplianceItemInfo struct {
	Id          uuid.UUID  `json:"id"`
	ItemType    string     `json:"item_type"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"due_date"`
	CompletedAt *time.Time `json:"completed_at"`
	Order       int        `json:"order"`
}

func convertToComplianceItemInfo(item *schema.ComplianceItem) ComplianceItemInfo {
	return ComplianceItemInfo{
		Id:          item.Id,
		ItemType:    item.ItemType,
		Title:       item.Title,
		Description: item.Description,
		Status:      item.Status,
		DueDate:     item.DueDate,
		CompletedAt: item.CompletedAt,
		Order:       item.Order,
	}
}

func (s *LegalService) Compliance(w http.ResponseWriter, r *http.Request) {
	user, err := auth.UserFromContext(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var items []schema.ComplianceItem
	result := s.db.Where("user_id = ?", user.Id).Order("item_order ASC").Find(&items)
	if result.Error != nil {
		slog.Error("sql error listing compliance items", "user_id", user.Id, "error", result.Error)
		http.Error(w, fmt.Sprintf("error listing compliance items: %v", schema.ErrDbAccessFailed), http.StatusInternalServerError)
		return
	}

	infos := make([]ComplianceItemInfo, 0, len(items))
	for _, item := range items {
		infos = append(infos, convertToComplianceItemInfo(&item))
	}
	utils.WriteJsonResponse(w, infos)
}

// StartComplianceItem moves a pending item to in_progress. Items already
// started or completed are returned unchanged.
func (s *LegalService) StartComplianceItem(w http.ResponseWriter, r *http.Request) {
	s.updateComplianceItem(w, r, func(item *schema.ComplianceItem) {
		if item.Status == schema.CompliancePending {
			item.Status = schema.ComplianceInProgress
		}
	})
}

// CompleteComplianceItem marks the item completed. The completion time is
// set only on the transition into completed; repeating the call leaves the
// original timestamp in place.
func (s *LegalService) CompleteComplianceItem(w http.ResponseWriter, r *http.Request) {
	s.updateComplianceItem(w, r, func(item *schema.ComplianceItem) {
		if item.Status != schema.ComplianceCompleted {
			now := time.Now().UTC()
			item.Status = schema.ComplianceCompleted
			item.CompletedAt = &now
		}
	})
}

func (s *LegalService) updateComplianceItem(w http.ResponseWriter, r *http.Request, update func(*schema.ComplianceItem)) {
	user, err := auth.UserFromContext(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	itemId, err := utils.URLParamUUID(r, "item_id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var updated schema.ComplianceItem
	err = s.db.Transaction(func(txn *gorm.DB) error {
		item, err := schema.GetComplianceItem(itemId, txn)
		if err != nil {
			return notFoundOrInternal(err)
		}

		if item.UserId != user.Id {
			return CodedError(fmt.Errorf("user does not have access to this compliance item"), http.StatusForbidden)
		}

		update(&item)
		if result := txn.Save(&item); result.Error != nil {
			slog.Error("sql error updating compliance item", "item_id", itemId, "error", result.Error)
			return CodedError(schema.ErrDbAccessFailed, http.StatusInternalServerError)
		}

		updated = item
		return nil
	})
	if err != nil {
		http.Error(w, fmt.Sprintf("error updating compliance item: %v", err), GetResponseCode(err))
		return
	}

	utils.WriteJsonResponse(w, convertToComplianceItemInfo(&updated))
}
