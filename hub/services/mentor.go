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

// Recent history returned by the messages endpoint.
const mentorHistoryLimit = 50

type MentorService struct {
	db        *gorm.DB
	generator generation.Generator
	userAuth  auth.IdentityProvider
}

func (s *MentorService) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(s.userAuth.AuthMiddleware()...)

	r.Post("/chat", s.Chat)
	r.Get("/messages", s.Messages)

	return r
}

type chatRequest struct {
	Message string `json:"message"`
}

type MessageInfo struct {
	Id        uuid.UUID `json:"id"`
	Message   string    `json:"message"`
	IsUser    bool      `json:"is_user"`
	CreatedAt time.Time `json:"created_at"`
}

// Chat records the user's message and the mentor's reply as a pair. Both
// rows are written in one transaction after the reply has been generated,
// so a provider failure leaves no dangling user message.
func (s *MentorService) Chat(w http.ResponseWriter, r *http.Request) {
	user, err := auth.UserFromContext(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var params chatRequest
	if !utils.ParseRequestBody(w, r, &params) {
		return
	}

	if params.Message == "" {
		http.Error(w, "message is required", http.StatusBadRequest)
		return
	}

	reply, err := s.generator.GenerateMentorReply(r.Context(), params.Message, generation.MentorContext{
		Industry:        user.Industry,
		ExperienceLevel: user.ExperienceLevel,
		BusinessGoals:   user.BusinessGoals,
	})
	recordGeneration("mentor-reply", err)
	if err != nil {
		http.Error(w, fmt.Sprintf("error generating mentor reply: %v", err), http.StatusBadGateway)
		return
	}

	replyMsg := schema.MentorMessage{Id: uuid.New(), UserId: user.Id, Message: reply, IsUser: false}
	err = s.db.Transaction(func(txn *gorm.DB) error {
		userMsg := schema.MentorMessage{Id: uuid.New(), UserId: user.Id, Message: params.Message, IsUser: true}
		if result := txn.Create(&userMsg); result.Error != nil {
			slog.Error("sql error saving user mentor message", "user_id", user.Id, "error", result.Error)
			return CodedError(schema.ErrDbAccessFailed, http.StatusInternalServerError)
		}
		if result := txn.Create(&replyMsg); result.Error != nil {
			slog.Error("sql error saving mentor reply", "user_id", user.Id, "error", result.Error)
			return CodedError(schema.ErrDbAccessFailed, http.StatusInternalServerError)
		}
		return nil
	})
	if err != nil {
		http.Error(w, fmt.Sprintf("error saving mentor exchange: %v", err), GetResponseCode(err))
		return
	}

	mentorExchanges.Inc()

	utils.WriteJsonResponse(w, MessageInfo{
		Id: replyMsg.Id, Message: replyMsg.Message, IsUser: false, CreatedAt: replyMsg.CreatedAt,
	})
}

// Messages returns the most recent exchanges in chronological order, oldest
// first, so clients can render the transcript top to bottom.
func (s *MentorService) Messages(w http.ResponseWriter, r *http.Request) {
	user, err := auth.UserFromContext(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var messages []schema.MentorMessage
	result := s.db.Where("user_id = ?", user.Id).Order("created_at DESC").Limit(mentorHistoryLimit).Find(&messages)
	if result.Error != nil {
		slog.Error("sql error listing mentor messages", "user_id", user.Id, "error", result.Error)
		http.Error(w, fmt.Sprintf("error listing mentor messages: %v", schema.ErrDbAccessFailed), http.StatusInternalServerError)
		return
	}

	infos := make([]MessageInfo, len(messages))
	for i, msg := range messages {
		infos[len(messages)-1-i] = MessageInfo{
			Id: msg.Id, Message: msg.Message, IsUser: msg.IsUser, CreatedAt: msg.CreatedAt,
		}
	}
	utils.WriteJsonResponse(w, infos)
}
