package services

import (
	"log"
	"net/http"
	"os"

	"founderhub/hub/auth"
	"founderhub/hub/billing"
	"founderhub/hub/generation"
	"founderhub/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"gorm.io/gorm"
)

type Variables struct {
	// Price id of the pro plan at the subscription provider.
	ProPriceId string
}

type Hub struct {
	user    UserService
	ideas   IdeaService
	roadmap RoadmapService
	mentor  MentorService
	legal   LegalService
	funding FundingService
	billing BillingService

	db *gorm.DB
}

func NewHub(
	db *gorm.DB, generator generation.Generator, billingProvider billing.Provider, userAuth auth.IdentityProvider, variables Variables,
) Hub {
	return Hub{
		user:    UserService{db: db, userAuth: userAuth},
		ideas:   IdeaService{db: db, generator: generator, userAuth: userAuth},
		roadmap: RoadmapService{db: db, generator: generator, userAuth: userAuth},
		mentor:  MentorService{db: db, generator: generator, userAuth: userAuth},
		legal:   LegalService{db: db, generator: generator, userAuth: userAuth},
		funding: FundingService{db: db, userAuth: userAuth},
		billing: BillingService{db: db, provider: billingProvider, userAuth: userAuth, variables: variables},
		db:      db,
	}
}

func (h *Hub) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger: log.New(os.Stderr, "", log.LstdFlags), NoColor: false,
	}))

	r.Mount("/user", h.user.Routes())
	r.Mount("/ideas", h.ideas.Routes())
	r.Mount("/roadmap", h.roadmap.Routes())
	r.Mount("/mentor", h.mentor.Routes())
	r.Mount("/legal", h.legal.Routes())
	r.Mount("/funding", h.funding.Routes())
	r.Mount("/billing", h.billing.Routes())

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.WriteSuccess(w)
	})

	return r
}
