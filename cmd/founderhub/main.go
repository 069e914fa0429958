package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"founderhub/hub/auth"
	"founderhub/hub/billing"
	"founderhub/hub/catalog"
	"founderhub/hub/generation"
	"founderhub/hub/migrations"
	"founderhub/hub/services"

	"github.com/caarlos0/env/v10"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type hubEnv struct {
	DatabaseUri    string `env:"DATABASE_URI,required"`
	PublicHostname string `env:"PUBLIC_HOSTNAME" envDefault:"http://localhost:3000"`
	ShareDir       string `env:"SHARE_DIR" envDefault:"."`

	JwtSecret     string `env:"JWT_SECRET,required"`
	AdminEmail    string `env:"ADMIN_EMAIL,required"`
	AdminPassword string `env:"ADMIN_PASSWORD,required"`

	OpenaiKey string `env:"OPENAI_API_KEY"`

	StripeSecretKey string `env:"STRIPE_SECRET_KEY"`
	StripeProPrice  string `env:"STRIPE_PRO_PRICE_ID"`

	FundingCatalogPath string `env:"FUNDING_CATALOG"`
}

func (e *hubEnv) postgresDsn() string {
	parts, err := url.Parse(e.DatabaseUri)
	if err != nil {
		log.Fatalf("error parsing db uri: %v", err)
	}
	pwd, _ := parts.User.Password()
	dbname := strings.TrimPrefix(parts.Path, "/")
	return fmt.Sprintf("host=%v user=%v password=%v dbname=%v port=%v", parts.Hostname(), parts.User.Username(), pwd, dbname, parts.Port())
}

func loadEnvFile(envFile string) {
	slog.Info(fmt.Sprintf("loading env from file %v", envFile))
	if err := godotenv.Load(envFile); err != nil {
		log.Fatalf("error loading .env file '%v': %v", envFile, err)
	}
}

func initLogging(logFile *os.File) {
	log.SetFlags(log.Lshortfile | log.Ltime | log.Ldate)
	log.SetOutput(io.MultiWriter(logFile, os.Stderr))
	slog.Info("logging initialized", "log_file", logFile.Name())
}

func initDb(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("error opening database connection: %v", err)
	}

	if err := migrations.Migrate(db); err != nil {
		log.Fatalf("error migrating db schema: %v", err)
	}

	return db
}

func main() {
	envFile := flag.String("env", "", "File to load env variables from. If not specified will just load them from the environment variables already defined.")
	port := flag.Int("port", 8000, "Port to run server on")
	flag.Parse()

	if *envFile != "" {
		loadEnvFile(*envFile)
	}

	var e hubEnv
	if err := env.Parse(&e); err != nil {
		log.Fatalf("error loading environment: %v", err)
	}

	if err := os.MkdirAll(filepath.Join(e.ShareDir, "logs/"), 0777); err != nil {
		log.Fatalf("error creating log dir: %v", err)
	}

	logFile, err := os.OpenFile(filepath.Join(e.ShareDir, "logs/founderhub.log"), os.O_CREATE|os.O_APPEND|os.O_RDWR, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer logFile.Close()

	auditLog, err := os.OpenFile(filepath.Join(e.ShareDir, "logs/audit.log"), os.O_CREATE|os.O_APPEND|os.O_RDWR, 0666)
	if err != nil {
		log.Fatalf("error opening audit log file: %v", err)
	}
	defer auditLog.Close()

	initLogging(logFile)

	db := initDb(e.postgresDsn())

	if e.FundingCatalogPath != "" {
		fundingCatalog, err := catalog.Load(e.FundingCatalogPath)
		if err != nil {
			log.Fatalf("error loading funding catalog: %v", err)
		}
		if err := catalog.Seed(db, fundingCatalog); err != nil {
			log.Fatalf("error seeding funding catalog: %v", err)
		}
	}

	identityProvider, err := auth.NewBasicIdentityProvider(
		db,
		auth.NewAuditLogger(auditLog),
		auth.BasicProviderArgs{
			Secret:        []byte(e.JwtSecret),
			AdminEmail:    e.AdminEmail,
			AdminPassword: e.AdminPassword,
		},
	)
	if err != nil {
		log.Fatalf("error creating identity provider: %v", err)
	}

	var generator generation.Generator
	if e.OpenaiKey != "" {
		generator = generation.NewOpenAIGenerator(e.OpenaiKey)
	} else {
		slog.Info("no OPENAI_API_KEY set, using deterministic mock generator")
		generator = generation.NewMockGenerator()
	}

	var billingProvider billing.Provider
	if e.StripeSecretKey != "" {
		billingProvider = billing.NewStripeProvider(e.StripeSecretKey)
	} else {
		slog.Info("no STRIPE_SECRET_KEY set, using stub billing provider")
		billingProvider = billing.NewStubProvider()
	}

	hub := services.NewHub(db, generator, billingProvider, identityProvider, services.Variables{
		ProPriceId: e.StripeProPrice,
	})

	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{e.PublicHostname},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Mount("/api/v1", hub.Routes())
	r.Handle("/metrics", promhttp.Handler())

	slog.Info("starting server", "port", *port)
	if err := http.ListenAndServe(fmt.Sprintf(":%d", *port), r); err != nil {
		log.Fatalf("listen and serve returned error: %v", err.Error())
	}
}
