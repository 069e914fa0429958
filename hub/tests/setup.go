package tests

import (
	"bytes"
	"testing"

	"founderhub/hub/auth"
	"founderhub/hub/billing"
	"founderhub/hub/generation"
	"founderhub/hub/schema"
	"founderhub/hub/services"

	"github.com/go-chi/chi/v5"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	hub     services.Hub
	api     chi.Router
	db      *gorm.DB
	billing *billing.StubProvider
}

const (
	adminEmail    = "admin123@mail.com"
	adminPassword = "admin_password123"
)

func setupTestEnv(t *testing.T) *testEnv {
	// _fk=1 enables foreign key enforcement, needed for the delete cascades.
	db, err := gorm.Open(sqlite.Open("file::memory:?_fk=1"), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}

	if err := db.AutoMigrate(schema.AllTables()...); err != nil {
		t.Fatal(err)
	}

	userAuth, err := auth.NewBasicIdentityProvider(
		db,
		auth.NewAuditLogger(new(bytes.Buffer)),
		auth.BasicProviderArgs{
			Secret:        []byte("290zcv02ai249"),
			AdminEmail:    adminEmail,
			AdminPassword: adminPassword,
		},
	)
	if err != nil {
		t.Fatal(err)
	}

	billingStub := billing.NewStubProvider()

	hub := services.NewHub(
		db,
		generation.NewMockGenerator(),
		billingStub,
		userAuth,
		services.Variables{ProPriceId: "price_test_pro"},
	)

	return &testEnv{hub: hub, api: hub.Routes(), db: db, billing: billingStub}
}

func (t *testEnv) newClient() client {
	return client{api: t.api}
}

func (t *testEnv) newUser(name string) (client, error) {
	c := t.newClient()
	login, err := c.signup(name+"@mail.com", name+"_password")
	if err != nil {
		return client{}, err
	}

	if err := c.login(login); err != nil {
		return client{}, err
	}

	return c, nil
}

func (t *testEnv) adminClient() (client, error) {
	c := t.newClient()
	err := c.login(loginInfo{Email: adminEmail, Password: adminPassword})
	return c, err
}
