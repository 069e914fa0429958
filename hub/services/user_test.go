package services

import (
	"testing"

	"founderhub/hub/schema"

	"github.com/google/uuid"
)

func strPtr(s string) *string {
	return &s
}

// An identity provider that vends ids without writing user rows (an external
// IdP) reaches the sync endpoint with an id the db has never seen. The
// upsert must create the row from the claims.
func TestUpsertUserCreatesRowForUnseenId(t *testing.T) {
	db := setupTestDb(t)

	userId := uuid.New()
	user, err := upsertUser(db, userId, syncRequest{
		Email:     strPtr("new@mail.com"),
		FirstName: strPtr("New"),
	})
	if err != nil {
		t.Fatal(err)
	}

	if user.Id != userId || user.Email != "new@mail.com" || user.FirstName != "New" {
		t.Fatalf("unexpected created user: %+v", user)
	}
	if user.SubscriptionStatus != schema.SubscriptionFree {
		t.Fatalf("created user should be on the free plan, got %v", user.SubscriptionStatus)
	}

	var stored schema.User
	if result := db.First(&stored, "id = ?", userId); result.Error != nil {
		t.Fatal(result.Error)
	}
	if stored.Email != "new@mail.com" {
		t.Fatalf("row not persisted: %+v", stored)
	}
}

func TestUpsertUserMergesSuppliedClaimsOnly(t *testing.T) {
	db := setupTestDb(t)

	userId := uuid.New()
	if _, err := upsertUser(db, userId, syncRequest{
		Email:     strPtr("merge@mail.com"),
		FirstName: strPtr("First"),
		LastName:  strPtr("Last"),
	}); err != nil {
		t.Fatal(err)
	}

	updated, err := upsertUser(db, userId, syncRequest{FirstName: strPtr("Renamed")})
	if err != nil {
		t.Fatal(err)
	}

	if updated.FirstName != "Renamed" {
		t.Fatalf("supplied claim should be updated, got %v", updated.FirstName)
	}

	var stored schema.User
	if result := db.First(&stored, "id = ?", userId); result.Error != nil {
		t.Fatal(result.Error)
	}
	if stored.FirstName != "Renamed" || stored.LastName != "Last" || stored.Email != "merge@mail.com" {
		t.Fatalf("omitted claims should be untouched: %+v", stored)
	}
}
