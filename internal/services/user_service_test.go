package services_test

import (
	"testing"

	"resellit/internal/apperr"
	"resellit/internal/services"
)

func TestUserCreateAndLookup(t *testing.T) {
	f := newFixture(t, 10)
	svc := services.NewUserService(f.users)

	u, err := svc.Create(services.UserInput{
		TelegramID: 42, Username: "bob", Name: "Bob", Role: "seller",
	})
	if err != nil {
		t.Fatal(err)
	}
	if u.Role.Name != "seller" {
		t.Fatalf("want seller role resolved, got %+v", u.Role)
	}

	id, err := svc.IDByTelegram(42)
	if err != nil {
		t.Fatal(err)
	}
	if id != u.ID {
		t.Fatalf("want id %d, got %d", u.ID, id)
	}

	exists, err := svc.ExistsByTelegram(42)
	if err != nil || !exists {
		t.Fatalf("want exists, got %v %v", exists, err)
	}
	exists, err = svc.ExistsByTelegram(77)
	if err != nil || exists {
		t.Fatalf("want not exists, got %v %v", exists, err)
	}

	_, err = svc.IDByTelegram(77)
	wantKind(t, err, apperr.NotFound)
}

func TestUserCreateConflictsAndDefaults(t *testing.T) {
	f := newFixture(t, 10)
	svc := services.NewUserService(f.users)

	// Fixture already registered telegram_id 1001.
	_, err := svc.Create(services.UserInput{TelegramID: 1001, Name: "Mallory"})
	wantKind(t, err, apperr.Conflict)

	u, err := svc.Create(services.UserInput{TelegramID: 43, Name: "Carol"})
	if err != nil {
		t.Fatal(err)
	}
	if u.Role.Name != "buyer" {
		t.Fatalf("want default buyer role, got %q", u.Role.Name)
	}

	_, err = svc.Create(services.UserInput{TelegramID: 44, Name: "Dave", Role: "pirate"})
	wantKind(t, err, apperr.NotFound)
}

func TestRolesAndRoleAssignment(t *testing.T) {
	f := newFixture(t, 10)
	svc := services.NewUserService(f.users)

	roles, err := svc.Roles()
	if err != nil {
		t.Fatal(err)
	}
	if len(roles) != 3 {
		t.Fatalf("want the 3 seeded roles, got %d", len(roles))
	}

	mod, err := svc.CreateRole("moderator", "Reviews reported listings")
	if err != nil {
		t.Fatal(err)
	}
	_, err = svc.CreateRole("moderator", "")
	wantKind(t, err, apperr.Conflict)

	u, err := svc.UpdateRole(f.userID, mod.ID)
	if err != nil {
		t.Fatal(err)
	}
	if u.Role.Name != "moderator" {
		t.Fatalf("want moderator, got %q", u.Role.Name)
	}

	_, err = svc.UpdateRole(9999, mod.ID)
	wantKind(t, err, apperr.NotFound)
	_, err = svc.UpdateRole(f.userID, 9999)
	wantKind(t, err, apperr.NotFound)
}
