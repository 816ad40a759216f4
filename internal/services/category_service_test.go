package services_test

import (
	"testing"

	"resellit/internal/apperr"
	"resellit/internal/repos"
	"resellit/internal/services"
)

func TestCategoryCreateDuplicate(t *testing.T) {
	f := newFixture(t, 10)
	svc := services.NewCategoryService(f.cats, repos.NewItemRepo(f.db))

	cat, err := svc.Create("books")
	if err != nil {
		t.Fatal(err)
	}
	if cat.ID == 0 || cat.Name != "books" {
		t.Fatalf("bad category: %+v", cat)
	}

	_, err = svc.Create("books")
	wantKind(t, err, apperr.Conflict)
}

func TestCategoryUpdate(t *testing.T) {
	f := newFixture(t, 10)
	svc := services.NewCategoryService(f.cats, repos.NewItemRepo(f.db))

	cat, err := svc.Create("books")
	if err != nil {
		t.Fatal(err)
	}
	got, err := svc.Update(cat.ID, "used books")
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "used books" {
		t.Fatalf("want renamed category, got %+v", got)
	}

	_, err = svc.Update(9999, "whatever")
	wantKind(t, err, apperr.NotFound)

	// Renaming onto an existing name collides.
	if _, err := svc.Create("games"); err != nil {
		t.Fatal(err)
	}
	_, err = svc.Update(cat.ID, "games")
	wantKind(t, err, apperr.Conflict)
}

func TestCategoryDeleteBlockedWhileReferenced(t *testing.T) {
	f := newFixture(t, 10)
	svc := services.NewCategoryService(f.cats, repos.NewItemRepo(f.db))

	f.addItem(t, "Novel", "", 5)

	id, err := f.cats.IDByName("electronics")
	if err != nil {
		t.Fatal(err)
	}
	wantKind(t, svc.Delete(id), apperr.Conflict)

	empty, err := svc.Create("empty shelf")
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(empty.ID); err != nil {
		t.Fatal(err)
	}
	wantKind(t, svc.Delete(empty.ID), apperr.NotFound)
}
