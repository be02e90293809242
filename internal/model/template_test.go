package model

import (
	"testing"
)

func TestNewPuzzleTemplate(t *testing.T) {
	catalogue := DefaultCatalogue()
	settings := DefaultSettings()
	settings.PieceOrder = PieceOrderFewestCandidates

	tmpl := NewPuzzleTemplate("Bedlam", "The classic 13 pieces", catalogue, settings)

	if tmpl.Name != "Bedlam" {
		t.Errorf("expected name 'Bedlam', got %q", tmpl.Name)
	}
	if tmpl.Description != "The classic 13 pieces" {
		t.Errorf("unexpected description %q", tmpl.Description)
	}
	if tmpl.ID == "" {
		t.Error("expected non-empty ID")
	}
	if tmpl.CreatedAt == "" {
		t.Error("expected non-empty CreatedAt")
	}
	if len(tmpl.Catalogue) != 13 {
		t.Errorf("expected 13 pieces, got %d", len(tmpl.Catalogue))
	}
	if tmpl.Settings.PieceOrder != PieceOrderFewestCandidates {
		t.Errorf("settings not kept: %+v", tmpl.Settings)
	}

	// The template owns its shapes.
	catalogue[0].Shape[0] = Block{X: 3, Y: 3, Z: 3}
	if tmpl.Catalogue[0].Shape[0] == catalogue[0].Shape[0] {
		t.Error("template shares shape storage with its source catalogue")
	}
}

func TestNewPuzzleTemplate_NilCatalogue(t *testing.T) {
	tmpl := NewPuzzleTemplate("Empty", "", nil, DefaultSettings())
	if tmpl.Catalogue == nil {
		t.Error("expected empty, non-nil catalogue")
	}
}

func TestPuzzleTemplate_ToPuzzle(t *testing.T) {
	tmpl := NewPuzzleTemplate("Bedlam", "", DefaultCatalogue(), DefaultSettings())

	puzzle := tmpl.ToPuzzle("Evening attempt")

	if puzzle.Name != "Evening attempt" {
		t.Errorf("expected puzzle name 'Evening attempt', got %q", puzzle.Name)
	}
	if puzzle.ID == "" || puzzle.ID == tmpl.ID {
		t.Errorf("expected a fresh puzzle ID, got %q", puzzle.ID)
	}
	if puzzle.Result != nil {
		t.Error("a puzzle from a template has no result")
	}
	if len(puzzle.Catalogue) != len(tmpl.Catalogue) {
		t.Fatalf("expected %d pieces, got %d", len(tmpl.Catalogue), len(puzzle.Catalogue))
	}
	for i, p := range puzzle.Catalogue {
		if p.ID == tmpl.Catalogue[i].ID {
			t.Errorf("piece %d kept the template's ID", i)
		}
		if p.Label != tmpl.Catalogue[i].Label {
			t.Errorf("piece %d label %q, want %q", i, p.Label, tmpl.Catalogue[i].Label)
		}
		if !p.Shape.SameBlocks(tmpl.Catalogue[i].Shape) {
			t.Errorf("piece %d shape differs", i)
		}
	}
	if err := puzzle.Catalogue.Validate(); err != nil {
		t.Errorf("puzzle catalogue invalid: %v", err)
	}
}

func TestTemplateStore_AddFindRemove(t *testing.T) {
	store := NewTemplateStore()
	a := NewPuzzleTemplate("A", "", DefaultCatalogue(), DefaultSettings())
	b := NewPuzzleTemplate("B", "", DefaultCatalogue(), DefaultSettings())
	store.Add(a)
	store.Add(b)

	if got := store.Names(); len(got) != 2 || got[0] != "A" || got[1] != "B" {
		t.Errorf("Names() = %v", got)
	}
	if store.FindByName("B") == nil || store.FindByName("B").ID != b.ID {
		t.Error("FindByName did not return B")
	}
	if store.FindByID(a.ID) == nil {
		t.Error("FindByID did not return A")
	}
	if store.FindByName("C") != nil || store.FindByID("nope") != nil {
		t.Error("unknown templates should not be found")
	}

	if !store.Remove(a.ID) {
		t.Error("Remove(a) returned false")
	}
	if store.Remove(a.ID) {
		t.Error("second Remove(a) returned true")
	}
	if len(store.Templates) != 1 {
		t.Errorf("expected 1 template, got %d", len(store.Templates))
	}
}

func TestTemplateStore_AddReplacesSameName(t *testing.T) {
	store := NewTemplateStore()
	first := NewPuzzleTemplate("Bedlam", "old", DefaultCatalogue(), DefaultSettings())
	first.CreatedAt = "2020-01-01T00:00:00Z"
	store.Add(first)

	second := NewPuzzleTemplate("Bedlam", "new", DefaultCatalogue(), DefaultSettings())
	store.Add(second)

	if len(store.Templates) != 1 {
		t.Fatalf("expected 1 template, got %d", len(store.Templates))
	}
	got := store.Templates[0]
	if got.Description != "new" {
		t.Errorf("expected the new template, got %q", got.Description)
	}
	if got.CreatedAt != first.CreatedAt {
		t.Errorf("CreatedAt should be kept, got %q", got.CreatedAt)
	}
}
