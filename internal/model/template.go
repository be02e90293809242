package model

import (
	"time"

	"github.com/google/uuid"
)

// PuzzleTemplate is a reusable catalogue and settings pair, kept without
// any search result.
type PuzzleTemplate struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	CreatedAt   string        `json:"created_at"`
	UpdatedAt   string        `json:"updated_at"`
	Catalogue   Catalogue     `json:"catalogue"`
	Settings    SolveSettings `json:"settings"`
}

// NewPuzzleTemplate creates a template holding a deep copy of the catalogue.
func NewPuzzleTemplate(name, description string, catalogue Catalogue, settings SolveSettings) PuzzleTemplate {
	now := time.Now().UTC().Format(time.RFC3339)
	return PuzzleTemplate{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Catalogue:   copyCatalogue(catalogue),
		Settings:    settings,
	}
}

// ToPuzzle creates a new Puzzle from this template. Pieces get fresh IDs so
// they are independent of the template.
func (t PuzzleTemplate) ToPuzzle(name string) Puzzle {
	catalogue := make(Catalogue, len(t.Catalogue))
	for i, p := range t.Catalogue {
		catalogue[i] = NewPiece(p.Label, copyShape(p.Shape))
	}
	return Puzzle{
		ID:        uuid.New().String()[:8],
		Name:      name,
		Catalogue: catalogue,
		Settings:  t.Settings,
	}
}

// TemplateStore holds a collection of puzzle templates.
type TemplateStore struct {
	Templates []PuzzleTemplate `json:"templates"`
}

// NewTemplateStore creates an empty template store.
func NewTemplateStore() TemplateStore {
	return TemplateStore{
		Templates: []PuzzleTemplate{},
	}
}

// Add adds a template to the store, replacing any template of the same name.
func (ts *TemplateStore) Add(t PuzzleTemplate) {
	for i := range ts.Templates {
		if ts.Templates[i].Name == t.Name {
			t.CreatedAt = ts.Templates[i].CreatedAt
			ts.Templates[i] = t
			return
		}
	}
	ts.Templates = append(ts.Templates, t)
}

// Remove removes a template by ID. Returns true if found and removed.
func (ts *TemplateStore) Remove(id string) bool {
	for i, t := range ts.Templates {
		if t.ID == id {
			ts.Templates = append(ts.Templates[:i], ts.Templates[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the template with the given ID, or nil.
func (ts *TemplateStore) FindByID(id string) *PuzzleTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].ID == id {
			return &ts.Templates[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first template with the given name, or nil.
func (ts *TemplateStore) FindByName(name string) *PuzzleTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].Name == name {
			return &ts.Templates[i]
		}
	}
	return nil
}

// Names returns the template names in store order.
func (ts *TemplateStore) Names() []string {
	names := make([]string, len(ts.Templates))
	for i, t := range ts.Templates {
		names[i] = t.Name
	}
	return names
}

func copyShape(s Shape) Shape {
	cp := make(Shape, len(s))
	copy(cp, s)
	return cp
}

// copyCatalogue creates a deep copy of a catalogue, shapes included.
func copyCatalogue(c Catalogue) Catalogue {
	if c == nil {
		return Catalogue{}
	}
	cp := make(Catalogue, len(c))
	for i, p := range c {
		cp[i] = p
		cp[i].Shape = copyShape(p.Shape)
	}
	return cp
}
