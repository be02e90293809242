package project

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/piwi3910/bedlam/internal/model"
)

// DefaultTemplatePath returns ~/.bedlam/templates.json.
func DefaultTemplatePath() string {
	return filepath.Join(DefaultConfigDir(), "templates.json")
}

// SaveTemplates writes the template store to a JSON file.
func SaveTemplates(path string, store model.TemplateStore) error {
	return writeJSON(path, store)
}

// LoadTemplates reads a template store. A missing file yields an empty store.
func LoadTemplates(path string) (model.TemplateStore, error) {
	var store model.TemplateStore
	if err := readJSON(path, &store); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.NewTemplateStore(), nil
		}
		return model.TemplateStore{}, fmt.Errorf("failed to load templates: %w", err)
	}
	if store.Templates == nil {
		store.Templates = []model.PuzzleTemplate{}
	}
	return store, nil
}
