package model

import "time"

// Output format names accepted by the command line and config file.
const (
	FormatSVG   = "svg"
	FormatPDF   = "pdf"
	FormatCards = "cards"
	FormatExcel = "xlsx"
	FormatDXF   = "dxf"
	FormatJSON  = "json"
)

// AllFormats lists every output format in the order they are written.
var AllFormats = []string{FormatSVG, FormatPDF, FormatCards, FormatExcel, FormatDXF, FormatJSON}

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Default solver settings applied to new puzzles
	DefaultPieceOrder     PieceOrder `json:"default_piece_order"`
	DefaultTimeoutSeconds int        `json:"default_timeout_seconds"` // 0 = no limit

	// Output preferences
	OutputDir     string   `json:"output_dir"`
	OutputName    string   `json:"output_name"`    // Base file name without extension
	OutputFormats []string `json:"output_formats"` // Subset of AllFormats
	RecentPuzzles []string `json:"recent_puzzles"`
}

// DefaultAppConfig returns an AppConfig populated with defaults matching
// DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultPieceOrder:     defaults.PieceOrder,
		DefaultTimeoutSeconds: int(defaults.Timeout / time.Second),
		OutputDir:             ".",
		OutputName:            "solution",
		OutputFormats:         []string{FormatSVG},
		RecentPuzzles:         []string{},
	}
}

// ApplyToSettings copies the default values from AppConfig into SolveSettings.
func (c AppConfig) ApplyToSettings(s *SolveSettings) {
	if c.DefaultPieceOrder != "" {
		s.PieceOrder = c.DefaultPieceOrder
	}
	s.Timeout = time.Duration(c.DefaultTimeoutSeconds) * time.Second
}

// WantsFormat reports whether the config asks for the named output format.
func (c AppConfig) WantsFormat(format string) bool {
	for _, f := range c.OutputFormats {
		if f == format {
			return true
		}
	}
	return false
}

// MaxRecentPuzzles bounds the RecentPuzzles list.
const MaxRecentPuzzles = 10

// AddRecentPuzzle moves path to the front of RecentPuzzles, dropping older
// duplicates and trimming the list to MaxRecentPuzzles.
func (c *AppConfig) AddRecentPuzzle(path string) {
	recent := []string{path}
	for _, p := range c.RecentPuzzles {
		if p != path && len(recent) < MaxRecentPuzzles {
			recent = append(recent, p)
		}
	}
	c.RecentPuzzles = recent
}
