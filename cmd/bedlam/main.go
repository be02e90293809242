// Bedlam: 4x4x4 polycube puzzle solver
//
// Searches for an arrangement of the thirteen Bedlam cube pieces (or an
// imported catalogue) that fills the cube, prints each piece's 64-bit cell
// pattern and writes the solution as drawings, printable cards, a workbook
// or a 3D wireframe.
//
// Build:
//   go build -o bedlam ./cmd/bedlam
//
// Examples:
//   bedlam -formats svg,pdf
//   bedlam -catalogue pieces.csv -order fewest-candidates -timeout 30s
//   bedlam -reference -formats xlsx,dxf -out ./out
//   bedlam -compare

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/piwi3910/bedlam/internal/engine"
	"github.com/piwi3910/bedlam/internal/export"
	"github.com/piwi3910/bedlam/internal/importer"
	"github.com/piwi3910/bedlam/internal/model"
	"github.com/piwi3910/bedlam/internal/project"
)

func main() {
	logger := log.New(os.Stderr, "bedlam: ", 0)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, logger); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		logger.Fatal(err)
	}
}

// options holds the parsed command line.
type options struct {
	configPath    string
	templatesPath string
	cataloguePath string
	puzzlePath    string
	templateName  string
	saveTemplate  string
	order         string
	timeout       time.Duration
	outDir        string
	name          string
	formats       string
	reference     bool
	compare       bool
	backupPath    string
	restorePath   string
	cpuprofile    string

	set map[string]bool // Flags given explicitly
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("bedlam", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&o.configPath, "config", project.DefaultConfigPath(), "application config file")
	fs.StringVar(&o.templatesPath, "templates", project.DefaultTemplatePath(), "puzzle template store")
	fs.StringVar(&o.cataloguePath, "catalogue", "", "import pieces from a .csv or .xlsx file")
	fs.StringVar(&o.puzzlePath, "puzzle", "", "load a saved puzzle (.json)")
	fs.StringVar(&o.templateName, "template", "", "start from the named template")
	fs.StringVar(&o.saveTemplate, "save-template", "", "store the catalogue and settings as a named template")
	fs.StringVar(&o.order, "order", "", "piece order: catalogue or fewest-candidates")
	fs.DurationVar(&o.timeout, "timeout", 0, "give up after this long (0 = no limit)")
	fs.StringVar(&o.outDir, "out", "", "output directory")
	fs.StringVar(&o.name, "name", "", "output file base name")
	fs.StringVar(&o.formats, "formats", "", "comma-separated outputs: "+strings.Join(model.AllFormats, ","))
	fs.BoolVar(&o.reference, "reference", false, "render the known reference solution without searching")
	fs.BoolVar(&o.compare, "compare", false, "run every piece order and print the statistics")
	fs.StringVar(&o.backupPath, "backup", "", "write config and templates to a backup file")
	fs.StringVar(&o.restorePath, "restore", "", "restore config and templates from a backup file")
	fs.StringVar(&o.cpuprofile, "cpuprofile", "", "write cpu profile to file")

	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if fs.NArg() > 0 {
		return o, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	o.set = map[string]bool{}
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })

	sources := 0
	for _, name := range []string{"catalogue", "puzzle", "template"} {
		if o.set[name] {
			sources++
		}
	}
	if sources > 1 {
		return o, errors.New("-catalogue, -puzzle and -template are mutually exclusive")
	}
	return o, nil
}

// parseFormats splits a comma-separated list of output formats.
func parseFormats(s string) ([]string, error) {
	var formats []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" {
			continue
		}
		known := false
		for _, k := range model.AllFormats {
			if f == k {
				known = true
				break
			}
		}
		if !known {
			return nil, fmt.Errorf("unknown output format %q", f)
		}
		formats = append(formats, f)
	}
	return formats, nil
}

func run(ctx context.Context, args []string, stdout io.Writer, logger *log.Logger) error {
	opts, err := parseFlags(args, logger.Writer())
	if err != nil {
		return err
	}

	if opts.cpuprofile != "" {
		f, err := os.Create(opts.cpuprofile)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
	}

	if opts.restorePath != "" {
		return restore(opts, logger)
	}

	stored, err := project.LoadAppConfig(opts.configPath)
	if err != nil {
		return err
	}
	cfg := stored
	if err := applyOutputFlags(&cfg, opts); err != nil {
		return err
	}

	puzzle, err := loadPuzzle(opts, cfg, logger)
	if err != nil {
		return err
	}

	if opts.saveTemplate != "" {
		store, err := project.LoadTemplates(opts.templatesPath)
		if err != nil {
			return err
		}
		store.Add(model.NewPuzzleTemplate(opts.saveTemplate, puzzle.Name, puzzle.Catalogue, puzzle.Settings))
		if err := project.SaveTemplates(opts.templatesPath, store); err != nil {
			return fmt.Errorf("failed to save templates: %w", err)
		}
		logger.Printf("saved template %q", opts.saveTemplate)
	}

	if opts.backupPath != "" {
		store, err := project.LoadTemplates(opts.templatesPath)
		if err != nil {
			return err
		}
		if err := project.ExportAllData(opts.backupPath, stored, store); err != nil {
			return err
		}
		logger.Printf("wrote backup to %s", opts.backupPath)
	}

	if opts.compare {
		results, err := engine.CompareScenarios(ctx, engine.BuildDefaultScenarios(puzzle.Settings), puzzle.Catalogue)
		if err != nil {
			return err
		}
		for _, r := range results {
			fmt.Fprintln(stdout, r.Summary())
		}
		return nil
	}

	var result model.SolveResult
	if opts.reference {
		puzzle.Catalogue = model.DefaultCatalogue()
		result = model.ReferenceResult(puzzle.Catalogue)
		logger.Printf("rendering the reference solution")
	} else {
		logger.Printf("solving %d pieces, order %s", len(puzzle.Catalogue), puzzle.Settings.PieceOrder)
		result, err = engine.New(puzzle.Settings).Solve(ctx, puzzle.Catalogue)
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			logger.Printf("gave up after %s (%d nodes)", result.Stats.Elapsed, result.Stats.Nodes)
		case err != nil:
			return err
		default:
			logger.Printf("search took %s (%d nodes, %d pruned)", result.Stats.Elapsed, result.Stats.Nodes, result.Stats.Pruned)
		}
	}

	if !result.Found {
		fmt.Fprintln(stdout, "No solution found")
		return nil
	}

	printSolution(stdout, result)

	puzzle.Result = &result
	return writeOutputs(puzzle, cfg, opts.configPath, logger)
}

// applyOutputFlags lets -out, -name and -formats override the config.
func applyOutputFlags(cfg *model.AppConfig, opts options) error {
	if opts.set["out"] {
		cfg.OutputDir = opts.outDir
	}
	if opts.set["name"] {
		cfg.OutputName = opts.name
	}
	if opts.set["formats"] {
		formats, err := parseFormats(opts.formats)
		if err != nil {
			return err
		}
		cfg.OutputFormats = formats
	}
	return nil
}

// loadPuzzle builds the puzzle to solve from the selected source, then
// applies the config defaults and the -order and -timeout flags.
func loadPuzzle(opts options, cfg model.AppConfig, logger *log.Logger) (model.Puzzle, error) {
	puzzle := model.NewPuzzle()
	cfg.ApplyToSettings(&puzzle.Settings)

	switch {
	case opts.puzzlePath != "":
		loaded, err := project.LoadPuzzle(opts.puzzlePath)
		if err != nil {
			return model.Puzzle{}, err
		}
		puzzle = loaded
		puzzle.Result = nil

	case opts.templateName != "":
		store, err := project.LoadTemplates(opts.templatesPath)
		if err != nil {
			return model.Puzzle{}, err
		}
		tmpl := store.FindByName(opts.templateName)
		if tmpl == nil {
			return model.Puzzle{}, fmt.Errorf("no template named %q (have: %s)", opts.templateName, strings.Join(store.Names(), ", "))
		}
		puzzle = tmpl.ToPuzzle(tmpl.Name)

	case opts.cataloguePath != "":
		var imported importer.ImportResult
		switch strings.ToLower(filepath.Ext(opts.cataloguePath)) {
		case ".xlsx", ".xlsm":
			imported = importer.ImportExcel(opts.cataloguePath)
		default:
			imported = importer.ImportCSV(opts.cataloguePath)
		}
		for _, w := range imported.Warnings {
			logger.Printf("%s: %s", opts.cataloguePath, w)
		}
		if !imported.OK() {
			return model.Puzzle{}, fmt.Errorf("cannot import %s:\n  %s", opts.cataloguePath, strings.Join(imported.Errors, "\n  "))
		}
		puzzle.Catalogue = imported.Catalogue
		puzzle.Name = strings.TrimSuffix(filepath.Base(opts.cataloguePath), filepath.Ext(opts.cataloguePath))
	}

	if opts.set["order"] {
		order, err := model.ParsePieceOrder(opts.order)
		if err != nil {
			return model.Puzzle{}, err
		}
		puzzle.Settings.PieceOrder = order
	}
	if opts.set["timeout"] {
		if opts.timeout < 0 {
			return model.Puzzle{}, fmt.Errorf("negative timeout %s", opts.timeout)
		}
		puzzle.Settings.Timeout = opts.timeout
	}
	return puzzle, nil
}

// printSolution writes one line per placement in placement order: the
// piece index, its label and its cell pattern.
func printSolution(w io.Writer, result model.SolveResult) {
	for _, p := range result.Placements {
		fmt.Fprintf(w, "%2d  %-10s %s\n", p.PieceIndex, p.Label, p.Encoded)
	}
}

// outputPath returns the file written for a format.
func outputPath(cfg model.AppConfig, format string) string {
	name := cfg.OutputName
	switch format {
	case model.FormatCards:
		name += "-cards.pdf"
	default:
		name += "." + format
	}
	return filepath.Join(cfg.OutputDir, name)
}

// writeOutputs renders the solved puzzle in every configured format.
func writeOutputs(puzzle model.Puzzle, cfg model.AppConfig, configPath string, logger *log.Logger) error {
	if len(cfg.OutputFormats) == 0 {
		return nil
	}
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	result := *puzzle.Result
	for _, format := range model.AllFormats {
		if !cfg.WantsFormat(format) {
			continue
		}
		path := outputPath(cfg, format)

		var err error
		switch format {
		case model.FormatSVG:
			err = export.ExportSVG(path, result)
		case model.FormatPDF:
			err = export.ExportPDF(path, result)
		case model.FormatCards:
			err = export.ExportCards(path, result)
		case model.FormatExcel:
			err = export.ExportExcel(path, result)
		case model.FormatDXF:
			err = export.ExportDXF(path, result)
		case model.FormatJSON:
			err = project.SavePuzzle(path, puzzle)
			if err == nil {
				err = recordRecentPuzzle(configPath, path)
			}
		}
		if err != nil {
			return fmt.Errorf("%s output: %w", format, err)
		}
		logger.Printf("wrote %s", path)
	}
	return nil
}

// recordRecentPuzzle adds path to the stored config's recent puzzles. Only
// that list changes; flag overrides are never written back.
func recordRecentPuzzle(configPath, path string) error {
	cfg, err := project.LoadAppConfig(configPath)
	if err != nil {
		return err
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	cfg.AddRecentPuzzle(path)
	return project.SaveAppConfig(configPath, cfg)
}

// restore applies a backup file: the config and templates it holds replace
// the current ones.
func restore(opts options, logger *log.Logger) error {
	backup, err := project.ImportAllData(opts.restorePath)
	if err != nil {
		return err
	}
	if err := project.SaveAppConfig(opts.configPath, backup.Config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	if err := project.SaveTemplates(opts.templatesPath, backup.Templates); err != nil {
		return fmt.Errorf("failed to save templates: %w", err)
	}
	logger.Printf("restored backup from %s (%s, %d templates)", opts.restorePath, backup.CreatedAt, len(backup.Templates.Templates))
	return nil
}
