// Command monegros runs the exploratory analysis of the Orbea Monegros
// race results.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/baditaflorin/monegros/internal/adapters/csvsource"
	"github.com/baditaflorin/monegros/internal/adapters/logger"
	"github.com/baditaflorin/monegros/internal/adapters/namegen"
	"github.com/baditaflorin/monegros/internal/adapters/normalizer"
	"github.com/baditaflorin/monegros/internal/adapters/plot"
	"github.com/baditaflorin/monegros/internal/config"
	"github.com/baditaflorin/monegros/internal/core/club"
	"github.com/baditaflorin/monegros/internal/pipeline"
	"github.com/baditaflorin/monegros/internal/report"
)

// Command-line flags
var (
	exercise   string
	configPath string
	datasetArg string
	outputArg  string
	clubArg    string
	dorsalArg  int
)

func init() {
	flag.StringVar(&exercise, "exercise", "", "Run a single exercise (1-5); empty runs all")
	flag.StringVar(&configPath, "config", "", "Path to the YAML configuration file")
	flag.StringVar(&datasetArg, "dataset", "", "Path to the race results CSV (overrides config)")
	flag.StringVar(&outputArg, "output", "", "Output format: 'text', 'json' or 'yaml' (overrides config)")
	flag.StringVar(&clubArg, "club", "", "Club analysed in exercise 5 (overrides config)")
	flag.IntVar(&dorsalArg, "dorsal", 0, "Dorsal looked up in exercise 2 (overrides config)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -exercise 4 -output json\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -exercise 5 -club \"HUESCA\"\n", os.Args[0])
	}
}

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	step, err := pipeline.ParseStep(exercise)
	if err != nil {
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	applyOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: validate: %w", err)
	}

	log, err := logger.NewStdLogger(logger.Options{File: cfg.Log.File, JSON: cfg.Log.JSON})
	if err != nil {
		return err
	}
	defer log.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	printer := report.NewPrinter(os.Stdout, report.Format(cfg.Output.Format))
	defer printer.Close()

	p := pipeline.New(pipeline.Deps{
		Source:   csvsource.NewLoader(cfg.Dataset.Path, cfg.SeparatorRune(), log),
		Names:    namegen.New(cfg.Analysis.Seed),
		Clubs:    newClubNormalizer(cfg),
		Renderer: plot.NewPNGRenderer(),
		Logger:   log,
	}, pipeline.Options{
		ImageDir:    cfg.Output.ImageDir,
		Dorsal:      cfg.Analysis.Dorsal,
		Club:        cfg.Analysis.Club,
		HeadRows:    cfg.Analysis.HeadRows,
		PreviewRows: cfg.Analysis.PreviewRows,
		TopClubs:    cfg.Analysis.TopClubs,
	}, printer)

	res, err := p.Run(ctx, step)
	if err != nil {
		return err
	}
	if res.ImagePath != "" && cfg.Output.Format == string(report.FormatText) {
		fmt.Printf("\nHistogram saved to %s\n", res.ImagePath)
	}
	return nil
}

func applyOverrides(cfg *config.Config) {
	if datasetArg != "" {
		cfg.Dataset.Path = datasetArg
	}
	if outputArg != "" {
		cfg.Output.Format = outputArg
	}
	if clubArg != "" {
		cfg.Analysis.Club = clubArg
	}
	if dorsalArg != 0 {
		cfg.Analysis.Dorsal = dorsalArg
	}
}

func newClubNormalizer(cfg *config.Config) *club.Normalizer {
	kind := normalizer.OptimizedNormalizerType
	if cfg.Analysis.FullFolding {
		kind = normalizer.DefaultNormalizerType
	}
	folder := normalizer.NewNormalizerFactory().CreateNormalizer(kind, cfg.Analysis.ComposeUnicode)
	return club.NewNormalizer(folder)
}
