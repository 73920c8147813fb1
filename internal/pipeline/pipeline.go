// Package pipeline runs the five analysis steps over a race-results dataset.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/baditaflorin/monegros/internal/adapters/logger"
	"github.com/baditaflorin/monegros/internal/adapters/plot"
	"github.com/baditaflorin/monegros/internal/core/anonymize"
	"github.com/baditaflorin/monegros/internal/core/club"
	"github.com/baditaflorin/monegros/internal/core/clubreport"
	"github.com/baditaflorin/monegros/internal/core/domain"
	"github.com/baditaflorin/monegros/internal/core/timebucket"
	"github.com/baditaflorin/monegros/internal/ports"
	"github.com/baditaflorin/monegros/internal/report"
)

// Step identifies one exercise of the analysis.
type Step int

const (
	StepLoad Step = iota + 1
	StepAnonymize
	StepHistogram
	StepClubs
	StepClubReport
)

var stepTitles = map[Step]string{
	StepLoad:       "Exercise 1: Data Loading and EDA",
	StepAnonymize:  "Exercise 2: Data Anonymization and Cleaning",
	StepHistogram:  "Exercise 3: Time Histogram",
	StepClubs:      "Exercise 4: Cycling Clubs Analysis",
	StepClubReport: "Exercise 5: Club Analysis",
}

// HistogramFile is the name of the rendered chart inside the image directory.
const HistogramFile = "histograma.png"

// ErrUnknownStep is returned for an exercise outside 1..5.
var ErrUnknownStep = errors.New("unknown exercise")

// ParseStep maps "1".."5" to a step; "" selects every step and returns 0.
func ParseStep(s string) (Step, error) {
	if s == "" {
		return 0, nil
	}
	for st := StepLoad; st <= StepClubReport; st++ {
		if s == fmt.Sprint(int(st)) {
			return st, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStep, s)
}

// Deps are the collaborators the pipeline drives.
type Deps struct {
	Source   ports.RowSource
	Names    ports.NameGenerator
	Clubs    ports.ClubNormalizer
	Renderer ports.HistogramRenderer
	Logger   ports.Logger
}

// Options tune what each step reports.
type Options struct {
	ImageDir    string
	Dorsal      int
	Club        string
	HeadRows    int
	PreviewRows int
	TopClubs    int
}

// Result collects everything the steps produced.
type Result struct {
	RunID      string
	Dataset    *domain.Dataset
	Original   int
	TimeCounts []domain.TimeCount
	ClubCounts []domain.ClubCount
	Club       *domain.ClubResult
	ImagePath  string
}

// Pipeline sequences the analysis steps.
type Pipeline struct {
	deps    Deps
	opts    Options
	printer *report.Printer
}

// New creates a pipeline writing its tables to printer.
func New(deps Deps, opts Options, printer *report.Printer) *Pipeline {
	if deps.Logger == nil {
		deps.Logger = ports.NopLogger{}
	}
	if printer == nil {
		printer = report.Discard()
	}
	if opts.HeadRows == 0 {
		opts.HeadRows = 5
	}
	if opts.PreviewRows == 0 {
		opts.PreviewRows = 15
	}
	if opts.TopClubs == 0 {
		opts.TopClubs = 10
	}
	return &Pipeline{deps: deps, opts: opts, printer: printer}
}

// Run executes the pipeline. With only == 0 every step runs and prints its
// tables; otherwise the earlier steps run silently and only step only prints.
func (p *Pipeline) Run(ctx context.Context, only Step) (*Result, error) {
	if only < 0 || only > StepClubReport {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStep, only)
	}
	last := only
	if last == 0 {
		last = StepClubReport
	}

	res := &Result{RunID: uuid.NewString()}
	log := logger.WithFields(p.deps.Logger, "run_id", res.RunID)
	log.Info("Starting analysis", "through_step", int(last))

	for st := StepLoad; st <= last; st++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		silent := only != 0 && st != only
		out := p.printer
		if silent {
			out = report.Discard()
		}
		if err := out.Heading(stepTitles[st]); err != nil {
			return nil, err
		}
		if err := p.runStep(ctx, st, res, out, log, silent); err != nil {
			log.Error("Step failed", "step", int(st), "error", err)
			return nil, fmt.Errorf("step %d: %w", st, err)
		}
	}

	log.Info("Analysis completed", "rows", res.Dataset.Len())
	return res, nil
}

// runStep executes one step. A silent step runs only as a prerequisite and
// produces no output files.
func (p *Pipeline) runStep(ctx context.Context, st Step, res *Result, out *report.Printer, log ports.Logger, silent bool) error {
	switch st {
	case StepLoad:
		return p.load(ctx, res, out)
	case StepAnonymize:
		return p.anonymize(ctx, res, out, log)
	case StepHistogram:
		return p.histogram(ctx, res, out, log, !silent)
	case StepClubs:
		return p.clubs(ctx, res, out, log)
	case StepClubReport:
		return p.clubReport(ctx, res, out, log)
	}
	return fmt.Errorf("%w: %d", ErrUnknownStep, st)
}

func (p *Pipeline) load(ctx context.Context, res *Result, out *report.Printer) error {
	ds, err := p.deps.Source.Load(ctx)
	if err != nil {
		return err
	}
	res.Dataset = ds
	res.Original = ds.Len()

	if err := out.Rows(fmt.Sprintf("First %d rows of the dataset:", p.opts.HeadRows), ds.Head(p.opts.HeadRows), ds.Columns); err != nil {
		return err
	}
	columns := make(map[string]interface{}, len(ds.Columns))
	for i, c := range ds.Columns {
		columns[c] = i
	}
	if err := out.Values("Number of participants:", []string{"participants"},
		map[string]interface{}{"participants": ds.Len()}); err != nil {
		return err
	}
	return out.Values("Dataframe columns:", ds.Columns, columns)
}

func (p *Pipeline) anonymize(ctx context.Context, res *Result, out *report.Printer, log ports.Logger) error {
	an := anonymize.NewAnonymizer(p.deps.Names, log)
	ds, err := an.AnonymizeNames(ctx, res.Dataset)
	if err != nil {
		return err
	}
	if err := out.Rows("First rows after anonymization:", ds.Head(p.opts.HeadRows), ds.Columns); err != nil {
		return err
	}

	ds = an.Clean(ds)
	res.Dataset = ds
	if err := out.Values("Number of participants after cleaning:", []string{"participants"},
		map[string]interface{}{"participants": ds.Len()}); err != nil {
		return err
	}
	if err := out.Rows("First rows after cleaning:", ds.Head(p.opts.HeadRows), ds.Columns); err != nil {
		return err
	}

	found := anonymize.FindDorsal(ds, p.opts.Dorsal)
	if len(found) == 0 {
		log.Warn("No biker found with dorsal", "dorsal", p.opts.Dorsal)
		return nil
	}
	return out.Rows(fmt.Sprintf("Data for biker with dorsal %d:", p.opts.Dorsal), found, ds.Columns)
}

func (p *Pipeline) histogram(ctx context.Context, res *Result, out *report.Printer, log ports.Logger, render bool) error {
	ds, counts, err := timebucket.NewHistogram(log).Group(ctx, res.Dataset)
	if err != nil {
		return err
	}
	res.Dataset = ds
	res.TimeCounts = counts

	if err := out.Rows("Rows with grouped times:", ds.Head(p.opts.PreviewRows),
		[]string{domain.ColumnTime, domain.ColumnTimeGrouped}); err != nil {
		return err
	}
	if err := out.TimeCounts("Frequency table of grouped times:", counts); err != nil {
		return err
	}

	if p.deps.Renderer == nil || !render {
		return nil
	}
	path := filepath.Join(p.opts.ImageDir, HistogramFile)
	if err := plot.SaveFile(p.deps.Renderer, path, "Distribution of Race Completion Times", counts); err != nil {
		return err
	}
	res.ImagePath = path
	log.Info("Histogram saved", "path", path)
	return nil
}

func (p *Pipeline) clubs(ctx context.Context, res *Result, out *report.Printer, log ports.Logger) error {
	ds, summary, err := club.NewAnalyzer(p.deps.Clubs, log).Analyze(ctx, res.Dataset)
	if err != nil {
		return err
	}
	res.Dataset = ds
	res.ClubCounts = summary

	if err := out.Rows("Rows with cleaned club names:", ds.Head(p.opts.PreviewRows),
		[]string{domain.ColumnClub, domain.ColumnClubClean}); err != nil {
		return err
	}
	top := summary
	if len(top) > p.opts.TopClubs {
		top = top[:p.opts.TopClubs]
	}
	return out.ClubCounts(fmt.Sprintf("Club participation summary (top %d):", p.opts.TopClubs), top)
}

func (p *Pipeline) clubReport(ctx context.Context, res *Result, out *report.Printer, log ports.Logger) error {
	target := p.opts.Club
	if target != "" {
		target = p.deps.Clubs.Normalize(target)
	}
	cr, err := clubreport.NewAnalyzer(target, log).Analyze(ctx, res.Dataset)
	if err != nil {
		return err
	}
	res.Club = cr

	if err := out.Rows(fmt.Sprintf("%s cyclists:", cr.Club), cr.Members,
		[]string{domain.ColumnDorsal, domain.ColumnBiker, domain.ColumnTime}); err != nil {
		return err
	}
	if cr.Best == nil {
		return nil
	}
	return out.Position(fmt.Sprintf("Best time for %s:", cr.Club), *cr.Best, *cr.Position)
}
