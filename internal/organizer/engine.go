package organizer

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"brandsort/internal/config"
	"brandsort/internal/logging"
	"brandsort/internal/services"
	"brandsort/internal/staging"
)

// Phase names, in execution order. They double as the stage field on log
// records.
const (
	PhaseFlatten         = "flatten"
	PhaseClassifyStaging = "classify_staging"
	PhaseRedistribute    = "redistribute"
	PhaseClassifyBrands  = "classify_brands"
	PhaseSweep           = "sweep"
	PhasePrune           = "prune"
)

// EventPhaseStart marks the first record of every phase.
const EventPhaseStart = "phase_start"

// timestampLayout formats the suffix of flattened, quarantined, and conflict names.
const timestampLayout = "20060102_150405"

type phase struct {
	name        string
	description string
	run         func(*run)
}

var phases = []phase{
	{PhaseFlatten, "flattening nested folders", (*run).flatten},
	{PhaseClassifyStaging, "organizing staging folder contents", (*run).classifyStaging},
	{PhaseRedistribute, "moving staging folders into the main structure", (*run).redistribute},
	{PhaseClassifyBrands, "organizing files in brand folders", (*run).classifyBrands},
	{PhaseSweep, "organizing remaining folder contents", (*run).sweep},
	{PhasePrune, "removing empty folders", (*run).prune},
}

// Phases lists the pipeline phase names in execution order.
func Phases() []string {
	out := make([]string, len(phases))
	for i, p := range phases {
		out[i] = p.name
	}
	return out
}

// Options tunes an Engine. Zero values fall back to the built-in conventions.
type Options struct {
	StagingPrefix  string
	QuarantineName string
	// StageLevels raises the minimum log level for individual phases.
	StageLevels map[string]slog.Level
	// RecordLevel is the lowest level captured in Result.Log (default info).
	RecordLevel slog.Level
	// Now supplies timestamps for generated names; tests pin it.
	Now func() time.Time
}

// Stats counts what a run changed.
type Stats struct {
	FilesMoved       int `json:"files_moved"`
	FoldersMoved     int `json:"folders_moved"`
	FoldersCreated   int `json:"folders_created"`
	FoldersFlattened int `json:"folders_flattened"`
	FoldersMerged    int `json:"folders_merged"`
	FoldersRemoved   int `json:"folders_removed"`
	Duplicates       int `json:"duplicates"`
	Replaced         int `json:"replaced"`
	Conflicts        int `json:"conflicts"`
	Skipped          int `json:"skipped"`
	Errors           int `json:"errors"`
}

// Changes reports the number of filesystem mutations a run performed.
func (s Stats) Changes() int {
	return s.FilesMoved + s.FoldersMoved + s.FoldersCreated + s.FoldersFlattened +
		s.FoldersMerged + s.FoldersRemoved + s.Duplicates + s.Replaced + s.Conflicts
}

// Result is the outcome of one Organize call.
type Result struct {
	Success    bool
	Root       string
	Log        []string
	Stats      Stats
	Err        error
	StartedAt  time.Time
	FinishedAt time.Time
}

// Engine runs the organize pipeline. It holds no per-run state, so one Engine
// may serve many sequential runs.
type Engine struct {
	opts   Options
	logger *slog.Logger
}

// New builds an Engine that logs through logger (nil discards).
func New(opts Options, logger *slog.Logger) *Engine {
	if opts.StagingPrefix == "" {
		opts.StagingPrefix = staging.DefaultPrefix
	}
	if opts.QuarantineName == "" {
		opts.QuarantineName = "Old Images"
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Engine{opts: opts, logger: logging.NewComponentLogger(logger, "organizer")}
}

// NewFromConfig builds an Engine from the organizer and logging sections.
func NewFromConfig(cfg *config.Config, logger *slog.Logger) *Engine {
	opts := Options{}
	if cfg != nil {
		opts.StagingPrefix = cfg.Organizer.StagingPrefix
		opts.QuarantineName = cfg.Organizer.QuarantineName
		opts.StageLevels = make(map[string]slog.Level, len(cfg.Logging.StageOverrides))
		for stage, name := range cfg.Logging.StageOverrides {
			if level, err := logging.ParseLevel(name); err == nil {
				opts.StageLevels[stage] = level
			}
		}
	}
	return New(opts, logger)
}

// Organize rewrites the tree under root. It fails closed when root is missing
// or not a directory; otherwise every phase runs and Success is true even if
// individual moves were skipped.
func (e *Engine) Organize(ctx context.Context, root string) Result {
	if ctx == nil {
		ctx = context.Background()
	}
	recorder := logging.NewRecorder(e.opts.RecordLevel)
	result := Result{Root: root, StartedAt: e.opts.Now()}

	abs, err := filepath.Abs(root)
	if err == nil {
		root = abs
		result.Root = abs
	}
	ctx = services.WithRoot(ctx, root)
	logger := logging.WithContext(ctx, logging.TeeLogger(e.logger, recorder))

	info, statErr := os.Stat(root)
	if err == nil && statErr == nil && !info.IsDir() {
		statErr = os.ErrInvalid
	}
	if err != nil || statErr != nil {
		cause := err
		if cause == nil {
			cause = statErr
		}
		result.Err = services.Wrap(ErrRootNotFound, "organize", "open root", root, cause)
		logging.ErrorWithContext(logger, "folder does not exist or is not a directory", "root_not_found",
			logging.String("path", root),
			logging.Error(result.Err),
			logging.String(logging.FieldErrorHint, "check the folder path"),
		)
		result.Log = recorder.Lines()
		result.FinishedAt = e.opts.Now()
		return result
	}

	logger.Info("starting organization", logging.String("path", root), logging.EventType("run_start"))
	r := &run{
		ctx:    ctx,
		root:   root,
		opts:   e.opts,
		base:   logger,
		logger: logger,
	}
	for idx, p := range phases {
		r.enter(idx, p)
		p.run(r)
	}

	result.Stats = r.stats
	result.Success = true
	result.FinishedAt = e.opts.Now()
	logger.Info("organization complete",
		logging.EventType("run_complete"),
		logging.Int("files_moved", r.stats.FilesMoved),
		logging.Int("duplicates", r.stats.Duplicates),
		logging.Int("replaced", r.stats.Replaced),
		logging.Int("conflicts", r.stats.Conflicts),
		logging.Int("folders_removed", r.stats.FoldersRemoved),
		logging.Int("errors", r.stats.Errors),
	)
	result.Log = recorder.Lines()
	return result
}

// run is the mutable state of one Organize call.
type run struct {
	ctx     context.Context
	root    string
	opts    Options
	base    *slog.Logger
	logger  *slog.Logger
	stats   Stats
	phase   string
	staging string
}

// enter announces a phase and scopes the logger to it. The marker is written
// before any level override so progress tracking always sees it.
func (r *run) enter(idx int, p phase) {
	ctx := services.WithStage(r.ctx, p.name)
	logger := logging.WithContext(ctx, r.base)
	logger.Info(p.description,
		logging.EventType(EventPhaseStart),
		logging.Int("step", idx+1),
		logging.Int("steps", len(phases)),
	)
	if level, ok := r.opts.StageLevels[p.name]; ok {
		logger = logging.WithLevelOverride(logger, level)
	}
	r.phase = p.name
	r.logger = logger
}

func (r *run) now() string {
	return r.opts.Now().Format(timestampLayout)
}

// rel renders path relative to the root for log lines.
func (r *run) rel(path string) string {
	if rel, err := filepath.Rel(r.root, path); err == nil {
		return rel
	}
	return path
}
