// Package driver wires the front-end phases together: discovery,
// parsing, lowering, resolution and planning. Parsing and collection run
// per module with no shared state, so both fan out across a worker pool.
package driver

import (
	"context"
	"fmt"
	"runtime"

	"fortio.org/safecast"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"hatc/internal/ast"
	"hatc/internal/diag"
	"hatc/internal/hir"
	"hatc/internal/observ"
	"hatc/internal/parser"
	"hatc/internal/planner"
	"hatc/internal/project"
	"hatc/internal/resolver"
	"hatc/internal/source"
)

// Options configures a pipeline run.
type Options struct {
	// MaxDiagnostics caps the collected diagnostics; 0 uses a default.
	MaxDiagnostics int
	// Jobs bounds the parse/collect worker pool; 0 uses GOMAXPROCS.
	Jobs int
	// Log receives phase-level progress at debug level. Nil disables it.
	Log *logrus.Logger
}

// CheckResult is the outcome of a full front-end run.
type CheckResult struct {
	FileSet  *source.FileSet
	Bag      *diag.Bag
	Mapped   *resolver.MappedProject
	Schedule *planner.Schedule
	Timings  observ.Report
}

// Ok reports whether the run produced no errors.
func (r *CheckResult) Ok() bool {
	return r.Bag == nil || !r.Bag.HasErrors()
}

const defaultMaxDiagnostics = 256

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics > 0 {
		return o.MaxDiagnostics
	}
	return defaultMaxDiagnostics
}

func (o Options) jobs(n int) int {
	jobs := o.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	if jobs > n {
		jobs = n
	}
	if jobs < 1 {
		jobs = 1
	}
	return jobs
}

func (o Options) debugf(format string, args ...any) {
	if o.Log != nil {
		o.Log.Debugf(format, args...)
	}
}

// Check runs the whole front end over the sources under root. Failures
// accumulate in the result bag; the pipeline keeps going as long as any
// module survives the previous phase.
func Check(ctx context.Context, root string, opts Options) (*CheckResult, error) {
	fset := source.NewFileSetWithBase(root)
	bag := diag.NewBag(opts.maxDiagnostics())
	rep := diag.BagReporter{Bag: bag}
	res := &CheckResult{FileSet: fset, Bag: bag}
	timer := observ.NewTimer()

	opts.debugf("discovering sources under %s", root)
	phase := timer.Begin("discover")
	files, ok := project.Discover(root, fset, rep)
	timer.End(phase, fmt.Sprintf("%d files", len(files)))
	if !ok {
		res.Timings = timer.Report()
		return res, nil
	}
	opts.debugf("discovered %d source files", len(files))

	phase = timer.Begin("parse")
	parsed, err := parseAll(ctx, fset, files, opts, bag)
	timer.End(phase, "")
	if err != nil {
		return res, err
	}

	phase = timer.Begin("lower")
	lowerer := hir.NewLowerer(rep)
	var mods []*hir.Module
	for i, astMod := range parsed {
		if astMod == nil {
			continue
		}
		seq, convErr := safecast.Conv[uint32](i + 1)
		if convErr != nil {
			return res, fmt.Errorf("module count overflow: %w", convErr)
		}
		mod, ok := lowerer.LowerModule(astMod, hir.ModuleID(seq), files[i].File)
		if !ok {
			continue
		}
		mods = append(mods, mod)
	}
	timer.End(phase, fmt.Sprintf("%d modules", len(mods)))
	opts.debugf("lowered %d of %d modules", len(mods), len(files))

	phase = timer.Begin("resolve")
	collected, err := collectAll(ctx, mods, opts, bag)
	if err != nil {
		return res, err
	}
	res.Mapped = resolver.ResolveCollected(collected, rep)
	timer.End(phase, "")

	phase = timer.Begin("plan")
	sched, _ := planner.Plan(res.Mapped, rep)
	timer.End(phase, fmt.Sprintf("%d exprs", len(sched.Modes)))
	res.Schedule = sched
	res.Timings = timer.Report()
	opts.debugf("planned %d expressions", len(sched.Modes))
	return res, nil
}

// parseAll parses every discovered file concurrently. Diagnostics land
// in per-file bags and merge into the shared bag in file order, so the
// output is deterministic regardless of scheduling.
func parseAll(ctx context.Context, fset *source.FileSet, files []project.SourceFile, opts Options, bag *diag.Bag) ([]*ast.Module, error) {
	if len(files) == 0 {
		return nil, nil
	}
	results := make([]*ast.Module, len(files))
	bags := make([]*diag.Bag, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.jobs(len(files)))
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			fileBag := diag.NewBag(opts.maxDiagnostics())
			results[i] = parser.ParseModule(fset, f.File, f.Path, parser.Options{
				Reporter: diag.BagReporter{Bag: fileBag},
			})
			bags[i] = fileBag
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for _, fileBag := range bags {
		if fileBag != nil {
			bag.Merge(fileBag)
		}
	}
	return results, nil
}

// collectAll runs resolver phase 1 concurrently; merge order stays the
// caller's module order.
func collectAll(ctx context.Context, mods []*hir.Module, opts Options, bag *diag.Bag) ([]*resolver.ModuleSymbols, error) {
	if len(mods) == 0 {
		return nil, nil
	}
	results := make([]*resolver.ModuleSymbols, len(mods))
	bags := make([]*diag.Bag, len(mods))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.jobs(len(mods)))
	for i, mod := range mods {
		i, mod := i, mod
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			modBag := diag.NewBag(opts.maxDiagnostics())
			results[i] = resolver.Collect(mod, diag.BagReporter{Bag: modBag})
			bags[i] = modBag
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for _, modBag := range bags {
		if modBag != nil {
			bag.Merge(modBag)
		}
	}
	return results, nil
}
