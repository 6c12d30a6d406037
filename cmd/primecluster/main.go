// Command primecluster finds primary clusters in match grids.
//
// Usage:
//
//	primecluster [-config file] [-k 3] [-workers 4] [-format text|json] [-bitmap] grid...
//
// Each grid file is one job. Grids use '#' or '1' for a match and '.' or '0'
// for a non-match, one row per line. Text output prints one
// "file<TAB>start<TAB>end" line per cluster. The exit status is 1 if any job
// failed and 2 on usage errors.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/katalvlaran/primecluster/batch"
	"github.com/katalvlaran/primecluster/config"
	"github.com/katalvlaran/primecluster/finder"
	"github.com/katalvlaran/primecluster/logutil"
	"github.com/katalvlaran/primecluster/matchmatrix"
)

const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type cliFlags struct {
	configPath string
	k          int
	workers    int
	format     string
	bitmap     bool
	set        map[string]bool
}

func parseFlags(args []string, stderr io.Writer) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("primecluster", flag.ContinueOnError)
	fs.SetOutput(stderr)

	cf := &cliFlags{set: make(map[string]bool)}
	fs.StringVar(&cf.configPath, "config", "", "YAML or TOML config file")
	fs.IntVar(&cf.k, "k", 0, "minimum cluster size (overrides config)")
	fs.IntVar(&cf.workers, "workers", 0, "worker pool size (overrides config)")
	fs.StringVar(&cf.format, "format", "text", "output format: text or json")
	fs.BoolVar(&cf.bitmap, "bitmap", false, "use the compressed bitmap matrix")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	fs.Visit(func(f *flag.Flag) { cf.set[f.Name] = true })

	if cf.format != "text" && cf.format != "json" {
		return nil, nil, fmt.Errorf("unknown -format %q", cf.format)
	}
	if fs.NArg() == 0 {
		return nil, nil, errors.New("no grid files given")
	}

	return cf, fs.Args(), nil
}

// apply overlays explicitly set flags onto cfg.
func (cf *cliFlags) apply(cfg *config.Config) error {
	if cf.set["k"] {
		cfg.Finder.MinClusterSize = cf.k
	}
	if cf.set["workers"] {
		cfg.Batch.Workers = cf.workers
	}
	if cf.set["bitmap"] {
		cfg.Matrix.Bitmap = cf.bitmap
	}

	return cfg.Validate()
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cf, files, err := parseFlags(args, stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(stderr, "primecluster:", err)
		}
		return exitUsage
	}

	cfg, err := config.Load(cf.configPath)
	if err == nil {
		err = cf.apply(cfg)
	}
	if err != nil {
		fmt.Fprintln(stderr, "primecluster:", err)
		return exitUsage
	}

	log, err := logutil.Setup(cfg.Log)
	if err != nil {
		fmt.Fprintln(stderr, "primecluster:", err)
		return exitUsage
	}
	defer func() { _ = log.Sync() }()
	log.Debug("configuration loaded", zap.Strings("sources", cfg.LoadedFrom))

	jobs, err := loadJobs(cfg, files, log)
	if err != nil {
		fmt.Fprintln(stderr, "primecluster:", err)
		return exitFail
	}

	runner, err := batch.NewRunner(batch.Config{Workers: cfg.Batch.Workers}, batch.WithLogger(log))
	if err != nil {
		fmt.Fprintln(stderr, "primecluster:", err)
		return exitFail
	}
	defer runner.Release()

	rep, runErr := runner.Run(ctx, jobs)
	if err = writeReport(stdout, cf.format, rep); err != nil {
		fmt.Fprintln(stderr, "primecluster:", err)
		return exitFail
	}
	if runErr != nil {
		fmt.Fprintln(stderr, "primecluster:", runErr)
		return exitFail
	}

	return exitOK
}

// loadJobs parses every grid file into one job. A parse failure aborts
// before any scan starts.
func loadJobs(cfg *config.Config, files []string, log *zap.Logger) ([]batch.Job, error) {
	opts, err := cfg.Finder.Options()
	if err != nil {
		return nil, err
	}
	opts = append(opts, finder.WithLogger(log.Named("finder")))

	jobs := make([]batch.Job, 0, len(files))
	for _, path := range files {
		d, err := matchmatrix.ParseGridFile(path, cfg.Matrix.Options()...)
		if err != nil {
			return nil, err
		}
		var m matchmatrix.Matrix = d
		if cfg.Matrix.Bitmap {
			if m, err = matchmatrix.ToBitmap(d); err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
		}
		log.Debug("grid loaded", zap.String("file", path), zap.Int("n", m.Size()), zap.Bool("symmetric", m.Symmetric()))
		jobs = append(jobs, batch.Job{Name: path, Matrix: m, Options: opts})
	}

	return jobs, nil
}

func writeReport(w io.Writer, format string, rep batch.Report) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}
	for _, res := range rep.Results {
		for _, c := range res.Clusters {
			if _, err := fmt.Fprintf(w, "%s\t%d\t%d\n", res.Name, c.Start, c.End); err != nil {
				return err
			}
		}
	}

	return nil
}
