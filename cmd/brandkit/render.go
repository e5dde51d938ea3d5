package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	brandkit "github.com/kferr/go-brandkit"
	"github.com/kferr/go-brandkit/internal/config"
	"github.com/kferr/go-brandkit/internal/fileutil"
	"github.com/kferr/go-brandkit/internal/yamlutil"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput            = errors.New("no brand file specified")
	ErrReadBrand          = errors.New("failed to read brand file")
	ErrWriteArtifact      = errors.New("failed to write artifact")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrInvalidTimeout     = errors.New("invalid timeout")
	ErrInvalidRemoteURL   = errors.New("invalid remote engine URL")
)

// File permission constants.
const dirPermissions = 0o750

// Default environment variables holding credentials.
const (
	defaultRemoteKeyEnv = "BRANDKIT_REMOTE_API_KEY"
	defaultImageKeyEnv  = "OPENAI_API_KEY"
)

// renderJob is one brand file to render.
type renderJob struct {
	brandPath  string
	outputPath string
}

// renderResult holds the outcome of a single render.
type renderResult struct {
	job      renderJob
	artifact *brandkit.RenderArtifact
	err      error
	duration time.Duration
}

// run renders every brand file given on the command line.
func run(args []string, poolSize int) error {
	flags, positional, err := parseFlags(args)
	if err != nil {
		return err
	}
	if flags.showVersion {
		fmt.Println("brandkit", Version)
		return nil
	}
	if flags.workers < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkerCount, flags.workers)
	}
	if len(positional) == 0 {
		return ErrNoInput
	}

	cfg := config.DefaultConfig()
	if flags.common.config != "" {
		cfg, err = config.LoadConfig(flags.common.config)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}
	mergeFlags(flags, cfg)

	opts, err := serviceOptions(flags, cfg)
	if err != nil {
		return err
	}

	jobs, err := buildJobs(positional, flags, cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool := brandkit.NewServicePool(poolSize, opts...)
	defer pool.Close()

	results := renderAll(ctx, pool, jobs, flags, cfg)
	return report(results, flags)
}

// mergeFlags merges CLI flags into config (CLI wins).
func mergeFlags(flags *renderFlags, cfg *config.Config) {
	if flags.template != "" {
		cfg.Render.Template = flags.template
	}
	if flags.format != "" {
		cfg.Render.Format = flags.format
	}
	if flags.width != 0 {
		cfg.Render.Width = flags.width
	}
	if flags.height != 0 {
		cfg.Render.Height = flags.height
	}
	if flags.scale != 0 {
		cfg.Render.Scale = flags.scale
	}
	if flags.componentDir != "" {
		cfg.Components.Dir = flags.componentDir
	}
	if flags.remoteURL != "" {
		cfg.Remote.URL = flags.remoteURL
	}
}

// serviceOptions translates config into service options.
func serviceOptions(flags *renderFlags, cfg *config.Config) ([]brandkit.Option, error) {
	var opts []brandkit.Option

	if flags.timeout != "" {
		d, err := time.ParseDuration(flags.timeout)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTimeout, flags.timeout)
		}
		opts = append(opts, brandkit.WithTimeout(d))
	}

	if cfg.Components.Dir != "" {
		opts = append(opts, brandkit.WithComponentDir(cfg.Components.Dir))
	}

	if cfg.Remote.URL != "" {
		if !fileutil.IsURL(cfg.Remote.URL) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidRemoteURL, cfg.Remote.URL)
		}
		keyEnv := cfg.Remote.APIKeyEnv
		if keyEnv == "" {
			keyEnv = defaultRemoteKeyEnv
		}
		if key := os.Getenv(keyEnv); key != "" {
			opts = append(opts, brandkit.WithRemoteEngine(cfg.Remote.URL, key))
		}
	}

	if cfg.Images.APIKeyEnv != "" || cfg.Images.Model != "" {
		keyEnv := cfg.Images.APIKeyEnv
		if keyEnv == "" {
			keyEnv = defaultImageKeyEnv
		}
		if key := os.Getenv(keyEnv); key != "" {
			opts = append(opts, brandkit.WithImageGeneration(key, cfg.Images.Model))
		}
	}

	if !flags.common.quiet {
		level := log.InfoLevel
		if flags.common.verbose {
			level = log.DebugLevel
		}
		logger := log.NewWithOptions(os.Stderr, log.Options{Level: level, Prefix: "brandkit"})
		opts = append(opts, brandkit.WithLogger(logger))
	}

	return opts, nil
}

// buildJobs pairs each brand file with its output path.
func buildJobs(brandPaths []string, flags *renderFlags, cfg *config.Config) ([]renderJob, error) {
	format := cfg.Render.Format
	if format == "" {
		format = brandkit.FormatPNG
	}

	outputDir := cfg.Output.DefaultDir
	singleFile := ""
	if flags.output != "" {
		if strings.Contains(filepath.Base(flags.output), ".") && len(brandPaths) == 1 {
			singleFile = flags.output
		} else {
			outputDir = flags.output
		}
	}
	if outputDir != "" {
		if err := os.MkdirAll(outputDir, dirPermissions); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrWriteArtifact, err)
		}
	}

	jobs := make([]renderJob, 0, len(brandPaths))
	for _, p := range brandPaths {
		if !fileutil.FileExists(p) {
			return nil, fmt.Errorf("%w: %s", ErrReadBrand, p)
		}
		out := singleFile
		if out == "" {
			base := strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
			out = filepath.Join(outputDir, base+"."+format)
		}
		jobs = append(jobs, renderJob{brandPath: p, outputPath: out})
	}
	return jobs, nil
}

// loadBrand reads a brand record from a YAML or JSON file.
func loadBrand(path string) (brandkit.BrandRecord, error) {
	var brand brandkit.BrandRecord

	data, err := os.ReadFile(path) // #nosec G304 -- brand path is user-provided
	if err != nil {
		return brand, fmt.Errorf("%w: %v", ErrReadBrand, err)
	}
	if err := yamlutil.Unmarshal(data, &brand); err != nil {
		return brand, fmt.Errorf("%w: %s: %v", ErrReadBrand, path, err)
	}
	return brand, nil
}

// renderAll renders jobs concurrently, one pool service per worker.
func renderAll(ctx context.Context, pool *brandkit.ServicePool, jobs []renderJob, flags *renderFlags, cfg *config.Config) []renderResult {
	results := make([]renderResult, len(jobs))
	var wg sync.WaitGroup

	for i, job := range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			start := time.Now()
			artifact, err := renderOne(ctx, pool, job, flags, cfg)
			results[i] = renderResult{
				job:      job,
				artifact: artifact,
				err:      err,
				duration: time.Since(start),
			}
		}()
	}

	wg.Wait()
	return results
}

// renderOne loads one brand file and renders it through a pooled service.
func renderOne(ctx context.Context, pool *brandkit.ServicePool, job renderJob, flags *renderFlags, cfg *config.Config) (*brandkit.RenderArtifact, error) {
	brand, err := loadBrand(job.brandPath)
	if err != nil {
		return nil, err
	}

	req := brandkit.RenderRequest{
		Brand: brand,
		Campaign: brandkit.CampaignParameters{
			What:         flags.campaign.what,
			Why:          flags.campaign.why,
			Who:          flags.campaign.who,
			CallToAction: flags.campaign.cta,
			Notes:        flags.campaign.notes,
		},
		Template:    cfg.Render.Template,
		Format:      cfg.Render.Format,
		Width:       cfg.Render.Width,
		Height:      cfg.Render.Height,
		Scale:       cfg.Render.Scale,
		Output:      job.outputPath,
		ForceStatic: flags.forceStatic,
	}

	svc := pool.Acquire()
	defer pool.Release(svc)

	return svc.Render(ctx, req)
}

// report prints per-job outcomes and returns the first error.
func report(results []renderResult, flags *renderFlags) error {
	var firstErr error
	for _, r := range results {
		if r.err != nil {
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", r.job.brandPath, r.err)
			if firstErr == nil {
				firstErr = r.err
			}
			continue
		}
		if !flags.common.quiet {
			fmt.Printf("OK %s -> %s (%s, %s)\n",
				r.job.brandPath, r.job.outputPath, r.artifact.Engine, r.duration.Round(time.Millisecond))
		}
	}
	return firstErr
}
