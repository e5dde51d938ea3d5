package main

// Notes:
// - run/renderAll are covered end-to-end by integration tests (they require a
//   browser); here we test the pure pieces: flag merging, job planning, brand
//   loading, and service option translation.

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kferr/go-brandkit/internal/config"
)

func writeBrandFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing brand fixture: %v", err)
	}
	return path
}

// ---------------------------------------------------------------------------
// TestMergeFlags - CLI flags override config values
// ---------------------------------------------------------------------------

func TestMergeFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		flags renderFlags
		cfg   config.Config
		check func(t *testing.T, cfg *config.Config)
	}{
		{
			name:  "flag template wins over config",
			flags: renderFlags{template: "story"},
			cfg:   config.Config{Render: config.RenderConfig{Template: "onepager"}},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Render.Template != "story" {
					t.Errorf("template = %q, want %q", cfg.Render.Template, "story")
				}
			},
		},
		{
			name:  "empty flag keeps config value",
			flags: renderFlags{},
			cfg:   config.Config{Render: config.RenderConfig{Format: "pdf"}},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Render.Format != "pdf" {
					t.Errorf("format = %q, want %q", cfg.Render.Format, "pdf")
				}
			},
		},
		{
			name:  "dimensions and scale merge individually",
			flags: renderFlags{width: 800, scale: 3},
			cfg:   config.Config{Render: config.RenderConfig{Width: 1200, Height: 1600, Scale: 2}},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Render.Width != 800 {
					t.Errorf("width = %d, want 800", cfg.Render.Width)
				}
				if cfg.Render.Height != 1600 {
					t.Errorf("height = %d, want 1600 (unset flag keeps config)", cfg.Render.Height)
				}
				if cfg.Render.Scale != 3 {
					t.Errorf("scale = %d, want 3", cfg.Render.Scale)
				}
			},
		},
		{
			name:  "component dir and remote url",
			flags: renderFlags{componentDir: "./components", remoteURL: "https://engine.example.com"},
			cfg:   config.Config{},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Components.Dir != "./components" {
					t.Errorf("components dir = %q", cfg.Components.Dir)
				}
				if cfg.Remote.URL != "https://engine.example.com" {
					t.Errorf("remote url = %q", cfg.Remote.URL)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := tt.cfg
			mergeFlags(&tt.flags, &cfg)
			tt.check(t, &cfg)
		})
	}
}

// ---------------------------------------------------------------------------
// TestBuildJobs - Output path planning
// ---------------------------------------------------------------------------

func TestBuildJobs(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	acme := writeBrandFile(t, tempDir, "acme.yaml", "name: Acme\n")
	globex := writeBrandFile(t, tempDir, "globex.yaml", "name: Globex\n")

	t.Run("default output next to nothing uses format extension", func(t *testing.T) {
		t.Parallel()

		jobs, err := buildJobs([]string{acme}, &renderFlags{}, &config.Config{})
		if err != nil {
			t.Fatalf("buildJobs() error = %v", err)
		}
		if len(jobs) != 1 {
			t.Fatalf("got %d jobs, want 1", len(jobs))
		}
		if jobs[0].outputPath != "acme.png" {
			t.Errorf("outputPath = %q, want %q", jobs[0].outputPath, "acme.png")
		}
	})

	t.Run("single file output used verbatim", func(t *testing.T) {
		t.Parallel()

		out := filepath.Join(tempDir, "poster.pdf")
		jobs, err := buildJobs([]string{acme}, &renderFlags{output: out}, &config.Config{
			Render: config.RenderConfig{Format: "pdf"},
		})
		if err != nil {
			t.Fatalf("buildJobs() error = %v", err)
		}
		if jobs[0].outputPath != out {
			t.Errorf("outputPath = %q, want %q", jobs[0].outputPath, out)
		}
	})

	t.Run("directory output creates dir and joins names", func(t *testing.T) {
		t.Parallel()

		outDir := filepath.Join(tempDir, "assets")
		jobs, err := buildJobs([]string{acme, globex}, &renderFlags{output: outDir}, &config.Config{})
		if err != nil {
			t.Fatalf("buildJobs() error = %v", err)
		}
		if len(jobs) != 2 {
			t.Fatalf("got %d jobs, want 2", len(jobs))
		}
		if jobs[0].outputPath != filepath.Join(outDir, "acme.png") {
			t.Errorf("outputPath[0] = %q", jobs[0].outputPath)
		}
		if jobs[1].outputPath != filepath.Join(outDir, "globex.png") {
			t.Errorf("outputPath[1] = %q", jobs[1].outputPath)
		}
		if info, err := os.Stat(outDir); err != nil || !info.IsDir() {
			t.Errorf("output directory not created: %v", err)
		}
	})

	t.Run("config default dir applies without output flag", func(t *testing.T) {
		t.Parallel()

		outDir := filepath.Join(tempDir, "defaultdir")
		jobs, err := buildJobs([]string{acme}, &renderFlags{}, &config.Config{
			Output: config.OutputConfig{DefaultDir: outDir},
		})
		if err != nil {
			t.Fatalf("buildJobs() error = %v", err)
		}
		if jobs[0].outputPath != filepath.Join(outDir, "acme.png") {
			t.Errorf("outputPath = %q", jobs[0].outputPath)
		}
	})

	t.Run("missing brand file rejected", func(t *testing.T) {
		t.Parallel()

		_, err := buildJobs([]string{filepath.Join(tempDir, "missing.yaml")}, &renderFlags{}, &config.Config{})
		if !errors.Is(err, ErrReadBrand) {
			t.Errorf("buildJobs() error = %v, want ErrReadBrand", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestLoadBrand - Brand record parsing
// ---------------------------------------------------------------------------

func TestLoadBrand(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()

	t.Run("valid brand", func(t *testing.T) {
		t.Parallel()

		path := writeBrandFile(t, tempDir, "brand.yaml", `
name: Acme
slug: acme
tagline: Ship faster
colors:
  primary: "#112233"
typography:
  heading: Playfair Display
  body: Lato
`)
		brand, err := loadBrand(path)
		if err != nil {
			t.Fatalf("loadBrand() error = %v", err)
		}
		if brand.Name != "Acme" {
			t.Errorf("Name = %q, want %q", brand.Name, "Acme")
		}
		if brand.Colors.Primary != "#112233" {
			t.Errorf("Colors.Primary = %q", brand.Colors.Primary)
		}
		if brand.HeadingFont() != "Playfair Display" {
			t.Errorf("HeadingFont() = %q", brand.HeadingFont())
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := loadBrand(filepath.Join(tempDir, "nope.yaml"))
		if !errors.Is(err, ErrReadBrand) {
			t.Errorf("loadBrand() error = %v, want ErrReadBrand", err)
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()

		path := writeBrandFile(t, tempDir, "broken.yaml", "name: [unclosed\n")
		_, err := loadBrand(path)
		if !errors.Is(err, ErrReadBrand) {
			t.Errorf("loadBrand() error = %v, want ErrReadBrand", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestServiceOptions - Config to option translation
// ---------------------------------------------------------------------------

func TestServiceOptions(t *testing.T) {
	tests := []struct {
		name     string
		flags    renderFlags
		cfg      config.Config
		env      map[string]string
		wantErr  error
		wantOpts int
	}{
		{
			name:     "quiet with no config yields no options",
			flags:    renderFlags{common: commonFlags{quiet: true}},
			wantOpts: 0,
		},
		{
			name:     "default logger option",
			flags:    renderFlags{},
			wantOpts: 1,
		},
		{
			name:    "invalid timeout",
			flags:   renderFlags{timeout: "banana"},
			wantErr: ErrInvalidTimeout,
		},
		{
			name:    "negative timeout",
			flags:   renderFlags{timeout: "-5s"},
			wantErr: ErrInvalidTimeout,
		},
		{
			name:     "timeout option",
			flags:    renderFlags{common: commonFlags{quiet: true}, timeout: "45s"},
			wantOpts: 1,
		},
		{
			name:    "remote url must be a url",
			flags:   renderFlags{common: commonFlags{quiet: true}},
			cfg:     config.Config{Remote: config.RemoteConfig{URL: "./not-a-url"}},
			wantErr: ErrInvalidRemoteURL,
		},
		{
			name:     "remote engine requires credential in env",
			flags:    renderFlags{common: commonFlags{quiet: true}},
			cfg:      config.Config{Remote: config.RemoteConfig{URL: "https://engine.example.com", APIKeyEnv: "BRANDKIT_TEST_MISSING_KEY"}},
			wantOpts: 0,
		},
		{
			name:  "remote engine with credential",
			flags: renderFlags{common: commonFlags{quiet: true}},
			cfg:   config.Config{Remote: config.RemoteConfig{URL: "https://engine.example.com", APIKeyEnv: "BRANDKIT_TEST_REMOTE_KEY"}},
			env: map[string]string{
				"BRANDKIT_TEST_REMOTE_KEY": "secret",
			},
			wantOpts: 1,
		},
		{
			name:  "image generation with credential",
			flags: renderFlags{common: commonFlags{quiet: true}},
			cfg:   config.Config{Images: config.ImagesConfig{APIKeyEnv: "BRANDKIT_TEST_IMAGE_KEY"}},
			env: map[string]string{
				"BRANDKIT_TEST_IMAGE_KEY": "secret",
			},
			wantOpts: 1,
		},
		{
			name:     "component dir option",
			flags:    renderFlags{common: commonFlags{quiet: true}},
			cfg:      config.Config{Components: config.ComponentsConfig{Dir: "./components"}},
			wantOpts: 1,
		},
	}

	for _, tt := range tests {
		// Not parallel: subtests mutate process environment.
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			opts, err := serviceOptions(&tt.flags, &tt.cfg)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("serviceOptions() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("serviceOptions() error = %v", err)
			}
			if len(opts) != tt.wantOpts {
				t.Errorf("got %d options, want %d", len(opts), tt.wantOpts)
			}
		})
	}
}
