// Package brandkit turns a brand profile and campaign parameters into a
// finished visual asset (HTML, PNG, or PDF).
//
// # Quick Start
//
// Create a service, render a request, and close when done:
//
//	svc := brandkit.New()
//	defer svc.Close()
//
//	artifact, err := svc.Render(ctx, brandkit.RenderRequest{
//	    Brand:    brand,
//	    Campaign: brandkit.CampaignParameters{What: "a scheduling tool", Who: "small teams"},
//	    Template: "onepager",
//	    Format:   brandkit.FormatPNG,
//	    Output:   "out/acme-onepager.png",
//	})
//
// # Rendering Pipeline
//
// A render proceeds through these stages:
//
//  1. Content assembly (brand record + campaign tuple -> content document)
//  2. Engine resolution (remote, component-ssr, or static-markup)
//  3. Image resolution (generated -> extracted -> curated stock fallback)
//  4. Markup rendering with the selected engine
//  5. Font normalization (brand typography rewritten into the markup)
//  6. Rasterization via headless Chrome (go-rod) for PNG and PDF formats
//
// # Configuration
//
// Use functional options to customize the service:
//
//	svc := brandkit.New(
//	    brandkit.WithTimeout(2 * time.Minute),
//	    brandkit.WithComponentDir("./components"),
//	    brandkit.WithSeed(42), // deterministic copy variants, for tests
//	)
//
// # Parallel Rendering
//
// Each Service owns at most one browser instance. For concurrent renders,
// use ServicePool to run independent pipeline instances in parallel:
//
//	pool := brandkit.NewServicePool(4)
//	defer pool.Close()
//
//	svc := pool.Acquire()
//	defer pool.Release(svc)
//	artifact, err := svc.Render(ctx, req)
//
// # Browser Requirements
//
// PNG and PDF output require Chrome/Chromium. The go-rod library downloads a
// managed Chromium instance on first run (~/.cache/rod/browser/). For
// containers, set ROD_BROWSER_BIN to a preinstalled Chrome binary; the
// sandbox is disabled automatically when CI=true or ROD_BROWSER_BIN is set.
// HTML output needs no browser.
package brandkit
