package main

import (
	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// campaignFlags holds the campaign parameter flags.
type campaignFlags struct {
	what  string
	why   string
	who   string
	cta   string
	notes string
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common   commonFlags
	campaign campaignFlags

	output   string
	workers  int
	timeout  string
	template string
	format   string
	width    int
	height   int
	scale    int

	forceStatic  bool
	componentDir string
	remoteURL    string
	showVersion  bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed progress")
}

// addCampaignFlags adds campaign parameter flags to a FlagSet.
func addCampaignFlags(fs *flag.FlagSet, f *campaignFlags) {
	fs.StringVar(&f.what, "what", "", "what is being promoted")
	fs.StringVar(&f.why, "why", "", "why it matters")
	fs.StringVar(&f.who, "who", "", "who it is for")
	fs.StringVar(&f.cta, "cta", "", "call to action label")
	fs.StringVar(&f.notes, "notes", "", "free-form campaign notes (markdown)")
}

// addRenderFlags adds render parameter flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.StringVarP(&f.output, "output", "o", "", "output directory or file path")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel renders (0 = auto)")
	fs.StringVar(&f.timeout, "timeout", "", "rasterization timeout, e.g. 90s")
	fs.StringVarP(&f.template, "template", "t", "", "content template: onepager, story, linkedin")
	fs.StringVarP(&f.format, "format", "f", "", "output format: html, png, pdf")
	fs.IntVar(&f.width, "width", 0, "output width in CSS pixels")
	fs.IntVar(&f.height, "height", 0, "output height in CSS pixels")
	fs.IntVar(&f.scale, "scale", 0, "device scale factor for PNG (1-3)")
	fs.BoolVar(&f.forceStatic, "static", false, "force the static-markup engine")
	fs.StringVar(&f.componentDir, "component-dir", "", "directory scanned for component artifacts")
	fs.StringVar(&f.remoteURL, "remote-url", "", "remote generation engine endpoint")
	fs.BoolVar(&f.showVersion, "version", false, "print version and exit")
}

// parseFlags parses command-line arguments.
// Returns the parsed flags and remaining positional arguments (brand files).
func parseFlags(args []string) (*renderFlags, []string, error) {
	fs := flag.NewFlagSet("brandkit", flag.ContinueOnError)
	fs.Usage = func() { printHelp(fs) }

	flags := &renderFlags{}
	addCommonFlags(fs, &flags.common)
	addCampaignFlags(fs, &flags.campaign)
	addRenderFlags(fs, flags)

	if err := fs.Parse(args[1:]); err != nil {
		return nil, nil, err
	}

	return flags, fs.Args(), nil
}
