package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
)

// printHelp writes usage information to stderr.
func printHelp(fs *flag.FlagSet) {
	fmt.Fprintf(os.Stderr, `brandkit - render brand assets from brand profiles

Usage:
  brandkit [flags] <brand.yaml> [brand.yaml...]

Renders each brand profile into an HTML, PNG, or PDF asset using the
configured content template. Campaign parameters shape the copy:

  brandkit --what "Spring launch" --who "small teams" -f png acme.yaml

Flags:
%s`, fs.FlagUsages())
}
