package app

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
)

const (
	defaultLimit  = 1000
	defaultOutput = "output"
)

var errUsage = errors.New("usage")

// options holds the parsed command line.
type options struct {
	query    string
	start    string
	end      string
	limit    int
	filters  stringList
	output   string
	maxPages int
}

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("ddexport", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.query, "query", "", "search query (required)")
	fs.StringVar(&opts.start, "start", "", "start timestamp, YYYY-MM-DDTHH:MM:SS, UTC (required)")
	fs.StringVar(&opts.end, "end", "", "end timestamp, YYYY-MM-DDTHH:MM:SS, UTC (required)")
	fs.IntVar(&opts.limit, "limit", defaultLimit, "page size sent with each request")
	fs.Var(&opts.filters, "filter", "filter expression, repeatable (accepted, not applied)")
	fs.StringVar(&opts.output, "output", defaultOutput, "output file base name; _YYYY-MM-DD.csv is appended")
	fs.IntVar(&opts.maxPages, "max-pages", 0, "abort after this many pages, 0 for no limit")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, usageErr(fs, "unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	var missing []string
	for _, f := range []struct{ name, value string }{
		{"query", opts.query},
		{"start", opts.start},
		{"end", opts.end},
	} {
		if f.value == "" {
			missing = append(missing, "--"+f.name)
		}
	}
	if len(missing) > 0 {
		return options{}, usageErr(fs, "missing required flags: %s", strings.Join(missing, ", "))
	}
	if opts.limit <= 0 {
		return options{}, usageErr(fs, "--limit must be positive, got %d", opts.limit)
	}
	if opts.maxPages < 0 {
		return options{}, usageErr(fs, "--max-pages must not be negative, got %d", opts.maxPages)
	}
	if opts.output == "" {
		return options{}, usageErr(fs, "--output must not be empty")
	}
	return opts, nil
}

func usageErr(fs *flag.FlagSet, format string, a ...any) error {
	msg := fmt.Sprintf(format, a...)
	fmt.Fprintf(fs.Output(), "ddexport: %s\n", msg)
	fs.Usage()
	return fmt.Errorf("%w: %s", errUsage, msg)
}
