package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
)

const usage = "rr-dig [-t timeout] [-r max-retries] [-p port] [-mx|-ns] @server name"

// parseArgs reads the command line into config overrides keyed by koanf tag.
// Only flags that were given appear in the result, so environment values
// still apply to the rest. Flags and the two positional arguments may be
// interleaved.
func parseArgs(args []string, stderr io.Writer) (map[string]any, error) {
	fs := flag.NewFlagSet("rr-dig", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: %s\n", usage)
		fs.PrintDefaults()
	}

	var (
		timeout    = fs.Float64("t", 5, "seconds to wait for each reply")
		maxRetries = fs.Int("r", 3, "maximum number of send attempts")
		port       = fs.Int("p", 53, "server UDP port")
		mx         = fs.Bool("mx", false, "query mail exchange records")
		ns         = fs.Bool("ns", false, "query name server records")
	)

	var server, name string
	rest := args
	for {
		if err := fs.Parse(rest); err != nil {
			return nil, err
		}
		if fs.NArg() == 0 {
			break
		}
		arg := fs.Arg(0)
		rest = fs.Args()[1:]

		switch {
		case strings.HasPrefix(arg, "@"):
			if server != "" {
				return nil, errors.New("more than one server given")
			}
			server = strings.TrimPrefix(arg, "@")
			if server == "" {
				return nil, errors.New("empty server address after @")
			}
		default:
			if name != "" {
				return nil, fmt.Errorf("unexpected argument %q", arg)
			}
			name = arg
		}
	}

	if *mx && *ns {
		return nil, errors.New("-mx and -ns are mutually exclusive")
	}

	overrides := map[string]any{}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			overrides["timeout"] = *timeout
		case "r":
			overrides["max_retries"] = *maxRetries
		case "p":
			overrides["port"] = *port
		case "mx":
			if *mx {
				overrides["type"] = "MX"
			}
		case "ns":
			if *ns {
				overrides["type"] = "NS"
			}
		}
	})
	if server != "" {
		overrides["server"] = server
	}
	if name != "" {
		overrides["name"] = name
	}
	return overrides, nil
}
