// conform runs a JSON Schema validator against the JSON-Schema-Test-Suite and
// reports how well it conforms.
//
// Usage:
//
//	conform --tests JSON-Schema-Test-Suite/tests/draft7 --draft draft7
//	conform --validator kaptinlin --draft draft2020-12 --tests suite/tests/draft2020-12
//	conform --format sarif > conform.sarif
//	conform --format gotest | fo
//
// Every test vector is classified as TRUE_POSITIVE, TRUE_NEGATIVE,
// FALSE_POSITIVE, FALSE_NEGATIVE or UNDEFINED.
//
// Output modes (auto-detected):
//
//	terminal  styled tree and summary (default when TTY)
//	llm       terse plain text (default when piped)
//	json      report patterns as JSON
//	table     box tables with a per-file outcome matrix
//	markdown  the table report as Markdown, for CI job summaries
//	sarif     SARIF 2.1.0 for code-scanning upload
//	gotest    go test -json events
//
// Exit codes: 0 all vectors pass, 1 any non-passing vector, 2 usage, config
// or corpus error.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/dkoosis/conform/internal/config"
	"github.com/dkoosis/conform/internal/logging"
	"github.com/dkoosis/conform/internal/progress"
	"github.com/dkoosis/conform/internal/version"
	"github.com/dkoosis/conform/pkg/aggregate"
	"github.com/dkoosis/conform/pkg/classify"
	"github.com/dkoosis/conform/pkg/corpus"
	"github.com/dkoosis/conform/pkg/mapper"
	"github.com/dkoosis/conform/pkg/render"
	"github.com/dkoosis/conform/pkg/testjson"
	"github.com/dkoosis/conform/pkg/validator"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// stringList is a repeatable flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("conform", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var flags config.Flags
	var exclude stringList
	fs.StringVar(&flags.Tests, "tests", config.DefaultTests, "Corpus path: directory of *.json, one *.json file or a *.txtar archive")
	fs.BoolVar(&flags.Verbose, "verbose", false, "Show passing cases and vectors")
	fs.Var(&exclude, "exclude", "File stems to skip, comma separated (repeatable)")
	fs.StringVar(&flags.Validator, "validator", validator.Default, "Validator: "+strings.Join(validator.Names(), ", "))
	fs.StringVar(&flags.Draft, "draft", string(config.DefaultDraft), "Schema draft: draft4, draft6, draft7, draft2019-09, draft2020-12")
	fs.StringVar(&flags.Format, "format", config.DefaultFormat, "Output format: "+strings.Join(config.Formats, ", "))
	fs.StringVar(&flags.Theme, "theme", config.DefaultTheme, "Theme: "+strings.Join(render.ThemeNames, ", "))
	fs.IntVar(&flags.Parallel, "parallel", 0, "Classify up to N files concurrently")
	fs.BoolVar(&flags.Debug, "debug", false, "Debug logging on stderr")
	showProgress := fs.Bool("progress", false, "Live progress on stderr when it is a terminal")
	configPath := fs.String("config", "", "Config file (default .conform.yaml, then $XDG_CONFIG_HOME/conform/.conform.yaml)")
	showVersion := fs.Bool("version", false, "Print version and exit")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "conform: unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		return 2
	}
	if *showVersion {
		fmt.Fprintf(stdout, "conform %s\n", version.String())
		return 0
	}

	flags.Exclude = exclude
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "tests":
			flags.TestsSet = true
		case "verbose":
			flags.VerboseSet = true
		case "exclude":
			flags.ExcludeSet = true
		case "validator":
			flags.ValidatorSet = true
		case "draft":
			flags.DraftSet = true
		case "format":
			flags.FormatSet = true
		case "theme":
			flags.ThemeSet = true
		case "parallel":
			flags.ParallelSet = true
		case "debug":
			flags.DebugSet = true
		}
	})

	file, path, err := config.LoadFile(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "conform: %v\n", err)
		return 2
	}
	cfg, err := config.Resolve(flags, file)
	if err != nil {
		fmt.Fprintf(stderr, "conform: %v\n", err)
		return 2
	}
	cfg.ConfigPath = path

	logger := logging.Init(logging.Level(cfg.Debug), "text", stderr)
	logger.Debug("resolved config",
		"config", cfg.ConfigPath,
		"tests", cfg.Tests, "tests_source", cfg.Sources["tests"],
		"validator", cfg.Validator, "validator_source", cfg.Sources["validator"],
		"draft", cfg.Draft, "draft_source", cfg.Sources["draft"],
		"format", cfg.Format, "exclude", cfg.Exclude, "parallel", cfg.Parallel)

	compiler, err := validator.New(cfg.Validator, cfg.Draft)
	if err != nil {
		fmt.Fprintf(stderr, "conform: %v\n", err)
		return 2
	}

	c, err := corpus.Load(cfg.Tests, corpus.WithExclude(cfg.Exclude...))
	if err != nil {
		fmt.Fprintf(stderr, "conform: %v\n", err)
		return 2
	}
	logger.Debug("loaded corpus", "root", c.Root, "files", len(c.Files), "skipped", len(c.Skipped))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := classifyAll(ctx, c, compiler, cfg, *showProgress, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "conform: %v\n", err)
		return 2
	}

	agg := aggregate.New()
	agg.Skip(c.Skipped...)
	for _, r := range results {
		agg.AddFile(r)
	}

	if err := writeReport(agg, cfg, c, stdout); err != nil {
		fmt.Fprintf(stderr, "conform: writing output: %v\n", err)
		return 2
	}
	return exitCode(agg.Summary(), stderr)
}

// classifyAll runs the classifier over the corpus, under a progress line
// when requested and stderr is a terminal.
func classifyAll(ctx context.Context, c *corpus.Corpus, compiler validator.Compiler, cfg *config.Resolved, showProgress bool, stderr io.Writer) ([]classify.FileResult, error) {
	classifier := classify.New(compiler,
		classify.WithParallelism(cfg.Parallel),
		classify.WithLogger(logging.New("classify")),
	)

	var results []classify.FileResult
	work := func(onFile func(classify.FileResult)) error {
		var err error
		results, err = classifier.Files(ctx, c.Files, onFile)
		return err
	}

	var err error
	if showProgress && isTTYWriter(stderr) {
		width, _ := termSize(stderr)
		err = progress.Run(ctx, stderr, len(c.Files), width, work)
	} else {
		err = work(nil)
	}
	if err != nil {
		return nil, fmt.Errorf("classification interrupted: %w", err)
	}
	return results, nil
}

func writeReport(agg *aggregate.Aggregator, cfg *config.Resolved, c *corpus.Corpus, stdout io.Writer) error {
	mode := resolveFormat(cfg.Format, stdout)
	switch mode {
	case "sarif":
		_, err := mapper.ToSARIF(agg.Files(), "conform", version.Version).WriteTo(stdout)
		return err
	case "gotest":
		prefix := "conform/" + strings.TrimSuffix(filepath.Base(c.Root), filepath.Ext(c.Root))
		return testjson.WriteAll(stdout, mapper.ToTestEvents(agg.Files(), prefix, time.Now()))
	}

	patterns := mapper.FromAggregate(agg, mapper.Options{
		Label:   fmt.Sprintf("%s · %s · %s", cfg.Validator, cfg.Draft, cfg.Tests),
		Verbose: cfg.Verbose,
		Matrix:  mode == "table" || mode == "markdown",
	})
	_, err := fmt.Fprint(stdout, selectRenderer(mode, cfg.Theme, stdout).Render(patterns))
	return err
}

// exitCode returns 0 when every vector passed. Otherwise the failure summary
// goes to stderr and the code is 1.
func exitCode(s aggregate.Summary, stderr io.Writer) int {
	if err := s.Err(); err != nil {
		fmt.Fprintf(stderr, "conform: %v\n", err)
		return 1
	}
	return 0
}

func selectRenderer(mode, themeName string, w io.Writer) render.Renderer {
	switch mode {
	case "json":
		return render.NewJSON()
	case "llm":
		return render.NewLLM()
	case "table":
		width, _ := termSize(w)
		return render.NewTable(render.TableBox, width)
	case "markdown":
		return render.NewTable(render.TableMarkdown, 0)
	default:
		width, _ := termSize(w)
		return render.NewTerminal(render.ThemeByName(themeName), width)
	}
}

func resolveFormat(format string, w io.Writer) string {
	if format != "auto" {
		return format
	}
	// Auto-detect: TTY = terminal, piped = llm
	if isTTYWriter(w) {
		return "terminal"
	}
	return "llm"
}

// isTTYWriter reports whether w is a terminal.
func isTTYWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// termSize returns the terminal dimensions for w, defaulting to 80x24.
func termSize(w io.Writer) (width, height int) {
	width, height = 80, 24
	if f, ok := w.(*os.File); ok {
		if tw, th, err := term.GetSize(int(f.Fd())); err == nil {
			if tw > 0 {
				width = tw
			}
			if th > 0 {
				height = th
			}
		}
	}
	return width, height
}
