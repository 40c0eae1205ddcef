package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/tdewolff/minify/v2"
	minhtml "github.com/tdewolff/minify/v2/html"

	"github.com/goliatone/go-formcollection/internal/loader"
	"github.com/goliatone/go-formcollection/pkg/collection"
	"github.com/goliatone/go-formcollection/pkg/dom"
)

type cliOptions struct {
	input       string
	output      string
	container   string
	config      string
	allowAdd    bool
	allowDelete bool
	adds        int
	removes     []int
	sanitize    bool
	minify      bool
	noIndex     bool
	verbose     bool
	timeout     time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	cmd := &cobra.Command{
		Use:   "formcollection-cli",
		Short: "Attach a form collection manager to an HTML document and replay clicks",
		Long: `formcollection-cli loads an HTML document, attaches a collection manager to
the container selected with --container, replays add and remove clicks and
prints the resulting document.

Adds run first (--add N clicks the first add button N times), then removes
(--remove 0 --remove 2 clicks the remove button of the entry at that position
among the entries present at that moment).`,
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			collectionOpts, err := resolveCollectionOptions(cmd, opts)
			if err != nil {
				return err
			}
			return run(cmd.Context(), opts, collectionOpts, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.input, "input", "i", "-", "HTML document path or URL (- for stdin)")
	flags.StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	flags.StringVarP(&opts.container, "container", "c", "", "CSS selector of the collection container")
	flags.StringVar(&opts.config, "config", "", "YAML/JSON file with collection options")
	flags.BoolVar(&opts.allowAdd, "allow-add", false, "allow adding entries (overrides --config)")
	flags.BoolVar(&opts.allowDelete, "allow-delete", false, "allow deleting entries (overrides --config)")
	flags.IntVar(&opts.adds, "add", 0, "number of add clicks to replay")
	flags.IntSliceVar(&opts.removes, "remove", nil, "entry positions whose remove button is clicked, in order")
	flags.BoolVar(&opts.sanitize, "sanitize", false, "sanitize instantiated entry markup")
	flags.BoolVar(&opts.minify, "minify", false, "minify the rendered document")
	flags.BoolVar(&opts.noIndex, "no-index", false, "do not mirror the entry index onto data-entry-index")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log lifecycle events to stderr")
	flags.DurationVar(&opts.timeout, "timeout", 10*time.Second, "HTTP timeout for URL inputs")
	_ = cmd.MarkFlagRequired("container")

	return cmd
}

func resolveCollectionOptions(cmd *cobra.Command, opts *cliOptions) (collection.Options, error) {
	var resolved collection.Options
	if opts.config != "" {
		file, err := os.Open(opts.config)
		if err != nil {
			return collection.Options{}, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()
		resolved, err = collection.DecodeOptions(file)
		if err != nil {
			return collection.Options{}, err
		}
	}
	if cmd.Flags().Changed("allow-add") {
		resolved.AllowAdd = opts.allowAdd
	}
	if cmd.Flags().Changed("allow-delete") {
		resolved.AllowDelete = opts.allowDelete
	}
	return resolved, nil
}

func run(ctx context.Context, opts *cliOptions, collectionOpts collection.Options, stdin io.Reader, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	doc, err := loadDocument(ctx, opts, stdin)
	if err != nil {
		return err
	}

	managerOpts := []collection.Option{
		collection.WithOptions(collectionOpts),
		collection.WithLogger(logger),
		collection.WithIndexPersistence(!opts.noIndex),
	}
	if opts.sanitize {
		managerOpts = append(managerOpts, collection.WithSanitizer(collection.FormMarkupPolicy()))
	}

	m, err := collection.NewFromSelector(doc, opts.container, managerOpts...)
	if err != nil {
		return err
	}

	if err := replay(m, opts.adds, opts.removes); err != nil {
		return err
	}

	rendered := doc.String()
	if opts.minify {
		rendered, err = minifyHTML(rendered)
		if err != nil {
			return err
		}
	}

	if opts.output != "" {
		if err := os.WriteFile(opts.output, []byte(rendered), 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		logger.Info("document written", "path", opts.output, "entries", len(m.Entries()))
		return nil
	}
	_, err = io.WriteString(stdout, rendered)
	return err
}

func loadDocument(ctx context.Context, opts *cliOptions, stdin io.Reader) (*dom.Document, error) {
	if strings.TrimSpace(opts.input) == "-" {
		return dom.Parse(stdin)
	}
	return loader.New(loader.WithTimeout(opts.timeout)).Load(ctx, opts.input)
}

// replay clicks add buttons and remove buttons the way a user would.
func replay(m *collection.Manager, adds int, removes []int) error {
	if adds > 0 {
		buttons := m.AddButtons()
		if len(buttons) == 0 {
			return fmt.Errorf("--add: adding is not allowed for this container")
		}
		for i := 0; i < adds; i++ {
			buttons[0].Click()
		}
	}

	for _, position := range removes {
		entries := m.Entries()
		if position < 0 || position >= len(entries) {
			return fmt.Errorf("--remove %d: container has %d entries", position, len(entries))
		}
		button := entries[position].LastElementChild()
		if button == nil || !button.HasClass(collection.RemoveActionClass) {
			return fmt.Errorf("--remove %d: entry has no remove button", position)
		}
		button.Click()
	}
	return nil
}

func minifyHTML(markup string) (string, error) {
	m := minify.New()
	m.AddFunc("text/html", minhtml.Minify)
	out, err := m.String("text/html", markup)
	if err != nil {
		return "", fmt.Errorf("minify: %w", err)
	}
	return out, nil
}
