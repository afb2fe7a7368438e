package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/chyxhtc/simple-translate-dict/internal/adapter/bridge"
	"github.com/chyxhtc/simple-translate-dict/internal/app"
	"github.com/chyxhtc/simple-translate-dict/internal/domain"
	"github.com/chyxhtc/simple-translate-dict/internal/service/selection"
	"github.com/chyxhtc/simple-translate-dict/internal/settings"
)

type lookupOptions struct {
	from         string
	to           string
	phonetic     bool
	phoneticOnly bool
	panel        bool
	server       string
	timeout      time.Duration
}

type lookuper interface {
	Lookup(ctx context.Context, req domain.LookupRequest) (*domain.LookupResult, error)
}

func newLookupCmd() *cobra.Command {
	var opts lookupOptions

	cmd := &cobra.Command{
		Use:   "lookup TEXT",
		Short: "Translate text once and print the result",
		Long: `Translate TEXT and print the merged LookupResult as JSON.

Without --server the lookup runs in-process with the configured providers.
With --server it is sent to a running bridge.

Examples:
  simple-translate lookup hello --to ja --phonetic
  simple-translate lookup "good morning" --server http://127.0.0.1:8787
  simple-translate lookup hello --panel`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd.Context(), cmd.OutOrStdout(), strings.Join(args, " "), opts)
		},
	}

	cmd.Flags().StringVar(&opts.from, "from", domain.AutoLanguage, "Source language")
	cmd.Flags().StringVar(&opts.to, "to", "", "Target language (default from settings)")
	cmd.Flags().BoolVar(&opts.phonetic, "phonetic", false, "Attach dictionary data for single words")
	cmd.Flags().BoolVar(&opts.phoneticOnly, "phonetic-only", false, "Skip translation, fetch dictionary data only")
	cmd.Flags().BoolVar(&opts.panel, "panel", false, "Print the panel view instead of the raw result")
	cmd.Flags().StringVar(&opts.server, "server", "", "Bridge URL; empty runs in-process")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 15*time.Second, "Overall lookup timeout")

	return cmd
}

func runLookup(ctx context.Context, out io.Writer, text string, opts lookupOptions) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	var (
		lk    lookuper
		store *settings.Store
	)
	if opts.server != "" {
		store = settings.NewStore(settings.FromConfig(cfg.Settings))
		lk = bridge.NewClient(opts.server, opts.timeout, logger)
	} else {
		c := app.NewComponents(cfg, logger)
		defer c.Coalescer.Close()
		store = c.Settings
		lk = c.Coalescer
	}
	if opts.to != "" {
		store.Update(func(s *settings.Settings) { s.TargetLang = opts.to })
	}

	var v any
	if opts.panel {
		v = selection.NewService(logger, lk, store).ShowPanel(ctx, selection.Selection{Text: text}, nil)
	} else {
		res, err := lk.Lookup(ctx, domain.LookupRequest{
			Text:         text,
			SourceLang:   opts.from,
			TargetLang:   store.TargetLang(),
			NeedPhonetic: opts.phonetic,
			PhoneticOnly: opts.phoneticOnly,
		})
		if err != nil {
			return err
		}
		if res.IsError {
			logger.Warn("lookup failed", slog.String("error", res.ErrorMessage))
		}
		v = res
	}

	return writeJSON(out, v)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return nil
}
