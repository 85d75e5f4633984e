package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/strapikit/fraggen/internal/config"
	"github.com/strapikit/fraggen/internal/emit"
	"github.com/strapikit/fraggen/internal/naming"
	"github.com/strapikit/fraggen/internal/schema"
)

// NewRootCmd creates the root command for the fraggen CLI.
func NewRootCmd() *cobra.Command {
	var cfg config.Config

	cmd := &cobra.Command{
		Use:   "fraggen",
		Short: "Generate GraphQL fragments and component stubs from CMS schemas",
		Long: `fraggen queries the content-type-builder API of a headless CMS for a
component's field schema and generates a GraphQL fragment, a UI component
stub, and a TypeScript interface, wiring them into the fragment index.

Existing files are never overwritten; re-running against the same component
is a no-op.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, cfg)
		},
	}

	cmd.Flags().StringVarP(&cfg.Component, "component", "i", "", "component identifier, e.g. sections.hero-banner")
	cmd.Flags().StringVar(&cfg.BaseURL, "url", "http://localhost:1337", "CMS base URL")
	cmd.Flags().StringVar(&cfg.Dir, "dir", ".", "project root for generated files")
	cmd.Flags().IntVar(&cfg.MaxDepth, "max-depth", schema.DefaultMaxDepth, "nested component expansion limit")
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "render artifacts without writing files")
	cmd.Flags().BoolVar(&cfg.Verbose, "verbose", false, "enable debug logging")
	_ = cmd.MarkFlagRequired("component")

	return cmd
}

// run executes the pipeline: derive names and resolve the schema, then emit.
func run(cmd *cobra.Command, cfg config.Config) error {
	log := newLogger(cfg.Verbose)

	names, err := naming.Derive(cfg.Component)
	if err != nil {
		return err
	}

	resolver := schema.NewResolver(schema.NewClient(cfg.BaseURL), cfg.MaxDepth, log)
	selections, err := resolver.Resolve(cmd.Context(), cfg.Component)
	if err != nil {
		return err
	}
	log.Debug("resolved schema", "component", cfg.Component, "fields", len(selections))

	artifacts, err := emit.Render(names, selections)
	if err != nil {
		return err
	}

	emitter := emit.New(cfg.Dir, log)
	if cfg.DryRun {
		p := emitter.Paths(names)
		log.Info("dry run, skipping writes",
			"fragment", p.Fragment,
			"component", p.Component,
			"types", p.Types,
			"barrel", p.Barrel)
		return nil
	}
	return emitter.Write(names, artifacts)
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
