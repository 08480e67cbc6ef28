package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ecoscan/backend/internal/app"
	"github.com/ecoscan/backend/internal/domain"
)

type materialsOptions struct {
	category   string
	kind       string
	search     string
	limit      int
	dictionary string
}

func newMaterialsCommand(root *rootOptions) *cobra.Command {
	opts := &materialsOptions{}

	cmd := &cobra.Command{
		Use:   "materials",
		Short: "List the material dictionary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMaterials(cmd, root, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.category, "category", "", "only list materials of this category")
	flags.StringVar(&opts.kind, "kind", "", "only list materials of this kind (eco or non_eco)")
	flags.StringVar(&opts.search, "search", "", "rank materials by similarity to a possibly misspelled name")
	flags.IntVar(&opts.limit, "limit", 5, "maximum results for --search")
	flags.StringVar(&opts.dictionary, "dictionary", "", "material dictionary YAML file (overrides materials.dictionary_path)")

	return cmd
}

func runMaterials(cmd *cobra.Command, root *rootOptions, opts *materialsOptions) error {
	category := domain.Category(opts.category)
	if opts.category != "" && !category.Valid() {
		return fmt.Errorf("%w: unknown category %q", domain.ErrInvalidRequest, opts.category)
	}
	kind := domain.MaterialKind(opts.kind)
	if kind != "" && kind != domain.KindEcoFriendly && kind != domain.KindNonEcoFriendly {
		return fmt.Errorf("%w: unknown kind %q", domain.ErrInvalidRequest, opts.kind)
	}

	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	if opts.dictionary != "" {
		cfg.Materials.DictionaryPath = opts.dictionary
	}

	engine, _, err := app.NewEngine(cfg)
	if err != nil {
		return err
	}

	if opts.search != "" {
		return printMatches(cmd, engine.SuggestMaterials(opts.search, opts.limit))
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tKIND\tCATEGORY\tSCORE\tRECYCLABLE\tBIODEGRADABLE")

	count := 0
	for _, e := range engine.Catalog().Entries() {
		if category != "" && e.Category != category {
			continue
		}
		if kind != "" && e.Kind != kind {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%t\t%t\n", e.Name, e.Kind, e.Category, e.Score, e.Recyclable, e.Biodegradable)
		count++
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "%d materials\n", count)
	return nil
}

func printMatches(cmd *cobra.Command, matches []domain.MaterialMatch) error {
	if len(matches) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "no similar materials")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tKIND\tCATEGORY\tMATCH")
	for _, m := range matches {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.0f%%\n", m.Entry.Name, m.Entry.Kind, m.Entry.Category, m.Score)
	}
	return w.Flush()
}
