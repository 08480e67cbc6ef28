package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ecoscan/backend/internal/app"
	"github.com/ecoscan/backend/internal/domain"
)

type analyzeOptions struct {
	htmlFile   string
	title      string
	search     string
	noHints    bool
	dictionary string
	pretty     bool
}

func newAnalyzeCommand(root *rootOptions) *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze [text...]",
		Short: "Analyze product text and print the result as JSON",
		Long: "Analyze product text and print the result as JSON.\n" +
			"Text is taken from the arguments, from --html-file, or from stdin when neither is given.",
		Example: `  ecoscan analyze "made from 100% organic cotton"
  ecoscan analyze --html-file product.html
  echo "polyester shell, pvc lining" | ecoscan analyze`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, root, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.htmlFile, "html-file", "", "read product card HTML from a file")
	flags.StringVar(&opts.title, "title", "", "product title")
	flags.StringVar(&opts.search, "search", "", "search query or results-page URL the product came from")
	flags.BoolVar(&opts.noHints, "no-hints", false, "disable product hint detection")
	flags.StringVar(&opts.dictionary, "dictionary", "", "material dictionary YAML file (overrides materials.dictionary_path)")
	flags.BoolVar(&opts.pretty, "pretty", false, "indent JSON output (default when stdout is a terminal)")

	return cmd
}

func runAnalyze(cmd *cobra.Command, root *rootOptions, opts *analyzeOptions, args []string) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	if opts.dictionary != "" {
		cfg.Materials.DictionaryPath = opts.dictionary
	}
	if opts.noHints {
		cfg.Analysis.DetectHints = false
	}
	// one-shot runs gain nothing from the cache
	cfg.Cache.Enabled = false

	request := domain.AnalyzeRequest{
		Title:         opts.title,
		SearchContext: opts.search,
	}

	switch {
	case opts.htmlFile != "":
		raw, err := os.ReadFile(opts.htmlFile)
		if err != nil {
			return fmt.Errorf("read html file: %w", err)
		}
		request.HTML = string(raw)
		request.Text = strings.Join(args, " ")
	case len(args) > 0:
		request.Text = strings.Join(args, " ")
	default:
		raw, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		request.Text = strings.TrimSpace(string(raw))
	}

	service, _, err := app.NewService(cfg, root.logger(cfg, cmd.ErrOrStderr()))
	if err != nil {
		return err
	}

	analysis, err := service.Analyze(cmd.Context(), &request)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	pretty := opts.pretty
	if !cmd.Flags().Changed("pretty") {
		pretty = isTerminal(out)
	}

	encoder := json.NewEncoder(out)
	if pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(analysis)
}

// isTerminal reports whether w is an interactive terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
