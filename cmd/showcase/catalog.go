package main

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"finitefield.org/showcase-web/internal/catalog"
	"finitefield.org/showcase-web/internal/i18n"
	"finitefield.org/showcase-web/internal/view"
)

func newCatalogCmd(root *rootOptions) *cobra.Command {
	var search, category, lang string
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Load the catalog and print the visible products",
		Long: `Load the manifest through the enrichment endpoint and print the products that
match the search term and category, in storefront order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := root.bootstrap()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			store := catalog.NewStore()
			spinner := startSpinner(pterm.DefaultSpinner.WithWriter(cmd.ErrOrStderr()).Start, "Loading catalog...", logger)
			loadCatalog(cmd.Context(), newLoader(cfg, store, logger), store, logger)
			snap := store.Snapshot()
			if snap.Failed() {
				if spinner != nil {
					spinner.Fail(snap.Err.Error())
				}
				return snap.Err
			}
			if spinner != nil {
				spinner.Success(fmt.Sprintf("Loaded %d products", len(snap.State.Products)))
			}
			bundle, err := i18n.Load(cfg.Site.LocalesDir, cfg.Site.DefaultLocale, cfg.Site.Locales)
			if err != nil {
				return fmt.Errorf("load locales: %w", err)
			}
			if lang == "" || !bundle.IsSupported(lang) {
				lang = bundle.Fallback()
			}
			return printCatalog(cmd.OutOrStdout(), snap.State, search, category, viewTexts(bundle, lang))
		},
	}
	cmd.Flags().StringVarP(&search, "q", "q", "", "search term matched against titles and keywords")
	cmd.Flags().StringVarP(&category, "category", "c", catalog.AllCategories, "category tag value")
	cmd.Flags().StringVar(&lang, "lang", "", "locale for labels")
	return cmd
}

// startSpinner starts a progress spinner. A spinner that cannot start is logged and
// yields nil; the command continues without progress output.
func startSpinner(start func(text ...any) (*pterm.SpinnerPrinter, error), text string, logger *zap.Logger) *pterm.SpinnerPrinter {
	spinner, err := start(text)
	if err != nil {
		logger.Warn("progress spinner unavailable", zap.Error(err))
		return nil
	}
	return spinner
}

// printCatalog renders the filtered products as a table.
func printCatalog(w io.Writer, state catalog.State, search, category string, texts view.Texts) error {
	grid := view.BuildGrid(catalog.Filter(state.Products, search, category), texts)
	if grid.Empty {
		_, err := fmt.Fprintln(w, grid.Placeholder)
		return err
	}
	tableData := pterm.TableData{{"#", "Title", "Price", "Category", "Keywords"}}
	for i, c := range grid.Cards {
		tableData = append(tableData, []string{fmt.Sprint(i + 1), c.Title, c.Price, c.Category, c.FilterKeywords})
	}
	return pterm.DefaultTable.WithHasHeader().WithWriter(w).WithData(tableData).Render()
}
