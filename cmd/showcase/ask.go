package main

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"finitefield.org/showcase-web/internal/catalog"
	"finitefield.org/showcase-web/internal/chat"
	"finitefield.org/showcase-web/internal/i18n"
	"finitefield.org/showcase-web/internal/view"
)

func newAskCmd(root *rootOptions) *cobra.Command {
	var search, category, lang string
	cmd := &cobra.Command{
		Use:   "ask <message>",
		Short: "Ask the shopping assistant about the visible products",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := root.bootstrap()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			bundle, err := i18n.Load(cfg.Site.LocalesDir, cfg.Site.DefaultLocale, cfg.Site.Locales)
			if err != nil {
				return fmt.Errorf("load locales: %w", err)
			}
			if lang == "" || !bundle.IsSupported(lang) {
				lang = bundle.Fallback()
			}

			store := catalog.NewStore()
			loadCatalog(cmd.Context(), newLoader(cfg, store, logger), store, logger)
			snap := store.Snapshot()
			if snap.Failed() {
				return snap.Err
			}
			cards := view.BuildCards(catalog.Filter(snap.State.Products, search, category), viewTexts(bundle, lang))

			bot := chat.NewBot(chatTexts(bundle, lang), chat.WithDelay(cfg.Chat.ReplyDelay), chat.WithBotLogger(logger.Named("chat")))
			var transcript chat.Transcript
			reply, err := bot.Converse(cmd.Context(), &transcript, strings.Join(args, " "), cards)
			if err != nil {
				return err
			}
			for _, m := range transcript.Messages {
				prefix := pterm.FgCyan.Sprint("you")
				if m.Role == chat.RoleBot {
					prefix = pterm.FgGreen.Sprint("bot")
				}
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", prefix, m.Text); err != nil {
					return err
				}
			}
			if reply.ID == "" {
				return fmt.Errorf("empty message")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "q", "q", "", "search term narrowing the visible products")
	cmd.Flags().StringVarP(&category, "category", "c", catalog.AllCategories, "category tag value")
	cmd.Flags().StringVar(&lang, "lang", "", "reply language")
	return cmd
}
