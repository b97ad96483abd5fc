package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"inaudible/internal/content"
	"inaudible/internal/models"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List episodes, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := ctx.repository()
			if err != nil {
				return err
			}
			episodes, err := repo.ListEpisodes()
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(episodes))
			for _, ep := range episodes {
				locales := "-"
				if ep.Number != nil {
					found, err := repo.Locales(*ep.Number)
					if err != nil {
						return err
					}
					if len(found) > 0 {
						locales = strings.Join(found, ",")
					}
				}
				rows = append(rows, []string{numberText(ep), ep.Label(), ep.Title, ep.Slug, ep.Duration, locales})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"#", "Label", "Title", "Slug", "Duration", "Transcripts"},
				rows,
				[]columnAlignment{alignRight},
			))
			return nil
		},
	}
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <slug>",
		Short: "Show one episode and its transcripts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := ctx.repository()
			if err != nil {
				return err
			}
			ep, ok, err := repo.FindBySlug(args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("episode %q not found", args[0])
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %s\n", ep.Label(), ep.Title)
			fmt.Fprintf(out, "Slug:     %s\n", ep.Slug)
			fmt.Fprintf(out, "Video:    %s\n", ep.YoutubeID)
			fmt.Fprintf(out, "Duration: %s\n", ep.Duration)
			if len(ep.Categories) > 0 {
				fmt.Fprintf(out, "Tags:     %s\n", strings.Join(ep.Categories, ", "))
			}
			if ep.Description != "" {
				fmt.Fprintf(out, "\n%s\n", ep.Description)
			}
			if ep.Number == nil {
				return nil
			}

			locales, err := repo.Locales(*ep.Number)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(locales))
			for _, loc := range locales {
				t, err := repo.ResolveTranscript(*ep.Number, loc)
				if err != nil {
					return err
				}
				edited := "no"
				if repo.HasEditedTranscript(*ep.Number, loc) {
					edited = "yes"
				}
				rows = append(rows, []string{loc, string(t.Kind), strconv.Itoa(len(t.Segments)), edited})
			}
			if len(rows) > 0 {
				fmt.Fprintln(out)
				fmt.Fprintln(out, renderTable(
					[]string{"Locale", "Transcript", "Segments", "Edited"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight},
				))
			}
			return nil
		},
	}
}

func newTranscriptCommand(ctx *commandContext) *cobra.Command {
	var loc string
	var edited bool

	cmd := &cobra.Command{
		Use:   "transcript <number>",
		Short: "Print an episode transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid episode number %q", args[0])
			}
			repo, err := ctx.repository()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if edited {
				html, ok, err := repo.GetEditedHTML(number, loc)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("no edited transcript for episode %d (%s)", number, loc)
				}
				fmt.Fprint(out, html)
				return nil
			}

			t, err := repo.ResolveTranscript(number, loc)
			if err != nil {
				return err
			}
			switch t.Kind {
			case content.TranscriptSegments:
				for _, s := range t.Segments {
					fmt.Fprintf(out, "[%s] %s\n", models.FormatTimestamp(s.Start), s.Text)
				}
			case content.TranscriptMarkdown:
				fmt.Fprint(out, t.Markdown)
			default:
				return fmt.Errorf("no transcript for episode %d (%s)", number, loc)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&loc, "locale", "l", "es", "Transcript locale")
	cmd.Flags().BoolVar(&edited, "edited", false, "Print the edited HTML transcript")
	return cmd
}

func newValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the content tree for malformed or conflicting entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := ctx.repository()
			if err != nil {
				return err
			}
			report, err := repo.Validate()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, p := range report.Problems {
				fmt.Fprintln(out, p)
			}
			fmt.Fprintf(out, "%d episodes, %d problems\n", report.Episodes, len(report.Problems))
			if !report.OK() {
				return fmt.Errorf("content validation failed")
			}
			return nil
		},
	}
}

func numberText(ep models.Episode) string {
	if ep.Number == nil {
		return ""
	}
	return strconv.Itoa(*ep.Number)
}
