package main

import (
	"github.com/spf13/cobra"
	"inaudible/internal/config"
	"inaudible/internal/content"
)

type commandContext struct {
	contentDir string
}

func (c *commandContext) repository() (*content.Repository, error) {
	dir := c.contentDir
	if dir == "" {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		dir = cfg.ContentDir
	}
	return content.NewDiskRepository(dir), nil
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "contentctl",
		Short:         "Inspect and validate podcast content",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&ctx.contentDir, "content", "", "Content root directory (default $CONTENT_DIR)")

	rootCmd.AddCommand(newListCommand(ctx))
	rootCmd.AddCommand(newShowCommand(ctx))
	rootCmd.AddCommand(newTranscriptCommand(ctx))
	rootCmd.AddCommand(newValidateCommand(ctx))

	return rootCmd
}
