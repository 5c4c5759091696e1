package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sniff/internal/report"
)

func newStylesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "styles",
		Short: "List recognized styles in preference order",
		Long: `List every style sniff recognizes, its whitespace pattern and the
settings applied when it is detected. Config overrides from sniff.toml are
included.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			policy, err := cfg.Policy()
			if err != nil {
				return err
			}
			table, err := cfg.Table()
			if err != nil {
				return err
			}

			formatStr, err := cmd.Flags().GetString("format")
			if err != nil {
				return fmt.Errorf("failed to get format flag: %w", err)
			}
			format, err := report.ParseFormat(formatStr)
			if err != nil {
				return err
			}
			return report.RenderStyles(cmd.OutOrStdout(), policy, table, format)
		},
	}
	cmd.Flags().String("format", "text", "output format (text|json|msgpack)")
	cmd.Flags().String("config", "", "path to sniff.toml (default: nearest one above the working directory)")
	return cmd
}
