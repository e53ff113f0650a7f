package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	yamlv3 "gopkg.in/yaml.v3"

	"scanquote/rates"
)

// NewTablesCommand creates the tables command.
func NewTablesCommand() *cobra.Command {
	var dump bool

	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Inspect the effective rate tables",
		Long: `Summarize the rate tables a quote would be priced against, after the
--rates overlay and environment overrides are applied.

--dump writes the full merged config as YAML, which doubles as a
starting point for a custom rate file.`,
		Example: `  scanquote tables
  scanquote tables --rates regional.yaml
  scanquote tables --dump > rates.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTables(cmd, dump)
		},
	}

	cmd.Flags().BoolVar(&dump, "dump", false, "write the merged rate config as YAML")

	return cmd
}

func runTables(cmd *cobra.Command, dump bool) error {
	cfg, err := rates.LoadConfig(ratesFile)
	if err != nil {
		return err
	}

	if dump {
		out, err := yamlv3.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("marshal rate config: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	}

	renderTablesSummary(cmd.OutOrStdout(), cfg)
	return nil
}
