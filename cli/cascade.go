package cli

import (
	"github.com/spf13/cobra"

	"scanquote/services"
)

// NewCascadeCommand creates the cascade command.
func NewCascadeCommand() *cobra.Command {
	var (
		from       string
		to         string
		stagesFile string
		jsonOut    bool
	)

	cmd := &cobra.Command{
		Use:   "cascade FORM",
		Short: "Resolve stage-to-stage prefill for a project",
		Long: `Resolve the prefill rules for one production stage transition.

Each rule pulls its value from the scoping form, from recorded stage
data, or from a static default, and the output records where every field
came from. Transitions only run between adjacent stages; completed-stage
field bags are supplied with --stages.`,
		Example: `  scanquote cascade form.yaml --from scheduling --to field_capture
  scanquote cascade form.yaml --from field_capture --to registration --stages stages.yaml
  scanquote cascade form.yaml --from qa --to delivery --stages stages.yaml --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCascade(cmd, args[0], from, to, stagesFile, jsonOut)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "stage the project is leaving")
	cmd.Flags().StringVar(&to, "to", "", "stage the project is entering")
	cmd.Flags().StringVar(&stagesFile, "stages", "", "YAML file with recorded stage data")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit the prefill output as JSON")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func runCascade(cmd *cobra.Command, formPath, from, to, stagesFile string, jsonOut bool) error {
	form, err := loadValidForm(formPath)
	if err != nil {
		return err
	}

	stages := services.StageData{}
	if stagesFile != "" {
		stages, err = services.LoadStageData(stagesFile)
		if err != nil {
			return err
		}
	}

	out, err := services.ExecutePrefillCascade(services.Stage(from), services.Stage(to), form, stages)
	if err != nil {
		return err
	}

	if jsonOut {
		return writeJSON(cmd.OutOrStdout(), out)
	}
	renderCascade(cmd.OutOrStdout(), out)
	return nil
}
