package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/language"
)

var (
	languagesJSON bool
	languagesYAML bool
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List supported languages and their file extensions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		all := language.All()

		switch {
		case languagesJSON:
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(all)
		case languagesYAML:
			enc := yaml.NewEncoder(out)
			defer enc.Close()
			return enc.Encode(all)
		}

		for _, info := range all {
			fmt.Fprintf(out, "%-12s %-12s %v\n", info.Tag, info.Label, info.Extensions)
		}
		return nil
	},
}

func init() { //nolint:gochecknoinits // Cobra command registration
	languagesCmd.Flags().BoolVar(&languagesJSON, "json", false, "Print as JSON")
	languagesCmd.Flags().BoolVar(&languagesYAML, "yaml", false, "Print as YAML")
	rootCmd.AddCommand(languagesCmd)
}
