package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/config"
)

var (
	provider string
	model    string
)

var rootCmd = &cobra.Command{
	Use:   "review-cli",
	Short: "review-cli sends source files to an AI model for code review.",
	Long: `A CLI for the AI code review assistant. It builds the same review prompt as
the web form, sends it to the configured model and prints or exports the reply.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&provider, "provider", "p", "", "LLM provider (anthropic, ollama, gemini)")
	rootCmd.PersistentFlags().StringVarP(&model, "model", "m", "", "Model name sent with the request")

	for key, flag := range map[string]string{"PROVIDER": "provider", "MODEL": "model"} {
		if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			slog.Error("Error binding flag", "error", err)
			os.Exit(1)
		}
	}
}

// initConfig reads in ENV variables if set.
func initConfig() {
	viper.SetEnvPrefix("CR")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// loadConfig builds the application config, letting CR_/flag values override
// the provider and model. CLI logs go to stderr so stdout stays clean.
func loadConfig() (*config.Config, error) {
	v := config.NewViper()
	v.SetDefault("LOG_OUTPUT", "stderr")
	v.SetDefault("LOG_LEVEL", "warn")

	if p := viper.GetString("PROVIDER"); p != "" {
		v.Set("LLM_PROVIDER", p)
	}
	if m := viper.GetString("MODEL"); m != "" {
		v.Set("GENERATOR_MODEL_NAME", m)
	}
	return config.FromViper(v)
}
