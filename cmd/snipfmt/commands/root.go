// Package commands implements the CLI commands for snipfmt.
package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jmylchreest/snipfmt/internal/config"
	"github.com/jmylchreest/snipfmt/internal/logger"
	"github.com/jmylchreest/snipfmt/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "snipfmt",
	Short: "Minify and beautify HTML, CSS, JavaScript and JSON snippets",
	Long: `snipfmt minifies and beautifies HTML, CSS, JavaScript and JSON, and
encodes text and images to and from Base64.

Input comes from a file, stdin or a URL. The HTML, CSS and JS transforms are
fast pattern rewrites aimed at typical snippets, not full parsers.

Examples:
  # Minify a stylesheet
  snipfmt minify site.css -o site.min.css

  # Beautify JSON from stdin
  curl -s https://api.example.com/items | snipfmt beautify -t json

  # Minify the inline <style> of a live page and report the savings
  snipfmt minify -u https://example.com --select style --stats

  # Minify a whole directory, 8 files at a time
  snipfmt batch -c 8 assets/*.css assets/*.js

  # Turn an image into a data URL
  snipfmt base64 image logo.png`,
	SilenceUsage: true,
	Version:      version.String(),
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default $HOME/.snipfmt.yaml)")
	pf.Bool("debug", false, "enable debug logging")
	pf.BoolP("quiet", "q", false, "only log errors")
	pf.Bool("log-json", false, "log as JSON")
	pf.String("max-size", config.DefaultMaxInputSize, "max input size (e.g., 500KB, 10MB)")

	_ = viper.BindPFlag("config", pf.Lookup("config"))
	_ = viper.BindPFlag("debug", pf.Lookup("debug"))
	_ = viper.BindPFlag("quiet", pf.Lookup("quiet"))
	_ = viper.BindPFlag("log_json", pf.Lookup("log-json"))
	_ = viper.BindPFlag("max_input_size", pf.Lookup("max-size"))

	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")
}

func initConfig() {
	config.SetDefaults(viper.GetViper())

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".snipfmt")
		viper.SetConfigType("yaml")
	}

	// Read config file (a missing file is fine)
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			logError("failed to read config: %v", err)
		}
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// setup initializes logging and loads the validated config. Every command
// calls it first.
func setup() (*config.Config, error) {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
		JSON:  viper.GetBool("log_json"),
	})

	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}
	if f := viper.ConfigFileUsed(); f != "" {
		logger.Debug("config loaded", "file", f)
	}
	return cfg, nil
}

// bindFlags binds config keys to the flags of the running command. Commands
// share keys such as report.format, so binding happens at run time rather
// than in init.
func bindFlags(flags *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if f := flags.Lookup(name); f != nil {
			_ = viper.BindPFlag(key, f)
		}
	}
}

// logError prints an error message to stderr.
func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}

// logInfo prints an info message to stderr (unless quiet mode).
func logInfo(format string, args ...any) {
	if !viper.GetBool("quiet") {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
