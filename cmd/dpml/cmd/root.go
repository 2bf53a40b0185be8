package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vrtulka23/dpml/internal/config"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	verbose    bool
	configPath string
	cfg        config.Config
)

var rootCmd = &cobra.Command{
	Use:   "dpml",
	Short: "DPML parameter file interpreter",
	Long: `dpml is a command-line interpreter for the Dimensional Parameter
Markup Language: a declarative, indentation-significant configuration
format with typed, dimensioned, unit-aware parameters.`,
	Version:           Version,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "dpml.yaml", "path to the project config file")
}

// loadConfig reads the project config file before any subcommand runs,
// falling back to config.Default() when it's absent.
func loadConfig(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = loaded
	if verbose {
		if abs, err := filepath.Abs(configPath); err == nil {
			fmt.Fprintf(os.Stderr, "Using config %s (output=%s)\n", abs, cfg.Output)
		}
	}
	return nil
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
