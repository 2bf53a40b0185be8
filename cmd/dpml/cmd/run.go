package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vrtulka23/dpml/pkg/dpml"
)

var (
	evalCode     string
	outputFormat string
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Parse a DPML file and print its resolved parameters",
	Long: `Run initializes a DPML source file or inline code and prints its
finalized parameters.

Examples:
  # Parse a file and print name = value pairs
  dpml run config.dpml

  # Parse inline code
  dpml run -e "size float = 1 m"

  # Print as JSON instead
  dpml run --format json config.dpml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFile,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalCode, "eval", "e", "", "parse inline code instead of reading from file")
	runCmd.Flags().StringVar(&outputFormat, "format", "", "output format: text or json (default from dpml.yaml)")
}

func runFile(_ *cobra.Command, args []string) error {
	d := dpml.New(nil)

	switch {
	case evalCode != "":
		d = dpml.NewFromText(nil, evalCode)
	case len(args) == 1:
		if verbose {
			fmt.Fprintf(os.Stderr, "Loading %s\n", args[0])
		}
		if err := d.Load(args[0]); err != nil {
			return err
		}
	default:
		return fmt.Errorf("either provide a file path or use -e for inline code")
	}

	if err := d.Initialize(); err != nil {
		return err
	}

	format := outputFormat
	if format == "" {
		format = cfg.Output
	}

	if format == "json" {
		out, err := d.JSON()
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}

	data := d.Data()
	names := make([]string, 0, len(data))
	for name := range data {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("%s = %s\n", name, displayScalar(data[name]))
	}
	return nil
}
