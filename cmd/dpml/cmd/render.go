package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vrtulka23/dpml/pkg/dpml"
)

var renderOut string

var renderCmd = &cobra.Command{
	Use:   "render <file> <template>",
	Short: "Render a {path[:format]} template against a DPML file",
	Long: `Render initializes a DPML file, then substitutes "{path}" and
"{path:format}" references in template (a file path or literal text) with
the matching node's value.

Examples:
  dpml render config.dpml report.tpl
  dpml render config.dpml report.tpl --out report.txt`,
	Args: cobra.ExactArgs(2),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVar(&renderOut, "out", "", "write rendered output to this path instead of stdout")
}

func runRender(_ *cobra.Command, args []string) error {
	path, tpl := args[0], args[1]

	d := dpml.New(nil)
	if err := d.Load(path); err != nil {
		return err
	}
	if err := d.Initialize(); err != nil {
		return err
	}

	out, err := d.Template(tpl, renderOut, nil)
	if err != nil {
		return err
	}
	if renderOut == "" {
		fmt.Println(out)
	}
	return nil
}
