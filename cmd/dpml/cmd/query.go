package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vrtulka23/dpml/pkg/dpml"
)

var queryCmd = &cobra.Command{
	Use:   "query <file> <selector>",
	Short: "Select nodes from a DPML file with *, prefix.*, or an exact path",
	Long: `Query initializes a DPML file and runs a selector against its
finalized result list: "*" selects everything, "prefix.*" selects a subtree
with its prefix stripped, and an exact dotted path selects a single node.

Examples:
  dpml query config.dpml "*"
  dpml query config.dpml "body.*"
  dpml query config.dpml "body.mass"`,
	Args: cobra.ExactArgs(2),
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
}

func runQuery(_ *cobra.Command, args []string) error {
	path, selector := args[0], args[1]

	d := dpml.New(nil)
	if err := d.Load(path); err != nil {
		return err
	}
	if err := d.Initialize(); err != nil {
		return err
	}

	for _, n := range d.Query(selector) {
		fmt.Printf("%s = %s\n", n.Name, displayScalar(n.Value))
	}
	return nil
}
