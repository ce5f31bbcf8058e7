package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/balekit/bale/pkg/bale"
)

var (
	catArchivePath string
	catOutputPath  string
)

var CatCmd = &cobra.Command{
	Use:   "cat <name>",
	Short: "Print one entry's bytes to stdout (or a file)",
	Args:  cobra.ExactArgs(1),
	RunE:  runCat,
}

func init() {
	CatCmd.Flags().StringVarP(&catArchivePath, "input", "i", "", "Bale to read from")
	CatCmd.Flags().StringVarP(&catOutputPath, "output", "o", "", "Write the bytes to a file instead of stdout")
	CatCmd.MarkFlagRequired("input")
}

func runCat(cmd *cobra.Command, args []string) error {
	data, err := bale.Lookup(catArchivePath, args[0])
	if err != nil {
		return err
	}

	if catOutputPath != "" {
		return os.WriteFile(catOutputPath, data, 0644)
	}
	_, err = os.Stdout.Write(data)
	return err
}
