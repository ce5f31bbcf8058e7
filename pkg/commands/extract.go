package commands

import (
	"github.com/spf13/cobra"

	"github.com/balekit/bale/pkg/bale"
)

var extractOpts = &bale.ExtractOptions{}

var ExtractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Unpack every entry of a bale into a directory",
	RunE:  runExtract,
}

func init() {
	ExtractCmd.Flags().StringVarP(&extractOpts.InputFile, "input", "i", "", "Bale to unpack")
	ExtractCmd.Flags().StringVarP(&extractOpts.OutputPath, "output", "o", ".", "Directory to unpack into")
	ExtractCmd.MarkFlagRequired("input")
}

func runExtract(cmd *cobra.Command, args []string) error {
	return bale.ExtractArchive(*extractOpts)
}
