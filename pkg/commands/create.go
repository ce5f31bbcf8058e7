package commands

import (
	"github.com/spf13/cobra"

	"github.com/balekit/bale/pkg/bale"
)

var createOpts = &bale.CreateOptions{}

var CreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Pack a directory into a bale",
	RunE:  runCreate,
}

func init() {
	CreateCmd.Flags().StringVarP(&createOpts.InputPath, "input", "i", "", "Input directory to pack")
	CreateCmd.Flags().StringVarP(&createOpts.OutputPath, "output", "o", "", "Output path for the bale")
	CreateCmd.Flags().BoolVarP(&createOpts.Force, "force", "f", false, "Pack even if the bale is up to date")
	CreateCmd.Flags().BoolVarP(&createOpts.Verbose, "verbose", "v", false, "Verbose output")
	CreateCmd.MarkFlagRequired("input")
	CreateCmd.MarkFlagRequired("output")
}

func runCreate(cmd *cobra.Command, args []string) error {
	return bale.CreateArchive(*createOpts)
}
