package commands

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/balekit/bale/pkg/bale"
)

var lsArchivePath string

var LsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List the entries of a bale",
	RunE:  runLs,
}

func init() {
	LsCmd.Flags().StringVarP(&lsArchivePath, "input", "i", "", "Bale to list")
	LsCmd.MarkFlagRequired("input")
}

func runLs(cmd *cobra.Command, args []string) error {
	entries, err := bale.List(lsArchivePath)
	if err != nil {
		return err
	}

	for _, e := range entries {
		fmt.Printf("%-10s %-8s %s\n",
			humanize.Bytes(uint64(e.UncompressedSize)), e.Compression, e.Name)
	}
	fmt.Printf("%d entries\n", len(entries))
	return nil
}
