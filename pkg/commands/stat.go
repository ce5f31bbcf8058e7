package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balekit/bale/pkg/bale"
)

var statArchivePath string

var StatCmd = &cobra.Command{
	Use:   "stat <name>",
	Short: "Show one entry's header record",
	Args:  cobra.ExactArgs(1),
	RunE:  runStat,
}

func init() {
	StatCmd.Flags().StringVarP(&statArchivePath, "input", "i", "", "Bale to read from")
	StatCmd.MarkFlagRequired("input")
}

func runStat(cmd *cobra.Command, args []string) error {
	info, err := bale.Stat(statArchivePath, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("name:              %s\n", info.Name)
	fmt.Printf("data offset:       %d\n", info.DataOffset)
	fmt.Printf("stored size:       %d\n", info.StoredSize)
	fmt.Printf("compression:       %s\n", info.Compression)
	fmt.Printf("uncompressed size: %d\n", info.UncompressedSize)
	fmt.Printf("content kind:      %s\n", info.Content)
	return nil
}
