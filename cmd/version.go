package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Показать версию",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("КОМПАС-3D Project Manager\nVersion: %s\nCommit: %s\nBuild: %s\n", Version, Commit, BuildDate)
		return nil
	},
}
