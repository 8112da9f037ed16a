package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show initguard version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("initguard %s\n", Version)
	},
}
