package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the slidegest version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("slidegest", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
