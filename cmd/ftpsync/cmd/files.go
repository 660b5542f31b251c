package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tkoeppen/ftpsync/internal/scan"
)

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "List every path a deploy would visit",
	Long: `Walks the base directory the same way deploy does, honoring the ignore
file, and prints each path that would be tracked.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		matcher, err := scan.LoadMatcher(basePath)
		if err != nil {
			return err
		}
		paths, err := scan.List(basePath, matcher)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Println(p)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(filesCmd)
}
