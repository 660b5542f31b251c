package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tkoeppen/ftpsync/internal/config"
	"github.com/tkoeppen/ftpsync/internal/scan"
	"github.com/tkoeppen/ftpsync/internal/snapshot"
)

// configTemplate is the default ftpsync.yaml scaffold.
const configTemplate = `# ftpsync configuration
version: 1

# Shell commands run before every deploy, in order.
# hooks:
#   - npm run build

# Scan parallelism. 0 means host parallelism.
# jobs: 4
`

// credsTemplate is the default ftpsync.creds.yaml scaffold. Keep this
// file out of version control.
const credsTemplate = `# ftpsync credentials — do not commit this file
protocol: ftp
server: ftp.example.com:21
username: user
password: secret
base_path: /public_html
`

// ignoreTemplate pre-excludes ftpsync's own files from deploys.
const ignoreTemplate = snapshot.TrackingDir + `/
` + config.ConfigFileName + `
` + config.CredsFileName + `
` + scan.IgnoreFileName + `
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize ftpsync in a directory",
	Long: `Creates the configuration file, a credentials template, the ignore file
and the tracking directory. Existing files are left untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		abs, err := filepath.Abs(basePath)
		if err != nil {
			return fmt.Errorf("resolving path: %w", err)
		}
		info("Initializing in %s", abs)

		if err := scaffold(abs); err != nil {
			return err
		}

		info("Done.")
		info("")
		info("Next steps:")
		info("  1. Edit %s with your connection details", config.CredsFileName)
		info("  2. Add build artifacts you don't want deployed to %s", scan.IgnoreFileName)
		info("  3. Run 'ftpsync deploy'")
		return nil
	},
}

// scaffold creates each missing file; creation is idempotent and an
// existing file is never overwritten.
func scaffold(base string) error {
	files := []struct {
		name    string
		content string
	}{
		{config.ConfigFileName, configTemplate},
		{config.CredsFileName, credsTemplate},
		{scan.IgnoreFileName, ignoreTemplate},
	}

	for _, f := range files {
		path := filepath.Join(base, f.name)
		if _, err := os.Stat(path); err == nil {
			info("  %s already exists, skipping", f.name)
			continue
		}
		if err := os.WriteFile(path, []byte(f.content), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		info("  created %s", f.name)
	}

	if err := os.MkdirAll(filepath.Join(base, snapshot.TrackingDir), 0755); err != nil {
		return fmt.Errorf("creating tracking directory: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(initCmd)
}
