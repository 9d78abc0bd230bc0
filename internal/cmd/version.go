package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DevSymphony/sym-checkstyle/internal/linter/checkstyle"
)

// version will be set by build flags from cmd/sym-checkstyle/main.go
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Print the version number of sym-checkstyle and the default Checkstyle release.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sym-checkstyle version %s (checkstyle %s)\n", version, checkstyle.DefaultVersion)
	},
}

// SetVersion sets the version string (called from main.go)
func SetVersion(v string) {
	version = v
}

