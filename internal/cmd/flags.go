package cmd

import (
	"github.com/spf13/pflag"

	"github.com/DevSymphony/sym-checkstyle/internal/config"
	"github.com/DevSymphony/sym-checkstyle/internal/linter/checkstyle"
)

// addAuditFlags registers the flags shared by every command running an
// audit. They are bound to configuration keys through config.FlagKeys.
func addAuditFlags(fs *pflag.FlagSet) {
	fs.String("config-location", config.DefaultConfigLocation, "Checkstyle configuration: built-in name, file, or URL")
	fs.String("checkstyle-version", checkstyle.DefaultVersion, "Checkstyle release to run")
	fs.String("encoding", "", "source file encoding")
	fs.Bool("skip", false, "skip the audit")
	fs.Bool("include-tests", false, "audit test source directories too")
	fs.String("output-file", "", "result file (default: <build dir>/checkstyle-result.xml)")
	fs.String("format", config.DefaultOutputFormat, "result file format: xml, plain or sarif")
}
