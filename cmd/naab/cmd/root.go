// Package cmd implements the `naab` command line, one file per
// subcommand: a root.go carrying persistent flags and a version
// template, and a run/check/parse verb per file.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/b-macker/NAAb-sub013/internal/config"
)

var (
	// Version information, set by build flags.
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	verbose    bool
	noColor    bool
	cacheDir   string
	modulePath []string
)

var rootCmd = &cobra.Command{
	Use:   "naab",
	Short: "NAAb scripting language interpreter",
	Long: `naab runs NAAb programs: a dynamically-executed, statically-annotated
scripting language with inline polyglot blocks, module imports, and a
tree-walking evaluator over a tagged value union.`,
	Version: Version,
	// Subcommands print their own diagnostics (rendered NaabError reports,
	// parser error lists); cobra's default "Error: ..." + usage dump would
	// just duplicate or clutter that output.
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose diagnostics (GC cycles, module loads, cache activity)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable ANSI color in error reports (same as NAAB_COLOR=0)")
	rootCmd.PersistentFlags().StringVar(&cacheDir, "cache-dir", "", "inline-code cache root (overrides NAAB_CACHE_DIR)")
	rootCmd.PersistentFlags().StringArrayVar(&modulePath, "module-path", nil, "module search path entry, repeatable (overrides NAAB_MODULE_PATH)")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}

// loadConfig resolves a config.Config from the persistent flags, layered
// over NAAB_* environment variables and ~/.naab/config.yaml per
// internal/config's precedence.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	overrides := config.Overrides{
		CacheDir:   cacheDir,
		ModulePath: modulePath,
	}
	if cmd.Flags().Changed("no-color") {
		color := !noColor
		overrides.Color = &color
	}
	return config.Load(overrides)
}
