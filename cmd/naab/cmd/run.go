package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/b-macker/NAAb-sub013/internal/interp"
	"github.com/b-macker/NAAb-sub013/internal/naaberr"
	"github.com/b-macker/NAAb-sub013/internal/value"
)

var (
	evalExpr  string
	showCache bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a NAAb program",
	Long: `Execute a NAAb program from a file or inline expression.

Examples:
  # Run a script file
  naab run script.naab

  # Evaluate inline code
  naab run -e "print(1 + 2);"

  # Show inline-code cache hit/miss counts after execution
  naab run --show-cache script.naab`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from a file")
	runCmd.Flags().BoolVar(&showCache, "show-cache", false, "print inline-code cache hit/miss counts after execution")
}

func runScript(cmd *cobra.Command, args []string) error {
	var filename string
	if len(args) == 1 {
		filename = args[0]
	} else if evalExpr == "" {
		return fmt.Errorf("either provide a file path or use -e flag for inline code")
	}

	source, name, err := interp.ReadSource(filename, evalExpr)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	it, err := interp.New(cfg, os.Stdout)
	if err != nil {
		return fmt.Errorf("initializing interpreter: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "naab: running %s (module path %v, cache %s)\n", name, cfg.ModulePath, cfg.CacheDir)
	}

	prog, parseReport := it.Parse(source, name)
	if prog == nil {
		fmt.Fprint(os.Stderr, parseReport)
		return &exitCodeError{code: exitParseFailure}
	}

	env := value.NewEnvironment()
	it.Evaluator.RegisterBuiltins(env)
	_, runErr := it.Evaluator.Run(context.Background(), prog, env)

	if showCache {
		stats := it.Cache.Stats()
		fmt.Fprintf(os.Stderr, "cache: %d hit(s), %d miss(es)\n", stats.Hits, stats.Misses)
	}

	if runErr != nil {
		it.Reporter.InScopeNames = nil
		code := exitUncaughtException
		if ne, ok := runErr.(*naaberr.NaabError); ok {
			if ne.Kind == naaberr.TypeInternalError {
				code = exitInternalViolation
			}
			fmt.Fprint(os.Stderr, it.Reporter.Render(ne, source, name))
		} else {
			fmt.Fprintln(os.Stderr, runErr)
		}
		return &exitCodeError{code: code}
	}
	return nil
}
