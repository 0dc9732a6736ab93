package cmd

import (
	"fmt"
	"os"

	"github.com/paracl-go/paracl/pkg/paracl"
	"github.com/spf13/cobra"
)

var (
	evalExpr  string
	dumpAST   bool
	trace     bool
	noAnalyze bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a ParaCL file or expression",
	Long: `Execute a ParaCL program from a file or inline expression.

Examples:
  # Run a script file
  paracl run program.pcl

  # Evaluate an inline expression
  paracl run -e "print 2 + 2;"

  # Run with AST dump (for debugging)
  paracl run --dump-ast program.pcl

  # Skip the static analyzer and go straight to execution
  paracl run --no-analyze program.pcl`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed AST (for debugging)")
	runCmd.Flags().BoolVar(&trace, "trace", false, "trace execution (for debugging)")
	runCmd.Flags().BoolVar(&noAnalyze, "no-analyze", false, "skip static semantic analysis before execution")
}

func runScript(_ *cobra.Command, args []string) error {
	var input, filename string

	switch {
	case evalExpr != "":
		input = evalExpr
		filename = "<eval>"
	case len(args) == 1:
		filename = args[0]
		content, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", filename, err)
		}
		input = string(content)
	default:
		return fmt.Errorf("either provide a file path or use -e flag for inline code")
	}

	prog, err := paracl.Parse(input, filename)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return fmt.Errorf("parsing failed")
	}

	if dumpAST {
		fmt.Println("AST:")
		fmt.Println(prog.String())
		fmt.Println()
	}

	if !noAnalyze {
		if err := paracl.Analyze(prog, input, filename); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return fmt.Errorf("semantic analysis failed")
		}
	} else if verbose {
		fmt.Fprintln(os.Stderr, "static analysis disabled")
	}

	if trace {
		fmt.Fprintf(os.Stderr, "[trace] executing %s\n", filename)
	}

	e := paracl.New()
	if err := e.Execute(prog, input, filename); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return fmt.Errorf("execution failed")
	}

	return nil
}
