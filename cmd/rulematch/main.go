/*
rulematch is a console utility checking messages against numbered production rules.
Usage is

	rulematch check [flags] <file>
	rulematch rules [flags] <file>
	rulematch gen [-o <name>] [-p <name>] [-n <name>] <file>

<file> contains a rule block, an empty line, and messages, one per line.

check prints the number of messages generated by rule 0, -v also lists every message
prefixed with "+" (valid) or "-" (invalid).

rules prints parsed rules and recognized self-referential rule shapes.

gen writes Go file defining the rule map, -o sets output file name (default is input
file name with .go suffix), -p sets package name (default is output directory name),
-n sets variable name (default is Rules).

Flag defaults are taken from RULEMATCH_* environment variables.
Exit code is 2 on usage or configuration error and 3 on input or grammar error.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/spf13/cobra"

	"github.com/ava12/rulematch"
	"github.com/ava12/rulematch/internal/config"
	"github.com/ava12/rulematch/matcher"
	"github.com/ava12/rulematch/ruledef"
	"github.com/ava12/rulematch/validator"
)

func main() {
	cfg, e := config.Load()
	if e != nil {
		fmt.Fprintln(os.Stderr, e.Error())
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	e = newRootCmd(cfg).ExecuteContext(ctx)
	if e != nil {
		fmt.Fprintln(os.Stderr, e.Error())
		stop()
		os.Exit(exitCode(e))
	}
}

func exitCode(e error) int {
	var re *rulematch.Error
	if errors.As(e, &re) && re.Code < rulematch.ConfigErrors {
		return 3
	}
	return 2
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:           "rulematch",
		Short:         "rulematch checks messages against numbered production rules",
		Long:          `rulematch parses a rule block and counts messages generated by rule 0.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfg.Strategy, "strategy", "s", cfg.Strategy, "matching strategy: first or backtrack")
	flags.IntVarP(&cfg.Workers, "workers", "w", cfg.Workers, "number of messages checked concurrently")
	flags.IntVar(&cfg.MaxInputLen, "max-len", cfg.MaxInputLen, "longest message (in characters) to examine, longer ones are invalid")
	flags.StringVar(&cfg.Trace, "trace", cfg.Trace, "trace level: debug, info or error")
	flags.BoolVar(&cfg.NFC, "nfc", cfg.NFC, "normalize rules and messages to Unicode NFC")
	flags.BoolVar(&cfg.RequireComposite, "require-composite", cfg.RequireComposite, "fail unless rule 0 is a composite of repetition and nested rules")

	checkCmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Count valid messages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), cmd.OutOrStdout(), cfg, args[0], verbose)
		},
	}
	checkCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "list every message with its verdict")

	rulesCmd := &cobra.Command{
		Use:   "rules <file>",
		Short: "Print parsed rules and recognized rule shapes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRules(cmd.OutOrStdout(), cfg, args[0])
		},
	}

	rootCmd.AddCommand(checkCmd, rulesCmd, newGenCmd(cfg))
	return rootCmd
}

func setup(cfg *config.Config, fileName string) (*ruledef.Input, *matcher.Matcher, error) {
	if e := cfg.Validate(); e != nil {
		return nil, nil, e
	}

	gtrace.CoreTracer = gologadapter.New()
	gtrace.CoreTracer.SetTraceLevel(cfg.TraceLevel())

	in, e := ruledef.ParseFile(fileName, cfg.RuleDefOptions()...)
	if e != nil {
		return nil, nil, e
	}

	opts, e := cfg.MatcherOptions()
	if e != nil {
		return nil, nil, e
	}

	m, e := matcher.New(in.Grammar, opts...)
	if e != nil {
		return nil, nil, e
	}
	return in, m, nil
}

func runCheck(ctx context.Context, out io.Writer, cfg *config.Config, fileName string, verbose bool) error {
	in, m, e := setup(cfg, fileName)
	if e != nil {
		return e
	}

	v := validator.New(m, validator.WithWorkers(cfg.Workers))
	verdicts, e := v.Evaluate(ctx, in.Messages)
	if e != nil {
		return e
	}

	count := 0
	for i, valid := range verdicts {
		mark := "-"
		if valid {
			mark = "+"
			count++
		}
		if verbose {
			fmt.Fprintf(out, "%s %s\n", mark, in.Messages[i])
		}
	}

	fmt.Fprintf(out, "%d of %d messages valid\n", count, len(in.Messages))
	return nil
}

func runRules(out io.Writer, cfg *config.Config, fileName string) error {
	in, m, e := setup(cfg, fileName)
	if e != nil {
		return e
	}

	fmt.Fprint(out, in.Grammar.String())
	for _, s := range matcher.Shapes(in.Grammar) {
		fmt.Fprintf(out, "# %s\n", s)
	}
	if c, ok := m.Composite(); ok {
		fmt.Fprintf(out, "# %s\n", c)
	}
	fmt.Fprintf(out, "# %d rules, %d messages, strategy %s\n", in.Grammar.Len(), len(in.Messages), m.Strategy())
	return nil
}
