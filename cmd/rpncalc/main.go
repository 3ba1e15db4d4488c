// Command rpncalc evaluates arithmetic expressions.
//
// Expressions are taken from the arguments, or one per line from a file or
// standard input. A failed expression prints its error and evaluation
// continues with the next one.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/rpncalc"
)

// options holds the flags of the root command.
type options struct {
	inname  string
	verb    string
	variant string
	config  string
	prec    uint
	echo    bool
	verbose bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:   "rpncalc [flags] [expression...]",
		Short: "Evaluate infix arithmetic expressions",
		Long: `rpncalc evaluates infix arithmetic expressions with + - * / and
right-associative ^. Depending on the variant, it also understands the
postfix factorial 5!, the prefix functions log (base 2) and exp, and integer
division 7//2.

With no arguments, expressions are read one per line from standard input.`,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, &o, args)
		},
	}
	f := cmd.PersistentFlags()
	f.StringVar(&o.variant, "variant", "default", "variant name: default, basic, scientific, standard, or one from --config")
	f.StringVarP(&o.config, "config", "c", "", "YAML file defining additional variants")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "log each stage of evaluation")
	cmd.Flags().StringVar(&o.inname, "in", "", "input file, one expression per line (default stdin if no args given)")
	cmd.Flags().StringVar(&o.verb, "fmt", "%g", "result formatting string")
	cmd.Flags().UintVarP(&o.prec, "prec", "p", 0, "precision of calculations in bits (0 for float64)")
	cmd.Flags().BoolVar(&o.echo, "echo", false, "print each expression in postfix form")
	cmd.AddCommand(newVariantsCmd(&o))
	return cmd
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadVariants returns the presets, plus the variants in the config file if
// one is named.
func loadVariants(config string) (map[string]rpncalc.Variant, error) {
	if config == "" {
		return rpncalc.Presets(), nil
	}
	f, err := os.Open(config)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	vs, err := rpncalc.LoadVariants(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", config, err)
	}
	return vs, nil
}

func run(cmd *cobra.Command, o *options, args []string) error {
	log := newLogger(cmd.ErrOrStderr(), o.verbose)
	vs, err := loadVariants(o.config)
	if err != nil {
		return err
	}
	v, ok := vs[o.variant]
	if !ok {
		return fmt.Errorf("unknown variant %q", o.variant)
	}
	log.Debug("variant selected", "name", o.variant, "functions", v.Functions.Names(), "integer_division", v.IntegerDivision, "bounds", v.Bounds.String())

	exprs := args
	in, err := infile(cmd.InOrStdin(), o.inname, len(args) == 0)
	if err != nil {
		return err
	}
	if in != nil {
		defer in.Close()
		lines, err := readLines(in)
		if err != nil {
			return err
		}
		exprs = append(lines, exprs...)
	}

	w := cmd.OutOrStdout()
	verb := o.verb + "\n"
	for _, src := range exprs {
		rpn, err := v.Compile(src)
		if err != nil {
			log.Debug("rejected", "expr", src, "err", err)
			fmt.Fprintln(w, err)
			continue
		}
		log.Debug("converted", "expr", src, "rpn", rpncalc.FormatRPN(rpn))
		if o.echo {
			fmt.Fprintf(w, "%s : ", rpncalc.FormatRPN(rpn))
		}
		var r interface{}
		if o.prec == 0 {
			r, err = rpncalc.EvalRPN(rpn)
		} else {
			r, err = rpncalc.EvalRPNBig(rpn, o.prec)
		}
		if err != nil {
			log.Debug("evaluation failed", "expr", src, "err", err)
			fmt.Fprintln(w, err)
			continue
		}
		log.Debug("evaluated", "expr", src, "result", r)
		fmt.Fprintf(w, verb, r)
	}
	return nil
}

// infile opens the named input. "-" means stdin, as does no name when std is
// true. The result is nil if there is no input to read.
func infile(stdin io.Reader, inname string, std bool) (io.ReadCloser, error) {
	switch {
	case inname != "" && inname != "-":
		return os.Open(inname)
	case inname == "-", std:
		return io.NopCloser(stdin), nil
	}
	return nil, nil
}

// readLines returns the non-blank lines of r.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if s := strings.TrimSpace(sc.Text()); s != "" {
			lines = append(lines, s)
		}
	}
	return lines, sc.Err()
}
