// Command zeries drives the zeries sequence engine from the command line:
// constrained generation via flags or a YAML request file, plus the INSTR /
// RINSTR substring search extension.
package main

import (
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/zeries/zeries/internal/DS"
	"github.com/zeries/zeries/internal/IS"
	"github.com/zeries/zeries/internal/log"

	"github.com/zeries/zeries/ext/instr"
	"github.com/zeries/zeries/pkg/zeries"
)

var verbose bool

func main() {
	root := &cobra.Command{
		Use:           "zeries",
		Short:         "Constrained arithmetic-progression sequence engine",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(log.LevelDebug)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newGenCmd())
	root.AddCommand(newRunCmd())
	root.AddCommand(newSearchCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newGenCmd() *cobra.Command {
	var (
		step, base         int64
		gt, ge, lt, le, eq int64
		offset, limit      int64
		desc, countOnly    bool
	)
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Enumerate the sequence under the given constraints",
		RunE: func(cmd *cobra.Command, args []string) error {
			var cons []zeries.Constraint
			flags := cmd.Flags()
			if flags.Changed("step") {
				cons = append(cons, zeries.Constraint{Column: 1, Op: DS.OpEQ, Value: step})
			}
			if flags.Changed("base") {
				cons = append(cons, zeries.Constraint{Column: 2, Op: DS.OpEQ, Value: base})
			}
			if flags.Changed("gt") {
				cons = append(cons, zeries.Constraint{Column: 0, Op: DS.OpGT, Value: gt})
			}
			if flags.Changed("ge") {
				cons = append(cons, zeries.Constraint{Column: 0, Op: DS.OpGE, Value: ge})
			}
			if flags.Changed("lt") {
				cons = append(cons, zeries.Constraint{Column: 0, Op: DS.OpLT, Value: lt})
			}
			if flags.Changed("le") {
				cons = append(cons, zeries.Constraint{Column: 0, Op: DS.OpLE, Value: le})
			}
			if flags.Changed("eq") {
				cons = append(cons, zeries.Constraint{Column: 0, Op: DS.OpEQ, Value: eq})
			}
			if flags.Changed("offset") {
				cons = append(cons, zeries.Constraint{Op: DS.OpOffset, Value: offset})
			}
			if flags.Changed("limit") {
				cons = append(cons, zeries.Constraint{Op: DS.OpLimit, Value: limit})
			}
			order := zeries.OrderAsc
			if desc {
				order = zeries.OrderDesc
			}
			rows, err := scanZeries(cons, order)
			if err != nil {
				return err
			}
			if countOnly {
				fmt.Fprintln(cmd.OutOrStdout(), len(rows))
				return nil
			}
			return formatRows(cmd.OutOrStdout(), rows)
		},
	}
	cmd.Flags().Int64Var(&step, "step", 1, "step magnitude (sign ignored)")
	cmd.Flags().Int64Var(&base, "base", 0, "congruence base")
	cmd.Flags().Int64Var(&gt, "gt", 0, "value > bound")
	cmd.Flags().Int64Var(&ge, "ge", 0, "value >= bound")
	cmd.Flags().Int64Var(&lt, "lt", 0, "value < bound")
	cmd.Flags().Int64Var(&le, "le", 0, "value <= bound")
	cmd.Flags().Int64Var(&eq, "eq", 0, "value = bound")
	cmd.Flags().Int64Var(&offset, "offset", 0, "skip the first N rows")
	cmd.Flags().Int64Var(&limit, "limit", 0, "emit at most N rows")
	cmd.Flags().BoolVar(&desc, "desc", false, "enumerate descending")
	cmd.Flags().BoolVar(&countOnly, "count", false, "print only the row count")
	return cmd
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run FILE",
		Short: "Execute a YAML request document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := loadRequest(args[0])
			if err != nil {
				return err
			}
			cons, order, err := req.constraints()
			if err != nil {
				return err
			}
			rows, err := scanZeries(cons, order)
			if err != nil {
				return err
			}
			return formatRows(cmd.OutOrStdout(), rows)
		},
	}
}

func newSearchCmd() *cobra.Command {
	var (
		reverse bool
		start   int64
		asBytes bool
		asUTF16 bool
	)
	cmd := &cobra.Command{
		Use:   "search HAYSTACK NEEDLE",
		Short: "Find a substring (forward or backward BMH search)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			haystack, needle := args[0], args[1]
			if start == 0 {
				start = 1
				if reverse {
					start = math.MaxInt64
				}
			}
			var pos int64
			var err error
			switch {
			case asBytes:
				if reverse {
					pos = instr.RBytes([]byte(haystack), []byte(needle), start)
				} else {
					pos = instr.Bytes([]byte(haystack), []byte(needle), start)
				}
			case asUTF16:
				var hs, nd []byte
				if hs, err = instr.EncodeUTF16(haystack); err != nil {
					return err
				}
				if nd, err = instr.EncodeUTF16(needle); err != nil {
					return err
				}
				if reverse {
					pos, err = instr.RUTF16(hs, nd, start)
				} else {
					pos, err = instr.UTF16(hs, nd, start)
				}
			default:
				if reverse {
					pos, err = instr.RText(haystack, needle, start)
				} else {
					pos, err = instr.Text(haystack, needle, start)
				}
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), pos)
			return nil
		},
	}
	cmd.Flags().BoolVar(&reverse, "reverse", false, "search backward (RINSTR)")
	cmd.Flags().Int64Var(&start, "start", 0, "1-based start position (0 = default)")
	cmd.Flags().BoolVar(&asBytes, "bytes", false, "byte positions over raw bytes")
	cmd.Flags().BoolVar(&asUTF16, "utf16", false, "search over UTF-16LE code units")
	return cmd
}

func scanZeries(cons []zeries.Constraint, order zeries.Order) ([]zeries.Row, error) {
	mod, ok := IS.GetVTabModule("zeries")
	if !ok {
		return nil, zeries.NewError(zeries.ZDB_NOTFOUND, "zeries module not registered")
	}
	vt, err := mod.Connect(nil)
	if err != nil {
		return nil, err
	}
	defer vt.Disconnect()
	return zeries.Scan(vt, cons, order)
}
