// Command hgchurn runs a seeded random mutation workload against a hypergraph
// and validates its invariants after every step.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/hupe1980/hypergraph"
	"github.com/hupe1980/hypergraph/internal/churn"
	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

// report is the result of a run command.
type report struct {
	Seed    int64                        `json:"seed"`
	Policy  string                       `json:"policy"`
	Stats   churn.Stats                  `json:"stats"`
	Metrics hypergraph.BasicMetricsStats `json:"metrics"`
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hgchurn",
		Short: "Randomized invariant checker for the hypergraph store",
		Long: `hgchurn drives a hypergraph through a seeded sequence of random
mutations and validates every structural invariant along the way.

A failing seed reproduces deterministically.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().Bool("debug", false, "Log every mutation to stderr")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{"version": version})
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "hgchurn version %s\n", version)
			return err
		},
	}
}

func newRunCmd() *cobra.Command {
	cfg := churn.DefaultConfig

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a random workload and validate invariants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			debug, _ := cmd.Flags().GetBool("debug")
			policyName, _ := cmd.Flags().GetString("policy")
			threshold, _ := cmd.Flags().GetInt("parallel-threshold")

			policy, err := hypergraph.ParseCollisionPolicy(policyName)
			if err != nil {
				return err
			}

			logger := hypergraph.NoopLogger()
			if debug {
				logger = hypergraph.NewTextLogger(slog.LevelDebug)
			}

			metrics := &hypergraph.BasicMetricsCollector{}
			g := hypergraph.New[int, int](func(o *hypergraph.Options) {
				o.Logger = logger
				o.MetricsCollector = metrics
				o.CollisionPolicy = policy
				o.ParallelThreshold = threshold
			})

			stats, err := churn.Run(g, cfg)
			if err != nil {
				return fmt.Errorf("seed %d: %w", cfg.Seed, err)
			}

			r := report{
				Seed:    cfg.Seed,
				Policy:  policy.String(),
				Stats:   stats,
				Metrics: metrics.GetStats(),
			}
			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(r)
			}
			return printReport(cmd, r)
		},
	}

	cmd.Flags().Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed")
	cmd.Flags().IntVar(&cfg.Ops, "ops", cfg.Ops, "Number of random operations")
	cmd.Flags().IntVar(&cfg.Vertices, "vertices", cfg.Vertices, "Number of initial vertices")
	cmd.Flags().IntVar(&cfg.MaxArity, "max-arity", cfg.MaxArity, "Maximum hyperedge length")
	cmd.Flags().IntVar(&cfg.Weights, "weights", cfg.Weights, "Number of distinct weights")
	cmd.Flags().IntVar(&cfg.ValidateEvery, "validate-every", cfg.ValidateEvery, "Validate after every n-th operation (0 = only at the end)")
	cmd.Flags().String("policy", hypergraph.CollisionReject.String(), "Collision policy (reject|merge)")
	cmd.Flags().Int("parallel-threshold", hypergraph.DefaultParallelThreshold, "Touched hyperedges before cascade planning runs in parallel (0 = never)")

	return cmd
}

func printReport(cmd *cobra.Command, r report) error {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "seed %d, policy %s: %d ops OK\n", r.Seed, r.Policy, r.Stats.Ops)
	fmt.Fprintf(out, "final: %d vertices, %d hyperedges, %d rejected\n",
		r.Stats.Vertices, r.Stats.Hyperedges, r.Stats.Rejected)

	ops := make([]string, 0, len(r.Stats.PerOp))
	for op := range r.Stats.PerOp {
		ops = append(ops, op)
	}
	slices.Sort(ops)
	for _, op := range ops {
		fmt.Fprintf(out, "  %-26s %d\n", op, r.Stats.PerOp[op])
	}

	_, err := fmt.Fprintf(out, "cascades: %d (rewritten %d, removed %d, merged %d)\n",
		r.Metrics.CascadeCount, r.Metrics.CascadeRewritten, r.Metrics.CascadeRemoved, r.Metrics.MergeCount)
	return err
}
