package main

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/2x3systems/gopolya/gopolya"
	"github.com/2x3systems/gopolya/libpolya"
	"github.com/2x3systems/gopolya/libpolya/actions"
	"github.com/2x3systems/gopolya/libpolya/catalog"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
	"github.com/spf13/cobra"
)

// newRootCmd returns the gopolya command tree; the effective DriverConfig is loaded into *cfg before any command runs.
func newRootCmd(klogFlags *flag.FlagSet, cfg *DriverConfig) *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "gopolya",
		Short: "Counts colorings up to symmetry",
		Long: `gopolya counts the k-colorings of a finite domain up to the action of a permutation group
(Burnside's lemma), along with the colorings that have no symmetry at all.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			*cfg, err = LoadConfig(configPath)
			if err != nil {
				return err
			}
			return cfg.ApplyFlags(cmd.Flags())
		},
	}

	flags := rootCmd.PersistentFlags()
	if klogFlags != nil {
		flags.AddGoFlagSet(klogFlags)
	}
	flags.StringVar(&configPath, "config", "", "YAML file of command defaults")
	flags.Int("k", gopolya.DefaultColors, "number of colors")
	flags.Int("workers", 0, "goroutines used by each asymmetric count (<= 1 is sequential)")

	rootCmd.AddCommand(newTableCmd(cfg))
	rootCmd.AddCommand(newCountCmd(cfg))
	rootCmd.AddCommand(newScriptCmd())
	return rootCmd
}

func newTableCmd(cfg *DriverConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Prints coloring counts of a group action over a range of sizes",
		Long: `For each size n in [from, to], prints a row:

    n asymmetric_orbits orbits

where orbits is the number of k-colorings up to symmetry and asymmetric_orbits is the number of those
having no symmetry other than the identity.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTable(cmd, cfg)
		},
	}
	flags := cmd.Flags()
	flags.String("action", "grid", fmt.Sprintf("group action to count (one of %v)", actions.Names()))
	flags.Int("from", 2, "first size")
	flags.Int("to", 8, "last size")
	flags.String("catalog", "", "catalog db pathname used to look up and store counts")
	flags.Bool("header", false, "print a column header")
	flags.Bool("order", false, "print the group order")
	flags.Bool("asymmetric", false, "print the asymmetric coloring count")
	return cmd
}

func runTable(cmd *cobra.Command, cfg *DriverConfig) error {
	act, err := actions.Lookup(cfg.Action)
	if err != nil {
		return err
	}

	from := cfg.From
	if from < act.MinSize() {
		klog.Infof("%s requires n >= %d, starting there", act.Name(), act.MinSize())
		from = act.MinSize()
	}

	catCtx := gopolya.NewCatalogContext()
	defer func() {
		catCtx.Close()
		<-catCtx.Done()
	}()

	var cat gopolya.Catalog
	if len(cfg.Catalog) > 0 {
		cat, err = catalog.OpenCatalog(catCtx, gopolya.CatalogOpts{
			DbPathName: cfg.Catalog,
		})
		if err != nil {
			return errors.Wrapf(err, "failed to open catalog %q", cfg.Catalog)
		}
	}

	ctx := cmd.Context()
	counter := libpolya.Counter{
		Workers: cfg.Workers,
	}

	stream := gopolya.EnumTallies(act, from, cfg.To, cfg.Colors)
	if cat != nil {
		stream = stream.FillFrom(cat)
	}
	stream = stream.Count(func(T *gopolya.Tally) error {
		return counter.CountTally(ctx, T)
	})
	if cat != nil {
		stream = stream.AddTo(cat)
	}

	startTime := time.Now()
	count, err := stream.Print(cmd.OutOrStdout(), cfg.PrintOpts()).PullAll()
	klog.V(1).Infof("%d rows in %v", count, time.Since(startTime))
	return err
}

func newCountCmd(cfg *DriverConfig) *cobra.Command {
	var (
		expr     string
		n        int
		validate bool
		terms    bool
	)

	cmd := &cobra.Command{
		Use:   "count",
		Short: "Counts the colorings of a single group",
		Long: `Counts the colorings of a group given in cycle notation, e.g.

    gopolya count --expr "e; (0 1 2 3); (0 2)(1 3); (0 3 2 1)"

or of a group action at a single size, e.g.

    gopolya count --action bracelet --n 6 --k 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				G   *gopolya.Group
				err error
			)
			if len(expr) > 0 {
				G, err = libpolya.ParseGroup(expr, n)
			} else {
				var act actions.Action
				if act, err = actions.Lookup(cfg.Action); err == nil {
					G, err = act.Group(n)
				}
			}
			if err != nil {
				return err
			}
			if validate {
				if err = libpolya.ValidateGroup(G); err != nil {
					return err
				}
			}
			return writeCounts(cmd, cfg, G, terms)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&expr, "expr", "", "group in cycle notation (elements separated by ';')")
	flags.String("action", "grid", fmt.Sprintf("group action, if no --expr is given (one of %v)", actions.Names()))
	flags.IntVar(&n, "n", 0, "domain size (0 infers it from --expr)")
	flags.BoolVar(&validate, "validate", true, "check that the group is closed and has no duplicates")
	flags.BoolVar(&terms, "terms", false, "also print the cycle index polynomial")
	return cmd
}

func writeCounts(cmd *cobra.Command, cfg *DriverConfig, G *gopolya.Group, withTerms bool) error {
	T := &gopolya.Tally{
		TallyKey: gopolya.TallyKey{
			Action:     G.Name,
			DomainSize: G.DomainSize,
			Colors:     cfg.Colors,
		},
		Group: G,
	}
	counter := libpolya.Counter{
		Workers: cfg.Workers,
	}
	if err := counter.CountTally(cmd.Context(), T); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "group:             %s\n", G.Name)
	fmt.Fprintf(out, "n:                 %d\n", T.DomainSize)
	fmt.Fprintf(out, "k:                 %d\n", T.Colors)
	fmt.Fprintf(out, "order:             %d\n", T.Order)
	fmt.Fprintf(out, "orbits:            %v\n", T.Orbits)
	fmt.Fprintf(out, "asymmetric:        %v\n", T.Asymmetric)
	fmt.Fprintf(out, "asymmetric_orbits: %v\n", T.AsymmetricOrbits())

	if withTerms {
		terms, err := libpolya.CycleIndexTerms(G)
		if err != nil {
			return err
		}
		io.WriteString(out, "cycle_index:       ")
		io.WriteString(out, libpolya.FormatCycleIndex(terms, G.Order()))
		io.WriteString(out, "\n")
	}
	return nil
}

func newScriptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "script [file.py]",
		Short: "Runs a gpython script with the polya module, or starts a REPL if no script is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pathname := ""
			if len(args) > 0 {
				pathname = args[0]
			}
			return runGPython(pathname)
		},
	}
}
