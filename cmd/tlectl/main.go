// Command tlectl inspects and builds two-line element sets from the shell.
package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/unit"

	"github.com/turkmvc/satmad/internal/angle"
	"github.com/turkmvc/satmad/internal/gravity"
	"github.com/turkmvc/satmad/internal/propagation"
	"github.com/turkmvc/satmad/internal/tle"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var gravityName string

	root := &cobra.Command{
		Use:          "tlectl",
		Short:        "Inspect and build two-line element sets",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&gravityName, "gravity", gravity.Default.Name, "gravity profile (wgs72, wgs72old, wgs84)")

	profile := func() (gravity.Profile, error) {
		return gravity.Lookup(gravityName)
	}

	root.AddCommand(newInfoCmd(profile), newGeoCmd(profile), newPropagateCmd(profile))
	return root
}

func readElementSet(path string, p gravity.Profile) (*tle.TLE, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	t, err := tle.Parse(string(data), tle.WithProfile(p))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func newInfoCmd(profile func() (gravity.Profile, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "Print the elements and derived quantities of an element set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := profile()
			if err != nil {
				return err
			}
			t, err := readElementSet(args[0], p)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			deg := func(a unit.Angle) string { return fmt.Sprintf("%.4f°", angle.ToDegrees(a)) }
			rows := [][2]string{
				{"name", t.Name()},
				{"catalog number", fmt.Sprintf("%05d", t.SatNumber())},
				{"classification", t.Classification()},
				{"designator", t.IntlDesignator()},
				{"epoch", t.Epoch().Format(time.RFC3339Nano)},
				{"inclination", deg(t.Inclination())},
				{"raan", deg(t.RAAN())},
				{"eccentricity", fmt.Sprintf("%.7f", t.Eccentricity())},
				{"arg perigee", deg(t.ArgPerigee())},
				{"mean anomaly", deg(t.MeanAnomaly())},
				{"mean motion", fmt.Sprintf("%.8f rev/day", t.MeanMotionRevPerDay())},
				{"bstar", fmt.Sprintf("%g", t.BStar())},
				{"n dot", fmt.Sprintf("%g", t.NDot())},
				{"n dotdot", fmt.Sprintf("%g", t.NDotDot())},
				{"revolution", fmt.Sprintf("%d", t.RevNr())},
				{"element set", fmt.Sprintf("%d", t.ElNr())},
				{"gravity", t.Profile().Name},
				{"period", fmt.Sprintf("%.4f min", t.Period().Minutes())},
				{"semi-major axis", fmt.Sprintf("%.3f km", float64(t.SemiMajorAxis())/1000)},
				{"node rate", fmt.Sprintf("%.4f°/day", t.NodeRotationRate().DegreesPerDay())},
				{"perigee rate", fmt.Sprintf("%.4f°/day", t.ArgPerigeeRotationRate().DegreesPerDay())},
			}
			for _, r := range rows {
				fmt.Fprintf(w, "%s\t%s\n", r[0], r[1])
			}
			return w.Flush()
		},
	}
}

func newGeoCmd(profile func() (gravity.Profile, error)) *cobra.Command {
	var (
		epoch     string
		longitude float64
		name      string
		satNumber int
		intl      string
	)

	cmd := &cobra.Command{
		Use:   "geo",
		Short: "Print a geostationary element set over a longitude",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := profile()
			if err != nil {
				return err
			}
			at := time.Now().UTC()
			if epoch != "" {
				if at, err = time.Parse(time.RFC3339, epoch); err != nil {
					return fmt.Errorf("invalid --epoch: %w", err)
				}
			}

			opts := []tle.Option{tle.WithName(name), tle.WithProfile(p), tle.WithSatNumber(satNumber)}
			if intl != "" {
				opts = append(opts, tle.WithIntlDesignator(intl))
			}
			t, err := tle.NewGeo(at, angle.Deg(longitude), opts...)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.String())
			return nil
		},
	}

	cmd.Flags().StringVar(&epoch, "epoch", "", "epoch in RFC 3339 (default now)")
	cmd.Flags().Float64Var(&longitude, "longitude", 0, "east longitude in degrees")
	cmd.Flags().StringVar(&name, "name", "", "satellite name")
	cmd.Flags().IntVar(&satNumber, "sat-number", tle.DefaultSatNumber, "catalog number")
	cmd.Flags().StringVar(&intl, "intl", "", "international designator")
	return cmd
}

func newPropagateCmd(profile func() (gravity.Profile, error)) *cobra.Command {
	var (
		at    string
		steps int
		step  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "propagate <file>",
		Short: "Print TEME and ECEF positions from an element set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := profile()
			if err != nil {
				return err
			}
			t, err := readElementSet(args[0], p)
			if err != nil {
				return err
			}
			start := t.Epoch()
			if at != "" {
				if start, err = time.Parse(time.RFC3339, at); err != nil {
					return fmt.Errorf("invalid --at: %w", err)
				}
			}

			prop, err := propagation.NewSGP4Propagator(t)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "time\tteme x km\tteme y km\tteme z km\tecef x km\tecef y km\tecef z km")
			for i := 0; i < steps; i++ {
				st, err := prop.PropagateState(start.Add(time.Duration(i) * step))
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\n",
					st.At.Format(time.RFC3339),
					st.TEME.X, st.TEME.Y, st.TEME.Z,
					st.ECEF.X/1000, st.ECEF.Y/1000, st.ECEF.Z/1000,
				)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "start time in RFC 3339 (default epoch)")
	cmd.Flags().IntVar(&steps, "steps", 1, "number of states")
	cmd.Flags().DurationVar(&step, "step", time.Minute, "interval between states")
	return cmd
}
