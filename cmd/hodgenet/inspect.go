// SPDX-License-Identifier: MIT
package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/hodgenet/hodge"
)

func newInspectCmd(a *app) *cobra.Command {
	var heatT float64
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print simplex counts, Betti numbers and spectral diagnostics per level",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			hc, err := a.complex(cmd.Context())
			if err != nil {
				return err
			}

			return printInspect(cmd, hc, heatT)
		},
	}
	cmd.Flags().Float64Var(&heatT, "heat-t", 1.0, "Diffusion time for the heat-kernel trace")

	return cmd
}

func printInspect(cmd *cobra.Command, hc *hodge.Complex, heatT float64) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "complex %s\n", hc.ID())
	chi, exact := hc.EulerFromBetti()
	fmt.Fprintf(out, "euler characteristic %d (from betti %d, exact=%t)\n", hc.EulerCharacteristic(), chi, exact)
	fmt.Fprintf(out, "connected components %d\n\n", len(hc.Simplicial().Components()))

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "level\tcount\tbetti\tmodes\ttier\tresid\tgap\theat\tdim\tdefect")
	for k := 0; k <= hc.MaxDim(); k++ {
		inv, err := hc.Betti(k)
		if err != nil {
			return err
		}
		e, err := hc.Eigenpairs(k)
		if err != nil {
			return err
		}
		betti := fmt.Sprint(inv.Count)
		if inv.Truncated {
			betti = ">=" + betti
		}
		gap := "-"
		switch g, err := hc.SpectralGap(k); {
		case err == nil:
			gap = fmt.Sprintf("%.4g", g)
		case !errors.Is(err, hodge.ErrNoSpectralGap):
			return err
		}
		defect := "-"
		if k >= 1 {
			if d, err := hc.BoundaryDefect(k); err == nil {
				defect = fmt.Sprintf("%.1e", d)
			}
		}
		resid, err := hc.EigenResidual(k)
		if err != nil {
			return err
		}
		values := e.Values()
		fmt.Fprintf(tw, "%d\t%d\t%s\t%d\t%s\t%.1e\t%s\t%.4g\t%.3g\t%s\n",
			k, hc.Count(k), betti, e.Modes(), e.Tier(), resid, gap,
			hodge.HeatKernelTrace(values, heatT), hodge.SpectralDimension(values), defect)
	}

	return tw.Flush()
}
