// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/hodgenet/hodge"
	"github.com/katalvlaran/hodgenet/sfno"
	"github.com/katalvlaran/hodgenet/tensor"
)

func newForwardCmd(a *app) *cobra.Command {
	var (
		batch int
		seed  int64
		trace bool
	)
	cmd := &cobra.Command{
		Use:   "forward",
		Short: "Run the spectral network over random per-level features",
		Long: `Builds the configured complex and network, draws standard-normal features of
shape batch × n_k × in_dims[k] for every level and prints per-level output
statistics. With --trace, the intermediate stages are summarised too.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if batch < 1 {
				return fmt.Errorf("--batch %d: must be >= 1", batch)
			}
			ctx := cmd.Context()
			hc, err := a.complex(ctx)
			if err != nil {
				return err
			}
			scfg, err := a.cfg.SFNOConfig(hc.MaxDim()+1, a.logger)
			if err != nil {
				return err
			}
			net, err := sfno.NewNetwork(scfg)
			if err != nil {
				return err
			}
			xs, err := randomFeatures(hc, net.Config().InDims, batch, seed)
			if err != nil {
				return err
			}
			ys, tr, err := net.ForwardTrace(ctx, xs, hc)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "network: %d levels, %d layers, %d parameters, filter %s\n",
				net.Levels(), net.Config().Layers, net.NumParams(), net.Config().Filter)
			for k, y := range ys {
				fmt.Fprintf(out, "level %d: %s %s\n", k, y.Shape(), summarize(y))
			}
			if trace {
				for i, hs := range tr.Layers {
					fmt.Fprintf(out, "layer %d: %s\n", i, summarize(hs[0]))
				}
				tags := make([]string, 0, len(tr.Branches))
				for tag := range tr.Branches {
					tags = append(tags, tag)
				}
				sort.Strings(tags)
				for _, tag := range tags {
					fmt.Fprintf(out, "branch %s: %s\n", tag, summarize(tr.Branches[tag][0]))
				}
			}

			return nil
		},
	}
	cmd.Flags().IntVarP(&batch, "batch", "b", 1, "Batch size")
	cmd.Flags().Int64Var(&seed, "input-seed", 1, "Seed for the random input features")
	cmd.Flags().BoolVar(&trace, "trace", false, "Summarise every intermediate stage")

	return cmd
}

func randomFeatures(hc *hodge.Complex, in []int, batch int, seed int64) ([]*tensor.Tensor, error) {
	rng := rand.New(rand.NewSource(seed))
	xs := make([]*tensor.Tensor, len(in))
	for k := range in {
		x, err := tensor.New(batch, hc.Count(k), in[k])
		if err != nil {
			return nil, err
		}
		xs[k] = tensor.Apply(x, func(float64) float64 { return rng.NormFloat64() })
	}

	return xs, nil
}

// summarize reports mean and max |v| of a tensor.
func summarize(x *tensor.Tensor) string {
	data := x.Data()
	if len(data) == 0 {
		return "empty"
	}
	var sum, peak float64
	for _, v := range data {
		sum += v
		peak = math.Max(peak, math.Abs(v))
	}

	return fmt.Sprintf("mean=%.4g max|v|=%.4g", sum/float64(len(data)), peak)
}
