package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/onbuch/tutor"
	"github.com/onbuch/tutor/expr"
	"github.com/onbuch/tutor/goldmark"
	tutorjson "github.com/onbuch/tutor/json"
)

type plotCommander struct {
	domain tutor.Domain
	stride int
	json   bool
}

func newPlotCmd() *cobra.Command {
	cmder := &plotCommander{domain: tutor.DefaultDomain}

	cmd := &cobra.Command{
		Use:   "plot <expression>...",
		Short: "Sample a function of x and print its points",
		Example: `  onbuch plot "x^2 - 4"
  onbuch plot --min 0 --max 6.283 --steps 20 "sin(x)"
  onbuch plot --json "1/x"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd.OutOrStdout(), strings.Join(args, " "))
		},
	}

	cmd.Flags().Float64Var(&cmder.domain.Min, "min", tutor.DefaultDomain.Min, "Lower bound of x")
	cmd.Flags().Float64Var(&cmder.domain.Max, "max", tutor.DefaultDomain.Max, "Upper bound of x")
	cmd.Flags().IntVar(&cmder.domain.Steps, "steps", tutor.DefaultDomain.Steps, "Number of intervals")
	cmd.Flags().IntVar(&cmder.stride, "stride", 1, "Print every n-th point")
	cmd.Flags().BoolVar(&cmder.json, "json", false, "Print the plot payload as JSON")

	return cmd
}

func (c *plotCommander) run(out io.Writer, expression string) error {
	if err := c.domain.Validate(); err != nil {
		return err
	}
	sampler := tutor.NewSampler(expr.New(), tutor.WithDomain(c.domain))
	result, ok := sampler.Sample(expression)
	if !ok {
		return fmt.Errorf("cannot plot %q: no point could be evaluated", expression)
	}

	if c.json {
		data, err := tutorjson.MarshalPlot(*result)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}
	_, err := fmt.Fprintln(out, goldmark.RenderPlot(*result, c.stride, goldmark.DefaultTheme()))
	return err
}
