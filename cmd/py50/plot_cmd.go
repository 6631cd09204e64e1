package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"py50/adapters/plot"
	"py50/app"
)

func newPlotCmd(e *env) *cobra.Command {
	var req app.PlotRequest
	var style, title string
	o := &outputFlags{}

	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Draw a box or bar plot annotated with significance brackets",
		Long: `Draw one box (or bar) per category of --x and annotate every compared pair
with the significance symbol of the chosen test.

Box plots accept tukey, gameshowell and ptest. Bar plots only accept ptest and
ignore -o options.

Example: py50 plot --data data.csv --x group --y score --test tukey --out figs/score.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := o.parsedOptions()
			if err != nil {
				return err
			}
			df, err := e.loadData()
			if err != nil {
				return err
			}

			fig := plot.NewFigure()
			fig.Title = title
			req.Figure = fig
			req.Style = app.PlotStyle(style)
			req.Options = opts
			req.ReturnTable = true

			table, err := e.plots.Plot(df, req)
			if err != nil {
				return err
			}
			figure := e.plots.ResolvePath(req.SavePath)
			// bar plots are drawn without saving; write the figure here
			if req.Style == app.StyleBar && req.SavePath != "" {
				if figure, err = e.plots.SaveFigure(fig, req.SavePath); err != nil {
					return err
				}
			}
			return e.emit(cmd, o, result{
				title:  fmt.Sprintf("%s: %s by %s", req.Test, req.Y, req.X),
				table:  table,
				figure: figure,
			})
		},
	}

	cmd.Flags().StringVar(&req.X, "x", "", "Categorical column on the x axis")
	cmd.Flags().StringVar(&req.Y, "y", "", "Numeric column on the y axis")
	cmd.Flags().StringVar(&req.GroupCol, "group-col", "", "Column setting the category order (default: --x)")
	cmd.Flags().StringVar(&req.Test, "test", "", "tukey, gameshowell or ptest")
	cmd.Flags().StringVar(&req.Palette, "palette", "", "Palette name or comma separated hex colors")
	cmd.Flags().StringVar(&req.SavePath, "out", "", "Save the figure (.png or .svg)")
	cmd.Flags().StringVar(&style, "style", string(app.StyleBox), "box or bar")
	cmd.Flags().StringVar(&title, "title", "", "Figure title")
	o.register(cmd)
	return cmd
}
