package cli

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	dimaging "github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"github.com/ironsheep/image-grid/internal/errors"
	"github.com/ironsheep/image-grid/internal/grid"
	"github.com/ironsheep/image-grid/internal/imaging"
)

// previewMaxSide bounds the longer side of a --preview image.
const previewMaxSide = 2048

func (c *CLI) planCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan IMAGE",
		Short: "Show how an image would be cut without writing tiles",
		Example: `  image-grid plan photo.jpg --rows 2 --cols 3
  image-grid plan photo.jpg --rows 2 --cols 3 --anchor smart --preview cut.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.bindFlags(cmd.Flags()); err != nil {
				return err
			}
			return c.runPlan(cmd, args[0])
		},
	}

	addGridFlags(cmd)
	cmd.Flags().String("preview", "", "write the normalized image with seams and tile numbers to this PNG")

	return cmd
}

func (c *CLI) runPlan(cmd *cobra.Command, path string) error {
	w := cmd.OutOrStdout()

	spec, err := c.spec()
	if err != nil {
		return err
	}
	edge, err := grid.ParseEdgeMode(c.config.GetString("edge"))
	if err != nil {
		return err
	}
	anchor, err := grid.ParseAnchor(c.config.GetString("anchor"))
	if err != nil {
		return err
	}
	resolver, err := c.resolver(c.config.GetString("resize"))
	if err != nil {
		return err
	}

	src, err := imaging.Open(path)
	if err != nil {
		return err
	}

	planner := grid.NewPlanner(spec, resolver)
	planner.Anchor = anchor

	preview := c.config.GetString("preview")
	var plan *grid.Plan
	if preview == "" {
		plan, err = planner.Plan(cmd.Context(), src.Image)
		if err != nil {
			return err
		}
	} else {
		var normalized *image.NRGBA
		normalized, plan, err = planner.Normalize(cmd.Context(), src.Image)
		if err != nil {
			return err
		}
		if err := savePreview(preview, normalized, spec); err != nil {
			return err
		}
	}

	printPlan(w, spec, edge, plan)
	if preview != "" {
		printFile(w, preview)
	}
	return nil
}

// savePreview draws the seams and emission indices of spec onto normalized and
// writes the result as a PNG.
func savePreview(path string, normalized image.Image, spec grid.Spec) error {
	tiles := grid.Tiles(spec)
	cells := make([]imaging.Cell, len(tiles))
	for i, t := range tiles {
		cells[i] = imaging.Cell{Bounds: t.Bounds, Label: imaging.IndexLabel(t.Index)}
	}
	scale := imaging.FitScale(normalized.Bounds().Size(), previewMaxSide)
	img := imaging.DrawSeams(normalized, cells, color.NRGBA{R: 255, A: 255}, scale)
	if err := dimaging.Save(img, path); err != nil {
		return errors.Wrap(errors.KindEncode, err, "writing preview %s", path)
	}
	return nil
}

func printPlan(w io.Writer, spec grid.Spec, edge grid.EdgeMode, plan *grid.Plan) {
	fmt.Fprintln(w, StyleTitle.Render(fmt.Sprintf("%d×%d grid", spec.Rows, spec.Cols)))
	printKeyValue(w, "source", size(plan.Source))
	printKeyValue(w, "target", size(plan.Target))
	printKeyValue(w, "strategy", string(plan.Strategy))
	switch plan.Strategy {
	case grid.StrategyCrop:
		printKeyValue(w, "anchor", string(plan.Anchor))
		printKeyValue(w, "region", plan.Region.String())
	case grid.StrategyPad:
		printKeyValue(w, "region", plan.Region.String())
		printKeyValue(w, "padding", fmt.Sprintf("left %d, top %d, right %d, bottom %d",
			plan.Padding.Left, plan.Padding.Top, plan.Padding.Right, plan.Padding.Bottom))
	}
	printKeyValue(w, "tile", fmt.Sprintf("%s (%s edges)", size(spec.Platform.FinishedSize(edge)), edge))
	fmt.Fprintln(w)
	fmt.Fprintln(w, tileTable(grid.Tiles(spec)))
}

func tileTable(tiles []grid.Tile) *table.Table {
	header := lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	rows := make([][]string, len(tiles))
	for i, tile := range tiles {
		rows[i] = []string{strconv.Itoa(tile.Index), strconv.Itoa(tile.Row + 1), strconv.Itoa(tile.Col + 1), tile.Bounds.String()}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("Tile", "Row", "Col", "Bounds").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return header
			}
			return cell
		})
}

func size(p image.Point) string {
	return fmt.Sprintf("%dx%d", p.X, p.Y)
}
