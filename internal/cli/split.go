package cli

import (
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ironsheep/image-grid/internal/detection"
	"github.com/ironsheep/image-grid/internal/errors"
	"github.com/ironsheep/image-grid/internal/grid"
	"github.com/ironsheep/image-grid/internal/imaging"
)

// addGridFlags registers the flags split and plan share.
func addGridFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Int("rows", 0, "number of grid rows (required)")
	f.Int("cols", 0, "number of grid columns (required)")
	f.String("edge", string(grid.EdgeBlur), "safe-zone treatment: blur or pad")
	f.String("resize", "ask", "undersized sources: resize, pad or ask")
	f.String("anchor", string(grid.AnchorCenter), "crop anchor for oversized sources: center or smart")
}

func (c *CLI) splitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "split IMAGE",
		Short: "Cut an image into grid tiles",
		Long: `Cut IMAGE into rows×cols tiles and write them to the output directory
as tile_1, tile_2, ... in posting order.

Sources larger than the grid are cropped; smaller ones are stretched or padded
according to --resize. With --resize ask (the default) you are prompted, which
requires a terminal.`,
		Example: `  image-grid split photo.jpg --rows 2 --cols 3
  image-grid split photo.png --rows 1 --cols 3 --edge pad --format png --out tiles`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.bindFlags(cmd.Flags()); err != nil {
				return err
			}
			return c.runSplit(cmd, args[0])
		},
	}

	addGridFlags(cmd)
	f := cmd.Flags()
	f.StringP("out", "o", "output", "output directory")
	f.String("format", imaging.FormatJPEG, "tile format: jpeg or png")
	f.Int("quality", imaging.DefaultQuality, "JPEG quality (1-100)")
	f.Bool("audit-seams", false, "warn about seams that cut through text-like content")

	return cmd
}

func (c *CLI) runSplit(cmd *cobra.Command, path string) error {
	ctx := cmd.Context()
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

	out, err := filepath.Abs(c.config.GetString("out"))
	if err != nil {
		return errors.Wrap(errors.KindValidation, err, "output directory")
	}
	sink, err := imaging.NewDirSink(out, c.config.GetString("format"), c.config.GetInt("quality"))
	if err != nil {
		return err
	}

	src, err := imaging.Open(path)
	if err != nil {
		return err
	}
	c.Logger.Debug("Decoded source", "path", path, "format", src.Format, "size", src.Image.Bounds().Size())

	opts := grid.Options{
		Edge:     edge,
		Anchor:   anchor,
		Resolver: resolver,
		Logger:   c.Logger,
	}
	if c.config.GetBool("audit-seams") {
		opts.Auditor = detection.NewAuditor()
	}

	report, err := grid.New(spec, opts).Run(ctx, src.Image, sink)
	if err != nil {
		return err
	}

	for _, f := range report.Findings {
		printWarning(w, "%s seam at %d cuts through content at %v (confidence %.2f)",
			f.Orientation, f.Position, f.Region, f.Confidence)
	}
	printSuccess(w, "Split image into %d tiles in '%s'", len(report.Tiles), out)
	for _, p := range sink.Written() {
		printFile(w, p)
	}
	printInfo(w, "%s %s", report.Plan.Strategy, StyleDim.Render(report.Elapsed.Round(time.Millisecond).String()))
	return nil
}
