package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ironsheep/slime-finder/internal/render"
	"github.com/ironsheep/slime-finder/internal/world"
)

const maxMapRadius = 512

var (
	mapX      int32
	mapZ      int32
	mapRadius int32
	mapASCII  bool
	mapPNG    string
	mapScale  int
)

var mapCmd = &cobra.Command{
	Use:   "map SEED",
	Short: "Print the slime chunks around a chunk",
	Long: `Prints a text map of the slime chunks within --radius of (--x, --z) for SEED,
one line per z. With --png the same window is also saved as an image.

Example:
  slime-finder map 42 --x 100 --z -40 --radius 20 --png map.png`,
	Args: cobra.ExactArgs(1),
	RunE: runMap,
}

func init() {
	mapCmd.Flags().Int32Var(&mapX, "x", 0, "Centre chunk X")
	mapCmd.Flags().Int32Var(&mapZ, "z", 0, "Centre chunk Z")
	mapCmd.Flags().Int32Var(&mapRadius, "radius", 16, "Chunks on each side of the centre")
	mapCmd.Flags().BoolVar(&mapASCII, "ascii", false, "Use '#' and '.' instead of box glyphs")
	mapCmd.Flags().StringVar(&mapPNG, "png", "", "Also save the window as a PNG")
	mapCmd.Flags().IntVar(&mapScale, "scale", render.DefaultScale, "Pixels per chunk in the PNG")
}

func runMap(cmd *cobra.Command, args []string) error {
	seed, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid seed %q: %w", args[0], err)
	}
	if mapRadius < 0 || mapRadius > maxMapRadius {
		return fmt.Errorf("radius must be between 0 and %d", maxMapRadius)
	}

	w := render.Window{CenterX: mapX, CenterZ: mapZ, Radius: mapRadius}
	if err := w.Validate(); err != nil {
		return err
	}
	m := world.SeedMarker{Seed: seed}
	g := render.DefaultGlyphs
	if mapASCII {
		g = render.ASCIIGlyphs
	}
	fmt.Fprint(cmd.OutOrStdout(), render.MapText(m, w, g))

	if mapPNG != "" {
		img := render.PNG(render.MapBitmap(m, w), render.PNGOptions{Scale: mapScale})
		if err := render.SavePNG(mapPNG, img); err != nil {
			return err
		}
		logger.Info("map saved", zap.String("path", mapPNG), zap.Int64("seed", seed))
	}
	return nil
}
