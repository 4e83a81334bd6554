// Command mapoverlay runs the sweep-line segment intersection or the planar
// subdivision overlay over plain-text or GeoJSON input files.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/mcorte/mapoverlay/dcel"
	"github.com/mcorte/mapoverlay/geodata"
	"github.com/mcorte/mapoverlay/linesegment"
	"github.com/mcorte/mapoverlay/plot"
	"github.com/mcorte/mapoverlay/point"
)

func main() {
	cmd := &cli.Command{
		Name:      "mapoverlay",
		Usage:     "Run the segment intersection or planar overlay algorithm",
		UsageText: "mapoverlay --intersection|--overlay --files <file> [<file>] [--output <folder>] [--plot]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:     "intersection",
				Usage:    "Run the sweep-line intersection algorithm (exactly one input file)",
				OnlyOnce: true,
			},
			&cli.BoolFlag{
				Name:     "overlay",
				Usage:    "Run the overlay algorithm (exactly two input files)",
				OnlyOnce: true,
			},
			&cli.StringSliceFlag{
				Name:  "files",
				Usage: "Input files: one segment file for intersection, two polygon files for overlay",
			},
			&cli.StringFlag{
				Name:     "output",
				Usage:    "Folder the rendered images are written to",
				Value:    ".",
				OnlyOnce: true,
			},
			&cli.BoolFlag{
				Name:     "plot",
				Usage:    "Render the result to a PNG image in the output folder",
				OnlyOnce: true,
			},
		},
		HideVersion: true,
		Action:      run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(_ context.Context, cmd *cli.Command) error {
	intersection := cmd.Bool("intersection")
	overlay := cmd.Bool("overlay")
	files := cmd.StringSlice("files")

	switch {
	case intersection == overlay:
		return fmt.Errorf("specify exactly one of --intersection and --overlay")
	case intersection:
		return runIntersection(files, cmd.String("output"), cmd.Bool("plot"))
	default:
		return runOverlay(files, cmd.String("output"), cmd.Bool("plot"))
	}
}

func runIntersection(files []string, output string, plotResult bool) error {
	if len(files) != 1 {
		return fmt.Errorf("the intersection algorithm takes exactly one file, got %d", len(files))
	}

	segments, _, err := geodata.ReadIntersectionFile(files[0])
	if err != nil {
		return err
	}
	result, err := linesegment.SweepLineIntersection(segments)
	if err != nil {
		return err
	}
	fmt.Printf("Number of intersections found: %d\n", len(result.Intersections))

	if !plotResult {
		return nil
	}
	points := make([]point.Point, 0, len(result.Intersections))
	for _, inter := range result.Intersections {
		points = append(points, inter.Point)
	}
	return plot.Intersections(segments, points, imagePath(output, files[0]))
}

func runOverlay(files []string, output string, plotResult bool) error {
	if len(files) != 2 {
		return fmt.Errorf("the overlay algorithm takes exactly two files, got %d", len(files))
	}

	s1, err := readSubdivision(files[0], "s1")
	if err != nil {
		return err
	}
	s2, err := readSubdivision(files[1], "s2")
	if err != nil {
		return err
	}

	result, err := dcel.Overlay(s1, s2)
	if err != nil {
		return err
	}
	fmt.Printf("Number of faces in overlay: %d\n", result.InternalFaceCount())

	if !plotResult {
		return nil
	}
	name := baseName(files[0]) + "_" + baseName(files[1]) + ".png"
	return plot.Overlay(result, filepath.Join(output, name))
}

func readSubdivision(path, prefix string) (*dcel.DCEL, error) {
	var polygons [][]dcel.Edge
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson", ".json":
		polygons, err = geodata.ReadGeoJSON(path)
	default:
		polygons, err = geodata.ReadOverlayFile(path)
	}
	if err != nil {
		return nil, err
	}
	return dcel.New(polygons, prefix)
}

func imagePath(output, input string) string {
	return filepath.Join(output, baseName(input)+".png")
}

func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
