package main

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/benoitkugler/vil"
	"github.com/sirupsen/logrus"
	"github.com/tdewolff/argp"
)

type Thumbnail struct {
	Size     string `short:"s" default:"100x100" desc:"Thumbnail size, as WIDTHxHEIGHT"`
	Crop     bool   `short:"c" desc:"Crop to the aspect ratio of the thumbnail size"`
	Optimize bool   `desc:"Minify the output"`
	Verbose  bool   `short:"v" desc:"Print debug messages"`
	Output   string `short:"o" desc:"Output file, defaults to INPUT_thumb.svg"`
	Input    string `index:"0" desc:"Input SVG file"`
}

type Info struct {
	Verbose bool   `short:"v" desc:"Print debug messages"`
	Input   string `index:"0" desc:"Input SVG file"`
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	root := argp.NewCmd(&Thumbnail{}, "SVG thumbnailer")
	root.AddCmd(&Info{}, "info", "Print the size, bounding box and titles of an SVG file")
	root.Parse()
	root.PrintHelp()
}

func load(input string, verbose bool) (*vil.Image, error) {
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
	im, err := vil.Load(vil.Path(input), "r")
	if err != nil {
		return nil, err
	}
	if im == nil {
		return nil, fmt.Errorf("cannot decode SVG image %s", input)
	}
	return im, nil
}

func (cmd *Thumbnail) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}
	size, err := vil.ParseSize(cmd.Size)
	if err != nil {
		return err
	}

	im, err := load(cmd.Input, cmd.Verbose)
	if err != nil {
		return err
	}
	defer im.Close()

	box := vil.Box{Right: size.Width, Lower: size.Height}
	if !cmd.Crop {
		// fit in size, keeping the aspect ratio
		ratio := math.Min(size.Width/im.Width(), size.Height/im.Height())
		box = vil.Box{Right: im.Width() * ratio, Lower: im.Height() * ratio}
	}
	thumb, err := im.Crop(&box)
	if err != nil {
		return err
	}

	output := cmd.Output
	if output == "" {
		output = strings.TrimSuffix(cmd.Input, filepath.Ext(cmd.Input)) + "_thumb.svg"
	}
	return thumb.Use(func(thumb *vil.Image) error {
		err := thumb.Save(vil.Path(output), "", &vil.SaveOptions{Optimize: cmd.Optimize})
		if err == nil {
			logrus.WithFields(logrus.Fields{"file": output, "size": thumb.Size()}).Info("Thumbnail written")
		}
		return err
	})
}

func (cmd *Info) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}
	im, err := load(cmd.Input, cmd.Verbose)
	if err != nil {
		return err
	}
	defer im.Close()

	bbox, err := im.BBox()
	if err != nil {
		return err
	}
	fmt.Println("File:", filepath.Base(cmd.Input))
	fmt.Println("Size:", im.Size())
	fmt.Printf("Bounding box: %g %g %g %g\n", bbox.Left, bbox.Upper, bbox.Right, bbox.Lower)
	for _, title := range im.Canvas().Root().FindElements(".//title") {
		fmt.Println("Title:", title.Text())
	}
	return nil
}
