package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"thaitanloi365/go-face-censor/facecensoring"
	"thaitanloi365/go-face-censor/mode"
)

var log = logrus.StandardLogger()

func main() {
	app := cli.NewApp()
	app.Name = "go-face-censor"
	app.Usage = "Censor eyes and mouth of the face in an image or a directory of images"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "input, i", Usage: "input image `FILE` or directory"},
		cli.StringFlag{Name: "output, o", Usage: "output image `FILE` or directory, - writes JPEG to stdout"},
		cli.StringFlag{Name: "mode, m", Value: string(mode.Default), Usage: fmt.Sprintf("censoring mode: %v", mode.Strings())},
		cli.StringFlag{Name: "config, c", Usage: "YAML config `FILE`"},
		cli.StringFlag{Name: "cascade", Value: "./cascade/facefinder", Usage: "face cascade `FILE`"},
		cli.StringFlag{Name: "puploc", Value: "./cascade/puploc", Usage: "pupil localization cascade `FILE`"},
		cli.StringFlag{Name: "flploc", Value: "./cascade/lps", Usage: "facial landmark cascade `DIR`"},
		cli.IntFlag{Name: "workers, w", Value: 1, Usage: "number of images processed in parallel"},
		cli.BoolFlag{Name: "mark", Usage: "draw region boxes and landmark points"},
		cli.BoolFlag{Name: "debug", Usage: "enable debug log"},
	}
	app.Action = censorAction
	app.Commands = []cli.Command{
		{
			Name:   "modes",
			Usage:  "List available censoring modes",
			Action: modesAction,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

// loadConfig reads the optional config file and applies flags that were set explicitly.
func loadConfig(ctx *cli.Context) (*facecensoring.Config, error) {
	conf := &facecensoring.Config{}

	if fileName := ctx.String("config"); fileName != "" {
		c, err := facecensoring.LoadConfig(fileName)
		if err != nil {
			return nil, err
		}
		conf = c
	}

	if ctx.IsSet("mode") || conf.Mode == "" {
		conf.Mode = ctx.String("mode")
	}

	if ctx.IsSet("cascade") || conf.CascadeFile == "" {
		conf.CascadeFile = ctx.String("cascade")
	}

	if ctx.IsSet("puploc") || conf.Puploc == "" {
		conf.Puploc = ctx.String("puploc")
	}

	if ctx.IsSet("flploc") || conf.Flploc == "" {
		conf.Flploc = ctx.String("flploc")
	}

	if ctx.IsSet("workers") || conf.Workers == 0 {
		conf.Workers = ctx.Int("workers")
	}

	if ctx.IsSet("mark") {
		conf.MarkRegions = ctx.Bool("mark")
	}

	return conf, nil
}

func censorAction(ctx *cli.Context) error {
	if ctx.Bool("debug") {
		log.SetLevel(logrus.DebugLevel)
	}

	input, output := ctx.String("input"), ctx.String("output")

	if input == "" || output == "" {
		return errors.New("both --input and --output are required")
	}

	fi, err := os.Stat(input)
	if err != nil {
		return fmt.Errorf("input path does not exist: %s", input)
	}

	conf, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	if _, ok := mode.Parse(conf.Mode); !ok {
		log.Warnf("censor: unknown mode %q, using %s", conf.Mode, mode.Default)
	}

	fc, err := facecensoring.New(conf)
	if err != nil {
		return fmt.Errorf("loading model: %w", err)
	}

	if !fi.IsDir() && output == "-" {
		return fc.CensorFaces(input, os.Stdout, conf.Mode)
	}

	if !fi.IsDir() {
		target := facecensoring.OutputPath(input, output)

		if err := fc.CensorFile(input, target, conf.Mode); err != nil {
			return err
		}

		log.Infof("censor: processed %s", fi.Name())

		return nil
	}

	summary, err := fc.CensorDir(context.Background(), input, output, conf.Mode)
	if err != nil {
		return err
	}

	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d images failed", summary.Failed, summary.Failed+summary.Processed)
	}

	return nil
}

func modesAction(ctx *cli.Context) error {
	for _, name := range mode.Names() {
		fmt.Println(name)
	}

	return nil
}
