package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/klippa-app/go-pdfium/webassembly"
	"github.com/urfave/cli/v3"

	"github.com/ivanvanderbyl/pdfhtml"
)

func main() {
	cmd := &cli.Command{
		Name:  "pdfhtml",
		Usage: "Reconstruct PDF layout as an HTML fragment",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "input",
				Aliases:  []string{"i"},
				Usage:    "Input PDF file path",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output HTML file path (default: stdout)",
			},
			&cli.IntFlag{
				Name:  "start-page",
				Usage: "Start page number (0-indexed)",
				Value: -1,
			},
			&cli.IntFlag{
				Name:  "end-page",
				Usage: "End page number (0-indexed)",
				Value: -1,
			},
			&cli.BoolFlag{
				Name:  "no-images",
				Usage: "Skip embedded images",
			},
			&cli.BoolFlag{
				Name:  "metrics",
				Usage: "Log processing metrics",
			},
		},
		Action: convertPDF,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func convertPDF(_ context.Context, cmd *cli.Command) error {
	inputPath := cmd.String("input")
	outputPath := cmd.String("output")
	startPage := cmd.Int("start-page")
	endPage := cmd.Int("end-page")

	// Initialise pdfium
	pool, err := webassembly.Init(webassembly.Config{
		MinIdle:  1,
		MaxIdle:  1,
		MaxTotal: 1,
	})
	if err != nil {
		return fmt.Errorf("failed to initialise pdfium: %w", err)
	}
	defer pool.Close()

	instance, err := pool.GetInstance(time.Second * 30)
	if err != nil {
		return fmt.Errorf("failed to get pdfium instance: %w", err)
	}

	config := pdfhtml.DefaultConfig()
	config.IncludeImages = !cmd.Bool("no-images")
	config.EnableMetricsLogging = cmd.Bool("metrics")
	converter := pdfhtml.NewConverterWithConfig(instance, config)

	info, err := converter.GetDocumentInfo(inputPath)
	if err != nil {
		return fmt.Errorf("failed to get document info: %w", err)
	}
	log.Printf("Converting %s (%d pages)", inputPath, info.PageCount)

	var html string
	if startPage >= 0 || endPage >= 0 {
		if startPage < 0 {
			startPage = 0
		}
		if endPage < 0 {
			endPage = info.PageCount - 1
		}
		html, err = converter.ConvertPageRange(inputPath, startPage, endPage)
	} else {
		html, err = converter.ConvertFile(inputPath)
	}
	if err != nil {
		return fmt.Errorf("failed to convert PDF: %w", err)
	}

	if outputPath == "" {
		fmt.Println(html)
		return nil
	}

	if err := os.WriteFile(outputPath, []byte(html), 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	log.Printf("Wrote %s", outputPath)
	return nil
}
