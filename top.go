package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/pivolan/mbti_top10/dataset"
	"github.com/pivolan/mbti_top10/domain/models"
	"github.com/pivolan/mbti_top10/plot"
	"github.com/pivolan/mbti_top10/view"
)

type topOptions struct {
	DataFile string
	Type     string
	Limit    int
	Format   string
	PNGPath  string
	// MaxUnpacked bounds the decompressed size of an archived data file.
	MaxUnpacked int64
}

var topOpts topOptions

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Print the top countries for a type",
	RunE: func(cmd *cobra.Command, args []string) error {
		topOpts.DataFile = dataFile
		topOpts.MaxUnpacked = cfg.MaxUnpackedBytes()
		if topOpts.Limit <= 0 {
			topOpts.Limit = cfg.TopN
		}
		return runTop(cmd.Context(), cmd.OutOrStdout(), topOpts)
	},
}

func init() {
	topCmd.Flags().StringVarP(&topOpts.Type, "type", "t", "INFJ", "MBTI type code")
	topCmd.Flags().IntVarP(&topOpts.Limit, "limit", "n", 0, "number of countries (default from TOP_N or 10)")
	topCmd.Flags().StringVar(&topOpts.Format, "format", "text", "table format: text or markdown")
	topCmd.Flags().StringVar(&topOpts.PNGPath, "png", "", "also write the chart as PNG to this path")
}

// runTop performs one render cycle for the terminal.
func runTop(ctx context.Context, w io.Writer, o topOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cat, err := models.ParseCategory(o.Type)
	if err != nil {
		return err
	}
	if o.Format != "text" && o.Format != "markdown" {
		return fmt.Errorf("unknown format %q", o.Format)
	}

	state := view.State{Category: cat, Limit: o.Limit}
	src := dataset.PathSource(o.DataFile)
	state.Source = src.Label()
	state.Dataset, state.LoadErr = dataset.NewLoader(nil).WithMaxUnpacked(o.MaxUnpacked).Load(ctx, src)

	v := view.Render(state)
	if v.Halted {
		if errors.Is(state.LoadErr, models.ErrMissingData) {
			return fmt.Errorf("%s (%s not found)", v.Notice.Text, o.DataFile)
		}
		return errors.New(v.Notice.Text)
	}

	fmt.Fprintln(w, v.Notice.Text)
	fmt.Fprintln(w, v.Chart.Title)
	if o.Format == "markdown" {
		fmt.Fprintln(w, v.Table.RenderMarkdown())
	} else {
		fmt.Fprintln(w, v.Table.RenderText())
	}

	if o.PNGPath != "" {
		png, err := plot.RenderPNG(v.Chart)
		if err != nil {
			return err
		}
		if err := os.WriteFile(o.PNGPath, png, 0o644); err != nil {
			return fmt.Errorf("write chart: %w", err)
		}
		log.Printf("chart written to %s", o.PNGPath)
	}
	return nil
}
