package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"pactly/internal/domain"
	"pactly/internal/logo"
	"pactly/internal/pdfexport"
)

type renderOptions struct {
	title   string
	company string
	color   string
	logo    string
	outDir  string
	version int
}

func newRenderCmd(root *rootOptions) *cobra.Command {
	opts := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a PDF from local files without the API",
	}
	cmd.PersistentFlags().StringVar(&opts.title, "title", "", "deal title shown in the footer")
	cmd.PersistentFlags().StringVar(&opts.company, "company", "", "company name for the header")
	cmd.PersistentFlags().StringVar(&opts.color, "color", "", "primary color as #RRGGBB")
	cmd.PersistentFlags().StringVar(&opts.logo, "logo", "", "logo image path or URL")
	cmd.PersistentFlags().StringVarP(&opts.outDir, "out", "o", ".", "output directory")

	contract := &cobra.Command{
		Use:   "contract <text-file>",
		Short: "Render contract text as a branded PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			c := &domain.Contract{VersionNumber: opts.version, FullText: string(text)}
			res, err := newExporter(root).ExportContract(cmd.Context(), c, opts.title, opts.brand())
			if err != nil {
				return err
			}
			return writeResult(cmd, opts.outDir, res)
		},
	}
	contract.Flags().IntVar(&opts.version, "version", 1, "contract version number")

	offer := &cobra.Command{
		Use:   "offer-letter <json-file>",
		Short: "Render an offer letter JSON document as a branded PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var letter domain.OfferLetter
			if err := json.Unmarshal(raw, &letter); err != nil {
				return fmt.Errorf("parsing %s: %w", args[0], err)
			}
			res, err := newExporter(root).ExportOfferLetter(cmd.Context(), &letter, opts.title, opts.brand())
			if err != nil {
				return err
			}
			return writeResult(cmd, opts.outDir, res)
		},
	}

	cmd.AddCommand(contract, offer)
	return cmd
}

func (o *renderOptions) brand() *domain.BrandSettings {
	b := &domain.BrandSettings{CompanyName: o.company, PrimaryColor: o.color}
	switch {
	case o.logo == "":
	case filepath.IsAbs(o.logo) || fileExists(o.logo):
		b.LogoURL = logo.FilePrefix + o.logo
	default:
		b.LogoURL = o.logo
	}
	return b
}

func newExporter(root *rootOptions) *pdfexport.Exporter {
	fetcher := logo.NewFetcher(logo.FetcherConfig{
		Timeout:      10 * time.Second,
		MaxBytes:     2 << 20,
		AllowFiles:   true,
		AllowAnyHost: true,
	}, nil)
	return pdfexport.NewExporter(logo.NewLoader(fetcher, nil, root.log), root.log)
}

func writeResult(cmd *cobra.Command, dir string, res *pdfexport.Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(dir, res.Filename)
	if err := os.WriteFile(path, res.Data, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s (%d pages, %s)\n", path, res.PageCount, humanize.Bytes(uint64(len(res.Data))))
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
