package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"pactly/internal/apiclient"
)

type exportOptions struct {
	apiURL   string
	token    string
	outDir   string
	interval time.Duration
	timeout  time.Duration
}

func newExportCmd(root *rootOptions) *cobra.Command {
	opts := &exportOptions{}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Queue an export on the API, wait for it and save the file",
	}
	cmd.PersistentFlags().StringVar(&opts.apiURL, "api", envOr("PACTLY_API_URL", "http://localhost:8080"), "API base URL")
	cmd.PersistentFlags().StringVar(&opts.token, "token", os.Getenv("PACTLY_API_TOKEN"), "bearer token (default $PACTLY_API_TOKEN)")
	cmd.PersistentFlags().StringVarP(&opts.outDir, "out", "o", ".", "output directory")
	cmd.PersistentFlags().DurationVar(&opts.interval, "interval", 2*time.Second, "poll interval")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 5*time.Minute, "give up after this long")

	contract := &cobra.Command{
		Use:   "contract <deal-id>",
		Short: "Export the latest contract of a deal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dealID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid deal ID: %w", err)
			}
			return runExport(cmd, root, opts, func(ctx context.Context, c *apiclient.Client) (*apiclient.Job, error) {
				return c.CreateContractExportJob(ctx, dealID)
			})
		},
	}

	offer := &cobra.Command{
		Use:   "offer-letter <deal-id> <letter-id>",
		Short: "Export an offer letter",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dealID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid deal ID: %w", err)
			}
			letterID, err := uuid.Parse(args[1])
			if err != nil {
				return fmt.Errorf("invalid offer letter ID: %w", err)
			}
			return runExport(cmd, root, opts, func(ctx context.Context, c *apiclient.Client) (*apiclient.Job, error) {
				return c.CreateOfferLetterExportJob(ctx, dealID, letterID)
			})
		},
	}

	cmd.AddCommand(contract, offer)
	return cmd
}

type createFunc func(ctx context.Context, c *apiclient.Client) (*apiclient.Job, error)

func runExport(cmd *cobra.Command, root *rootOptions, opts *exportOptions, create createFunc) error {
	if opts.token == "" {
		return errors.New("a token is required (--token or PACTLY_API_TOKEN)")
	}
	client, err := apiclient.New(opts.apiURL, apiclient.StaticToken(opts.token), apiclient.WithLogger(root.log))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
	defer cancel()

	job, err := create(ctx, client)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "queued job %s\n", job.ID)

	job, err = client.PollJob(ctx, job.ID, opts.interval)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return err
	}
	name := filepath.Base(job.Filename)
	if job.Filename == "" {
		name = job.ID.String() + ".pdf"
	}
	path := filepath.Join(opts.outDir, name)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	n, err := client.Download(ctx, job, f)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s (%d pages, %d bytes)\n", path, job.PageCount, n)
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
