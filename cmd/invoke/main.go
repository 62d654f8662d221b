// Command invoke runs the summarize handler locally against an S3 event.
//
//	invoke --event testdata/event.json
//	invoke --bucket my-bucket --key uploads/report.pdf
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sh3r4rd/file_summarizer/internal/app"
	"github.com/sh3r4rd/file_summarizer/internal/config"
	"github.com/sh3r4rd/file_summarizer/internal/logging"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

type options struct {
	envFile   string
	eventFile string
	bucket    string
	key       string
	size      int64
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:          "invoke",
		Short:        "Run the file summarizer once against an S3 object",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.envFile, "env", ".env", "dotenv file to load before reading the environment")
	flags.StringVar(&opts.eventFile, "event", "", "path to an S3 event JSON document")
	flags.StringVar(&opts.bucket, "bucket", "", "bucket of a synthesized event")
	flags.StringVar(&opts.key, "key", "", "object key of a synthesized event (URL-encoded, as S3 sends it)")
	flags.Int64Var(&opts.size, "size", 0, "object size reported in a synthesized event")
	cmd.MarkFlagsMutuallyExclusive("event", "bucket")

	return cmd
}

func run(ctx context.Context, opts *options) error {
	if err := godotenv.Load(opts.envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load %s: %w", opts.envFile, err)
	}

	event, err := loadEvent(opts)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	s3Client, err := app.NewS3Client(ctx)
	if err != nil {
		return err
	}

	resp, err := app.NewHandler(cfg, s3Client, logger).Handle(ctx, event)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

func loadEvent(opts *options) (events.S3Event, error) {
	var event events.S3Event

	if opts.eventFile != "" {
		data, err := os.ReadFile(opts.eventFile)
		if err != nil {
			return event, fmt.Errorf("read event: %w", err)
		}
		if err := json.Unmarshal(data, &event); err != nil {
			return event, fmt.Errorf("decode event: %w", err)
		}
		return event, nil
	}

	if opts.bucket == "" || opts.key == "" {
		return event, errors.New("either --event or both --bucket and --key are required")
	}
	event.Records = []events.S3EventRecord{{
		EventSource: "aws:s3",
		EventName:   "ObjectCreated:Put",
		S3: events.S3Entity{
			Bucket: events.S3Bucket{Name: opts.bucket},
			Object: events.S3Object{Key: opts.key, Size: opts.size},
		},
	}}
	return event, nil
}
