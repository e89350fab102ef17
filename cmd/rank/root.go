package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"alfredoptarigan/resume-ranker/internal/config"
	"alfredoptarigan/resume-ranker/internal/logger"
	"alfredoptarigan/resume-ranker/internal/models"
	"alfredoptarigan/resume-ranker/internal/services"
)

const app = "rank"

const (
	outputTable = "table"
	outputJSON  = "json"
)

type options struct {
	job     string
	jobFile string
	strict  bool
	output  string
}

func newRootCmd() *cobra.Command {
	v := config.NewViper()
	opts := &options{}

	cmd := &cobra.Command{
		Use:   app,
		Short: "rank is a cli for ranking PDF resumes against a job description",
		Long: "rank extracts text from PDF resumes in a directory or an S3 bucket, scores each one " +
			"against a job description by TF-IDF cosine similarity and prints them best first.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(_ *cobra.Command, _ []string) error {
			return config.LoadDotEnv()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), v, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.job, "job", "", "job description text")
	flags.StringVar(&opts.jobFile, "job-file", "", "file containing the job description")
	flags.String("dir", "", "directory with PDF resumes (default from RESUME_DIR)")
	flags.String("s3-bucket", "", "load resumes from this S3 bucket instead of a directory")
	flags.String("s3-prefix", "", "key prefix inside the S3 bucket")
	flags.String("s3-endpoint", "", "custom S3-compatible endpoint")
	flags.Int64("max-file-size", 0, "per-file size limit in bytes (default from MAX_FILE_SIZE)")
	flags.BoolVar(&opts.strict, "strict", false, "treat pages without text as unreadable")
	flags.StringVarP(&opts.output, "output", "o", outputTable, "output format: table or json")
	flags.BoolP("debug", "d", false, "verbose/debug output")
	flags.BoolP("json-logs", "j", false, "json format for logging")

	bind := map[string]string{
		"storage.resume-dir":    "dir",
		"s3.bucket":             "s3-bucket",
		"s3.prefix":             "s3-prefix",
		"s3.endpoint":           "s3-endpoint",
		"storage.max-file-size": "max-file-size",
		"log.debug":             "debug",
		"log.json":              "json-logs",
	}
	for key, flag := range bind {
		// BindPFlag only fails on a nil flag.
		_ = v.BindPFlag(key, flags.Lookup(flag))
	}

	return cmd
}

func run(ctx context.Context, out io.Writer, v *viper.Viper, opts *options) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := config.FromViper(v)
	if err := cfg.Validate(); err != nil {
		return err
	}

	if opts.output != outputTable && opts.output != outputJSON {
		return fmt.Errorf("unknown output format %q, want %s or %s", opts.output, outputTable, outputJSON)
	}

	jobDescription, err := readJobDescription(opts)
	if err != nil {
		return err
	}

	mode, err := services.ParseExtractionMode(cfg.Extraction.Mode)
	if err != nil {
		return err
	}
	if opts.strict {
		mode = services.ModeStrict
	}

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return fmt.Errorf("creating a logger: %w", err)
	}
	defer log.Sync()

	source, err := newSource(ctx, cfg, log)
	if err != nil {
		return err
	}

	files, err := source.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading resumes: %w", err)
	}
	if len(files) == 0 {
		return errors.New("no PDF resumes found")
	}

	ranking := services.NewRankingService(
		services.NewPDFParserService(mode),
		services.NewRankerService(log.Named("ranker")),
		cfg.Storage.MaxFileSize,
		log.Named("ranking"),
	)

	result, err := ranking.RankResumes(ctx, jobDescription, files)
	if err != nil {
		return err
	}

	if opts.output == outputJSON {
		return writeJSON(out, result)
	}
	return writeTable(out, result)
}

func readJobDescription(opts *options) (string, error) {
	if opts.job != "" && opts.jobFile != "" {
		return "", errors.New("use either --job or --job-file, not both")
	}

	job := opts.job
	if opts.jobFile != "" {
		data, err := os.ReadFile(opts.jobFile)
		if err != nil {
			return "", fmt.Errorf("reading job description: %w", err)
		}
		job = string(data)
	}

	if strings.TrimSpace(job) == "" {
		return "", errors.New("a job description is required (--job or --job-file)")
	}
	return job, nil
}

func newSource(ctx context.Context, cfg *config.Config, log *zap.Logger) (services.ResumeSource, error) {
	if cfg.S3.Enabled() {
		client, err := services.NewS3Client(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		return services.NewS3Source(client, cfg.S3.Bucket, cfg.S3.Prefix, log.Named("s3")), nil
	}
	return services.NewDirectorySource(cfg.Storage.ResumeDir, log.Named("dir")), nil
}

func writeJSON(out io.Writer, result *models.RankingResult) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func writeTable(out io.Writer, result *models.RankingResult) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	if len(result.Results) > 0 {
		fmt.Fprintln(w, "RANK\tRESUME\tSCORE")
		for _, r := range result.Results {
			fmt.Fprintf(w, "%d\t%s\t%.2f\n", r.Rank, r.Filename, r.Score)
		}
	}

	if len(result.Unreadable) > 0 {
		if len(result.Results) > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, "UNREADABLE\tREASON")
		for _, u := range result.Unreadable {
			fmt.Fprintf(w, "%s\t%s\n", u.Filename, u.Reason)
		}
	}

	if result.Message != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, result.Message)
	}

	return w.Flush()
}
