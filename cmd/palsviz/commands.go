package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/neehar-mavuduru/palsviz/pipeline"
	"github.com/neehar-mavuduru/palsviz/render"
	"github.com/neehar-mavuduru/palsviz/uploader"
)

var (
	rootCmd = &cobra.Command{
		Use:   "palsviz",
		Short: "Generate comparison charts for PALS scheduler test results",
		Long: `palsviz turns the output of the pals_int, pals_aging and pals_cmp tests
into bar charts comparing the baseline scheduler with PALS, plus a summary
of the improvements.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	renderCmd = &cobra.Command{
		Use:   "render",
		Short: "Render the four comparison charts",
		Long: `Reads measurements from --config, or prompts for them when stdin is a
terminal. Scenarios without measurements use example data.`,
		Args: cobra.NoArgs,
		RunE: runRender,
	}
	uploadCmd = &cobra.Command{
		Use:   "upload [directory]",
		Short: "Upload rendered charts from a local directory to GCS",
		Args:  cobra.ExactArgs(1),
		RunE:  runUpload,
	}
	exampleConfigCmd = &cobra.Command{
		Use:   "example-config",
		Short: "Print a configuration file filled with example data",
		Args:  cobra.NoArgs,
		RunE:  runExampleConfig,
	}

	configPath   string
	outputDir    string
	format       string
	dpi          int
	interactive  bool
	noPrompt     bool
	uploadBucket string
	objectPrefix string
	endpoint     string
)

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML file with measurements and output settings")
	renderCmd.Flags().StringVarP(&outputDir, "output-dir", "o", pipeline.DefaultOutputDir, "Directory for the rendered charts (created if missing)")
	renderCmd.Flags().StringVarP(&format, "format", "f", "png", "Image format (png, jpg, tiff)")
	renderCmd.Flags().IntVar(&dpi, "dpi", 300, "Raster resolution")
	renderCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Prompt for measurements even when stdin is not a terminal")
	renderCmd.Flags().BoolVar(&noPrompt, "no-prompt", false, "Never prompt; missing measurements use example data")
	renderCmd.Flags().StringVar(&uploadBucket, "upload-bucket", "", "Publish the charts to this GCS bucket after rendering")
	renderCmd.MarkFlagsMutuallyExclusive("interactive", "no-prompt")

	rootCmd.AddCommand(uploadCmd)
	uploadCmd.Flags().StringVar(&uploadBucket, "bucket", "", "GCS bucket name")
	uploadCmd.Flags().StringVar(&objectPrefix, "prefix", "", "Object prefix inside the bucket")
	uploadCmd.Flags().StringVar(&endpoint, "endpoint", "", "Storage emulator gRPC endpoint (plaintext, no auth)")
	uploadCmd.MarkFlagRequired("bucket")

	rootCmd.AddCommand(exampleConfigCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	cfg := pipeline.DefaultConfig()
	if configPath != "" {
		loaded, err := pipeline.LoadConfig(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("output-dir") {
		cfg.OutputDir = outputDir
	}
	if flags.Changed("format") {
		cfg.Render.Format = format
	}
	if flags.Changed("dpi") {
		cfg.Render.DPI = dpi
	}
	if flags.Changed("upload-bucket") {
		cfg.Upload.Bucket = uploadBucket
	}

	printBanner(out)

	if interactive || (!noPrompt && configPath == "" && stdinIsTerminal()) {
		a, err := promptAnswers(cmd.Context())
		if err != nil {
			return err
		}
		if err := a.apply(&cfg); err != nil {
			return err
		}
	}

	printSubstituted(out, cfg.ApplyDefaults())
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	renderer, err := render.New(cfg.Render)
	if err != nil {
		return err
	}
	report := pipeline.NewRunner(renderer, cfg.OutputDir).Run(cfg)
	printReport(out, report)

	if cfg.Upload.Bucket != "" {
		if err := publish(cmd, cfg.Upload, report.Written()); err != nil {
			return err
		}
	}

	return report.Err()
}

func runUpload(cmd *cobra.Command, args []string) error {
	paths, err := chartFiles(args[0])
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no chart images found in %s", args[0])
	}

	cfg := uploader.DefaultConfig(uploadBucket)
	cfg.ObjectPrefix = objectPrefix
	cfg.Endpoint = endpoint
	return publish(cmd, cfg, paths)
}

func runExampleConfig(cmd *cobra.Command, args []string) error {
	data, err := pipeline.ExampleConfig().Marshal()
	if err != nil {
		return fmt.Errorf("failed to marshal the example config: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func publish(cmd *cobra.Command, cfg uploader.Config, paths []string) error {
	up, err := uploader.New(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer up.Close()

	results := up.Upload(cmd.Context(), paths)
	printUploads(cmd.OutOrStdout(), cfg.Bucket, results)

	for _, r := range results {
		if r.Err != nil {
			return fmt.Errorf("failed to upload %s: %w", r.Path, r.Err)
		}
	}
	return nil
}

// chartFiles lists the image files directly inside dir, sorted by name
func chartFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if !render.IsSupportedFormat(filepath.Ext(e.Name())) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}
