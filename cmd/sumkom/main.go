package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/IPDS-59/commodity-summarizer/internal/aggregator"
	"github.com/IPDS-59/commodity-summarizer/internal/config"
	"github.com/IPDS-59/commodity-summarizer/internal/discovery"
	"github.com/IPDS-59/commodity-summarizer/internal/exporter"
)

var (
	flagKomoditas string
	flagKab       int
	flagPrefix    string
	flagDir       string
	flagOut       string
	flagConfig    string
)

var rootCmd = &cobra.Command{
	Use:   "sumkom",
	Short: "Summarize komoditas survey data for one kabupaten",
	Long: `sumkom aggregates komoditas (commodity) survey workbooks into one
summary workbook for a single kabupaten: a district total sheet and a
per-kecamatan breakdown sheet.

Input workbooks live under <base_dir>/<komoditas>/ and are matched by the
table prefix in their file name. Parameters not given as flags are asked
interactively with defaults from config.toml.`,
	Example: `  # Interactive run (prompts for komoditas, kabupaten code and prefix)
  $ sumkom

  # Non-interactive run
  $ sumkom --komoditas jeruk --kab 7205 --prefix 4_54`,
	RunE:          run,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Flags().StringVar(&flagKomoditas, "komoditas", "", "komoditas name, e.g. jeruk")
	rootCmd.Flags().IntVar(&flagKab, "kab", 0, "kabupaten code, e.g. 7205")
	rootCmd.Flags().StringVar(&flagPrefix, "prefix", "", "table number prefix, e.g. 4_54")
	rootCmd.Flags().StringVar(&flagDir, "dir", "", "base directory (overrides config)")
	rootCmd.Flags().StringVar(&flagOut, "out", "", "output directory (overrides config)")
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "config file path (default: config.toml next to the executable)")
}

func run(cmd *cobra.Command, args []string) error {
	fmt.Println("==========================================")
	fmt.Println("  sumkom - Komoditas Data Summarizer")
	fmt.Println("==========================================")

	configPath := flagConfig
	if configPath == "" {
		configPath = config.DefaultConfigPath()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("failed to load config, using defaults: %v", err)
		cfg = config.DefaultConfig()
	}

	if flagDir != "" {
		cfg.Data.BaseDir = flagDir
	}
	if flagOut != "" {
		cfg.Data.OutputDir = flagOut
	}

	komoditas, kabCode, prefix, err := collectParams(cmd, cfg)
	if err != nil {
		return err
	}

	directory := filepath.Join(cfg.Data.BaseDir, komoditas)
	files, err := discovery.FindWorkbooks(directory, prefix)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Printf("No Excel files found with prefix '%s' in directory: %s\n", prefix, directory)
		return nil
	}

	agg := aggregator.New(renderProgress)
	kab, kec := agg.Aggregate(files, kabCode, prefix)

	if kab == nil && len(kec) == 0 {
		fmt.Printf("No data found for kab %d; nothing to write.\n", kabCode)
		return nil
	}

	kabName := "unknown"
	if kab != nil {
		kabName = exporter.DistrictName(kab.Label)
	}
	outputPath := filepath.Join(cfg.Data.OutputDir, exporter.OutputFileName(komoditas, kabName))

	f, err := exporter.Export(kab, kec)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("failed to save %s: %w", outputPath, err)
	}

	if kab != nil {
		fmt.Printf("Saved Kabupaten data to %s\n", outputPath)
	}
	if len(kec) > 0 {
		fmt.Printf("Saved Kecamatan data to %s\n", outputPath)
	}
	fmt.Printf("Data has been saved to %s\n", outputPath)
	return nil
}

// collectParams resolves the run parameters: flags win, then interactive
// prompts carrying the config defaults.
func collectParams(cmd *cobra.Command, cfg *config.AppConfig) (komoditas string, kabCode int, prefix string, err error) {
	komoditas = strings.TrimSpace(flagKomoditas)
	if komoditas == "" {
		prompt := &survey.Input{
			Message: "Name of the komoditas:",
			Help:    "matches the input subdirectory, e.g. jeruk",
		}
		if err := survey.AskOne(prompt, &komoditas, survey.WithValidator(survey.Required)); err != nil {
			return "", 0, "", fmt.Errorf("input cancelled")
		}
		komoditas = strings.TrimSpace(komoditas)
	}

	kabCode = flagKab
	if !cmd.Flags().Changed("kab") {
		var answer string
		prompt := &survey.Input{
			Message: "Kabupaten code:",
			Default: strconv.Itoa(cfg.Defaults.KabCode),
		}
		if err := survey.AskOne(prompt, &answer, survey.WithValidator(validInt)); err != nil {
			return "", 0, "", fmt.Errorf("input cancelled")
		}
		kabCode, _ = strconv.Atoi(strings.TrimSpace(answer))
	}

	prefix = strings.TrimSpace(flagPrefix)
	if prefix == "" {
		prompt := &survey.Input{
			Message: "Table number prefix:",
			Default: cfg.Defaults.TablePrefix,
		}
		if err := survey.AskOne(prompt, &prefix, survey.WithValidator(survey.Required)); err != nil {
			return "", 0, "", fmt.Errorf("input cancelled")
		}
		prefix = strings.TrimSpace(prefix)
	}

	return komoditas, kabCode, prefix, nil
}

func validInt(ans interface{}) error {
	s, ok := ans.(string)
	if !ok {
		return fmt.Errorf("invalid input")
	}
	if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("please enter a valid integer")
	}
	return nil
}

// renderProgress prints aggregation events: progress to stdout, anomalies
// through the standard logger.
func renderProgress(ev aggregator.ProgressEvent) {
	switch ev.Type {
	case "file":
		fmt.Printf("Processing file: %v\n", ev.Data["file"])
	case "warning":
		log.Printf("warning: %s", ev.Message)
	case "error":
		log.Printf("%s", ev.Message)
	default:
		// start/done are noise on the console
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}
}
