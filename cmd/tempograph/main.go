package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/san-kum/tempograph/internal/config"
	"github.com/san-kum/tempograph/internal/logger"
	"github.com/spf13/cobra"
)

var (
	// Persistent
	configFile string
	dataDir    string
	logLevel   string

	// Roles
	sourceField   string
	targetField   string
	weightField   string
	intervalField string
	preset        string

	// Parsing
	format    string
	delimiter string
	ragged    string
	repair    bool

	// Bounds for deferred interval resolution
	minBound int
	maxBound int

	// Filtering and export
	at       int
	keyword  string
	exportAs string
	outFile  string
	runName  string
	limit    int
	noLabels bool

	cfg    *config.Config
	appLog *log.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:               "tempograph",
		Short:             "map tabular records to graphs and play them through time",
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")

	fieldsCmd := &cobra.Command{
		Use:   "fields [file]",
		Short: "list the fields of a record file",
		Args:  cobra.ExactArgs(1),
		RunE:  showFields,
	}
	parseFlags(fieldsCmd)

	mapCmd := &cobra.Command{
		Use:   "map [file]",
		Short: "map records to nodes and edges",
		Args:  cobra.ExactArgs(1),
		RunE:  mapGraph,
	}
	mapFlags(mapCmd)

	filterCmd := &cobra.Command{
		Use:   "filter [file]",
		Short: "show what is visible at a point in time",
		Args:  cobra.ExactArgs(1),
		RunE:  filterGraph,
	}
	mapFlags(filterCmd)
	filterCmd.Flags().IntVar(&at, "at", 0, "cursor value (defaults to the range minimum)")
	filterCmd.Flags().StringVar(&keyword, "keyword", "", "highlight nodes containing keyword")

	timelineCmd := &cobra.Command{
		Use:   "timeline [file]",
		Short: "plot visible nodes and edges over the time range",
		Args:  cobra.ExactArgs(1),
		RunE:  plotTimeline,
	}
	mapFlags(timelineCmd)

	playCmd := &cobra.Command{
		Use:   "play [file]",
		Short: "play the graph through time in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  playGraph,
	}
	mapFlags(playCmd)

	saveCmd := &cobra.Command{
		Use:   "save [file]",
		Short: "map records and store the graph as a run",
		Args:  cobra.ExactArgs(1),
		RunE:  saveGraph,
	}
	mapFlags(saveCmd)
	saveCmd.Flags().StringVar(&runName, "name", "graph", "run name")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a stored run as json, csv or svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&exportAs, "as", "json", "output format (json, csv, svg)")
	exportCmd.Flags().IntVar(&at, "at", 0, "export visibility at this cursor")
	exportCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	exportCmd.Flags().BoolVar(&noLabels, "no-labels", false, "omit node labels in svg output")

	deleteCmd := &cobra.Command{
		Use:   "delete [run_id]",
		Short: "delete a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  deleteRun,
	}

	batchCmd := &cobra.Command{
		Use:   "batch [file...]",
		Short: "map several files concurrently and summarize them",
		Args:  cobra.MinimumNArgs(1),
		RunE:  batchFiles,
	}
	mapFlags(batchCmd)
	batchCmd.Flags().IntVar(&limit, "limit", 0, "max files mapped at once (0 = GOMAXPROCS)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list role presets",
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration, or write it with --out",
		RunE:  writeConfig,
	}
	configCmd.Flags().StringVarP(&outFile, "out", "o", "", "write config to this path")

	rootCmd.AddCommand(fieldsCmd, mapCmd, filterCmd, timelineCmd, playCmd, saveCmd,
		listCmd, showCmd, exportCmd, deleteCmd, batchCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func parseFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&format, "format", "auto", "input format (auto, csv, tsv, json)")
	cmd.Flags().StringVar(&delimiter, "delimiter", "", "field delimiter for delimited input")
	cmd.Flags().StringVar(&ragged, "ragged", "strict", "rows with wrong column count (strict, pad)")
	cmd.Flags().BoolVar(&repair, "repair", false, "repair malformed json before parsing")
}

func mapFlags(cmd *cobra.Command) {
	parseFlags(cmd)
	cmd.Flags().StringVar(&sourceField, "source", "", "source field")
	cmd.Flags().StringVar(&targetField, "target", "", "target field")
	cmd.Flags().StringVar(&weightField, "weight", "", "weight field")
	cmd.Flags().StringVar(&intervalField, "interval", "", "interval field")
	cmd.Flags().StringVar(&preset, "preset", "", "use role preset")
	cmd.Flags().IntVar(&minBound, "min", 0, "range minimum when no interval parses")
	cmd.Flags().IntVar(&maxBound, "max", 0, "range maximum when no interval parses")
}

// setup loads .env, the config file and the environment, then applies flags
// the user set explicitly.
func setup(cmd *cobra.Command, args []string) error {
	config.LoadEnv()

	cfg = config.DefaultConfig()
	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	}
	cfg.ApplyEnv()

	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("format") {
		cfg.Parse.Format = format
	}
	if flags.Changed("delimiter") {
		cfg.Parse.Delimiter = delimiter
	}
	if flags.Changed("ragged") {
		cfg.Parse.Ragged = ragged
	}
	if flags.Changed("repair") {
		cfg.Parse.Repair = repair
	}

	l, err := logger.New(logger.Params{Level: cfg.LogLevel, Writer: os.Stderr})
	if err != nil {
		return err
	}
	appLog = l
	return nil
}
