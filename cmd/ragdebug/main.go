package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"ragdebug/internal/analysis"
	"ragdebug/internal/config"
	"ragdebug/internal/domain"
	"ragdebug/internal/featurestore"
	"ragdebug/internal/featurestore/mock"
	"ragdebug/internal/featurestore/rest"
	"ragdebug/internal/report"
	"ragdebug/internal/tui"
)

var (
	cfgPath     string
	useMock     bool
	serviceName string
	joinKeysRaw string
	requestRaw  string
	query       string
)

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:   "ragdebug",
		Short: "Diagnose the quality of retrieved RAG context",
		Long: `Fetches the context feature vector for a RAG feature service and
diagnoses its quality: per-chunk relevance, semantic diversity and an
overall health verdict.

Mock mode needs no credentials; service names containing green, yellow,
red, irrelevant, repetitive or fail select the demo scenario.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/ragdebug/config.yaml if not provided)")
	root.PersistentFlags().BoolVar(&useMock, "mock", false, "Run against the built-in mock client instead of a live feature store")
	root.PersistentFlags().StringVarP(&serviceName, "service", "s", "", "Feature service name (defaults from config)")
	root.PersistentFlags().StringVar(&joinKeysRaw, "join-keys", "{}", `Join keys as JSON (e.g. '{"user_id": "user_465"}')`)
	root.PersistentFlags().StringVar(&requestRaw, "request-data", "{}", "Request-time context as JSON")
	root.PersistentFlags().StringVarP(&query, "query", "q", "", "User query to pass as request context")

	root.AddCommand(newAnalyzeCmd(), newDashboardCmd(), newInspectCmd())

	if err := root.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze",
		Short: "Analyze retrieved context and print a text report",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, fv, err := fetchVector()
			if err != nil {
				return err
			}
			result := analysis.AnalyzeRetrievedContext(fv)
			fmt.Print(report.Format(result, report.Options{MaxChunkChars: cfg.Report.MaxChunkChars}))
			return nil
		},
	}
}

func newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Analyze retrieved context in an interactive dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, fv, err := fetchVector()
			if err != nil {
				return err
			}
			result := analysis.AnalyzeRetrievedContext(fv)
			m := tui.New(result, effectiveService(cfg))
			_, err = tea.NewProgram(m).Run()
			return err
		},
	}
}

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Inspect feature freshness and serving SLO for the vector",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, fv, err := fetchVector()
			if err != nil {
				return err
			}
			rep := analysis.AnalyzeFeatureVector(fv)
			fmt.Print(report.FormatVector(rep, report.Options{ShowRawFeatures: true}))
			return nil
		},
	}
}

// fetchVector loads config, builds the provider and retrieves the
// feature vector. A nil vector is a valid outcome the analyzer handles.
func fetchVector() (*config.AppConfig, *domain.FeatureVector, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	joinKeys := map[string]any{}
	if err := json.Unmarshal([]byte(joinKeysRaw), &joinKeys); err != nil {
		return nil, nil, fmt.Errorf("invalid JSON in --join-keys: %w", err)
	}
	requestData := map[string]any{}
	if err := json.Unmarshal([]byte(requestRaw), &requestData); err != nil {
		return nil, nil, fmt.Errorf("invalid JSON in --request-data: %w", err)
	}
	if query != "" {
		requestData["query"] = query
	}

	provider, live, err := buildProvider(cfg)
	if err != nil {
		return nil, nil, err
	}

	mode := "MOCK"
	if live {
		mode = "LIVE"
	}
	fmt.Printf("Running in %s mode against %s\n", color.New(color.Bold).Sprint(mode), color.New(color.Bold).Sprint(effectiveService(cfg)))

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.FeatureStore.TimeoutSecs)*time.Second)
	defer cancel()

	var sp *spinner.Spinner
	if live {
		sp = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		sp.Suffix = " Retrieving context vector..."
		sp.Start()
	}
	fv, err := provider.FetchContextVector(ctx, effectiveService(cfg), joinKeys, requestData)
	if sp != nil {
		sp.Stop()
	}
	if err != nil {
		return nil, nil, err
	}
	return cfg, fv, nil
}

func buildProvider(cfg *config.AppConfig) (featurestore.Provider, bool, error) {
	if useMock {
		return mock.NewClient(), false, nil
	}
	if cfg.FeatureStore.URL == "" {
		return nil, false, fmt.Errorf("feature_store.url is not configured; set it in the config file or use --mock")
	}
	apiKey := os.Getenv(cfg.FeatureStore.APIKeyEnv)
	if apiKey == "" {
		return nil, false, fmt.Errorf("%s environment variable not set; use --mock to run without credentials", cfg.FeatureStore.APIKeyEnv)
	}
	return rest.NewClient(rest.Config{
		URL:       cfg.FeatureStore.URL,
		APIKey:    apiKey,
		Workspace: cfg.FeatureStore.Workspace,
		Timeout:   time.Duration(cfg.FeatureStore.TimeoutSecs) * time.Second,
	}), true, nil
}

func loadConfig() (*config.AppConfig, error) {
	if cfgPath == "" {
		cfg, _, err := config.LoadDefault()
		return cfg, err
	}
	return config.Load(cfgPath)
}

func effectiveService(cfg *config.AppConfig) string {
	if serviceName != "" {
		return serviceName
	}
	return cfg.FeatureStore.Service
}
