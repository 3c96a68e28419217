package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/client-research/internal/config"
	"github.com/jonathan/client-research/internal/fetch"
	"github.com/jonathan/client-research/internal/llm"
	"github.com/jonathan/client-research/internal/logging"
	"github.com/jonathan/client-research/internal/research"
)

// stringFlags maps flag names to the config fields they override.
func stringFlags(c *config.Config) map[string]*string {
	return map[string]*string{
		"url":        &c.SeedURL,
		"company":    &c.Company,
		"role":       &c.Role,
		"provider":   &c.Provider,
		"model":      &c.Model,
		"base-url":   &c.BaseURL,
		"api-key":    &c.APIKey,
		"user-agent": &c.UserAgent,
		"output-dir": &c.OutputDir,
		"format":     &c.Format,
	}
}

// resolveConfig merges explicitly set flags over the config file and defaults.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	var overrides config.Config
	for name, dst := range stringFlags(&overrides) {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			*dst = f.Value.String()
		}
	}
	if f := cmd.Flags().Lookup("timeout"); f != nil && f.Changed {
		v, err := cmd.Flags().GetInt("timeout")
		if err != nil {
			return config.Config{}, err
		}
		overrides.TimeoutSeconds = v
	}
	if f := cmd.Flags().Lookup("verbose"); f != nil && f.Changed {
		overrides.Verbose, _ = cmd.Flags().GetBool("verbose")
	} else {
		overrides.Verbose = fileCfg.Verbose
	}

	cfg := overrides.MergeWithDefaults(fileCfg)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newFetcher builds the page fetcher from the fetch settings.
func newFetcher(cfg config.Config) *fetch.Fetcher {
	return fetch.NewFetcher(nil, &fetch.Options{
		Timeout:   time.Duration(cfg.TimeoutSeconds) * time.Second,
		UserAgent: cfg.UserAgent,
	})
}

// newSummarizer builds the LLM client for the configured provider.
func newSummarizer(ctx context.Context, cfg config.Config) (llm.Client, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = config.APIKeyFromEnv(cfg.Provider)
	}
	if apiKey == "" {
		envName := config.EnvOpenAIKey
		if cfg.Provider == string(llm.ProviderGemini) {
			envName = config.EnvGeminiKey
		}
		return nil, fmt.Errorf("API key required: set --api-key flag or %s environment variable", envName)
	}

	llmCfg := llm.ConfigFor(cfg.Provider)
	llmCfg.BaseURL = cfg.BaseURL
	if cfg.Model != "" {
		llmCfg = llmCfg.WithModel(llm.TierAdvanced, cfg.Model)
	}

	logger.Debug("creating summarizer",
		zap.String("provider", string(llmCfg.Provider)),
		zap.String("model", llmCfg.GetModel(llm.TierAdvanced)),
		logging.Redact("api_key", apiKey),
	)
	return llm.NewClient(ctx, llmCfg, apiKey)
}

// newWebsiteFinder returns nil when search credentials are not configured.
func newWebsiteFinder(ctx context.Context) (*research.WebsiteFinder, error) {
	key, cx := config.SearchCredentialsFromEnv()
	if key == "" || cx == "" {
		return nil, nil
	}
	return research.NewWebsiteFinder(ctx, key, cx)
}

// resolveSeed returns the seed URL, looking the company up when only a name is set.
func resolveSeed(ctx context.Context, cfg config.Config) (string, error) {
	if cfg.SeedURL != "" {
		return cfg.SeedURL, nil
	}
	if cfg.Company == "" {
		return "", fmt.Errorf("a seed URL or company name is required: set --url or --company")
	}

	finder, err := newWebsiteFinder(ctx)
	if err != nil {
		return "", err
	}
	if finder == nil {
		return "", fmt.Errorf("company lookup requires %s and %s; pass --url instead", config.EnvSearchKey, config.EnvSearchEngine)
	}

	seed, err := finder.Find(ctx, cfg.Company)
	if err != nil {
		return "", err
	}
	logger.Info("resolved company website", zap.String("company", cfg.Company), zap.String("url", seed))
	return seed, nil
}

// addInputFlags registers the seed and fetch flags shared by research and scrape.
func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("url", "u", "", "Company home page URL")
	cmd.Flags().String("company", "", "Company name, resolved to a URL via web search (needs "+config.EnvSearchKey+" and "+config.EnvSearchEngine+")")
	cmd.Flags().Int("timeout", config.DefaultTimeoutSeconds, "Per-request fetch timeout in seconds")
	cmd.Flags().String("user-agent", "", "User-Agent header for page fetches")
	cmd.Flags().BoolP("verbose", "v", false, "Print gathered pages and team members")
}
