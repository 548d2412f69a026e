package cmd

import (
	"context"
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vrothberg/testing-farm-package-analyzer/application"
	"github.com/vrothberg/testing-farm-package-analyzer/config"
	"github.com/vrothberg/testing-farm-package-analyzer/domain"
	providerPkg "github.com/vrothberg/testing-farm-package-analyzer/infrastructure/provider"
	glProv "github.com/vrothberg/testing-farm-package-analyzer/infrastructure/provider/gitlab"
)

func runAnalyze(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	if verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyFlagOverrides(cmd, cfg)

	if validateErr := config.Validate(cfg); validateErr != nil {
		return validateErr
	}

	registry := buildProviderRegistry()
	provider, err := registry.Get(cfg.Provider, domain.ProviderSettings{
		Token:     cfg.Token,
		BaseURL:   cfg.BaseURL,
		PageDelay: cfg.RequestDelay(),
	})
	if err != nil {
		return err
	}

	svc := application.NewAnalyzeService(provider, application.Options{
		Group:         cfg.Group,
		OutputPath:    cfg.Output,
		Delay:         cfg.RequestDelay(),
		RequiredTools: cfg.RequiredTools,
		Out:           os.Stdout,
	})

	return svc.Run(ctx)
}

// loadConfig reads the configured or auto-detected config file, falling
// back to defaults when none exists.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		found, err := config.FindConfigFile()
		if err != nil {
			return config.Default(), nil
		}
		path = found
	}

	logger.Infof("Using config file: %s", path)
	return config.Load(path)
}

// applyFlagOverrides lets command-line flags win over file values.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	if groupPath != "" {
		cfg.Group = groupPath
	}
	if outputPath != "" {
		cfg.Output = outputPath
	}
	if token != "" {
		cfg.Token = config.ResolveToken(token)
	}
	if cmd.Flags().Changed("delay") {
		cfg.RequestDelayMS = delayMS
	}
}

func buildProviderRegistry() *providerPkg.Registry {
	reg := providerPkg.NewRegistry()
	reg.Register("gitlab", glProv.New)
	return reg
}
