package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/kamal-hamza/tokenlint/internal/adapters/repository"
	"github.com/kamal-hamza/tokenlint/internal/core/domain"
	"github.com/kamal-hamza/tokenlint/internal/core/services"
	"github.com/kamal-hamza/tokenlint/pkg/config"
	"github.com/kamal-hamza/tokenlint/pkg/layout"
	"github.com/kamal-hamza/tokenlint/pkg/ui"
)

var (
	// Global flags
	cfgFile  string
	rootDir  string
	verbose  bool
	cfgFound bool

	// Loaded configuration
	appConfig    *config.Config
	appLayout    *layout.Layout
	appRules     domain.Rules
	appContracts *domain.OfficialContracts
	appEnv       *viper.Viper
	logger       = zap.NewNop().Sugar()

	// Services
	classifyService    *services.ClassifyService
	validateService    *services.ValidateService
	createTokenService *services.CreateTokenService
	listService        *services.ListService
	gitService         *services.GitService

	// Repositories
	assetTree *repository.FileAssetTree
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tokenlint",
	Short: "Tokenlint - validate token registry submissions",
	Long: ui.StyleTitle.Render("Tokenlint") + " - Token Registry Linter\n\n" +
		"Checks community-submitted token folders (blockchains/<chain>/assets/<address>/)\n" +
		"for checksummed naming, logo constraints, complete metadata and symbol impersonation.",
	PersistentPreRunE: initializeApp,
	PersistentPostRun: func(cmd *cobra.Command, args []string) { syncLogger() },
	SilenceErrors:     true,
	SilenceUsage:      true,
	DisableAutoGenTag: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// A violation has already been reported by the time it reaches here, so only
// other errors are printed.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		var v *domain.Violation
		if !errors.As(err, &v) {
			fmt.Fprintln(os.Stderr, ui.FormatError(err.Error()))
		}
		os.Exit(1)
	}
}

func init() {
	// Add subcommands
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(exploreCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", config.DefaultPath, "Config file")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "root", "r", "", "Registry checkout directory (overrides root_dir)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log classifier and validator decisions to stderr")
}

// initializeApp initializes the application components
func initializeApp(cmd *cobra.Command, args []string) error {
	// Skip initialization for version command
	if cmd.Name() == "version" {
		return nil
	}

	_, statErr := os.Stat(cfgFile)
	cfgFound = statErr == nil

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	appConfig = cfg

	ui.SetTheme(appConfig.ColorTheme)

	logger, err = newLogger(verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLayout, err = appConfig.Layout(rootDir)
	if err != nil {
		return err
	}
	appRules = rulesFromConfig(appConfig)

	raw, err := appConfig.MergedContracts()
	if err != nil {
		return err
	}
	appContracts, err = domain.NewOfficialContracts(raw)
	if err != nil {
		return fmt.Errorf("invalid official contracts: %w", err)
	}

	appEnv = viper.New()
	if err := appEnv.BindEnv(changedFilesKey, appConfig.ChangedFilesEnv); err != nil {
		return fmt.Errorf("failed to bind %s: %w", appConfig.ChangedFilesEnv, err)
	}

	logger.Debugw("configuration loaded",
		"config", cfgFile,
		"found", cfgFound,
		"root", appLayout.RootPath,
		"official_chains", appContracts.Chains(),
	)
	if !appLayout.Exists() {
		logger.Warnw("registry directory not found", "path", appLayout.ChainsPath())
	}

	// Initialize repositories
	assetTree = repository.NewFileAssetTree(afero.NewOsFs(), appLayout)

	// Initialize services
	classifyService = services.NewClassifyService(assetTree, appRules, logger)
	validateService = services.NewValidateService(assetTree, appContracts, appRules, logger)
	createTokenService = services.NewCreateTokenService(assetTree, appConfig, appRules)
	listService = services.NewListService(assetTree, appRules)
	gitService = services.NewGitService(appLayout.RootPath)

	return nil
}

func rulesFromConfig(cfg *config.Config) domain.Rules {
	return domain.Rules{
		RootLabel:      cfg.RootLabel,
		AssetsLabel:    cfg.AssetsLabel,
		LogoFilename:   cfg.LogoFilename,
		InfoFilename:   cfg.InfoFilename,
		MaxDimension:   cfg.MaxDimension,
		MaxFileSizeKB:  cfg.MaxFileSizeKB,
		RequiredFields: cfg.RequiredFields,
	}
}

// newLogger returns a no-op logger unless verbose output was requested
func newLogger(verbose bool) (*zap.SugaredLogger, error) {
	if !verbose {
		return zap.NewNop().Sugar(), nil
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}

func syncLogger() {
	if logger != nil {
		_ = logger.Sync()
	}
}

// getContext returns a context for operations
func getContext() context.Context {
	return context.Background()
}
