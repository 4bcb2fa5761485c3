package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/tokenlint/internal/adapters/reporter"
	"github.com/kamal-hamza/tokenlint/internal/core/services"
)

const changedFilesKey = "changed_files"

var (
	validateFiles  string
	validateAll    bool
	validateFormat string
	validateSince  string
)

var validateCmd = &cobra.Command{
	Use:   "validate [paths...]",
	Short: "Validate the token folders touched by a change-set",
	Long: `Validate every token folder referenced by a list of changed paths.

Changed paths are taken from, in order:
  1. positional arguments
  2. --files (whitespace-separated)
  3. --since <ref> (git diff against the merge base, plus local changes)
  4. the environment variable named by changed_files_env (default ALL_CHANGED_FILES)

Validation stops at the first failing folder and exits with status 1.
A change-set that touches no token folders passes.`,
	Example: `  tokenlint validate blockchains/ethereum/assets/0xdAC17F958D2ee523a2206206994597C13D831ec7/logo.png
  ALL_CHANGED_FILES="$(git diff --name-only main)" tokenlint validate --format github
  tokenlint validate --all`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateFiles, "files", "", "Whitespace-separated changed paths")
	validateCmd.Flags().BoolVarP(&validateAll, "all", "a", false, "Validate every token folder in the registry")
	validateCmd.Flags().StringVarP(&validateFormat, "format", "f", "", "Output format: text or github (default from config)")
	validateCmd.Flags().StringVar(&validateSince, "since", "", "Validate paths changed since this git ref")
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	format := validateFormat
	if format == "" {
		format = appConfig.OutputFormat
	}
	rep, err := reporter.New(format, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	var paths []string
	if !validateAll {
		paths, err = resolveChangedFiles(cmd, args)
		if err != nil {
			return err
		}
	}

	batch := services.NewBatchService(classifyService, validateService, rep, logger)
	resp, err := batch.Execute(ctx, services.BatchRequest{
		Paths: paths,
		All:   validateAll,
	})
	if err != nil {
		return fmt.Errorf("validation aborted: %w", err)
	}

	if resp.Failed() {
		return resp.Violation
	}
	return nil
}

// resolveChangedFiles picks the change-set from the first source that is set
func resolveChangedFiles(cmd *cobra.Command, args []string) ([]string, error) {
	if len(args) > 0 {
		var paths []string
		for _, arg := range args {
			paths = append(paths, services.SplitChangedFiles(arg)...)
		}
		return paths, nil
	}

	if cmd.Flags().Changed("files") {
		return services.SplitChangedFiles(validateFiles), nil
	}

	if validateSince != "" {
		files, err := gitService.ChangedFiles(getContext(), validateSince)
		if err != nil {
			return nil, err
		}
		logger.Debugw("changed files from git", "since", validateSince, "count", len(files))
		return files, nil
	}

	raw := appEnv.GetString(changedFilesKey)
	logger.Debugw("changed files from environment", "env", appConfig.ChangedFilesEnv, "set", raw != "")
	return services.SplitChangedFiles(raw), nil
}
