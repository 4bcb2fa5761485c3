package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/kamal-hamza/tokenlint/internal/core/domain"
	"github.com/kamal-hamza/tokenlint/pkg/ui"

	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the health of the registry and configuration",
	Long: `Diagnose issues with the registry checkout and tokenlint setup.

Checks for:
  - Configuration file existence
  - Registry directory and chain layout
  - Loose files sitting directly in an assets directory
  - Official contracts that name chains missing from the registry
  - Required tools (git, for --since)`,
	Run: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) {
	ctx := getContext()

	fmt.Println(ui.FormatTitle("🏥 Tokenlint Doctor"))
	fmt.Println()

	// 1. Check Config
	checkStep("Configuration File", func() error {
		if !cfgFound {
			return fmt.Errorf("missing at %s (using defaults)", cfgFile)
		}
		return nil
	})

	// 2. Check Registry Structure
	checkStep("Registry Directory", func() error {
		if !appLayout.Exists() {
			return fmt.Errorf("not found at %s", appLayout.ChainsPath())
		}
		return nil
	})

	chains, err := assetTree.Chains(ctx)
	if err != nil {
		chains = nil
	}

	checkStep("Chains", func() error {
		if err != nil {
			return err
		}
		if len(chains) == 0 {
			return fmt.Errorf("no chain directories under %s", appLayout.ChainsPath())
		}
		return nil
	})

	checkStep("Assets Directories", func() error {
		var missing []string
		for _, chain := range chains {
			entries, err := assetTree.AssetEntries(ctx, chain)
			if err != nil {
				return err
			}
			if entries == nil {
				missing = append(missing, chain)
			}
		}
		if len(missing) > 0 {
			return fmt.Errorf("missing %s/ in: %s", appRules.AssetsLabel, strings.Join(missing, ", "))
		}
		return nil
	})

	var stray []string
	if !checkStep("Stray Files", func() error {
		for _, chain := range chains {
			entries, err := assetTree.AssetEntries(ctx, chain)
			if err != nil {
				return err
			}
			for name, kind := range entries {
				if kind == domain.EntryFile {
					stray = append(stray, appLayout.RelTokenPath(chain, name))
				}
			}
		}
		if len(stray) > 0 {
			return fmt.Errorf("found %d loose files", len(stray))
		}
		return nil
	}) && len(stray) > 0 {
		sort.Strings(stray)
		fmt.Print(ui.RenderSimpleList(stray))
	}

	// 3. Check Official Contracts
	checkStep(fmt.Sprintf("Official Contracts (%d chains)", len(appContracts.Chains())), func() error {
		present := make(map[string]bool, len(chains))
		for _, chain := range chains {
			present[strings.ToLower(chain)] = true
		}
		var unknown []string
		for _, chain := range appContracts.Chains() {
			if !present[chain] {
				unknown = append(unknown, chain)
			}
		}
		if len(unknown) > 0 {
			return fmt.Errorf("chains not in registry: %s", strings.Join(unknown, ", "))
		}
		return nil
	})

	// 4. Check Dependencies
	checkStep("git (--since)", func() error {
		if _, err := exec.LookPath("git"); err != nil {
			return fmt.Errorf("not found in PATH")
		}
		if !gitService.IsRepository(ctx) {
			return fmt.Errorf("%s is not a git work tree", appLayout.RootPath)
		}
		return nil
	})

	// 5. Check Environment
	checkStep(appConfig.ChangedFilesEnv+" Variable", func() error {
		if os.Getenv(appConfig.ChangedFilesEnv) == "" {
			return fmt.Errorf("not set (validate needs paths, --files, --since or --all)")
		}
		return nil
	})
}

// checkStep runs a check function and prints the result nicely
func checkStep(name string, check func() error) bool {
	err := check()
	if err == nil {
		fmt.Printf("%s %s\n", ui.StyleSuccess.Render(ui.IconSuccess), name)
		return true
	}
	fmt.Printf("%s %s\n", ui.StyleError.Render(ui.IconError), name)
	fmt.Printf("    %s\n", ui.StyleMuted.Render(err.Error()))
	return false
}
