package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/tokenlint/internal/core/services"
	"github.com/kamal-hamza/tokenlint/pkg/ui"
)

var addForce bool

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add <chain> <address>",
	Short: "Scaffold a new token folder",
	Long: `Create blockchains/<chain>/assets/<checksummed address>/ with an info.json
template containing every required field.

The address may be given in any casing; the folder is always named with the
EIP-55 checksum. The logo is not created.

Examples:
  tokenlint add memecore 0x1234567890abcdef1234567890abcdef12345678
  tokenlint add ethereum 0xdac17f958d2ee523a2206206994597c13d831ec7 --force`,
	Args: cobra.ExactArgs(2),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().BoolVar(&addForce, "force", false, "Overwrite an existing info.json")
}

func runAdd(cmd *cobra.Command, args []string) error {
	req := services.CreateTokenRequest{
		Chain:   args[0],
		Address: args[1],
		Force:   addForce,
	}

	ctx := getContext()
	resp, err := createTokenService.Execute(ctx, req)
	if err != nil {
		fmt.Println(ui.FormatError("Failed to create token folder"))
		return err
	}

	fmt.Println(ui.FormatSuccess("Created folder: " + appLayout.RelTokenPath(resp.Key.Chain, resp.Key.Token)))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Chain", resp.Key.Chain))
	fmt.Println(ui.RenderKeyValue("Address", resp.Key.Token))
	fmt.Println(ui.RenderKeyValue("Metadata", resp.InfoPath))
	fmt.Println()
	fmt.Println(ui.FormatHint(fmt.Sprintf("Please add your '%s' here and edit '%s'.", appRules.LogoFilename, appRules.InfoFilename)))

	return nil
}
