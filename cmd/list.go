package cmd

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/tokenlint/internal/core/domain"
	"github.com/kamal-hamza/tokenlint/internal/core/services"
	"github.com/kamal-hamza/tokenlint/pkg/ui"
)

var (
	listQuery       string
	listInteractive bool
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:     "list [chain]",
	Short:   "List token folders in the registry",
	Aliases: []string{"ls"},
	Long: `List token folders in a table, sorted by chain, symbol and address.

Examples:
  tokenlint list
  tokenlint list memecore
  tokenlint list --query usdt
  tokenlint list -i          # pick one and copy its address`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "Filter by chain, address, name or symbol")
	listCmd.Flags().BoolVarP(&listInteractive, "interactive", "i", false, "Pick a token with a fuzzy finder and copy its address")
}

func runList(cmd *cobra.Command, args []string) error {
	req := services.ListRequest{Query: listQuery}
	if len(args) == 1 {
		req.Chain = args[0]
	}

	ctx := getContext()
	resp, err := listService.Execute(ctx, req)
	if err != nil {
		fmt.Println(ui.FormatError("Failed to list tokens"))
		return err
	}

	if resp.Total == 0 {
		if req.Chain != "" || req.Query != "" {
			fmt.Println(ui.FormatWarning("No tokens match the filter"))
		} else {
			fmt.Println(ui.FormatWarning("No tokens found under " + appLayout.ChainsPath()))
			fmt.Println(ui.FormatInfo("Create your first token folder with: tokenlint add <chain> <address>"))
		}
		return nil
	}

	if listInteractive {
		return pickToken(resp.Tokens)
	}

	title := "Tokens"
	if req.Chain != "" {
		title = fmt.Sprintf("Tokens on %s", req.Chain)
	}
	fmt.Println(ui.FormatTitle(title))
	fmt.Println()

	fmt.Print(renderTokenTable(resp.Tokens))
	fmt.Println()

	fmt.Println(ui.FormatMuted(fmt.Sprintf("Total: %d tokens", resp.Total)))

	return nil
}

func renderTokenTable(tokens []domain.TokenEntry) string {
	table := ui.NewTable([]ui.TableColumn{
		{Header: "Chain", Width: 10, Align: "left"},
		{Header: "Symbol", Width: 8, Align: "left"},
		{Header: "Name", Width: 24, Align: "left"},
		{Header: "Address", Width: 42, Align: "left"},
		{Header: "Logo", Align: "center"},
		{Header: "Info", Align: "center"},
	})

	for _, t := range tokens {
		table.AddRow([]string{
			t.Key.Chain,
			orDash(t.Symbol),
			ui.Truncate(orDash(t.Name), 24),
			t.Key.Token,
			presence(t.HasLogo),
			infoPresence(t),
		})
	}
	return table.Render()
}

// pickToken opens a fuzzy finder and copies the chosen address
func pickToken(tokens []domain.TokenEntry) error {
	idx, err := fuzzyfinder.Find(
		tokens,
		func(i int) string {
			t := tokens[i]
			return fmt.Sprintf("%s  %s  %s  %s", t.Key.Chain, t.Symbol, t.Name, t.Key.Token)
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			return tokenPreview(tokens[i])
		}),
	)
	if err != nil {
		// Aborted
		return nil
	}

	selected := tokens[idx]
	fmt.Println(ui.FormatSuccess(fmt.Sprintf("[%s] %s %s", selected.Key.Chain, orDash(selected.Symbol), selected.Key.Token)))

	if err := clipboard.WriteAll(selected.Key.Token); err != nil {
		fmt.Println(ui.FormatMuted("(Clipboard access failed)"))
		return nil
	}
	fmt.Println(ui.FormatMuted("Address copied to clipboard"))
	return nil
}

func tokenPreview(t domain.TokenEntry) string {
	var s strings.Builder
	s.WriteString(fmt.Sprintf("Chain:   %s\n", t.Key.Chain))
	s.WriteString(fmt.Sprintf("Address: %s\n", t.Key.Token))
	s.WriteString("\n")
	s.WriteString(fmt.Sprintf("Name:    %s\n", orDash(t.Name)))
	s.WriteString(fmt.Sprintf("Symbol:  %s\n", orDash(t.Symbol)))
	s.WriteString(fmt.Sprintf("Type:    %s\n", orDash(t.Type)))
	s.WriteString(fmt.Sprintf("Status:  %s\n", orDash(t.Status)))
	s.WriteString("\n")
	s.WriteString(fmt.Sprintf("%s %s\n", presence(t.HasLogo), appRules.LogoFilename))
	s.WriteString(fmt.Sprintf("%s %s\n", infoPresence(t), appRules.InfoFilename))
	if t.InfoErr != "" {
		s.WriteString("\n" + t.InfoErr + "\n")
	}
	return s.String()
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func presence(ok bool) string {
	return ui.FormatStatus(ok)
}

func infoPresence(t domain.TokenEntry) string {
	if t.HasInfo && t.InfoErr != "" {
		return ui.StyleWarning.Render(ui.IconWarning)
	}
	return presence(t.HasInfo)
}
