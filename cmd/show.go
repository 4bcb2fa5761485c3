package cmd

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/tokenlint/internal/core/domain"
	"github.com/kamal-hamza/tokenlint/internal/core/services"
	"github.com/kamal-hamza/tokenlint/pkg/address"
	"github.com/kamal-hamza/tokenlint/pkg/metadata"
	"github.com/kamal-hamza/tokenlint/pkg/ui"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <chain> <address|query>",
	Short: "Show a token folder and its validation result",
	Long: `Print a token's metadata with syntax highlighting, followed by the result
of running every check against its folder.

The second argument may be the folder name, the address in any casing, or a
search query on symbol, name or address; the best match is shown.

Examples:
  tokenlint show ethereum 0xdAC17F958D2ee523a2206206994597C13D831ec7
  tokenlint show ethereum usdt`,
	Args: cobra.ExactArgs(2),
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	entry, err := resolveToken(args[0], args[1])
	if err != nil {
		fmt.Println(ui.FormatWarning(err.Error()))
		return nil
	}
	key := entry.Key

	fmt.Println(ui.FormatTitle(fmt.Sprintf("%s on %s", orDash(entry.Symbol), key.Chain)))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Chain", ui.IconChain+" "+key.Chain))
	fmt.Println(ui.RenderKeyValue("Address", key.Token))
	fmt.Println(ui.RenderKeyValue("Name", orDash(entry.Name)))
	fmt.Println(ui.RenderKeyValue("Type", orDash(entry.Type)))
	fmt.Println(ui.RenderKeyValue("Status", orDash(entry.Status)))
	fmt.Println(ui.RenderKeyValue("Folder", appLayout.RelTokenPath(key.Chain, key.Token)))
	fmt.Println(ui.RenderKeyValue("Logo", presence(entry.HasLogo)))
	fmt.Println()

	if entry.HasInfo {
		content, err := assetTree.ReadFile(ctx, key, appRules.InfoFilename)
		if err != nil {
			return err
		}
		fmt.Println(ui.StyleHeader.Render(appRules.InfoFilename))
		fmt.Println(highlightJSON(content))
		fmt.Println()
	}

	result, err := validateService.Check(ctx, key)
	if err != nil {
		return err
	}
	if result.Passed() {
		fmt.Println(ui.FormatSuccess("All checks passed"))
	} else {
		fmt.Println(ui.FormatError(result.Violation.Message))
		fmt.Println(ui.StyleSubtle.Render("    " + string(result.Violation.Kind)))
	}

	return nil
}

// resolveToken finds a folder by exact name, by checksummed address, or by
// the best search match on the chain
func resolveToken(chain, query string) (domain.TokenEntry, error) {
	ctx := getContext()

	candidates := []string{query}
	if address.IsValid(query) {
		if sum, err := address.Checksum(query); err == nil && sum != query {
			candidates = append(candidates, sum)
		}
	}
	for _, name := range candidates {
		if entry, err := listService.Get(ctx, domain.FolderKey{Chain: chain, Token: name}); err == nil {
			return entry, nil
		}
	}

	resp, err := listService.Search(ctx, services.SearchRequest{Chain: chain, Query: query})
	if err != nil {
		return domain.TokenEntry{}, err
	}
	if resp.Total == 0 {
		return domain.TokenEntry{}, fmt.Errorf("no token on %s matching: %s", chain, query)
	}
	return resp.Tokens[0], nil
}

// highlightJSON pretty-prints and colors JSON content for the terminal.
// Content that does not parse is highlighted as-is.
func highlightJSON(content []byte) string {
	text := string(content)
	if pretty, err := metadata.Pretty(content); err == nil {
		text = string(pretty)
	}

	lexer := lexers.Get("json")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.TTY16m

	var buf strings.Builder
	iterator, err := lexer.Tokenise(nil, text)
	if err != nil {
		return text
	}

	err = formatter.Format(&buf, style, iterator)
	if err != nil {
		return text
	}

	return strings.TrimRight(buf.String(), "\n")
}
