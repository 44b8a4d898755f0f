package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/fragments-cli/internal/core/domain"
)

var (
	searchTags []string
	searchJSON bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search fragments",
	Long: `Filters fragments by free text and tags.

A fragment matches the query when one of its tags equals the query, or
when its title or content contains it, ignoring case. Every --tag given
must be present on the fragment. Results keep collection order.`,
	Example: `  fragments search react
  fragments search --tag programming --tag python
  fragments search hooks -t react --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringArrayVarP(&searchTags, "tag", "t", nil, "require a tag (repeatable)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if filterService == nil {
		return errNotConfigured("search")
	}

	if len(args) == 1 {
		filterService.SetQuery(args[0])
	}
	for _, tag := range searchTags {
		filterService.AddTag(tag)
	}
	state := filterService.State()

	results, err := filterService.Results(cmd.Context())
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if searchJSON {
		return writeFragmentsJSON(out, results)
	}
	return outputSearchResults(cmd, state, results)
}

func outputSearchResults(cmd *cobra.Command, state domain.FilterState, results []domain.Fragment) error {
	out := cmd.OutOrStdout()
	if len(results) == 0 {
		fmt.Fprintln(out, "No fragments found.")
		return nil
	}

	fmt.Fprintf(out, "%d %s\n\n", len(results), plural(len(results), "fragment", "fragments"))
	for i := range results {
		if i > 0 {
			fmt.Fprintln(out)
		}
		writeCard(out, results[i], state.NormalisedQuery())
	}
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
