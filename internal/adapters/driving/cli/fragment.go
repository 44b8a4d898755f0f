package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/fragments-cli/internal/adapters/driving/form"
)

var (
	listJSON bool
	showJSON bool
	tagsJSON bool

	fragTitle   string
	fragContent string
	fragType    string
	fragTags    string
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all fragments",
	Long:    `Lists every fragment in the collection in insertion order.`,
	Args:    cobra.NoArgs,
	RunE:    runList,
}

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a fragment",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a fragment",
	Long: `Adds a fragment to the collection. Title and content are required.

Pass --content - to read the content from stdin.

Examples:
  fragments add --title "Go Proverbs" --content "Clear is better than clever." --tags "go, wisdom"
  fragments add --type code --title "Hello" --content - < hello.go`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

var editCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Edit a fragment",
	Long: `Replaces the fields of a fragment. Fields whose flags are not given keep
their current value. --tags replaces the whole tag list.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

var rmCmd = &cobra.Command{
	Use:     "rm [id]",
	Aliases: []string{"delete"},
	Short:   "Delete a fragment",
	Args:    cobra.ExactArgs(1),
	RunE:    runRemove,
}

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List every tag in use",
	Args:  cobra.NoArgs,
	RunE:  runTags,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output fragments as JSON")
	showCmd.Flags().BoolVar(&showJSON, "json", false, "output the fragment as JSON")
	tagsCmd.Flags().BoolVar(&tagsJSON, "json", false, "output tags as JSON")

	for _, c := range []*cobra.Command{addCmd, editCmd} {
		c.Flags().StringVar(&fragTitle, "title", "", "fragment title")
		c.Flags().StringVar(&fragContent, "content", "", "fragment content, or - to read stdin")
		c.Flags().StringVar(&fragType, "type", "text", "text, video, website, code or song")
		c.Flags().StringVar(&fragTags, "tags", "", "comma separated tags")
	}

	rootCmd.AddCommand(listCmd, showCmd, addCmd, editCmd, rmCmd, tagsCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	if fragmentService == nil {
		return errNotConfigured("fragment")
	}

	fragments, err := fragmentService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list fragments: %w", err)
	}

	out := cmd.OutOrStdout()
	if listJSON {
		return writeFragmentsJSON(out, fragments)
	}

	if len(fragments) == 0 {
		fmt.Fprintln(out, "No fragments.")
		return nil
	}
	for i := range fragments {
		if i > 0 {
			fmt.Fprintln(out)
		}
		writeCard(out, fragments[i], "")
	}
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	if fragmentService == nil {
		return errNotConfigured("fragment")
	}

	f, err := fragmentService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("fragment %s: %w", args[0], err)
	}

	if showJSON {
		return writeJSON(cmd.OutOrStdout(), toView(*f))
	}
	writeDetail(cmd.OutOrStdout(), *f)
	return nil
}

func runAdd(cmd *cobra.Command, _ []string) error {
	if fragmentService == nil {
		return errNotConfigured("fragment")
	}

	content, err := readContent(cmd.InOrStdin(), fragContent)
	if err != nil {
		return err
	}

	draft, err := form.Draft(form.Input{
		Title:   fragTitle,
		Content: content,
		Type:    fragType,
		Tags:    fragTags,
	})
	if err != nil {
		return err
	}

	defer subscribePrinter(cmd)()

	f, err := fragmentService.Create(cmd.Context(), draft)
	if err != nil {
		return fmt.Errorf("failed to add fragment: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", f.ID)
	return nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	if fragmentService == nil {
		return errNotConfigured("fragment")
	}

	existing, err := fragmentService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("fragment %s: %w", args[0], err)
	}

	in := form.FromFragment(*existing)
	flags := cmd.Flags()
	if flags.Changed("title") {
		in.Title = fragTitle
	}
	if flags.Changed("content") {
		if in.Content, err = readContent(cmd.InOrStdin(), fragContent); err != nil {
			return err
		}
	}
	if flags.Changed("type") {
		in.Type = fragType
	}
	if flags.Changed("tags") {
		in.Tags = fragTags
	}

	updated, err := form.Apply(*existing, in)
	if err != nil {
		return err
	}

	defer subscribePrinter(cmd)()

	f, err := fragmentService.Update(cmd.Context(), updated)
	if err != nil {
		return fmt.Errorf("failed to update fragment: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", f.ID)
	return nil
}

func runRemove(cmd *cobra.Command, args []string) error {
	if fragmentService == nil {
		return errNotConfigured("fragment")
	}

	defer subscribePrinter(cmd)()

	if err := fragmentService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete fragment %s: %w", args[0], err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
	return nil
}

func runTags(cmd *cobra.Command, _ []string) error {
	if fragmentService == nil {
		return errNotConfigured("fragment")
	}

	tags, err := fragmentService.Tags(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list tags: %w", err)
	}

	out := cmd.OutOrStdout()
	if tagsJSON {
		return writeJSON(out, tags)
	}
	for _, tag := range tags {
		fmt.Fprintln(out, tag)
	}
	return nil
}

// readContent returns flag, or stdin when flag is "-".
func readContent(stdin io.Reader, flag string) (string, error) {
	if flag != "-" {
		return flag, nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("reading content from stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

// subscribePrinter prints change notifications for the duration of a
// command. The returned function unsubscribes.
func subscribePrinter(cmd *cobra.Command) func() {
	if changeFeed == nil {
		return func() {}
	}
	return changeFeed.Subscribe(notificationPrinter(cmd.OutOrStdout()))
}
