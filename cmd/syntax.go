package cmd

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/zjrosen/sieve/internal/ui/markdown"
)

//go:embed syntax.md
var syntaxReference string

var syntaxCmd = &cobra.Command{
	Use:   "syntax",
	Short: "Show the filter language reference",
	RunE: func(cmd *cobra.Command, _ []string) error {
		width, _ := cmd.Flags().GetInt("width")
		noColor, _ := cmd.Flags().GetBool("no-color")

		style := markdown.StyleFor(lipgloss.HasDarkBackground())
		if noColor {
			style = markdown.StyleNoTTY
		}
		r, err := markdown.New(width, style)
		if err != nil {
			return fmt.Errorf("creating markdown renderer: %w", err)
		}
		out, err := r.Render(syntaxReference)
		if err != nil {
			return fmt.Errorf("rendering reference: %w", err)
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	},
}

func init() {
	syntaxCmd.Flags().Int("width", 80, "wrap width")
	syntaxCmd.Flags().Bool("no-color", false, "render without colors")
	rootCmd.AddCommand(syntaxCmd)
}
