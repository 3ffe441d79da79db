// cmd/benchlogcli/list_commands.go
package benchlogcli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// commandsCmd implements 'list commands', which prints the available
// commands and subcommands in a hierarchical, indented, two-column format.
var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List all commands and subcommands in two columns",
	Long:  `The 'commands' subcommand lists all commands and subcommands in a hierarchical, indented format, with the command path in the first column and its short description in the second column.`,
	Run: func(cmd *cobra.Command, args []string) {
		writeCommandTree(cmd.OutOrStdout(), rootCmd)
	},
}

func init() {
	listCmd.AddCommand(commandsCmd)
}

// commandRow is one line of the command tree.
type commandRow struct {
	depth int
	path  string
	short string
}

// commandRows flattens the tree under cmd depth-first. Hidden commands and
// their children are left out.
func commandRows(cmd *cobra.Command, depth int) []commandRow {
	rows := []commandRow{{depth: depth, path: cmd.CommandPath(), short: cmd.Short}}
	for _, sc := range cmd.Commands() {
		if sc.Hidden {
			continue
		}
		rows = append(rows, commandRows(sc, depth+1)...)
	}
	return rows
}

// writeCommandTree writes the tree under root with paths indented by depth
// and short descriptions aligned in a second column.
func writeCommandTree(w io.Writer, root *cobra.Command) {
	rows := commandRows(root, 0)
	cells := make([]string, len(rows))
	width := 0
	for i, r := range rows {
		cells[i] = strings.Repeat("  ", r.depth) + r.path
		width = max(width, lipgloss.Width(cells[i]))
	}

	pathCol := lipgloss.NewStyle().Width(width + 2)
	fmt.Fprintln(w, "Commands and Subcommands:")
	for i, r := range rows {
		fmt.Fprintf(w, "  %s%s\n", pathCol.Render(cells[i]), r.short)
	}
}
