package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/thoughts"
	"github.com/aretw0/thoughts/pkg/view"
)

const shellHelp = `Type a thought and press enter to save it.
End a line with \ to continue the thought on the next line.
Commands:
  :category <name>  select the category for the next thoughts
  :search <query>   list thoughts matching query
  :list             list all thoughts
  :delete <id>      delete a thought
  :help             show this help
  :quit             leave the shell
`

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive session for capturing thoughts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		nb, err := openNotebook()
		if err != nil {
			return err
		}
		defer nb.Close()

		form := view.NewForm(nb)
		form.Category = cfg.Category()
		return runShell(cmd.InOrStdin(), cmd.OutOrStdout(), nb, form)
	},
}

func runShell(in io.Reader, out io.Writer, nb *thoughts.Notebook, form *view.Form) error {
	scanner := bufio.NewScanner(in)
	var pending []string

	prompt := func() {
		if len(pending) > 0 {
			fmt.Fprint(out, "... ")
			return
		}
		fmt.Fprintf(out, "[%s]> ", form.Category)
	}

	submit := func() {
		form.SetDraft(strings.Join(pending, "\n"))
		pending = pending[:0]
		if t, ok := form.Submit(); ok {
			fmt.Fprintf(out, "Added %s [%s]\n", t.ID, t.Category)
		}
	}

	prompt()
	for scanner.Scan() {
		line := scanner.Text()

		if len(pending) == 0 && strings.HasPrefix(line, ":") {
			if quit := shellCommand(out, nb, form, line); quit {
				return nil
			}
			prompt()
			continue
		}

		if cont, ok := strings.CutSuffix(line, `\`); ok {
			pending = append(pending, cont)
			prompt()
			continue
		}
		pending = append(pending, line)
		submit()
		prompt()
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	// Input ended in the middle of a continued thought.
	if len(pending) > 0 {
		fmt.Fprintln(out)
		submit()
	}
	return nil
}

// shellCommand runs a colon command and reports whether the session should end.
func shellCommand(out io.Writer, nb *thoughts.Notebook, form *view.Form, line string) bool {
	name, arg, _ := strings.Cut(strings.TrimPrefix(line, ":"), " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "q", "quit", "exit":
		return true
	case "c", "category":
		if arg == "" {
			fmt.Fprintf(out, "Category: %s\n", form.Category)
			return false
		}
		if err := form.Select(arg); err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
		}
	case "s", "search":
		renderTo(out, nb.Search(arg))
	case "l", "list":
		renderTo(out, nb.All())
	case "d", "delete":
		if arg == "" {
			fmt.Fprintln(out, "Usage: :delete <id>")
			return false
		}
		if nb.Remove(arg) {
			fmt.Fprintf(out, "Deleted %s\n", arg)
		}
	case "h", "help":
		fmt.Fprint(out, shellHelp)
	default:
		fmt.Fprintf(out, "Unknown command %q, try :help\n", name)
	}
	return false
}

func renderTo(out io.Writer, list []thoughts.Thought) {
	if err := view.RenderList(out, list, view.RenderOptions{}); err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
	}
}

func init() {
	rootCmd.AddCommand(shellCmd)
}
