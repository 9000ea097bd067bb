// Package export renders the app's state to files: a Markdown report of the
// todo list, an SVG drawing of the outline and a PNG contact sheet of the
// image tiles.
package export

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/vanderheijden86/lazyview/pkg/todo"
	"github.com/vanderheijden86/lazyview/pkg/tree"
)

// TodoMarkdown creates a report of the todo list: a summary followed by open
// tasks and then completed ones, each as a task-list item.
func TodoMarkdown(state todo.SavedState, title string, generated time.Time) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", title))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", generated.Format(time.RFC1123)))

	open, done := 0, 0
	for _, t := range state.Tasks {
		if t.Completed {
			done++
		} else {
			open++
		}
	}
	sb.WriteString("## Summary\n\n")
	sb.WriteString(fmt.Sprintf("- **Total**: %d\n", len(state.Tasks)))
	sb.WriteString(fmt.Sprintf("- **Open**: %d\n", open))
	sb.WriteString(fmt.Sprintf("- **Completed**: %d\n", done))
	sb.WriteString(fmt.Sprintf("- **Filter**: %s\n\n", state.Filter))

	if len(state.Tasks) == 0 {
		sb.WriteString("_" + todo.All.EmptyMessage() + "_\n")
		return sb.String()
	}

	section := func(heading string, completed bool) {
		sb.WriteString("## " + heading + "\n\n")
		n := 0
		for _, t := range state.Tasks {
			if t.Completed != completed {
				continue
			}
			mark := " "
			if completed {
				mark = "x"
			}
			sb.WriteString(fmt.Sprintf("- [%s] %s\n", mark, escapeMarkdown(t.Description)))
			n++
		}
		if n == 0 {
			sb.WriteString("_None._\n")
		}
		sb.WriteString("\n")
	}
	section("Open", false)
	section("Completed", true)

	return strings.TrimRight(sb.String(), "\n") + "\n"
}

// OutlineMarkdown renders every entry of the outline as a nested list,
// including the children of collapsed entries.
func OutlineMarkdown(flat []tree.FlatEntry) string {
	var sb strings.Builder
	for _, e := range flat {
		sb.WriteString(strings.Repeat("  ", e.Depth))
		sb.WriteString("- ")
		sb.WriteString(escapeMarkdown(e.Description))
		sb.WriteString("\n")
	}
	return sb.String()
}

// SaveTodoMarkdown writes the report for state to filename.
func SaveTodoMarkdown(state todo.SavedState, filename string) error {
	content := TodoMarkdown(state, "Todos", time.Now())
	if err := os.WriteFile(filename, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", filename, err)
	}
	return nil
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"\n", " ",
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
