package format

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dhamidi/orgcst/org/parser"
)

var (
	todoStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6188"))
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#A9DC76"))
	priorityStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD866"))
	tagStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#727072"))
	titleStyles   = []lipgloss.Style{
		lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#78DCE8")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#AB9DF2")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#FC9867")),
	}
)

// OutlineEncoder prints the headline hierarchy of a document, two spaces
// of indentation per level. With styled set, keywords, priorities, titles
// and tags are colored.
type OutlineEncoder struct {
	w      io.Writer
	styled bool
	tree   *parser.Tree
}

func NewOutlineEncoder(w io.Writer, styled bool) *OutlineEncoder {
	return &OutlineEncoder{w: w, styled: styled}
}

func (e *OutlineEncoder) Encode(tree *parser.Tree) error {
	e.tree = tree
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *OutlineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	for _, h := range e.tree.Headlines() {
		props := h.Props.(*parser.HeadlineProps)
		sb.WriteString(strings.Repeat("  ", props.Level-1))

		var parts []string
		if kw := props.TodoKeyword; kw != "" {
			if props.TodoType == "done" {
				parts = append(parts, e.render(doneStyle, kw))
			} else {
				parts = append(parts, e.render(todoStyle, kw))
			}
		}
		if props.Priority != 0 {
			parts = append(parts, e.render(priorityStyle, "[#"+string(props.Priority)+"]"))
		}
		title := props.RawValue
		if title == "" {
			title = "(untitled)"
		}
		parts = append(parts, e.render(titleStyles[(props.Level-1)%len(titleStyles)], title))
		if len(props.Tags) > 0 {
			parts = append(parts, e.render(tagStyle, ":"+strings.Join(props.Tags, ":")+":"))
		}

		sb.WriteString(strings.Join(parts, " "))
		sb.WriteString("\n")
	}
	return []byte(sb.String()), nil
}

func (e *OutlineEncoder) render(style lipgloss.Style, s string) string {
	if !e.styled {
		return s
	}
	return style.Render(s)
}
