package format

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/dhamidi/orgcst/org/parser"
)

// printTable re-aligns a table. Every row takes the indentation of the
// first row, cells are padded to the display width of their column and a
// closing pipe is added. Formula lines are kept as they are.
func (p *OrgPrinter) printTable(n *parser.Node) {
	children := p.body(n)
	if len(children) == 0 {
		return
	}
	indent := p.indentOf(p.lineOf(children[0]))
	widths := p.columnWidths(children)

	for _, c := range children {
		if c.Kind != parser.KindTableRow {
			p.write(p.tree.Text(c))
			continue
		}
		p.write(indent)
		if c.Props.(*parser.TableRowProps).Rule {
			p.printRule(widths)
			continue
		}
		p.write("|")
		for j, cell := range c.ChildrenOfKind(parser.KindTableCell) {
			content := p.cellContent(cell)
			p.write(" " + content)
			p.write(strings.Repeat(" ", widths[j]-runewidth.StringWidth(content)))
			p.write(" |")
		}
		p.write("\n")
	}
}

func (p *OrgPrinter) printRule(widths []int) {
	if len(widths) == 0 {
		widths = []int{1}
	}
	dashes := make([]string, len(widths))
	for j, w := range widths {
		dashes[j] = strings.Repeat("-", w+2)
	}
	p.write("|" + strings.Join(dashes, "+") + "|\n")
}

// columnWidths returns the display width of every column, at least one.
func (p *OrgPrinter) columnWidths(rows []*parser.Node) []int {
	var widths []int
	for _, row := range rows {
		if row.Kind != parser.KindTableRow {
			continue
		}
		for j, cell := range row.ChildrenOfKind(parser.KindTableCell) {
			if j == len(widths) {
				widths = append(widths, 1)
			}
			if w := runewidth.StringWidth(p.cellContent(cell)); w > widths[j] {
				widths[j] = w
			}
		}
	}
	return widths
}

// cellContent returns the text of a cell without its padding.
func (p *OrgPrinter) cellContent(cell *parser.Node) string {
	return strings.Trim(p.tree.Text(cell), " \t\r")
}
