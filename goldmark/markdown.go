package goldmark

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const defaultWidth = 80

// inlineMath matches $...$ spans on a single line.
var inlineMath = regexp.MustCompile(`\$[^$\n]+\$`)

// Render parses markdown source and returns ANSI-styled terminal output
// wrapped to width. Inline $...$ formulas keep their delimiters and get the
// theme's math color; a formula split by emphasis markers is left plain.
func Render(source string, width int, theme Theme) string {
	if strings.TrimSpace(source) == "" {
		return ""
	}
	if width <= 0 {
		width = defaultWidth
	}
	src := []byte(source)
	r := &renderer{
		source: src,
		width:  width,
		styles: newStyles(theme),
	}
	doc := goldmark.DefaultParser().Parse(text.NewReader(src))
	r.blocks(doc, &r.out)
	return strings.TrimRight(r.out.String(), "\n")
}

type styles struct {
	bold      lipgloss.Style
	italic    lipgloss.Style
	heading   lipgloss.Style
	math      lipgloss.Style
	muted     lipgloss.Style
	underline lipgloss.Style
}

func newStyles(theme Theme) styles {
	return styles{
		bold:      lipgloss.NewStyle().Bold(true),
		italic:    lipgloss.NewStyle().Italic(true),
		heading:   lipgloss.NewStyle().Foreground(color(theme.Accent)).Bold(true),
		math:      lipgloss.NewStyle().Foreground(color(theme.Math)),
		muted:     lipgloss.NewStyle().Foreground(color(theme.Muted)).Faint(true),
		underline: lipgloss.NewStyle().Underline(true),
	}
}

type renderer struct {
	source []byte
	width  int
	styles styles
	out    bytes.Buffer
}

func (r *renderer) blocks(parent ast.Node, buf *bytes.Buffer) {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		r.block(n, buf)
		if n.NextSibling() != nil {
			buf.WriteString("\n")
		}
	}
}

func (r *renderer) block(node ast.Node, buf *bytes.Buffer) {
	switch n := node.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		r.wrapped(buf, "", r.inlines(n), r.width)

	case *ast.Heading:
		r.wrapped(buf, "", r.styles.heading.Render(r.inlines(n)), r.width)

	case *ast.FencedCodeBlock:
		if lang := string(n.Language(r.source)); lang != "" {
			buf.WriteString(r.styles.muted.Render(lang) + "\n")
		}
		r.code(n, buf)

	case *ast.CodeBlock:
		r.code(n, buf)

	case *ast.Blockquote:
		var inner bytes.Buffer
		r.blocks(n, &inner)
		bar := r.styles.muted.Render("┃") + " "
		for _, line := range strings.Split(strings.TrimRight(inner.String(), "\n"), "\n") {
			buf.WriteString(bar + line + "\n")
		}

	case *ast.List:
		r.list(n, buf, 0)

	case *ast.ThematicBreak:
		buf.WriteString(r.styles.muted.Render(strings.Repeat("─", min(r.width, 40))) + "\n")

	case *ast.HTMLBlock:
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(r.source))
		}

	default:
		r.blocks(node, buf)
	}
}

// code writes the block's lines verbatim behind a gutter.
func (r *renderer) code(n ast.Node, buf *bytes.Buffer) {
	gutter := r.styles.muted.Render("│") + " "
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.WriteString(gutter + strings.TrimRight(string(seg.Value(r.source)), "\n") + "\n")
	}
}

func (r *renderer) list(n *ast.List, buf *bytes.Buffer, depth int) {
	indent := strings.Repeat("  ", depth)
	num := n.Start
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		item, ok := c.(*ast.ListItem)
		if !ok {
			continue
		}
		marker := "• "
		if n.IsOrdered() {
			marker = fmt.Sprintf("%d. ", num)
			num++
		}

		var pending bytes.Buffer
		flush := func() {
			if pending.Len() == 0 {
				return
			}
			r.wrapped(buf, indent+marker, pending.String(), r.width)
			pending.Reset()
			marker = strings.Repeat(" ", lipgloss.Width(marker))
		}
		for ic := item.FirstChild(); ic != nil; ic = ic.NextSibling() {
			switch in := ic.(type) {
			case *ast.Paragraph, *ast.TextBlock:
				if pending.Len() > 0 {
					pending.WriteString(" ")
				}
				pending.WriteString(r.inlines(in))
			case *ast.List:
				flush()
				r.list(in, buf, depth+1)
			default:
				flush()
				r.block(ic, buf)
			}
		}
		flush()
	}
}

// wrapped writes content wrapped to width, continuation lines aligned under
// the first character after prefix.
func (r *renderer) wrapped(buf *bytes.Buffer, prefix, content string, width int) {
	pad := lipgloss.Width(prefix)
	w := max(width-pad, 10)
	lines := strings.Split(lipgloss.NewStyle().Width(w).Render(content), "\n")
	for i, line := range lines {
		if i == 0 {
			buf.WriteString(prefix)
		} else {
			buf.WriteString(strings.Repeat(" ", pad))
		}
		buf.WriteString(strings.TrimRight(line, " ") + "\n")
	}
}

func (r *renderer) inlines(node ast.Node) string {
	var buf bytes.Buffer
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		r.inline(c, &buf)
	}
	return buf.String()
}

func (r *renderer) inline(node ast.Node, buf *bytes.Buffer) {
	switch n := node.(type) {
	case *ast.Text:
		buf.WriteString(r.formulas(string(n.Segment.Value(r.source))))
		switch {
		case n.HardLineBreak():
			buf.WriteByte('\n')
		case n.SoftLineBreak():
			buf.WriteByte(' ')
		}

	case *ast.String:
		buf.WriteString(r.formulas(string(n.Value)))

	case *ast.Emphasis:
		inner := r.inlines(n)
		if n.Level == 1 {
			buf.WriteString(r.styles.italic.Render(inner))
		} else {
			buf.WriteString(r.styles.bold.Render(inner))
		}

	case *ast.CodeSpan:
		buf.WriteString(r.styles.math.Render(r.inlines(n)))

	case *ast.Link:
		buf.WriteString(r.styles.underline.Render(r.inlines(n)))
		buf.WriteString(" " + r.styles.muted.Render("("+string(n.Destination)+")"))

	case *ast.AutoLink:
		buf.WriteString(r.styles.underline.Render(string(n.URL(r.source))))

	case *ast.Image:
		buf.WriteString(r.styles.underline.Render(r.inlines(n)))
		buf.WriteString(" " + r.styles.muted.Render("("+string(n.Destination)+")"))

	case *ast.RawHTML:
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			buf.Write(seg.Value(r.source))
		}

	default:
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			r.inline(c, buf)
		}
	}
}

func (r *renderer) formulas(s string) string {
	return inlineMath.ReplaceAllStringFunc(s, func(m string) string { return r.styles.math.Render(m) })
}
