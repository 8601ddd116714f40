package renderer

import (
	"bytes"
	"fmt"
	"strings"

	md "github.com/nao1215/markdown"
)

// Markdown returns the markdown encoding of doc, used for terminal previews.
func Markdown(doc *Document) (string, error) {
	var buf bytes.Buffer
	out := md.NewMarkdown(&buf)

	out.H1(escape(doc.Header.Title))
	out.PlainTextf("**Address:** %s  ", escape(doc.Header.Address))
	if doc.Header.LastUpdated != "" {
		out.PlainTextf("**Last updated:** %s  ", escape(doc.Header.LastUpdated))
	}
	out.PlainTextf("**Generated:** %s", doc.Timestamp())
	out.LF()

	cardsMarkdown(out, "Summary", doc.Summary)
	cardsMarkdown(out, "Risk Metrics", doc.Risk)
	tableMarkdown(out, doc.Holdings)
	tableMarkdown(out, doc.Transactions)

	if len(doc.Insights) > 0 {
		out.H2("AI Insights")
		items := make([]string, len(doc.Insights))
		for i, n := range doc.Insights {
			items[i] = fmt.Sprintf("**%s** (%s, confidence %s): %s",
				escape(n.Title), escape(n.Type), n.Confidence, escape(n.Description))
		}
		out.BulletList(items...)
		out.LF()
	}

	out.HorizontalRule()
	out.PlainText(escape(doc.Disclaimer))
	out.LF()
	out.PlainTextf("Generated on %s", doc.Timestamp())

	if err := out.Error(); err != nil {
		return "", fmt.Errorf("cannot encode report as markdown: %w", err)
	}
	return out.String() + "\n", nil
}

func cardsMarkdown(out *md.Markdown, title string, cards []Card) {
	out.H2(title)
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Metric", "Value"},
		Rows:      [][]string{},
	}
	for _, c := range cards {
		table.Rows = append(table.Rows, []string{escape(c.Label), toned(c.Value)})
	}
	out.Table(table)
}

func tableMarkdown(out *md.Markdown, t Table) {
	out.H2(escape(t.Title))
	if len(t.Rows) == 0 {
		out.PlainText(escape(t.Empty))
		out.LF()
		return
	}
	table := md.TableSet{
		Alignment: make([]md.TableAlignment, len(t.Columns)),
		Header:    make([]string, len(t.Columns)),
		Rows:      [][]string{},
	}
	for i, c := range t.Columns {
		table.Header[i] = escape(c.Title)
		table.Alignment[i] = md.AlignLeft
		if c.Align == Right {
			table.Alignment[i] = md.AlignRight
		}
	}
	for _, row := range t.Rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = toned(cell)
		}
		table.Rows = append(table.Rows, cells)
	}
	out.Table(table)
}

// toned returns the escaped value of x, bold when positive and italic when negative.
func toned(x Text) string {
	v := escape(x.Value)
	if v == "" {
		return v
	}
	switch x.Tone {
	case Positive:
		return md.Bold(v)
	case Negative:
		return md.Italic(v)
	default:
		return v
	}
}

// inlineEscaper backslash-escapes the punctuation that can start inline markup or
// break a table cell. Line breaks are folded into spaces.
var inlineEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	`*`, `\*`,
	`_`, `\_`,
	`[`, `\[`,
	`]`, `\]`,
	`<`, `\<`,
	`>`, `\>`,
	`|`, `\|`,
	`~`, `\~`,
	`&`, `\&`,
	`#`, `\#`,
	"\r\n", " ",
	"\n", " ",
	"\r", " ",
)

// escape makes s safe as inline markdown text.
func escape(s string) string {
	return inlineEscaper.Replace(s)
}
