package renderer

import (
	"bytes"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ContentTypeHTML is the media type of the HTML encoding.
const ContentTypeHTML = "text/html; charset=utf-8"

// stylesheet is inlined so the document never loads external resources.
const stylesheet = `
body { font-family: Helvetica, Arial, sans-serif; color: #1f2937; margin: 24px; }
header { border-bottom: 2px solid #1f2937; margin-bottom: 16px; }
h1 { margin: 0 0 4px 0; }
.meta { color: #6b7280; font-size: 12px; margin: 2px 0; }
.cards { display: flex; gap: 12px; margin: 12px 0; }
.card { flex: 1; border: 1px solid #e5e7eb; border-radius: 6px; padding: 10px; }
.card .label { color: #6b7280; font-size: 12px; }
.card .value { font-size: 18px; font-weight: bold; }
table { width: 100%; border-collapse: collapse; font-size: 12px; margin-bottom: 16px; }
th, td { border-bottom: 1px solid #e5e7eb; padding: 4px 6px; text-align: left; }
th.right, td.right { text-align: right; }
.insight { border-left: 3px solid #2563eb; padding: 4px 10px; margin: 8px 0; }
.insight .type { color: #6b7280; font-size: 11px; text-transform: uppercase; }
footer { border-top: 1px solid #e5e7eb; color: #6b7280; font-size: 11px; margin-top: 24px; padding-top: 8px; }
.positive { color: #059669; }
.negative { color: #dc2626; }
@media print { body { margin: 0; } }
`

// HTML returns the self-contained HTML encoding of doc.
func HTML(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteHTML(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteHTML writes the self-contained HTML encoding of doc to w.
//
// The page is built as a node tree, every value is escaped on rendering.
func WriteHTML(w io.Writer, doc *Document) error {
	root := &html.Node{Type: html.DocumentNode}
	root.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	page := element(atom.Html, attr("lang", "en"))
	root.AppendChild(page)

	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, attr("charset", "utf-8")))
	head.AppendChild(withText(element(atom.Title), doc.Header.Title+" "+doc.Header.Address))
	head.AppendChild(withText(element(atom.Style), stylesheet))
	page.AppendChild(head)

	body := element(atom.Body)
	page.AppendChild(body)

	header := element(atom.Header)
	header.AppendChild(withText(element(atom.H1), doc.Header.Title))
	header.AppendChild(withText(element(atom.P, class("meta address")), doc.Header.Address))
	if doc.Header.LastUpdated != "" {
		header.AppendChild(withText(element(atom.P, class("meta")), "Last updated: "+doc.Header.LastUpdated))
	}
	header.AppendChild(withText(element(atom.P, class("meta generated")), "Generated: "+doc.Timestamp()))
	body.AppendChild(header)

	body.AppendChild(cardsNode("Summary", doc.Summary))
	body.AppendChild(cardsNode("Risk Metrics", doc.Risk))
	body.AppendChild(tableNode(doc.Holdings))
	body.AppendChild(tableNode(doc.Transactions))

	if len(doc.Insights) > 0 {
		section := element(atom.Section, class("insights"))
		section.AppendChild(withText(element(atom.H2), "AI Insights"))
		for _, n := range doc.Insights {
			div := element(atom.Div, class("insight"))
			div.AppendChild(withText(element(atom.Div, class("type")), n.Type+" · confidence "+n.Confidence))
			div.AppendChild(withText(element(atom.Strong), n.Title))
			div.AppendChild(withText(element(atom.P), n.Description))
			section.AppendChild(div)
		}
		body.AppendChild(section)
	}

	footer := element(atom.Footer)
	footer.AppendChild(withText(element(atom.P), doc.Disclaimer))
	footer.AppendChild(withText(element(atom.P, class("generated")), "Generated on "+doc.Timestamp()))
	body.AppendChild(footer)

	return html.Render(w, root)
}

func cardsNode(title string, cards []Card) *html.Node {
	section := element(atom.Section)
	section.AppendChild(withText(element(atom.H2), title))
	row := element(atom.Div, class("cards"))
	for _, c := range cards {
		card := element(atom.Div, class("card"))
		card.AppendChild(withText(element(atom.Div, class("label")), c.Label))
		card.AppendChild(withText(element(atom.Div, class(joinClass("value", c.Value.Tone.Class()))), c.Value.Value))
		row.AppendChild(card)
	}
	section.AppendChild(row)
	return section
}

func tableNode(t Table) *html.Node {
	section := element(atom.Section)
	section.AppendChild(withText(element(atom.H2), t.Title))
	if len(t.Rows) == 0 {
		section.AppendChild(withText(element(atom.P, class("meta")), t.Empty))
		return section
	}

	table := element(atom.Table)
	thead := element(atom.Thead)
	tr := element(atom.Tr)
	for _, c := range t.Columns {
		tr.AppendChild(withText(element(atom.Th, class(alignClass(c.Align))), c.Title))
	}
	thead.AppendChild(tr)
	table.AppendChild(thead)

	tbody := element(atom.Tbody)
	for _, row := range t.Rows {
		tr := element(atom.Tr)
		for i, cell := range row {
			tr.AppendChild(withText(element(atom.Td, class(joinClass(alignClass(t.Columns[i].Align), cell.Tone.Class()))), cell.Value))
		}
		tbody.AppendChild(tr)
	}
	table.AppendChild(tbody)
	section.AppendChild(table)
	return section
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	var kept []html.Attribute
	for _, at := range attrs {
		if at.Val != "" {
			kept = append(kept, at)
		}
	}
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: kept}
}

func withText(n *html.Node, s string) *html.Node {
	n.AppendChild(&html.Node{Type: html.TextNode, Data: s})
	return n
}

func attr(key, val string) html.Attribute { return html.Attribute{Key: key, Val: val} }

func class(val string) html.Attribute { return attr("class", val) }

func alignClass(a Align) string {
	if a == Right {
		return "right"
	}
	return ""
}

func joinClass(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + " " + b
	}
}
