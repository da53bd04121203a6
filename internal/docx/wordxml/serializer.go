package wordxml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/aisa-it/aiplan-docx/docx.go/internal/docx/tiptap"
)

// ErrEmptyExport возвращается, когда экспорт не дал ни одного параграфа.
// Пустой экспорт не является безопасным тихим фолбэком.
var ErrEmptyExport = errors.New("word xml export: document has no content")

const wordNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// Export сериализует вложенную модель в Word-XML. На каждый узел верхнего
// уровня приходится один w:p, вложенность списков не сохраняется.
func Export(doc *tiptap.Document) (string, error) {
	if doc == nil || len(doc.Content) == 0 {
		return "", ErrEmptyExport
	}

	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	sb.WriteString("\n")
	sb.WriteString(`<w:document xmlns:w="` + wordNamespace + `"><w:body>`)

	count := 0
	for i := range doc.Content {
		count += writeNode(&sb, &doc.Content[i])
	}
	if count == 0 {
		return "", ErrEmptyExport
	}

	sb.WriteString(`</w:body></w:document>`)
	return sb.String(), nil
}

// writeNode возвращает число записанных параграфов.
func writeNode(sb *strings.Builder, n *tiptap.Node) int {
	switch n.Type {
	case "heading":
		level := attrInt(n.Attrs, "level", 1)
		if level > 6 {
			level = 6
		}
		pPr := fmt.Sprintf(`<w:pPr><w:pStyle w:val="Heading%d"/></w:pPr>`, level)
		writeParagraph(sb, pPr, collectTexts(n))
		return 1

	case "listItem":
		// Элемент списка схлопывается в один нумерованный параграф.
		numID := attrString(n.Attrs, "numId", "1")
		level := attrString(n.Attrs, "level", "0")
		pPr := `<w:pPr><w:numPr><w:ilvl w:val="` + escapeAttr(level) +
			`"/><w:numId w:val="` + escapeAttr(numID) + `"/></w:numPr></w:pPr>`
		writeParagraph(sb, pPr, collectTexts(n))
		return 1

	case "bulletList", "orderedList":
		count := 0
		for i := range n.Content {
			count += writeNode(sb, &n.Content[i])
		}
		return count

	case "paragraph":
		writeParagraph(sb, "", collectTexts(n))
		return 1

	case "text":
		writeParagraph(sb, "", []*tiptap.Node{n})
		return 1

	default:
		slog.Warn("Unknown node type", "type", n.Type)
		if texts := collectTexts(n); len(texts) > 0 {
			writeParagraph(sb, "", texts)
			return 1
		}
		return 0
	}
}

// writeParagraph пишет w:p. Параграф без текста получает прогон из одного
// пробела вместо пропуска.
func writeParagraph(sb *strings.Builder, pPr string, texts []*tiptap.Node) {
	sb.WriteString("<w:p>")
	sb.WriteString(pPr)

	if len(texts) == 0 {
		sb.WriteString(`<w:r><w:t xml:space="preserve"> </w:t></w:r>`)
	}
	for _, t := range texts {
		sb.WriteString("<w:r>")
		writeRunProps(sb, t)
		sb.WriteString(`<w:t xml:space="preserve">` + escapeText(t.Text) + `</w:t>`)
		sb.WriteString("</w:r>")
	}

	sb.WriteString("</w:p>")
}

// writeRunProps восстанавливает w:rPr из марок текстового узла.
func writeRunProps(sb *strings.Builder, n *tiptap.Node) {
	if len(n.Marks) == 0 {
		return
	}

	var props strings.Builder
	if n.HasMark("bold") {
		props.WriteString("<w:b/>")
	}
	if n.HasMark("italic") {
		props.WriteString("<w:i/>")
	}
	if n.HasMark("underline") {
		props.WriteString(`<w:u w:val="single"/>`)
	}
	if n.HasMark("strike") {
		props.WriteString("<w:strike/>")
	}

	if color, ok := n.TextStyleAttr("color"); ok {
		props.WriteString(`<w:color w:val="` + escapeAttr(strings.TrimPrefix(color, "#")) + `"/>`)
	}
	if size, ok := n.TextStyleAttr("fontSize"); ok {
		if pt, err := strconv.ParseFloat(strings.TrimSuffix(size, "pt"), 64); err == nil {
			// Обратно в полупункты.
			half := strconv.FormatFloat(pt*2, 'f', -1, 64)
			props.WriteString(`<w:sz w:val="` + half + `"/>`)
		}
	}
	if font, ok := n.TextStyleAttr("fontFamily"); ok {
		escaped := escapeAttr(font)
		props.WriteString(`<w:rFonts w:ascii="` + escaped + `" w:eastAsia="` + escaped + `"/>`)
	}

	if props.Len() > 0 {
		sb.WriteString("<w:rPr>" + props.String() + "</w:rPr>")
	}
}

// collectTexts собирает текстовые узлы поддерева в порядке обхода.
func collectTexts(n *tiptap.Node) []*tiptap.Node {
	var res []*tiptap.Node
	var visit func(node *tiptap.Node)
	visit = func(node *tiptap.Node) {
		if node.Type == "text" {
			res = append(res, node)
			return
		}
		for i := range node.Content {
			visit(&node.Content[i])
		}
	}
	for i := range n.Content {
		visit(&n.Content[i])
	}
	return res
}

func attrInt(attrs map[string]interface{}, key string, def int) int {
	switch v := attrs[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	case string:
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func attrString(attrs map[string]interface{}, key, def string) string {
	switch v := attrs[key].(type) {
	case string:
		if v != "" {
			return v
		}
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return def
}

func escapeText(s string) string {
	var sb strings.Builder
	_ = xml.EscapeText(&sb, []byte(s))
	return sb.String()
}

func escapeAttr(s string) string {
	return escapeText(s)
}
