// Пакет htmlconv конвертирует HTML в плоскую блочную модель и обратно.
// Парсинг построен на golang.org/x/net/html, входной HTML предварительно
// очищается политикой bluemonday.
package htmlconv

import (
	"io"
	"regexp"
	"strings"

	"github.com/aisa-it/aiplan-docx/docx.go/internal/docx/blocks"
	"github.com/aisa-it/aiplan-docx/docx.go/internal/docx/styles"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

// Допустимые inline-теги при импорте. Остальные разворачиваются:
// содержимое сохраняется, тег отбрасывается.
var allowedInline = map[string]struct{}{
	"b": {}, "strong": {}, "i": {}, "em": {}, "u": {}, "s": {}, "del": {},
	"a": {}, "code": {}, "mark": {}, "sup": {}, "sub": {}, "span": {},
}

var blockTags = map[string]struct{}{
	"p": {}, "h1": {}, "h2": {}, "h3": {}, "h4": {}, "h5": {}, "h6": {},
	"ul": {}, "ol": {}, "li": {}, "blockquote": {}, "pre": {}, "table": {},
	"img": {}, "figure": {}, "hr": {},
}

var containerTags = map[string]struct{}{
	"html": {}, "body": {}, "div": {}, "section": {}, "article": {},
	"main": {}, "header": {}, "footer": {},
}

var ignoreTags = map[string]struct{}{
	"head": {}, "script": {}, "style": {}, "nav": {}, "aside": {},
	"noscript": {}, "template": {}, "iframe": {},
}

// Parser конвертирует HTML-документы в блоки.
type Parser struct {
	policy    *bluemonday.Policy
	extractor *styles.Extractor
}

// NewParser создаёт парсер со стандартной политикой очистки.
func NewParser() *Parser {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("style", "class").Globally()
	policy.AllowElements("figure", "figcaption", "mark", "u", "s", "span", "font")
	policy.AllowStyles(
		"text-align", "text-align-last", "color", "background-color",
		"font-family", "font-size", "font-weight", "font-style",
		"text-decoration", "margin-left", "margin-bottom", "text-indent",
		"line-height", "padding", "border",
	).Globally()

	return &Parser{
		policy:    policy,
		extractor: styles.NewExtractor(),
	}
}

// ParseDocument читает HTML и собирает из него блочный документ.
func (p *Parser) ParseDocument(r io.Reader) (*blocks.Document, error) {
	clean := p.policy.SanitizeReader(r)

	root, err := html.Parse(clean)
	if err != nil {
		return nil, err
	}

	doc := blocks.NewDocument()

	st := &walkState{parser: p}
	st.walk(root, 0)
	doc.Blocks = st.blocks

	// Запасной путь: разметка не дала блоков, но текст в документе есть.
	if len(doc.Blocks) == 0 {
		if raw := strings.TrimSpace(textContent(root)); raw != "" {
			doc.Blocks = blocks.SplitPlainText(raw)
		}
	}
	if len(doc.Blocks) == 0 {
		doc.Blocks = []*blocks.Block{blocks.NewEmptyParagraph()}
	}

	return doc, nil
}

// walkState - аккумулятор обхода HTML-дерева.
type walkState struct {
	parser   *Parser
	blocks   []*blocks.Block
	lastOpen int
}

func (st *walkState) walk(n *html.Node, depth int) {
	if n == nil {
		return
	}

	if n.Type == html.TextNode {
		st.mergeText(n.Data)
		return
	}
	if n.Type != html.ElementNode && n.Type != html.DocumentNode {
		return
	}

	tag := n.Data
	if n.Type == html.DocumentNode {
		tag = "html"
	}

	if _, ok := ignoreTags[tag]; ok {
		return
	}

	if _, ok := containerTags[tag]; ok {
		childDepth := depth
		if tag == "div" {
			childDepth++
		}
		for el := n.FirstChild; el != nil; el = el.NextSibling {
			st.walk(el, childDepth)
		}
		return
	}

	if _, ok := blockTags[tag]; ok || n.Type == html.ElementNode {
		for _, b := range st.parser.buildBlocks(n, tag, depth) {
			st.blocks = append(st.blocks, b)
			st.lastOpen = len(st.blocks) - 1
		}
	}
}

// mergeText вливает свободный текст в последний блок.
func (st *walkState) mergeText(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	if st.lastOpen < 0 || len(st.blocks) == 0 {
		st.blocks = append(st.blocks, blocks.NewEmptyParagraph())
		st.lastOpen = len(st.blocks) - 1
	}
	b := st.blocks[st.lastOpen]
	if b.Type == blocks.BlockList && len(b.Data.Items) > 0 {
		b.Data.Items[len(b.Data.Items)-1] += strings.TrimSpace(text)
		return
	}
	b.Data.Text += strings.TrimSpace(text)
}

func (p *Parser) buildBlocks(n *html.Node, tag string, depth int) []*blocks.Block {
	switch tag {
	case "ul", "ol":
		if b := p.buildList(n, tag); b != nil {
			return []*blocks.Block{b}
		}
		return nil
	case "li":
		// Одиночный элемент списка вне списка.
		if text := strings.TrimSpace(inlineHTML(n)); text != "" {
			return []*blocks.Block{blocks.NewList(blocks.ListUnordered, []string{text})}
		}
		return nil
	case "blockquote":
		if b := p.buildQuote(n, depth); b != nil {
			return []*blocks.Block{b}
		}
		return nil
	case "pre":
		if text := textContent(n); strings.TrimSpace(text) != "" {
			return []*blocks.Block{blocks.NewCode(strings.Trim(text, "\n"))}
		}
		return nil
	case "table":
		if b := p.buildTable(n); b != nil {
			return []*blocks.Block{b}
		}
		return nil
	case "img":
		if b := buildImage(n); b != nil {
			return []*blocks.Block{b}
		}
		return nil
	case "figure":
		return p.buildFigure(n)
	case "hr":
		return nil
	default:
		// Параграфы, заголовки и нераспознанные теги деградируют до
		// параграфа с извлечённым текстом.
		return p.buildTextBlocks(n, tag, depth)
	}
}

// buildTextBlocks строит header/paragraph с учётом сегментации по <br>.
func (p *Parser) buildTextBlocks(n *html.Node, tag string, depth int) []*blocks.Block {
	el := p.element(n, tag, depth)
	styleMap := p.extractor.Extract(el)

	level := 0
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		level = int(tag[1] - '0')
	}

	// Сегментация по <br> и литеральным переносам до обычной обработки.
	segments := splitBySeparators(n)
	res := make([]*blocks.Block, 0, len(segments))
	for _, seg := range segments {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		if level > 0 {
			res = append(res, blocks.NewHeader(seg, level, styleMap.Clone()))
		} else {
			res = append(res, blocks.NewParagraph(seg, styleMap.Clone()))
		}
	}
	return res
}

func (p *Parser) buildList(n *html.Node, tag string) *blocks.Block {
	style := blocks.ListUnordered
	if tag == "ol" {
		style = blocks.ListOrdered
	}

	var items []string
	for li := n.FirstChild; li != nil; li = li.NextSibling {
		if li.Type != html.ElementNode || li.Data != "li" {
			continue
		}
		if text := strings.TrimSpace(inlineHTML(li)); text != "" {
			items = append(items, text)
		}
	}
	if len(items) == 0 {
		return nil
	}
	return blocks.NewList(style, items)
}

func (p *Parser) buildQuote(n *html.Node, depth int) *blocks.Block {
	var parts []string
	for el := n.FirstChild; el != nil; el = el.NextSibling {
		var text string
		if el.Type == html.TextNode {
			text = el.Data
		} else {
			text = inlineHTML(el)
		}
		if text = strings.TrimSpace(text); text != "" {
			parts = append(parts, text)
		}
	}
	if len(parts) == 0 {
		return nil
	}

	el := p.element(n, "blockquote", depth)
	return blocks.NewQuote(strings.Join(parts, "\n"), p.extractor.Extract(el))
}

func (p *Parser) buildTable(n *html.Node) *blocks.Block {
	var content [][]string
	withHeadings := false

	var visitRows func(node *html.Node)
	visitRows = func(node *html.Node) {
		for el := node.FirstChild; el != nil; el = el.NextSibling {
			if el.Type != html.ElementNode {
				continue
			}
			switch el.Data {
			case "thead", "tbody", "tfoot":
				visitRows(el)
			case "tr":
				var row []string
				for td := el.FirstChild; td != nil; td = td.NextSibling {
					if td.Type != html.ElementNode || (td.Data != "td" && td.Data != "th") {
						continue
					}
					if td.Data == "th" {
						withHeadings = true
					}
					row = append(row, strings.TrimSpace(textContent(td)))
				}
				if len(row) > 0 {
					content = append(content, row)
				}
			}
		}
	}
	visitRows(n)

	if len(content) == 0 {
		return nil
	}
	return blocks.NewTable(content, withHeadings)
}

func (p *Parser) buildFigure(n *html.Node) []*blocks.Block {
	var img *blocks.Block
	var caption string

	for el := n.FirstChild; el != nil; el = el.NextSibling {
		if el.Type != html.ElementNode {
			continue
		}
		switch el.Data {
		case "img":
			img = buildImage(el)
		case "figcaption":
			caption = strings.TrimSpace(textContent(el))
		}
	}
	if img == nil {
		return nil
	}
	img.Data.Caption = caption
	return []*blocks.Block{img}
}

func buildImage(n *html.Node) *blocks.Block {
	src := attrValue(n, "src")
	if src == "" {
		return nil
	}
	return blocks.NewImage(src, attrValue(n, "alt"))
}

// element собирает вход экстрактора стилей из HTML-узла.
func (p *Parser) element(n *html.Node, tag string, depth int) styles.Element {
	parentTag := ""
	isolated := true
	if n.Parent != nil && n.Parent.Type == html.ElementNode {
		parentTag = n.Parent.Data
		for sib := n.Parent.FirstChild; sib != nil; sib = sib.NextSibling {
			if sib != n && sib.Type == html.ElementNode {
				isolated = false
				break
			}
		}
	}

	return styles.Element{
		Tag:          tag,
		Classes:      strings.Fields(attrValue(n, "class")),
		InlineStyle:  attrValue(n, "style"),
		Text:         textContent(n),
		ParentTag:    parentTag,
		NestingDepth: depth,
		Isolated:     isolated,
		Child:        aggregateChildren(n),
	}
}

// aggregateChildren считает покрытие текста inline-разметкой потомков.
func aggregateChildren(n *html.Node) styles.ChildAggregate {
	var agg styles.ChildAggregate
	agg.TotalTextLen = len([]rune(textContent(n)))

	var visit func(node *html.Node, bold, italic, underline bool)
	visit = func(node *html.Node, bold, italic, underline bool) {
		if node.Type == html.TextNode {
			l := len([]rune(node.Data))
			if bold {
				agg.BoldLen += l
			}
			if italic {
				agg.ItalicLen += l
			}
			if underline {
				agg.UnderlineLen += l
			}
			return
		}
		if node.Type != html.ElementNode {
			return
		}
		switch node.Data {
		case "b", "strong":
			bold = true
		case "i", "em":
			italic = true
		case "u":
			underline = true
		case "span", "font":
			for _, decl := range strings.Split(attrValue(node, "style"), ";") {
				kv := strings.SplitN(decl, ":", 2)
				if len(kv) != 2 {
					continue
				}
				switch strings.TrimSpace(kv[0]) {
				case "font-family":
					agg.FontFamily = strings.TrimSpace(kv[1])
				case "font-size":
					agg.FontSize = strings.TrimSpace(kv[1])
				}
			}
		}
		for el := node.FirstChild; el != nil; el = el.NextSibling {
			visit(el, bold, italic, underline)
		}
	}
	for el := n.FirstChild; el != nil; el = el.NextSibling {
		visit(el, false, false, false)
	}

	return agg
}

// inlineHTML сериализует содержимое узла, сохраняя допустимые inline-теги
// и разворачивая остальные.
func inlineHTML(n *html.Node) string {
	var sb strings.Builder

	var visit func(node *html.Node)
	visit = func(node *html.Node) {
		switch node.Type {
		case html.TextNode:
			sb.WriteString(html.EscapeString(node.Data))
			return
		case html.ElementNode:
		default:
			return
		}

		if node.Data == "br" {
			sb.WriteString("\n")
			return
		}

		_, allowed := allowedInline[node.Data]
		if allowed {
			sb.WriteString("<" + node.Data)
			if node.Data == "a" {
				if href := attrValue(node, "href"); href != "" {
					sb.WriteString(` href="` + html.EscapeString(href) + `"`)
				}
			}
			sb.WriteString(">")
		}
		for el := node.FirstChild; el != nil; el = el.NextSibling {
			visit(el)
		}
		if allowed {
			sb.WriteString("</" + node.Data + ">")
		}
	}
	for el := n.FirstChild; el != nil; el = el.NextSibling {
		visit(el)
	}

	return sb.String()
}

// splitBySeparators режет содержимое блочного элемента по <br> и
// литеральным переносам строки.
func splitBySeparators(n *html.Node) []string {
	raw := inlineHTML(n)
	var res []string
	for part := range strings.SplitSeq(raw, "\n") {
		res = append(res, part)
	}
	return res
}

func textContent(n *html.Node) string {
	if n == nil {
		return ""
	}
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for el := n.FirstChild; el != nil; el = el.NextSibling {
		sb.WriteString(textContent(el))
	}
	return sb.String()
}

func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

var tagReg = regexp.MustCompile(`<[^>]+>`)

// StripTags убирает из текста блока сохранённую inline-разметку.
func StripTags(s string) string {
	return tagReg.ReplaceAllString(s, "")
}
