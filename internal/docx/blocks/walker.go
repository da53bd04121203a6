package blocks

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/aisa-it/aiplan-docx/docx.go/internal/docx/styles"
	"github.com/aisa-it/aiplan-docx/docx.go/internal/docx/textinfo"
	"github.com/aisa-it/aiplan-docx/docx.go/internal/docx/wordtree"
	"github.com/gofrs/uuid"
)

// Категория узла при обходе. Каждый узел попадает ровно в одну категорию,
// нераспознанные типы считаются блоками.
type category int

const (
	catBlock category = iota
	catInline
	catContainer
	catIgnore
)

var nodeCategories = map[string]category{
	wordtree.TypeParagraph: catBlock,
	wordtree.TypeHeading:   catBlock,
	wordtree.TypeTable:     catBlock,
	wordtree.TypeList:      catBlock,
	wordtree.TypeListItem:  catBlock,
	wordtree.TypeImage:     catBlock,
	wordtree.TypePageBreak: catBlock,

	wordtree.TypeRun:    catInline,
	wordtree.TypeText:   catInline,
	wordtree.TypeTab:    catInline,
	wordtree.TypeBreak:  catInline,
	wordtree.TypeSymbol: catInline,

	wordtree.TypeBody:    catContainer,
	wordtree.TypeSection: catContainer,

	wordtree.TypeBookmarkStart:     catIgnore,
	wordtree.TypeBookmarkEnd:       catIgnore,
	wordtree.TypeField:             catIgnore,
	wordtree.TypeCommentRangeStart: catIgnore,
	wordtree.TypeCommentRangeEnd:   catIgnore,
	wordtree.TypeCommentReference:  catIgnore,
	wordtree.TypeFootnoteReference: catIgnore,
}

func classify(nodeType string) category {
	if c, ok := nodeCategories[nodeType]; ok {
		return c
	}
	return catBlock
}

// Имя стиля заголовка: heading/title/标题 с необязательным номером уровня.
var headingStyleReg = regexp.MustCompile(`(?i)(?:heading|title|标题)\s*(\d+)?$`)

// Converter преобразует объектное дерево Word в плоский документ.
type Converter struct {
	extractor *styles.Extractor
	newID     func() string
	now       func() time.Time
}

// NewConverter создаёт конвертер со стандартным экстрактором стилей.
func NewConverter() *Converter {
	return &Converter{
		extractor: styles.NewExtractor(),
		newID: func() string {
			return uuid.Must(uuid.NewV4()).String()
		},
		now: time.Now,
	}
}

// SetDefaultFonts задаёт шрифты по умолчанию для структурного вывода стилей.
func (c *Converter) SetDefaultFonts(cjk, latin string) {
	if cjk != "" {
		c.extractor.DefaultCJKFont = cjk
	}
	if latin != "" {
		c.extractor.DefaultLatinFont = latin
	}
}

// accumulator - явный аккумулятор свёртки обхода: собранные блоки и индекс
// последнего открытого блока для слияния inline-текста (-1, если нет).
type accumulator struct {
	blocks   []*Block
	lastOpen int
}

// Convert выполняет полную конвертацию документа. Паника при обработке
// отдельного узла не распространяется: редактор всегда получает валидный
// документ, в худшем случае с единственным пустым параграфом.
func (c *Converter) Convert(wd *wordtree.WordDocument) (doc *Document) {
	doc = &Document{
		Time:    c.now().UnixMilli(),
		Version: ModelVersion,
		Blocks:  []*Block{},
	}

	defer func() {
		if r := recover(); r != nil {
			slog.Error("Conversion failed, returning minimal document", "panic", r)
			doc.Blocks = []*Block{c.emptyParagraph()}
			doc.Comments = nil
		}
	}()

	body := wd.DocumentPart.Body
	if body == nil {
		slog.Warn("Document has no body")
	} else {
		acc := c.walk(body, accumulator{lastOpen: -1})
		doc.Blocks = acc.blocks
	}

	// Запасной путь: дерево не дало ни одного блока, но текст в нём есть.
	if len(doc.Blocks) == 0 {
		if raw := strings.TrimSpace(wordtree.ExtractText(body)); raw != "" {
			doc.Blocks = c.fallbackSplit(raw)
		}
	}
	if len(doc.Blocks) == 0 {
		doc.Blocks = []*Block{c.emptyParagraph()}
	}

	c.attachComments(wd, doc)

	return doc
}

// walk - один проход в глубину, категория узла определяет действие.
func (c *Converter) walk(n *wordtree.WordNode, acc accumulator) accumulator {
	if n == nil {
		return acc
	}

	switch classify(n.Type) {
	case catIgnore:
		return acc

	case catContainer:
		for _, child := range n.Children {
			acc = c.walk(child, acc)
		}
		return acc

	case catInline:
		acc = c.mergeInline(n, acc)
		// Рекурсия в детей inline-узла для вложенных структур; сам узел
		// уже внёс только собственный текст.
		for _, child := range n.Children {
			acc = c.walk(child, acc)
		}
		return acc

	default:
		for _, b := range c.buildBlocks(n) {
			acc.blocks = append(acc.blocks, b)
			acc.lastOpen = len(acc.blocks) - 1
		}
		// Разрыв страницы закрывает текущий блок, не порождая нового.
		if n.Type == wordtree.TypePageBreak {
			acc.lastOpen = -1
		}
		// Дети уже израсходованы при сборке блока, повторно не обходим.
		return acc
	}
}

// mergeInline вливает собственный текст inline-узла в последний блок.
func (c *Converter) mergeInline(n *wordtree.WordNode, acc accumulator) accumulator {
	var text string
	switch n.Type {
	case wordtree.TypeTab:
		text = "\t"
	case wordtree.TypeBreak:
		text = "\n"
	case wordtree.TypeSymbol:
		text = n.Attrs["char"]
	default:
		text = n.Text
	}
	if text == "" {
		return acc
	}

	if acc.lastOpen < 0 {
		b := c.emptyParagraph()
		acc.blocks = append(acc.blocks, b)
		acc.lastOpen = len(acc.blocks) - 1
	}

	last := acc.blocks[acc.lastOpen]
	switch last.Type {
	case BlockList:
		if len(last.Data.Items) == 0 {
			last.Data.Items = append(last.Data.Items, text)
		} else {
			last.Data.Items[len(last.Data.Items)-1] += text
		}
	default:
		last.Data.Text += text
	}

	return acc
}

// buildBlocks строит блоки для узла блочной категории. Параграф может
// распасться на несколько блоков при сегментации по переносам строк.
func (c *Converter) buildBlocks(n *wordtree.WordNode) []*Block {
	switch n.Type {
	case wordtree.TypeTable:
		if b := c.buildTable(n); b != nil {
			return []*Block{b}
		}
		return nil
	case wordtree.TypeList:
		if b := c.buildList(n); b != nil {
			return []*Block{b}
		}
		return nil
	case wordtree.TypeListItem:
		if b := c.buildListItem(n); b != nil {
			return []*Block{b}
		}
		return nil
	case wordtree.TypeImage:
		if b := c.buildImage(n); b != nil {
			return []*Block{b}
		}
		return nil
	case wordtree.TypePageBreak:
		return nil
	default:
		return c.buildParagraph(n)
	}
}

func (c *Converter) buildParagraph(n *wordtree.WordNode) []*Block {
	text := wordtree.ExtractText(n)
	if strings.TrimSpace(text) == "" {
		return nil
	}

	styleMap := c.paragraphStyles(n, text)

	// Нумерованный параграф Word превращается в блок списка.
	if n.ParaProps != nil && n.ParaProps.HasNumbering {
		style := ListOrdered
		if n.Attrs["numFmt"] == "bullet" {
			style = ListUnordered
		}
		return []*Block{{
			ID:   c.newID(),
			Type: BlockList,
			Data: BlockData{
				Style:  style,
				Items:  []string{strings.TrimSpace(text)},
				Styles: styleMap,
			},
		}}
	}

	// Сегментация: несколько переносов внутри одного параграфа дают
	// отдельные блоки, каждый наследует карту стилей родителя.
	segments := splitSegments(text)
	if len(segments) > 1 {
		res := make([]*Block, 0, len(segments))
		for _, seg := range segments {
			res = append(res, c.textBlock(n, seg, styleMap.Clone()))
		}
		return res
	}

	return []*Block{c.textBlock(n, strings.TrimSpace(text), styleMap)}
}

// textBlock строит header или paragraph для одного сегмента текста.
func (c *Converter) textBlock(n *wordtree.WordNode, text string, styleMap styles.StyleMap) *Block {
	if level := c.headingLevel(n, text); level > 0 {
		return &Block{
			ID:   c.newID(),
			Type: BlockHeader,
			Data: BlockData{Text: text, Level: level, Styles: styleMap},
		}
	}
	return &Block{
		ID:   c.newID(),
		Type: BlockParagraph,
		Data: BlockData{Text: text, Styles: styleMap},
	}
}

// headingLevel - уровень заголовка сегмента: явный стиль параграфа
// приоритетнее структурной эвристики. 0 - не заголовок.
func (c *Converter) headingLevel(n *wordtree.WordNode, text string) int {
	if n.Type == wordtree.TypeHeading {
		if lvl, err := strconv.Atoi(n.Attrs["level"]); err == nil {
			return clampLevel(lvl)
		}
		return 1
	}

	if n.ParaProps != nil && n.ParaProps.StyleName != "" {
		match := headingStyleReg.FindStringSubmatch(n.ParaProps.StyleName)
		if match == nil {
			// Явный стиль есть, но не заголовочный.
			return 0
		}
		if match[1] != "" {
			lvl, _ := strconv.Atoi(match[1])
			return clampLevel(lvl)
		}
		return 1
	}

	if textinfo.IsLikelyTitle(text, false) {
		return clampLevel(textinfo.InferTitleLevel(text))
	}
	return 0
}

func (c *Converter) paragraphStyles(n *wordtree.WordNode, text string) styles.StyleMap {
	m := styles.DecodeParagraphProperties(n.ParaProps)
	if rp := dominantRunProps(n); rp != nil {
		m.MergeAbsent(styles.DecodeRunProperties(rp))
	}

	el := styles.Element{
		Tag:   "p",
		Text:  text,
		Child: aggregateRuns(n),
	}
	m.MergeAbsent(c.extractor.Extract(el))
	return m
}

// paragraphRuns перечисляет прогоны параграфа из Children и Runs.
func paragraphRuns(n *wordtree.WordNode) []*wordtree.WordNode {
	res := make([]*wordtree.WordNode, 0, len(n.Children)+len(n.Runs))
	res = append(res, n.Children...)
	res = append(res, n.Runs...)
	return res
}

// dominantRunProps - свойства первого прогона с заданными свойствами.
func dominantRunProps(n *wordtree.WordNode) *wordtree.RunProperties {
	for _, child := range paragraphRuns(n) {
		if child.Type == wordtree.TypeRun && child.RunProps != nil {
			return child.RunProps
		}
	}
	return nil
}

// aggregateRuns считает покрытие текста параграфа жирными/курсивными и
// подчёркнутыми прогонами для прохода агрегации экстрактора.
func aggregateRuns(n *wordtree.WordNode) styles.ChildAggregate {
	var agg styles.ChildAggregate
	for _, child := range paragraphRuns(n) {
		if child.Type != wordtree.TypeRun {
			continue
		}
		l := len([]rune(wordtree.ExtractText(child)))
		agg.TotalTextLen += l
		if child.RunProps == nil {
			continue
		}
		if child.RunProps.Bold {
			agg.BoldLen += l
		}
		if child.RunProps.Italic {
			agg.ItalicLen += l
		}
		if child.RunProps.Underline {
			agg.UnderlineLen += l
		}
	}
	return agg
}

func (c *Converter) buildTable(n *wordtree.WordNode) *Block {
	var content [][]string
	for _, row := range n.Children {
		if row.Type != wordtree.TypeTableRow {
			continue
		}
		var cells []string
		for _, cell := range row.Children {
			if cell.Type != wordtree.TypeTableCell {
				continue
			}
			cells = append(cells, strings.TrimSpace(wordtree.ExtractText(cell)))
		}
		if len(cells) > 0 {
			content = append(content, cells)
		}
	}
	if len(content) == 0 {
		return nil
	}

	withHeadings := false
	for _, cell := range content[0] {
		if strings.TrimSpace(cell) != "" {
			withHeadings = true
			break
		}
	}

	return &Block{
		ID:   c.newID(),
		Type: BlockTable,
		Data: BlockData{Content: content, WithHeadings: withHeadings},
	}
}

func (c *Converter) buildList(n *wordtree.WordNode) *Block {
	style := ListUnordered
	if n.Attrs["ordered"] == "true" {
		style = ListOrdered
	}

	var items []string
	for _, child := range n.Children {
		if child.Type != wordtree.TypeListItem {
			continue
		}
		if text := strings.TrimSpace(wordtree.ExtractText(child)); text != "" {
			items = append(items, text)
		}
	}
	if len(items) == 0 {
		return nil
	}

	return &Block{
		ID:   c.newID(),
		Type: BlockList,
		Data: BlockData{Style: style, Items: items},
	}
}

// buildListItem - одиночный элемент списка вне родительского списка.
func (c *Converter) buildListItem(n *wordtree.WordNode) *Block {
	text := strings.TrimSpace(wordtree.ExtractText(n))
	if text == "" {
		return nil
	}
	return &Block{
		ID:   c.newID(),
		Type: BlockList,
		Data: BlockData{Style: ListUnordered, Items: []string{text}},
	}
}

func (c *Converter) buildImage(n *wordtree.WordNode) *Block {
	src := n.Attrs["src"]
	if src == "" {
		src = n.Attrs["imageData"]
	}
	if src == "" {
		return nil
	}
	return &Block{
		ID:   c.newID(),
		Type: BlockImage,
		Data: BlockData{
			File:    &ImageFile{URL: src},
			Caption: n.Attrs["caption"],
		},
	}
}

func (c *Converter) emptyParagraph() *Block {
	return &Block{
		ID:   c.newID(),
		Type: BlockParagraph,
		Data: BlockData{Text: ""},
	}
}

// splitSegments режет текст параграфа по переносам строк на непустые
// сегменты. Возвращает исходный текст одним сегментом, если резать нечего.
func splitSegments(text string) []string {
	if !strings.Contains(text, "\n") {
		return []string{text}
	}
	var res []string
	for part := range strings.SplitSeq(text, "\n") {
		if part = strings.TrimSpace(part); part != "" {
			res = append(res, part)
		}
	}
	return res
}

// fallbackSplit - наивное разбиение сырого текста: сначала по пустым
// строкам, затем по одиночным переносам.
func (c *Converter) fallbackSplit(raw string) []*Block {
	parts := splitBlank(raw)
	if len(parts) <= 1 {
		parts = splitSegments(raw)
	}

	res := make([]*Block, 0, len(parts))
	for _, part := range parts {
		// Сегменты запасного пути проходят тот же выбор header/paragraph.
		res = append(res, c.textBlock(&wordtree.WordNode{Type: wordtree.TypeParagraph}, part, nil))
	}
	return res
}

var blankLineReg = regexp.MustCompile(`\n\s*\n`)

func splitBlank(raw string) []string {
	var res []string
	for _, part := range blankLineReg.Split(raw, -1) {
		if part = strings.TrimSpace(part); part != "" {
			res = append(res, part)
		}
	}
	return res
}

func clampLevel(level int) int {
	if level < 1 {
		return 1
	}
	if level > 6 {
		return 6
	}
	return level
}
