// Пакет wordtree описывает объектное дерево Word-документа, которое отдаёт
// внешний парсер docx. Дерево типизировано по известным элементам Word,
// неизвестные свойства сохраняются в общем мешке атрибутов.
//
// Инвариант: Children упорядочены и задают порядок чтения документа,
// обратных ссылок нет (дерево, не граф).
package wordtree

import "strings"

// Типы узлов дерева. Неизвестные типы обрабатываются обходчиком как блоки.
const (
	TypeBody              = "body"
	TypeSection           = "section"
	TypeParagraph         = "paragraph"
	TypeHeading           = "heading"
	TypeRun               = "run"
	TypeText              = "text"
	TypeTab               = "tab"
	TypeBreak             = "br"
	TypeSymbol            = "symbol"
	TypeTable             = "table"
	TypeTableRow          = "tableRow"
	TypeTableCell         = "tableCell"
	TypeList              = "list"
	TypeListItem          = "listItem"
	TypeImage             = "image"
	TypePageBreak         = "pageBreak"
	TypeBookmarkStart     = "bookmarkStart"
	TypeBookmarkEnd       = "bookmarkEnd"
	TypeField             = "field"
	TypeCommentRangeStart = "commentRangeStart"
	TypeCommentRangeEnd   = "commentRangeEnd"
	TypeCommentReference  = "commentReference"
	TypeFootnoteReference = "footnoteReference"
)

// WordNode - узел дерева Word-документа.
type WordNode struct {
	Type     string
	Children []*WordNode
	Text     string

	// Дополнительные прогоны текста вне Children (некоторые парсеры
	// отдают прогоны параграфа отдельным полем).
	Runs []*WordNode

	RunProps  *RunProperties
	ParaProps *ParagraphProperties

	// Общий мешок атрибутов: id, src, имя символьного шрифта и прочее,
	// что не легло в типизированные свойства.
	Attrs map[string]string
}

// RunProperties - свойства прогона (w:rPr).
type RunProperties struct {
	Bold      bool
	Italic    bool
	Underline bool
	Strike    bool

	// Размер в полупунктах (w:sz).
	Size string
	// Цвет в hex без префикса, "auto" игнорируется (w:color).
	Color string
	// Именованный цвет выделения (w:highlight).
	Highlight string
	// Имена шрифтов (w:rFonts).
	FontASCII    string
	FontEastAsia string
	// superscript / subscript (w:vertAlign).
	VertAlign string
}

// ParagraphProperties - свойства параграфа (w:pPr).
type ParagraphProperties struct {
	// Имя стиля параграфа (w:pStyle).
	StyleName string
	// Выравнивание (w:jc): left, center, right, both, distribute.
	Justification string

	// Нумерация (w:numPr); HasNumbering true и NumberingID >= 0 - список.
	HasNumbering   bool
	NumberingID    int
	NumberingLevel int

	// Отступы в твипах (w:ind).
	IndentLeft      int
	IndentFirstLine int

	// Интервалы в твипах и правило межстрочного интервала (w:spacing).
	SpacingBefore int
	SpacingAfter  int
	Line          int
	LineRule      string // auto, exact, atLeast

	// Заливка фона (w:shd fill), hex без префикса.
	ShadingFill string
}

// CommentDef - определение комментария из commentsPart.
type CommentDef struct {
	ID       string
	Author   string
	Date     string
	Children []*WordNode
}

// CommentsPart - часть документа со списком комментариев.
type CommentsPart struct {
	Comments []CommentDef
}

// DocumentPart - основная часть документа.
type DocumentPart struct {
	Body *WordNode
}

// WordDocument - полное объектное дерево документа.
type WordDocument struct {
	DocumentPart DocumentPart
	CommentsPart CommentsPart
}

// ExtractText рекурсивно собирает текст узла: собственный текст, табуляция
// и перенос как управляющие символы, затем дочерние узлы, затем прогоны.
// Состав рекурсии фиксирован, чтобы текст не учитывался дважды.
func ExtractText(n *WordNode) string {
	if n == nil {
		return ""
	}

	var sb strings.Builder
	switch n.Type {
	case TypeTab:
		sb.WriteString("\t")
	case TypeBreak, TypePageBreak:
		sb.WriteString("\n")
	case TypeSymbol:
		if ch, ok := n.Attrs["char"]; ok {
			sb.WriteString(ch)
		}
	default:
		sb.WriteString(n.Text)
	}

	for _, child := range n.Children {
		sb.WriteString(ExtractText(child))
	}
	for _, run := range n.Runs {
		sb.WriteString(ExtractText(run))
	}

	return sb.String()
}

// CommentText собирает текст определения комментария.
func (c CommentDef) CommentText() string {
	var sb strings.Builder
	for _, child := range c.Children {
		sb.WriteString(ExtractText(child))
	}
	return sb.String()
}
