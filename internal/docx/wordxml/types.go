// Пакет wordxml конвертирует Word-XML (скелет OOXML w:document) во вложенную
// модель документа и обратно. Разбор построен на encoding/xml: имена
// элементов матчатся по локальной части, префикс w: на входе не важен.
package wordxml

import "encoding/xml"

// WordFile - корень w:document.
type WordFile struct {
	XMLName xml.Name `xml:"document"`
	Body    Body     `xml:"body"`
}

// Body содержит параграфы документа в порядке чтения.
type Body struct {
	Paragraphs []Paragraph `xml:"p"`
}

// Paragraph - w:p с необязательным блоком свойств.
type Paragraph struct {
	Props *ParagraphProps `xml:"pPr"`
	Runs  []Run           `xml:"r"`
}

// ParagraphProps - w:pPr, подмножество, достаточное для конвертации.
type ParagraphProps struct {
	Style *ValAttr  `xml:"pStyle"`
	NumPr *NumProps `xml:"numPr"`
	Jc    *ValAttr  `xml:"jc"`
}

// NumProps - w:numPr, признак нумерованного параграфа.
type NumProps struct {
	Level *ValAttr `xml:"ilvl"`
	NumID *ValAttr `xml:"numId"`
}

// Run - w:r: свойства и текстовые под-элементы.
type Run struct {
	Props *RunProps `xml:"rPr"`
	Texts []RunText `xml:"t"`
}

// RunProps - w:rPr.
type RunProps struct {
	Bold      *Toggle  `xml:"b"`
	Italic    *Toggle  `xml:"i"`
	Underline *ValAttr `xml:"u"`
	Strike    *Toggle  `xml:"strike"`
	Color     *ValAttr `xml:"color"`
	Size      *ValAttr `xml:"sz"`
	Fonts     *Fonts   `xml:"rFonts"`
}

// Toggle - переключаемое свойство: присутствие элемента включает его,
// если val не говорит обратного.
type Toggle struct {
	Val string `xml:"val,attr"`
}

// On сообщает, включено ли свойство.
func (t *Toggle) On() bool {
	if t == nil {
		return false
	}
	switch t.Val {
	case "0", "false", "none", "off":
		return false
	}
	return true
}

// ValAttr - элемент с единственным атрибутом w:val.
type ValAttr struct {
	Val string `xml:"val,attr"`
}

// Fonts - w:rFonts.
type Fonts struct {
	ASCII    string `xml:"ascii,attr"`
	EastAsia string `xml:"eastAsia,attr"`
}

// RunText - w:t с текстом и признаком сохранения пробелов.
type RunText struct {
	Space string `xml:"space,attr"`
	Text  string `xml:",chardata"`
}
