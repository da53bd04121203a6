package wordxml

import (
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/aisa-it/aiplan-docx/docx.go/internal/docx/tiptap"
	"github.com/aisa-it/aiplan-docx/docx.go/internal/docx/wordfont"
)

// Заголовочный стиль параграфа; уровень - первая цифра в имени стиля.
var (
	headingStyleReg = regexp.MustCompile(`(?i)heading|title|标题`)
	firstDigitReg   = regexp.MustCompile(`\d`)
)

// Parse читает Word-XML и строит вложенную модель документа.
func Parse(r io.Reader) (*tiptap.Document, error) {
	var file WordFile
	if err := xml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("parse word xml: %w", err)
	}

	doc := tiptap.NewDocument()
	for i := range file.Body.Paragraphs {
		doc.Content = append(doc.Content, parseParagraph(&file.Body.Paragraphs[i]))
	}
	return doc, nil
}

// parseParagraph выбирает тип узла: heading по имени стиля, listItem по
// свойству нумерации, иначе обычный параграф.
func parseParagraph(p *Paragraph) tiptap.Node {
	content := parseRuns(p.Runs)
	// Пустой параграф представляется текстовым узлом из одного пробела,
	// а не опускается: потребитель экспорта ожидает узел на каждый w:p.
	if len(content) == 0 {
		content = []tiptap.Node{tiptap.NewTextNode(" ")}
	}

	if p.Props != nil {
		if style := p.Props.Style; style != nil && headingStyleReg.MatchString(style.Val) {
			return tiptap.Node{
				Type:    "heading",
				Attrs:   map[string]interface{}{"level": headingLevel(style.Val)},
				Content: content,
			}
		}
		if p.Props.NumPr != nil {
			attrs := map[string]interface{}{}
			if id := p.Props.NumPr.NumID; id != nil {
				attrs["numId"] = id.Val
			}
			if lvl := p.Props.NumPr.Level; lvl != nil {
				attrs["level"] = lvl.Val
			}
			// Элемент списка оборачивает вложенный параграф.
			return tiptap.Node{
				Type:    "listItem",
				Attrs:   attrs,
				Content: []tiptap.Node{{Type: "paragraph", Content: content}},
			}
		}
	}

	return tiptap.Node{Type: "paragraph", Content: content}
}

// headingLevel - первая цифра имени стиля, ограничение сверху 6.
func headingLevel(styleName string) int {
	digit := firstDigitReg.FindString(styleName)
	if digit == "" {
		return 1
	}
	level, _ := strconv.Atoi(digit)
	if level < 1 {
		return 1
	}
	if level > 6 {
		return 6
	}
	return level
}

// parseRuns строит по текстовому узлу на каждый w:t прогона.
func parseRuns(runs []Run) []tiptap.Node {
	var res []tiptap.Node
	for i := range runs {
		marks := runMarks(runs[i].Props)
		for _, t := range runs[i].Texts {
			if t.Text == "" {
				continue
			}
			res = append(res, tiptap.NewTextNode(t.Text, marks...))
		}
	}
	return res
}

// runMarks превращает свойства прогона в массив марок. Цвет и размер дают
// по отдельной марке textStyle, они сознательно не сливаются в одну.
func runMarks(props *RunProps) []tiptap.Mark {
	if props == nil {
		return nil
	}

	var marks []tiptap.Mark
	if props.Bold.On() {
		marks = append(marks, tiptap.Mark{Type: "bold"})
	}
	if props.Italic.On() {
		marks = append(marks, tiptap.Mark{Type: "italic"})
	}
	if props.Underline != nil && props.Underline.Val != "none" {
		marks = append(marks, tiptap.Mark{Type: "underline"})
	}
	if props.Strike.On() {
		marks = append(marks, tiptap.Mark{Type: "strike"})
	}

	if props.Color != nil && props.Color.Val != "" && props.Color.Val != "auto" {
		marks = append(marks, tiptap.TextStyleMark("color", "#"+strings.ToUpper(props.Color.Val)))
	}
	if props.Size != nil && props.Size.Val != "" {
		if half, err := strconv.ParseFloat(props.Size.Val, 64); err == nil {
			marks = append(marks, tiptap.TextStyleMark("fontSize", formatPt(half/2)))
		}
	}
	if props.Fonts != nil {
		name := props.Fonts.EastAsia
		if name == "" {
			name = props.Fonts.ASCII
		}
		if name != "" {
			marks = append(marks, tiptap.TextStyleMark("fontFamily", wordfont.NormalizeFontName(name)))
		}
	}
	return marks
}

func formatPt(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "pt"
}
