// Пакет docxfile адаптирует внешний парсер docx-контейнера
// (github.com/fumiama/go-docx) к объектному дереву wordtree. Байтовый разбор
// файла остаётся снаружи ядра конвертации.
package docxfile

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/aisa-it/aiplan-docx/docx.go/internal/docx/wordtree"
	"github.com/fumiama/go-docx"
)

// Open читает docx-файл с диска и строит объектное дерево.
func Open(path string) (*wordtree.WordDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open docx: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat docx: %w", err)
	}

	parsed, err := docx.Parse(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}
	return convert(parsed), nil
}

// Read читает docx из потока. Парсеру нужен ReadSeeker и размер, поэтому
// поток сбрасывается во временный файл.
func Read(r io.Reader) (*wordtree.WordDocument, error) {
	tmp, err := os.CreateTemp("", "docxconv-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("seek temp file: %w", err)
	}

	parsed, err := docx.Parse(tmp, size)
	tmp.Close()
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}
	return convert(parsed), nil
}

func convert(doc *docx.Docx) *wordtree.WordDocument {
	body := &wordtree.WordNode{Type: wordtree.TypeBody}

	for _, item := range doc.Document.Body.Items {
		switch v := item.(type) {
		case *docx.Paragraph:
			body.Children = append(body.Children, convertParagraph(v))
		case *docx.Table:
			body.Children = append(body.Children, convertTable(v))
		default:
			slog.Debug("Skipping unsupported body item", "type", fmt.Sprintf("%T", item))
		}
	}

	return &wordtree.WordDocument{
		DocumentPart: wordtree.DocumentPart{Body: body},
	}
}

func convertParagraph(p *docx.Paragraph) *wordtree.WordNode {
	node := &wordtree.WordNode{
		Type:      wordtree.TypeParagraph,
		ParaProps: convertParagraphProps(p.Properties),
	}

	for _, child := range p.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		node.Children = append(node.Children, convertRun(run))
	}
	return node
}

func convertParagraphProps(props *docx.ParagraphProperties) *wordtree.ParagraphProperties {
	if props == nil {
		return nil
	}

	res := &wordtree.ParagraphProperties{}
	if props.Style != nil {
		res.StyleName = props.Style.Val
	}
	if props.Justification != nil {
		res.Justification = props.Justification.Val
	}
	if props.NumProperties != nil {
		res.HasNumbering = true
		if props.NumProperties.NumID != nil {
			if v, err := strconv.Atoi(props.NumProperties.NumID.Val); err == nil {
				res.NumberingID = v
			}
		}
		if props.NumProperties.Ilvl != nil {
			if v, err := strconv.Atoi(props.NumProperties.Ilvl.Val); err == nil {
				res.NumberingLevel = v
			}
		}
	}
	return res
}

func convertRun(r *docx.Run) *wordtree.WordNode {
	node := &wordtree.WordNode{
		Type:     wordtree.TypeRun,
		RunProps: convertRunProps(r.RunProperties),
	}

	for _, child := range r.Children {
		switch v := child.(type) {
		case *docx.Text:
			node.Children = append(node.Children, &wordtree.WordNode{
				Type: wordtree.TypeText,
				Text: v.Text,
			})
		case *docx.Tab:
			node.Children = append(node.Children, &wordtree.WordNode{Type: wordtree.TypeTab})
		case *docx.BarterRabbet:
			node.Children = append(node.Children, &wordtree.WordNode{Type: wordtree.TypeBreak})
		default:
			slog.Debug("Skipping unsupported run child", "type", fmt.Sprintf("%T", child))
		}
	}
	return node
}

func convertRunProps(props *docx.RunProperties) *wordtree.RunProperties {
	if props == nil {
		return nil
	}

	res := &wordtree.RunProperties{
		Bold:   props.Bold != nil,
		Italic: props.Italic != nil,
	}
	if props.Underline != nil && props.Underline.Val != "none" {
		res.Underline = true
	}
	if props.Strike != nil {
		res.Strike = true
	}
	if props.Color != nil {
		res.Color = props.Color.Val
	}
	if props.Size != nil {
		res.Size = fmt.Sprint(props.Size.Val)
	}
	if props.Highlight != nil {
		res.Highlight = props.Highlight.Val
	}
	if props.Fonts != nil {
		res.FontASCII = props.Fonts.ASCII
		res.FontEastAsia = props.Fonts.EastAsia
	}
	if props.VertAlign != nil {
		res.VertAlign = props.VertAlign.Val
	}
	return res
}

func convertTable(t *docx.Table) *wordtree.WordNode {
	table := &wordtree.WordNode{Type: wordtree.TypeTable}

	for _, row := range t.TableRows {
		rowNode := &wordtree.WordNode{Type: wordtree.TypeTableRow}
		for _, cell := range row.TableCells {
			cellNode := &wordtree.WordNode{Type: wordtree.TypeTableCell}
			for _, p := range cell.Paragraphs {
				cellNode.Children = append(cellNode.Children, convertParagraph(p))
			}
			rowNode.Children = append(rowNode.Children, cellNode)
		}
		if len(rowNode.Children) > 0 {
			table.Children = append(table.Children, rowNode)
		}
	}
	return table
}
