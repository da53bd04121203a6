// Пакет mdexport сериализует блочный документ в Markdown для текстовых
// потребителей: уведомлений, выгрузок, просмотра без редактора.
package mdexport

import (
	"fmt"
	"io"

	md "github.com/nao1215/markdown"

	"github.com/aisa-it/aiplan-docx/docx.go/internal/docx/blocks"
	"github.com/aisa-it/aiplan-docx/docx.go/internal/docx/htmlconv"
)

// Export пишет Markdown-представление документа. Inline-разметка в тексте
// блоков отбрасывается, стили не переносятся.
func Export(w io.Writer, doc *blocks.Document) error {
	out := md.NewMarkdown(w)

	for _, b := range doc.Blocks {
		writeBlock(out, b)
	}

	return out.Build()
}

func writeBlock(out *md.Markdown, b *blocks.Block) {
	switch b.Type {
	case blocks.BlockHeader:
		writeHeader(out, b)

	case blocks.BlockList:
		items := make([]string, 0, len(b.Data.Items))
		for _, item := range b.Data.Items {
			items = append(items, htmlconv.StripTags(item))
		}
		if b.Data.Style == blocks.ListOrdered {
			out.OrderedList(items...)
		} else {
			out.BulletList(items...)
		}

	case blocks.BlockQuote:
		out.Blockquote(htmlconv.StripTags(b.Data.Text))

	case blocks.BlockCode:
		out.CodeBlocks(md.SyntaxHighlightNone, b.Data.Code)

	case blocks.BlockTable:
		writeTable(out, b)

	case blocks.BlockImage:
		if b.Data.File != nil {
			out.PlainText(fmt.Sprintf("![%s](%s)", b.Data.Caption, b.Data.File.URL))
		}

	default:
		if text := htmlconv.StripTags(b.Data.Text); text != "" {
			out.PlainText(text)
		}
	}
}

func writeHeader(out *md.Markdown, b *blocks.Block) {
	text := htmlconv.StripTags(b.Data.Text)
	switch b.Data.Level {
	case 1:
		out.H1(text)
	case 2:
		out.H2(text)
	case 3:
		out.H3(text)
	case 4:
		out.H4(text)
	case 5:
		out.H5(text)
	default:
		out.H6(text)
	}
}

func writeTable(out *md.Markdown, b *blocks.Block) {
	if len(b.Data.Content) == 0 {
		return
	}

	header := b.Data.Content[0]
	rows := b.Data.Content[1:]
	if !b.Data.WithHeadings {
		// Markdown-таблица требует шапку; без неё первая строка становится
		// пустой шапкой нужной ширины.
		header = make([]string, len(b.Data.Content[0]))
		rows = b.Data.Content
	}

	out.CustomTable(md.TableSet{
		Header: header,
		Rows:   rows,
	}, md.TableOptions{
		AutoWrapText: false,
	})
}
