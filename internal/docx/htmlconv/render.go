package htmlconv

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aisa-it/aiplan-docx/docx.go/internal/docx/blocks"
	"github.com/tdewolff/minify/v2"
	mhtml "github.com/tdewolff/minify/v2/html"
	"golang.org/x/net/html"
)

// Renderer сериализует блочный документ в HTML.
type Renderer struct {
	// Minify включает минификацию результата.
	Minify bool
}

var minifier = func() *minify.M {
	m := minify.New()
	m.AddFunc("text/html", mhtml.Minify)
	return m
}()

// Render собирает HTML-представление документа. Неизвестные типы блоков
// деградируют до параграфа с текстом блока.
func (r *Renderer) Render(doc *blocks.Document) (string, error) {
	var sb strings.Builder

	for _, b := range doc.Blocks {
		renderBlock(&sb, b)
	}

	out := sb.String()
	if r.Minify {
		min, err := minifier.String("text/html", out)
		if err != nil {
			return "", fmt.Errorf("minify html: %w", err)
		}
		out = min
	}
	return out, nil
}

func renderBlock(sb *strings.Builder, b *blocks.Block) {
	style := styleAttr(b)

	switch b.Type {
	case blocks.BlockHeader:
		level := b.Data.Level
		if level < 1 || level > 6 {
			level = 1
		}
		fmt.Fprintf(sb, "<h%d%s>%s</h%d>\n", level, style, b.Data.Text, level)

	case blocks.BlockList:
		tag := "ul"
		if b.Data.Style == blocks.ListOrdered {
			tag = "ol"
		}
		fmt.Fprintf(sb, "<%s%s>\n", tag, style)
		for _, item := range b.Data.Items {
			fmt.Fprintf(sb, "<li>%s</li>\n", item)
		}
		fmt.Fprintf(sb, "</%s>\n", tag)

	case blocks.BlockQuote:
		sb.WriteString("<blockquote" + style + ">\n")
		for line := range strings.SplitSeq(b.Data.Text, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				fmt.Fprintf(sb, "<p>%s</p>\n", line)
			}
		}
		sb.WriteString("</blockquote>\n")

	case blocks.BlockCode:
		fmt.Fprintf(sb, "<pre><code>%s</code></pre>\n", html.EscapeString(b.Data.Code))

	case blocks.BlockTable:
		renderTable(sb, b, style)

	case blocks.BlockImage:
		if b.Data.File == nil {
			return
		}
		src := html.EscapeString(b.Data.File.URL)
		if b.Data.Caption != "" {
			fmt.Fprintf(sb, "<figure><img src=%q><figcaption>%s</figcaption></figure>\n",
				src, html.EscapeString(b.Data.Caption))
		} else {
			fmt.Fprintf(sb, "<img src=%q>\n", src)
		}

	default:
		fmt.Fprintf(sb, "<p%s>%s</p>\n", style, b.Data.Text)
	}
}

func renderTable(sb *strings.Builder, b *blocks.Block, style string) {
	fmt.Fprintf(sb, "<table%s>\n", style)
	for i, row := range b.Data.Content {
		cell := "td"
		if i == 0 && b.Data.WithHeadings {
			cell = "th"
		}
		sb.WriteString("<tr>")
		for _, text := range row {
			fmt.Fprintf(sb, "<%s>%s</%s>", cell, html.EscapeString(text), cell)
		}
		sb.WriteString("</tr>\n")
	}
	sb.WriteString("</table>\n")
}

// styleAttr сериализует карту стилей блока в атрибут style. Ключи
// отсортированы для стабильного вывода.
func styleAttr(b *blocks.Block) string {
	if len(b.Data.Styles) == 0 {
		return ""
	}

	keys := make([]string, 0, len(b.Data.Styles))
	for k := range b.Data.Styles {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		if sb.Len() > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(camelToKebab(k) + ": " + b.Data.Styles[k])
	}
	return ` style="` + html.EscapeString(sb.String()) + `"`
}

func camelToKebab(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			sb.WriteByte('-')
			sb.WriteRune(r - 'A' + 'a')
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
