package htmlconv

import (
	"strings"
	"testing"

	"github.com/aisa-it/aiplan-docx/docx.go/internal/docx/blocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocumentBasics(t *testing.T) {
	p := NewParser()

	src := `
<h1>Общие положения</h1>
<p>Первый параграф основного текста.</p>
<ol><li>первый пункт</li><li>второй пункт</li></ol>
<blockquote><p>строка цитаты</p></blockquote>
<pre><code>x := 1</code></pre>
<table><tr><th>Имя</th><th>Срок</th></tr><tr><td>поставка</td><td>30 дней</td></tr></table>
`
	doc, err := p.ParseDocument(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 6)

	assert.Equal(t, blocks.BlockHeader, doc.Blocks[0].Type)
	assert.Equal(t, 1, doc.Blocks[0].Data.Level)
	assert.Equal(t, "Общие положения", doc.Blocks[0].Data.Text)

	assert.Equal(t, blocks.BlockParagraph, doc.Blocks[1].Type)

	assert.Equal(t, blocks.BlockList, doc.Blocks[2].Type)
	assert.Equal(t, blocks.ListOrdered, doc.Blocks[2].Data.Style)
	assert.Equal(t, []string{"первый пункт", "второй пункт"}, doc.Blocks[2].Data.Items)

	assert.Equal(t, blocks.BlockQuote, doc.Blocks[3].Type)
	assert.Equal(t, "строка цитаты", doc.Blocks[3].Data.Text)

	assert.Equal(t, blocks.BlockCode, doc.Blocks[4].Type)
	assert.Equal(t, "x := 1", doc.Blocks[4].Data.Code)

	table := doc.Blocks[5]
	assert.Equal(t, blocks.BlockTable, table.Type)
	assert.True(t, table.Data.WithHeadings)
	assert.Equal(t, [][]string{{"Имя", "Срок"}, {"поставка", "30 дней"}}, table.Data.Content)
}

func TestParseInlineAllowList(t *testing.T) {
	p := NewParser()

	doc, err := p.ParseDocument(strings.NewReader(
		`<p>Hello <b>bold</b> and plain <script>alert(1)</script></p>`))
	require.NoError(t, err)

	require.Len(t, doc.Blocks, 1)
	// Допустимые inline-теги сохраняются в тексте блока, скрипты вырезаются
	// санитайзером целиком.
	assert.Equal(t, "Hello <b>bold</b> and plain", doc.Blocks[0].Data.Text)
}

func TestParseBrSegmentation(t *testing.T) {
	p := NewParser()

	doc, err := p.ParseDocument(strings.NewReader(
		`<p style="text-align: center">первая строка<br>вторая строка</p>`))
	require.NoError(t, err)

	require.Len(t, doc.Blocks, 2)
	assert.Equal(t, "первая строка", doc.Blocks[0].Data.Text)
	assert.Equal(t, "вторая строка", doc.Blocks[1].Data.Text)
	// Оба сегмента наследуют стили исходного параграфа.
	assert.Equal(t, "center", doc.Blocks[0].Data.Styles["textAlign"])
	assert.Equal(t, "center", doc.Blocks[1].Data.Styles["textAlign"])
}

func TestParseLooseText(t *testing.T) {
	p := NewParser()

	doc, err := p.ParseDocument(strings.NewReader(`просто текст без разметки`))
	require.NoError(t, err)

	require.Len(t, doc.Blocks, 1)
	assert.Equal(t, blocks.BlockParagraph, doc.Blocks[0].Type)
	assert.Equal(t, "просто текст без разметки", doc.Blocks[0].Data.Text)
}

func TestParseEmptyDocument(t *testing.T) {
	p := NewParser()

	doc, err := p.ParseDocument(strings.NewReader(""))
	require.NoError(t, err)

	require.Len(t, doc.Blocks, 1)
	assert.Equal(t, blocks.BlockParagraph, doc.Blocks[0].Type)
	assert.Empty(t, doc.Blocks[0].Data.Text)
}

func TestParseFigureWithCaption(t *testing.T) {
	p := NewParser()

	doc, err := p.ParseDocument(strings.NewReader(
		`<figure><img src="https://example.com/a.png" alt="схема"><figcaption>Рисунок 1</figcaption></figure>`))
	require.NoError(t, err)

	require.Len(t, doc.Blocks, 1)
	b := doc.Blocks[0]
	assert.Equal(t, blocks.BlockImage, b.Type)
	require.NotNil(t, b.Data.File)
	assert.Equal(t, "https://example.com/a.png", b.Data.File.URL)
	assert.Equal(t, "Рисунок 1", b.Data.Caption)
}

func TestRenderDocument(t *testing.T) {
	doc := blocks.NewDocument()
	doc.Blocks = []*blocks.Block{
		blocks.NewHeader("Заголовок", 2, nil),
		blocks.NewParagraph("Текст параграфа.", nil),
		blocks.NewTable([][]string{{"a", "b"}}, false),
	}

	r := &Renderer{}
	out, err := r.Render(doc)
	require.NoError(t, err)

	assert.Contains(t, out, "<h2>Заголовок</h2>")
	assert.Contains(t, out, "<p>Текст параграфа.</p>")
	assert.Contains(t, out, "<td>a</td>")
}

func TestRenderStyleAttr(t *testing.T) {
	doc := blocks.NewDocument()
	doc.Blocks = []*blocks.Block{
		blocks.NewParagraph("текст", map[string]string{
			"textAlign": "center",
			"fontSize":  "12pt",
		}),
	}

	out, err := (&Renderer{}).Render(doc)
	require.NoError(t, err)

	// Ключи карты стилей сериализуются в kebab-case в стабильном порядке.
	assert.Contains(t, out, `style="font-size: 12pt; text-align: center"`)
}

func TestRenderMinified(t *testing.T) {
	doc := blocks.NewDocument()
	doc.Blocks = []*blocks.Block{
		blocks.NewHeader("Заголовок", 1, nil),
		blocks.NewParagraph("Текст.", nil),
	}

	out, err := (&Renderer{Minify: true}).Render(doc)
	require.NoError(t, err)
	assert.Contains(t, out, "<h1>Заголовок</h1>")
}

// Рендер и повторный парсинг сохраняют тип и текст блоков.
func TestRoundTrip(t *testing.T) {
	src := blocks.NewDocument()
	src.Blocks = []*blocks.Block{
		blocks.NewHeader("Раздел договора", 2, nil),
		blocks.NewParagraph("Обычный текст параграфа документа.", nil),
		blocks.NewList(blocks.ListOrdered, []string{"первый пункт", "второй пункт"}),
		blocks.NewQuote("строка цитаты", nil),
		blocks.NewCode("fmt.Println(42)"),
	}

	out, err := (&Renderer{}).Render(src)
	require.NoError(t, err)

	doc, err := NewParser().ParseDocument(strings.NewReader(out))
	require.NoError(t, err)

	require.Len(t, doc.Blocks, len(src.Blocks))
	for i, b := range src.Blocks {
		got := doc.Blocks[i]
		assert.Equal(t, b.Type, got.Type, "block %d", i)
		assert.Equal(t, b.PlainText(), got.PlainText(), "block %d", i)
	}
	assert.Equal(t, 2, doc.Blocks[0].Data.Level)
	assert.Equal(t, blocks.ListOrdered, doc.Blocks[2].Data.Style)
}
