package blocks

import (
	"testing"

	"github.com/aisa-it/aiplan-docx/docx.go/internal/docx/wordtree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func para(text string, props *wordtree.ParagraphProperties) *wordtree.WordNode {
	return &wordtree.WordNode{
		Type:      wordtree.TypeParagraph,
		ParaProps: props,
		Children: []*wordtree.WordNode{
			{
				Type: wordtree.TypeRun,
				Children: []*wordtree.WordNode{
					{Type: wordtree.TypeText, Text: text},
				},
			},
		},
	}
}

func docWithBody(children ...*wordtree.WordNode) *wordtree.WordDocument {
	return &wordtree.WordDocument{
		DocumentPart: wordtree.DocumentPart{
			Body: &wordtree.WordNode{Type: wordtree.TypeBody, Children: children},
		},
	}
}

func TestConvertParagraphCount(t *testing.T) {
	c := NewConverter()

	doc := c.Convert(docWithBody(
		para("Первый параграф текста документа.", nil),
		para("Второй параграф текста документа.", nil),
		para("   ", nil),
		para("Третий параграф текста документа.", nil),
	))

	// Пустые параграфы отбрасываются, остальные дают по одному блоку.
	require.Len(t, doc.Blocks, 3)
	for _, b := range doc.Blocks {
		assert.Equal(t, BlockParagraph, b.Type)
		assert.NotEmpty(t, b.ID)
		assert.NotEmpty(t, b.Data.Text)
	}
}

func TestConvertHeadingDetection(t *testing.T) {
	c := NewConverter()

	t.Run("chapter marker without explicit style", func(t *testing.T) {
		doc := c.Convert(docWithBody(para("第一章 总则", nil)))

		require.Len(t, doc.Blocks, 1)
		assert.Equal(t, BlockHeader, doc.Blocks[0].Type)
		assert.Equal(t, 1, doc.Blocks[0].Data.Level)
		assert.Equal(t, "第一章 总则", doc.Blocks[0].Data.Text)
	})

	t.Run("explicit heading style", func(t *testing.T) {
		doc := c.Convert(docWithBody(
			para("Раздел о гарантиях", &wordtree.ParagraphProperties{StyleName: "Heading2"}),
		))

		require.Len(t, doc.Blocks, 1)
		assert.Equal(t, BlockHeader, doc.Blocks[0].Type)
		assert.Equal(t, 2, doc.Blocks[0].Data.Level)
	})

	t.Run("explicit body style suppresses heuristic", func(t *testing.T) {
		doc := c.Convert(docWithBody(
			para("短标题", &wordtree.ParagraphProperties{StyleName: "BodyText"}),
		))

		require.Len(t, doc.Blocks, 1)
		assert.Equal(t, BlockParagraph, doc.Blocks[0].Type)
	})

	t.Run("level clamped to six", func(t *testing.T) {
		doc := c.Convert(docWithBody(
			para("Глубокий заголовок", &wordtree.ParagraphProperties{StyleName: "Heading9"}),
		))

		require.Len(t, doc.Blocks, 1)
		assert.Equal(t, 6, doc.Blocks[0].Data.Level)
	})
}

func TestConvertNumberedParagraphBecomesList(t *testing.T) {
	c := NewConverter()

	doc := c.Convert(docWithBody(
		para("первый пункт перечня", &wordtree.ParagraphProperties{HasNumbering: true, NumberingID: 1}),
	))

	require.Len(t, doc.Blocks, 1)
	assert.Equal(t, BlockList, doc.Blocks[0].Type)
	assert.Equal(t, ListOrdered, doc.Blocks[0].Data.Style)
	assert.Equal(t, []string{"первый пункт перечня"}, doc.Blocks[0].Data.Items)
}

func TestConvertTable(t *testing.T) {
	c := NewConverter()

	cell := func(text string) *wordtree.WordNode {
		return &wordtree.WordNode{
			Type:     wordtree.TypeTableCell,
			Children: []*wordtree.WordNode{{Type: wordtree.TypeText, Text: text}},
		}
	}
	row := func(cells ...*wordtree.WordNode) *wordtree.WordNode {
		return &wordtree.WordNode{Type: wordtree.TypeTableRow, Children: cells}
	}

	doc := c.Convert(docWithBody(&wordtree.WordNode{
		Type: wordtree.TypeTable,
		Children: []*wordtree.WordNode{
			row(cell("Имя"), cell("Значение")),
			row(cell("срок"), cell("30 дней")),
		},
	}))

	require.Len(t, doc.Blocks, 1)
	b := doc.Blocks[0]
	assert.Equal(t, BlockTable, b.Type)
	assert.True(t, b.Data.WithHeadings)
	assert.Equal(t, [][]string{{"Имя", "Значение"}, {"срок", "30 дней"}}, b.Data.Content)
}

func TestConvertInlineMerging(t *testing.T) {
	c := NewConverter()

	t.Run("loose inline nodes synthesize paragraph", func(t *testing.T) {
		doc := c.Convert(docWithBody(
			&wordtree.WordNode{Type: wordtree.TypeText, Text: "начало"},
			&wordtree.WordNode{Type: wordtree.TypeTab},
			&wordtree.WordNode{Type: wordtree.TypeText, Text: "конец"},
		))

		require.Len(t, doc.Blocks, 1)
		assert.Equal(t, "начало\tконец", doc.Blocks[0].Data.Text)
	})

	t.Run("inline after block merges into it", func(t *testing.T) {
		doc := c.Convert(docWithBody(
			para("Основной текст параграфа документа.", nil),
			&wordtree.WordNode{Type: wordtree.TypeText, Text: " хвост"},
		))

		require.Len(t, doc.Blocks, 1)
		assert.Equal(t, "Основной текст параграфа документа. хвост", doc.Blocks[0].Data.Text)
	})

	t.Run("page break closes current block", func(t *testing.T) {
		doc := c.Convert(docWithBody(
			para("Первая страница документа здесь.", nil),
			&wordtree.WordNode{Type: wordtree.TypePageBreak},
			&wordtree.WordNode{Type: wordtree.TypeText, Text: "после разрыва"},
		))

		require.Len(t, doc.Blocks, 2)
		assert.Equal(t, "после разрыва", doc.Blocks[1].Data.Text)
	})
}

func TestConvertSegmentation(t *testing.T) {
	c := NewConverter()

	// Переносы строки внутри параграфа дают отдельные блоки с общей картой
	// стилей родителя.
	p := &wordtree.WordNode{
		Type:      wordtree.TypeParagraph,
		ParaProps: &wordtree.ParagraphProperties{Justification: "center"},
		Children: []*wordtree.WordNode{
			{Type: wordtree.TypeText, Text: "первая строка"},
			{Type: wordtree.TypeBreak},
			{Type: wordtree.TypeText, Text: "вторая строка"},
		},
	}

	doc := c.Convert(docWithBody(p))

	require.Len(t, doc.Blocks, 2)
	assert.Equal(t, "первая строка", doc.Blocks[0].Data.Text)
	assert.Equal(t, "вторая строка", doc.Blocks[1].Data.Text)
	assert.Equal(t, "center", doc.Blocks[0].Data.Styles["textAlign"])
	assert.Equal(t, "center", doc.Blocks[1].Data.Styles["textAlign"])
}

func TestConvertFallbackSplitting(t *testing.T) {
	c := NewConverter()

	t.Run("ignored structure with text falls back to splitting", func(t *testing.T) {
		doc := c.Convert(docWithBody(&wordtree.WordNode{
			Type: wordtree.TypeField,
			Children: []*wordtree.WordNode{
				{Type: wordtree.TypeText, Text: "Первый абзац текста.\n\nВторой абзац текста."},
			},
		}))

		require.Len(t, doc.Blocks, 2)
		assert.Equal(t, "Первый абзац текста.", doc.Blocks[0].Data.Text)
		assert.Equal(t, "Второй абзац текста.", doc.Blocks[1].Data.Text)
	})

	t.Run("empty document gets single empty paragraph", func(t *testing.T) {
		doc := c.Convert(&wordtree.WordDocument{})

		require.Len(t, doc.Blocks, 1)
		assert.Equal(t, BlockParagraph, doc.Blocks[0].Type)
		assert.Empty(t, doc.Blocks[0].Data.Text)
	})
}

func TestConvertParagraphStyles(t *testing.T) {
	c := NewConverter()

	p := &wordtree.WordNode{
		Type:      wordtree.TypeParagraph,
		ParaProps: &wordtree.ParagraphProperties{Justification: "both"},
		Children: []*wordtree.WordNode{
			{
				Type:     wordtree.TypeRun,
				RunProps: &wordtree.RunProperties{Size: "24", Color: "FF0000", Bold: true},
				Children: []*wordtree.WordNode{
					{Type: wordtree.TypeText, Text: "本合同重要条款如下"},
				},
			},
		},
	}

	doc := c.Convert(docWithBody(p))

	require.Len(t, doc.Blocks, 1)
	m := doc.Blocks[0].Data.Styles
	assert.Equal(t, "12pt", m["fontSize"])
	assert.Equal(t, "#FF0000", m["color"])
	assert.Equal(t, "bold", m["fontWeight"])
	// Явное выравнивание Word не перезаписывается эвристикой.
	assert.Equal(t, "justify", m["textAlign"])
}
