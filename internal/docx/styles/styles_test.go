package styles

import (
	"testing"

	"github.com/aisa-it/aiplan-docx/docx.go/internal/docx/wordtree"
	"github.com/stretchr/testify/assert"
)

func TestDecodeRunProperties(t *testing.T) {
	t.Run("size color bold", func(t *testing.T) {
		m := DecodeRunProperties(&wordtree.RunProperties{
			Size:  "24",
			Color: "FF0000",
			Bold:  true,
		})

		assert.Equal(t, "12pt", m["fontSize"])
		assert.Equal(t, "#FF0000", m["color"])
		assert.Equal(t, "bold", m["fontWeight"])
	})

	t.Run("half point size keeps fraction", func(t *testing.T) {
		m := DecodeRunProperties(&wordtree.RunProperties{Size: "21"})
		assert.Equal(t, "10.5pt", m["fontSize"])
	})

	t.Run("auto color ignored", func(t *testing.T) {
		m := DecodeRunProperties(&wordtree.RunProperties{Color: "auto"})
		assert.NotContains(t, m, "color")
	})

	t.Run("east asia font wins over ascii", func(t *testing.T) {
		m := DecodeRunProperties(&wordtree.RunProperties{
			FontASCII:    "Times New Roman",
			FontEastAsia: "宋体",
		})
		assert.Equal(t, `"SimSun", "宋体", serif`, m["fontFamily"])
	})

	t.Run("highlight becomes background", func(t *testing.T) {
		m := DecodeRunProperties(&wordtree.RunProperties{Highlight: "yellow"})
		assert.Equal(t, "#FFFF00", m["backgroundColor"])
	})

	t.Run("nil properties", func(t *testing.T) {
		assert.Empty(t, DecodeRunProperties(nil))
	})
}

func TestDecodeParagraphProperties(t *testing.T) {
	t.Run("justification both means justify", func(t *testing.T) {
		m := DecodeParagraphProperties(&wordtree.ParagraphProperties{Justification: "both"})
		assert.Equal(t, "justify", m["textAlign"])
	})

	t.Run("twips indentation", func(t *testing.T) {
		m := DecodeParagraphProperties(&wordtree.ParagraphProperties{
			IndentLeft:      480,
			IndentFirstLine: 420,
		})
		assert.Equal(t, "24pt", m["marginLeft"])
		assert.Equal(t, "21pt", m["textIndent"])
	})

	t.Run("line spacing exact", func(t *testing.T) {
		m := DecodeParagraphProperties(&wordtree.ParagraphProperties{
			Line:     560,
			LineRule: "exact",
		})
		assert.Equal(t, "28pt", m["lineHeight"])
	})

	t.Run("line spacing multiplier", func(t *testing.T) {
		m := DecodeParagraphProperties(&wordtree.ParagraphProperties{Line: 360})
		assert.Equal(t, "1.5", m["lineHeight"])
	})

	t.Run("shading fill", func(t *testing.T) {
		m := DecodeParagraphProperties(&wordtree.ParagraphProperties{ShadingFill: "EEEEEE"})
		assert.Equal(t, "#EEEEEE", m["backgroundColor"])
	})
}

func TestExtractAlignmentCascade(t *testing.T) {
	e := NewExtractor()

	t.Run("inline style beats alignment class", func(t *testing.T) {
		m := e.Extract(Element{
			Tag:         "p",
			Classes:     []string{"text-left"},
			InlineStyle: "text-align:center",
			Text:        "short text",
		})
		assert.Equal(t, "center", m["textAlign"])
	})

	t.Run("class when no inline", func(t *testing.T) {
		m := e.Extract(Element{
			Tag:     "p",
			Classes: []string{"text-right"},
			Text:    "short text",
		})
		assert.Equal(t, "right", m["textAlign"])
	})

	t.Run("chinese paragraph defaults to justify", func(t *testing.T) {
		m := e.Extract(Element{
			Tag:  "p",
			Text: "依照本合同的约定，双方应当在合同生效后三十日内完成全部交付义务，并对交付结果进行书面确认。任何一方未能履行的，应承担相应的违约责任。",
		})
		assert.Equal(t, "justify", m["textAlign"])
		assert.Equal(t, "justify", m["textAlignLast"])
	})

	t.Run("english paragraph defaults to left", func(t *testing.T) {
		m := e.Extract(Element{
			Tag:  "p",
			Text: "This paragraph of English text is long enough so that the analyzer does not treat it as a likely standalone heading line in this layout context because it ends with a period.",
		})
		assert.Equal(t, "left", m["textAlign"])
	})

	t.Run("short heading centers", func(t *testing.T) {
		m := e.Extract(Element{Tag: "h1", Text: "年度报告"})
		assert.Equal(t, "center", m["textAlign"])
	})
}

func TestExtractPassPrecedence(t *testing.T) {
	e := NewExtractor()

	t.Run("tag preset wins over class preset", func(t *testing.T) {
		m := e.Extract(Element{Tag: "h2", Classes: []string{"small"}, Text: "Chapter"})
		assert.Equal(t, "24px", m["fontSize"])
	})

	t.Run("class preset fills before inline", func(t *testing.T) {
		m := e.Extract(Element{
			Tag:         "div",
			Classes:     []string{"small"},
			InlineStyle: "font-size:20px",
			Text:        "x",
		})
		assert.Equal(t, "12px", m["fontSize"])
	})

	t.Run("inline font family normalized", func(t *testing.T) {
		m := e.Extract(Element{
			Tag:         "p",
			InlineStyle: "font-family: 黑体",
			Text:        "文本",
		})
		assert.Equal(t, `"SimHei", "黑体", sans-serif`, m["fontFamily"])
	})

	t.Run("computed fills absent only", func(t *testing.T) {
		m := e.Extract(Element{
			Tag:         "div",
			InlineStyle: "color:#111111",
			Computed:    map[string]string{"color": "#222222", "letter-spacing": "1px"},
			Text:        "x",
		})
		assert.Equal(t, "#111111", m["color"])
		assert.Equal(t, "1px", m["letterSpacing"])
	})
}

func TestExtractContextual(t *testing.T) {
	e := NewExtractor()

	t.Run("table cell padding and border", func(t *testing.T) {
		m := e.Extract(Element{Tag: "p", ParentTag: "td", Text: "cell"})
		assert.Equal(t, "4px 8px", m["padding"])
		assert.Equal(t, "1px solid #dddddd", m["border"])
	})

	t.Run("explicit px indent wins over nesting depth", func(t *testing.T) {
		m := e.Extract(Element{
			Tag:          "p",
			InlineStyle:  "margin-left:60px",
			NestingDepth: 1,
			Text:         "x",
		})
		assert.Equal(t, "60px", m["marginLeft"])
	})

	t.Run("nesting depth converted to 20px per level", func(t *testing.T) {
		m := e.Extract(Element{Tag: "p", NestingDepth: 2, Text: "x"})
		assert.Equal(t, "40px", m["marginLeft"])
	})

	t.Run("leading whitespace as last resort", func(t *testing.T) {
		m := e.Extract(Element{Tag: "p", Text: "        indented body text here."})
		assert.Equal(t, "40px", m["marginLeft"])
	})
}

func TestChildAggregation(t *testing.T) {
	e := NewExtractor()

	t.Run("mostly bold element becomes bold", func(t *testing.T) {
		m := e.Extract(Element{
			Tag:  "p",
			Text: "mostly bold text here.",
			Child: ChildAggregate{
				TotalTextLen: 100,
				BoldLen:      80,
			},
		})
		assert.Equal(t, "bold", m["fontWeight"])
	})

	t.Run("below threshold not bold", func(t *testing.T) {
		m := e.Extract(Element{
			Tag:  "p",
			Text: "partially bold text here.",
			Child: ChildAggregate{
				TotalTextLen: 100,
				BoldLen:      50,
			},
		})
		assert.NotContains(t, m, "fontWeight")
	})

	t.Run("descendant font backfills", func(t *testing.T) {
		// Текст без выраженной письменности: проход 7 не ставит шрифт по
		// умолчанию и дочерний шрифт доходит до элемента.
		m := e.Extract(Element{
			Tag:  "div",
			Text: "1234567890.",
			Child: ChildAggregate{
				TotalTextLen: 1,
				FontFamily:   "楷体",
				FontSize:     "14px",
			},
		})
		assert.Equal(t, `"KaiTi", "楷体", serif`, m["fontFamily"])
		assert.Equal(t, "14px", m["fontSize"])
	})
}
