package styles

import (
	"strconv"
	"strings"

	"github.com/aisa-it/aiplan-docx/docx.go/internal/docx/wordfont"
	"github.com/aisa-it/aiplan-docx/docx.go/internal/docx/wordtree"
)

// DecodeRunProperties переводит свойства прогона Word в карту стилей.
// Размеры приходят в полупунктах, цвета - в hex без префикса.
func DecodeRunProperties(rp *wordtree.RunProperties) StyleMap {
	m := make(StyleMap)
	if rp == nil {
		return m
	}

	if rp.Bold {
		m.SetIfAbsent("fontWeight", "bold")
	}
	if rp.Italic {
		m.SetIfAbsent("fontStyle", "italic")
	}
	if rp.Underline {
		m.SetIfAbsent("textDecoration", "underline")
	} else if rp.Strike {
		m.SetIfAbsent("textDecoration", "line-through")
	}

	if pt := HalfPointsToPt(rp.Size); pt != "" {
		m.SetIfAbsent("fontSize", pt)
	}
	if c := hexColor(rp.Color); c != "" {
		m.SetIfAbsent("color", c)
	}
	if bg, ok := wordfont.HighlightColor(rp.Highlight); ok {
		m.SetIfAbsent("backgroundColor", bg)
	}

	// Восточноазиатский шрифт приоритетнее латинского.
	switch {
	case rp.FontEastAsia != "":
		m.SetIfAbsent("fontFamily", wordfont.NormalizeFontName(rp.FontEastAsia))
	case rp.FontASCII != "":
		m.SetIfAbsent("fontFamily", wordfont.NormalizeFontName(rp.FontASCII))
	}

	switch rp.VertAlign {
	case "superscript":
		m.SetIfAbsent("verticalAlign", "super")
	case "subscript":
		m.SetIfAbsent("verticalAlign", "sub")
	}

	return m
}

// DecodeParagraphProperties переводит свойства параграфа Word в карту стилей.
// Отступы и интервалы приходят в твипах (1/20 пункта).
func DecodeParagraphProperties(pp *wordtree.ParagraphProperties) StyleMap {
	m := make(StyleMap)
	if pp == nil {
		return m
	}

	switch pp.Justification {
	case "both", "distribute":
		m.SetIfAbsent("textAlign", "justify")
	case "center":
		m.SetIfAbsent("textAlign", "center")
	case "right", "end":
		m.SetIfAbsent("textAlign", "right")
	case "left", "start":
		m.SetIfAbsent("textAlign", "left")
	}

	if pp.IndentLeft > 0 {
		m.SetIfAbsent("marginLeft", TwipsToPt(pp.IndentLeft))
	}
	if pp.IndentFirstLine > 0 {
		m.SetIfAbsent("textIndent", TwipsToPt(pp.IndentFirstLine))
	}
	if pp.SpacingBefore > 0 {
		m.SetIfAbsent("marginTop", TwipsToPt(pp.SpacingBefore))
	}
	if pp.SpacingAfter > 0 {
		m.SetIfAbsent("marginBottom", TwipsToPt(pp.SpacingAfter))
	}

	if pp.Line > 0 {
		switch pp.LineRule {
		case "exact", "atLeast":
			m.SetIfAbsent("lineHeight", TwipsToPt(pp.Line))
		default:
			// Межстрочный множитель: 240 твипов на одну строку.
			m.SetIfAbsent("lineHeight", formatFloat(float64(pp.Line)/240))
		}
	}

	if c := hexColor(pp.ShadingFill); c != "" {
		m.SetIfAbsent("backgroundColor", c)
	}

	return m
}

// HalfPointsToPt переводит размер в полупунктах в pt-строку.
func HalfPointsToPt(halfPoints string) string {
	if halfPoints == "" {
		return ""
	}
	v, err := strconv.ParseFloat(halfPoints, 64)
	if err != nil || v <= 0 {
		return ""
	}
	return formatFloat(v/2) + "pt"
}

// TwipsToPt переводит твипы в pt-строку.
func TwipsToPt(twips int) string {
	return formatFloat(float64(twips)/20) + "pt"
}

func hexColor(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "auto") {
		return ""
	}
	return "#" + strings.TrimPrefix(raw, "#")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
