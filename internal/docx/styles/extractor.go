// Пакет styles восстанавливает семантическое форматирование текста из
// низкоуровневых сигналов: тегов, классов, inline-стилей и свойств Word.
//
// Извлечение построено как упорядоченный список проходов, каждый проход
// возвращает частичную карту стилей, проходы сворачиваются слева направо
// с семантикой "не перезаписывать существующий ключ". Порядок проходов -
// явный и тестируемый список, а не набор разрозненных условий.
package styles

import (
	"strconv"
	"strings"

	"github.com/aisa-it/aiplan-docx/docx.go/internal/docx/textinfo"
	"github.com/aisa-it/aiplan-docx/docx.go/internal/docx/wordfont"
)

// Extractor извлекает карту стилей из элемента. Таблицы пресетов -
// неизменяемая конфигурация, задаваемая при создании.
type Extractor struct {
	tagPresets   map[string]StyleMap
	classPresets map[string]StyleMap

	// Шрифты по умолчанию для структурного вывода (проход 7).
	DefaultCJKFont   string
	DefaultLatinFont string
}

type pass func(el Element, m StyleMap)

// NewExtractor создаёт экстрактор со стандартными пресетами.
func NewExtractor() *Extractor {
	return &Extractor{
		tagPresets: map[string]StyleMap{
			"h1": {"fontSize": "28px", "fontWeight": "bold", "margin": "24px 0 12px"},
			"h2": {"fontSize": "24px", "fontWeight": "bold", "margin": "20px 0 10px"},
			"h3": {"fontSize": "20px", "fontWeight": "bold", "margin": "16px 0 8px"},
			"h4": {"fontSize": "18px", "fontWeight": "bold", "margin": "14px 0 7px"},
			"h5": {"fontSize": "16px", "fontWeight": "bold", "margin": "12px 0 6px"},
			"h6": {"fontSize": "14px", "fontWeight": "bold", "margin": "12px 0 6px"},
			"p":  {"lineHeight": "1.75", "margin": "8px 0"},
			"blockquote": {
				"borderLeft":  "4px solid #d0d7de",
				"paddingLeft": "12px",
				"color":       "#57606a",
			},
			"pre": {"fontFamily": `"Courier New", monospace`, "fontSize": "13px"},
		},
		classPresets: map[string]StyleMap{
			"title":    {"fontSize": "26px", "fontWeight": "bold", "margin": "24px 0 16px"},
			"subtitle": {"fontSize": "18px", "color": "#666666", "margin": "12px 0"},
			"small":    {"fontSize": "12px"},
			"large":    {"fontSize": "18px"},
			"note":     {"fontSize": "13px", "color": "#888888"},
		},
		DefaultCJKFont:   wordfont.DefaultCJKStack,
		DefaultLatinFont: `"Times New Roman", serif`,
	}
}

// Extract прогоняет элемент через все проходы в фиксированном порядке.
func (e *Extractor) Extract(el Element) StyleMap {
	m := make(StyleMap)
	for _, p := range []pass{
		e.tagDefaults,       // 1
		e.classOverrides,    // 2
		e.inlineStyles,      // 3
		e.computedFallback,  // 4
		e.contextual,        // 5
		e.resolveAlignment,  // 6
		e.wordStructural,    // 7
		e.childAggregation,  // 8
	} {
		p(el, m)
	}
	return m
}

// Проход 1: пресеты по тегу.
func (e *Extractor) tagDefaults(el Element, m StyleMap) {
	if preset, ok := e.tagPresets[el.Tag]; ok {
		m.MergeAbsent(preset)
	}
}

// Проход 2: пресеты по распознанным классам.
func (e *Extractor) classOverrides(el Element, m StyleMap) {
	for _, class := range el.Classes {
		if preset, ok := e.classPresets[strings.ToLower(class)]; ok {
			m.MergeAbsent(preset)
		}
	}
}

// Проход 3: явные inline-объявления. Выравнивание откладывается до
// прохода 6, оно разрешается один раз и централизованно.
func (e *Extractor) inlineStyles(el Element, m StyleMap) {
	for _, decl := range parseDeclarations(el.InlineStyle) {
		key, val := decl[0], decl[1]
		switch key {
		case "text-align", "text-align-last":
			continue
		case "font-family":
			m.SetIfAbsent("fontFamily", wordfont.NormalizeFontName(val))
		case "font-size":
			if px := wordfont.ConvertWordSize(val); px != "" {
				m.SetIfAbsent("fontSize", px)
			} else {
				m.SetIfAbsent("fontSize", val)
			}
		default:
			m.SetIfAbsent(kebabToCamel(key), val)
		}
	}
}

// Проход 4: вычисленные стили заполняют только отсутствующие атрибуты.
func (e *Extractor) computedFallback(el Element, m StyleMap) {
	for key, val := range el.Computed {
		key = strings.ToLower(key)
		if key == "text-align" || key == "text-align-last" || val == "" || val == "inherit" {
			continue
		}
		if key == "font-family" {
			m.SetIfAbsent("fontFamily", wordfont.NormalizeFontName(val))
			continue
		}
		m.SetIfAbsent(kebabToCamel(key), val)
	}
}

// Проход 5: контекст родителя и сигналы отступа.
// Сигналы отступа проверяются в фиксированном порядке, побеждает первый
// найденный, каждый переводится в 20px на уровень.
func (e *Extractor) contextual(el Element, m StyleMap) {
	switch el.ParentTag {
	case "td", "th":
		m.SetIfAbsent("padding", "4px 8px")
		m.SetIfAbsent("border", "1px solid #dddddd")
	case "li":
		m.SetIfAbsent("marginBottom", "4px")
	}

	level := e.indentLevel(el)
	if level > 0 {
		m.SetIfAbsent("marginLeft", strconv.Itoa(level*20)+"px")
	}
}

func (e *Extractor) indentLevel(el Element) int {
	// Сигнал 1: явный отступ в px из inline-объявлений.
	for _, decl := range parseDeclarations(el.InlineStyle) {
		switch decl[0] {
		case "padding-left", "margin-left", "text-indent":
			if px, err := strconv.ParseFloat(strings.TrimSuffix(decl[1], "px"), 64); err == nil && px > 0 {
				return int(px) / 20
			}
		}
	}

	// Сигнал 2: глубина вложенности среди list/quote/div предков.
	if el.NestingDepth > 0 {
		return el.NestingDepth
	}

	// Сигнал 3: ведущие пробелы в тексте.
	return textinfo.LeadingIndentColumns(el.Text) / 4
}

// Проход 6: централизованное разрешение выравнивания.
// Строгий порядок с остановкой на первом сработавшем источнике.
func (e *Extractor) resolveAlignment(el Element, m StyleMap) {
	// (a) уже установленное явное выравнивание не трогаем.
	if _, ok := m["textAlign"]; ok {
		return
	}

	// (b) inline-объявление.
	for _, decl := range parseDeclarations(el.InlineStyle) {
		switch decl[0] {
		case "text-align":
			m["textAlign"] = decl[1]
		case "text-align-last":
			m.SetIfAbsent("textAlignLast", decl[1])
		}
	}
	if _, ok := m["textAlign"]; ok {
		return
	}

	// (c) распознанный класс выравнивания.
	for _, class := range el.Classes {
		switch strings.ToLower(class) {
		case "text-left", "left", "align-left":
			m["textAlign"] = "left"
		case "text-center", "center", "align-center":
			m["textAlign"] = "center"
		case "text-right", "right", "align-right":
			m["textAlign"] = "right"
		case "text-justify", "justify":
			m["textAlign"] = "justify"
		}
		if _, ok := m["textAlign"]; ok {
			return
		}
	}

	// (d) эвристика по умолчанию.
	text := strings.TrimSpace(el.Text)
	switch {
	case (el.IsHeadingTag() || textinfo.IsLikelyTitle(text, el.Isolated)) && len([]rune(text)) <= 30:
		m["textAlign"] = "center"
	case textinfo.IsChineseParagraph(text):
		m["textAlign"] = "justify"
		m.SetIfAbsent("textAlignLast", "justify")
	case textinfo.IsEnglishParagraph(text):
		m["textAlign"] = "left"
	case el.Tag == "li" || el.Tag == "ul" || el.Tag == "ol":
		m["textAlign"] = "left"
	default:
		m["textAlign"] = "left"
	}
}

// Проход 7: структурный вывод в духе Word и распознавание Mso-классов.
func (e *Extractor) wordStructural(el Element, m StyleMap) {
	if el.HasClass("MsoTitle") {
		m.SetIfAbsent("fontSize", "26px")
		m.SetIfAbsent("fontWeight", "bold")
	}
	if el.HasClass("MsoSubtitle") {
		m.SetIfAbsent("fontSize", "18px")
		m.SetIfAbsent("color", "#666666")
	}

	text := strings.TrimSpace(el.Text)
	switch {
	case el.IsHeadingTag() || textinfo.IsLikelyTitle(text, el.Isolated):
		m.SetIfAbsent("fontWeight", "bold")
		m.SetIfAbsent("fontSize", "20px")
	case textinfo.IsLikelyQuote(text):
		m.SetIfAbsent("fontStyle", "italic")
		m.SetIfAbsent("color", "#57606a")
	case textinfo.IsLikelyListItem(text):
		m.SetIfAbsent("marginBottom", "4px")
	}

	// Выбор шрифта по умолчанию по письменности, если явного не нашлось.
	if textinfo.IsChineseParagraph(text) {
		m.SetIfAbsent("fontFamily", e.DefaultCJKFont)
	} else if textinfo.IsEnglishParagraph(text) {
		m.SetIfAbsent("fontFamily", e.DefaultLatinFont)
	}
}

// Проход 8: агрегация дочерней разметки. Если не меньше 70% текста
// обёрнуто в bold/italic/underline, признак поднимается на сам элемент.
func (e *Extractor) childAggregation(el Element, m StyleMap) {
	total := el.Child.TotalTextLen
	if total > 0 {
		if float64(el.Child.BoldLen)/float64(total) >= 0.7 {
			m.SetIfAbsent("fontWeight", "bold")
		}
		if float64(el.Child.ItalicLen)/float64(total) >= 0.7 {
			m.SetIfAbsent("fontStyle", "italic")
		}
		if float64(el.Child.UnderlineLen)/float64(total) >= 0.7 {
			m.SetIfAbsent("textDecoration", "underline")
		}
	}

	if el.Child.FontFamily != "" {
		m.SetIfAbsent("fontFamily", wordfont.NormalizeFontName(el.Child.FontFamily))
	}
	if el.Child.FontSize != "" {
		m.SetIfAbsent("fontSize", el.Child.FontSize)
	}
}
