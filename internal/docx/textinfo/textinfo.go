// Пакет textinfo содержит эвристики классификации текста по структурным
// признакам: заголовки, элементы списков, цитаты, язык параграфа и уровень
// отступа. Все функции чистые и не имеют состояния.
package textinfo

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

var (
	// Маркеры заголовков по убыванию уровня.
	chapterReg     = regexp.MustCompile(`^第[一二三四五六七八九十百千0-9０-９]+[章编篇部卷]`)
	sectionReg     = regexp.MustCompile(`^第[一二三四五六七八九十百千0-9０-９]+[节條条款]`)
	cjkNumberedReg = regexp.MustCompile(`^[一二三四五六七八九十]+[、.．]`)
	arabicNumReg   = regexp.MustCompile(`^[0-9０-９]+[.、．]\s*`)
	parenNumReg    = regexp.MustCompile(`^[（(][一二三四五六七八九十0-9０-９]+[）)]`)
	letteredReg    = regexp.MustCompile(`^[A-Za-z][.、]\s`)

	headingLiterals = []string{
		"abstract", "references", "acknowledgements", "acknowledgments",
		"introduction", "conclusion",
		"摘要", "参考文献", "致谢", "引言", "结论", "目录", "附录",
	}

	bulletReg     = regexp.MustCompile(`^\s*[•·◦▪‣*\-–—]\s+`)
	listNumberReg = regexp.MustCompile(`^\s*([0-9０-９]+[.、]|[A-Za-z][.)]\s)`)

	quotePairs = [][2]string{
		{`"`, `"`},
		{"'", "'"},
		{"“", "”"},
		{"‘", "’"},
		{"「", "」"},
		{"『", "』"},
		{"《", "》"},
	}
	quoteLiterals = []string{"引自", "摘自", "转引自", "出自"}
)

// IsLikelyTitle решает, похож ли текст на заголовок.
// isolated - структурная изоляция элемента (одиночный параграф без соседей
// того же уровня), признак оценивается вызывающей стороной.
func IsLikelyTitle(text string, isolated bool) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	if matchesHeadingMarker(text) {
		return true
	}

	score := 0
	if len([]rune(text)) < 100 {
		score++
	}
	if !strings.HasSuffix(text, "。") && !strings.HasSuffix(text, ".") {
		score++
	}
	if isolated {
		score++
	}
	return score >= 2
}

func matchesHeadingMarker(text string) bool {
	if chapterReg.MatchString(text) || sectionReg.MatchString(text) ||
		cjkNumberedReg.MatchString(text) || arabicNumReg.MatchString(text) ||
		parenNumReg.MatchString(text) || letteredReg.MatchString(text) {
		return true
	}
	lower := strings.ToLower(text)
	for _, lit := range headingLiterals {
		if lower == lit {
			return true
		}
	}
	return false
}

// IsLikelyListItem решает, похож ли текст на элемент списка.
func IsLikelyListItem(text string) bool {
	return bulletReg.MatchString(text) || listNumberReg.MatchString(text)
}

// IsLikelyQuote решает, похож ли текст на цитату: полностью обёрнут в
// кавычки или содержит маркер источника цитирования.
func IsLikelyQuote(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	for _, pair := range quotePairs {
		if strings.HasPrefix(text, pair[0]) && strings.HasSuffix(text, pair[1]) &&
			len(text) > len(pair[0])+len(pair[1]) {
			return true
		}
	}
	for _, lit := range quoteLiterals {
		if strings.Contains(text, lit) {
			return true
		}
	}
	return false
}

// IsChineseParagraph - доля CJK-символов превышает 30% длины текста.
func IsChineseParagraph(text string) bool {
	runes := []rune(text)
	if len(runes) == 0 {
		return false
	}
	var cjk int
	for _, r := range runes {
		if unicode.Is(unicode.Han, r) {
			cjk++
		}
	}
	return float64(cjk)/float64(len(runes)) > 0.3
}

// IsEnglishParagraph - доля латинских букв превышает 50% длины текста.
// Вызывающая сторона проверяет английский только если китайская проверка
// не сработала, порядок важен для смешанных текстов.
func IsEnglishParagraph(text string) bool {
	runes := []rune(text)
	if len(runes) == 0 {
		return false
	}
	var latin int
	for _, r := range runes {
		if r < 128 && unicode.IsLetter(r) {
			latin++
		}
	}
	return float64(latin)/float64(len(runes)) > 0.5
}

// InferTitleLevel выводит уровень заголовка из маркеров текста.
// Каскад правил, первое совпадение побеждает; без маркеров уровень
// подбирается по длине. Вызывающая сторона ограничивает результат [1,6].
func InferTitleLevel(text string) int {
	text = strings.TrimSpace(text)
	switch {
	case chapterReg.MatchString(text):
		return 1
	case sectionReg.MatchString(text):
		return 2
	case cjkNumberedReg.MatchString(text) || arabicNumReg.MatchString(text):
		return 3
	case parenNumReg.MatchString(text):
		return 4
	case letteredReg.MatchString(text):
		return 5
	}

	switch n := len([]rune(text)); {
	case n <= 10:
		return 2
	case n <= 20:
		return 3
	case n <= 30:
		return 4
	default:
		return 3
	}
}

// DetectListIndentLevel - уровень вложенности по ведущим пробелам,
// 4 колонки на уровень. Полноширинный пробел считается за две колонки.
func DetectListIndentLevel(text string) int {
	var cols int
	for _, r := range text {
		switch {
		case r == ' ' || r == '\t':
			cols++
		case unicode.IsSpace(r):
			if k := width.LookupRune(r).Kind(); k == width.EastAsianFullwidth || k == width.EastAsianWide {
				cols += 2
			} else {
				cols++
			}
		default:
			return cols / 4
		}
	}
	return cols / 4
}

// LeadingIndentColumns - длина ведущего пробельного пролога в колонках.
// Используется извлечением стилей как один из сигналов отступа.
func LeadingIndentColumns(text string) int {
	var cols int
	for _, r := range text {
		if !unicode.IsSpace(r) {
			break
		}
		if k := width.LookupRune(r).Kind(); k == width.EastAsianFullwidth || k == width.EastAsianWide {
			cols += 2
		} else {
			cols++
		}
	}
	return cols
}
