package styles

import "strings"

// Element - единица текста, с которой работает экстрактор стилей.
// Абстрагирует HTML-элемент и параграф Word до общего набора сигналов.
type Element struct {
	// Имя тега в нижнем регистре: p, h1..h6, li, td, blockquote, pre, div.
	Tag string
	// Список CSS-классов элемента.
	Classes []string
	// Сырое содержимое атрибута style.
	InlineStyle string
	// Эффективные (вычисленные) стили, если источник их предоставляет.
	Computed map[string]string

	// Извлечённый текст элемента.
	Text string
	// Тег родительского контейнера.
	ParentTag string
	// Глубина вложенности среди предков list/quote/div.
	NestingDepth int
	// Структурная изоляция: одиночный элемент без соседей того же уровня.
	Isolated bool

	// Агрегированные признаки дочерней разметки.
	Child ChildAggregate
}

// ChildAggregate - покрытие текста элемента inline-разметкой потомков.
type ChildAggregate struct {
	TotalTextLen int
	BoldLen      int
	ItalicLen    int
	UnderlineLen int
	FontFamily   string
	FontSize     string
}

// HasClass проверяет наличие класса у элемента.
func (el Element) HasClass(name string) bool {
	for _, c := range el.Classes {
		if strings.EqualFold(c, name) {
			return true
		}
	}
	return false
}

// IsHeadingTag - h1..h6.
func (el Element) IsHeadingTag() bool {
	return len(el.Tag) == 2 && el.Tag[0] == 'h' && el.Tag[1] >= '1' && el.Tag[1] <= '6'
}

// HeadingLevel возвращает уровень заголовка по тегу, 0 если тег не заголовок.
func (el Element) HeadingLevel() int {
	if !el.IsHeadingTag() {
		return 0
	}
	return int(el.Tag[1] - '0')
}

// parseDeclarations разбирает строку inline-стилей в упорядоченный список
// пар ключ-значение. Ключи остаются в kebab-case.
func parseDeclarations(style string) [][2]string {
	var res [][2]string
	if style == "" {
		return res
	}
	for part := range strings.SplitSeq(style, ";") {
		kv := strings.SplitN(part, ":", 2)
		if len(kv) != 2 {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(kv[0]))
		val := strings.TrimSpace(kv[1])
		if key == "" || val == "" || val == "inherit" {
			continue
		}
		res = append(res, [2]string{key, val})
	}
	return res
}

// kebabToCamel переводит css-имя свойства в camelCase-ключ StyleMap.
func kebabToCamel(key string) string {
	parts := strings.Split(key, "-")
	if len(parts) == 1 {
		return key
	}
	var sb strings.Builder
	sb.WriteString(parts[0])
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		sb.WriteString(strings.ToUpper(p[:1]))
		sb.WriteString(p[1:])
	}
	return sb.String()
}
