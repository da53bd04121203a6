// Пакет wordfont нормализует имена шрифтов из Word-документов в канонические
// CSS-стеки и преобразует размеры шрифтов Word в веб-единицы.
//
// Основные возможности:
//   - Нормализация китайских и латинских имён шрифтов через таблицу алиасов.
//   - Разбор CSS-стеков шрифтов с выбором CJK-совместимой части.
//   - Преобразование устаревших кодов размера (1-7) и pt-значений в px.
//   - Таблица именованных цветов выделения Word (w:highlight).
package wordfont

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// Канонические стеки для основных семейств китайских шрифтов.
const (
	songStack     = `"SimSun", "宋体", serif`
	heiStack      = `"SimHei", "黑体", sans-serif`
	kaiStack      = `"KaiTi", "楷体", serif`
	fangSongStack = `"FangSong", "仿宋", "FangSong_GB2312", "仿宋_GB2312", serif`
	liSuStack     = `"LiSu", "隶书", serif`
	youYuanStack  = `"YouYuan", "幼圆", sans-serif`
	yaHeiStack    = `"Microsoft YaHei", "微软雅黑", sans-serif`
	biaoSongStack = `"FZXiaoBiaoSong-B05S", "方正小标宋简体", "SimSun", serif`
)

// DefaultCJKStack - стек по умолчанию для параграфов без CJK-совместимого
// шрифта. Word обычно сопровождает латинский шрифт неявным китайским
// шрифтом по умолчанию, для официальных документов это 仿宋.
const DefaultCJKStack = fangSongStack

// fontAliases - таблица алиасов имён шрифтов. Ключи в нижнем регистре,
// китайские имена и транслитерации указывают на один и тот же стек,
// поэтому нормализация идемпотентна.
var fontAliases = map[string]string{
	"宋体":                  songStack,
	"simsun":              songStack,
	"songti":              songStack,
	"song":                songStack,
	"新宋体":                 songStack,
	"nsimsun":             songStack,
	"黑体":                  heiStack,
	"simhei":              heiStack,
	"heiti":               heiStack,
	"hei":                 heiStack,
	"楷体":                  kaiStack,
	"楷体_gb2312":           kaiStack,
	"kaiti":               kaiStack,
	"kaiti_gb2312":        kaiStack,
	"kai":                 kaiStack,
	"仿宋":                  fangSongStack,
	"仿宋_gb2312":           fangSongStack,
	"fangsong":            fangSongStack,
	"fangsong_gb2312":     fangSongStack,
	"隶书":                  liSuStack,
	"lisu":                liSuStack,
	"幼圆":                  youYuanStack,
	"youyuan":             youYuanStack,
	"微软雅黑":                yaHeiStack,
	"microsoft yahei":     yaHeiStack,
	"方正小标宋简体":             biaoSongStack,
	"方正小标宋":               biaoSongStack,
	"小标宋":                 biaoSongStack,
	"fzxiaobiaosong":      biaoSongStack,
	"fzxiaobiaosong-b05s": biaoSongStack,
}

// fuzzyAliasOrder - ключи таблицы алиасов в отсортированном порядке.
// Нечёткий поиск обязан обходить алиасы детерминированно: для входа,
// задевающего несколько алиасов, результат один и тот же на каждом вызове.
var fuzzyAliasOrder = func() []string {
	keys := make([]string, 0, len(fontAliases))
	for k := range fontAliases {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}()

// legacySizes - устаревшие HTML-коды размера шрифта Word (1-7) в px.
var legacySizes = map[string]string{
	"1": "10px",
	"2": "13px",
	"3": "16px",
	"4": "18px",
	"5": "24px",
	"6": "32px",
	"7": "48px",
}

// highlightColors - именованные цвета выделения Word (w:highlight) в hex.
var highlightColors = map[string]string{
	"yellow":      "#FFFF00",
	"green":       "#00FF00",
	"cyan":        "#00FFFF",
	"magenta":     "#FF00FF",
	"blue":        "#0000FF",
	"red":         "#FF0000",
	"darkBlue":    "#00008B",
	"darkCyan":    "#008B8B",
	"darkGreen":   "#006400",
	"darkMagenta": "#8B008B",
	"darkRed":     "#8B0000",
	"darkYellow":  "#808000",
	"darkGray":    "#A9A9A9",
	"lightGray":   "#D3D3D3",
	"black":       "#000000",
	"white":       "#FFFFFF",
}

// NormalizeFontName приводит сырое имя шрифта к каноническому CSS-стеку.
// Чистая функция, детерминированная для одинакового входа.
func NormalizeFontName(raw string) string {
	name := strings.TrimSpace(strings.Trim(strings.TrimSpace(raw), `"'`))
	if name == "" {
		return DefaultCJKStack
	}

	// Стек шрифтов через запятую: ищем CJK-совместимую или известную часть.
	if strings.Contains(name, ",") {
		for part := range strings.SplitSeq(name, ",") {
			part = strings.TrimSpace(strings.Trim(strings.TrimSpace(part), `"'`))
			if part == "" {
				continue
			}
			if _, ok := fontAliases[strings.ToLower(part)]; ok {
				return NormalizeFontName(part)
			}
			if ContainsCJK(part) {
				return NormalizeFontName(part)
			}
		}
		// Ни одной CJK-совместимой части: китайский шрифт по умолчанию.
		return DefaultCJKStack
	}

	lower := strings.ToLower(name)

	// Точное совпадение в таблице алиасов.
	if stack, ok := fontAliases[lower]; ok {
		return stack
	}

	// Нечёткое совпадение по подстроке, в фиксированном порядке алиасов.
	for _, alias := range fuzzyAliasOrder {
		if strings.Contains(lower, alias) || strings.Contains(alias, lower) {
			return fontAliases[alias]
		}
	}

	// Неизвестный китайский шрифт: синтезируем стек с запасными вариантами.
	if ContainsCJK(name) {
		return `"` + name + `", "SimSun", "宋体", "Microsoft YaHei", "微软雅黑", serif`
	}

	return `"` + name + `"`
}

// ConvertWordSize преобразует значение размера шрифта Word в px-строку.
// Возвращает пустую строку, если размер распознать не удалось.
func ConvertWordSize(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	if px, ok := legacySizes[value]; ok {
		return px
	}

	// Значение уже с единицей измерения, кроме pt - его пересчитываем.
	if strings.HasSuffix(value, "pt") {
		pt, err := strconv.ParseFloat(strings.TrimSuffix(value, "pt"), 64)
		if err != nil {
			return ""
		}
		return strconv.Itoa(int(math.Round(pt*1.33))) + "px"
	}
	if cssSizeReg.MatchString(value) {
		return value
	}

	return ""
}

// Числовое значение с любой CSS-единицей длины проходит без изменений.
var cssSizeReg = regexp.MustCompile(`^[0-9]+(?:\.[0-9]+)?(?:px|em|rem|ex|ch|vw|vh|mm|cm|in|pc|%)$`)

// HighlightColor возвращает hex-значение именованного цвета выделения Word.
func HighlightColor(name string) (string, bool) {
	c, ok := highlightColors[name]
	return c, ok
}

// ContainsCJK возвращает true, если строка содержит хотя бы один CJK-символ.
func ContainsCJK(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}
