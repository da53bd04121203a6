package blocks

import (
	"log/slog"
	"strings"
	"unicode"

	"github.com/aisa-it/aiplan-docx/docx.go/internal/docx/wordtree"
)

// Заглушка диапазона для комментария, чей текст в документе не нашёлся.
const rangeTextNotFound = "原文未找到"

// Оценки совпадения при привязке комментария к блоку.
const (
	scoreExact      = 100
	scoreNormalized = 60
)

// attachComments извлекает комментарии документа и привязывает каждый к
// лучшему блоку. Каждый комментарий попадает в список документа ровно один
// раз независимо от исхода привязки.
func (c *Converter) attachComments(wd *wordtree.WordDocument, doc *Document) {
	if len(wd.CommentsPart.Comments) == 0 {
		return
	}

	body := wd.DocumentPart.Body
	processed := make(map[string]struct{}, len(wd.CommentsPart.Comments))

	for _, def := range wd.CommentsPart.Comments {
		// Дубликаты стартовых маркеров обрабатываются один раз.
		if _, ok := processed[def.ID]; ok {
			continue
		}
		processed[def.ID] = struct{}{}

		comment := &Comment{
			ID:        def.ID,
			Content:   strings.TrimSpace(def.CommentText()),
			User:      def.Author,
			Timestamp: def.Date,
		}

		rangeText := reconstructRange(body, def.ID)
		comment.Range.Text = rangeText

		doc.Comments = append(doc.Comments, comment)

		c.associate(doc, comment, rangeText)
	}
}

// reconstructRange восстанавливает буквальный текст диапазона комментария:
// обход в глубину с флагом сбора, который включает commentRangeStart и
// выключает парный commentRangeEnd.
func reconstructRange(body *wordtree.WordNode, id string) string {
	var sb strings.Builder
	collecting := false

	var visit func(n *wordtree.WordNode)
	visit = func(n *wordtree.WordNode) {
		if n == nil {
			return
		}

		switch n.Type {
		case wordtree.TypeCommentRangeStart:
			if n.Attrs["id"] == id {
				collecting = true
			}
		case wordtree.TypeCommentRangeEnd:
			if n.Attrs["id"] == id {
				collecting = false
			}
		case wordtree.TypeText:
			if collecting {
				sb.WriteString(n.Text)
			}
		}

		for _, child := range n.Children {
			visit(child)
		}
		for _, run := range n.Runs {
			visit(run)
		}
	}
	visit(body)

	return sb.String()
}

// associate находит блок с лучшей оценкой совпадения по всему документу
// (не по соседям - на повторяющемся тексте возможна ошибочная привязка,
// поведение сохранено сознательно) и добавляет комментарий в него.
func (c *Converter) associate(doc *Document, comment *Comment, rangeText string) {
	rangeText = strings.TrimSpace(rangeText)
	if rangeText == "" {
		comment.Range.Text = rangeTextNotFound
		return
	}

	bestScore := 0
	bestIndex := -1
	for i, b := range doc.Blocks {
		score := matchScore(b.PlainText(), rangeText)
		// Равные оценки решает порядок появления блока.
		if score > bestScore {
			bestScore = score
			bestIndex = i
		}
	}

	if bestIndex < 0 {
		slog.Debug("Comment has no matching block", "comment", comment.ID)
		comment.Range.Text = rangeTextNotFound
		return
	}

	block := doc.Blocks[bestIndex]
	blockText := block.PlainText()

	start := runeIndex(blockText, rangeText)
	if start < 0 {
		start = 0
	}
	comment.Range.StartOffset = start
	comment.Range.EndOffset = start + len([]rune(rangeText))

	block.Comments = append(block.Comments, comment)
}

// matchScore - каскад оценки совпадения текста блока и диапазона:
// точное вхождение в любую сторону выше нормализованного.
func matchScore(blockText, rangeText string) int {
	if blockText == "" {
		return 0
	}
	if strings.Contains(blockText, rangeText) || strings.Contains(rangeText, blockText) {
		return scoreExact
	}

	nb, nr := normalizeMatch(blockText), normalizeMatch(rangeText)
	if nb == "" || nr == "" {
		return 0
	}
	if strings.Contains(nb, nr) || strings.Contains(nr, nb) {
		return scoreNormalized
	}
	return 0
}

// normalizeMatch убирает пробелы и пунктуацию и приводит регистр.
func normalizeMatch(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r) {
			continue
		}
		sb.WriteRune(unicode.ToLower(r))
	}
	return sb.String()
}

// runeIndex - индекс первого вхождения needle в haystack в рунах.
func runeIndex(haystack, needle string) int {
	byteIndex := strings.Index(haystack, needle)
	if byteIndex < 0 {
		return -1
	}
	return len([]rune(haystack[:byteIndex]))
}
