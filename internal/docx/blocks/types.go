// Пакет blocks реализует плоскую блочную модель документа и обходчик
// объектного дерева Word, собирающий из него упорядоченный список блоков.
// Сюда же входит извлечение комментариев и их привязка к блокам.
package blocks

import (
	"github.com/aisa-it/aiplan-docx/docx.go/internal/docx/styles"
)

// BlockType - тип блока документа.
type BlockType string

const (
	BlockHeader    BlockType = "header"
	BlockParagraph BlockType = "paragraph"
	BlockList      BlockType = "list"
	BlockQuote     BlockType = "quote"
	BlockCode      BlockType = "code"
	BlockTable     BlockType = "table"
	BlockImage     BlockType = "image"
)

// ListOrdered / ListUnordered - стили списка.
const (
	ListOrdered   = "ordered"
	ListUnordered = "unordered"
)

// BlockData - полезная нагрузка блока. Состав полей зависит от типа:
// header несёт text и level, list - style и items, table - content.
type BlockData struct {
	Text  string   `json:"text,omitempty"`
	Level int      `json:"level,omitempty"`
	Style string   `json:"style,omitempty"`
	Items []string `json:"items,omitempty"`

	Content      [][]string `json:"content,omitempty"`
	WithHeadings bool       `json:"withHeadings,omitempty"`

	Code string `json:"code,omitempty"`

	File           *ImageFile `json:"file,omitempty"`
	Caption        string     `json:"caption,omitempty"`
	WithBorder     bool       `json:"withBorder,omitempty"`
	WithBackground bool       `json:"withBackground,omitempty"`
	Stretched      bool       `json:"stretched,omitempty"`

	Styles styles.StyleMap `json:"styles,omitempty"`
}

// ImageFile - ссылка на файл изображения.
type ImageFile struct {
	URL string `json:"url"`
}

// Block - единица плоской модели. Блоки принадлежат документу, создаются
// обходчиком и дополняются на месте при слиянии inline-прогонов.
type Block struct {
	ID       string     `json:"id"`
	Type     BlockType  `json:"type"`
	Data     BlockData  `json:"data"`
	Comments []*Comment `json:"comments,omitempty"`
}

// PlainText - текстовое содержимое блока для привязки комментариев.
func (b *Block) PlainText() string {
	switch b.Type {
	case BlockList:
		var text string
		for i, item := range b.Data.Items {
			if i > 0 {
				text += "\n"
			}
			text += item
		}
		return text
	case BlockTable:
		var text string
		for _, row := range b.Data.Content {
			for _, cell := range row {
				if text != "" {
					text += "\n"
				}
				text += cell
			}
		}
		return text
	case BlockCode:
		return b.Data.Code
	default:
		return b.Data.Text
	}
}

// CommentRange - диапазон текста, к которому относится комментарий.
type CommentRange struct {
	StartOffset int    `json:"startOffset"`
	EndOffset   int    `json:"endOffset"`
	Text        string `json:"text"`
}

// Comment - комментарий документа. После привязки комментарий присутствует
// и в списке документа, и в списке своего блока.
type Comment struct {
	ID        string       `json:"id"`
	Content   string       `json:"content"`
	User      string       `json:"user"`
	Timestamp string       `json:"timestamp"`
	Range     CommentRange `json:"range"`
	Replies   []*Comment   `json:"replies,omitempty"`
}

// Document - агрегат плоской модели. Порядок Blocks - порядок чтения.
type Document struct {
	Time     int64      `json:"time"`
	Blocks   []*Block   `json:"blocks"`
	Version  string     `json:"version"`
	Comments []*Comment `json:"comments,omitempty"`
}

// Version модели блоков, отдаётся редактору.
const ModelVersion = "2.28.2"
