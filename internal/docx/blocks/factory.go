package blocks

import (
	"strings"
	"time"

	"github.com/aisa-it/aiplan-docx/docx.go/internal/docx/styles"
	"github.com/gofrs/uuid"
)

func newBlockID() string {
	return uuid.Must(uuid.NewV4()).String()
}

// NewDocument создаёт пустой документ текущей версии модели.
func NewDocument() *Document {
	return &Document{
		Time:    time.Now().UnixMilli(),
		Version: ModelVersion,
		Blocks:  []*Block{},
	}
}

func NewEmptyParagraph() *Block {
	return &Block{ID: newBlockID(), Type: BlockParagraph}
}

func NewParagraph(text string, m styles.StyleMap) *Block {
	return &Block{
		ID:   newBlockID(),
		Type: BlockParagraph,
		Data: BlockData{Text: text, Styles: m},
	}
}

func NewHeader(text string, level int, m styles.StyleMap) *Block {
	return &Block{
		ID:   newBlockID(),
		Type: BlockHeader,
		Data: BlockData{Text: text, Level: level, Styles: m},
	}
}

func NewList(style string, items []string) *Block {
	return &Block{
		ID:   newBlockID(),
		Type: BlockList,
		Data: BlockData{Style: style, Items: items},
	}
}

func NewQuote(text string, m styles.StyleMap) *Block {
	return &Block{
		ID:   newBlockID(),
		Type: BlockQuote,
		Data: BlockData{Text: text, Styles: m},
	}
}

func NewCode(code string) *Block {
	return &Block{
		ID:   newBlockID(),
		Type: BlockCode,
		Data: BlockData{Code: code},
	}
}

func NewTable(content [][]string, withHeadings bool) *Block {
	return &Block{
		ID:   newBlockID(),
		Type: BlockTable,
		Data: BlockData{Content: content, WithHeadings: withHeadings},
	}
}

func NewImage(url, caption string) *Block {
	return &Block{
		ID:   newBlockID(),
		Type: BlockImage,
		Data: BlockData{File: &ImageFile{URL: url}, Caption: caption},
	}
}

// SplitPlainText разбивает сырой текст на блоки тем же запасным путём,
// что и конвертация дерева Word: пустые строки, затем одиночные переносы.
func SplitPlainText(raw string) []*Block {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	return NewConverter().fallbackSplit(raw)
}
