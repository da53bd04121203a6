// Пакет tiptap описывает вложенную модель документа: узлы с типизированными
// inline-марками. Модель богаче плоской блочной и используется на пути
// Word-XML ⇄ редактор.
package tiptap

import (
	"encoding/json"
	"fmt"
	"io"
)

// Document представляет корневой документ вложенной модели.
type Document struct {
	Type    string `json:"type"`
	Content []Node `json:"content,omitempty"`
}

// Node представляет узел дерева документа.
// Инвариант: узел с непустым Text не имеет Content, марки применимы только
// к текстовым узлам.
type Node struct {
	Type    string                 `json:"type"`
	Attrs   map[string]interface{} `json:"attrs,omitempty"`
	Content []Node                 `json:"content,omitempty"`
	Marks   []Mark                 `json:"marks,omitempty"`
	Text    string                 `json:"text,omitempty"`
}

// Mark представляет форматирование текста (bold, italic, textStyle и т.д.).
type Mark struct {
	Type  string                 `json:"type"`
	Attrs map[string]interface{} `json:"attrs,omitempty"`
}

// NewDocument создаёт пустой документ.
func NewDocument(content ...Node) *Document {
	return &Document{Type: "doc", Content: content}
}

// NewTextNode создаёт текстовый узел с марками.
func NewTextNode(text string, marks ...Mark) Node {
	return Node{Type: "text", Text: text, Marks: marks}
}

// TextStyleMark создаёт марку textStyle с одним атрибутом. Несколько марок
// textStyle на одном узле - ожидаемое состояние, они не сливаются.
func TextStyleMark(key string, value interface{}) Mark {
	return Mark{Type: "textStyle", Attrs: map[string]interface{}{key: value}}
}

// PlainText собирает текст узла и его потомков.
func (n *Node) PlainText() string {
	if n.Text != "" {
		return n.Text
	}
	var text string
	for i := range n.Content {
		text += n.Content[i].PlainText()
	}
	return text
}

// HasMark сообщает, несёт ли узел марку указанного типа.
func (n *Node) HasMark(markType string) bool {
	for _, m := range n.Marks {
		if m.Type == markType {
			return true
		}
	}
	return false
}

// TextStyleAttr возвращает значение атрибута из первой марки textStyle,
// где он задан.
func (n *Node) TextStyleAttr(key string) (string, bool) {
	for _, m := range n.Marks {
		if m.Type != "textStyle" {
			continue
		}
		if v, ok := m.Attrs[key]; ok {
			if s, ok := v.(string); ok {
				return s, true
			}
			return fmt.Sprint(v), true
		}
	}
	return "", false
}

// Validate проверяет инварианты модели на всём дереве.
func (d *Document) Validate() error {
	for i := range d.Content {
		if err := validateNode(&d.Content[i]); err != nil {
			return err
		}
	}
	return nil
}

func validateNode(n *Node) error {
	if n.Text != "" && len(n.Content) > 0 {
		return fmt.Errorf("node %q carries both text and content", n.Type)
	}
	if len(n.Marks) > 0 && n.Type != "text" {
		return fmt.Errorf("marks on non-text node %q", n.Type)
	}
	for i := range n.Content {
		if err := validateNode(&n.Content[i]); err != nil {
			return err
		}
	}
	return nil
}

// ParseJSON читает JSON-представление документа.
func ParseJSON(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	if doc.Type == "" {
		doc.Type = "doc"
	}
	return &doc, nil
}

// WriteJSON сериализует документ в JSON.
func (d *Document) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(d)
}
