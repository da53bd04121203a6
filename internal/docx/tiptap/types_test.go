package tiptap

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		doc     *Document
		wantErr bool
	}{
		{
			name: "valid text with marks",
			doc: NewDocument(Node{Type: "paragraph", Content: []Node{
				NewTextNode("текст", Mark{Type: "bold"}),
			}}),
		},
		{
			name: "text node with content",
			doc: NewDocument(Node{Type: "paragraph", Content: []Node{
				{Type: "text", Text: "a", Content: []Node{{Type: "text", Text: "b"}}},
			}}),
			wantErr: true,
		},
		{
			name: "marks on non-text node",
			doc: NewDocument(Node{
				Type:  "paragraph",
				Marks: []Mark{{Type: "bold"}},
			}),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.doc.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPlainText(t *testing.T) {
	n := Node{Type: "listItem", Content: []Node{
		{Type: "paragraph", Content: []Node{
			NewTextNode("первая "),
			NewTextNode("вторая"),
		}},
	}}
	assert.Equal(t, "первая вторая", n.PlainText())
}

func TestTextStyleAttr(t *testing.T) {
	n := NewTextNode("x",
		TextStyleMark("color", "#FF0000"),
		TextStyleMark("fontSize", "12pt"),
	)

	color, ok := n.TextStyleAttr("color")
	require.True(t, ok)
	assert.Equal(t, "#FF0000", color)

	size, ok := n.TextStyleAttr("fontSize")
	require.True(t, ok)
	assert.Equal(t, "12pt", size)

	_, ok = n.TextStyleAttr("fontFamily")
	assert.False(t, ok)
}

func TestJSONRoundTrip(t *testing.T) {
	src := NewDocument(
		Node{
			Type:  "heading",
			Attrs: map[string]interface{}{"level": float64(2)},
			Content: []Node{
				NewTextNode("Раздел", Mark{Type: "bold"}),
			},
		},
	)

	var buf bytes.Buffer
	require.NoError(t, src.WriteJSON(&buf))

	parsed, err := ParseJSON(&buf)
	require.NoError(t, err)
	assert.Equal(t, src, parsed)
}

func TestParseJSONDefaultsType(t *testing.T) {
	parsed, err := ParseJSON(strings.NewReader(`{"content":[{"type":"paragraph"}]}`))
	require.NoError(t, err)
	assert.Equal(t, "doc", parsed.Type)
}
