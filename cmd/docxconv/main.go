// Конвертер документов Word для редактора.
// Принимает docx, HTML или Word-XML и выводит документ в одном из форматов:
// JSON блочной модели, HTML, Word-XML или Markdown.
//
// Основные возможности:
//   - Разбор docx-контейнера внешним парсером и обход объектного дерева.
//   - Эвристики заголовков, списков, цитат и выравнивания для CJK-текста.
//   - Извлечение комментариев и их привязка к блокам.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aisa-it/aiplan-docx/docx.go/internal/docx/blocks"
	"github.com/aisa-it/aiplan-docx/docx.go/internal/docx/config"
	"github.com/aisa-it/aiplan-docx/docx.go/internal/docx/docxfile"
	"github.com/aisa-it/aiplan-docx/docx.go/internal/docx/htmlconv"
	"github.com/aisa-it/aiplan-docx/docx.go/internal/docx/mdexport"
	stack_error "github.com/aisa-it/aiplan-docx/docx.go/internal/docx/stack-error"
	"github.com/aisa-it/aiplan-docx/docx.go/internal/docx/tiptap"
	"github.com/aisa-it/aiplan-docx/docx.go/internal/docx/wordxml"
)

func main() {
	in := flag.String("in", "", "Input file: .docx, .html or .xml")
	format := flag.String("format", "blocks", "Output format: blocks, html, xml, md")
	out := flag.String("out", "", "Output file, stdout if empty")
	trace := flag.Bool("trace", false, "Verbose logs")
	minify := flag.Bool("minify", false, "Minify HTML output")
	flag.Parse()

	cfg := config.ReadConfig()
	if *trace || cfg.Trace {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	} else {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{})))
	}

	if *in == "" {
		fmt.Fprintln(os.Stderr, "missing -in")
		flag.Usage()
		os.Exit(2)
	}

	doc, err := readDocument(*in, cfg)
	if err != nil {
		stack_error.LogError(stack_error.TrackErrorStack(err).AddContext("file", *in))
		os.Exit(1)
	}

	w := io.Writer(os.Stdout)
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			slog.Error("Create output file", "err", err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}

	if err := writeDocument(w, doc, *format, cfg.MinifyHTML || *minify); err != nil {
		stack_error.LogError(stack_error.TrackErrorStack(err).AddContext("format", *format))
		os.Exit(1)
	}
}

// readDocument выбирает входной парсер по расширению файла.
func readDocument(path string, cfg config.Config) (*blocks.Document, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".docx":
		tree, err := docxfile.Open(path)
		if err != nil {
			return nil, stack_error.TrackErrorStack(err).AddErr(fmt.Errorf("read %s", path))
		}
		conv := blocks.NewConverter()
		conv.SetDefaultFonts(cfg.DefaultCJKFont, cfg.DefaultLatinFont)
		return conv.Convert(tree), nil

	case ".html", ".htm":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return htmlconv.NewParser().ParseDocument(f)

	case ".xml":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		nested, err := wordxml.Parse(f)
		if err != nil {
			return nil, stack_error.TrackErrorStack(err).AddErr(fmt.Errorf("read %s", path))
		}
		return blocksFromNested(nested), nil

	default:
		return nil, fmt.Errorf("unsupported input extension: %s", path)
	}
}

func writeDocument(w io.Writer, doc *blocks.Document, format string, minify bool) error {
	switch format {
	case "blocks":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)

	case "html":
		out, err := (&htmlconv.Renderer{Minify: minify}).Render(doc)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err

	case "xml":
		out, err := wordxml.Export(nestedFromBlocks(doc))
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err

	case "md":
		return mdexport.Export(w, doc)

	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

// blocksFromNested сплющивает вложенную модель в блочную.
func blocksFromNested(nested *tiptap.Document) *blocks.Document {
	doc := blocks.NewDocument()
	for i := range nested.Content {
		n := &nested.Content[i]
		text := strings.TrimSpace(n.PlainText())
		if text == "" {
			continue
		}
		switch n.Type {
		case "heading":
			level := 1
			if v, ok := n.Attrs["level"].(int); ok {
				level = v
			} else if v, ok := n.Attrs["level"].(float64); ok {
				level = int(v)
			}
			doc.Blocks = append(doc.Blocks, blocks.NewHeader(text, level, nil))
		case "listItem":
			doc.Blocks = append(doc.Blocks, blocks.NewList(blocks.ListOrdered, []string{text}))
		default:
			doc.Blocks = append(doc.Blocks, blocks.NewParagraph(text, nil))
		}
	}
	if len(doc.Blocks) == 0 {
		doc.Blocks = []*blocks.Block{blocks.NewEmptyParagraph()}
	}
	return doc
}

// nestedFromBlocks поднимает блочную модель во вложенную для экспорта.
func nestedFromBlocks(doc *blocks.Document) *tiptap.Document {
	nested := tiptap.NewDocument()
	for _, b := range doc.Blocks {
		switch b.Type {
		case blocks.BlockHeader:
			nested.Content = append(nested.Content, tiptap.Node{
				Type:    "heading",
				Attrs:   map[string]interface{}{"level": b.Data.Level},
				Content: []tiptap.Node{tiptap.NewTextNode(htmlconv.StripTags(b.Data.Text))},
			})
		case blocks.BlockList:
			for _, item := range b.Data.Items {
				nested.Content = append(nested.Content, tiptap.Node{
					Type: "listItem",
					Content: []tiptap.Node{{
						Type:    "paragraph",
						Content: []tiptap.Node{tiptap.NewTextNode(htmlconv.StripTags(item))},
					}},
				})
			}
		default:
			if text := htmlconv.StripTags(b.PlainText()); text != "" {
				nested.Content = append(nested.Content, tiptap.Node{
					Type:    "paragraph",
					Content: []tiptap.Node{tiptap.NewTextNode(text)},
				})
			}
		}
	}
	return nested
}
