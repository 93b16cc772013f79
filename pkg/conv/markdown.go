package conv

import (
	"io"
	"strings"
	"unicode/utf8"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

var (
	extensions = parser.CommonExtensions | parser.NoEmptyLineBeforeBlock
	htmlFlags  = html.CommonFlags | html.HrefTargetBlank
	tgPolicy   = bluemonday.NewPolicy()
)

func init() {
	// Allowed tags https://core.telegram.org/bots/api#html-style
	tgPolicy.AllowElements("b", "strong", "i", "em", "u", "ins", "s", "strike", "del", "code", "pre", "blockquote")
	tgPolicy.AllowAttrs("href").OnElements("a")
	tgPolicy.AllowAttrs("class").OnElements("code")
}

// telegramHook renders the nodes Telegram has no tag for: headings become
// bold lines and list items get a bullet.
func telegramHook(w io.Writer, node ast.Node, entering bool) (ast.WalkStatus, bool) {
	switch node.(type) {
	case *ast.Heading:
		if entering {
			io.WriteString(w, "<b>")
		} else {
			io.WriteString(w, "</b>\n")
		}
		return ast.GoToNext, true
	case *ast.List:
		return ast.GoToNext, true
	case *ast.ListItem:
		if entering {
			io.WriteString(w, "• ")
		} else {
			io.WriteString(w, "\n")
		}
		return ast.GoToNext, true
	}
	return ast.GoToNext, false
}

// MarkdownToTelegramHTML renders model output as the HTML subset accepted by
// the Telegram Bot API.
func MarkdownToTelegramHTML(md string) string {
	p := parser.NewWithExtensions(extensions)
	renderer := html.NewRenderer(html.RendererOptions{
		Flags:          htmlFlags,
		RenderNodeHook: telegramHook,
	})
	unsafeHTML := markdown.Render(p.Parse([]byte(md)), renderer)

	return string(tgPolicy.SanitizeBytes(unsafeHTML))
}

// Split cuts text into chunks of at most maxLen bytes, preferring line
// breaks in the last two thirds of a chunk and never splitting a rune.
func Split(text string, maxLen int) []string {
	if len(text) <= maxLen {
		return []string{text}
	}

	var chunks []string
	for len(text) > 0 {
		if len(text) <= maxLen {
			chunks = append(chunks, text)
			break
		}

		cut := maxLen
		if idx := strings.LastIndex(text[:maxLen], "\n"); idx > maxLen/3 {
			cut = idx
		}
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		if cut == 0 {
			cut = maxLen
		}

		chunks = append(chunks, text[:cut])
		text = strings.TrimSpace(text[cut:])
	}
	return chunks
}
