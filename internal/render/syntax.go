package render

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/TimelordUK/lview/internal/source"
)

// SyntaxRenderer colors display lines with a chroma lexer chosen by file
// name. Lexer, style and formatter are resolved once.
type SyntaxRenderer struct {
	lexer     chroma.Lexer
	style     *chroma.Style
	formatter chroma.Formatter
}

// NewSyntaxRenderer creates a syntax highlighting renderer for filename.
// Unknown file types use the plaintext lexer.
func NewSyntaxRenderer(filename, theme string) *SyntaxRenderer {
	lexer := lexers.Match(filename)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	if theme == "" {
		theme = "monokai"
	}

	return &SyntaxRenderer{
		lexer:     chroma.Coalesce(lexer),
		style:     styles.Get(theme),
		formatter: formatters.Get("terminal16m"),
	}
}

// LexerName returns the lexer chosen for the file
func (r *SyntaxRenderer) LexerName() string {
	return r.lexer.Config().Name
}

// Render highlights one display line. Each row is tokenised on its own, so a
// token spanning a wrap point restarts on the next row.
func (r *SyntaxRenderer) Render(line source.DisplayLine, _ RowState) string {
	if line.Text == "" {
		return ""
	}

	it, err := r.lexer.Tokenise(nil, line.Text)
	if err != nil {
		return line.Text
	}
	var b strings.Builder
	if err := r.formatter.Format(&b, r.style, it); err != nil {
		return line.Text
	}

	// lexers may append a newline to the final token
	return strings.NewReplacer("\n", "", "\r", "").Replace(b.String())
}

// syntaxExts lists structured formats that show up next to logs
var syntaxExts = map[string]bool{
	".go": true, ".py": true, ".js": true, ".ts": true, ".java": true,
	".sh": true, ".bash": true, ".yaml": true, ".yml": true,
	".json": true, ".jsonl": true, ".toml": true, ".xml": true,
	".html": true, ".css": true, ".sql": true, ".md": true,
	".ini": true, ".conf": true, ".diff": true, ".patch": true,
}

// IsSyntaxHighlightable reports whether filename is worth a syntax lexer.
// Plain log files are left to the level and highlight rules.
func IsSyntaxHighlightable(filename string) bool {
	return syntaxExts[strings.ToLower(filepath.Ext(filename))]
}
