package tui

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2/quick"
)

// previewFile returns the syntax-highlighted head of a file, or "" when
// the file cannot be previewed (unreadable, binary).
func previewFile(path string, maxBytes int) string {
	if maxBytes <= 0 {
		maxBytes = 64 * 1024
	}

	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	buf := make([]byte, maxBytes)
	n, _ := f.Read(buf)
	buf = buf[:n]
	if n == 0 {
		return "(empty file)"
	}
	if bytes.IndexByte(buf, 0) >= 0 || !utf8.Valid(buf) {
		return "(binary file)"
	}

	return highlight(string(buf), lexerFor(path))
}

func highlight(code, lexer string) string {
	var b strings.Builder
	if err := quick.Highlight(&b, code, lexer, "terminal256", "dracula"); err != nil {
		return code
	}
	return b.String()
}

// lexerFor maps a filename to a chroma lexer name.
func lexerFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".go":
		return "go"
	case ".py":
		return "python"
	case ".js":
		return "javascript"
	case ".ts":
		return "typescript"
	case ".rs":
		return "rust"
	case ".c", ".h":
		return "c"
	case ".cpp", ".cc", ".hpp":
		return "cpp"
	case ".sh", ".bash":
		return "bash"
	case ".md":
		return "markdown"
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	case ".toml":
		return "toml"
	case ".html":
		return "html"
	case ".css":
		return "css"
	case ".sql":
		return "sql"
	default:
		return "text"
	}
}
