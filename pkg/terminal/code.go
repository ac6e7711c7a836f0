package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

const codeStyle = "monokai"

// Code prints a source snippet, syntax highlighted unless output is plain.
func (w *Writer) Code(language, code string) {
	code = strings.TrimRight(code, "\n")
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.plain {
		fmt.Fprintln(w.out, code)
		return
	}
	if err := highlight(w.out, language, code); err != nil {
		fmt.Fprintln(w.out, code)
	}
}

func highlight(out io.Writer, language, code string) error {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iter, err := lexer.Tokenise(nil, code)
	if err != nil {
		return err
	}
	style := styles.Get(codeStyle)
	if style == nil {
		style = styles.Fallback
	}
	if err := formatters.TTY256.Format(out, style, iter); err != nil {
		return err
	}
	_, err = fmt.Fprintln(out)
	return err
}
