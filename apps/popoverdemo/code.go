// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/popoverdemo/code.go
// Summary: Syntax-highlighted source snippet used as popover content.
// Notes: The language is detected with go-enry and coloured with a Chroma
// style; the style's background doubles as the popover fill.

package popoverdemo

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"
	"github.com/go-enry/go-enry/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texelpop/geom"
	"github.com/framegrace/texelpop/texel"
)

const defaultStyleName = "catppuccin-mocha"

const sampleSource = `package main

import "fmt"

func main() {
	for i := 0; i < 3; i++ {
		fmt.Println("pop", i)
	}
}`

type codeRun struct {
	text  string
	style tcell.Style
}

// CodeView draws pre-highlighted source lines.
type CodeView struct {
	Language   string
	Background tcell.Color
	lines      [][]codeRun
}

// detectLanguage asks go-enry for the language of src, using filename when
// one is known. It returns "" when nothing matches.
func detectLanguage(filename, src string) string {
	content := []byte(src)
	if filename != "" {
		if lang := enry.GetLanguage(filename, content); lang != "" {
			return lang
		}
	}
	if lang, ok := enry.GetLanguageByShebang(content); ok {
		return lang
	}
	lang, _ := enry.GetLanguageByClassifier(content, []string{"Go", "Python", "Shell", "JavaScript", "Rust", "JSON"})
	return lang
}

func getLexer(lang, src string) chroma.Lexer {
	if lang != "" {
		if l := lexers.Get(strings.ToLower(lang)); l != nil {
			return l
		}
	}
	if l := lexers.Analyse(src); l != nil {
		return l
	}
	return lexers.Fallback
}

func chromaStyle(name string) *chroma.Style {
	if name == "" {
		name = defaultStyleName
	}
	return styles.Get(name)
}

func toColor(c chroma.Colour) tcell.Color {
	return tcell.NewRGBColor(int32(c.Red()), int32(c.Green()), int32(c.Blue()))
}

func tokenStyle(entry chroma.StyleEntry) tcell.Style {
	st := tcell.StyleDefault
	if entry.Colour.IsSet() {
		st = st.Foreground(toColor(entry.Colour))
	}
	if entry.Bold == chroma.Yes {
		st = st.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		st = st.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		st = st.Underline(true)
	}
	return st
}

// NewCodeView highlights src. filename only helps language detection and
// may be empty.
func NewCodeView(filename, src, styleName string) *CodeView {
	src = strings.ReplaceAll(src, "\t", "    ")
	lang := detectLanguage(filename, src)
	style := chromaStyle(styleName)
	v := &CodeView{Language: lang, Background: tcell.ColorDefault}
	if bg := style.Get(chroma.Background).Background; bg.IsSet() {
		v.Background = toColor(bg)
	}

	lexer := chroma.Coalesce(getLexer(lang, src))
	tokens, err := chroma.Tokenise(lexer, nil, src)
	if err != nil {
		v.lines = plainLines(src)
		return v
	}
	line := []codeRun{}
	for _, tok := range tokens {
		if tok.Type == chroma.EOFType {
			break
		}
		st := tokenStyle(style.Get(tok.Type))
		parts := strings.Split(tok.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				v.lines = append(v.lines, line)
				line = []codeRun{}
			}
			if part != "" {
				line = append(line, codeRun{text: part, style: st})
			}
		}
	}
	v.lines = append(v.lines, line)
	// Drop the empty line left by a trailing newline.
	if n := len(v.lines); n > 1 && len(v.lines[n-1]) == 0 {
		v.lines = v.lines[:n-1]
	}
	return v
}

func plainLines(src string) [][]codeRun {
	var out [][]codeRun
	for _, l := range strings.Split(src, "\n") {
		out = append(out, []codeRun{{text: l, style: tcell.StyleDefault}})
	}
	return out
}

// Lines returns the number of source lines.
func (v *CodeView) Lines() int { return len(v.lines) }

// Columns returns the width of the widest line in cells.
func (v *CodeView) Columns() int {
	widest := 0
	for _, line := range v.lines {
		w := 0
		for _, r := range line {
			w += runewidth.StringWidth(r.text)
		}
		if w > widest {
			widest = w
		}
	}
	return widest
}

// Draw implements texel.Drawer.
func (v *CodeView) Draw(c *texel.Canvas) {
	m := c.Metrics()
	size := c.Size()
	for i, line := range v.lines {
		y := float64(i) * m.H
		if y+m.H > size.H+0.5 {
			return
		}
		x := 0.0
		for _, r := range line {
			n := c.Text(geom.Pt(x, y), r.text, r.style)
			if n == 0 {
				break
			}
			x += float64(n) * m.W
		}
	}
}
