// Package bitbar renders output lines in the format read by BitBar-style
// menu bar plugin hosts: text, then `|`, then space separated key=value params.
package bitbar

import (
	"fmt"
	"strings"
)

// Separator splits the menu bar title from the dropdown items.
const Separator = "---"

// SubmenuIndent nests an item one level under the previous line.
const SubmenuIndent = "--"

type Param struct {
	Key   string
	Value string
}

func Color(c string) Param {
	return Param{Key: "color", Value: c}
}

// Href makes the line open url on click.
func Href(url string) Param {
	return Param{Key: "href", Value: "'" + url + "'"}
}

func TemplateImage(base64 string) Param {
	return Param{Key: "templateImage", Value: base64}
}

type Line struct {
	Text   string
	Params []Param
}

func NewLine(text string, params ...Param) Line {
	return Line{Text: text, Params: params}
}

// Sub returns the line nested one submenu level deeper.
func (l Line) Sub() Line {
	l.Text = SubmenuIndent + l.Text
	return l
}

func (l Line) String() string {
	if len(l.Params) == 0 {
		return l.Text
	}

	params := make([]string, 0, len(l.Params))
	for _, p := range l.Params {
		params = append(params, fmt.Sprintf("%s=%s", p.Key, p.Value))
	}
	if l.Text == "" {
		return "| " + strings.Join(params, " ")
	}
	return fmt.Sprintf("%s | %s", l.Text, strings.Join(params, " "))
}

// Join renders lines separated by newlines, without a trailing newline.
func Join(lines []Line) string {
	s := make([]string, 0, len(lines))
	for _, l := range lines {
		s = append(s, l.String())
	}
	return strings.Join(s, "\n")
}

var cleaner = strings.NewReplacer("|", "/", "\r", " ", "\n", " ")

// Clean makes arbitrary text safe to use as a line: the host would read a
// `|` as the start of the params.
func Clean(text string) string {
	return cleaner.Replace(text)
}
