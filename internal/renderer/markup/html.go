package markup

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark/util"

	"github.com/stateful/emailbuilder/pkg/document"
)

type declaration struct {
	property string
	value    string
}

// css collects inline style declarations in insertion order. Empty
// values are dropped so absent style fields fall back to the client.
type css []declaration

func (c *css) add(property, value string) {
	if value == "" {
		return
	}
	*c = append(*c, declaration{property, value})
}

func (c css) String() string {
	var b strings.Builder
	for i, d := range c {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(d.property)
		b.WriteByte(':')
		b.WriteString(d.value)
	}
	return b.String()
}

type attribute struct {
	name  string
	value string
	keep  bool
}

type attributes []attribute

// set adds the attribute unless value is empty.
func (a *attributes) set(name, value string) {
	if value == "" {
		return
	}
	*a = append(*a, attribute{name: name, value: value})
}

// always adds the attribute even with an empty value.
func (a *attributes) always(name, value string) {
	*a = append(*a, attribute{name: name, value: value, keep: true})
}

func (a attributes) write(b *strings.Builder) {
	for _, attr := range a {
		if attr.value == "" && !attr.keep {
			continue
		}
		b.WriteByte(' ')
		b.WriteString(attr.name)
		b.WriteString(`="`)
		b.WriteString(escape(attr.value))
		b.WriteByte('"')
	}
}

func element(tag string, attrs attributes, inner string) string {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(tag)
	attrs.write(&b)
	b.WriteByte('>')
	b.WriteString(inner)
	b.WriteString("</")
	b.WriteString(tag)
	b.WriteByte('>')
	return b.String()
}

func void(tag string, attrs attributes) string {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(tag)
	attrs.write(&b)
	b.WriteString("/>")
	return b.String()
}

func styled(c css) attributes {
	var a attributes
	a.set("style", c.String())
	return a
}

func escape(s string) string {
	return string(util.EscapeHTML([]byte(s)))
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func strOr(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

func px(n int) string {
	return strconv.Itoa(n) + "px"
}

func pxPtr(p *int) string {
	if p == nil {
		return ""
	}
	return px(*p)
}

func pxFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64) + "px"
}

func padding(p *document.Padding) string {
	if p == nil {
		return ""
	}
	return strings.Join([]string{
		px(intOr(p.Top, 0)),
		px(intOr(p.Right, 0)),
		px(intOr(p.Bottom, 0)),
		px(intOr(p.Left, 0)),
	}, " ")
}

func fontStack(f *document.FontFamily) string {
	if f == nil {
		return ""
	}
	return f.Stack()
}

func border(color *string) string {
	if color == nil {
		return ""
	}
	return "1px solid " + *color
}
