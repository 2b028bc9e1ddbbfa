package html

import "strings"

type Kind uint8

const (
	KindRoot Kind = iota
	KindHead
	KindMeta
	KindTitle
	KindBody
	KindH1
	KindP
	KindText
)

func (k Kind) tag() string {
	switch k {
	case KindRoot:
		return "html"
	case KindHead:
		return "head"
	case KindMeta:
		return "meta"
	case KindTitle:
		return "title"
	case KindBody:
		return "body"
	case KindH1:
		return "h1"
	case KindP:
		return "p"
	default:
		return ""
	}
}

type Lang uint8

const (
	LangEn Lang = iota
)

func (l Lang) String() string {
	switch l {
	case LangEn:
		return "en"
	default:
		return ""
	}
}

// Charset is optional on meta nodes; NoCharset omits the attribute.
type Charset uint8

const (
	NoCharset Charset = iota
	UTF8
)

func (c Charset) String() string {
	switch c {
	case UTF8:
		return "utf-8"
	default:
		return ""
	}
}

type Node struct {
	Kind     Kind
	Lang     Lang
	Charset  Charset
	Text     string
	Children []Node
}

func Root(lang Lang, children ...Node) Node {
	return Node{Kind: KindRoot, Lang: lang, Children: children}
}

func Head(children ...Node) Node {
	return Node{Kind: KindHead, Children: children}
}

func Meta(charset Charset, children ...Node) Node {
	return Node{Kind: KindMeta, Charset: charset, Children: children}
}

func Title(children ...Node) Node {
	return Node{Kind: KindTitle, Children: children}
}

func Body(children ...Node) Node {
	return Node{Kind: KindBody, Children: children}
}

func H1(children ...Node) Node {
	return Node{Kind: KindH1, Children: children}
}

func P(children ...Node) Node {
	return Node{Kind: KindP, Children: children}
}

func Text(s string) Node {
	return Node{Kind: KindText, Text: s}
}

// String renders n depth-first: an opening tag line, the children, and a
// closing tag line. A text node renders as a single line.
func (n Node) String() string {
	var b strings.Builder
	n.writeTo(&b)
	return b.String()
}

func (n Node) writeTo(b *strings.Builder) {
	switch n.Kind {
	case KindText:
		b.WriteString(n.Text)
		b.WriteByte('\n')
		return
	case KindRoot:
		b.WriteString(`<html lang="`)
		b.WriteString(n.Lang.String())
		b.WriteString("\">\n")
	case KindMeta:
		b.WriteString("<meta")
		if n.Charset != NoCharset {
			b.WriteString(` charset="`)
			b.WriteString(n.Charset.String())
			b.WriteByte('"')
		}
		b.WriteString(">\n")
	default:
		b.WriteByte('<')
		b.WriteString(n.Kind.tag())
		b.WriteString(">\n")
	}

	for _, child := range n.Children {
		child.writeTo(b)
	}

	b.WriteString("</")
	b.WriteString(n.Kind.tag())
	b.WriteString(">\n")
}

type Document struct {
	Root Node
}

func (d Document) String() string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n")
	d.Root.writeTo(&b)
	return b.String()
}

// Greeting is the page served for every well-formed request.
func Greeting() Document {
	return Document{
		Root: Root(LangEn,
			Head(
				Meta(UTF8),
				Title(Text("Hello!")),
			),
			Body(
				H1(Text("Hello!")),
				P(Text("Hi from minihttp!")),
			),
		),
	}
}
