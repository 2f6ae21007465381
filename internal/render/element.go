package render

import (
	"html"
	"sort"
	"strings"
	"unicode"
)

// Hx holds the hypermedia request attributes an element can carry.
type Hx struct {
	Get     string // hx-get
	Post    string // hx-post
	Put     string // hx-put
	Delete  string // hx-delete
	Target  string // hx-target, a CSS selector
	Swap    string // hx-swap
	Trigger string // hx-trigger
	Confirm string // hx-confirm, a prompt shown before the request
}

// Attrs configures the attributes of an element. Boolean fields render as
// bare attributes when true. Extra is passed through and rendered after the
// named fields in key order; values are escaped and keys that are not valid
// attribute names are skipped.
type Attrs struct {
	ID          string
	Class       string
	Variant     string
	Type        string
	Name        string
	Value       string
	Placeholder string
	Label       string
	Checked     bool
	Selected    bool
	Disabled    bool
	Open        bool
	Required    bool
	Hx          Hx
	Extra       map[string]string
}

func (a Attrs) write(b *strings.Builder) {
	pairs := []struct{ key, val string }{
		{"id", a.ID},
		{"class", a.Class},
		{"variant", a.Variant},
		{"type", a.Type},
		{"name", a.Name},
		{"value", a.Value},
		{"placeholder", a.Placeholder},
		{"label", a.Label},
		{"hx-get", a.Hx.Get},
		{"hx-post", a.Hx.Post},
		{"hx-put", a.Hx.Put},
		{"hx-delete", a.Hx.Delete},
		{"hx-target", a.Hx.Target},
		{"hx-swap", a.Hx.Swap},
		{"hx-trigger", a.Hx.Trigger},
		{"hx-confirm", a.Hx.Confirm},
	}
	for _, p := range pairs {
		if p.val != "" {
			writeAttr(b, p.key, p.val)
		}
	}

	flags := []struct {
		key string
		on  bool
	}{
		{"checked", a.Checked},
		{"selected", a.Selected},
		{"disabled", a.Disabled},
		{"open", a.Open},
		{"required", a.Required},
	}
	for _, f := range flags {
		if f.on {
			b.WriteByte(' ')
			b.WriteString(f.key)
		}
	}

	keys := make([]string, 0, len(a.Extra))
	for k := range a.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if validAttrName(k) {
			writeAttr(b, k, a.Extra[k])
		}
	}
}

// validAttrName rejects names that could close the tag or start another
// attribute. Extra keys failing it are dropped.
func validAttrName(name string) bool {
	if name == "" {
		return false
	}
	for _, c := range name {
		if c <= ' ' || c == 0x7f || strings.ContainsRune(`"'<>/=`, c) || unicode.IsSpace(c) {
			return false
		}
	}
	return true
}

func writeAttr(b *strings.Builder, key, val string) {
	b.WriteByte(' ')
	b.WriteString(key)
	b.WriteString(`="`)
	b.WriteString(html.EscapeString(val))
	b.WriteByte('"')
}

// Element renders <tag attrs>children</tag>. Children are inserted verbatim;
// use Text for user-supplied content.
func Element(tag string, attrs Attrs, children ...string) string {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(tag)
	attrs.write(&b)
	b.WriteByte('>')
	for _, c := range children {
		b.WriteString(c)
	}
	b.WriteString("</")
	b.WriteString(tag)
	b.WriteByte('>')
	return b.String()
}

// Void renders an element that has no closing tag, such as <input>.
func Void(tag string, attrs Attrs) string {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(tag)
	attrs.write(&b)
	b.WriteByte('>')
	return b.String()
}

// Text escapes s for use as element content.
func Text(s string) string {
	return html.EscapeString(s)
}
