package dom

import (
	"fmt"
	"html"
	"io"
	"maps"
	"slices"
	"strings"
)

// voidElements have no closing tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// RenderHTML writes el and its subtree as HTML. Attached nodes carry a
// data-node-id attribute. Virtual children are written inside a trailing
// <template data-virtual> so the client can look them up by id without
// rendering them in place.
func RenderHTML(w io.Writer, el *Element) error {
	if el == nil {
		return nil
	}
	return renderElement(w, el)
}

// RenderString is RenderHTML into a string.
func RenderString(el *Element) (string, error) {
	var b strings.Builder
	if err := RenderHTML(&b, el); err != nil {
		return "", err
	}
	return b.String(), nil
}

func renderElement(w io.Writer, el *Element) error {
	if _, err := fmt.Fprintf(w, "<%s", el.tag); err != nil {
		return err
	}
	if el.id != 0 {
		if _, err := fmt.Fprintf(w, ` data-node-id="%d"`, el.id); err != nil {
			return err
		}
	}
	for _, name := range slices.Sorted(maps.Keys(el.attrs)) {
		value := el.attrs[name]
		var err error
		if value == "" {
			_, err = fmt.Fprintf(w, " %s", name)
		} else {
			_, err = fmt.Fprintf(w, ` %s="%s"`, name, html.EscapeString(value))
		}
		if err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}
	if voidElements[el.tag] {
		return nil
	}

	if el.text != "" {
		if _, err := io.WriteString(w, html.EscapeString(el.text)); err != nil {
			return err
		}
	}
	for _, c := range el.children {
		if err := renderElement(w, c); err != nil {
			return err
		}
	}
	if len(el.virtual) > 0 {
		if _, err := io.WriteString(w, "<template data-virtual>"); err != nil {
			return err
		}
		for _, c := range el.virtual {
			if err := renderElement(w, c); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "</template>"); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "</%s>", el.tag)
	return err
}
