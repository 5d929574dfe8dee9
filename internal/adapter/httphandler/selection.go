package httphandler

import (
	"net/url"
	"sort"
	"strings"

	"github.com/niksmo/zeroproof/internal/core/domain"
)

// optPrefix marks the query and form keys carrying the selection.
const optPrefix = "opt."

func selectionFromValues(vs url.Values) domain.Selection {
	sel := make(domain.Selection)
	for key, values := range vs {
		name, ok := strings.CutPrefix(key, optPrefix)
		if !ok || name == "" || len(values) == 0 {
			continue
		}
		sel[name] = values[0]
	}
	return sel
}

func selectionValues(sel domain.Selection) url.Values {
	vs := make(url.Values, len(sel))
	for name, value := range sel {
		vs.Set(optPrefix+name, value)
	}
	return vs
}

// productURL is the product page address under sel. The query is encoded
// with sorted keys so equal selections give equal URLs.
func productURL(slug string, sel domain.Selection) string {
	u := "/products/" + url.PathEscape(slug)
	if q := selectionValues(sel).Encode(); q != "" {
		u += "?" + q
	}
	return u
}

type hiddenField struct {
	Name  string
	Value string
}

// selectionFields lists sel as hidden form fields ordered by option name.
func selectionFields(sel domain.Selection) []hiddenField {
	fs := make([]hiddenField, 0, len(sel))
	for name, value := range sel {
		fs = append(fs, hiddenField{optPrefix + name, value})
	}
	sort.Slice(fs, func(i, j int) bool { return fs[i].Name < fs[j].Name })
	return fs
}
