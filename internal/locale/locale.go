// Package locale validates transcript locale identifiers and negotiates the
// locale for a request.
package locale

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

// Valid reports whether s is a well-formed BCP 47 tag that is safe to embed
// in a transcript file name.
func Valid(s string) bool {
	if s == "" || strings.ContainsAny(s, `/\.`) {
		return false
	}
	_, err := language.Parse(s)
	return err == nil
}

// Negotiator picks a locale for a request from the site's supported locales.
type Negotiator struct {
	supported []string
	fallback  string
	matcher   language.Matcher
}

// NewNegotiator builds a negotiator. Invalid entries in supported are dropped;
// fallback is used when nothing else matches.
func NewNegotiator(supported []string, fallback string) *Negotiator {
	n := &Negotiator{fallback: fallback}
	tags := []language.Tag{}
	if Valid(fallback) {
		// the matcher prefers the first tag when confidence is low
		tags = append(tags, language.Make(fallback))
		n.supported = append(n.supported, fallback)
	}
	for _, s := range supported {
		if !Valid(s) || s == fallback {
			continue
		}
		tags = append(tags, language.Make(s))
		n.supported = append(n.supported, s)
	}
	n.matcher = language.NewMatcher(tags)
	return n
}

// Supported returns the configured locales, fallback first.
func (n *Negotiator) Supported() []string {
	return append([]string(nil), n.supported...)
}

// Fallback returns the default locale.
func (n *Negotiator) Fallback() string {
	return n.fallback
}

// FromRequest returns the "locale" query parameter when present, otherwise the
// best Accept-Language match, otherwise the fallback.
func (n *Negotiator) FromRequest(r *http.Request) string {
	if q := strings.TrimSpace(r.URL.Query().Get("locale")); q != "" {
		return q
	}
	return n.Match(r.Header.Get("Accept-Language"))
}

// Match resolves an Accept-Language header value to a supported locale.
func (n *Negotiator) Match(acceptLanguage string) string {
	if acceptLanguage == "" || len(n.supported) == 0 {
		return n.fallback
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return n.fallback
	}
	_, idx, conf := n.matcher.Match(tags...)
	if conf == language.No {
		return n.fallback
	}
	return n.supported[idx]
}
