package middleware

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

type localeContextKey struct{}

var supportedLocales = []language.Tag{
	language.English,    // en, the default
	language.Indonesian, // id
}

var localeMatcher = language.NewMatcher(supportedLocales)

// I18N resolves the request locale from the X-Locale override header or the
// Accept-Language header and stores it in the context as a short tag ("en",
// "id").
func I18N(defaultLocale string) func(http.Handler) http.Handler {
	if defaultLocale == "" {
		defaultLocale = "en"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := detectLocale(r, defaultLocale)
			ctx := context.WithValue(r.Context(), localeContextKey{}, locale)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// LocaleFromContext returns the detected locale, falling back to "en".
func LocaleFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(localeContextKey{}).(string); ok && v != "" {
		return v
	}
	return "en"
}

func detectLocale(r *http.Request, fallback string) string {
	if v := r.Header.Get("X-Locale"); v != "" {
		if tag, err := language.Parse(v); err == nil {
			return matchLocale(tag)
		}
	}
	if header := r.Header.Get("Accept-Language"); header != "" {
		if tags, _, err := language.ParseAcceptLanguage(header); err == nil && len(tags) > 0 {
			_, index, _ := localeMatcher.Match(tags...)
			return shortTag(supportedLocales[index])
		}
	}
	return fallback
}

func matchLocale(tag language.Tag) string {
	_, index, _ := localeMatcher.Match(tag)
	return shortTag(supportedLocales[index])
}

func shortTag(tag language.Tag) string {
	base, _ := tag.Base()
	return strings.ToLower(base.String())
}
