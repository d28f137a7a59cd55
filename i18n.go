package jsonproto

import (
	"embed"
	"sync"

	"github.com/kaptinlin/go-i18n"
)

//go:embed locales/*.json
var localesFS embed.FS

var (
	bundleOnce sync.Once
	bundle     *i18n.I18n
	bundleErr  error
)

// Bundle returns the process-wide localization bundle, loading the
// embedded locale files on first use.
func Bundle() (*i18n.I18n, error) {
	bundleOnce.Do(func() {
		b := i18n.NewBundle(
			i18n.WithDefaultLocale("en"),
			i18n.WithLocales("en", "zh-Hans"),
		)
		bundleErr = b.LoadFS(localesFS, "locales/*.json")
		bundle = b
	})
	return bundle, bundleErr
}

// Localizer returns a localizer for the given locale (falling back to the
// bundle's default locale on unknown locales), for use with
// Issue.Localize/ValidationError.Localize.
func Localizer(locale string) (*i18n.Localizer, error) {
	b, err := Bundle()
	if err != nil {
		return nil, err
	}
	return b.NewLocalizer(locale), nil
}

// Localize renders every issue in e through loc, joining them with newlines.
func (e *ValidationError) Localize(loc *i18n.Localizer) string {
	if loc == nil {
		return e.Error()
	}
	out := ""
	for i, is := range e.Issues {
		if i > 0 {
			out += "\n"
		}
		out += is.Localize(loc)
	}
	return out
}
