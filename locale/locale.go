// Package locale translates the user facing texts of folio.
//
// Messages are embedded YAML files, one per language. English is the default
// and the fallback for any missing message.
package locale

import (
	"embed"
	"fmt"

	"github.com/etnz/folio"
	"github.com/etnz/folio/date"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// Languages lists the embedded languages.
var Languages = []string{"en", "ja"}

var bundle = newBundle()

func newBundle() *i18n.Bundle {
	b := i18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)
	for _, lang := range Languages {
		filename := fmt.Sprintf("locales/active.%s.yaml", lang)
		if _, err := b.LoadMessageFileFS(localeFS, filename); err != nil {
			// embedded files are fixed at build time.
			panic(fmt.Sprintf("cannot load %s: %v", filename, err))
		}
	}
	return b
}

// Localizer renders messages in a preferred language.
type Localizer struct {
	l *i18n.Localizer
}

// New returns a Localizer for the given languages, in order of preference.
// Unknown languages fall back to English.
func New(langs ...string) *Localizer {
	return &Localizer{l: i18n.NewLocalizer(bundle, langs...)}
}

// T returns the message id with optional template data.
func (l *Localizer) T(id string, data ...map[string]any) string {
	cfg := &i18n.LocalizeConfig{MessageID: id}
	if len(data) > 0 {
		cfg.TemplateData = data[0]
	}
	msg, err := l.l.Localize(cfg)
	if err != nil {
		logrus.WithField("id", id).WithError(err).Debug("missing translation")
		return id
	}
	return msg
}

var alertMessages = map[folio.AlertKind]string{
	folio.TargetReached:       "alert.target",
	folio.StopReached:         "alert.stop",
	folio.UpperBandReached:    "alert.upper",
	folio.LowerBandReached:    "alert.lower",
	folio.TrailingStopReached: "alert.trailing",
}

// Notification returns the text of a fired alert.
func (l *Localizer) Notification(n folio.Notification) string {
	id, ok := alertMessages[n.Kind]
	if !ok {
		return n.String()
	}
	return l.T(id, map[string]any{"Symbol": string(n.Symbol), "Level": n.FormattedLevel()})
}

// Side returns the label of a trade side.
func (l *Localizer) Side(s folio.Side) string {
	if s == folio.Sell {
		return l.T("side.sell")
	}
	return l.T("side.buy")
}

// Period returns the label of a report period.
func (l *Localizer) Period(p date.Period) string {
	if p == date.Yearly {
		return l.T("period.yearly")
	}
	return l.T("period.monthly")
}

// Broker returns the display name of a broker.
func (l *Localizer) Broker(b string) string {
	if b == folio.UnassignedBroker {
		return l.T("broker.unassigned")
	}
	return b
}
