// Package i18n translates enum labels (ticket status, ticket subject) and the
// export column headers shown in exports and notification emails. Messages
// are keyed "<group>.<value>".
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

type entry struct {
	en string
	es string
}

var entries = map[string]entry{
	"status.open":        {"Open", "Abierto"},
	"status.in_progress": {"In progress", "En proceso"},
	"status.closed":      {"Closed", "Cerrado"},

	"subject.hardware_failure": {"Hardware failure", "Falla de hardware"},
	"subject.software_issue":   {"Software issue", "Problema de software"},
	"subject.maintenance":      {"Maintenance", "Mantenimiento"},
	"subject.installation":     {"Installation", "Instalación"},
	"subject.consultation":     {"Consultation", "Consulta"},
	"subject.other":            {"Other", "Otro"},

	"mail.assigned.subject": {"Ticket #%d has been assigned to you", "Se le asignó el ticket #%d"},
	"mail.closed.subject":   {"Ticket #%d has been closed", "El ticket #%d fue cerrado"},
	"mail.assigned.body": {
		"Hello %s, ticket #%d (%s) from %s has been assigned to you.",
		"Hola %s, se le asignó el ticket #%d (%s) de %s.",
	},
	"mail.closed.body": {
		"Hello %s, your ticket #%d (%s) was closed on %s.",
		"Hola %s, su ticket #%d (%s) fue cerrado el %s.",
	},
	"mail.description": {"Description", "Descripción"},

	"export.id":            {"ID", "ID"},
	"export.subject":       {"Subject", "Asunto"},
	"export.description":   {"Description", "Descripción"},
	"export.customer":      {"Customer", "Cliente"},
	"export.support":       {"Support", "Soporte"},
	"export.brand":         {"Brand", "Marca"},
	"export.model":         {"Model", "Modelo"},
	"export.serial_number": {"Serial Number", "Número de serie"},
	"export.category":      {"Category", "Categoría"},
	"export.area":          {"Area", "Área"},
	"export.status":        {"Status", "Estado"},
	"export.created_at":    {"Created At", "Fecha de creación"},
	"export.closed_at":     {"Closed At", "Fecha de cierre"},
}

// Catalog resolves translators for a negotiated language.
type Catalog struct {
	cat       *catalog.Builder
	supported []language.Tag
	matcher   language.Matcher
}

// NewCatalog builds the catalog. defaultLocale is preferred when the
// Accept-Language header matches nothing; unknown values fall back to English.
func NewCatalog(defaultLocale string) *Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, e := range entries {
		_ = b.SetString(language.English, key, e.en)
		_ = b.SetString(language.Spanish, key, e.es)
	}

	supported := []language.Tag{language.English, language.Spanish}
	if def, err := language.Parse(defaultLocale); err == nil {
		if base, _ := def.Base(); base.String() == "es" {
			supported = []language.Tag{language.Spanish, language.English}
		}
	}

	return &Catalog{
		cat:       b,
		supported: supported,
		matcher:   language.NewMatcher(supported),
	}
}

// Translator picks the best supported language for an Accept-Language value.
func (c *Catalog) Translator(acceptLanguage string) *Translator {
	tag := c.supported[0]
	if acceptLanguage != "" {
		if tags, _, err := language.ParseAcceptLanguage(acceptLanguage); err == nil && len(tags) > 0 {
			_, idx, conf := c.matcher.Match(tags...)
			if conf != language.No {
				tag = c.supported[idx]
			}
		}
	}

	return &Translator{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(c.cat)),
	}
}

// Translator renders catalog messages in one language.
type Translator struct {
	tag     language.Tag
	printer *message.Printer
}

// Language returns the BCP 47 tag in use, e.g. "es".
func (t *Translator) Language() string {
	return t.tag.String()
}

// T returns the translation of key, or key itself when it is unknown.
func (t *Translator) T(key string, args ...any) string {
	return t.printer.Sprintf(key, args...)
}

// Status translates a ticket status value.
func (t *Translator) Status(value string) string {
	return t.label("status.", value)
}

// Subject translates a ticket subject value.
func (t *Translator) Subject(value string) string {
	return t.label("subject.", value)
}

// Column translates an export column name.
func (t *Translator) Column(name string) string {
	return t.label("export.", name)
}

func (t *Translator) label(prefix, value string) string {
	if _, ok := entries[prefix+value]; !ok {
		return value
	}
	return t.printer.Sprintf(prefix + value)
}
