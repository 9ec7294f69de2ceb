// Package i18n loads the battle log message catalogs and hands out
// x/text printers for them.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

// BaseLocale must be present in every bundle and is the fallback for
// unknown locales.
const BaseLocale = "en-US"

type catalogFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// Bundle is a set of locale catalogs registered on one x/text builder.
type Bundle struct {
	builder  *catalog.Builder
	tags     map[string]language.Tag
	messages map[string]map[string]string
}

//go:embed locales/*/*.yaml
var embedded embed.FS

func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embedded)
}

// LoadFromFS reads locales/<locale>/*.yaml from fsys.
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	b := &Bundle{
		builder:  catalog.NewBuilder(catalog.Fallback(language.MustParse(BaseLocale))),
		tags:     map[string]language.Tag{},
		messages: map[string]map[string]string{},
	}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}
		if err := b.add(p, file); err != nil {
			return nil, err
		}
	}
	if _, ok := b.tags[BaseLocale]; !ok {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}
	return b, nil
}

func (b *Bundle) add(p string, file catalogFile) error {
	locale := strings.TrimSpace(file.Locale)
	if dir := path.Base(path.Dir(p)); locale != dir {
		return fmt.Errorf("catalog %s: locale %q must match path locale %q", p, locale, dir)
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return fmt.Errorf("catalog %s: parse locale: %w", p, err)
	}
	if file.Messages == nil {
		return fmt.Errorf("catalog %s: messages map is required", p)
	}

	msgs, ok := b.messages[locale]
	if !ok {
		msgs = map[string]string{}
		b.messages[locale] = msgs
	}
	for key, value := range file.Messages {
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("catalog %s: message key cannot be blank", p)
		}
		if _, dup := msgs[key]; dup {
			return fmt.Errorf("catalog %s: duplicate key %q in locale %q", p, key, locale)
		}
		if err := b.builder.SetString(tag, key, value); err != nil {
			return fmt.Errorf("catalog %s: key %q: %w", p, key, err)
		}
		msgs[key] = value
	}
	b.tags[locale] = tag
	return nil
}

// Locales returns the loaded locale identifiers, sorted.
func (b *Bundle) Locales() []string {
	out := make([]string, 0, len(b.tags))
	for l := range b.tags {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

func (b *Bundle) HasLocale(locale string) bool {
	_, ok := b.tags[strings.TrimSpace(locale)]
	return ok
}

// Printer returns a printer for locale, or for BaseLocale when locale
// isn't loaded.
func (b *Bundle) Printer(locale string) *message.Printer {
	tag, ok := b.tags[strings.TrimSpace(locale)]
	if !ok {
		tag = b.tags[BaseLocale]
	}
	return message.NewPrinter(tag, message.Catalog(b.builder))
}
