package view

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Catalog keys. The English catalog maps each key to itself.
const (
	msgNoTasks   = "No tasks"
	msgNoMatches = "No tasks found"
)

// Locales lists the languages with a message catalog.
var Locales = []language.Tag{language.English, language.Russian}

func init() {
	for _, e := range []struct {
		tag       language.Tag
		key, text string
	}{
		{language.English, msgNoTasks, "No tasks"},
		{language.English, msgNoMatches, "No tasks found"},
		{language.Russian, msgNoTasks, "Нет задач"},
		{language.Russian, msgNoMatches, "Задачи не найдены"},
	} {
		if err := message.SetString(e.tag, e.key, e.text); err != nil {
			panic(err)
		}
	}
}

var matcher = language.NewMatcher(Locales)

// ParseLocale maps a locale name such as "ru" or "en-US" to the closest
// supported language. Unknown or empty names yield English.
func ParseLocale(name string) language.Tag {
	name = strings.TrimSpace(name)
	if name == "" {
		return language.English
	}
	tag, err := language.Parse(name)
	if err != nil {
		return language.English
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return language.English
	}
	return Locales[idx]
}

// Message returns the placeholder text for e in the given language, or ""
// for NotEmpty.
func (e EmptyState) Message(tag language.Tag) string {
	var key string
	switch e {
	case NoTasks:
		key = msgNoTasks
	case NoMatches:
		key = msgNoMatches
	default:
		return ""
	}
	return message.NewPrinter(tag).Sprintf(key)
}
