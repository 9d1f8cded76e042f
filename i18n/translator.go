// Package i18n renders user-facing messages for import failure codes.
package i18n

import (
	"strings"
	"sync"
)

// Translator retrieves localized messages for failure codes.
// data provides optional values to embed in the message (for example,
// "cause").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var dict = map[string]map[string]string{
	"en": {
		"malformed_input":         "The file is not valid JSON or YAML.",
		"empty_spec_array":        "The file contains an empty specification array.",
		"missing_transaction_set": "The schema has no transaction set definition (x-openedi-message-id).",
	},
	"ja": {
		"malformed_input":         "ファイルが有効な JSON または YAML ではありません。",
		"empty_spec_array":        "仕様の配列が空です。",
		"missing_transaction_set": "スキーマにトランザクションセット定義 (x-openedi-message-id) がありません。",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg, ok := dict[t.lang][code]
	if !ok {
		return code
	}
	if c := strings.TrimSpace(data["cause"]); c != "" {
		msg += " (" + c + ")"
	}
	return msg
}

var (
	mu                           = sync.RWMutex{}
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	SetTranslator(dictTranslator{lang: lang})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version). nil restores English.
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
