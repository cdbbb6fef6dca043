package i18n

import "sync"

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "kind" or "name").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "type_mismatch":
			return "型が一致しません"
		case "schema_error":
			if k := data["kind"]; k != "" {
				return "サポートされていない kind です: " + k
			}
			return "スキーマが不正です"
		case "array_index":
			return "配列の添字が範囲外です"
		case "conversion_error":
			return "値を変換できません"
		case "truncated":
			return "入力が途中で終わっています"
		case "duplicate_member":
			return "メンバー名が重複しています"
		case "unknown_member":
			return "未知のメンバーです"
		case "too_deep":
			return "入れ子が深すぎます"
		case "parse_error":
			return "解析エラー"
		case "trailing_data":
			return "値の後に余分なバイトがあります"
		}
	default: // "en"
		switch code {
		case "type_mismatch":
			return "type mismatch"
		case "schema_error":
			if k := data["kind"]; k != "" {
				return "kind \"" + k + "\" is not supported"
			}
			return "invalid schema"
		case "array_index":
			return "array index out of range"
		case "conversion_error":
			return "cannot convert value"
		case "truncated":
			return "input ended early"
		case "duplicate_member":
			return "duplicate member name"
		case "unknown_member":
			return "unknown member"
		case "too_deep":
			return "nesting too deep"
		case "parse_error":
			return "parse error"
		case "trailing_data":
			return "unexpected bytes after the value"
		}
	}
	return code
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	mu.Lock()
	currentTranslator = dictTranslator{lang: lang}
	mu.Unlock()
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	mu.Lock()
	defer mu.Unlock()
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
