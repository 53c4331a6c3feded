package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "field" or "type").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "duplicate_field":
			return "フィールドが重複しています"
		case "missing_field":
			return "必須フィールドが不足しています"
		case "unknown_field":
			return "未知のフィールドです"
		case "duplicate_binding":
			return "フィールドが二重に束縛されています"
		case "invalid_call":
			return "引数の並びが不正です"
		case "not_hashable":
			return "ハッシュ不可の型です"
		case "invalid_decl":
			return "型宣言が不正です"
		case "parse_error":
			return "解析エラー"
		}
	default: // "en"
		switch code {
		case "duplicate_field":
			return "field declared more than once"
		case "missing_field":
			return "required field missing"
		case "unknown_field":
			return "unknown field"
		case "duplicate_binding":
			return "field bound more than once"
		case "invalid_call":
			return "invalid argument sequence"
		case "not_hashable":
			return "type is not hashable"
		case "invalid_decl":
			return "invalid type declaration"
		case "parse_error":
			return "parse error"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
