package i18n

import (
	"fmt"
	"sync"
)

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "minimum").
type Translator interface {
	Message(code string, data map[string]any) string
}

// TranslatorFunc adapts a function to Translator.
type TranslatorFunc func(code string, data map[string]any) string

func (f TranslatorFunc) Message(code string, data map[string]any) string { return f(code, data) }

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]any) string {
	switch t.lang {
	case "ja":
		switch code {
		case "required_field_missing":
			return "必須項目です"
		case "unexpected_null":
			return "null は許可されていません"
		case "type_mismatch":
			if has(data, "expected") {
				return fmt.Sprintf("型が不正です (期待: %v, 実際: %v)", data["expected"], data["received"])
			}
			return "型が不正です"
		case "too_small":
			if has(data, "minimum") {
				return fmt.Sprintf("%v %s %v である必要があります", subject(data), cmp(data, "以上", "より大きい"), data["minimum"])
			}
			return "小さすぎます"
		case "too_large":
			if has(data, "maximum") {
				return fmt.Sprintf("%v %s %v である必要があります", subject(data), cmp(data, "以下", "未満"), data["maximum"])
			}
			return "大きすぎます"
		case "invalid_length":
			if has(data, "exact") {
				return fmt.Sprintf("長さは %v である必要があります", data["exact"])
			}
			return fmt.Sprintf("長さは %v 以上である必要があります", data["minimum"])
		case "unrecognized_key":
			return fmt.Sprintf("未知のキーです: %v", data["key"])
		case "unrecognized_discriminator":
			return fmt.Sprintf("判別値が不正です (候補: %v)", data["options"])
		case "no_union_branch_matched":
			return "どの候補にも一致しません"
		case "custom_refinement_failed":
			return "入力が不正です"
		case "invalid_format":
			return fmt.Sprintf("%v の形式が不正です", data["format"])
		case "not_multiple_of":
			return fmt.Sprintf("%v の倍数である必要があります", data["multipleOf"])
		case "not_finite":
			return "有限の数である必要があります"
		case "parse_error":
			return "解析エラー"
		case "duplicate_key":
			return "キーが重複しています"
		case "too_deep":
			return "ネストが深すぎます"
		case "dependency_unavailable":
			return "依存サービスが利用できません"
		}
	default: // "en"
		switch code {
		case "required_field_missing":
			return "Required"
		case "unexpected_null":
			return "Expected a value, received null"
		case "type_mismatch":
			if has(data, "expected") {
				return fmt.Sprintf("Expected %v, received %v", data["expected"], data["received"])
			}
			return "Invalid type"
		case "too_small":
			if has(data, "minimum") {
				return fmt.Sprintf("%v must be %s %v", subject(data), cmp(data, "greater than or equal to", "greater than"), data["minimum"])
			}
			return "Too small"
		case "too_large":
			if has(data, "maximum") {
				return fmt.Sprintf("%v must be %s %v", subject(data), cmp(data, "less than or equal to", "less than"), data["maximum"])
			}
			return "Too large"
		case "invalid_length":
			if has(data, "exact") {
				return fmt.Sprintf("Length must be exactly %v", data["exact"])
			}
			return fmt.Sprintf("Length must be at least %v", data["minimum"])
		case "unrecognized_key":
			return fmt.Sprintf("Unrecognized key: %v", data["key"])
		case "unrecognized_discriminator":
			return fmt.Sprintf("Invalid discriminator value. Expected %v", data["options"])
		case "no_union_branch_matched":
			return "Invalid input: no union branch matched"
		case "custom_refinement_failed":
			return "Invalid input"
		case "invalid_format":
			return fmt.Sprintf("Invalid %v", data["format"])
		case "not_multiple_of":
			return fmt.Sprintf("Number must be a multiple of %v", data["multipleOf"])
		case "not_finite":
			return "Number must be finite"
		case "parse_error":
			return "parse error"
		case "duplicate_key":
			return "duplicate key"
		case "too_deep":
			return "maximum nesting depth exceeded"
		case "dependency_unavailable":
			return "dependency unavailable"
		}
	}
	return code
}

func has(data map[string]any, k string) bool {
	_, ok := data[k]
	return ok
}

// subject names what a size constraint applies to ("Number", "String length", ...).
func subject(data map[string]any) any {
	if s, ok := data["subject"]; ok {
		return s
	}
	return "Value"
}

func cmp(data map[string]any, inclusive, exclusive string) string {
	if inc, ok := data["inclusive"].(bool); ok && !inc {
		return exclusive
	}
	return inclusive
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
	SetTranslator(dictTranslator{lang: lang})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]any) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
