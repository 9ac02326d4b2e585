package i18n

import (
	"sort"
	"strings"
	"sync"
)

// Translator retrieves localized messages for error codes.
// data provides values for the {placeholders} of the message (for example,
// "property" or "type").
type Translator interface {
	Message(code string, data map[string]string) string
}

var dictionaries = map[string]map[string]string{
	"en": {
		"unsupported_type":   "type of property {property} ({type}) is not supported; valid types are primitive types, objects, and lists of these",
		"property_not_found": "property {property} not found",
		"invalid_cast":       "invalid cast: {value} cannot be cast to type {target}",
		"invalid_name":       "invalid property name {property:q}: names must be non-empty UTF-8 text",
		"invalid_type_name":  "invalid type name {type:q}: type names must be UTF-8 text",
		"serialization":      "serialization error: {reason}",
		"parse_error":        "malformed JSON",
		"missing_field":      "missing 'type' or 'properties' field",
		"invalid_envelope":   "invalid object envelope",
		"duplicate_key":      "duplicate key",
		"max_depth":          "max depth exceeded",
		"truncated":          "max bytes exceeded",
		"overflow":           "number out of range",
		"unknown_key":        "unknown envelope field",
		"invalid_value":      "invalid property value",
	},
	"ja": {
		"unsupported_type":   "プロパティ {property} の型 ({type}) はサポートされていません。プリミティブ型、オブジェクト、およびそれらのリストが使用できます",
		"property_not_found": "プロパティ {property} が見つかりません",
		"invalid_cast":       "不正なキャスト: {value} は型 {target} に変換できません",
		"invalid_name":       "不正なプロパティ名 {property:q}: 名前は空でない UTF-8 文字列である必要があります",
		"invalid_type_name":  "不正な型名 {type:q}: 型名は UTF-8 文字列である必要があります",
		"serialization":      "シリアライズエラー: {reason}",
		"parse_error":        "JSON の形式が不正です",
		"missing_field":      "'type' または 'properties' フィールドがありません",
		"invalid_envelope":   "オブジェクトの形式が不正です",
		"duplicate_key":      "キーが重複しています",
		"max_depth":          "最大深さを超えました",
		"truncated":          "最大バイト数を超えました",
		"overflow":           "数値が範囲外です",
		"unknown_key":        "未知のフィールドです",
		"invalid_value":      "プロパティの値が不正です",
	},
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	tmpl, ok := dictionaries[t.lang][code]
	if !ok {
		if tmpl, ok = dictionaries["en"][code]; !ok {
			return code
		}
	}
	return render(tmpl, data)
}

// render substitutes {key} with data[key] and {key:q} with the quoted value.
func render(tmpl string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(tmpl, "{") {
		return tmpl
	}
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, 4*len(keys))
	for _, k := range keys {
		pairs = append(pairs, "{"+k+":q}", `"`+data[k]+`"`, "{"+k+"}", data[k])
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

var (
	mu                           = sync.RWMutex{}
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if _, ok := dictionaries[lang]; !ok {
		lang = "en"
	}
	SetTranslator(dictTranslator{lang: lang})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version). nil restores the English dictionary.
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
