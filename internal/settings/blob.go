package settings

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Вставки из документации часто являются объектными литералами JS, а не строгим JSON:
// ключи без кавычек, одинарные кавычки, висячая запятая перед закрывающей скобкой.
var (
	reBareKeys      = regexp.MustCompile(`([{,]\s*)([A-Za-z_$][A-Za-z0-9_$]*)\s*:`)
	reSingleQuotes  = regexp.MustCompile(`'([^']*)'`)
	reTrailingComma = regexp.MustCompile(`,\s*([}\]])`)
)

// Repair пытается разобрать вставленный текст конфигурации как JSON-объект.
// Сначала строгий разбор; при неудаче — три текстовые нормализации и повторная
// попытка. Вторая неудача означает «валидной конфигурации нет»: возвращаем (nil, false).
// Никогда не паникует и не возвращает ошибку наружу.
//
// Нормализации эвристические: на глубоко вложенном или необычном входе возможен
// неверный результат, для вставок из консоли Firebase этого достаточно.
func Repair(raw string) (map[string]any, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}

	if m, ok := tryParse(raw); ok {
		return m, true
	}

	fixed := reBareKeys.ReplaceAllString(raw, `${1}"${2}":`)
	fixed = reSingleQuotes.ReplaceAllString(fixed, `"$1"`)
	fixed = reTrailingComma.ReplaceAllString(fixed, `$1`)

	if m, ok := tryParse(fixed); ok {
		return m, true
	}
	return nil, false
}

func tryParse(s string) (map[string]any, bool) {
	var m map[string]any
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return nil, false
	}
	if m == nil {
		return nil, false
	}
	return m, true
}
