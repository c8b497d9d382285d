package schemas

import (
	"errors"
	"strings"
)

// ErrNoJSONObject - в ответе модели не найден JSON-объект.
var ErrNoJSONObject = errors.New("no JSON object found in model output")

// ExtractJSONObject вырезает JSON-объект из сырого ответа модели.
// Снимает markdown-ограждения и берет срез от первой '{' до последней '}' -
// модели нередко игнорируют запрет на сопроводительный текст.
func ExtractJSONObject(raw string) (string, error) {
	cleaned := stripCodeFences(raw)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end == -1 || end < start {
		return "", ErrNoJSONObject
	}
	return cleaned[start : end+1], nil
}

// stripCodeFences убирает маркеры ```json / ``` по краям ответа.
func stripCodeFences(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		// Отрезаем первую строку с открывающим ограждением (```json и т.п.)
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			s = strings.TrimPrefix(s, "```")
		}
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
