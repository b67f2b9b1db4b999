package document

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// fingerprintPayload — сериализуемая пара {templateId, data}.
// Порядок ключей фиксирован структурой, поэтому отпечаток детерминирован.
type fingerprintPayload struct {
	TemplateID string        `json:"templateId"`
	Data       CanonicalView `json:"data"`
}

// Fingerprint считает SHA-256 отпечаток текущего шаблона и данных.
// Используется только для отображения изменений, не для безопасности.
// Отпечаток меняется тогда и только тогда, когда меняется сериализованное
// содержимое: никаких дат и случайных номеров внутри.
func Fingerprint(templateID string, view CanonicalView) (string, error) {
	payload, err := json.Marshal(fingerprintPayload{
		TemplateID: templateID,
		Data:       view,
	})
	if err != nil {
		return "", fmt.Errorf("document: не удалось сериализовать отпечаток: %w", err)
	}

	digest := sha256.Sum256(payload)
	return hex.EncodeToString(digest[:]), nil
}
