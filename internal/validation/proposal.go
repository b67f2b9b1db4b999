package validation

import (
	"fmt"
	"strings"

	"github.com/propozzals/proposal-backend/internal/models"
	"github.com/propozzals/proposal-backend/internal/template"
)

// Result — итог проверки обязательных полей перед экспортом.
type Result struct {
	IsValid              bool              `json:"isValid"`
	MissingFields        []string          `json:"missingFields"`
	Errors               map[string]string `json:"errors"`
	RequiredFieldsCount  int               `json:"requiredFieldsCount"`
	CompletedFieldsCount int               `json:"completedFieldsCount"`
}

// ValidateProposal проверяет все обязательные поля схемы шаблона.
// Пока документ невалиден, экспорт запрещён, а не просто предупреждён.
func ValidateProposal(raw models.RawDocument, schema *template.Schema) Result {
	result := Result{
		MissingFields: []string{},
		Errors:        map[string]string{},
	}

	for _, field := range schema.Fields {
		if !field.Required {
			continue
		}
		result.RequiredFieldsCount++

		value := valueByPath(raw, field.Key)
		if strings.TrimSpace(value) == "" {
			result.MissingFields = append(result.MissingFields, field.Label)
			result.Errors[field.Key] = field.Label + " is required"
		}
	}

	result.CompletedFieldsCount = result.RequiredFieldsCount - len(result.MissingFields)
	result.IsValid = len(result.MissingFields) == 0
	return result
}

// Message возвращает человекочитаемую сводку проверки.
func Message(result Result) string {
	if result.IsValid {
		return "All required fields completed"
	}
	if len(result.MissingFields) == 1 {
		return "Please complete: " + result.MissingFields[0]
	}

	preview := result.MissingFields
	suffix := ""
	if len(preview) > 2 {
		preview = preview[:2]
		suffix = "..."
	}
	return fmt.Sprintf("Please complete %d required fields: %s%s",
		len(result.MissingFields), strings.Join(preview, ", "), suffix)
}

// CanExport сообщает, разрешён ли чистый экспорт.
func CanExport(raw models.RawDocument, schema *template.Schema) bool {
	return ValidateProposal(raw, schema).IsValid
}

// HasEssentialContent проверяет минимум для бесплатного экспорта с
// водяным знаком: хотя бы одно содержательное поле заполнено.
func HasEssentialContent(raw models.RawDocument) bool {
	for _, v := range []string{
		raw.Company.Name,
		raw.Client.Name,
		raw.Project.Scope,
		raw.Pricing.Items,
	} {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}

// valueByPath достаёт значение поля по dot-пути схемы. Схема фиксирована
// на старте, поэтому неизвестный путь — это пустое значение, а не ошибка.
func valueByPath(raw models.RawDocument, key string) string {
	switch key {
	case "company.name":
		return raw.Company.Name
	case "company.tagline":
		return raw.Company.Tagline
	case "company.logo":
		return raw.Company.Logo
	case "client.name":
		return raw.Client.Name
	case "client.email":
		return raw.Client.Email
	case "client.phone":
		return raw.Client.Phone
	case "client.address":
		return raw.Client.Address
	case "project.title":
		return raw.Project.Title
	case "project.scope":
		return raw.Project.Scope
	case "project.timeline":
		return raw.Project.Timeline
	case "project.deliverables":
		return raw.Project.Deliverables
	case "pricing.items":
		return raw.Pricing.Items
	case "pricing.total":
		return raw.Pricing.Total
	case "pricing.validUntil":
		if raw.Pricing.ValidUntil != "" {
			return raw.Pricing.ValidUntil
		}
		return raw.ValidUntil
	case "terms":
		return raw.Terms
	default:
		return ""
	}
}
