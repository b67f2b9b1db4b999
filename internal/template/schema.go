package template

import "github.com/propozzals/proposal-backend/internal/models"

// Field — описание одного поля формы редактора. Key — dot-путь внутри
// сырого документа, по нему же валидатор достаёт значения.
type Field struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Type     string `json:"type"`
	Required bool   `json:"required,omitempty"`
	Rows     int    `json:"rows,omitempty"`
}

// Schema — список полей и дефолтные данные. Все шаблоны делят одну схему:
// переключение шаблона меняет оформление, но не данные.
type Schema struct {
	Fields      []Field            `json:"fields"`
	DefaultData models.RawDocument `json:"defaultData"`
}

// sharedSchema — единственная схема всех зарегистрированных шаблонов.
var sharedSchema = &Schema{
	Fields: []Field{
		{Key: "company.name", Label: "Company Name", Type: "text", Required: true},
		{Key: "company.tagline", Label: "Tagline", Type: "text"},
		{Key: "company.logo", Label: "Logo URL", Type: "url"},
		{Key: "client.name", Label: "Client Name", Type: "text", Required: true},
		{Key: "client.email", Label: "Email", Type: "email"},
		{Key: "client.phone", Label: "Phone", Type: "tel"},
		{Key: "client.address", Label: "Address", Type: "textarea", Rows: 2},
		{Key: "project.scope", Label: "Project Scope", Type: "textarea", Required: true, Rows: 8},
		{Key: "project.timeline", Label: "Timeline", Type: "text"},
		{Key: "project.deliverables", Label: "Deliverables", Type: "textarea", Rows: 4},
		{Key: "pricing.items", Label: "Line Items", Type: "textarea", Required: true, Rows: 6},
		{Key: "pricing.total", Label: "Total Amount", Type: "text", Required: true},
		{Key: "pricing.validUntil", Label: "Valid Until", Type: "date"},
		{Key: "terms", Label: "Terms & Conditions", Type: "textarea", Rows: 5},
	},
	DefaultData: models.RawDocument{
		Company: models.Company{Name: "", Tagline: "", Logo: ""},
		Client:  models.Client{Name: "", Email: "", Phone: "", Address: ""},
		Project: models.Project{Title: "", Scope: "", Timeline: "", Deliverables: ""},
		Pricing: models.Pricing{Items: "", Total: "", ValidUntil: ""},
	},
}
