package models

// RawDocument — сырые данные формы редактора, как их прислал клиент.
// Все поля опциональны: нормализатор обязан переживать любой частичный
// или полностью пустой документ.
type RawDocument struct {
	Company Company `json:"company"`
	Client  Client  `json:"client"`
	Project Project `json:"project"`
	Pricing Pricing `json:"pricing"`

	// Терм-текст и дата валидности исторически жили на верхнем уровне.
	Terms      string `json:"terms,omitempty"`
	ValidUntil string `json:"valid_until,omitempty"`
}

type Company struct {
	Name    string `json:"name,omitempty"`
	Tagline string `json:"tagline,omitempty"`
	Logo    string `json:"logo,omitempty"`
}

type Client struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

type Project struct {
	Title        string `json:"title,omitempty"`
	Scope        string `json:"scope,omitempty"`
	Timeline     string `json:"timeline,omitempty"`
	Deliverables string `json:"deliverables,omitempty"`
}

// Pricing хранит строки позиций как текст с разделителями; структурные
// позиции всегда производные (см. document.ParseItems).
type Pricing struct {
	Items      string `json:"items,omitempty"`
	Total      string `json:"total,omitempty"`
	ValidUntil string `json:"validUntil,omitempty"`
}
