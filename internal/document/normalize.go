package document

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/propozzals/proposal-backend/internal/models"
)

// Дефолты канонического представления. Пустые обязательные поля не
// ошибка на этапе рендеринга: предпросмотр всегда что-то показывает.
const (
	DefaultCompanyName    = "Your Company"
	DefaultCompanyTagline = "Professional Services"
	DefaultClientName     = "Client Name"
	DefaultTotal          = "800€"
	DefaultValidUntil     = "2025-08-21"
)

// CanonicalView — нормализованное представление документа. Единственный
// вход для всех билдеров секций, обоих путей рендеринга и отпечатка.
// Никаких скрытых недетерминированных полей (дата и номер предложения
// живут в template.RenderContext, а не здесь).
type CanonicalView struct {
	Company CompanyView `json:"company"`
	Client  ClientView  `json:"client"`

	ScopeParagraphs []string `json:"scopeParagraphs"`
	Timeline        string   `json:"timeline"`
	Deliverables    string   `json:"deliverables"`

	Items      []LineItem `json:"items"`
	Total      string     `json:"total"`
	ValidUntil string     `json:"validUntil"`

	TermsParagraphs []string `json:"termsParagraphs"`
}

type CompanyView struct {
	Name    string `json:"name"`
	Tagline string `json:"tagline"`
	Logo    string `json:"logo"`
	Initial string `json:"initial"`
}

type ClientView struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// paragraphSplit — два и более подряд идущих перевода строки.
var paragraphSplit = regexp.MustCompile(`\n{2,}`)

// Normalize приводит сырой документ к каноническому виду. Чистая функция:
// одинаковый вход всегда даёт одинаковый результат, отсутствующие поля
// заменяются дефолтами, мусорные строки тихо выбрасываются.
func Normalize(raw models.RawDocument) CanonicalView {
	view := CanonicalView{
		Company: CompanyView{
			Name:    fallback(raw.Company.Name, DefaultCompanyName),
			Tagline: fallback(strings.TrimSpace(raw.Company.Tagline), DefaultCompanyTagline),
			Logo:    strings.TrimSpace(raw.Company.Logo),
			Initial: companyInitial(raw.Company.Name),
		},
		Client: ClientView{
			Name:    fallback(raw.Client.Name, DefaultClientName),
			Email:   strings.TrimSpace(raw.Client.Email),
			Phone:   strings.TrimSpace(raw.Client.Phone),
			Address: strings.TrimSpace(raw.Client.Address),
		},
		ScopeParagraphs: SplitParagraphs(raw.Project.Scope),
		Timeline:        strings.TrimSpace(raw.Project.Timeline),
		Deliverables:    strings.TrimSpace(raw.Project.Deliverables),
		Items:           ParseItems(raw.Pricing.Items),
		Total:           fallback(raw.Pricing.Total, DefaultTotal),
		TermsParagraphs: SplitParagraphs(raw.Terms),
	}

	// Дата валидности исторически жила и в pricing, и на верхнем уровне.
	validUntil := strings.TrimSpace(raw.Pricing.ValidUntil)
	if validUntil == "" {
		validUntil = strings.TrimSpace(raw.ValidUntil)
	}
	view.ValidUntil = fallback(validUntil, DefaultValidUntil)

	return view
}

// SplitParagraphs режет свободный текст на абзацы по пустым строкам.
// Текст из одних пробелов даёт пустой срез, а не ошибку.
func SplitParagraphs(text string) []string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return []string{}
	}

	parts := paragraphSplit.Split(trimmed, -1)
	paragraphs := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}

// companyInitial возвращает первую букву названия компании заглавной.
// Пустое название даёт "C" — плейсхолдер логотипа.
func companyInitial(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "C"
	}
	runes := []rune(trimmed)
	return string(unicode.ToUpper(runes[0]))
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}
