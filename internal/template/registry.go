package template

import (
	"github.com/propozzals/proposal-backend/internal/document"
)

// DefaultTemplateID — дефолтный шаблон; любой неизвестный или пустой
// идентификатор резолвится в него.
const DefaultTemplateID = "proposal-modern-01"

// Descriptor — неизменяемое описание шаблона: идентификатор, название,
// тема и общая схема полей. Реестр фиксируется на старте процесса,
// динамической регистрации нет.
type Descriptor struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Theme  Theme   `json:"theme"`
	Schema *Schema `json:"schema"`
}

// BuildSections строит секции документа в теме этого шаблона.
func (d *Descriptor) BuildSections(view document.CanonicalView, rc RenderContext) []Section {
	return BuildSections(view, d.Theme, rc)
}

// Порядок объявления определяет порядок выдачи List().
var registryOrder = []*Descriptor{
	{ID: "proposal-modern-01", Title: "Modern Professional", Theme: themeModern, Schema: sharedSchema},
	{ID: "proposal-minimal-01", Title: "Minimal Executive", Theme: themeMinimal, Schema: sharedSchema},
	{ID: "proposal-elegant-01", Title: "Elegant Accent", Theme: themeElegant, Schema: sharedSchema},
	{ID: "proposal-corporate-01", Title: "Corporate Business", Theme: themeCorporate, Schema: sharedSchema},
	{ID: "proposal-ultramin-01", Title: "Ultra Minimal", Theme: themeUltraMinimal, Schema: sharedSchema},
	{ID: "proposal-luxury-01", Title: "Luxury Premium", Theme: themeLuxury, Schema: sharedSchema},
}

var registry = func() map[string]*Descriptor {
	m := make(map[string]*Descriptor, len(registryOrder))
	for _, d := range registryOrder {
		m[d.ID] = d
	}
	return m
}()

// Resolve возвращает дескриптор по идентификатору. Неизвестный или пустой
// id всегда даёт один и тот же дефолтный дескриптор, без побочных эффектов.
func Resolve(id string) *Descriptor {
	if d, ok := registry[id]; ok {
		return d
	}
	return registry[DefaultTemplateID]
}

// Lookup возвращает дескриптор и признак того, что id был известен.
func Lookup(id string) (*Descriptor, bool) {
	d, ok := registry[id]
	return d, ok
}

// List возвращает все зарегистрированные шаблоны в фиксированном порядке.
func List() []*Descriptor {
	out := make([]*Descriptor, len(registryOrder))
	copy(out, registryOrder)
	return out
}
