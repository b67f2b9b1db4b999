package compose

import (
	"github.com/propozzals/proposal-backend/internal/template"
)

// Геометрия страницы: ширина A4 при 96 DPI, естественная высота.
// Документ рендерится одной растущей страницей (разбиение на страницы
// фиксированной высоты сознательно вне объёма).
const (
	DefaultPageWidthPx   = 794
	DefaultPagePaddingPx = 36

	// WatermarkLabel — диагональная надпись бесплатного экспорта.
	WatermarkLabel = "PROPOZZALS"
)

// Options — параметры компоновки. Нулевые размеры заменяются дефолтами.
type Options struct {
	PageWidthPx   int
	PagePaddingPx int
	FontFamily    string
	Watermark     bool
}

// Page — итог компоновки: отфильтрованная последовательность секций
// внутри одного страничного контейнера. Единственный путь рендеринга:
// и интерактивный предпросмотр, и экспортная разметка строятся из
// одного и того же Page.
type Page struct {
	WidthPx    int                `json:"widthPx"`
	PaddingPx  int                `json:"paddingPx"`
	FontFamily string             `json:"fontFamily,omitempty"`
	Watermark  bool               `json:"watermark"`
	EmptyState bool               `json:"emptyState"`
	Sections   []template.Section `json:"sections"`
}

// Compose собирает секции в страницу. Пустые секции отбрасываются по их
// собственному признаку IsEmpty; если не осталось ни одной, страница
// получает единственный блок-заглушку — документ никогда не рендерится
// буквально в ничто. Результат детерминирован: одинаковые секции и опции
// дают структурно идентичную страницу в обоих путях рендеринга.
func Compose(sections []template.Section, opts Options) Page {
	page := Page{
		WidthPx:    opts.PageWidthPx,
		PaddingPx:  opts.PagePaddingPx,
		FontFamily: opts.FontFamily,
		Watermark:  opts.Watermark,
	}
	if page.WidthPx <= 0 {
		page.WidthPx = DefaultPageWidthPx
	}
	if page.PaddingPx <= 0 {
		page.PaddingPx = DefaultPagePaddingPx
	}

	kept := make([]template.Section, 0, len(sections))
	for _, s := range sections {
		if s.IsEmpty() {
			continue
		}
		kept = append(kept, s)
	}

	if len(kept) == 0 {
		page.EmptyState = true
		page.Sections = []template.Section{emptyStateSection()}
		return page
	}

	page.Sections = kept
	return page
}

// emptyStateSection — заглушка пустого документа.
func emptyStateSection() template.Section {
	return template.Section{
		Key: "empty-state",
		Root: template.El("section", "ppz-empty",
			template.Text("p", "empty-hint", template.EmptyStateHint),
		),
	}
}
