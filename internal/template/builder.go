package template

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/propozzals/proposal-backend/internal/document"
)

// RenderContext — сгенерированные на один рендер значения: дата и номер
// предложения. Вычисляются один раз на запрос и передаются в оба пути
// рендеринга, чтобы предпросмотр и экспорт совпадали байт в байт.
// В отпечаток документа они не входят.
type RenderContext struct {
	GeneratedDate string `json:"generatedDate"`
	ProposalRef   string `json:"proposalRef"`
}

// NewRenderContext создаёт контекст рендеринга на текущий момент.
func NewRenderContext(now time.Time) RenderContext {
	ref := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return RenderContext{
		GeneratedDate: now.Format("January 2, 2006"),
		ProposalRef:   ref,
	}
}

// BuildSections — единственный параметризованный билдер секций. Исходные
// шаблоны были шестью почти одинаковыми копиями; здесь различия вынесены
// в Theme. Порядок блоков фиксирован для любого шаблона: header, scope,
// pricing, terms. Билдер чистый: никакого глобального состояния, всё
// оформление приходит через тему.
func BuildSections(view document.CanonicalView, th Theme, rc RenderContext) []Section {
	b := &builder{view: view, theme: th, rc: rc}
	b.addHeader()
	b.addScope()
	b.addPricing()
	b.addTerms()
	return b.sections
}

type builder struct {
	view     document.CanonicalView
	theme    Theme
	rc       RenderContext
	sections []Section
}

func (b *builder) push(key string, root Node) {
	b.sections = append(b.sections, NewSection(key, root))
}

// panelClass — подложка блока: рамка или тень в зависимости от темы.
func (b *builder) panelClass() string {
	if b.theme.Outlined {
		return "panel panel-outlined"
	}
	return "panel panel-shadow"
}

// heading применяет типографику темы к заголовку блока.
func (b *builder) heading(text string) string {
	if b.theme.UppercaseHeadings {
		return strings.ToUpper(text)
	}
	return text
}

// sectionHeader — заголовок блока с акцентной полосой.
func (b *builder) sectionHeader(title string) Node {
	return El("div", "section-header",
		Styled("div", "accent-bar", "background:"+b.theme.Primary),
		Text("h2", "section-title", b.heading(title)),
	)
}

func (b *builder) addHeader() {
	company := b.view.Company
	client := b.view.Client

	var logo Node
	if company.Logo != "" {
		logo = Node{Tag: "img", Class: "logo", Src: company.Logo}
	} else {
		logo = Styled("div", "logo logo-initial",
			gradient(b.theme.Primary, b.theme.Secondary),
			Text("span", "logo-letter", company.Initial),
		)
	}

	identity := El("div", "row gap-3",
		logo,
		El("div", "",
			Text("h1", "company-name", company.Name),
			Text("p", "tagline", company.Tagline),
		),
	)

	badge := El("div", "text-right",
		StyledText("div", "badge", gradient(b.theme.Primary, b.theme.Secondary), b.heading("Project Proposal")),
		Text("div", "proposal-ref", "#"+b.rc.ProposalRef),
	)

	meta := Styled("div", "header-meta", "background:"+b.theme.Accent,
		El("div", "",
			Text("p", "meta-label", b.heading("Prepared for")),
			Text("p", "meta-value", client.Name),
		),
		El("div", "text-right",
			Text("p", "meta-label", b.heading("Date")),
			Text("p", "meta-value", b.rc.GeneratedDate),
		),
	)

	b.push("header", El("section", "header",
		El("div", "row space-between mb-6", identity, badge),
		meta,
	))
}

func (b *builder) addScope() {
	b.push("scope-title", El("section", "", b.sectionHeader("Project Scope")))

	if len(b.view.ScopeParagraphs) == 0 {
		b.push("scope-empty", El("section", "",
			Styled("div", "empty-state", "background:"+b.theme.Accent,
				Text("p", "empty-hint", "Add your project scope details here"),
			),
		))
	} else {
		for i, paragraph := range b.view.ScopeParagraphs {
			b.push(fmt.Sprintf("scope-%d", i), El("section", "",
				Text("p", "paragraph", paragraph),
			))
		}
	}

	// Сроки и состав поставки — опциональные строки внутри блока scope,
	// одинаковые для всех тем.
	if b.view.Timeline != "" || b.view.Deliverables != "" {
		details := El("div", "detail-grid")
		if b.view.Timeline != "" {
			details.Children = append(details.Children, El("div", "detail-cell",
				Text("p", "meta-label", b.heading("Timeline")),
				Text("p", "detail-text", b.view.Timeline),
			))
		}
		if b.view.Deliverables != "" {
			details.Children = append(details.Children, El("div", "detail-cell",
				Text("p", "meta-label", b.heading("Deliverables")),
				Text("p", "detail-text", b.view.Deliverables),
			))
		}
		b.push("scope-details", El("section", "", details))
	}
}

func (b *builder) addPricing() {
	inner := []Node{b.sectionHeader("Investment Summary")}

	if len(b.view.Items) == 0 {
		inner = append(inner, Styled("div", "empty-state", "background:"+b.theme.Accent,
			Text("p", "empty-hint", "Add pricing line items to build the investment table"),
		))
	} else {
		rows := make([]Node, 0, len(b.view.Items)+2)
		rows = append(rows, Styled("tr", "pricing-head", gradient(b.theme.Primary, b.theme.Secondary),
			Text("th", "cell text-left", b.heading("Service Description")),
			Text("th", "cell text-right", b.heading("Investment")),
		))
		for _, item := range b.view.Items {
			rows = append(rows, El("tr", "pricing-row",
				Text("td", "cell", item.Description),
				Text("td", "cell text-right bold", item.Price),
			))
		}
		rows = append(rows, Styled("tr", "pricing-total", "background:"+b.theme.Accent,
			Text("td", "cell bold", b.heading("Total Investment")),
			Text("td", "cell text-right bold", b.view.Total),
		))
		inner = append(inner, El("div", "table-wrap", El("table", "pricing-table", rows...)))
	}

	inner = append(inner, El("div", "row space-between pricing-footer",
		Text("span", "muted", "Valid until: "+b.view.ValidUntil),
		Text("span", "muted", "Terms & conditions apply"),
	))

	b.push("pricing", El("section", "", El("div", b.panelClass(), inner...)))
}

// Дефолтные условия, когда пользователь не написал свои.
var boilerplateTerms = [][2]string{
	{"Payment Terms", "50% upfront payment required. Remaining 50% due upon completion."},
	{"Timeline", "Estimated 3-4 weeks from project kickoff."},
	{"Revisions", "Two rounds of revisions included in the price."},
	{"Deliverables", "All source files and documentation provided."},
}

func (b *builder) addTerms() {
	inner := []Node{b.sectionHeader("Terms & Conditions")}

	if len(b.view.TermsParagraphs) > 0 {
		for _, paragraph := range b.view.TermsParagraphs {
			inner = append(inner, Text("p", "paragraph terms-paragraph", paragraph))
		}
	} else {
		grid := El("div", "detail-grid")
		for _, term := range boilerplateTerms {
			grid.Children = append(grid.Children, El("div", "detail-cell",
				Styled("div", "term-dot", "background:"+b.theme.Primary),
				El("div", "",
					Text("h4", "term-title", term[0]),
					Text("p", "detail-text", term[1]),
				),
			))
		}
		inner = append(inner, grid)
	}

	b.push("terms", El("section", "", El("div", b.panelClass(), inner...)))
}

func gradient(from, to string) string {
	return "background:linear-gradient(135deg, " + from + ", " + to + ")"
}
