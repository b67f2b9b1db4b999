package compose

import (
	"fmt"
	"html"
	htmltemplate "html/template"
	"strings"

	"github.com/propozzals/proposal-backend/internal/template"
)

// standaloneDoc — самодостаточный HTML документ для внешнего PDF-сервиса:
// все стили инлайнятся, внешних ресурсов нет, браузерные API не нужны.
const standaloneDoc = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>{{.CSS}}</style>
</head>
<body>
<div class="ppz-pages">
<div class="ppz-page" style="width:{{.WidthPx}}px;padding:{{.PaddingPx}}px{{with .FontFamily}};font-family:{{.}}{{end}}">
{{if .Watermark}}<div class="ppz-watermark">{{.WatermarkLabel}}</div>
{{end}}{{.Body}}</div>
</div>
</body>
</html>
`

var standaloneTpl = htmltemplate.Must(htmltemplate.New("standalone").Parse(standaloneDoc))

type standaloneData struct {
	CSS            htmltemplate.CSS
	WidthPx        int
	PaddingPx      int
	FontFamily     htmltemplate.CSS
	Watermark      bool
	WatermarkLabel string
	Body           htmltemplate.HTML
}

// RenderStandalone сериализует скомпонованную страницу в статическую
// разметку. Вывод детерминирован: одинаковый Page даёт одинаковую строку.
func RenderStandalone(page Page) (string, error) {
	var body strings.Builder
	for i, section := range page.Sections {
		class := "ppz-section"
		if i == len(page.Sections)-1 {
			class = "ppz-section ppz-section-last"
		}
		body.WriteString(`<div class="` + class + `">`)
		renderNode(section.Root, &body)
		body.WriteString("</div>\n")
	}

	var out strings.Builder
	err := standaloneTpl.Execute(&out, standaloneData{
		CSS:            htmltemplate.CSS(stylesheet),
		WidthPx:        page.WidthPx,
		PaddingPx:      page.PaddingPx,
		FontFamily:     htmltemplate.CSS(page.FontFamily),
		Watermark:      page.Watermark,
		WatermarkLabel: WatermarkLabel,
		Body:           htmltemplate.HTML(body.String()),
	})
	if err != nil {
		return "", fmt.Errorf("compose: не удалось отрендерить документ: %w", err)
	}
	return out.String(), nil
}

// voidTags — элементы без закрывающего тега.
var voidTags = map[string]struct{}{
	"img": {},
	"br":  {},
	"hr":  {},
}

// renderNode пишет узел дерева как HTML. Текст и значения атрибутов
// экранируются; имена тегов приходят только из билдеров.
func renderNode(n template.Node, b *strings.Builder) {
	b.WriteByte('<')
	b.WriteString(n.Tag)
	if n.Class != "" {
		b.WriteString(` class="`)
		b.WriteString(html.EscapeString(n.Class))
		b.WriteByte('"')
	}
	if n.Style != "" {
		b.WriteString(` style="`)
		b.WriteString(html.EscapeString(n.Style))
		b.WriteByte('"')
	}
	if n.Src != "" {
		b.WriteString(` src="`)
		b.WriteString(html.EscapeString(n.Src))
		b.WriteByte('"')
	}
	b.WriteByte('>')

	if _, void := voidTags[n.Tag]; void {
		return
	}

	if n.Text != "" {
		b.WriteString(html.EscapeString(n.Text))
	}
	for _, child := range n.Children {
		renderNode(child, b)
	}

	b.WriteString("</")
	b.WriteString(n.Tag)
	b.WriteByte('>')
}
