package document

import (
	"strings"
)

// LineItem — одна позиция сметы, производная от текстовой строки
// вида "Описание — цена". Структурно позиции нигде не хранятся.
type LineItem struct {
	Description string `json:"description"`
	Price       string `json:"price"`
}

// ParseItems разбирает текст позиций построчно. Каждая строка делится по
// первому длинному или короткому тире: слева описание, всё остальное —
// цена (внутренние em-тире цены схлопываются в дефис, как в редакторе).
// Строки без тире и строки с пустым описанием выбрасываются молча:
// кривой ввод — это пропуск, а не ошибка.
func ParseItems(text string) []LineItem {
	if strings.TrimSpace(text) == "" {
		return []LineItem{}
	}

	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	items := make([]LineItem, 0, len(lines))
	for _, line := range lines {
		unified := strings.ReplaceAll(line, "—", "-")
		desc, price, found := strings.Cut(unified, "-")
		if !found {
			continue
		}

		desc = strings.TrimSpace(desc)
		if desc == "" {
			continue
		}
		items = append(items, LineItem{
			Description: desc,
			Price:       strings.TrimSpace(price),
		})
	}
	return items
}

// SerializeItems собирает позиции обратно в текст с em-тире.
// Закон round-trip: ParseItems(SerializeItems(items)) == items для
// позиций, чьё описание не содержит тире.
func SerializeItems(items []LineItem) string {
	if len(items) == 0 {
		return ""
	}

	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(item.Description)
		b.WriteString(" — ")
		b.WriteString(item.Price)
	}
	return b.String()
}
