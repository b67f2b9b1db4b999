package template

import "strings"

// Плейсхолдеры, которые считаются пустым содержимым при фильтрации.
// EmptyStateHint — текст страницы-заглушки пустого документа.
const EmptyStateHint = "Fill in the form to see your proposal"

var placeholderSentinels = map[string]struct{}{
	"":             {},
	"—":            {},
	"PROPOZZALS":   {},
	EmptyStateHint: {},
}

// Node — узел дерева рендеринга. Дерево сериализуется и в JSON для
// интерактивного предпросмотра, и в статический HTML для PDF-сервиса;
// оба пути обязаны видеть один и тот же Node.
type Node struct {
	Tag      string `json:"tag"`
	Class    string `json:"class,omitempty"`
	Style    string `json:"style,omitempty"`
	Text     string `json:"text,omitempty"`
	Src      string `json:"src,omitempty"`
	Children []Node `json:"children,omitempty"`
}

// Section — непрозрачный упорядочиваемый блок содержимого, который
// билдер шаблона отдаёт компоновщику. Компоновщик и рендерер обязаны
// обращаться со всеми секциями одинаково вне зависимости от шаблона.
type Section struct {
	Key  string `json:"key"`
	Root Node   `json:"root"`

	empty bool
}

// NewSection создаёт секцию и сразу вычисляет признак пустоты, чтобы
// фильтрация не разглядывала форму дерева (признак — явная способность
// секции, а не утиная типизация содержимого).
func NewSection(key string, root Node) Section {
	return Section{
		Key:   key,
		Root:  root,
		empty: isBlank(textContent(root)),
	}
}

// IsEmpty сообщает, должна ли секция быть отфильтрована компоновщиком.
func (s Section) IsEmpty() bool {
	return s.empty
}

// textContent собирает весь текст поддерева.
func textContent(n Node) string {
	var b strings.Builder
	collectText(n, &b)
	return b.String()
}

func collectText(n Node, b *strings.Builder) {
	if t := strings.TrimSpace(n.Text); t != "" {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(t)
	}
	for _, child := range n.Children {
		collectText(child, b)
	}
}

func isBlank(text string) bool {
	_, sentinel := placeholderSentinels[strings.TrimSpace(text)]
	return sentinel
}

// Короткие конструкторы узлов: билдеры читаются как разметка.

func El(tag, class string, children ...Node) Node {
	return Node{Tag: tag, Class: class, Children: children}
}

func Styled(tag, class, style string, children ...Node) Node {
	return Node{Tag: tag, Class: class, Style: style, Children: children}
}

func Text(tag, class, text string) Node {
	return Node{Tag: tag, Class: class, Text: text}
}

func StyledText(tag, class, style, text string) Node {
	return Node{Tag: tag, Class: class, Style: style, Text: text}
}
