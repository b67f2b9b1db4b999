package template

// Theme — визуальные параметры одного стиля. Билдер секций один на все
// шаблоны; темы меняют только оформление, но не состав и порядок блоков
// (контракт содержимого проверяется тестами на каждый зарегистрированный
// шаблон).
type Theme struct {
	Name string `json:"name"`

	// Цвета в hex: акцентные элементы, градиенты, подложки.
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Accent    string `json:"accent"`
	Muted     string `json:"muted"`

	// Типографика и характер оформления.
	FontFamily        string `json:"fontFamily"`
	UppercaseHeadings bool   `json:"uppercaseHeadings"`
	Outlined          bool   `json:"outlined"` // рамки вместо теней
	Spacious          bool   `json:"spacious"` // увеличенные отступы
}

// Семь цветовых схем исходных шаблонов, приведённые к hex-значениям.
var (
	themeModern = Theme{
		Name:       "modern",
		Primary:    "#2563eb",
		Secondary:  "#1d4ed8",
		Accent:     "#eff6ff",
		Muted:      "#4b5563",
		FontFamily: "Arial, sans-serif",
	}

	themeMinimal = Theme{
		Name:       "minimal",
		Primary:    "#111827",
		Secondary:  "#374151",
		Accent:     "#f9fafb",
		Muted:      "#6b7280",
		FontFamily: "Helvetica, Arial, sans-serif",
		Spacious:   true,
	}

	themeElegant = Theme{
		Name:       "elegant",
		Primary:    "#9333ea",
		Secondary:  "#7e22ce",
		Accent:     "#faf5ff",
		Muted:      "#4b5563",
		FontFamily: "Georgia, 'Times New Roman', serif",
	}

	themeCorporate = Theme{
		Name:              "corporate",
		Primary:           "#0d9488",
		Secondary:         "#0f766e",
		Accent:            "#f0fdfa",
		Muted:             "#374151",
		FontFamily:        "Arial, sans-serif",
		UppercaseHeadings: true,
		Outlined:          true,
	}

	themeUltraMinimal = Theme{
		Name:       "ultra-minimal",
		Primary:    "#404040",
		Secondary:  "#525252",
		Accent:     "#fafafa",
		Muted:      "#737373",
		FontFamily: "Helvetica, Arial, sans-serif",
		Spacious:   true,
		Outlined:   true,
	}

	themeLuxury = Theme{
		Name:              "luxury",
		Primary:           "#b45309",
		Secondary:         "#92400e",
		Accent:            "#fffbeb",
		Muted:             "#57534e",
		FontFamily:        "Georgia, 'Times New Roman', serif",
		UppercaseHeadings: true,
	}
)
