package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseItems_EmDashAndHyphen(t *testing.T) {
	items := ParseItems("Design — 500€\nDevelopment - 1200€")

	assert.Equal(t, []LineItem{
		{Description: "Design", Price: "500€"},
		{Description: "Development", Price: "1200€"},
	}, items)
}

func TestParseItems_SplitsAtFirstDashOnly(t *testing.T) {
	items := ParseItems("Design — Phase 1 — 500€")

	assert.Len(t, items, 1)
	assert.Equal(t, "Design", items[0].Description)
	assert.Equal(t, "Phase 1 - 500€", items[0].Price)
}

func TestParseItems_DropsMalformedLines(t *testing.T) {
	items := ParseItems("no dash here")
	assert.Empty(t, items)

	items = ParseItems(" — 300€\nDesign — 500€\n\n")
	assert.Equal(t, []LineItem{{Description: "Design", Price: "500€"}}, items)
}

func TestParseItems_WindowsLineBreaks(t *testing.T) {
	items := ParseItems("Design — 500€\r\nSupport — 300€")
	assert.Len(t, items, 2)
	assert.Equal(t, "Support", items[1].Description)
}

func TestParseItems_Whitespace(t *testing.T) {
	assert.Empty(t, ParseItems("   \n  "))
	assert.Empty(t, ParseItems(""))
}

func TestSerializeItems_RoundTrip(t *testing.T) {
	items := []LineItem{
		{Description: "Design", Price: "500€"},
		{Description: "Support", Price: ""},
	}

	text := SerializeItems(items)
	assert.Equal(t, "Design — 500€\nSupport — ", text)
	assert.Equal(t, items, ParseItems(text))
}
