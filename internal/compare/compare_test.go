package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/princeprakhar/device-catalog/internal/schema"
)

var sections = []schema.Section{
	{ID: "ekran", Title: "Ekran", Fields: []schema.Field{
		{Key: "ekranBoyutu", Label: "Ekran Boyutu"},
		{Key: "ekranTeknolojisi", Label: "Ekran Teknolojisi"},
		{Key: "renkSayisi", Label: "Renk Sayısı"},
	}},
	{ID: "ag", Title: "Ağ", Fields: []schema.Field{
		{Key: "n5g", Label: "5G", Type: schema.FieldBoolean},
	}},
	{ID: "bos", Title: "Boş", Fields: []schema.Field{
		{Key: "x", Label: "X"},
	}},
}

func TestCompare(t *testing.T) {
	a := schema.SectionValues{
		"ekran": {"ekranBoyutu": "6.1", "ekranTeknolojisi": "OLED", "renkSayisi": ""},
		"ag":    {"n5g": true},
	}
	b := schema.SectionValues{
		"ekran": {"ekranBoyutu": "6.7", "renkSayisi": "  "},
		"ag":    {"n5g": false},
	}

	blocks := Compare(a, b, []string{"ag", "ekran", "bos", "missing", "ag"}, sections)
	require.Len(t, blocks, 2)

	assert.Equal(t, "ag", blocks[0].SectionID)
	assert.Equal(t, []Row{{Label: "5G", ValueA: "Var", ValueB: "Yok"}}, blocks[0].Rows)

	assert.Equal(t, "Ekran", blocks[1].SectionTitle)
	assert.Equal(t, []Row{
		{Label: "Ekran Boyutu", ValueA: "6.1", ValueB: "6.7"},
		{Label: "Ekran Teknolojisi", ValueA: "OLED", ValueB: Placeholder},
	}, blocks[1].Rows)
}

func TestCompareNothingSelected(t *testing.T) {
	blocks := Compare(schema.SectionValues{}, schema.SectionValues{}, nil, sections)
	assert.NotNil(t, blocks)
	assert.Empty(t, blocks)
}

func TestParsePair(t *testing.T) {
	tests := []struct {
		in     string
		a, b   string
		wantOK bool
	}{
		{"samsung-galaxy-s24-vs-apple-iphone-15", "samsung-galaxy-s24", "apple-iphone-15", true},
		{"a--b", "a", "b", true},
		{"-vs-b", "", "", false},
		{"a-vs-", "", "", false},
		{"single", "", "", false},
	}
	for _, tt := range tests {
		a, b, ok := ParsePair(tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
		assert.Equal(t, tt.a, a, tt.in)
		assert.Equal(t, tt.b, b, tt.in)
	}
}
