package content

import (
	"strings"
	"testing"
)

func TestMakeSlug(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Elecciones 2025", "elecciones-2025"},
		{"Afiliación y Fiscalización", "afiliacion-y-fiscalizacion"},
		{"¿Qué pasó el sábado?", "que-paso-el-sabado"},
		{"  --- Título ---  ", "titulo"},
		{"ÑANDÚ", "nandu"},
		{"", "nota"},
		{"!!!", "nota"},
	}
	for _, c := range cases {
		if got := MakeSlug(c.title); got != c.want {
			t.Errorf("MakeSlug(%q) = %q, want %q", c.title, got, c.want)
		}
	}
}

func TestMakeSlug_CapsLength(t *testing.T) {
	slug := MakeSlug(strings.Repeat("palabra ", 40))
	if len(slug) > 100 {
		t.Fatalf("slug length = %d", len(slug))
	}
	if strings.HasSuffix(slug, "-") {
		t.Fatalf("slug ends in dash: %q", slug)
	}
}
