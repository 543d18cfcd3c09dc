package category

import (
	"reflect"
	"testing"
)

func TestSplitPath(t *testing.T) {
	cases := []struct {
		path  string
		parts []string
	}{
		{"TI > Incidente > Software", []string{"TI", "Incidente", "Software"}},
		{"TI>Incidente>Software", []string{"TI", "Incidente", "Software"}},
		{"  TI  >  Requisição  ", []string{"TI", "Requisição"}},
		{"TI", []string{"TI"}},
		{"", []string{}},
		{" > > ", []string{}},
	}

	for _, tc := range cases {
		got := SplitPath(tc.path)
		if !reflect.DeepEqual(got, tc.parts) {
			t.Fatalf("SplitPath(%q) = %v, expected %v", tc.path, got, tc.parts)
		}
	}
}

func TestJoinPathRoundTrip(t *testing.T) {
	path := "TI > Incidente > Equipamentos > Hardware"
	if got := JoinPath(SplitPath("TI>Incidente>  Equipamentos > Hardware")); got != path {
		t.Fatalf("expected canonical path %q, got %q", path, got)
	}
}

func TestPathParts(t *testing.T) {
	c := Category{FullPath: "TI > Requisição > Software > Instalação"}
	parts := c.PathParts()
	if len(parts) != 4 || parts[3] != "Instalação" {
		t.Fatalf("unexpected parts: %v", parts)
	}
}
