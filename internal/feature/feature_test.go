package feature

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/rs/zerolog"
)

func TestParseGeometry_WKT(t *testing.T) {
	g, err := ParseGeometry("POINT (11.97 57.71)")
	if err != nil {
		t.Fatal(err)
	}
	p, ok := g.(orb.Point)
	if !ok {
		t.Fatalf("got %T, want orb.Point", g)
	}
	if p.Lon() != 11.97 || p.Lat() != 57.71 {
		t.Fatalf("point=%v", p)
	}
}

func TestParseGeometry_GeoJSON(t *testing.T) {
	g, err := ParseGeometry(`{"type":"LineString","coordinates":[[0,0],[1,1]]}`)
	if err != nil {
		t.Fatal(err)
	}
	ls, ok := g.(orb.LineString)
	if !ok {
		t.Fatalf("got %T, want orb.LineString", g)
	}
	if len(ls) != 2 {
		t.Fatalf("linestring has %d points", len(ls))
	}
}

func TestParseGeometry_Garbage(t *testing.T) {
	for _, raw := range []string{"", "   ", "POINT OF NO RETURN", `{"type":"Nope"}`} {
		if _, err := ParseGeometry(raw); err == nil {
			t.Fatalf("ParseGeometry(%q) succeeded, want error", raw)
		}
	}
}

func TestFromRows_DropsBadGeometryKeepsBatch(t *testing.T) {
	rows := []map[string]any{
		{"geom": "POINT (1 2)", "name": "a"},
		{"geom": "not geometry", "name": "b"},
		{"geom": nil, "name": "c"},
		{"geom": "POINT (3 4)", "name": "d"},
	}

	feats := FromRows(rows, "geom", zerolog.Nop())
	if len(feats) != 2 {
		t.Fatalf("got %d features, want 2", len(feats))
	}
	if feats[0].Properties["name"] != "a" || feats[1].Properties["name"] != "d" {
		t.Fatalf("wrong rows survived: %v, %v", feats[0].Properties, feats[1].Properties)
	}
}

func TestFromRows_ByteSliceGeometry(t *testing.T) {
	rows := []map[string]any{{"geom": []byte("POINT (5 6)")}}
	feats := FromRows(rows, "geom", zerolog.Nop())
	if len(feats) != 1 {
		t.Fatalf("got %d features, want 1", len(feats))
	}
}
