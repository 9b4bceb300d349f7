package service

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTableName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"buildings.geojson", "buildings"},
		{"City Parks.csv", "city_parks"},
		{"2024-roads.parquet", "ds_2024roads"},
		{"weird!!name.json", "weirdname"},
	}
	for _, tc := range cases {
		if got := TableName(tc.in); got != tc.want {
			t.Fatalf("TableName(%q)=%q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDatasetList_FiltersByExtension(t *testing.T) {
	dir := t.TempDir()
	datasetsDir := filepath.Join(dir, "datasets")
	if err := os.MkdirAll(datasetsDir, 0755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"a.geojson", "b.parquet", "notes.txt", "c.csv"} {
		if err := os.WriteFile(filepath.Join(datasetsDir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	s := NewDatasetService(dir, nil)
	files, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 3 {
		t.Fatalf("listed %d files, want 3: %+v", len(files), files)
	}
	for _, f := range files {
		if f.FileType == "" || f.Size == "" {
			t.Fatalf("incomplete entry: %+v", f)
		}
	}
}

func TestDatasetList_MissingDirIsEmpty(t *testing.T) {
	s := NewDatasetService(t.TempDir(), nil)
	files, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 0 {
		t.Fatalf("listed %d files from a missing dir", len(files))
	}
}

func TestIngest_RejectsPathTraversal(t *testing.T) {
	s := NewDatasetService(t.TempDir(), nil)
	for _, name := range []string{"../secrets.geojson", "a/b.geojson", "..\\evil.csv"} {
		if _, err := s.Ingest(t.Context(), name); err == nil {
			t.Fatalf("Ingest(%q) succeeded, want error", name)
		}
	}
}
