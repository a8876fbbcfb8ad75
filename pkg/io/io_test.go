package io

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/matzehuels/relabel/internal/testgraph"
	"github.com/matzehuels/relabel/pkg/errors"
)

func TestReadGraph(t *testing.T) {
	input := "5\n4 5 6 7 8\n1 2 3 4 0 0 0 0\n"
	g, err := ReadGraph(strings.NewReader(input), Options{})
	if err != nil {
		t.Fatalf("ReadGraph: %v", err)
	}
	if g.VertexCount() != 5 || g.EdgeCount() != 4 {
		t.Errorf("got %d vertices, %d edges", g.VertexCount(), g.EdgeCount())
	}
	if !g.Equal(testgraph.Star(5)) {
		t.Errorf("ReadGraph did not produce the star: %v %v", g.Offsets(), g.Adjacency())
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	graphs := []struct {
		name string
		rows int
		cols int
	}{
		{"single", 1, 1},
		{"row", 1, 5},
		{"grid", 4, 3},
	}
	for _, tt := range graphs {
		t.Run(tt.name, func(t *testing.T) {
			g := testgraph.Grid(tt.rows, tt.cols)

			var buf bytes.Buffer
			if err := WriteGraph(&buf, g); err != nil {
				t.Fatal(err)
			}
			if err := WriteCoordinates(&buf, g); err != nil {
				t.Fatal(err)
			}

			plain, err := ReadGraph(bytes.NewReader(buf.Bytes()), Options{})
			if err != nil {
				t.Fatalf("ReadGraph: %v", err)
			}
			if !plain.Equal(g) || plain.HasCoordinates() {
				t.Error("plain read should match topology and skip coordinates")
			}

			withCoords, err := ReadGraph(bytes.NewReader(buf.Bytes()), Options{Coordinates: true})
			if err != nil {
				t.Fatalf("ReadGraph with coordinates: %v", err)
			}
			got, want := withCoords.Coordinates(), g.Coordinates()
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("coordinate %d = %v, want %v", i, got[i], want[i])
				}
			}
		})
	}
}

func TestWriteGraphFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteGraph(&buf, testgraph.Path(3)); err != nil {
		t.Fatal(err)
	}
	want := "3\n1\n3\n4\n1\n0\n2\n1\n"
	if buf.String() != want {
		t.Errorf("WriteGraph = %q, want %q", buf.String(), want)
	}
}

func TestReadGraphErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  Options
		code  errors.Code
	}{
		{"empty", "", Options{}, errors.ErrCodeInvalidFormat},
		{"zero vertices", "0\n", Options{}, errors.ErrCodeInvalidFormat},
		{"negative vertices", "-2\n", Options{}, errors.ErrCodeInvalidFormat},
		{"not a number", "x\n", Options{}, errors.ErrCodeInvalidFormat},
		{"truncated offsets", "3\n1 2\n", Options{}, errors.ErrCodeInvalidFormat},
		{"truncated adjacency", "2\n1 2\n1\n", Options{}, errors.ErrCodeInvalidFormat},
		{"decreasing offsets", "2\n2 1\n1 0\n", Options{}, errors.ErrCodeInvalidGraph},
		{"neighbour out of range", "2\n1 2\n1 7\n", Options{}, errors.ErrCodeInvalidGraph},
		{"missing coordinates", "2\n1 2\n1 0\n0 0 0\n", Options{Coordinates: true}, errors.ErrCodeInvalidFormat},
		{"bad coordinate", "2\n1 2\n1 0\n0 0 0 1 q 0\n", Options{Coordinates: true}, errors.ErrCodeInvalidFormat},
		{"nan coordinate", "2\n1 2\n1 0\n0 0 0 1 NaN 0\n", Options{Coordinates: true}, errors.ErrCodeInvalidGraph},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ReadGraph(strings.NewReader(tt.input), tt.opts)
			if g != nil {
				t.Error("no partial graph on error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("got %v, want %s", err, tt.code)
			}
		})
	}
}

func TestReadGraphLargeHeaderShortInput(t *testing.T) {
	inputs := map[string]string{
		"vertices":  "268435456\n1 2 3\n",
		"adjacency": "2\n1 1073741824\n1 0\n",
	}
	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			var before, after runtime.MemStats
			runtime.ReadMemStats(&before)
			_, err := ReadGraph(strings.NewReader(input), Options{Coordinates: true})
			runtime.ReadMemStats(&after)
			if err == nil {
				t.Fatal("truncated input should fail")
			}
			if grew := after.TotalAlloc - before.TotalAlloc; grew > 16<<20 {
				t.Errorf("allocated %d bytes for a %d byte input", grew, len(input))
			}
		})
	}
}

func TestWriteCoordinatesRequiresCoordinates(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCoordinates(&buf, testgraph.Path(2)); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("got %v", err)
	}
}

func TestReadCoordinates(t *testing.T) {
	coords, err := ReadCoordinates(strings.NewReader("0 1 2\n3.5 -4 5e1\n"), 2)
	if err != nil {
		t.Fatal(err)
	}
	if coords[1][0] != 3.5 || coords[1][1] != -4 || coords[1][2] != 50 {
		t.Errorf("coords = %v", coords)
	}
	if _, err := ReadCoordinates(strings.NewReader("0 1"), 1); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("short input: %v", err)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	g := testgraph.Grid(2, 3)
	var buf bytes.Buffer
	if err := WriteJSON(&buf, g); err != nil {
		t.Fatal(err)
	}
	back, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if !back.Equal(g) || !back.HasCoordinates() {
		t.Error("JSON round trip lost data")
	}

	if _, err := ReadJSON(strings.NewReader(`{"offsets": [0, 1], "adjacency": [3]}`)); !errors.Is(err, errors.ErrCodeInvalidGraph) {
		t.Errorf("invalid graph: %v", err)
	}
	if _, err := ReadJSON(strings.NewReader(`{"offsets": `)); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("malformed: %v", err)
	}
	if _, err := ReadJSON(strings.NewReader(`{"offsets": [0]}`)); !errors.Is(err, errors.ErrCodeInvalidGraph) {
		t.Errorf("empty graph: %v", err)
	}
}

func TestGraphFiles(t *testing.T) {
	dir := t.TempDir()
	g := testgraph.Grid(3, 3)

	for _, name := range []string{"g.txt", "g.json", "g.JSON"} {
		path := filepath.Join(dir, name)
		if err := WriteGraphFile(path, g); err != nil {
			t.Fatalf("WriteGraphFile(%s): %v", name, err)
		}
		back, err := ReadGraphFile(path, Options{Coordinates: true})
		if err != nil {
			t.Fatalf("ReadGraphFile(%s): %v", name, err)
		}
		if !back.Equal(g) || !back.HasCoordinates() {
			t.Errorf("%s: round trip lost data", name)
		}
	}

	if _, err := ReadGraphFile(filepath.Join(dir, "missing.txt"), Options{}); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file: %v", err)
	}

	raw, _ := os.ReadFile(filepath.Join(dir, "g.txt"))
	if !strings.HasPrefix(string(raw), "9\n") {
		t.Errorf("text file should start with the vertex count, got %q", raw[:4])
	}
}
