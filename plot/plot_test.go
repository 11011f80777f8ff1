package plot

import (
	"bytes"
	"math"
	"strings"
	"testing"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestBin(t *testing.T) {
	bins, err := Bin([]float64{0, 1, 1, 2, 3, 4, math.NaN()}, 4, false)
	if err != nil {
		t.Fatal(err)
	}

	expected := []float64{1, 2, 1, 2}
	for i, c := range bins.Counts {
		if c != expected[i] {
			t.Errorf("Bin %d: expected %.0f, got %.0f (edges %v)", i, expected[i], c, bins.Edges)
		}
	}

	if len(bins.Edges) != 5 || bins.Edges[0] != 0 {
		t.Errorf("Unexpected edges %v", bins.Edges)
	}

	if c := bins.Centers(); c[0] != 0.5 {
		t.Errorf("Unexpected first center %f", c[0])
	}
}

func TestBinDensity(t *testing.T) {
	bins, err := Bin([]float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, 5, true)
	if err != nil {
		t.Fatal(err)
	}

	area := 0.0
	for i, c := range bins.Counts {
		area += c * (bins.Edges[i+1] - bins.Edges[i])
	}

	if math.Abs(area-1) > 1e-9 {
		t.Errorf("Density should integrate to 1, got %f", area)
	}
}

func TestBinDegenerate(t *testing.T) {
	bins, err := Bin([]float64{3, 3, 3}, 3, false)
	if err != nil {
		t.Fatal(err)
	}

	if bins.Counts[1] != 3 {
		t.Errorf("Expected all values in the middle bin, got %v", bins.Counts)
	}

	if _, err := Bin([]float64{math.NaN()}, 3, false); err == nil {
		t.Error("Expected an error with no values")
	}

	if _, err := Bin([]float64{1}, 0, false); err == nil {
		t.Error("Expected an error with zero bins")
	}
}

func TestBinSkipsInfinite(t *testing.T) {
	bins, err := Bin([]float64{0.5, math.Inf(1), 1, math.Inf(-1), math.NaN(), 1.5}, 2, false)
	if err != nil {
		t.Fatal(err)
	}

	if bins.Edges[0] != 0.5 || bins.Counts[0]+bins.Counts[1] != 3 {
		t.Errorf("Infinite values should be ignored, got edges %v counts %v", bins.Edges, bins.Counts)
	}

	if _, err := Bin([]float64{math.Inf(1)}, 2, false); err == nil {
		t.Error("Expected an error with only infinite values")
	}

	var buf bytes.Buffer
	if err := Text(&buf, []float64{1, math.Inf(1), 2}, 2, 20); err != nil {
		t.Fatal(err)
	}
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	if err := Text(&buf, []float64{1, 2, 2, 3, 3, 3}, 3, 20); err != nil {
		t.Fatal(err)
	}

	if buf.Len() == 0 {
		t.Error("Expected a histogram")
	}

	buf.Reset()
	if err := Text(&buf, nil, 3, 20); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "no values") {
		t.Errorf("Unexpected output %q", buf.String())
	}
}

func TestRenderPNG(t *testing.T) {
	for name, render := range map[string]func(*bytes.Buffer) error{
		"line": func(b *bytes.Buffer) error {
			return Line(b, []float64{1, 2, 3}, []float64{0.2, 0.9, 0.5}, Axes{XLabel: "Drug index", YLabel: "Percentage of valid IC50", XMin: 0, XMax: 4, YMin: 0, YMax: 1})
		},
		"scatter": func(b *bytes.Buffer) error {
			return Scatter(b, []float64{1, 2, 3}, []float64{3, 1, 2}, Axes{XLabel: "xmid", YLabel: "scale"})
		},
		"bars": func(b *bytes.Buffer) error {
			return Bars(b, []string{"breast", "lung"}, []float64{3, 1}, Axes{YLabel: "Occurences"})
		},
		"pie": func(b *bytes.Buffer) error {
			return Pie(b, []string{"breast", "lung", "empty"}, []float64{3, 1, 0}, "Tissues")
		},
		"single point line": func(b *bytes.Buffer) error {
			return Line(b, []float64{0}, []float64{0.75}, Axes{XMin: 0, XMax: 2, YMin: 0, YMax: 1})
		},
		"single point free axes": func(b *bytes.Buffer) error {
			return Line(b, []float64{3}, []float64{0.75}, Axes{})
		},
		"flat scatter": func(b *bytes.Buffer) error {
			return Scatter(b, []float64{1, 2}, []float64{5, 5}, Axes{})
		},
		"histogram": func(b *bytes.Buffer) error {
			_, err := Histogram(b, []float64{-1, 0, 0.5, 2, 2.5}, 5, true, Axes{XLabel: "log IC50"})
			return err
		},
	} {
		var buf bytes.Buffer
		if err := render(&buf); err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}

		if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
			t.Errorf("%s: output is not a PNG", name)
		}
	}
}

func TestRenderErrors(t *testing.T) {
	var buf bytes.Buffer

	if err := Line(&buf, []float64{1}, []float64{1, 2}, Axes{}); err == nil {
		t.Error("Expected length mismatch error")
	}

	if err := Line(&buf, nil, nil, Axes{}); err == nil {
		t.Error("Expected an error without points")
	}

	if err := Scatter(&buf, []float64{math.NaN()}, []float64{1}, Axes{}); err == nil {
		t.Error("Expected an error without complete points")
	}

	if err := Bars(&buf, nil, nil, Axes{}); err == nil {
		t.Error("Expected an error without bars")
	}

	if err := Pie(&buf, []string{"a"}, []float64{0}, ""); err == nil {
		t.Error("Expected an error without positive slices")
	}
}
