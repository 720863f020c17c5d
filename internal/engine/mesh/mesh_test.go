package mesh

import "testing"

type vertex struct{ x, y, u, v float32 }

func vertices(data []float32) []vertex {
	out := make([]vertex, 0, len(data)/vertexFloats)
	for i := 0; i+vertexFloats <= len(data); i += vertexFloats {
		out = append(out, vertex{data[i], data[i+1], data[i+2], data[i+3]})
	}
	return out
}

func TestQuadLayout(t *testing.T) {
	q := Quad(0.1, 0.15)
	if len(q) != 4*vertexFloats {
		t.Fatalf("Quad has %d floats, want %d", len(q), 4*vertexFloats)
	}

	want := []vertex{
		{-0.1, 0.15, 0, 1},
		{-0.1, -0.15, 0, 0},
		{0.1, -0.15, 1, 0},
		{0.1, 0.15, 1, 1},
	}
	for i, v := range vertices(q) {
		if v != want[i] {
			t.Errorf("vertex %d = %+v, want %+v", i, v, want[i])
		}
	}
}

func TestFullScreenQuad(t *testing.T) {
	for i, v := range vertices(Quad(1, 1)) {
		if (v.x != 1 && v.x != -1) || (v.y != 1 && v.y != -1) {
			t.Errorf("vertex %d = %+v, not on the NDC corners", i, v)
		}
		// uv follows position so the texture covers the screen upright.
		if v.u != (v.x+1)/2 || v.v != (v.y+1)/2 {
			t.Errorf("vertex %d uv = (%v, %v), want position-aligned", i, v.u, v.v)
		}
	}
}

func TestQuadIndicesCoverBothTriangles(t *testing.T) {
	seen := map[uint32]int{}
	for _, i := range QuadIndices {
		if i > 3 {
			t.Fatalf("index %d out of range", i)
		}
		seen[i]++
	}
	if len(seen) != 4 {
		t.Errorf("indices reference %d vertices, want 4", len(seen))
	}
	// The diagonal 0-2 is shared.
	if seen[0] != 2 || seen[2] != 2 {
		t.Errorf("diagonal vertices used %d and %d times, want 2", seen[0], seen[2])
	}
}

func TestStride(t *testing.T) {
	if vertexStride != 16 {
		t.Errorf("vertexStride = %d, want 16", vertexStride)
	}
}
