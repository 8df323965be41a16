package kernel

import "testing"

func TestAdd(t *testing.T) {
	a := []float32{1, 2, 3}
	b := []float32{10, 20, 30}
	out := make([]float32, 3)

	Add(out, a, b)

	want := []float32{11, 22, 33}
	for i, w := range want {
		if out[i] != w {
			t.Errorf("out[%d] = %v, want %v", i, out[i], w)
		}
	}
}
