package domain

import "testing"

func TestOppositeFaceInvolution(t *testing.T) {
	for f := XLow; f < numFaces; f++ {
		if f.Opposite().Opposite() != f {
			t.Errorf("%v: double opposite is %v", f, f.Opposite().Opposite())
		}
		if f.Axis() != f.Opposite().Axis() {
			t.Errorf("%v: opposite changed axis", f)
		}
		if f.Direction() == f.Opposite().Direction() {
			t.Errorf("%v: opposite kept direction %d", f, f.Direction())
		}
	}
}

func TestFaceAxisDirection(t *testing.T) {
	cases := []struct {
		face Face
		axis int
		dir  int
	}{
		{XLow, 0, -1},
		{XHigh, 0, 1},
		{YLow, 1, -1},
		{YHigh, 1, 1},
		{ZLow, 2, -1},
		{ZHigh, 2, 1},
	}
	for _, tc := range cases {
		if tc.face.Axis() != tc.axis {
			t.Errorf("%v.Axis()=%d, want %d", tc.face, tc.face.Axis(), tc.axis)
		}
		if tc.face.Direction() != tc.dir {
			t.Errorf("%v.Direction()=%d, want %d", tc.face, tc.face.Direction(), tc.dir)
		}
		if FaceFor(tc.axis, tc.dir) != tc.face {
			t.Errorf("FaceFor(%d,%d)=%v, want %v", tc.axis, tc.dir, FaceFor(tc.axis, tc.dir), tc.face)
		}
	}
}

func TestFaceNormal(t *testing.T) {
	n := YHigh.Normal(3)
	want := []int{0, 1, 0}
	for i := range want {
		if n[i] != want[i] {
			t.Fatalf("YHigh.Normal(3)=%v, want %v", n, want)
		}
	}

	n = XLow.Normal(2)
	if n[0] != -1 || n[1] != 0 {
		t.Errorf("XLow.Normal(2)=%v, want [-1 0]", n)
	}
}
