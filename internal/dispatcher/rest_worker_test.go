package dispatcher

import "testing"

func TestWorkerPinnable(t *testing.T) {
	cases := []struct {
		core int
		want bool
	}{
		{core: -1, want: false},
		{core: 0, want: true},
		{core: 3, want: true},
	}

	for _, tc := range cases {
		w := NewRESTWorker(nil, nil, 0, tc.core)
		if got := w.pinnable(); got != tc.want {
			t.Errorf("pinnable with core %d = %v, want %v", tc.core, got, tc.want)
		}
	}
}
