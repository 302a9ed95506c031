package calc

import "testing"

func TestCompute(t *testing.T) {
	tests := []struct {
		name    string
		in      Input
		want    float64
		wantErr bool
	}{
		{"add", Input{A: 2, B: 3, Op: "+"}, 5, false},
		{"subtract", Input{A: 2, B: 3, Op: "-"}, -1, false},
		{"multiply", Input{A: 4, B: 2.5, Op: "*"}, 10, false},
		{"divide", Input{A: 10, B: 4, Op: "/"}, 2.5, false},
		{"divide by zero", Input{A: 1, B: 0, Op: "/"}, 0, true},
		{"unknown op", Input{A: 1, B: 1, Op: "%"}, 0, true},
		{"whitespace op", Input{A: 1, B: 1, Op: " + "}, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Compute(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Compute failed: %v", err)
			}
			if out.Result != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, out.Result)
			}
		})
	}
}
