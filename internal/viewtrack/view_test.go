package viewtrack

import "testing"

func TestCurrentViewString(t *testing.T) {
	tests := []struct {
		name string
		view CurrentView
		want string
	}{
		{
			name: "initial view",
			view: CurrentView{PageNumber: 1, TotalPages: 1},
			want: "Page 1 of 1 (0%)",
		},
		{
			name: "mid document",
			view: CurrentView{PageNumber: 3, DocumentProgress: 0.67, TotalPages: 4},
			want: "Page 3 of 4 (67%)",
		},
		{
			name: "last page",
			view: CurrentView{PageNumber: 12, DocumentProgress: 1, TotalPages: 12},
			want: "Page 12 of 12 (100%)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.view.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDocumentProgressFormula(t *testing.T) {
	tests := []struct {
		page, total int
		want        float64
	}{
		{1, 1, 0},
		{5, 1, 0},
		{1, 2, 0},
		{2, 2, 1},
		{3, 4, 0.67},
		{2, 4, 0.33},
		{50, 100, 0.49},
	}

	for _, tt := range tests {
		if got := documentProgress(tt.page, tt.total); got != tt.want {
			t.Errorf("documentProgress(%d, %d) = %v, want %v", tt.page, tt.total, got, tt.want)
		}
	}
}

func TestRoundViewport(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{0.55, 0.5},
		{0.56, 0.6},
		{0.54, 0.5},
		{1, 1},
		{1.7, 1},
		{-0.3, 0},
	}

	for _, tt := range tests {
		if got := roundViewport(tt.in); got != tt.want {
			t.Errorf("roundViewport(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
