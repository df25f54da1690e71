package domain

import "testing"

func sampleCart() *Cart {
	return &Cart{
		Items: []CartItem{
			{
				ID:       "line-1",
				CourseID: "course-1",
				Title:    LocalizedText{AR: "مقدمة في Go", EN: "Intro to Go"},
				Price:    19900,
				Currency: "SAR",
				Qty:      2,
			},
			{
				ID:        "line-2",
				CourseID:  "course-2",
				SessionID: "sess-9",
				Title:     LocalizedText{AR: "ورشة مباشرة", EN: "Live Workshop"},
				Price:     45000,
				Currency:  "SAR",
				Qty:       1,
			},
		},
		Currency: "SAR",
	}
}

func TestComputeTotal(t *testing.T) {
	cart := sampleCart()
	if got := cart.ComputeTotal(); got != 19900*2+45000 {
		t.Errorf("ComputeTotal() = %d, want %d", got, 19900*2+45000)
	}
}

func TestComputeTotal_Empty(t *testing.T) {
	cart := &Cart{}
	if got := cart.ComputeTotal(); got != 0 {
		t.Errorf("ComputeTotal() = %d, want 0", got)
	}
}

func TestItemCount_QuantityWeighted(t *testing.T) {
	cart := sampleCart()
	if got := cart.ItemCount(); got != 3 {
		t.Errorf("ItemCount() = %d, want 3", got)
	}
}

func TestFindItemIndex(t *testing.T) {
	cart := sampleCart()

	tests := []struct {
		name      string
		courseID  string
		sessionID string
		want      int
	}{
		{"self-paced course", "course-1", "", 0},
		{"live course with session", "course-2", "sess-9", 1},
		{"same course different session", "course-2", "sess-10", -1},
		{"absent course", "course-3", "", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cart.FindItemIndex(tt.courseID, tt.sessionID); got != tt.want {
				t.Errorf("FindItemIndex(%q, %q) = %d, want %d", tt.courseID, tt.sessionID, got, tt.want)
			}
		})
	}
}

func TestFindItemByID(t *testing.T) {
	cart := sampleCart()
	if got := cart.FindItemByID("line-2"); got != 1 {
		t.Errorf("FindItemByID(line-2) = %d, want 1", got)
	}
	if got := cart.FindItemByID("absent"); got != -1 {
		t.Errorf("FindItemByID(absent) = %d, want -1", got)
	}
}

func TestWishlistFindItemIndex(t *testing.T) {
	w := &Wishlist{Items: []WishlistItem{
		{ID: "w-1", CourseID: "course-1", Title: "Intro to Go"},
	}}
	if got := w.FindItemIndex("course-1"); got != 0 {
		t.Errorf("FindItemIndex(course-1) = %d, want 0", got)
	}
	if got := w.FindItemIndex("course-2"); got != -1 {
		t.Errorf("FindItemIndex(course-2) = %d, want -1", got)
	}
}
