package domain

// WishlistItem represents a course saved for later. Unlike cart lines the
// title is a plain display string and there is no quantity or session
// dimension; at most one entry exists per course.
type WishlistItem struct {
	ID         string `json:"id"`
	CourseID   string `json:"courseId"`
	Title      string `json:"title"`
	Price      int64  `json:"price"`
	Currency   string `json:"currency"`
	ImageURL   string `json:"imageUrl,omitempty"`
	Instructor string `json:"instructor,omitempty"`
}

// Wishlist holds the saved-for-later items in insertion order.
type Wishlist struct {
	Items []WishlistItem `json:"items"`
}

// FindItemIndex returns the index of the wishlist entry for the given course,
// or -1. Course ID alone is the wishlist dedup key.
func (w *Wishlist) FindItemIndex(courseID string) int {
	for i := range w.Items {
		if w.Items[i].CourseID == courseID {
			return i
		}
	}
	return -1
}
