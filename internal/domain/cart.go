package domain

// LocalizedText is a bilingual text pair as served by the marketplace catalog.
type LocalizedText struct {
	AR string `json:"ar"`
	EN string `json:"en"`
}

// CartItem represents a single line in the cart. The line ID is distinct from
// the course ID so the same course can appear with different live sessions.
type CartItem struct {
	ID           string        `json:"id"`
	CourseID     string        `json:"courseId"`
	SessionID    string        `json:"sessionId,omitempty"`
	Title        LocalizedText `json:"title"`
	Price        int64         `json:"price"`
	Currency     string        `json:"currency"`
	Qty          int           `json:"qty"`
	ImageURL     string        `json:"imageUrl,omitempty"`
	Instructor   string        `json:"instructor,omitempty"`
	SessionTitle string        `json:"sessionTitle,omitempty"`
}

// Cart is the session-local shopping cart. CartID is assigned once a
// server-side cart session exists; AnonymousID identifies a guest session so
// it can be merged into the user cart after login. Prices are in minor
// currency units.
type Cart struct {
	CartID      string     `json:"cartId,omitempty"`
	AnonymousID string     `json:"anonymousId,omitempty"`
	Items       []CartItem `json:"items"`
	Total       int64      `json:"total"`
	Currency    string     `json:"currency"`
}

// ComputeTotal recomputes and stores Total as the sum of price*qty over all
// items, returning the new value. Total is never maintained incrementally.
func (c *Cart) ComputeTotal() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.Price * int64(item.Qty)
	}
	c.Total = total
	return total
}

// ItemCount returns the quantity-weighted number of items in the cart.
func (c *Cart) ItemCount() int {
	var count int
	for _, item := range c.Items {
		count += item.Qty
	}
	return count
}

// FindItemIndex returns the index of the cart item matching the given course
// and session ID pair, or -1. The (courseID, sessionID) pair is the cart's
// dedup key: sessionID is empty for self-paced courses.
func (c *Cart) FindItemIndex(courseID, sessionID string) int {
	for i := range c.Items {
		if c.Items[i].CourseID == courseID && c.Items[i].SessionID == sessionID {
			return i
		}
	}
	return -1
}

// FindItemByID returns the index of the cart item with the given line ID, or -1.
func (c *Cart) FindItemByID(itemID string) int {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return i
		}
	}
	return -1
}
