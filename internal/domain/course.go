package domain

import "time"

// Course types as served by the catalog.
const (
	CourseTypeLive = "Live"
	CourseTypePDF  = "PDF"
)

// Instructor holds the display fields for a course instructor.
type Instructor struct {
	Name   string `json:"name"`
	Title  string `json:"title,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

// Course is a purchasable catalog entry. Live courses carry scheduled
// sessions; PDF courses are self-paced.
type Course struct {
	ID           string        `json:"id"`
	Slug         string        `json:"slug"`
	Title        LocalizedText `json:"title"`
	Summary      LocalizedText `json:"summary"`
	Price        int64         `json:"price"`
	Currency     string        `json:"currency"`
	Type         string        `json:"type"`
	IsActive     bool          `json:"isActive"`
	IsFeatured   bool          `json:"isFeatured,omitempty"`
	Rating       float64       `json:"rating,omitempty"`
	ThumbnailURL string        `json:"thumbnailUrl,omitempty"`
	Instructor   *Instructor   `json:"instructor,omitempty"`
	Sessions     []Session     `json:"sessions,omitempty"`
}

// Session is a scheduled occurrence of a live course.
type Session struct {
	ID             string    `json:"id"`
	StartAt        time.Time `json:"startAt"`
	EndAt          time.Time `json:"endAt"`
	Capacity       int       `json:"capacity,omitempty"`
	AvailableSpots int       `json:"availableSpots,omitempty"`
}

// Order statuses as reported by the marketplace backend.
const (
	OrderStatusPending  = "Pending"
	OrderStatusPaid     = "Paid"
	OrderStatusFailed   = "Failed"
	OrderStatusRefunded = "Refunded"
)

// OrderItem is a purchased line within an order.
type OrderItem struct {
	CourseID    string        `json:"courseId"`
	CourseTitle LocalizedText `json:"courseTitle"`
	SessionID   string        `json:"sessionId,omitempty"`
	Price       int64         `json:"price"`
}

// Order is a placed order as returned by the backend.
type Order struct {
	ID        string      `json:"id"`
	Amount    int64       `json:"amount"`
	Currency  string      `json:"currency"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
	Items     []OrderItem `json:"items"`
}
