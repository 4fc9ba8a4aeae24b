package testimonials

import "time"

type Testimonial struct {
	UID       string    `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	Rating    int       `json:"rating"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	minRating = 1
	maxRating = 5
)
