package domain

import "time"

// Product is a catalog record. Rating is the mean of review ratings and is
// recomputed whenever a review is added, never stored as independent truth.
type Product struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Brand        string    `json:"brand,omitempty"`
	Category     string    `json:"category,omitempty"`
	PriceCents   int64     `json:"-"`
	Currency     string    `json:"currency"`
	CountInStock int       `json:"countInStock"`
	Images       []string  `json:"images"`
	Featured     bool      `json:"featuredProduct"`
	Rating       float64   `json:"rating"`
	NumReviews   int       `json:"numReviews"`
	Reviews      []Review  `json:"reviews,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Review is a single customer rating on a product. One per user per product.
type Review struct {
	ID        string    `json:"id"`
	ProductID string    `json:"-"`
	UserID    string    `json:"user"`
	UserName  string    `json:"name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// MeanRating computes the derived product rating: the mean of all review
// ratings, or 0 when there are none.
func MeanRating(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews))
}

// MainImage returns the first image, the one snapshotted onto cart lines.
func (p Product) MainImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
