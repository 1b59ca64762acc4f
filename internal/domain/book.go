package domain

// Book is a catalog entry as returned by the book endpoints.
type Book struct {
	ID         int     `json:"id"`
	Title      string  `json:"title"`
	AuthorName string  `json:"authorName"`
	ISBN       string  `json:"isbn"`
	Synopsis   string  `json:"synopsis"`
	Owner      string  `json:"owner"`
	Cover      []byte  `json:"cover,omitempty"`
	Rate       float64 `json:"rate"`
	Archived   bool    `json:"archived"`
	Shareable  bool    `json:"shareable"`
}

// BorrowedBook is a borrow record, either still out or returned.
type BorrowedBook struct {
	ID             int     `json:"id"`
	Title          string  `json:"title"`
	AuthorName     string  `json:"authorName"`
	ISBN           string  `json:"isbn"`
	Rate           float64 `json:"rate"`
	Returned       bool    `json:"returned"`
	ReturnApproved bool    `json:"returnApproved"`
}

// FeedbackRequest is the payload attached to a returned book.
type FeedbackRequest struct {
	BookID  int     `json:"bookId" validate:"required,gt=0"`
	Note    float64 `json:"note" validate:"gte=0,lte=5"`
	Comment string  `json:"comment" validate:"required,max=1000"`
}
