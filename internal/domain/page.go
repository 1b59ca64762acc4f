package domain

// Page is one server-paginated slice of a collection.
type Page[T any] struct {
	Content       []T  `json:"content"`
	Number        int  `json:"number"`
	Size          int  `json:"size"`
	TotalElements int  `json:"totalElements"`
	TotalPages    int  `json:"totalPages"`
	First         bool `json:"first"`
	Last          bool `json:"last"`
}

// Items returns the page content, never nil.
func (p Page[T]) Items() []T {
	if p.Content == nil {
		return []T{}
	}
	return p.Content
}
