package books

type ListBooksQuery struct {
	Search string `query:"search" json:"search,omitempty" mod:"trim" validate:"max=200"`
}

type CreateBookPayload struct {
	Title  string `json:"title" mod:"trim"`
	Author string `json:"author" mod:"trim"`
}
