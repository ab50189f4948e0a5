package models

// PostPage is the pagination envelope for the post feed: a read-only derived
// view over the posts collection at a given (page, limit), recomputed per
// cache miss. PrevPage and NextPage are nil when there is no such page.
type PostPage struct {
	Items       []Post `json:"items"`
	TotalCount  int64  `json:"total_count"`
	PageSize    int    `json:"page_size"`
	CurrentPage int    `json:"current_page"`
	TotalPages  int    `json:"total_pages"`
	HasPrev     bool   `json:"has_prev"`
	HasNext     bool   `json:"has_next"`
	PrevPage    *int   `json:"prev_page"`
	NextPage    *int   `json:"next_page"`
}
