package models

// FeedPage is one page of a viewer's feed, newest posts first.
type FeedPage struct {
	Count    int64  `json:"count"`
	Results  []Post `json:"results"`
	Page     int64  `json:"page"`
	PageSize int64  `json:"page_size"`
}

// HasNext reports whether another page exists after this one.
func (p FeedPage) HasNext() bool {
	return p.Page*p.PageSize < p.Count
}

// HasPrevious reports whether a page exists before this one.
func (p FeedPage) HasPrevious() bool {
	return p.Page > 1
}
