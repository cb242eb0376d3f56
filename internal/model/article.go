package model

import "time"

// Article はサイトに掲載するニュース記事を表す。
// Contentは保存前にサニタイズされる。
type Article struct {
	ID        string
	Title     string
	Content   string
	Excerpt   string
	Category  string
	ImageURL  string
	Published bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
