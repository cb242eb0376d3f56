package model

import "time"

// ContentEntry はサイト設定テキストの1エントリを表す。
// キー集合は固定ではなく、upsertで作成または上書きされる。履歴は保持しない。
type ContentEntry struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}
