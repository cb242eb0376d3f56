package model

import "time"

// DocumentCategory は公開文書の分類を表す。
type DocumentCategory string

const (
	// DocumentCategoryStatuts は団体の定款。
	DocumentCategoryStatuts DocumentCategory = "statuts"
	// DocumentCategoryReglement は内部規則。
	DocumentCategoryReglement DocumentCategory = "reglement"
	// DocumentCategoryAutre はその他の文書。
	DocumentCategoryAutre DocumentCategory = "autre"
)

// IsValid は既知の文書分類かどうかを返す。
func (c DocumentCategory) IsValid() bool {
	return c == DocumentCategoryStatuts || c == DocumentCategoryReglement || c == DocumentCategoryAutre
}

// Document は団体が公開する文書（定款、内部規則など）を表す。
type Document struct {
	ID          string
	Title       string
	Description string
	FileURL     string
	FileType    string
	Category    DocumentCategory
	CreatedAt   time.Time
}
