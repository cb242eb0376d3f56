package model

import "time"

// ContactMessage は一般公開フォームから届いた問い合わせメッセージを表す。
type ContactMessage struct {
	ID        string
	Name      string
	Email     string
	Subject   string
	Message   string
	Read      bool
	CreatedAt time.Time
}
