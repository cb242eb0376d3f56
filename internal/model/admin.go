// Package model はドメインモデルを定義する。
package model

import "time"

// Admin はサイトを管理する管理者アカウントを表す。
// 作成はシード処理またはプロビジョニング経路のみで行い、通常運用中に削除しない。
type Admin struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}

// Identity は検証済みトークンから復元した管理者の認証済みアイデンティティを表す。
// トークン自体が自己検証型のため、サーバー側にセッションレコードは持たない。
type Identity struct {
	AdminID string
	Email   string
	Name    string
}
