package model

import "time"

// MediaKind はアップロード対象の種別を表す。
type MediaKind string

const (
	// MediaKindImage は画像アップロード。
	MediaKindImage MediaKind = "image"
	// MediaKindDocument は文書アップロード。
	MediaKindDocument MediaKind = "document"
)

// IsValid は既知のメディア種別かどうかを返す。
func (k MediaKind) IsValid() bool {
	return k == MediaKindImage || k == MediaKindDocument
}

// MediaAsset は検証・保存済みのアップロードファイルを表す。
// 保存後に変更されることはない。StorageNameはサーバーが生成した
// 衝突耐性のある識別子で、呼び出し元のファイル名は使用しない。
type MediaAsset struct {
	Kind        MediaKind
	StorageName string
	MimeType    string
	Size        int64
	URL         string
	UploadedAt  time.Time
}
