// Package media はアップロードファイルの検証・保存と外部URLからの画像取り込みを提供する。
package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/savoir/internal/model"
	"github.com/hitoshi/savoir/internal/security"
)

// 画像として受け付けるMIMEタイプと正規の拡張子
var imageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// 文書として受け付ける拡張子と正規のMIMEタイプ
var documentTypes = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// ServiceConfig はメディアサービスの設定
type ServiceConfig struct {
	MaxUploadSize int64         // 1ファイルの最大サイズ（バイト）
	BaseURL       string        // 公開URLの組み立てに使うベースURL
	FetchTimeout  time.Duration // 外部URLからの取り込みのタイムアウト
}

// Service はアップロードの検証・保存を行うサービス
type Service struct {
	store  BlobStore
	guard  security.FetchGuard
	config ServiceConfig
	logger *slog.Logger
}

// NewService はServiceを生成する
func NewService(store BlobStore, guard security.FetchGuard, config ServiceConfig, logger *slog.Logger) *Service {
	if config.FetchTimeout == 0 {
		config.FetchTimeout = 15 * time.Second
	}
	return &Service{
		store:  store,
		guard:  guard,
		config: config,
		logger: logger,
	}
}

// Upload はアップロードされたファイルを検証して保存する。
// 検証はサイズ→形式の順に行い、最初に失敗した検証のエラーを返す。
// 形式の判定は申告されたContent-Typeではなくファイル先頭バイトで行う。
// 保存名はサーバーが生成するUUIDで、呼び出し元のファイル名は使用しない。
func (s *Service) Upload(ctx context.Context, kind model.MediaKind, filename string, r io.Reader) (*model.MediaAsset, error) {
	if !kind.IsValid() {
		return nil, model.NewValidationError("type de média invalide")
	}

	data, err := io.ReadAll(io.LimitReader(r, s.config.MaxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > s.config.MaxUploadSize {
		return nil, model.NewPayloadTooLargeError(s.config.MaxUploadSize)
	}
	if len(data) == 0 {
		return nil, model.NewValidationError("fichier vide")
	}

	mimeType, ext, err := s.detectType(kind, filename, data)
	if err != nil {
		return nil, err
	}

	storageName := uuid.New().String() + ext
	written, err := s.store.Save(string(kind), storageName, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	asset := &model.MediaAsset{
		Kind:        kind,
		StorageName: storageName,
		MimeType:    mimeType,
		Size:        written,
		URL:         s.config.BaseURL + "/uploads/" + string(kind) + "/" + storageName,
		UploadedAt:  time.Now().UTC(),
	}

	s.logger.Info("media uploaded",
		slog.String("kind", string(kind)),
		slog.String("storage_name", storageName),
		slog.String("mime_type", mimeType),
		slog.Int64("size", written))

	return asset, nil
}

// ImportImageFromURL は外部URLから画像を取り込んで保存する。
// SSRF防止のためURLの事前検証とDialer層のIP検証の両方を通す。
func (s *Service) ImportImageFromURL(ctx context.Context, rawURL string) (*model.MediaAsset, error) {
	if err := s.guard.ValidateURL(rawURL); err != nil {
		return nil, model.NewValidationError("URL non autorisée")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, model.NewValidationError("URL non autorisée")
	}

	client := s.guard.NewSafeClient(s.config.FetchTimeout)
	resp, err := client.Do(req)
	if err != nil {
		s.logger.Warn("image import fetch failed",
			slog.String("url", rawURL),
			slog.String("error", err.Error()))
		return nil, model.NewValidationError("impossible de récupérer l'image")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, model.NewValidationError(
			fmt.Sprintf("le serveur distant a répondu %d", resp.StatusCode))
	}

	filename := path.Base(urlPath(rawURL))
	return s.Upload(ctx, model.MediaKindImage, filename, resp.Body)
}

// detectType は先頭バイトと拡張子からMIMEタイプと保存時の拡張子を決定する。
func (s *Service) detectType(kind model.MediaKind, filename string, data []byte) (mimeType, ext string, err error) {
	switch kind {
	case model.MediaKindImage:
		sniffed := http.DetectContentType(data)
		canonical, ok := imageTypes[sniffed]
		if !ok {
			return "", "", model.NewUnsupportedMediaTypeError(sniffed)
		}
		return sniffed, canonical, nil

	case model.MediaKindDocument:
		declared := strings.ToLower(path.Ext(filename))
		canonical, ok := documentTypes[declared]
		if !ok {
			return "", "", model.NewUnsupportedMediaTypeError(declared)
		}
		if !documentMagicMatches(declared, data) {
			return "", "", model.NewUnsupportedMediaTypeError(http.DetectContentType(data))
		}
		return canonical, declared, nil
	}
	return "", "", model.NewValidationError("type de média invalide")
}

// documentMagicMatches は文書の先頭バイトが拡張子と整合するかを検証する。
// PDF: %PDF / DOCX: ZIPコンテナ / DOC: OLE複合文書
func documentMagicMatches(ext string, data []byte) bool {
	switch ext {
	case ".pdf":
		return bytes.HasPrefix(data, []byte("%PDF"))
	case ".docx":
		return bytes.HasPrefix(data, []byte("PK\x03\x04"))
	case ".doc":
		return bytes.HasPrefix(data, []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1})
	}
	return false
}

func urlPath(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Path
}
