package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/hitoshi/savoir/internal/middleware"
	"github.com/hitoshi/savoir/internal/model"
)

// MediaServiceInterface はメディアハンドラーが必要とするサービスインターフェース。
type MediaServiceInterface interface {
	Upload(ctx context.Context, kind model.MediaKind, filename string, r io.Reader) (*model.MediaAsset, error)
	ImportImageFromURL(ctx context.Context, rawURL string) (*model.MediaAsset, error)
}

// UploadRecorder はアップロードのメトリクス記録インターフェース。
type UploadRecorder interface {
	RecordUpload(kind string)
}

// MediaHandler はファイルアップロードのHTTPハンドラー。
type MediaHandler struct {
	service       MediaServiceInterface
	recorder      UploadRecorder
	maxUploadSize int64
}

// NewMediaHandler はMediaHandlerを生成する。
func NewMediaHandler(service MediaServiceInterface, recorder UploadRecorder, maxUploadSize int64) *MediaHandler {
	return &MediaHandler{
		service:       service,
		recorder:      recorder,
		maxUploadSize: maxUploadSize,
	}
}

// importImageRequest は外部URL取り込みリクエストのボディ。
type importImageRequest struct {
	URL string `json:"url"`
}

// mediaAssetResponse は保存済みファイルのAPIレスポンス。
type mediaAssetResponse struct {
	Kind       string    `json:"kind"`
	Filename   string    `json:"filename"`
	MimeType   string    `json:"mime_type"`
	Size       int64     `json:"size"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// UploadImage は画像アップロードを処理する。
// POST /upload/image (multipart/form-data, field "file")
func (h *MediaHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, model.MediaKindImage)
}

// UploadDocument は文書アップロードを処理する。
// POST /upload/document (multipart/form-data, field "file")
func (h *MediaHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, model.MediaKindDocument)
}

func (h *MediaHandler) upload(w http.ResponseWriter, r *http.Request, kind model.MediaKind) {
	// multipartのメモリ使用量を抑えつつ、サイズ判定はサービス層で行う。
	// +1でちょうど上限サイズのファイルを通し、超過をサービス層で検出できるようにする。
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+httpOverheadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		// MaxBytesReaderで打ち切られたリクエストはサイズ超過として返す
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			middleware.WriteErrorResponse(w, http.StatusRequestEntityTooLarge,
				model.NewPayloadTooLargeError(h.maxUploadSize))
			return
		}
		middleware.WriteErrorResponse(w, http.StatusBadRequest,
			model.NewValidationError("champ de fichier manquant"))
		return
	}
	defer file.Close()

	asset, err := h.service.Upload(r.Context(), kind, header.Filename, file)
	if err != nil {
		middleware.WriteServiceError(w, err)
		return
	}

	h.recorder.RecordUpload(string(kind))
	writeJSON(w, http.StatusCreated, toMediaAssetResponse(asset))
}

// ImportImage は外部URLから画像を取り込む。
// POST /upload/image/import
func (h *MediaHandler) ImportImage(w http.ResponseWriter, r *http.Request) {
	var req importImageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	asset, err := h.service.ImportImageFromURL(r.Context(), req.URL)
	if err != nil {
		middleware.WriteServiceError(w, err)
		return
	}

	h.recorder.RecordUpload(string(model.MediaKindImage))
	writeJSON(w, http.StatusCreated, toMediaAssetResponse(asset))
}

// httpOverheadBytes はmultipart境界やヘッダー分の余裕。
const httpOverheadBytes = 64 * 1024

func toMediaAssetResponse(asset *model.MediaAsset) mediaAssetResponse {
	return mediaAssetResponse{
		Kind:       string(asset.Kind),
		Filename:   asset.StorageName,
		MimeType:   asset.MimeType,
		Size:       asset.Size,
		URL:        asset.URL,
		UploadedAt: asset.UploadedAt,
	}
}
