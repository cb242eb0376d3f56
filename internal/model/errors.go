package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// 利用者に提示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ（サイトの言語に合わせてフランス語）
	Category string // カテゴリ: auth, validation, workflow, media, system
	Action   string // 利用者向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeValidation           = "VALIDATION_ERROR"
	ErrCodeInvalidCredentials   = "INVALID_CREDENTIALS"
	ErrCodeUnauthorized         = "UNAUTHORIZED"
	ErrCodeTokenExpired         = "TOKEN_EXPIRED"
	ErrCodeInvalidState         = "INVALID_STATE"
	ErrCodeNotFound             = "NOT_FOUND"
	ErrCodePayloadTooLarge      = "PAYLOAD_TOO_LARGE"
	ErrCodeUnsupportedMediaType = "UNSUPPORTED_MEDIA_TYPE"
	ErrCodeRateLimited          = "RATE_LIMITED"
	ErrCodeInternal             = "INTERNAL_ERROR"
)

// NewValidationError は入力検証エラーを生成する。
// ストアへのアクセス前に検出された不正・欠落入力に使用する。
func NewValidationError(detail string) *APIError {
	return &APIError{
		Code:     ErrCodeValidation,
		Message:  fmt.Sprintf("Données invalides : %s", detail),
		Category: "validation",
		Action:   "Vérifiez les champs du formulaire et réessayez.",
	}
}

// NewInvalidCredentialsError は認証失敗エラーを生成する。
// メールアドレス不明とパスワード不一致を区別しない。
func NewInvalidCredentialsError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidCredentials,
		Message:  "Email ou mot de passe incorrect.",
		Category: "auth",
		Action:   "Vérifiez vos identifiants et réessayez.",
	}
}

// NewUnauthorizedError は未認証・不正トークンエラーを生成する。
func NewUnauthorizedError() *APIError {
	return &APIError{
		Code:     ErrCodeUnauthorized,
		Message:  "Authentification requise.",
		Category: "auth",
		Action:   "Connectez-vous et réessayez.",
	}
}

// NewTokenExpiredError はトークン期限切れエラーを生成する。
func NewTokenExpiredError() *APIError {
	return &APIError{
		Code:     ErrCodeTokenExpired,
		Message:  "Votre session a expiré.",
		Category: "auth",
		Action:   "Reconnectez-vous pour continuer.",
	}
}

// NewInvalidStateError はワークフロー違反エラーを生成する。
// 判断済みの申請に対する再判断などに使用する。
func NewInvalidStateError(detail string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidState,
		Message:  fmt.Sprintf("Opération impossible : %s", detail),
		Category: "workflow",
		Action:   "Actualisez la page pour voir l'état actuel.",
	}
}

// NewNotFoundError は存在しないリソースへの操作エラーを生成する。
// resourceは「membre」「projet」のような利用者向けの名称を渡す。
func NewNotFoundError(resource string) *APIError {
	return &APIError{
		Code:     ErrCodeNotFound,
		Message:  fmt.Sprintf("%s introuvable.", resource),
		Category: "workflow",
		Action:   "Vérifiez l'identifiant et réessayez.",
	}
}

// NewPayloadTooLargeError はアップロードサイズ超過エラーを生成する。
func NewPayloadTooLargeError(maxBytes int64) *APIError {
	return &APIError{
		Code:     ErrCodePayloadTooLarge,
		Message:  fmt.Sprintf("Le fichier dépasse la taille maximale autorisée (%d Mo).", maxBytes/(1024*1024)),
		Category: "media",
		Action:   "Réduisez la taille du fichier et réessayez.",
	}
}

// NewUnsupportedMediaTypeError は許可されていないファイル形式エラーを生成する。
func NewUnsupportedMediaTypeError(mimeType string) *APIError {
	return &APIError{
		Code:     ErrCodeUnsupportedMediaType,
		Message:  fmt.Sprintf("Format de fichier non pris en charge : %s", mimeType),
		Category: "media",
		Action:   "Utilisez un format autorisé (images : JPEG, PNG, WebP, GIF ; documents : PDF, DOC, DOCX).",
	}
}

// NewRateLimitedError はレート制限超過エラーを生成する。
func NewRateLimitedError() *APIError {
	return &APIError{
		Code:     ErrCodeRateLimited,
		Message:  "Trop de tentatives.",
		Category: "auth",
		Action:   "Patientez quelques instants avant de réessayer.",
	}
}

// NewInternalError は内部エラーを生成する。
// 詳細はログのみに記録し、利用者には一般的なメッセージを返す。
func NewInternalError() *APIError {
	return &APIError{
		Code:     ErrCodeInternal,
		Message:  "Une erreur interne est survenue.",
		Category: "system",
		Action:   "Patientez quelques instants puis réessayez.",
	}
}
