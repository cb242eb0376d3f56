package model

import "time"

// ApplicationStatus は入会申請の状態を表す。
type ApplicationStatus string

const (
	// ApplicationStatusPending は管理者の判断待ちの状態。
	ApplicationStatusPending ApplicationStatus = "pending"
	// ApplicationStatusApproved は承認済みの終端状態。
	ApplicationStatusApproved ApplicationStatus = "approved"
	// ApplicationStatusRejected は却下済みの終端状態。
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// IsValid は既知の申請状態かどうかを返す。
func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusApproved, ApplicationStatusRejected:
		return true
	}
	return false
}

// MemberType は会員の種別を表す。
type MemberType string

const (
	// MemberTypeFondateur は創設会員。
	MemberTypeFondateur MemberType = "fondateur"
	// MemberTypeActif は活動会員。
	MemberTypeActif MemberType = "actif"
	// MemberTypeHonneur は名誉会員。
	MemberTypeHonneur MemberType = "honneur"
)

// IsValid は既知の会員種別かどうかを返す。
func (t MemberType) IsValid() bool {
	switch t {
	case MemberTypeFondateur, MemberTypeActif, MemberTypeHonneur:
		return true
	}
	return false
}

// MemberApplication は一般公開フォームから届いた入会申請を表す。
// pendingで作成され、管理者の承認または却下で終端状態に遷移する。
// 終端状態からの再遷移は存在しない。
type MemberApplication struct {
	ID          string
	Name        string
	Email       string
	Phone       string
	Motivation  string
	Status      ApplicationStatus
	SubmittedAt time.Time
	DecidedAt   *time.Time
}

// Member は承認済みの会員レコードを表す。
// 申請の承認時に自動作成されるか、管理者が直接作成する。
type Member struct {
	ID         string
	Name       string
	Email      string
	Phone      string
	MemberType MemberType
	Bio        string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
