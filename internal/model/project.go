package model

import "time"

// ProjectStatus はプロジェクトの進行状態を表す。
type ProjectStatus string

const (
	// ProjectStatusEnCours は進行中のプロジェクト。
	ProjectStatusEnCours ProjectStatus = "en_cours"
	// ProjectStatusTermine は完了したプロジェクト。
	ProjectStatusTermine ProjectStatus = "termine"
)

// IsValid は既知のプロジェクト状態かどうかを返す。
func (s ProjectStatus) IsValid() bool {
	return s == ProjectStatusEnCours || s == ProjectStatusTermine
}

// Project は団体の活動プロジェクトを表す。
type Project struct {
	ID          string
	Title       string
	Description string
	Objectives  string
	Status      ProjectStatus
	ImageURL    string
	Date        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
