// Package stats はサイトの集計値の読み取りを提供する。
package stats

import (
	"context"
	"fmt"

	"github.com/hitoshi/savoir/internal/model"
	"github.com/hitoshi/savoir/internal/repository"
)

// PublicStats は一般公開向けの集計値
type PublicStats struct {
	Members           int `json:"members"`
	Projects          int `json:"projects"`
	PublishedArticles int `json:"published_articles"`
}

// AdminStats は管理画面向けの集計値
type AdminStats struct {
	PublicStats
	PendingApplications int `json:"pending_applications"`
	UnreadMessages      int `json:"unread_messages"`
	TotalMessages       int `json:"total_messages"`
	TotalArticles       int `json:"total_articles"`
}

// Service はリポジトリ横断の集計を行う読み取り専用サービス
type Service struct {
	members      repository.MemberRepository
	projects     repository.ProjectRepository
	articles     repository.ArticleRepository
	applications repository.ApplicationRepository
	messages     repository.MessageRepository
}

// NewService はServiceを生成する
func NewService(
	members repository.MemberRepository,
	projects repository.ProjectRepository,
	articles repository.ArticleRepository,
	applications repository.ApplicationRepository,
	messages repository.MessageRepository,
) *Service {
	return &Service{
		members:      members,
		projects:     projects,
		articles:     articles,
		applications: applications,
		messages:     messages,
	}
}

// Public は一般公開向けの集計値を返す
func (s *Service) Public(ctx context.Context) (*PublicStats, error) {
	members, err := s.members.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count members: %w", err)
	}
	projects, err := s.projects.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count projects: %w", err)
	}
	published, err := s.articles.CountPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count published articles: %w", err)
	}
	return &PublicStats{
		Members:           members,
		Projects:          projects,
		PublishedArticles: published,
	}, nil
}

// Admin は管理画面向けの集計値を返す
func (s *Service) Admin(ctx context.Context) (*AdminStats, error) {
	public, err := s.Public(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.applications.CountByStatus(ctx, model.ApplicationStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending applications: %w", err)
	}
	unread, err := s.messages.CountUnread(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count unread messages: %w", err)
	}
	totalMsgs, err := s.messages.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count messages: %w", err)
	}
	totalArticles, err := s.articles.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count articles: %w", err)
	}
	return &AdminStats{
		PublicStats:         *public,
		PendingApplications: pending,
		UnreadMessages:      unread,
		TotalMessages:       totalMsgs,
		TotalArticles:       totalArticles,
	}, nil
}
