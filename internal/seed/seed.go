// Package seed は初期データの投入を提供する。
// 何度実行しても安全なように、既存データがある場合は作成をスキップする。
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/savoir/internal/model"
	"github.com/hitoshi/savoir/internal/repository"
)

// PasswordHasher はシード時のパスワードハッシュ化インターフェース。
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

// Repos はシード対象のリポジトリをまとめた構造体。
type Repos struct {
	Admins   repository.AdminRepository
	Contents repository.ContentRepository
	Projects repository.ProjectRepository
	Articles repository.ArticleRepository
	Members  repository.MemberRepository
}

// Seeder は初期データの投入を行う。
type Seeder struct {
	repos  Repos
	hasher PasswordHasher
	logger *slog.Logger
}

// NewSeeder はSeederを生成する。
func NewSeeder(repos Repos, hasher PasswordHasher, logger *slog.Logger) *Seeder {
	return &Seeder{
		repos:  repos,
		hasher: hasher,
		logger: logger,
	}
}

// defaultContent は未設定時に投入するサイト設定テキストの既定値。
var defaultContent = map[string]string{
	"mission": "Promouvoir l'éducation et l'accès au savoir pour tous les citoyens de Nouadhibou et de la Mauritanie. Nous croyons que l'éducation est la clé du développement durable.",
	"vision":  "Une Mauritanie où chaque personne a accès à une éducation de qualité, quel que soit son origine sociale ou économique.",
	"about":   "Fondée en 2020, l'ONG Porte du Savoir (Udditaare Ganndal) œuvre pour la promotion de l'éducation à Nouadhibou. Notre équipe de bénévoles dévoués travaille chaque jour pour offrir des opportunités d'apprentissage à ceux qui en ont le plus besoin.",
	"address": "Quartier Numerowatt, Nouadhibou, Mauritanie",
	"email":   "contact@portedusavoir.org",
	"phone":   "+222 45 00 00 00",
}

// Run は管理者アカウント・既定コンテンツ・デモデータを投入する。
// 管理者は同一メールアドレスが登録済みの場合スキップ、コンテンツは未設定の
// キーのみ投入する。プロジェクト・記事・会員はテーブルが空の場合のみ投入する。
func (s *Seeder) Run(ctx context.Context, email, password, name string) error {
	if err := s.seedAdmin(ctx, email, password, name); err != nil {
		return err
	}
	if err := s.seedContent(ctx); err != nil {
		return err
	}
	if err := s.seedProjects(ctx); err != nil {
		return err
	}
	if err := s.seedArticles(ctx); err != nil {
		return err
	}
	return s.seedMembers(ctx)
}

func (s *Seeder) seedAdmin(ctx context.Context, email, password, name string) error {
	if password == "" {
		return fmt.Errorf("seed admin password is empty")
	}

	existing, err := s.repos.Admins.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check existing admin: %w", err)
	}
	if existing != nil {
		s.logger.Info("admin already exists, skipping", slog.String("email", email))
		return nil
	}

	hash, err := s.hasher.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &model.Admin{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repos.Admins.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	s.logger.Info("admin created", slog.String("email", email))
	return nil
}

func (s *Seeder) seedContent(ctx context.Context) error {
	for key, value := range defaultContent {
		existing, err := s.repos.Contents.Get(ctx, key)
		if err != nil {
			return fmt.Errorf("failed to check content %s: %w", key, err)
		}
		if existing != nil {
			continue
		}
		entry := &model.ContentEntry{
			Key:       key,
			Value:     value,
			UpdatedAt: time.Now().UTC(),
		}
		if err := s.repos.Contents.Upsert(ctx, entry); err != nil {
			return fmt.Errorf("failed to seed content %s: %w", key, err)
		}
		s.logger.Info("content seeded", slog.String("key", key))
	}
	return nil
}

func (s *Seeder) seedProjects(ctx context.Context) error {
	count, err := s.repos.Projects.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count projects: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	projects := []*model.Project{
		{
			ID:          uuid.New().String(),
			Title:       "Programme d'Alphabétisation",
			Description: "Programme intensif d'alphabétisation pour les adultes de Nouadhibou. Ce projet vise à réduire l'analphabétisme dans notre communauté en offrant des cours gratuits adaptés aux besoins de chaque apprenant.",
			Objectives:  "Former 500 adultes à la lecture et l'écriture en arabe et français d'ici 2025",
			Status:      model.ProjectStatusEnCours,
			Date:        "2024-01-15",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          uuid.New().String(),
			Title:       "Bibliothèque Mobile",
			Description: "Création d'une bibliothèque mobile pour desservir les quartiers éloignés de Nouadhibou. Des livres, manuels scolaires et ressources éducatives sont mis à disposition gratuitement.",
			Objectives:  "Atteindre 1000 lecteurs par mois dans 10 quartiers différents",
			Status:      model.ProjectStatusEnCours,
			Date:        "2024-03-01",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          uuid.New().String(),
			Title:       "Formation Professionnelle Jeunes",
			Description: "Programme de formation aux métiers du numérique pour les jeunes de 18 à 30 ans. Initiation à l'informatique, bureautique et compétences digitales essentielles.",
			Objectives:  "Former 200 jeunes aux compétences numériques de base",
			Status:      model.ProjectStatusTermine,
			Date:        "2023-09-01",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}

	for _, p := range projects {
		if err := s.repos.Projects.Create(ctx, p); err != nil {
			return fmt.Errorf("failed to seed project %s: %w", p.Title, err)
		}
	}
	s.logger.Info("demo projects seeded", slog.Int("count", len(projects)))
	return nil
}

func (s *Seeder) seedArticles(ctx context.Context) error {
	count, err := s.repos.Articles.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count articles: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	articles := []*model.Article{
		{
			ID:        uuid.New().String(),
			Title:     "Inauguration du Centre de Formation",
			Content:   "Nous avons le plaisir d'annoncer l'inauguration de notre nouveau centre de formation à Nouadhibou. Ce centre permettra d'accueillir jusqu'à 100 apprenants simultanément dans des conditions optimales d'apprentissage. Les installations comprennent des salles de classe climatisées, une salle informatique équipée et une bibliothèque.",
			Excerpt:   "Notre nouveau centre de formation ouvre ses portes avec des installations modernes.",
			Category:  "Événements",
			Published: true,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:        uuid.New().String(),
			Title:     "Succès du Programme d'Été 2024",
			Content:   "Le programme d'été 2024 s'est achevé avec un succès remarquable. Plus de 300 enfants ont participé aux activités éducatives et récréatives organisées pendant les vacances scolaires. Au programme : soutien scolaire, ateliers de lecture, activités artistiques et sorties culturelles.",
			Excerpt:   "Plus de 300 enfants ont bénéficié de notre programme d'activités estivales.",
			Category:  "Actualités",
			Published: true,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	for _, a := range articles {
		if err := s.repos.Articles.Create(ctx, a); err != nil {
			return fmt.Errorf("failed to seed article %s: %w", a.Title, err)
		}
	}
	s.logger.Info("demo articles seeded", slog.Int("count", len(articles)))
	return nil
}

func (s *Seeder) seedMembers(ctx context.Context) error {
	count, err := s.repos.Members.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count members: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	members := []*model.Member{
		{
			ID:         uuid.New().String(),
			Name:       "Mohamed Ould Ahmed",
			Email:      "mohamed@example.com",
			Phone:      "+222 22 22 22 22",
			MemberType: model.MemberTypeFondateur,
			Bio:        "Président fondateur de l'ONG, enseignant à la retraite avec 30 ans d'expérience dans l'éducation.",
			CreatedAt:  now,
			UpdatedAt:  now,
		},
		{
			ID:         uuid.New().String(),
			Name:       "Fatima Mint Sidi",
			Email:      "fatima@example.com",
			Phone:      "+222 33 33 33 33",
			MemberType: model.MemberTypeFondateur,
			Bio:        "Secrétaire générale, spécialiste en développement communautaire.",
			CreatedAt:  now,
			UpdatedAt:  now,
		},
		{
			ID:         uuid.New().String(),
			Name:       "Amadou Ba",
			Email:      "amadou@example.com",
			Phone:      "+222 44 44 44 44",
			MemberType: model.MemberTypeActif,
			Bio:        "Bénévole actif, coordinateur des programmes jeunesse.",
			CreatedAt:  now,
			UpdatedAt:  now,
		},
	}

	for _, m := range members {
		if err := s.repos.Members.Create(ctx, m); err != nil {
			return fmt.Errorf("failed to seed member %s: %w", m.Name, err)
		}
	}
	s.logger.Info("demo members seeded", slog.Int("count", len(members)))
	return nil
}
