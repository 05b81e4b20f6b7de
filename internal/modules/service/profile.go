package service

import (
	"context"

	"github.com/folioworks/profile-service/internal/modules/model"
	"github.com/folioworks/profile-service/internal/modules/repo"
)

// ProfileService is a stateless façade over the aggregate store. It mirrors
// the store operation for operation and adds no validation or translation;
// it exists so the HTTP layer depends on an interface it can substitute in
// tests.
type ProfileService interface {
	CreateProfile(ctx context.Context, u *model.User) error
	GetProfile(ctx context.Context, id uint) (*model.User, error)
	ListProfiles(ctx context.Context, limit, offset int) ([]*model.User, error)
	UpdateProfile(ctx context.Context, id uint, patch repo.UserPatch) error
	AddSkill(ctx context.Context, id uint, skill string) error
	DeleteProfile(ctx context.Context, id uint) (int64, error)
	ReplaceWorkHistory(ctx context.Context, userID uint, entries []model.Work) error
	ReplaceEducation(ctx context.Context, userID uint, entries []model.Education) error
	AddProject(ctx context.Context, userID uint, p *model.Project) error
}

type profileService struct {
	r repo.UserRepo
}

func NewProfileService(r repo.UserRepo) ProfileService {
	return &profileService{r: r}
}

func (s *profileService) CreateProfile(ctx context.Context, u *model.User) error {
	return s.r.Create(ctx, u)
}

func (s *profileService) GetProfile(ctx context.Context, id uint) (*model.User, error) {
	return s.r.GetByID(ctx, id)
}

func (s *profileService) ListProfiles(ctx context.Context, limit, offset int) ([]*model.User, error) {
	return s.r.List(ctx, limit, offset)
}

func (s *profileService) UpdateProfile(ctx context.Context, id uint, patch repo.UserPatch) error {
	return s.r.Update(ctx, id, patch)
}

func (s *profileService) AddSkill(ctx context.Context, id uint, skill string) error {
	return s.r.AddSkill(ctx, id, skill)
}

func (s *profileService) DeleteProfile(ctx context.Context, id uint) (int64, error) {
	return s.r.Delete(ctx, id)
}

func (s *profileService) ReplaceWorkHistory(ctx context.Context, userID uint, entries []model.Work) error {
	return s.r.ReplaceWorkHistory(ctx, userID, entries)
}

func (s *profileService) ReplaceEducation(ctx context.Context, userID uint, entries []model.Education) error {
	return s.r.ReplaceEducation(ctx, userID, entries)
}

func (s *profileService) AddProject(ctx context.Context, userID uint, p *model.Project) error {
	return s.r.AddProject(ctx, userID, p)
}
