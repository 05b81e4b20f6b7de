package repo

import (
	"context"
	"errors"
	"slices"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/folioworks/profile-service/internal/modules/model"
)

// DefaultListLimit is applied when the caller passes a non-positive limit.
const DefaultListLimit = 10

// UserRepo is the aggregate store for the User aggregate. Every read and
// write of users and their child collections goes through it.
type UserRepo interface {
	// Create inserts the user and any nested children in one transaction.
	Create(ctx context.Context, u *model.User) error
	// GetByID eager-loads all three child collections. Returns (nil, nil)
	// when the user does not exist.
	GetByID(ctx context.Context, id uint) (*model.User, error)
	// List returns a page of users with children, ordered by id ascending.
	List(ctx context.Context, limit, offset int) ([]*model.User, error)
	// Update applies a partial scalar update. No-op when the user is absent.
	Update(ctx context.Context, id uint, patch UserPatch) error
	// AddSkill appends skill to the user's skill list unless already present
	// (case-sensitive). No-op when the user is absent.
	AddSkill(ctx context.Context, id uint, skill string) error
	// Delete removes the user; children go via the database cascade.
	// Returns the number of user rows deleted (0 or 1).
	Delete(ctx context.Context, id uint) (int64, error)
	// ReplaceWorkHistory discards all existing work rows for the user and
	// inserts entries fresh, atomically. An empty slice is a valid clear.
	ReplaceWorkHistory(ctx context.Context, userID uint, entries []model.Work) error
	// ReplaceEducation is the education counterpart of ReplaceWorkHistory.
	ReplaceEducation(ctx context.Context, userID uint, entries []model.Education) error
	// AddProject inserts a single project under the user. Purely additive;
	// projects have no replace-all path. The generated id is written back
	// onto p.
	AddProject(ctx context.Context, userID uint, p *model.Project) error
}

// UserPatch carries the scalar user fields of a partial update. Nil fields
// are left untouched.
type UserPatch struct {
	Name          *string
	Email         *string
	GithubLink    *string
	LinkedinLink  *string
	PortfolioLink *string
}

type userRepo struct {
	db    *gorm.DB
	cache *ProfileCache // nil disables caching
}

func NewUserRepo(db *gorm.DB, cache *ProfileCache) UserRepo {
	return &userRepo{db: db, cache: cache}
}

// classify maps translated gorm constraint errors onto the store's sentinel
// errors. The only unique constraint in the schema is users.email and the
// only foreign keys point at users.id, so the mapping is unambiguous.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateEmail
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrUserNotFound
	default:
		return err
	}
}

func (r *userRepo) Create(ctx context.Context, u *model.User) error {
	if u.Name == "" || u.Email == "" {
		return ErrInvalidInput
	}
	// Association create: nested projects/work/education are inserted in the
	// same transaction with user_id pointing at the new row.
	return classify(r.db.WithContext(ctx).Create(u).Error)
}

func (r *userRepo) GetByID(ctx context.Context, id uint) (*model.User, error) {
	if u, ok := r.cache.Get(ctx, id); ok {
		return u, nil
	}

	var u model.User
	err := r.db.WithContext(ctx).
		Preload("Projects").
		Preload("WorkHistory").
		Preload("Education").
		First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	r.cache.Set(ctx, &u)
	return &u, nil
}

func (r *userRepo) List(ctx context.Context, limit, offset int) ([]*model.User, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if offset < 0 {
		offset = 0
	}

	var users []*model.User
	err := r.db.WithContext(ctx).
		Preload("Projects").
		Preload("WorkHistory").
		Preload("Education").
		Order("users.id ASC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	return users, err
}

func (r *userRepo) Update(ctx context.Context, id uint, patch UserPatch) error {
	vals := map[string]any{}
	if patch.Name != nil {
		vals["name"] = *patch.Name
	}
	if patch.Email != nil {
		vals["email"] = *patch.Email
	}
	if patch.GithubLink != nil {
		vals["github_link"] = *patch.GithubLink
	}
	if patch.LinkedinLink != nil {
		vals["linkedin_link"] = *patch.LinkedinLink
	}
	if patch.PortfolioLink != nil {
		vals["portfolio_link"] = *patch.PortfolioLink
	}
	if len(vals) == 0 {
		return nil
	}

	// Updates on a missing id affects zero rows, which is the contract:
	// updating an absent user is a no-op, not an error.
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Updates(vals).Error
	if err != nil {
		return classify(err)
	}

	r.cache.Invalidate(ctx, id)
	return nil
}

func (r *userRepo) AddSkill(ctx context.Context, id uint, skill string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx
		// The append is a read-modify-write of the whole skill list. On
		// Postgres a row lock serializes concurrent appends for the same
		// user; sqlite's single-writer transaction gives the same guarantee
		// without (and without support for) FOR UPDATE.
		if tx.Dialector.Name() == "postgres" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var u model.User
		if err := q.First(&u, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		if slices.Contains(u.Skills, skill) {
			return nil
		}
		u.Skills = append(u.Skills, skill)
		return tx.Model(&u).Update("skills", u.Skills).Error
	})
	if err != nil {
		return err
	}

	r.cache.Invalidate(ctx, id)
	return nil
}

func (r *userRepo) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&model.User{}, id)
	if res.Error != nil {
		return 0, res.Error
	}

	r.cache.Invalidate(ctx, id)
	return res.RowsAffected, nil
}

func (r *userRepo) ReplaceWorkHistory(ctx context.Context, userID uint, entries []model.Work) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.Work{}).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		for i := range entries {
			entries[i].ID = 0
			entries[i].UserID = userID
		}
		return tx.Create(&entries).Error
	})
	if err != nil {
		return classify(err)
	}

	r.cache.Invalidate(ctx, userID)
	return nil
}

func (r *userRepo) ReplaceEducation(ctx context.Context, userID uint, entries []model.Education) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.Education{}).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		for i := range entries {
			entries[i].ID = 0
			entries[i].UserID = userID
		}
		return tx.Create(&entries).Error
	})
	if err != nil {
		return classify(err)
	}

	r.cache.Invalidate(ctx, userID)
	return nil
}

func (r *userRepo) AddProject(ctx context.Context, userID uint, p *model.Project) error {
	if p.Title == "" {
		return ErrInvalidInput
	}
	p.ID = 0
	p.UserID = userID
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return classify(err)
	}

	r.cache.Invalidate(ctx, userID)
	return nil
}
