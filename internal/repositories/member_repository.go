package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"project-hub.com/project-hub/internal/constants"
	apperrors "project-hub.com/project-hub/internal/errors"
	model "project-hub.com/project-hub/pkg/models"
)

// MemberRepository mutates a project's member list with single conditional statements,
// never read-modify-write on the project row.
type MemberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

func (r *MemberRepository) FindMember(ctx context.Context, projectID, userID string) (*model.Member, error) {
	var member model.Member
	err := r.db.WithContext(ctx).
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select(model.UserSummaryColumns)
		}).
		First(&member, "project_id = ? AND user_id = ?", projectID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

// ListMembers returns the members of a project, all of them when role is empty.
func (r *MemberRepository) ListMembers(ctx context.Context, projectID string, role constants.Role) ([]model.Member, error) {
	query := r.db.WithContext(ctx).
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select(model.UserSummaryColumns)
		}).
		Where("project_id = ?", projectID)
	if role != "" {
		query = query.Where("role = ?", role)
	}

	var members []model.Member
	err := query.Order("created_at asc").Find(&members).Error
	return members, err
}

// InsertMember adds userID with the plain member role. The (project_id, user_id) unique
// index makes the insert a set-if-absent; a conflicting row reports ErrAlreadyMember.
func (r *MemberRepository) InsertMember(ctx context.Context, projectID, userID string) (*model.Member, error) {
	member := &model.Member{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		UserID:    userID,
		Role:      constants.RoleMember,
		Owner:     false,
	}

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(member)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.ErrAlreadyMember
	}

	return r.FindMember(ctx, projectID, userID)
}

func (r *MemberRepository) SetRole(ctx context.Context, projectID, userID string, role constants.Role) error {
	query := r.db.WithContext(ctx).Model(&model.Member{}).
		Where("project_id = ? AND user_id = ?", projectID, userID)
	if role != constants.RoleAdmin {
		query = query.Where("owner = ?", false)
	}

	res := query.Update("role", role)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.missingOrOwner(ctx, projectID, userID)
	}
	return nil
}

// DeleteMember removes a non-owner member. Tasks assigned to the member are left untouched.
func (r *MemberRepository) DeleteMember(ctx context.Context, projectID, userID string) error {
	res := r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ? AND owner = ?", projectID, userID, false).
		Delete(&model.Member{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.missingOrOwner(ctx, projectID, userID)
	}
	return nil
}

func (r *MemberRepository) missingOrOwner(ctx context.Context, projectID, userID string) error {
	member, err := r.FindMember(ctx, projectID, userID)
	if err != nil {
		return err
	}
	if member.Owner {
		return apperrors.ErrOwnerImmutable
	}
	return apperrors.ErrMemberNotFound
}
