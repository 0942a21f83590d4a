package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/gov-dx-sandbox/member-service/v1/models"
	"gorm.io/gorm"
)

// MemberRepository is the persistence boundary for members
type MemberRepository interface {
	// Save inserts the member when its ID is zero and updates it otherwise.
	// On insert the assigned ID is written back into member. Updating an id
	// with no row returns models.ErrMemberNotFound; it never inserts.
	Save(ctx context.Context, member *models.Member) (*models.Member, error)
	// FindByID reports found=false, with a nil error, when no row matches
	FindByID(ctx context.Context, id int64) (models.Member, bool, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	DeleteByID(ctx context.Context, id int64) error
	// FindAll returns every member ordered by id, never nil
	FindAll(ctx context.Context) ([]models.Member, error)
	// Transaction runs fn against a repository bound to a single database
	// transaction. It commits when fn returns nil and rolls back otherwise.
	Transaction(ctx context.Context, fn func(repo MemberRepository) error) error
	Ping(ctx context.Context) error
}

// GormRepository implements MemberRepository using GORM (works with SQLite or PostgreSQL)
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a new repository
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// Save persists a member
func (r *GormRepository) Save(ctx context.Context, member *models.Member) (*models.Member, error) {
	if member.ID == 0 {
		if err := r.db.WithContext(ctx).Create(member).Error; err != nil {
			return nil, fmt.Errorf("failed to create member: %w", err)
		}
		return member, nil
	}
	result := r.db.WithContext(ctx).Model(member).Select("name", "age").Updates(member)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update member %d: %w", member.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, models.NewMemberNotFoundError(member.ID)
	}
	return member, nil
}

// FindByID retrieves a member by id
func (r *GormRepository) FindByID(ctx context.Context, id int64) (models.Member, bool, error) {
	var member models.Member
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Member{}, false, nil
		}
		return models.Member{}, false, fmt.Errorf("failed to find member %d: %w", id, err)
	}
	return member, true, nil
}

// ExistsByID reports whether a member with the given id exists
func (r *GormRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Member{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check member %d: %w", id, err)
	}
	return count > 0, nil
}

// DeleteByID removes the member with the given id. Deleting a missing id is not an error.
func (r *GormRepository) DeleteByID(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Member{}).Error; err != nil {
		return fmt.Errorf("failed to delete member %d: %w", id, err)
	}
	return nil
}

// FindAll retrieves all members
func (r *GormRepository) FindAll(ctx context.Context) ([]models.Member, error) {
	var members []models.Member
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&members).Error; err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	if members == nil {
		members = []models.Member{}
	}
	return members, nil
}

// Transaction executes fn inside a database transaction
func (r *GormRepository) Transaction(ctx context.Context, fn func(repo MemberRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormRepository{db: tx})
	})
}

// Ping checks database connectivity
func (r *GormRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
