package implementation

import (
	"context"
	"errors"

	"hustlee-be/internal/entity"
	"hustlee-be/internal/mapper"
	"hustlee-be/internal/model"
	"hustlee-be/internal/repository/contract"
	"hustlee-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MentorProfileRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MentorProfileMapper
}

func NewMentorProfileRepository(db *gorm.DB) contract.MentorProfileRepository {
	return &MentorProfileRepositoryImpl{
		db:     db,
		mapper: mapper.NewMentorProfileMapper(),
	}
}

func (r *MentorProfileRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *MentorProfileRepositoryImpl) Create(ctx context.Context, profile *entity.MentorProfile) error {
	m := r.mapper.ToModel(profile)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*profile = *r.mapper.ToEntity(m)
	return nil
}

func (r *MentorProfileRepositoryImpl) Update(ctx context.Context, profile *entity.MentorProfile) error {
	m := r.mapper.ToModel(profile)
	// Availability rows are managed through ReplaceAvailability, not Save.
	if err := r.db.WithContext(ctx).Omit("Availability").Save(m).Error; err != nil {
		return err
	}
	return nil
}

func (r *MentorProfileRepositoryImpl) ReplaceAvailability(ctx context.Context, profileId uuid.UUID, windows []entity.AvailabilityWindow) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("mentor_profile_id = ?", profileId).Delete(&model.AvailabilityWindow{}).Error; err != nil {
		return err
	}
	if len(windows) == 0 {
		return nil
	}
	rows := make([]model.AvailabilityWindow, len(windows))
	for i, w := range windows {
		rows[i] = model.AvailabilityWindow{
			Id:              w.Id,
			MentorProfileId: profileId,
			Weekday:         int(w.Weekday),
			StartMinute:     w.StartMinute,
			EndMinute:       w.EndMinute,
		}
	}
	return tx.Create(&rows).Error
}

func (r *MentorProfileRepositoryImpl) UpdateRating(ctx context.Context, profileId uuid.UUID, rating float64, count int) error {
	return r.db.WithContext(ctx).Model(&model.MentorProfile{}).
		Where("id = ?", profileId).
		Updates(map[string]interface{}{
			"rating":       rating,
			"rating_count": count,
		}).Error
}

func (r *MentorProfileRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.MentorProfile, error) {
	var m model.MentorProfile
	query := r.applySpecifications(r.db.WithContext(ctx).Preload("Availability"), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *MentorProfileRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MentorProfile, error) {
	var models []*model.MentorProfile
	query := r.applySpecifications(r.db.WithContext(ctx).Preload("Availability"), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *MentorProfileRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.MentorProfile{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
