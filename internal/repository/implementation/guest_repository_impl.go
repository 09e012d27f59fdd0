package implementation

import (
	"context"
	"errors"

	"eventchat-be/internal/entity"
	"eventchat-be/internal/mapper"
	"eventchat-be/internal/model"
	"eventchat-be/internal/repository/contract"
	"eventchat-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GuestRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatbotMapper
}

func NewGuestRepository(db *gorm.DB) contract.GuestRepository {
	return &GuestRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatbotMapper(),
	}
}

func (r *GuestRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *GuestRepositoryImpl) Create(ctx context.Context, guest *entity.Guest) error {
	m := r.mapper.GuestToModel(guest)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*guest = *r.mapper.GuestToEntity(m)
	return nil
}

func (r *GuestRepositoryImpl) Update(ctx context.Context, guest *entity.Guest) error {
	m := r.mapper.GuestToModel(guest)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*guest = *r.mapper.GuestToEntity(m)
	return nil
}

func (r *GuestRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Guest{}).Error
}

func (r *GuestRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Guest, error) {
	var m model.Guest
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.GuestToEntity(&m), nil
}

func (r *GuestRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Guest, error) {
	var models []*model.Guest
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.GuestsToEntities(models), nil
}

func (r *GuestRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Guest{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GuestRepositoryImpl) DeleteAllByChatbot(ctx context.Context, chatbotId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("chatbot_id = ?", chatbotId).Delete(&model.Guest{}).Error
}

func (r *GuestRepositoryImpl) DeleteAllByUser(ctx context.Context, userId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userId).Delete(&model.Guest{}).Error
}

// UnlinkUser keeps roster entries but detaches them from a deleted account.
func (r *GuestRepositoryImpl) UnlinkUser(ctx context.Context, userId uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Guest{}).
		Where("user_id = ?", userId).
		Update("user_id", nil).Error
}
