package repository

import (
	"context"

	"anoa.com/videohub/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TodoRepository interface {
	Create(ctx context.Context, todo *entity.Todo) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Todo, error)
	FindOwned(ctx context.Context, id uint, userID uuid.UUID) (*entity.Todo, error)
	Save(ctx context.Context, todo *entity.Todo) error
	Delete(ctx context.Context, todo *entity.Todo) error
}

type todoRepository struct {
	db *gorm.DB
}

func NewTodoRepository(db *gorm.DB) TodoRepository {
	return &todoRepository{db: db}
}

func (r *todoRepository) Create(ctx context.Context, todo *entity.Todo) error {
	return r.db.WithContext(ctx).Create(todo).Error
}

func (r *todoRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Todo, error) {
	var todos []entity.Todo
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&todos).Error
	return todos, err
}

func (r *todoRepository) FindOwned(ctx context.Context, id uint, userID uuid.UUID) (*entity.Todo, error) {
	var todo entity.Todo
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&todo).Error; err != nil {
		return nil, err
	}
	return &todo, nil
}

func (r *todoRepository) Save(ctx context.Context, todo *entity.Todo) error {
	return r.db.WithContext(ctx).
		Model(todo).
		Updates(map[string]interface{}{"name": todo.Name, "completed": todo.Completed}).Error
}

func (r *todoRepository) Delete(ctx context.Context, todo *entity.Todo) error {
	return r.db.WithContext(ctx).Delete(todo).Error
}
