package todo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"anoa.com/videohub/internal/entity"
	todoDto "anoa.com/videohub/internal/modules/todo/dto"
	todoRepo "anoa.com/videohub/internal/modules/todo/repository"
	"anoa.com/videohub/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TodoService interface {
	List(ctx context.Context, userID uuid.UUID) ([]todoDto.TodoResponse, error)
	Create(ctx context.Context, userID uuid.UUID, req todoDto.CreateTodoRequest) (*todoDto.TodoResponse, error)
	Update(ctx context.Context, userID uuid.UUID, id uint, req todoDto.UpdateTodoRequest) (*todoDto.TodoResponse, error)
	Delete(ctx context.Context, userID uuid.UUID, id uint) error
}

type todoService struct {
	repo todoRepo.TodoRepository
}

func NewTodoService(repo todoRepo.TodoRepository) TodoService {
	return &todoService{repo: repo}
}

func toResponse(t *entity.Todo) todoDto.TodoResponse {
	return todoDto.TodoResponse{ID: t.ID, Name: t.Name, Completed: t.Completed}
}

func (s *todoService) List(ctx context.Context, userID uuid.UUID) ([]todoDto.TodoResponse, error) {
	todos, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]todoDto.TodoResponse, len(todos))
	for i := range todos {
		out[i] = toResponse(&todos[i])
	}
	return out, nil
}

func (s *todoService) Create(ctx context.Context, userID uuid.UUID, req todoDto.CreateTodoRequest) (*todoDto.TodoResponse, error) {
	todo := &entity.Todo{UserID: userID, Name: strings.TrimSpace(req.Name)}
	if err := s.repo.Create(ctx, todo); err != nil {
		return nil, err
	}
	resp := toResponse(todo)
	return &resp, nil
}

func (s *todoService) find(ctx context.Context, userID uuid.UUID, id uint) (*entity.Todo, error) {
	todo, err := s.repo.FindOwned(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("todo not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}
	return todo, nil
}

func (s *todoService) Update(ctx context.Context, userID uuid.UUID, id uint, req todoDto.UpdateTodoRequest) (*todoDto.TodoResponse, error) {
	todo, err := s.find(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		todo.Name = strings.TrimSpace(*req.Name)
	}
	if req.Completed != nil {
		todo.Completed = *req.Completed
	}

	if err := s.repo.Save(ctx, todo); err != nil {
		return nil, err
	}
	resp := toResponse(todo)
	return &resp, nil
}

func (s *todoService) Delete(ctx context.Context, userID uuid.UUID, id uint) error {
	todo, err := s.find(ctx, userID, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, todo)
}
