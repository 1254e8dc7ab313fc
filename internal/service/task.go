package service

import (
	"context"
	"strings"

	"github.com/crewly/api/internal/model"
)

// TaskRepository defines the interface for task storage
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	GetByID(ctx context.Context, id string) (*model.Task, error)
	ListByEvent(ctx context.Context, eventID string) ([]*model.Task, error)
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, id string) error
}

// TaskService handles task business logic
type TaskService struct {
	taskRepo   TaskRepository
	eventRepo  EventRepository
	userRepo   UserRepository
	membership *MembershipResolver
}

// TaskServiceConfig holds configuration for the task service
type TaskServiceConfig struct {
	TaskRepo   TaskRepository
	EventRepo  EventRepository
	UserRepo   UserRepository
	Membership *MembershipResolver
}

// NewTaskService creates a new task service
func NewTaskService(cfg TaskServiceConfig) *TaskService {
	return &TaskService{
		taskRepo:   cfg.TaskRepo,
		eventRepo:  cfg.EventRepo,
		userRepo:   cfg.UserRepo,
		membership: cfg.Membership,
	}
}

// Create creates a new task. Only organizers of the target event may
// create tasks.
func (s *TaskService) Create(ctx context.Context, requesterID string, req model.CreateTaskRequest) (*model.Task, error) {
	event, err := s.eventRepo.GetByID(ctx, req.EventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	if err := s.membership.RequireOrganizer(ctx, requesterID, req.EventID); err != nil {
		return nil, err
	}

	assignee, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if assignee == nil {
		return nil, ErrUserNotFound
	}

	status := req.Status
	if status == "" {
		status = model.TaskStatusNotStarted
	}

	task := &model.Task{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Status:      status,
		EventID:     req.EventID,
		UserID:      req.UserID,
	}

	if err := validateTask(task); err != nil {
		return nil, err
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Get retrieves a task. Visible to members of the task's event.
func (s *TaskService) Get(ctx context.Context, requesterID, taskID string) (*model.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}

	if err := s.membership.RequireMember(ctx, requesterID, task.EventID); err != nil {
		return nil, err
	}
	return task, nil
}

// ListByEvent retrieves all tasks for an event. Visible to members.
func (s *TaskService) ListByEvent(ctx context.Context, requesterID, eventID string) ([]*model.Task, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	if err := s.membership.RequireMember(ctx, requesterID, eventID); err != nil {
		return nil, err
	}

	return s.taskRepo.ListByEvent(ctx, eventID)
}

// Update updates a task. Only organizers of the task's event may modify
// tasks.
func (s *TaskService) Update(ctx context.Context, requesterID, taskID string, req model.UpdateTaskRequest) (*model.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}

	if err := s.membership.RequireOrganizer(ctx, requesterID, task.EventID); err != nil {
		return nil, err
	}

	if req.Title != nil {
		task.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		task.Description = strings.TrimSpace(*req.Description)
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	if req.UserID != nil {
		assignee, err := s.userRepo.GetByID(ctx, *req.UserID)
		if err != nil {
			return nil, err
		}
		if assignee == nil {
			return nil, ErrUserNotFound
		}
		task.UserID = *req.UserID
	}

	if err := validateTask(task); err != nil {
		return nil, err
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Delete deletes a task. Only organizers of the task's event may delete
// tasks.
func (s *TaskService) Delete(ctx context.Context, requesterID, taskID string) error {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return err
	}
	if task == nil {
		return ErrTaskNotFound
	}

	if err := s.membership.RequireOrganizer(ctx, requesterID, task.EventID); err != nil {
		return err
	}

	return s.taskRepo.Delete(ctx, taskID)
}

func validateTask(task *model.Task) error {
	if task.Title == "" {
		return ErrTaskTitleRequired
	}
	if len(task.Title) > model.MaxTaskTitleLength {
		return ErrTaskTitleTooLong
	}
	if !task.Status.IsValid() {
		return ErrInvalidTaskStatus
	}
	return nil
}
