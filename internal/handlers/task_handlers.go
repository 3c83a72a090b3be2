package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"taskPlanner/internal/datetime"
	"taskPlanner/internal/handlers/dto"
	"taskPlanner/internal/logger"
	"taskPlanner/internal/middleware"
	"taskPlanner/internal/models/user"
	"taskPlanner/internal/service"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	serviceName     = "task-planner"
	jsonContentType = "application/json"
)

type TaskHandler struct {
	TaskService Service
	now         func() time.Time
}

func NewTaskHandler(taskService Service) TaskHandler {
	return TaskHandler{
		TaskService: taskService,
		now:         time.Now,
	}
}

// Routes mounts the task endpoints on r, typically under /api/tasks.
func (s *TaskHandler) Routes(r chi.Router) {
	r.Get("/", s.GetActiveTasks)
	r.Post("/", s.PostTask)

	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", s.GetTaskByID)
		r.Put("/", s.UpdateTaskByID)
		r.Patch("/", s.PatchTaskByID)
		r.Delete("/", s.DeleteTaskByID)
	})
}

// GetActiveTasks lists the caller's tasks overlapping [startDate, dueDate].
// Without either date the window is today. isActive defaults to true.
func (s *TaskHandler) GetActiveTasks(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	principal, ok := s.principal(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()

	startDate, err := parseQueryDate(query.Get(service.KeyStartDate), service.KeyStartDate)
	if err != nil {
		handleError(w, r, err, "Failed to list tasks", "list_tasks")
		return
	}
	dueDate, err := parseQueryDate(query.Get(service.KeyDueDate), service.KeyDueDate)
	if err != nil {
		handleError(w, r, err, "Failed to list tasks", "list_tasks")
		return
	}
	if startDate == nil && dueDate == nil {
		dayStart, dayEnd := datetime.DayBounds(datetime.Naive(s.now()))
		startDate, dueDate = &dayStart, &dayEnd
	}

	activeOnly := true
	if raw := query.Get("isActive"); raw != "" {
		activeOnly, err = strconv.ParseBool(raw)
		if err != nil {
			logger.Warn("HTTP: Invalid query parameter",
				zap.String("query", "isActive"),
				zap.String("value", raw),
				zap.String("client_ip", r.RemoteAddr))
			handleBusinessError(w, service.NewValidationError("isActive", "must be true or false"))
			return
		}
	}

	tasks, err := s.TaskService.ActiveByOwnerAndWindow(r.Context(), principal.ID, startDate, dueDate, activeOnly)
	if err != nil {
		handleError(w, r, err, "Failed to list tasks", "list_tasks")
		return
	}

	logger.Info("HTTP_OUT: Tasks listed",
		zap.Int("count", len(tasks)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithBody(w, http.StatusOK, dto.FromTaskList(tasks))
}

func (s *TaskHandler) GetTaskByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	principal, ok := s.principal(w, r)
	if !ok {
		return
	}
	id, ok := taskID(w, r)
	if !ok {
		return
	}

	found, err := s.TaskService.GetTask(r.Context(), principal, id)
	if err != nil {
		handleError(w, r, err, "Failed to get task", "get_task")
		return
	}

	logger.Info("HTTP_OUT: Task fetched",
		zap.Int64("task_id", found.ID),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithBody(w, http.StatusOK, dto.FromTaskDetail(found))
}

func (s *TaskHandler) PostTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	principal, ok := s.principal(w, r)
	if !ok {
		return
	}
	request, ok := decodeTaskRequest(w, r)
	if !ok {
		return
	}

	created, err := s.TaskService.Create(r.Context(), principal, request.ToFields())
	if err != nil {
		handleError(w, r, err, "Failed to create task", "create_task")
		return
	}

	logger.Info("HTTP_OUT: Task created",
		zap.Int64("task_id", created.ID),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	responseWithJSON(w, http.StatusCreated,
		toPayload("message", "Task created successfully."),
		toPayload("id", created.ID),
	)
}

func (s *TaskHandler) UpdateTaskByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	principal, ok := s.principal(w, r)
	if !ok {
		return
	}
	id, ok := taskID(w, r)
	if !ok {
		return
	}
	request, ok := decodeTaskRequest(w, r)
	if !ok {
		return
	}

	if err := s.TaskService.UpdateTask(r.Context(), principal, id, request.ToFields()); err != nil {
		handleError(w, r, err, "Failed to update task", "full_update_task")
		return
	}

	logger.Info("HTTP_OUT: Task updated",
		zap.Int64("task_id", id),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusNoContent))

	w.WriteHeader(http.StatusNoContent)
}

func (s *TaskHandler) PatchTaskByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	principal, ok := s.principal(w, r)
	if !ok {
		return
	}
	id, ok := taskID(w, r)
	if !ok {
		return
	}
	request, ok := decodeTaskRequest(w, r)
	if !ok {
		return
	}

	updated, err := s.TaskService.PatchTask(r.Context(), principal, id, request.ToFields())
	if err != nil {
		handleError(w, r, err, "Failed to update task", "partial_update_task")
		return
	}

	logger.Info("HTTP_OUT: Task patched",
		zap.Int64("task_id", id),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithBody(w, http.StatusOK, dto.FromTaskDetail(updated))
}

func (s *TaskHandler) DeleteTaskByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	principal, ok := s.principal(w, r)
	if !ok {
		return
	}
	id, ok := taskID(w, r)
	if !ok {
		return
	}

	if err := s.TaskService.DeleteTask(r.Context(), principal, id); err != nil {
		handleError(w, r, err, "Failed to delete task", "delete_task")
		return
	}

	logger.Info("HTTP_OUT: Task deleted",
		zap.Int64("task_id", id),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusNoContent))

	w.WriteHeader(http.StatusNoContent)
}

func (s *TaskHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP: Health check")

	if err := s.TaskService.HealthCheck(r.Context()); err != nil {
		logger.Error("HTTP: Health check failed", err)
		responseWithJSON(w, http.StatusServiceUnavailable,
			toPayload("status", "unavailable"),
			toPayload("service", serviceName),
		)
		return
	}

	responseWithJSON(w, http.StatusOK,
		toPayload("status", "ok"),
		toPayload("service", serviceName),
		toPayload("time", datetime.Format(datetime.Naive(s.now()))),
	)
}

func (s *TaskHandler) principal(w http.ResponseWriter, r *http.Request) (*user.User, bool) {
	principal := middleware.PrincipalFromContext(r.Context())
	if principal == nil {
		logger.Warn("HTTP: No principal on request", zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication credentials were not provided or are invalid.")
		return nil, false
	}
	return principal, true
}

func taskID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idParam := chi.URLParam(r, "id")
	id, ok := parseID(idParam)
	if !ok {
		logger.Warn("HTTP: Invalid task id",
			zap.String("id", idParam),
			zap.String("client_ip", r.RemoteAddr))
		handleBusinessError(w, service.NewValidationError("id", "must be a positive integer"))
		return 0, false
	}
	return id, true
}

func decodeTaskRequest(w http.ResponseWriter, r *http.Request) (dto.TaskRequest, bool) {
	var request dto.TaskRequest

	if !checkContentType(r, jsonContentType) {
		logger.Warn("HTTP: Invalid content type",
			zap.String("expected", jsonContentType),
			zap.String("received", r.Header.Get("Content-Type")),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE", "Content-Type must be application/json")
		return request, false
	}

	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: Failed to read JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "INVALID_BODY", "Request body must be a JSON object")
		return request, false
	}
	return request, true
}

func parseQueryDate(raw, key string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := datetime.Parse(raw)
	if err != nil {
		return nil, service.NewInvalidDateTimeFormat(key, err)
	}
	return &parsed, nil
}
