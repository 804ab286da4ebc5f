package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/opticstore/notify-queue/internal/api/dto"
	"github.com/opticstore/notify-queue/internal/api/respond"
	"github.com/opticstore/notify-queue/internal/config"
	"github.com/opticstore/notify-queue/internal/model"
	queuerepo "github.com/opticstore/notify-queue/internal/repository/queue"
	"github.com/opticstore/notify-queue/internal/worker"
)

//go:generate mockgen -source=handler.go -destination=../../../mocks/api/handlers/queue/mock.go -package=mocks

type queueService interface {
	EnqueueJob(context.Context, retry.Strategy, model.NotificationJob) (uuid.UUID, error)
	GetJobStatusByID(context.Context, retry.Strategy, uuid.UUID) (string, error)
	GetAllJobs(context.Context) ([]model.NotificationJob, error)
	GetDeliveryLog(context.Context, uuid.UUID) ([]model.DeliveryLog, error)
}

type cycleRunner interface {
	RunCycle(ctx context.Context, batchSize int) (worker.CycleResult, error)
}

type Handler struct {
	service   queueService
	worker    cycleRunner
	validator *validator.Validate
	cfg       *config.Config
}

func NewHandler(
	s queueService,
	w cycleRunner,
	v *validator.Validate,
	cfg *config.Config,
) *Handler {
	return &Handler{service: s, worker: w, validator: v, cfg: cfg}
}

// Enqueue inserts a new pending notification job.
func (h *Handler) Enqueue(c *ginext.Context) {
	var req dto.EnqueueRequest

	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to decode request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}

	if err := h.validator.Struct(req); err != nil {
		zlog.Logger.Warn().Err(err).Msg("failed to validate request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("validation error: %s", err.Error()))
		return
	}

	job := model.NotificationJob{
		Type:           req.Type,
		Channel:        req.Channel,
		RecipientPhone: req.RecipientPhone,
		Payload:        req.Payload,
		Status:         model.StatusPending,
	}

	if req.RecipientUserID != "" {
		userID, err := uuid.Parse(req.RecipientUserID)
		if err != nil {
			zlog.Logger.Warn().Err(err).Msg("failed to parse recipient user id")
			respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid recipient_user_id"))
			return
		}

		job.RecipientUserID = uuid.NullUUID{UUID: userID, Valid: true}
	}

	id, err := h.service.EnqueueJob(c.Request.Context(), h.cfg.Retry, job)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("type", job.Type).Msg("failed to enqueue job")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.Created(c.Writer, id)
}

// GetStatus returns the current status of one job.
func (h *Handler) GetStatus(c *ginext.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("id", idStr).Msg("failed to parse id")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid id"))
		return
	}

	status, err := h.service.GetJobStatusByID(c.Request.Context(), h.cfg.Retry, id)
	if err != nil {
		if errors.Is(err, queuerepo.ErrJobNotFound) {
			zlog.Logger.Warn().Str("id", id.String()).Err(err).Msg("job not found")
			respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("job not found"))
			return
		}

		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to get job status")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, map[string]string{"status": status})
}

// GetAll lists every job in the queue, newest first.
func (h *Handler) GetAll(c *ginext.Context) {
	jobs, err := h.service.GetAllJobs(c.Request.Context())
	if err != nil {
		if errors.Is(err, queuerepo.ErrNoJobsFound) {
			respond.OK(c.Writer, []model.NotificationJob{})
			return
		}

		zlog.Logger.Error().Err(err).Msg("failed to get jobs")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, jobs)
}

// GetLog returns the delivery attempt history of one job.
func (h *Handler) GetLog(c *ginext.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("id", idStr).Msg("failed to parse id")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid id"))
		return
	}

	entries, err := h.service.GetDeliveryLog(c.Request.Context(), id)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to get delivery log")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	if entries == nil {
		entries = []model.DeliveryLog{}
	}

	respond.OK(c.Writer, entries)
}

// Run triggers one worker cycle on demand and returns its summary. The batch
// query parameter overrides the configured batch size.
func (h *Handler) Run(c *ginext.Context) {
	batchSize := h.cfg.Worker.BatchSize

	if raw := c.Query("batch"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid batch"))
			return
		}

		batchSize = n
	}

	result, err := h.worker.RunCycle(c.Request.Context(), batchSize)
	if err != nil {
		zlog.Logger.Error().Err(err).Msg("worker cycle failed")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, result)
}
