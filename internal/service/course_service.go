package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/edulane/enrollment-api/internal/models"
	"github.com/edulane/enrollment-api/internal/repository"
	appErrors "github.com/edulane/enrollment-api/pkg/errors"
)

const catalogCacheKey = "catalog:courses"

type courseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	List(ctx context.Context) ([]models.Course, error)
}

type catalogCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// CreateCourseRequest describes course creation payload.
type CreateCourseRequest struct {
	ID          string          `json:"id" validate:"required"`
	Program     string          `json:"program" validate:"required"`
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	Duration    string          `json:"duration" validate:"required"`
	StartDate   string          `json:"start_date" validate:"required"`
	ImageURL    string          `json:"image_url"`
}

// CourseService manages the course catalog.
type CourseService struct {
	repo      courseRepository
	cache     catalogCache
	cacheTTL  time.Duration
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService constructs CourseService. Metrics may be nil.
func NewCourseService(repo courseRepository, cache catalogCache, cacheTTL time.Duration, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, cache: cache, cacheTTL: cacheTTL, metrics: metrics, validator: validate, logger: logger}
}

// Create adds a course to the catalog. A duplicate id conflicts and leaves
// the original row unchanged.
func (s *CourseService) Create(ctx context.Context, req CreateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	if req.Price.IsNegative() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "price must not be negative")
	}

	course := &models.Course{
		ID:          req.ID,
		Program:     req.Program,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Duration:    req.Duration,
		StartDate:   req.StartDate,
		ImageURL:    req.ImageURL,
	}
	if err := s.repo.Create(ctx, course); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "course with this id already exists")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create course")
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, catalogCacheKey); err != nil {
			s.logger.Warn("failed to invalidate catalog cache", zap.Error(err))
		}
	}

	return course, nil
}

// ListGrouped returns the catalog grouped by program, serving from cache
// when possible.
func (s *CourseService) ListGrouped(ctx context.Context) (models.CourseCatalog, error) {
	if s.cache != nil {
		var cached models.CourseCatalog
		if err := s.cache.Get(ctx, catalogCacheKey, &cached); err == nil {
			return cached, nil
		} else if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("catalog cache lookup failed", zap.Error(err))
		}
	}

	start := time.Now()
	courses, err := s.repo.List(ctx)
	s.metrics.ObserveDBQuery("courses_list", time.Since(start))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}

	catalog := make(models.CourseCatalog)
	for _, course := range courses {
		catalog[course.Program] = append(catalog[course.Program], course)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, catalogCacheKey, catalog, s.cacheTTL); err != nil {
			s.logger.Warn("failed to populate catalog cache", zap.Error(err))
		}
	}

	return catalog, nil
}
