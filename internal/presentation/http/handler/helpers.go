// Package handler holds the HTTP handlers of the back-office API.
//
// Failures use the response envelope with a machine-readable reason.
// Field validation failures (reason validation_error) answer 422
// Unprocessable Entity with the offending fields listed under errors; a
// body that cannot be decoded at all answers 400. Stock shortfalls and
// overpayments are 400, duplicate bills and other conflicts 409.
package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/infrastructure/cache"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/presentation/http/dto/response"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/presentation/http/middleware"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/pkg/apperror"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/pkg/pagination"
	"go.uber.org/zap"
)

// GetAdminID extracts the admin ID from the Gin context
func GetAdminID(c *gin.Context) *uuid.UUID {
	id := middleware.GetAdminID(c)
	if id == uuid.Nil {
		return nil
	}
	return &id
}

// pathID parses the :id route parameter, answering 400 when it is not a UUID
func pathID(c *gin.Context, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid "+resource+" ID")
		return uuid.Nil, false
	}
	return id, true
}

// optionalUUID parses a query value that binding already checked
func optionalUUID(raw string) *uuid.UUID {
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}

// dateRange parses start_date and end_date (YYYY-MM-DD) in loc. The end
// date is inclusive, so the returned bound is the start of the next day.
func dateRange(start, end string, loc *time.Location) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if start != "" {
		t, err := time.ParseInLocation(time.DateOnly, start, loc)
		if err != nil {
			return nil, nil, apperror.NewFieldError("start_date", "Must be a date in YYYY-MM-DD format")
		}
		from = &t
	}
	if end != "" {
		t, err := time.ParseInLocation(time.DateOnly, end, loc)
		if err != nil {
			return nil, nil, apperror.NewFieldError("end_date", "Must be a date in YYYY-MM-DD format")
		}
		t = t.AddDate(0, 0, 1)
		to = &t
	}
	if from != nil && to != nil && !from.Before(*to) {
		return nil, nil, apperror.NewFieldError("end_date", "End date must not be before start date")
	}
	return from, to, nil
}

func pageParams(page, perPage int) *pagination.PaginationParams {
	return &pagination.PaginationParams{Page: page, PerPage: perPage}
}

// reportInvalidator drops cached report responses after a write that
// changes sales, payments or stock
type reportInvalidator struct {
	cache cache.Cache
	log   *zap.Logger
}

func (r reportInvalidator) invalidate(ctx context.Context) {
	if r.cache == nil {
		return
	}
	if err := r.cache.InvalidatePrefix(ctx, cache.ReportsPrefix); err != nil {
		r.log.Warn("failed to invalidate report cache", zap.Error(err))
	}
}
