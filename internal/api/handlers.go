// SocialPulse - Real-Time Social Platform Analytics
// Copyright 2026 M. Bellan (mbellan)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mbellan/socialpulse

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

const maxBodyBytes = 1 << 20 // 1 MiB

// @Summary Ingest a user interaction event
// @Description Buffers a user event (login, post, comment, ...) for asynchronous persistence and returns its assigned id
// @Tags Events
// @Accept json
// @Produce json
// @Param event body TrackUserEventRequest true "User event"
// @Success 202 {object} response "Event accepted"
// @Failure 400 {object} response "Invalid or unparseable event"
// @Router /api/v1/events/user [post]
func (rt *Router) trackUserEvent(w http.ResponseWriter, r *http.Request) {
	var req TrackUserEventRequest
	if !rt.decodeAndValidate(w, r, &req) {
		return
	}

	id := rt.pipeline.TrackUserEvent(req.toEvent())
	respondJSON(w, http.StatusAccepted, map[string]string{"event_id": id})
}

// @Summary Ingest a content interaction event
// @Description Buffers a content event (view, like, share, ...) for asynchronous persistence and returns its assigned id
// @Tags Events
// @Accept json
// @Produce json
// @Param event body TrackContentEventRequest true "Content event"
// @Success 202 {object} response "Event accepted"
// @Failure 400 {object} response "Invalid or unparseable event"
// @Router /api/v1/events/content [post]
func (rt *Router) trackContentEvent(w http.ResponseWriter, r *http.Request) {
	var req TrackContentEventRequest
	if !rt.decodeAndValidate(w, r, &req) {
		return
	}

	id := rt.pipeline.TrackContentEvent(req.toEvent())
	respondJSON(w, http.StatusAccepted, map[string]string{"event_id": id})
}

// @Summary Get real-time pipeline metrics
// @Description Returns in-memory counters, gauges, and latency histograms along with buffer and circuit breaker state
// @Tags Analytics
// @Produce json
// @Success 200 {object} response{data=models.RealtimeReport} "Current metrics"
// @Router /api/v1/analytics/realtime [get]
func (rt *Router) realtimeMetrics(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, rt.pipeline.RealtimeMetrics())
}

// @Summary Analyze user behavior
// @Description Returns per-journey engagement scores, funnel progression, and aggregate behavior patterns over the lookback window
// @Tags Analytics
// @Produce json
// @Param lookback_hours query int false "Analysis window in hours" default(24)
// @Success 200 {object} response{data=models.BehaviorReport} "Behavior report"
// @Failure 400 {object} response "Malformed lookback_hours"
// @Failure 500 {object} response "Analysis query failed"
// @Router /api/v1/analytics/behavior [get]
func (rt *Router) behaviorInsights(w http.ResponseWriter, r *http.Request) {
	lookback, ok := intQuery(w, r, "lookback_hours", 0)
	if !ok {
		return
	}

	cacheKey := "behavior:" + strconv.Itoa(lookback)
	if report, ok := rt.behaviorCache.Get(cacheKey); ok {
		respondJSON(w, http.StatusOK, report)
		return
	}

	report, err := rt.pipeline.UserBehaviorInsights(r.Context(), lookback)
	if err != nil {
		rt.log.Error().Err(err).Msg("behavior insight query failed")
		respondError(w, http.StatusInternalServerError, "query_failed", "failed to analyze user behavior")
		return
	}
	rt.behaviorCache.Set(cacheKey, report)
	respondJSON(w, http.StatusOK, report)
}

// @Summary Analyze content performance
// @Description Returns per-content engagement scores, performance tiers, and engagement leaders over the lookback window
// @Tags Analytics
// @Produce json
// @Param lookback_hours query int false "Analysis window in hours" default(24)
// @Success 200 {object} response{data=models.ContentReport} "Content performance report"
// @Failure 400 {object} response "Malformed lookback_hours"
// @Failure 500 {object} response "Analysis query failed"
// @Router /api/v1/analytics/content [get]
func (rt *Router) contentInsights(w http.ResponseWriter, r *http.Request) {
	lookback, ok := intQuery(w, r, "lookback_hours", 0)
	if !ok {
		return
	}

	cacheKey := "content:" + strconv.Itoa(lookback)
	if report, ok := rt.contentCache.Get(cacheKey); ok {
		respondJSON(w, http.StatusOK, report)
		return
	}

	report, err := rt.pipeline.ContentPerformanceInsights(r.Context(), lookback)
	if err != nil {
		rt.log.Error().Err(err).Msg("content insight query failed")
		respondError(w, http.StatusInternalServerError, "query_failed", "failed to analyze content performance")
		return
	}
	rt.contentCache.Set(cacheKey, report)
	respondJSON(w, http.StatusOK, report)
}

// @Summary Summarize a user's recent activity
// @Description Returns event type counts, daily activity, and first/last seen timestamps for one user
// @Tags Analytics
// @Produce json
// @Param userID path string true "User identifier"
// @Param days query int false "History window in days (1-365)" default(30)
// @Success 200 {object} response{data=models.ActivitySummary} "Activity summary"
// @Failure 400 {object} response "Missing user id or invalid days"
// @Failure 500 {object} response "Summary query failed"
// @Router /api/v1/users/{userID}/activity [get]
func (rt *Router) userActivity(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "user id is required")
		return
	}

	days, ok := intQuery(w, r, "days", 30)
	if !ok {
		return
	}
	if days < 1 || days > 365 {
		respondError(w, http.StatusBadRequest, "invalid_request", "days must be between 1 and 365")
		return
	}

	summary, err := rt.pipeline.UserActivity(r.Context(), userID, days)
	if err != nil {
		rt.log.Error().Err(err).Str("user_id", userID).Msg("user activity query failed")
		respondError(w, http.StatusInternalServerError, "query_failed", "failed to summarize user activity")
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// @Summary Health check
// @Description Reports whether the service and its database are reachable
// @Tags Core
// @Produce json
// @Success 200 {object} response "Service healthy"
// @Failure 503 {object} response "Database unreachable"
// @Router /health [get]
func (rt *Router) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := rt.db.Ping(ctx); err != nil {
		respondError(w, http.StatusServiceUnavailable, "unhealthy", "database unreachable")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeAndValidate parses the JSON body into dst and runs struct
// validation, writing the error response itself on failure.
func (rt *Router) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_json", "request body is not valid JSON")
		return false
	}

	if err := rt.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			respondError(w, http.StatusBadRequest, "validation_failed", formatValidationErrors(verrs))
			return false
		}
		respondError(w, http.StatusBadRequest, "validation_failed", "request failed validation")
		return false
	}
	return true
}

func formatValidationErrors(verrs validator.ValidationErrors) string {
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %q", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// intQuery parses an optional integer query parameter, writing a 400 on
// malformed input. The second return reports whether to continue.
func intQuery(w http.ResponseWriter, r *http.Request, name string, def int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", name+" must be an integer")
		return 0, false
	}
	return v, true
}
