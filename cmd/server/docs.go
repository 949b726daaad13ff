// SocialPulse - Real-Time Social Platform Analytics
// Copyright 2026 M. Bellan (mbellan)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mbellan/socialpulse

// Package main provides the SocialPulse analytics HTTP server
//
// @title SocialPulse API
// @version 1.0
// @description Real-time social platform analytics: event ingestion, behavior and content insights
// @description
// @description ## Ingestion
// @description
// @description POST endpoints accept one event per request and return 202 with the
// @description assigned event id. Events are buffered in memory and persisted in
// @description batches; insight endpoints only see events after a flush.
// @description
// @description ## Rate Limiting
// @description
// @description All /api/v1 endpoints share a per-IP rate limit (configurable,
// @description disabled when server.rate_limit_reqs is 0). Requests over the limit
// @description receive 429.
// @description
// @description ## Error Responses
// @description
// @description All error responses follow this format:
// @description ```json
// @description {
// @description   "success": false,
// @description   "error": {
// @description     "code": "error_code",
// @description     "message": "Human-readable error message"
// @description   }
// @description }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/mbellan/socialpulse/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:8085
// @BasePath /
// @schemes http
//
// @tag.name Core
// @tag.description Health checks and service status
//
// @tag.name Events
// @tag.description Event ingestion endpoints feeding the analytics pipeline
//
// @tag.name Analytics
// @tag.description Real-time metrics and batch insight endpoints
package main
