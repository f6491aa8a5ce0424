package common

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type StatusResponse struct {
	InternalServerLatency string `json:"internal_server_latency"`
	Uptime                string `json:"uptime"`
	Provider              string `json:"provider,omitempty"`
	School                string `json:"school,omitempty"`
}

// Uptime Logic
var startTime time.Time

func uptime() time.Duration {
	return time.Since(startTime)
}

func init() {
	startTime = time.Now()
}

// Ping Logic
func ping() time.Duration {
	start := time.Now()
	duration := time.Since(start)
	return duration
}

// StatusHandler reports uptime plus the provider and school the service is bound to
func StatusHandler(provider, school string) gin.HandlerFunc {
	return func(c *gin.Context) {
		Success(c, http.StatusOK, StatusResponse{
			InternalServerLatency: ping().String(),
			Uptime:                uptime().Truncate(time.Second).String(),
			Provider:              provider,
			School:                school,
		})
	}
}

func RegisterRoutes(rg *gin.RouterGroup, provider, school string) {
	rg.GET("/status", StatusHandler(provider, school))
}

/*
This project is the backend API for MealGo, a school meal and timetable companion built on open education data.
API Copyright (C) 2025 MealGo
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
    along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
