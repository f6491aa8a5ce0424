package common

import (
	"time"

	"mealgo/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// APIVersion is reported in every response envelope
const APIVersion = "v0"

// Structs for the API response format

type Metadata struct {
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	RequestID string    `json:"requestId"`
}

type APIResponse struct {
	Data     interface{} `json:"data"`
	Errors   []string    `json:"errors"`
	Metadata Metadata    `json:"metadata"`
}

// Response functions

func CreateAPIResponse(data interface{}, errors []string, requestID string) APIResponse {
	// If the requestID is blank and not cascading from other functions generate a new one
	if requestID == "" {
		requestID = uuid.New().String()
	}
	if errors == nil {
		errors = []string{}
	}
	return APIResponse{
		Data:   data,
		Errors: errors,
		Metadata: Metadata{
			Timestamp: time.Now(),
			Version:   APIVersion,
			RequestID: requestID,
		},
	}
}

func CreateSuccessResponse(data interface{}) APIResponse {
	return CreateAPIResponse(data, []string{}, "")
}

func CreateErrorResponse(errors []string) APIResponse {
	return CreateAPIResponse(nil, errors, "")
}

// Success writes data wrapped in the envelope, reusing the request id set by logger.RequestID
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, CreateAPIResponse(data, []string{}, c.GetString(logger.RequestIDKey)))
}

// Fail writes the error messages wrapped in the envelope
func Fail(c *gin.Context, status int, messages ...string) {
	c.JSON(status, CreateAPIResponse(nil, messages, c.GetString(logger.RequestIDKey)))
}

// Abort is Fail for middleware: it also stops the handler chain
func Abort(c *gin.Context, status int, messages ...string) {
	c.AbortWithStatusJSON(status, CreateAPIResponse(nil, messages, c.GetString(logger.RequestIDKey)))
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
