package env

import (
	"os"
	"strconv"
	"strings"
	"time"
)

func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func GetInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func GetBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func GetDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// GetList splits a comma separated variable, dropping blank entries
func GetList(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

// Server configuration
const (
	EnvPort        = "PORT"
	EnvCORSOrigins = "CORS_ORIGINS"
	EnvLogLevel    = "LOG_LEVEL"
	EnvLogFormat   = "LOG_FORMAT"
	EnvTimezone    = "APP_TIMEZONE"
)

// Storage configuration
const (
	EnvAppDBPath      = "APP_DB_PATH"
	EnvStorageDriver  = "STORAGE_DRIVER"
	EnvRedisAddr      = "REDIS_ADDR"
	EnvRedisPassword  = "REDIS_PASSWORD"
	EnvRedisDB        = "REDIS_DB"
	EnvPrefetchCron   = "PREFETCH_SCHEDULE"
	EnvPrefetchEnable = "PREFETCH_ENABLED"
)

// NEIS provider configuration
const (
	EnvNeisAPIKey      = "NEIS_API_KEY"
	EnvNeisBaseURL     = "NEIS_BASE_URL"
	EnvNeisOfficeCode  = "NEIS_OFFICE_CODE"
	EnvNeisSchoolCode  = "NEIS_SCHOOL_CODE"
	EnvNeisSchoolLevel = "NEIS_SCHOOL_LEVEL"
	EnvNeisTimeout     = "NEIS_TIMEOUT"
)

// Auth-related environment variable keys
const (
	// OAuth Providers
	EnvGoogleClientID     = "GOOGLE_CLIENT_ID"
	EnvGoogleClientSecret = "GOOGLE_CLIENT_SECRET"

	// Auth Configuration
	EnvAuthCallbackBaseURL = "AUTH_CALLBACK_BASE_URL"
	EnvJWTSecret           = "JWT_SECRET"
	EnvJWTTTL              = "JWT_TTL"
	EnvRefreshTokenTTL     = "REFRESH_TOKEN_TTL"
	EnvSecureCookies       = "SECURE_COOKIES"
)

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
