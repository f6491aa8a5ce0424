package settings

import "encoding/json"

// StorageKey is the per-user key holding the settings object
const StorageKey = "mealAppSettings"

// StreamEvent names the server-sent events of the settings stream
const StreamEvent = "settings"

// Settings is the user's display and timetable configuration.
// TimeDisplay true hides the timetable.
type Settings struct {
	DarkMode           bool   `json:"darkMode"`
	HighContrastMode   bool   `json:"highContrastMode"`
	PreferredMenuAlert bool   `json:"preferredMenuAlert"`
	TimeDisplay        bool   `json:"timeDisplay"`
	Grade              string `json:"grade" validate:"grade"`
	ClassNm            string `json:"classNm" validate:"classnm"`
}

// Defaults applies when nothing is stored or the stored value is malformed
func Defaults() Settings {
	return Settings{
		DarkMode:           true,
		HighContrastMode:   true,
		PreferredMenuAlert: true,
		TimeDisplay:        false,
		Grade:              "1",
		ClassNm:            "1",
	}
}

// ShowTimetable reports whether the day screen should include the timetable
func (s Settings) ShowTimetable() bool {
	return !s.TimeDisplay
}

// storedSettings tolerates partial objects; older clients wrote className
type storedSettings struct {
	DarkMode           *bool   `json:"darkMode"`
	HighContrastMode   *bool   `json:"highContrastMode"`
	PreferredMenuAlert *bool   `json:"preferredMenuAlert"`
	TimeDisplay        *bool   `json:"timeDisplay"`
	Grade              *string `json:"grade"`
	ClassNm            *string `json:"classNm"`
	ClassName          *string `json:"className"`
}

// Decode reads a stored settings object, filling absent fields from Defaults.
// Malformed input yields Defaults.
func Decode(raw []byte) Settings {
	s := Defaults()
	var stored storedSettings
	if err := json.Unmarshal(raw, &stored); err != nil {
		return s
	}

	if stored.DarkMode != nil {
		s.DarkMode = *stored.DarkMode
	}
	if stored.HighContrastMode != nil {
		s.HighContrastMode = *stored.HighContrastMode
	}
	if stored.PreferredMenuAlert != nil {
		s.PreferredMenuAlert = *stored.PreferredMenuAlert
	}
	if stored.TimeDisplay != nil {
		s.TimeDisplay = *stored.TimeDisplay
	}
	if stored.Grade != nil {
		s.Grade = *stored.Grade
	}
	switch {
	case stored.ClassNm != nil:
		s.ClassNm = *stored.ClassNm
	case stored.ClassName != nil:
		s.ClassNm = *stored.ClassName
	}
	return s
}

// Patch is a partial update; nil fields keep their current value
type Patch struct {
	DarkMode           *bool   `json:"darkMode"`
	HighContrastMode   *bool   `json:"highContrastMode"`
	PreferredMenuAlert *bool   `json:"preferredMenuAlert"`
	TimeDisplay        *bool   `json:"timeDisplay"`
	Grade              *string `json:"grade" binding:"omitempty,grade"`
	ClassNm            *string `json:"classNm" binding:"omitempty,classnm"`
}

// Apply returns s with the patch's fields set
func (p Patch) Apply(s Settings) Settings {
	if p.DarkMode != nil {
		s.DarkMode = *p.DarkMode
	}
	if p.HighContrastMode != nil {
		s.HighContrastMode = *p.HighContrastMode
	}
	if p.PreferredMenuAlert != nil {
		s.PreferredMenuAlert = *p.PreferredMenuAlert
	}
	if p.TimeDisplay != nil {
		s.TimeDisplay = *p.TimeDisplay
	}
	if p.Grade != nil {
		s.Grade = *p.Grade
	}
	if p.ClassNm != nil {
		s.ClassNm = *p.ClassNm
	}
	return s
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
