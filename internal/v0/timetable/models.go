package timetable

// Query selects the day and class; absent grade and class come from the user's settings
type Query struct {
	Date  string `form:"date"`
	Grade string `form:"grade" binding:"omitempty,grade"`
	Class string `form:"class" binding:"omitempty,classnm"`
}

// Response is the body of GET /api/v0/timetable. Periods[i] is period i+1; "" is a free period.
type Response struct {
	Date    string   `json:"date"`
	Display string   `json:"display"`
	Grade   string   `json:"grade"`
	Class   string   `json:"class"`
	Periods []string `json:"periods"`
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
