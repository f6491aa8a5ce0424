package bookmarks

type AddRequest struct {
	Name string `json:"name" binding:"required"`
}

type ReplaceRequest struct {
	Bookmarks []string `json:"bookmarks" binding:"required"`
}

// MatchRequest asks which dishes match the user's bookmarks
type MatchRequest struct {
	Dishes []string `json:"dishes" binding:"required"`
}

type ListResponse struct {
	Bookmarks []string `json:"bookmarks"`
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
