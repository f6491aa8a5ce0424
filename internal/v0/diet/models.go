package diet

import (
	"bytes"
	"encoding/json"
	"strconv"

	calorie "mealgo/internal/diet"
	"mealgo/internal/neis"
)

// RecentLimit is how many records the overview lists
const RecentLimit = 3

// PercentageInput is the raw text typed by the user. JSON numbers are accepted too.
type PercentageInput string

func (p *PercentageInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = PercentageInput(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*p = PercentageInput(strconv.FormatFloat(f, 'f', -1, 64))
	return nil
}

// ConfirmRequest records how much of the day's menu was eaten
type ConfirmRequest struct {
	Date       string          `json:"date"`
	Percentage PercentageInput `json:"percentage"`
	Note       string          `json:"note"`
}

// RecordView is a stored record with its derived figures
type RecordView struct {
	Date            string  `json:"date"`
	Display         string  `json:"display"`
	TotalCalorie    float64 `json:"totalCalorie"`
	Percentage      float64 `json:"percentage"`
	ConsumedCalorie float64 `json:"consumedCalorie"`
}

func newRecordView(r calorie.ConsumptionRecord) RecordView {
	return RecordView{
		Date:            r.Date,
		Display:         neis.DisplayKey(r.Date),
		TotalCalorie:    r.TotalCalorie,
		Percentage:      r.Percentage,
		ConsumedCalorie: r.ConsumedCalorie(),
	}
}

// Overview is the body of GET /api/v0/diet
type Overview struct {
	Date       string             `json:"date"`
	Display    string             `json:"display"`
	Confirmed  bool               `json:"confirmed"`
	Estimation calorie.Estimation `json:"estimation"`
	Recent     []RecordView       `json:"recent"`
	Note       string             `json:"note"`
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
