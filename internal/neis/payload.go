package neis

import (
	"encoding/json"
	"errors"
)

var errShape = errors.New("unexpected payload shape")

// decodeRows unpacks {"<service>": [{"head": ...}, {"row": [...]}]} into out.
// Any deviation from that shape is an error; callers degrade to empty.
func decodeRows(raw []byte, service string, out interface{}) error {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return err
	}

	section, ok := envelope[service]
	if !ok {
		return errShape
	}

	var parts []json.RawMessage
	if err := json.Unmarshal(section, &parts); err != nil {
		return err
	}
	if len(parts) < 2 {
		return errShape
	}

	var body struct {
		Row json.RawMessage `json:"row"`
	}
	if err := json.Unmarshal(parts[1], &body); err != nil {
		return err
	}
	if body.Row == nil {
		return errShape
	}
	return json.Unmarshal(body.Row, out)
}

// ResultOf extracts the provider's RESULT block, if the payload carries one at the top level
func ResultOf(raw []byte) (ResultStatus, bool) {
	var envelope struct {
		Result *ResultStatus `json:"RESULT"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil || envelope.Result == nil {
		return ResultStatus{}, false
	}
	return *envelope.Result, true
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
