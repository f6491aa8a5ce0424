package settings

import (
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	MaxGrade = 6
	MaxClass = 30
)

var (
	validate = newValidator()

	bindingOnce sync.Once
	bindingErr  error
)

func newValidator() *validator.Validate {
	return mustRegister(validator.New(), registerRules)
}

// mustRegister panics when register fails
func mustRegister(v *validator.Validate, register func(*validator.Validate) error) *validator.Validate {
	if err := register(v); err != nil {
		panic("settings: register validation rules: " + err.Error())
	}
	return v
}

func registerRules(v *validator.Validate) error {
	if err := v.RegisterValidation("grade", validateGrade); err != nil {
		return err
	}
	return v.RegisterValidation("classnm", validateClassNm)
}

// RegisterBindings makes the grade and classnm rules available to gin's
// ShouldBind* through the binding tag
func RegisterBindings() error {
	bindingOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			bindingErr = registerRules(v)
		}
	})
	return bindingErr
}

// grade is a number from 1 to MaxGrade
func validateGrade(fl validator.FieldLevel) bool {
	return inRange(fl.Field().String(), MaxGrade)
}

// classnm is empty (every class) or a number from 1 to MaxClass
func validateClassNm(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == "" || inRange(s, MaxClass)
}

func inRange(s string, max int) bool {
	if s != strings.TrimSpace(s) {
		return false
	}
	n, err := strconv.Atoi(s)
	return err == nil && n >= 1 && n <= max
}

// ValidationMessages renders validator errors as one message per field
func ValidationMessages(err error) []string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}
	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "grade":
			messages = append(messages, "grade must be between 1 and "+strconv.Itoa(MaxGrade))
		case "classnm":
			messages = append(messages, "classNm must be empty or between 1 and "+strconv.Itoa(MaxClass))
		default:
			messages = append(messages, fe.Field()+" is invalid")
		}
	}
	return messages
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
