package entity

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// User-facing validation messages. The texts are part of the UI contract and
// must not be reworded without updating the templates and tests.
const (
	MsgNameRequired     = "Food name is required."
	MsgNameTooLong      = "Food name must be less than 200 characters."
	MsgCaloriesEmpty    = "Calories are required."
	MsgCaloriesNotInt   = "Calories must be a valid number."
	MsgCaloriesNegative = "Calories must be a positive number."
	MsgCaloriesTooLarge = "Calories value is too large."
)

// FoodInput is the normalized result of a successful validation.
type FoodInput struct {
	Name     string
	Calories int
}

// ValidateFoodInput checks raw form values for a food entry and returns either
// a normalized input or the ordered list of every applicable error message.
// Both fields are always checked; messages are collected, not short-circuited.
// The range checks are skipped when the calorie value does not parse.
func ValidateFoodInput(rawName, rawCalories string) (FoodInput, []string) {
	var errs []string

	name := strings.TrimSpace(rawName)
	if name == "" {
		errs = append(errs, MsgNameRequired)
	} else if utf8.RuneCountInString(name) > MaxNameLength {
		errs = append(errs, MsgNameTooLong)
	}

	calories := 0
	caloriesStr := strings.TrimSpace(rawCalories)
	if caloriesStr == "" {
		errs = append(errs, MsgCaloriesEmpty)
	} else {
		n, err := strconv.Atoi(caloriesStr)
		switch {
		case err != nil:
			errs = append(errs, MsgCaloriesNotInt)
		case n < 0:
			errs = append(errs, MsgCaloriesNegative)
		case n > MaxCalories:
			errs = append(errs, MsgCaloriesTooLarge)
		default:
			calories = n
		}
	}

	if len(errs) > 0 {
		return FoodInput{}, errs
	}
	return FoodInput{Name: name, Calories: calories}, nil
}

// EchoCalories returns the value to re-display in a form after validation
// failed: the trimmed input when it parses as an integer, otherwise empty.
func EchoCalories(rawCalories string) string {
	s := strings.TrimSpace(rawCalories)
	if _, err := strconv.Atoi(s); err != nil {
		return ""
	}
	return s
}
