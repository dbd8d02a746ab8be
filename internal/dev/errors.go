package dev

import (
	"time"

	"github.com/nu7hatch/gouuid"
)

// Error is an archived failure document, slugged with a stable id so retried
// persists do not duplicate it.
type Error struct {
	ID        string                 `json:"id"`
	Time      time.Time              `json:"time"`
	Component string                 `json:"component"`
	Name      string                 `json:"name"`
	Error     string                 `json:"error"`
	Extra     map[string]interface{} `json:"extra"`
}

func (e Error) Slug() string {
	return e.ID
}

func NewError(component, name string, err error, extra map[string]interface{}) Error {
	return Error{
		ID:        newId(),
		Time:      time.Now(),
		Component: component,
		Name:      name,
		Error:     err.Error(),
		Extra:     extra,
	}
}

func newId() string {
	u, err := uuid.NewV4()
	if err != nil {
		return ""
	}

	return u.String()
}
