package data

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/timelex/timelex-cli/internal/models"
)

// The backend speaks snake_case with numeric ids and foreign keys; the view
// model is camelCase with string ids and typed enums. This file is the
// bidirectional mapping between the two. Nothing outside this package sees
// a wire type.

// decimal accepts both a JSON number and a quoted decimal string, which is
// how the backend serializes hourly rates.
type decimal float64

func (d *decimal) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || string(data) == "null" {
		*d = 0
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("invalid decimal %q: %w", data, err)
	}
	*d = decimal(f)
	return nil
}

type wireTask struct {
	ID          int64   `json:"id"`
	Description string  `json:"description"`
	Project     int64   `json:"project"`
	StartTime   *int64  `json:"start_time"`
	Duration    int64   `json:"duration"`
	Date        string  `json:"date"`
	IsCompleted bool    `json:"is_completed"`
	Priority    string  `json:"priority"`
	Recurrence  string  `json:"recurrence"`
	Comment     *string `json:"comment"`
	ImageURL    *string `json:"image_url"`
	DueDate     *string `json:"due_date"`
}

type wireProject struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	Color             string  `json:"color"`
	Client            int64   `json:"client"`
	Deadline          *string `json:"deadline"`
	EstimatedDuration *int64  `json:"estimated_duration"`
}

type wireClient struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	HourlyRate decimal `json:"hourly_rate"`
	Currency   string  `json:"currency"`
}

func deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

func taskFromWire(w wireTask) models.Task {
	return models.Task{
		ID:          strconv.FormatInt(w.ID, 10),
		Description: w.Description,
		ProjectID:   strconv.FormatInt(w.Project, 10),
		Duration:    w.Duration,
		Date:        w.Date,
		IsCompleted: w.IsCompleted,
		Priority:    models.Priority(w.Priority),
		Recurrence:  models.Recurrence(w.Recurrence),
		Comment:     deref(w.Comment),
		ImageURL:    deref(w.ImageURL),
		DueDate:     deref(w.DueDate),
	}
}

func taskDraftToWire(d models.TaskDraft) map[string]interface{} {
	payload := map[string]interface{}{
		"description":  d.Description,
		"project":      d.ProjectID,
		"duration":     d.Duration,
		"is_completed": d.IsCompleted,
		"priority":     string(d.Priority),
		"recurrence":   string(d.Recurrence),
	}
	if d.Date != "" {
		payload["date"] = d.Date
	}
	if d.Comment != "" {
		payload["comment"] = d.Comment
	}
	if d.ImageURL != "" {
		payload["image_url"] = d.ImageURL
	}
	if d.DueDate != "" {
		payload["due_date"] = d.DueDate
	}
	return payload
}

func taskPatchToWire(p models.TaskPatch) map[string]interface{} {
	payload := map[string]interface{}{}
	if p.Description != nil {
		payload["description"] = *p.Description
	}
	if p.IsCompleted != nil {
		payload["is_completed"] = *p.IsCompleted
	}
	if p.Duration != nil {
		payload["duration"] = *p.Duration
	}
	if p.Priority != nil {
		payload["priority"] = string(*p.Priority)
	}
	if p.Date != nil {
		payload["date"] = *p.Date
	}
	return payload
}

func projectFromWire(w wireProject) models.Project {
	return models.Project{
		ID:                strconv.FormatInt(w.ID, 10),
		Name:              w.Name,
		Color:             w.Color,
		ClientID:          strconv.FormatInt(w.Client, 10),
		Deadline:          deref(w.Deadline),
		EstimatedDuration: deref(w.EstimatedDuration),
	}
}

func projectDraftToWire(d models.ProjectDraft) map[string]interface{} {
	payload := map[string]interface{}{
		"name":   d.Name,
		"color":  d.Color,
		"client": d.ClientID,
	}
	if d.Deadline != "" {
		payload["deadline"] = d.Deadline
	}
	if d.EstimatedDuration > 0 {
		payload["estimated_duration"] = d.EstimatedDuration
	}
	return payload
}

func projectPatchToWire(p models.ProjectPatch) map[string]interface{} {
	payload := map[string]interface{}{}
	if p.Name != nil {
		payload["name"] = *p.Name
	}
	if p.Color != nil {
		payload["color"] = *p.Color
	}
	if p.ClientID != nil {
		payload["client"] = *p.ClientID
	}
	if p.Deadline != nil {
		payload["deadline"] = *p.Deadline
	}
	if p.EstimatedDuration != nil {
		payload["estimated_duration"] = *p.EstimatedDuration
	}
	return payload
}

func clientFromWire(w wireClient) models.Client {
	return models.Client{
		ID:         strconv.FormatInt(w.ID, 10),
		Name:       w.Name,
		HourlyRate: float64(w.HourlyRate),
		Currency:   w.Currency,
	}
}

func clientDraftToWire(d models.ClientDraft) map[string]interface{} {
	payload := map[string]interface{}{
		"name":        d.Name,
		"hourly_rate": d.HourlyRate,
		"currency":    d.Currency,
	}
	if d.Email != "" {
		payload["email"] = d.Email
	}
	if d.Password != "" {
		payload["password"] = d.Password
	}
	return payload
}

func clientPatchToWire(p models.ClientPatch) map[string]interface{} {
	payload := map[string]interface{}{}
	if p.Name != nil {
		payload["name"] = *p.Name
	}
	if p.HourlyRate != nil {
		payload["hourly_rate"] = *p.HourlyRate
	}
	if p.Currency != nil {
		payload["currency"] = *p.Currency
	}
	return payload
}
