package handlers

import (
	"github.com/iudanet/gophtasks/internal/models"
	"github.com/iudanet/gophtasks/pkg/api"
)

func toAPIUser(u *models.User) *api.User {
	if u == nil {
		return nil
	}
	return &api.User{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Username:    u.Username,
		Email:       u.Email,
		DateCreated: u.CreatedAt.UTC(),
	}
}

func toAPITask(t *models.Task) *api.Task {
	return &api.Task{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt.UTC(),
		Author:      toAPIUser(t.Author),
	}
}

func toAPITasks(tasks []*models.Task) []*api.Task {
	out := make([]*api.Task, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toAPITask(t))
	}
	return out
}
