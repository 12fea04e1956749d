package dto

import (
	"time"

	"camperhub/internal/app/services/adminusers"
)

type AdminUserEntry struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Role            string    `json:"role"`
	Status          string    `json:"status"`
	Verified        bool      `json:"verified"`
	JoinDate        time.Time `json:"joinDate"`
	CampersUploaded int64     `json:"campersUploaded"`
	TimesBooked     int64     `json:"timesBooked"`
}

type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

type AdminUserList struct {
	Data       []AdminUserEntry `json:"data"`
	Pagination Pagination       `json:"pagination"`
}

func NewAdminUserList(page adminusers.Page) AdminUserList {
	items := make([]AdminUserEntry, 0, len(page.Items))
	for _, entry := range page.Items {
		items = append(items, AdminUserEntry{
			ID:              string(entry.ID),
			Name:            entry.Name,
			Email:           entry.Email,
			Role:            string(entry.Role),
			Status:          string(entry.Status),
			Verified:        entry.Verified,
			JoinDate:        entry.JoinDate,
			CampersUploaded: entry.CampersUploaded,
			TimesBooked:     entry.TimesBooked,
		})
	}
	return AdminUserList{
		Data: items,
		Pagination: Pagination{
			Total: page.Total,
			Page:  page.Page,
			Limit: page.Limit,
			Pages: page.Pages,
		},
	}
}
