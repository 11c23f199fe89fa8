package gateway

import (
	"encoding/json"
	"strings"

	"github.com/carepoint/appointment-portal/internal/core/domain"
)

// wireUser is a backend user record as sent, including the cyclic
// doctor -> availabilities -> doctor nesting and fields the portal
// never exposes (password hashes, authorities, tokens).
type wireUser struct {
	ID                    int64              `json:"id"`
	Email                 string             `json:"email"`
	FullName              string             `json:"fullName"`
	PhoneNumber           string             `json:"phoneNumber"`
	Address               string             `json:"address"`
	Roles                 []string           `json:"roles"`
	Enabled               bool               `json:"enabled"`
	AccountNonLocked      bool               `json:"accountNonLocked"`
	AccountNonExpired     bool               `json:"accountNonExpired"`
	CredentialsNonExpired bool               `json:"credentialsNonExpired"`
	CreatedAt             string             `json:"createdAt"`
	UpdatedAt             string             `json:"updatedAt"`
	Specialization        string             `json:"specialization"`
	Location              string             `json:"location"`
	Rating                *float64           `json:"rating"`
	SlotDurationInMinutes *int               `json:"slotDurationInMinutes"`
	Availabilities        []wireAvailability `json:"availabilities"`
}

type wireAvailability struct {
	ID        int64            `json:"id"`
	DayOfWeek domain.DayOfWeek `json:"dayOfWeek"`
	StartTime string           `json:"startTime"`
	EndTime   string           `json:"endTime"`
	Doctor    *wireUser        `json:"doctor"`
}

func toAdminUsers(in []wireUser) []domain.AdminUser {
	out := make([]domain.AdminUser, 0, len(in))
	for _, u := range in {
		out = append(out, toAdminUser(u))
	}
	return out
}

// toAdminUser keeps the allowlisted fields. Nested doctors are cut down to
// a DoctorRef so the availability cycle ends one level deep.
func toAdminUser(u wireUser) domain.AdminUser {
	au := domain.AdminUser{
		ID:                    u.ID,
		Email:                 u.Email,
		FullName:              u.FullName,
		PhoneNumber:           u.PhoneNumber,
		Address:               u.Address,
		Roles:                 u.Roles,
		Enabled:               u.Enabled,
		AccountNonLocked:      u.AccountNonLocked,
		AccountNonExpired:     u.AccountNonExpired,
		CredentialsNonExpired: u.CredentialsNonExpired,
		CreatedAt:             u.CreatedAt,
		UpdatedAt:             u.UpdatedAt,
		Specialization:        u.Specialization,
		Location:              u.Location,
		Rating:                u.Rating,
		SlotDurationInMinutes: u.SlotDurationInMinutes,
	}
	if au.Roles == nil {
		au.Roles = []string{}
	}
	if len(u.Availabilities) > 0 {
		au.Availabilities = toAvailabilities(u.Availabilities)
	}
	return au
}

func toAvailabilities(in []wireAvailability) []domain.DoctorAvailability {
	out := make([]domain.DoctorAvailability, 0, len(in))
	for _, a := range in {
		da := domain.DoctorAvailability{
			ID:        a.ID,
			DayOfWeek: a.DayOfWeek,
			StartTime: a.StartTime,
			EndTime:   a.EndTime,
		}
		if a.Doctor != nil {
			da.Doctor = toDoctorRef(*a.Doctor)
		}
		out = append(out, da)
	}
	return out
}

func toDoctorRef(u wireUser) *domain.DoctorRef {
	roles := u.Roles
	if roles == nil {
		roles = []string{}
	}
	return &domain.DoctorRef{
		ID:                    u.ID,
		Email:                 u.Email,
		FullName:              u.FullName,
		PhoneNumber:           u.PhoneNumber,
		Address:               u.Address,
		Roles:                 roles,
		Enabled:               u.Enabled,
		AccountNonLocked:      u.AccountNonLocked,
		AccountNonExpired:     u.AccountNonExpired,
		CredentialsNonExpired: u.CredentialsNonExpired,
		CreatedAt:             u.CreatedAt,
		UpdatedAt:             u.UpdatedAt,
		Specialization:        u.Specialization,
		Location:              u.Location,
		Rating:                u.Rating,
		SlotDurationInMinutes: u.SlotDurationInMinutes,
	}
}

// feedbackBody accepts either a bare array or an object wrapping one
// under "feedback" or "data".
type feedbackBody []domain.Feedback

func (f *feedbackBody) UnmarshalJSON(raw []byte) error {
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "[") {
		var items []domain.Feedback
		if err := json.Unmarshal(raw, &items); err != nil {
			return err
		}
		*f = items
		return nil
	}
	var wrapped struct {
		Feedback []domain.Feedback `json:"feedback"`
		Data     []domain.Feedback `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return err
	}
	if wrapped.Feedback != nil {
		*f = wrapped.Feedback
	} else {
		*f = wrapped.Data
	}
	return nil
}

// parseMessage reads a {success, message} body, falling back to the raw
// text as the message.
func parseMessage(text string) *domain.MessageResponse {
	var msg domain.MessageResponse
	if err := json.Unmarshal([]byte(text), &msg); err == nil {
		return &msg
	}
	return &domain.MessageResponse{Success: true, Message: strings.TrimSpace(text)}
}
