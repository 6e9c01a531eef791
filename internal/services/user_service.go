package services

import (
	"context"
	"strings"

	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/models"
)

// UserService handles self-service account changes for patients.
type UserService struct {
	creds *CredentialStore
}

func NewUserService(creds *CredentialStore) *UserService {
	return &UserService{creds: creds}
}

func (s *UserService) UpdateMe(ctx context.Context, who identity.Identity, req *dto.UpdateMeRequest) (*dto.UserSummary, error) {
	if !who.Is(models.RolePatient) {
		return nil, ErrForbidden
	}

	ch := UserChanges{FirstName: req.FirstName, LastName: req.LastName, Password: req.Password}
	if req.Name != nil {
		first, last := splitName(*req.Name)
		if ch.FirstName == nil && first != "" {
			ch.FirstName = &first
		}
		if ch.LastName == nil && last != "" {
			ch.LastName = &last
		}
	}

	user, err := s.creds.Update(ctx, who.UserID, ch)
	if err != nil {
		return nil, err
	}
	summary := dto.NewUserSummary(user)
	return &summary, nil
}

// DeleteMe removes the caller's account and every appointment they booked.
func (s *UserService) DeleteMe(ctx context.Context, who identity.Identity) error {
	if !who.Is(models.RolePatient) {
		return ErrForbidden
	}
	return s.creds.Delete(ctx, who.UserID)
}

// splitName splits "Jane Van Doe" into "Jane" and "Van Doe".
func splitName(name string) (string, string) {
	first, last, _ := strings.Cut(strings.TrimSpace(name), " ")
	return strings.TrimSpace(first), strings.TrimSpace(last)
}
