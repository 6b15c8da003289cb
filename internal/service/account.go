package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/models"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/repo"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/transport"
)

type AccountService struct {
	Repo *repo.GormRepo
}

func (s *AccountService) Profile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	p, err := s.Repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, storeErr("get profile", err)
	}
	return p, nil
}

func (s *AccountService) UpdateProfile(ctx context.Context, userID uuid.UUID, req transport.ProfileRequest) (*models.Profile, error) {
	p := &models.Profile{
		UserID:   userID,
		FullName: strings.TrimSpace(req.FullName),
		Phone:    strings.TrimSpace(req.Phone),
		Company:  strings.TrimSpace(req.Company),
	}
	if err := s.Repo.SaveProfile(ctx, p); err != nil {
		return nil, storeErr("save profile", err)
	}
	return s.Profile(ctx, userID)
}

func (s *AccountService) Addresses(ctx context.Context, userID uuid.UUID) ([]models.Address, error) {
	items, err := s.Repo.ListAddresses(ctx, userID)
	if err != nil {
		return nil, storeErr("list addresses", err)
	}
	return items, nil
}

func addressFrom(userID uuid.UUID, req transport.AddressRequest) *models.Address {
	return &models.Address{
		UserID:     userID,
		Label:      strings.TrimSpace(req.Label),
		Line1:      strings.TrimSpace(req.Line1),
		Line2:      strings.TrimSpace(req.Line2),
		City:       strings.TrimSpace(req.City),
		State:      strings.TrimSpace(req.State),
		PostalCode: strings.TrimSpace(req.PostalCode),
		Country:    strings.TrimSpace(req.Country),
		IsDefault:  req.IsDefault,
	}
}

func (s *AccountService) AddAddress(ctx context.Context, userID uuid.UUID, req transport.AddressRequest) (*models.Address, error) {
	a := addressFrom(userID, req)
	if err := s.Repo.SaveAddress(ctx, a); err != nil {
		return nil, storeErr("add address", err)
	}
	return a, nil
}

func (s *AccountService) UpdateAddress(ctx context.Context, userID uuid.UUID, id uint, req transport.AddressRequest) (*models.Address, error) {
	current, err := s.Repo.GetAddress(ctx, userID, id)
	if err != nil {
		return nil, storeErr("get address", err)
	}

	a := addressFrom(userID, req)
	a.ID = current.ID
	a.CreatedAt = current.CreatedAt
	if current.IsDefault {
		a.IsDefault = true
	}
	if err := s.Repo.SaveAddress(ctx, a); err != nil {
		return nil, storeErr("update address", err)
	}
	return a, nil
}

func (s *AccountService) DeleteAddress(ctx context.Context, userID uuid.UUID, id uint) error {
	return storeErr("delete address", s.Repo.DeleteAddress(ctx, userID, id))
}
