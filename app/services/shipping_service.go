package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/pedalpoint/bikeshop/app/models"
)

// ShippingRepo is the persistence surface the shipping service needs.
type ShippingRepo interface {
	Create(s *models.ShippingInfo) error
	Update(s *models.ShippingInfo) error
	Delete(id uint) error
	FindByID(id uint) (models.ShippingInfo, error)
	FindByOrderID(orderID uint) (models.ShippingInfo, error)
	All() ([]models.ShippingInfo, error)
}

// ShippingService manages standalone shipping records.
type ShippingService struct {
	repo ShippingRepo
}

func NewShippingService(repo ShippingRepo) *ShippingService {
	return &ShippingService{repo: repo}
}

// Create stores a shipping record, optionally bound to an order.
func (s *ShippingService) Create(orderID *uint, in ShippingInput) (models.ShippingInfo, error) {
	rec := models.ShippingInfo{
		OrderID:      orderID,
		ReceiverName: in.ReceiverName,
		Phone:        in.Phone,
		Province:     in.Province,
		District:     in.District,
		Address:      in.Address,
		Note:         in.Note,
	}
	if err := s.repo.Create(&rec); err != nil {
		return rec, fmt.Errorf("create shipping info: %w", err)
	}
	return rec, nil
}

// ByOrder looks up the record attached to an order.
func (s *ShippingService) ByOrder(orderID uint) (models.ShippingInfo, error) {
	rec, err := s.repo.FindByOrderID(orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return rec, ErrNotFound
	}
	return rec, err
}

// Update overwrites the address fields of a record.
func (s *ShippingService) Update(id uint, in ShippingInput) (models.ShippingInfo, error) {
	rec, err := s.repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return rec, ErrNotFound
	}
	if err != nil {
		return rec, err
	}

	rec.ReceiverName = in.ReceiverName
	rec.Phone = in.Phone
	rec.Province = in.Province
	rec.District = in.District
	rec.Address = in.Address
	rec.Note = in.Note

	if err := s.repo.Update(&rec); err != nil {
		return rec, fmt.Errorf("update shipping info: %w", err)
	}
	return rec, nil
}

// Delete removes a record.
func (s *ShippingService) Delete(id uint) error {
	err := s.repo.Delete(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// All lists every record for the admin view.
func (s *ShippingService) All() ([]models.ShippingInfo, error) {
	return s.repo.All()
}
