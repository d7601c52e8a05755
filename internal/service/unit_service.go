package service

import (
	"errors"

	"go-warehouse-wms/internal/model"
	"go-warehouse-wms/internal/repository"
	"go-warehouse-wms/pkg/validator"

	"gorm.io/gorm"
)

var (
	ErrUnitNotFound = errors.New("warehouse unit not found")
	ErrUnitHasStaff = errors.New("unit still has supervisors or employees assigned")
)

type UnitService interface {
	CreateUnit(req *CreateUnitRequest, actor string) (*model.Unit, error)
	GetUnit(code string) (*model.Unit, error)
	ListUnits() ([]model.Unit, error)
	DeleteUnit(code string) error
}

type CreateUnitRequest struct {
	Name           string  `json:"name" validate:"required"`
	VolumeCapacity float64 `json:"volume_capacity" validate:"gt=0"`
}

type unitService struct {
	unitRepo    repository.UnitRepository
	productRepo repository.ProductRepository
	stockRepo   repository.StockRepository
	userRepo    repository.UserRepository
	seqRepo     repository.SequenceRepository
	inTx        repository.TxRunner
}

func NewUnitService(unitRepo repository.UnitRepository, productRepo repository.ProductRepository,
	stockRepo repository.StockRepository, userRepo repository.UserRepository,
	seqRepo repository.SequenceRepository, inTx repository.TxRunner) UnitService {
	return &unitService{
		unitRepo:    unitRepo,
		productRepo: productRepo,
		stockRepo:   stockRepo,
		userRepo:    userRepo,
		seqRepo:     seqRepo,
		inTx:        inTx,
	}
}

// CreateUnit allocates the next warehouse code and initializes a zero-quantity
// stock entry for every catalog product (the mirror of the product fan-out).
func (s *unitService) CreateUnit(req *CreateUnitRequest, actor string) (*model.Unit, error) {
	if err := validator.FirstError(req); err != nil {
		return nil, err
	}

	seq, err := s.seqRepo.Next(repository.SeqUnits)
	if err != nil {
		return nil, err
	}

	unit := &model.Unit{
		Code:           model.UnitCode(seq),
		Name:           req.Name,
		VolumeCapacity: req.VolumeCapacity,
	}
	unit.CreatedBy = actor
	unit.UpdatedBy = actor

	products, err := s.productRepo.FindAll()
	if err != nil {
		return nil, err
	}

	err = s.inTx(func(tx *gorm.DB) error {
		if err := s.unitRepo.Create(tx, unit); err != nil {
			return err
		}
		for _, product := range products {
			if err := s.stockRepo.InitializeEntry(tx, unit.Code, product.Code, 0); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return unit, nil
}

func (s *unitService) GetUnit(code string) (*model.Unit, error) {
	unit, err := s.unitRepo.FindByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnitNotFound
		}
		return nil, err
	}
	return unit, nil
}

func (s *unitService) ListUnits() ([]model.Unit, error) {
	return s.unitRepo.FindAll()
}

// DeleteUnit removes the unit and its stock entries and transactions, but only
// once no supervisors or employees are assigned to it.
func (s *unitService) DeleteUnit(code string) error {
	if _, err := s.unitRepo.FindByCode(code); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUnitNotFound
		}
		return err
	}

	staff, err := s.userRepo.CountByUnit(code)
	if err != nil {
		return err
	}
	if staff > 0 {
		return ErrUnitHasStaff
	}

	return s.unitRepo.DeleteCascade(code)
}
