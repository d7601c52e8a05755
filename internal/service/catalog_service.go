package service

import (
	"errors"

	"go-warehouse-wms/internal/model"
	"go-warehouse-wms/internal/repository"
	"go-warehouse-wms/internal/ws"
	"go-warehouse-wms/pkg/validator"

	"gorm.io/gorm"
)

var ErrProductNotFound = errors.New("product not found")

type CatalogService interface {
	CreateProduct(req *CreateProductRequest, actor string) (*model.Product, error)
	GetProduct(code string) (*model.Product, error)
	ListProducts() ([]ProductWithTotal, error)
	ListCategories() ([]string, error)
}

type CreateProductRequest struct {
	Name            string  `json:"name" validate:"required"`
	Weight          float64 `json:"weight" validate:"gte=0"`
	Volume          float64 `json:"volume" validate:"gte=0"`
	Category        string  `json:"category" validate:"required"`
	PurchasePrice   float64 `json:"purchase_price" validate:"gte=0"`
	SellingPrice    float64 `json:"selling_price" validate:"gte=0"`
	Manufacturer    string  `json:"manufacturer" validate:"required"`
	InitialQuantity int     `json:"initial_quantity" validate:"gte=0"`
}

// ProductWithTotal is a catalog product plus its summed quantity across units,
// for the admin catalog view.
type ProductWithTotal struct {
	model.Product
	TotalQuantity int `json:"total_quantity"`
}

type catalogService struct {
	productRepo repository.ProductRepository
	unitRepo    repository.UnitRepository
	stockRepo   repository.StockRepository
	seqRepo     repository.SequenceRepository
	inTx        repository.TxRunner
	wsHub       *ws.Hub
}

func NewCatalogService(productRepo repository.ProductRepository, unitRepo repository.UnitRepository,
	stockRepo repository.StockRepository, seqRepo repository.SequenceRepository,
	inTx repository.TxRunner, hub *ws.Hub) CatalogService {
	return &catalogService{
		productRepo: productRepo,
		unitRepo:    unitRepo,
		stockRepo:   stockRepo,
		seqRepo:     seqRepo,
		inTx:        inTx,
		wsHub:       hub,
	}
}

// CreateProduct allocates the next catalog code and fans a stock entry out to
// every existing unit, so the coverage invariant (every product in every unit)
// holds from the moment the product is visible.
func (s *catalogService) CreateProduct(req *CreateProductRequest, actor string) (*model.Product, error) {
	if err := validator.FirstError(req); err != nil {
		return nil, err
	}

	seq, err := s.seqRepo.Next(repository.SeqProducts)
	if err != nil {
		return nil, err
	}

	product := &model.Product{
		Code:          model.ProductCode(seq),
		Name:          req.Name,
		Weight:        req.Weight,
		Volume:        req.Volume,
		Category:      req.Category,
		PurchasePrice: req.PurchasePrice,
		SellingPrice:  req.SellingPrice,
		Manufacturer:  req.Manufacturer,
	}
	product.CreatedBy = actor
	product.UpdatedBy = actor

	units, err := s.unitRepo.FindAll()
	if err != nil {
		return nil, err
	}

	err = s.inTx(func(tx *gorm.DB) error {
		if err := s.productRepo.Create(tx, product); err != nil {
			return err
		}
		for _, unit := range units {
			if err := s.stockRepo.InitializeEntry(tx, unit.Code, product.Code, req.InitialQuantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.wsHub.BroadcastJSON(map[string]interface{}{
		"type":   "catalog_update",
		"action": "product_created",
		"product": map[string]interface{}{
			"code":          product.Code,
			"name":          product.Name,
			"category":      product.Category,
			"selling_price": product.SellingPrice,
		},
		"performed_by": actor,
	})

	return product, nil
}

func (s *catalogService) GetProduct(code string) (*model.Product, error) {
	product, err := s.productRepo.FindByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *catalogService) ListProducts() ([]ProductWithTotal, error) {
	products, err := s.productRepo.FindAll()
	if err != nil {
		return nil, err
	}

	totals, err := s.stockRepo.TotalsByProduct()
	if err != nil {
		return nil, err
	}
	byCode := make(map[string]int, len(totals))
	for _, t := range totals {
		byCode[t.ProductCode] = t.TotalQuantity
	}

	result := make([]ProductWithTotal, len(products))
	for i, p := range products {
		result[i] = ProductWithTotal{Product: p, TotalQuantity: byCode[p.Code]}
	}
	return result, nil
}

func (s *catalogService) ListCategories() ([]string, error) {
	return s.productRepo.Categories()
}
