package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/rodrigovixc/finance-bolt/internal/errors"
	"github.com/rodrigovixc/finance-bolt/internal/models"
	"github.com/rodrigovixc/finance-bolt/internal/pagination"
)

// incomeTypeService handles income-type-related business logic.
type incomeTypeService struct {
	db *gorm.DB
}

// NewIncomeTypeService creates a new IncomeTypeServicer.
func NewIncomeTypeService(db *gorm.DB) IncomeTypeServicer {
	return &incomeTypeService{db: db}
}

// CreateIncomeType creates a new income type
func (s *incomeTypeService) CreateIncomeType(userID uint, name, description string) (*models.IncomeType, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "income type name is required")
	}

	incomeType := &models.IncomeType{
		UserID:      userID,
		Name:        name,
		Description: description,
	}

	if err := s.db.Create(incomeType).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return incomeType, nil
}

// GetUserIncomeTypes retrieves a paginated list of income types for a user,
// ordered by name.
func (s *incomeTypeService) GetUserIncomeTypes(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.IncomeType], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.IncomeType{}).Where("user_id = ?", userID)
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var incomeTypes []models.IncomeType
	if err := base.Scopes(pagination.Paginate(page)).
		Order("name ASC").
		Find(&incomeTypes).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(incomeTypes, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetIncomeTypeByID retrieves an income type by ID for a specific user
func (s *incomeTypeService) GetIncomeTypeByID(userID, incomeTypeID uint) (*models.IncomeType, error) {
	var incomeType models.IncomeType
	if err := s.db.Where("id = ? AND user_id = ?", incomeTypeID, userID).First(&incomeType).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrIncomeTypeNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &incomeType, nil
}

// UpdateIncomeType updates an existing income type
func (s *incomeTypeService) UpdateIncomeType(userID, incomeTypeID uint, name, description string) (*models.IncomeType, error) {
	incomeType, err := s.GetIncomeTypeByID(userID, incomeTypeID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name != "" {
		updates["name"] = name
	}
	if description != "" {
		updates["description"] = description
	}

	if len(updates) > 0 {
		if err := s.db.Model(incomeType).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return incomeType, nil
}

// DeleteIncomeType removes an income type, scoped by record ID and owner ID.
func (s *incomeTypeService) DeleteIncomeType(userID, incomeTypeID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", incomeTypeID, userID).Delete(&models.IncomeType{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrIncomeTypeNotFound
	}
	return nil
}
