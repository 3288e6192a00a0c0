package services

import (
	"errors"
	"regexp"

	"gorm.io/gorm"

	apperrors "github.com/rodrigovixc/finance-bolt/internal/errors"
	"github.com/rodrigovixc/finance-bolt/internal/models"
	"github.com/rodrigovixc/finance-bolt/internal/pagination"
)

var lastDigitsPattern = regexp.MustCompile(`^[0-9]{4}$`)

// cardService handles card-related business logic.
type cardService struct {
	db *gorm.DB
}

// NewCardService creates a new CardServicer.
func NewCardService(db *gorm.DB) CardServicer {
	return &cardService{db: db}
}

// CreateCard registers a new payment card for a user.
func (s *cardService) CreateCard(userID uint, bank, lastDigits string) (*models.Card, error) {
	if bank == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "bank name is required")
	}
	if !lastDigitsPattern.MatchString(lastDigits) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "last digits must be exactly 4 numeric characters")
	}

	card := &models.Card{
		UserID:     userID,
		Bank:       bank,
		LastDigits: lastDigits,
	}

	if err := s.db.Create(card).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return card, nil
}

// GetUserCards retrieves a paginated list of cards for a user, newest first.
func (s *cardService) GetUserCards(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Card], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.Card{}).Where("user_id = ?", userID)
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var cards []models.Card
	if err := base.Scopes(pagination.Paginate(page)).
		Order("created_at DESC").
		Find(&cards).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(cards, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetCardByID retrieves a card by ID for a specific user
func (s *cardService) GetCardByID(userID, cardID uint) (*models.Card, error) {
	var card models.Card
	if err := s.db.Where("id = ? AND user_id = ?", cardID, userID).First(&card).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCardNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &card, nil
}

// UpdateCard updates an existing card
func (s *cardService) UpdateCard(userID, cardID uint, bank, lastDigits string) (*models.Card, error) {
	card, err := s.GetCardByID(userID, cardID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if bank != "" {
		updates["bank"] = bank
	}
	if lastDigits != "" {
		if !lastDigitsPattern.MatchString(lastDigits) {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "last digits must be exactly 4 numeric characters")
		}
		updates["last_digits"] = lastDigits
	}

	if len(updates) > 0 {
		if err := s.db.Model(card).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return card, nil
}

// DeleteCard removes a card. The delete is scoped by both record ID and
// owner ID; transactions that referenced the card have the reference
// cleared and are rendered without a card label afterwards.
func (s *cardService) DeleteCard(userID, cardID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", cardID, userID).Delete(&models.Card{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrCardNotFound
	}
	return nil
}
