package validators

import (
	"github.com/anonto42/community-connect/backend/internal/models"
	"github.com/go-playground/validator/v10"
)

// CustomValidator plugs go-playground/validator into echo
type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New()
	_ = v.RegisterValidation("category", validateCategory)
	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

var knownCategories = map[models.Category]bool{
	models.CategoryBlood:            true,
	models.CategoryFood:             true,
	models.CategoryClothes:          true,
	models.CategoryBooks:            true,
	models.CategoryBlankets:         true,
	models.CategoryGeneral:          true,
	models.CategoryCommunityService: true,
	models.CategoryAchievement:      true,
}

func validateCategory(fl validator.FieldLevel) bool {
	return knownCategories[models.Category(fl.Field().String())]
}
