package ads

import (
	"fmt"

	"souqah-backend/internal/pkg/apperrors"
)

var (
	ErrTitleRequired       = fmt.Errorf("%w: title is required", apperrors.ErrValidation)
	ErrDescriptionRequired = fmt.Errorf("%w: description is required", apperrors.ErrValidation)
	ErrCityRequired        = fmt.Errorf("%w: city is required", apperrors.ErrValidation)
	ErrInvalidPrice        = fmt.Errorf("%w: price must be a non-negative number", apperrors.ErrValidation)
	ErrInvalidPriceType    = fmt.Errorf("%w: unknown price type", apperrors.ErrValidation)
	ErrCategoryRequired    = fmt.Errorf("%w: category is required", apperrors.ErrValidation)
	ErrCategoryNotFound    = fmt.Errorf("%w: category does not exist", apperrors.ErrValidation)
	ErrSubcategoryNotFound = fmt.Errorf("%w: subcategory does not exist", apperrors.ErrValidation)
	ErrSubcategoryMismatch = fmt.Errorf("%w: subcategory does not belong to the category", apperrors.ErrValidation)
	ErrPhoneRequired       = fmt.Errorf("%w: a contact phone is required", apperrors.ErrValidation)
	ErrNoChanges           = fmt.Errorf("%w: no valid changes provided", apperrors.ErrValidation)
	ErrStatusNotPatchable  = fmt.Errorf("%w: only the sold status can be set by the owner", apperrors.ErrValidation)

	ErrAdNotFound    = fmt.Errorf("%w: ad", apperrors.ErrNotFound)
	ErrOwnerNotFound = fmt.Errorf("%w: owner account", apperrors.ErrNotFound)
	ErrNotAdOwner    = fmt.Errorf("%w: only the ad owner can do this", apperrors.ErrForbidden)

	ErrNotSellable = fmt.Errorf("%w: only an active ad can be marked sold", apperrors.ErrInvalidTransition)
)
