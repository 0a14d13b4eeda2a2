package dto

import (
	"context"

	"github.com/resello/resello/internal/domain/platform"
	"github.com/resello/resello/internal/types"
	"github.com/resello/resello/internal/validator"
)

type CreatePlatformRequest struct {
	Name    string `json:"name" validate:"required"`
	Website string `json:"website"`
	Notes   string `json:"notes"`
}

func (r *CreatePlatformRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreatePlatformRequest) ToPlatform(ctx context.Context) *platform.Platform {
	return &platform.Platform{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PLATFORM),
		Name:      r.Name,
		Website:   r.Website,
		Notes:     r.Notes,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
}

type PlatformResponse struct {
	*platform.Platform
}
