package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/2110503-CEDT68/be-project-68-group7/logger"
	"github.com/2110503-CEDT68/be-project-68-group7/models"
	"github.com/2110503-CEDT68/be-project-68-group7/repository"
	"github.com/2110503-CEDT68/be-project-68-group7/utils"
)

// providerFields maps the API's query-facing field names onto columns for
// the list endpoint's select/sort/filter features.
var providerFields = map[string]string{
	"name":       "name",
	"address":    "address",
	"district":   "district",
	"province":   "province",
	"postalcode": "postal_code",
	"tel":        "tel",
	"region":     "region",
	"createdAt":  "created_at",
}

func GetProviders(providers *repository.ProviderRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		opts := repository.ParseListOptions(c.Request.URL.Query(), providerFields)

		result, total, err := providers.List(c.Request.Context(), opts)
		if err != nil {
			logger.GetLogger().Error("list providers failed", zap.Error(err))
			utils.RespondError(c, http.StatusInternalServerError, "Failed to fetch providers")
			return
		}

		utils.RespondList(c, http.StatusOK, len(result), opts.PageHints(total), result)
	}
}

func GetProvider(providers *repository.ProviderRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			utils.RespondError(c, http.StatusNotFound, "Provider not found")
			return
		}

		provider, err := providers.FindByID(c.Request.Context(), id)
		if err != nil {
			utils.RespondError(c, http.StatusNotFound, "Provider not found")
			return
		}
		utils.RespondData(c, http.StatusOK, provider)
	}
}

type providerInput struct {
	Name       string `json:"name" binding:"required,max=50"`
	Address    string `json:"address" binding:"required"`
	District   string `json:"district" binding:"required"`
	Province   string `json:"province" binding:"required"`
	PostalCode string `json:"postalcode" binding:"required,max=5"`
	Tel        string `json:"tel"`
	Region     string `json:"region" binding:"required"`
}

func CreateProvider(providers *repository.ProviderRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input providerInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.RespondError(c, http.StatusBadRequest, err.Error())
			return
		}

		provider := models.Provider{
			Name:       input.Name,
			Address:    input.Address,
			District:   input.District,
			Province:   input.Province,
			PostalCode: input.PostalCode,
			Tel:        input.Tel,
			Region:     input.Region,
		}
		if err := providers.Create(c.Request.Context(), &provider); err != nil {
			utils.RespondError(c, http.StatusBadRequest, "Failed to create provider")
			return
		}
		utils.RespondData(c, http.StatusCreated, provider)
	}
}

func UpdateProvider(providers *repository.ProviderRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			utils.RespondError(c, http.StatusNotFound, "Provider not found")
			return
		}

		var input struct {
			Name       *string `json:"name" binding:"omitempty,max=50"`
			Address    *string `json:"address"`
			District   *string `json:"district"`
			Province   *string `json:"province"`
			PostalCode *string `json:"postalcode" binding:"omitempty,max=5"`
			Tel        *string `json:"tel"`
			Region     *string `json:"region"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.RespondError(c, http.StatusBadRequest, err.Error())
			return
		}

		updates := map[string]any{}
		if input.Name != nil {
			updates["name"] = *input.Name
		}
		if input.Address != nil {
			updates["address"] = *input.Address
		}
		if input.District != nil {
			updates["district"] = *input.District
		}
		if input.Province != nil {
			updates["province"] = *input.Province
		}
		if input.PostalCode != nil {
			updates["postal_code"] = *input.PostalCode
		}
		if input.Tel != nil {
			updates["tel"] = *input.Tel
		}
		if input.Region != nil {
			updates["region"] = *input.Region
		}

		provider, err := providers.Update(c.Request.Context(), id, updates)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondError(c, http.StatusNotFound, "Provider not found")
				return
			}
			utils.RespondError(c, http.StatusBadRequest, "Failed to update provider")
			return
		}
		utils.RespondData(c, http.StatusOK, provider)
	}
}

// DeleteProvider cascades to the provider's bookings. Cars stay behind
// with a dangling provider reference, matching the reference system.
func DeleteProvider(providers *repository.ProviderRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			utils.RespondError(c, http.StatusNotFound, "Provider not found")
			return
		}

		if _, err := providers.FindByID(c.Request.Context(), id); err != nil {
			utils.RespondError(c, http.StatusNotFound, "Provider not found")
			return
		}

		if err := providers.DeleteCascade(c.Request.Context(), id); err != nil {
			logger.GetLogger().Error("delete provider failed", zap.Uint("id", id), zap.Error(err))
			utils.RespondError(c, http.StatusInternalServerError, "Failed to delete provider")
			return
		}
		utils.RespondData(c, http.StatusOK, gin.H{})
	}
}
