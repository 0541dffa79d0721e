package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/2110503-CEDT68/be-project-68-group7/logger"
	"github.com/2110503-CEDT68/be-project-68-group7/models"
	"github.com/2110503-CEDT68/be-project-68-group7/repository"
	"github.com/2110503-CEDT68/be-project-68-group7/utils"
)

var carFields = map[string]string{
	"licensePlate": "license_plate",
	"brand":        "brand",
	"model":        "model",
	"year":         "year",
	"color":        "color",
	"transmission": "transmission",
	"fuelType":     "fuel_type",
	"available":    "available",
	"provider":     "provider_id",
	"createdAt":    "created_at",
}

func validCarYear(year int) bool {
	return year >= models.MinCarYear && year <= time.Now().Year()+1
}

func GetCars(cars *repository.CarRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		opts := repository.ParseListOptions(c.Request.URL.Query(), carFields)

		result, total, err := cars.List(c.Request.Context(), opts)
		if err != nil {
			logger.GetLogger().Error("list cars failed", zap.Error(err))
			utils.RespondError(c, http.StatusInternalServerError, "Failed to fetch cars")
			return
		}

		utils.RespondList(c, http.StatusOK, len(result), opts.PageHints(total), result)
	}
}

func GetCar(cars *repository.CarRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			utils.RespondError(c, http.StatusNotFound, "Car not found")
			return
		}

		car, err := cars.FindByID(c.Request.Context(), id)
		if err != nil {
			utils.RespondError(c, http.StatusNotFound, fmt.Sprintf("Car not found with id of %d", id))
			return
		}
		utils.RespondData(c, http.StatusOK, car)
	}
}

type carInput struct {
	LicensePlate string              `json:"licensePlate" binding:"required,max=15"`
	Brand        string              `json:"brand" binding:"required"`
	Model        string              `json:"model" binding:"required"`
	Year         int                 `json:"year" binding:"required"`
	Color        string              `json:"color" binding:"required"`
	Transmission models.Transmission `json:"transmission" binding:"required,oneof=Automatic Manual"`
	FuelType     models.FuelType     `json:"fuelType" binding:"omitempty,oneof=Gasoline Diesel Electric Hybrid"`
	Provider     uint                `json:"provider" binding:"required"`
}

func CreateCar(cars *repository.CarRepository, providers *repository.ProviderRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input carInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.RespondError(c, http.StatusBadRequest, err.Error())
			return
		}

		if !validCarYear(input.Year) {
			utils.RespondError(c, http.StatusBadRequest, fmt.Sprintf("Year must be between %d and %d", models.MinCarYear, time.Now().Year()+1))
			return
		}

		exists, err := providers.Exists(c.Request.Context(), input.Provider)
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, "Failed to create car")
			return
		}
		if !exists {
			utils.RespondError(c, http.StatusNotFound, fmt.Sprintf("No provider with the id of %d", input.Provider))
			return
		}

		if input.FuelType == "" {
			input.FuelType = models.FuelGasoline
		}

		car := models.Car{
			LicensePlate: strings.ToUpper(strings.TrimSpace(input.LicensePlate)),
			Brand:        input.Brand,
			Model:        input.Model,
			Year:         input.Year,
			Color:        input.Color,
			Transmission: input.Transmission,
			FuelType:     input.FuelType,
			Available:    true,
			ProviderID:   input.Provider,
		}
		if err := cars.Create(c.Request.Context(), &car); err != nil {
			utils.RespondError(c, http.StatusBadRequest, "Failed to create car")
			return
		}
		utils.RespondData(c, http.StatusCreated, car)
	}
}

func UpdateCar(cars *repository.CarRepository, providers *repository.ProviderRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			utils.RespondError(c, http.StatusNotFound, "Car not found")
			return
		}

		var input struct {
			LicensePlate *string              `json:"licensePlate" binding:"omitempty,max=15"`
			Brand        *string              `json:"brand"`
			Model        *string              `json:"model"`
			Year         *int                 `json:"year"`
			Color        *string              `json:"color"`
			Transmission *models.Transmission `json:"transmission" binding:"omitempty,oneof=Automatic Manual"`
			FuelType     *models.FuelType     `json:"fuelType" binding:"omitempty,oneof=Gasoline Diesel Electric Hybrid"`
			Provider     *uint                `json:"provider"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.RespondError(c, http.StatusBadRequest, err.Error())
			return
		}

		updates := map[string]any{}
		if input.LicensePlate != nil {
			updates["license_plate"] = strings.ToUpper(strings.TrimSpace(*input.LicensePlate))
		}
		if input.Brand != nil {
			updates["brand"] = *input.Brand
		}
		if input.Model != nil {
			updates["model"] = *input.Model
		}
		if input.Year != nil {
			if !validCarYear(*input.Year) {
				utils.RespondError(c, http.StatusBadRequest, fmt.Sprintf("Year must be between %d and %d", models.MinCarYear, time.Now().Year()+1))
				return
			}
			updates["year"] = *input.Year
		}
		if input.Color != nil {
			updates["color"] = *input.Color
		}
		if input.Transmission != nil {
			updates["transmission"] = *input.Transmission
		}
		if input.FuelType != nil {
			updates["fuel_type"] = *input.FuelType
		}
		if input.Provider != nil {
			exists, err := providers.Exists(c.Request.Context(), *input.Provider)
			if err != nil {
				utils.RespondError(c, http.StatusInternalServerError, "Failed to update car")
				return
			}
			if !exists {
				utils.RespondError(c, http.StatusNotFound, fmt.Sprintf("No provider with the id of %d", *input.Provider))
				return
			}
			updates["provider_id"] = *input.Provider
		}

		car, err := cars.Update(c.Request.Context(), id, updates)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondError(c, http.StatusNotFound, fmt.Sprintf("Car not found with id of %d", id))
				return
			}
			utils.RespondError(c, http.StatusBadRequest, "Failed to update car")
			return
		}
		utils.RespondData(c, http.StatusOK, car)
	}
}

// DeleteCar removes the car and every booking made against it.
func DeleteCar(cars *repository.CarRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			utils.RespondError(c, http.StatusNotFound, "Car not found")
			return
		}

		if _, err := cars.FindByID(c.Request.Context(), id); err != nil {
			utils.RespondError(c, http.StatusNotFound, fmt.Sprintf("Car not found with id of %d", id))
			return
		}

		if err := cars.DeleteCascade(c.Request.Context(), id); err != nil {
			logger.GetLogger().Error("delete car failed", zap.Uint("id", id), zap.Error(err))
			utils.RespondError(c, http.StatusInternalServerError, "Failed to delete car")
			return
		}
		utils.RespondData(c, http.StatusOK, gin.H{})
	}
}
