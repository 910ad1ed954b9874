package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"wastenot/domain"
	"wastenot/internal/api/presenters"
	"wastenot/pkg/recipe"
)

type (
	RecipeHandler interface {
		SearchRecipes(c *fiber.Ctx) error
		GetRecipes(c *fiber.Ctx) error
		TestConnection(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService recipe.RecipeService
		validator     *validator.Validate
	}
)

func NewRecipeHandler(recipeService recipe.RecipeService, validator *validator.Validate) RecipeHandler {
	return &recipeHandler{
		recipeService: recipeService,
		validator:     validator,
	}
}

func (h *recipeHandler) SearchRecipes(c *fiber.Ctx) error {
	req := new(domain.RecipeSearchRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.recipeService.Search(c.UserContext(), *req)
	switch {
	case errors.Is(err, domain.ErrProvider) && res.Demo:
		return presenters.ErrorResponseWithData(c, fiber.StatusBadGateway, domain.MessageDemoRecipes, err, res)
	case errors.Is(err, domain.ErrConfiguration):
		return presenters.ServiceError(c, domain.MessageFailedMissingAPIKey, err)
	case err != nil:
		return presenters.ServiceError(c, domain.MessageFailedSearchRecipes, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSearchRecipes)
}

func (h *recipeHandler) GetRecipes(c *fiber.Ctx) error {
	recipes, err := h.recipeService.GetStoredRecipes(c.UserContext())
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedGetRecipes, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"recipes": recipes,
		"total":   len(recipes),
	}, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) TestConnection(c *fiber.Ctx) error {
	req := new(domain.TestConnectionRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedTestConnection, err)
	}

	if err := h.recipeService.TestConnection(c.UserContext(), req.APIKey); err != nil {
		return presenters.ServiceError(c, domain.MessageFailedTestConnection, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessTestConnection)
}
