package controller

import (
	"text-summarizer-be/internal/pkg/serverutils"
	"text-summarizer-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IStatsController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
}

type statsController struct {
	consumerService service.IConsumerService
}

func NewStatsController(consumerService service.IConsumerService) IStatsController {
	return &statsController{consumerService: consumerService}
}

func (c *statsController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/stats/v1")
	h.Get("", c.Show)
}

func (c *statsController) Show(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Usage stats", c.consumerService.Stats()))
}
