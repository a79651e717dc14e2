package controller

import (
	"notemark-be/internal/dto"
	"notemark-be/internal/pkg/serverutils"
	"notemark-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IConvertController interface {
	RegisterRoutes(r fiber.Router)
	MarkdownToBlocks(ctx *fiber.Ctx) error
	BlocksToMarkdown(ctx *fiber.Ctx) error
	Syntax(ctx *fiber.Ctx) error
	Stats(ctx *fiber.Ctx) error
}

type convertController struct {
	service      service.IConvertService
	statsService service.IStatsService
}

func NewConvertController(service service.IConvertService, statsService service.IStatsService) IConvertController {
	return &convertController{service: service, statsService: statsService}
}

func (c *convertController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/convert/v1")
	h.Post("/markdown-to-blocks", c.MarkdownToBlocks)
	h.Post("/blocks-to-markdown", c.BlocksToMarkdown)
	h.Get("/syntax", c.Syntax)
	h.Get("/stats", c.Stats)
}

func (c *convertController) MarkdownToBlocks(ctx *fiber.Ctx) error {
	var req dto.MarkdownToBlocksRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.MarkdownToBlocks(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success convert markdown", res))
}

func (c *convertController) BlocksToMarkdown(ctx *fiber.Ctx) error {
	var req dto.BlocksToMarkdownRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.BlocksToMarkdown(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success convert blocks", res))
}

func (c *convertController) Syntax(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get syntax", c.service.Syntax()))
}

func (c *convertController) Stats(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get stats", c.statsService.Snapshot()))
}
