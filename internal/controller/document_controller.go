package controller

import (
	"errors"

	"docedit-be/internal/dto"
	"docedit-be/internal/pkg/serverutils"
	"docedit-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Open(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Click(ctx *fiber.Ctx) error
	EditText(ctx *fiber.Ctx) error
	Reset(ctx *fiber.Ctx) error
	Export(ctx *fiber.Ctx) error
	Preview(ctx *fiber.Ctx) error
	Close(ctx *fiber.Ctx) error
}

type documentController struct {
	service service.IDocumentService
}

func NewDocumentController(service service.IDocumentService) IDocumentController {
	return &documentController{service: service}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/document/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.List)
	h.Post("", c.Upload)
	h.Post("documents/:documentId/open", c.Open)
	h.Get(":sessionId", c.Show)
	h.Post(":sessionId/click", c.Click)
	h.Put(":sessionId/text", c.EditText)
	h.Post(":sessionId/reset", c.Reset)
	h.Post(":sessionId/export", c.Export)
	h.Get(":sessionId/preview", c.Preview)
	h.Delete(":sessionId", c.Close)
}

func (c *documentController) Upload(ctx *fiber.Ctx) error {
	userId := serverutils.UserId(ctx)

	var req dto.UploadDocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Upload(ctx.Context(), userId, &req)
	if err != nil {
		return mapServiceError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success upload document", res))
}

func (c *documentController) List(ctx *fiber.Ctx) error {
	userId := serverutils.UserId(ctx)

	var req dto.ListDocumentsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.List(ctx.Context(), userId, &req)
	if err != nil {
		return mapServiceError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get all document", res))
}

func (c *documentController) Open(ctx *fiber.Ctx) error {
	userId := serverutils.UserId(ctx)
	documentId, err := uuid.Parse(ctx.Params("documentId"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, service.ErrDocumentNotFound.Error())
	}

	res, err := c.service.Open(ctx.Context(), userId, documentId)
	if err != nil {
		return mapServiceError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success open document", res))
}

func (c *documentController) Show(ctx *fiber.Ctx) error {
	userId := serverutils.UserId(ctx)

	res, err := c.service.Show(ctx.Context(), userId, ctx.Params("sessionId"))
	if err != nil {
		return mapServiceError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show session", res))
}

func (c *documentController) Click(ctx *fiber.Ctx) error {
	userId := serverutils.UserId(ctx)

	var req dto.ClickRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	req.SessionId = ctx.Params("sessionId")

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Click(ctx.Context(), userId, &req)
	if err != nil {
		return mapServiceError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success click", res))
}

func (c *documentController) EditText(ctx *fiber.Ctx) error {
	userId := serverutils.UserId(ctx)

	var req dto.EditTextRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	req.SessionId = ctx.Params("sessionId")

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.EditText(ctx.Context(), userId, &req)
	if err != nil {
		return mapServiceError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success edit text", res))
}

func (c *documentController) Reset(ctx *fiber.Ctx) error {
	userId := serverutils.UserId(ctx)

	res, err := c.service.Reset(ctx.Context(), userId, ctx.Params("sessionId"))
	if err != nil {
		return mapServiceError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success reset session", res))
}

func (c *documentController) Export(ctx *fiber.Ctx) error {
	userId := serverutils.UserId(ctx)

	res, err := c.service.Export(ctx.Context(), userId, ctx.Params("sessionId"))
	if err != nil {
		return mapServiceError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success export document", res))
}

func (c *documentController) Preview(ctx *fiber.Ctx) error {
	userId := serverutils.UserId(ctx)

	res, err := c.service.Preview(ctx.Context(), userId, ctx.Params("sessionId"))
	if err != nil {
		return mapServiceError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get preview", res))
}

func (c *documentController) Close(ctx *fiber.Ctx) error {
	userId := serverutils.UserId(ctx)

	if err := c.service.Close(ctx.Context(), userId, ctx.Params("sessionId")); err != nil {
		return mapServiceError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success close session", nil))
}

// mapServiceError turns domain errors into HTTP errors; the rest become 500s
// in the error handler.
func mapServiceError(err error) error {
	switch {
	case errors.Is(err, service.ErrDocumentNotFound), errors.Is(err, service.ErrSessionNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidDocument), errors.Is(err, service.ErrInvalidEdit):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return err
}
