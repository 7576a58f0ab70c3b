package controller

import (
	"hustlee-be/internal/dto"
	"hustlee-be/internal/pkg/serverutils"
	"hustlee-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IMentorshipController interface {
	RegisterRoutes(r fiber.Router)
	Book(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	UpdateStatus(ctx *fiber.Ctx) error
	SubmitFeedback(ctx *fiber.Ctx) error
	PaymentNotification(ctx *fiber.Ctx) error
}

type mentorshipController struct {
	service service.IMentorshipService
}

func NewMentorshipController(service service.IMentorshipService) IMentorshipController {
	return &mentorshipController{service: service}
}

func (c *mentorshipController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/mentorship")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/book", c.Book)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Patch(":id/status", c.UpdateStatus)
	h.Post(":id/feedback", c.SubmitFeedback)

	// Midtrans calls this server to server; authenticated by signature, not JWT.
	r.Post("/payments/notification", c.PaymentNotification)
}

func (c *mentorshipController) Book(ctx *fiber.Ctx) error {
	userId, err := serverutils.CallerID(ctx)
	if err != nil {
		return err
	}

	var req dto.BookMentorshipRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Book(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).
		JSON(serverutils.SuccessResponse("Success book mentorship", res))
}

func (c *mentorshipController) Show(ctx *fiber.Ctx) error {
	userId, err := serverutils.CallerID(ctx)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid mentorship id")
	}

	res, err := c.service.GetRecord(ctx.Context(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show mentorship", res))
}

func (c *mentorshipController) List(ctx *fiber.Ctx) error {
	userId, err := serverutils.CallerID(ctx)
	if err != nil {
		return err
	}

	limit := ctx.QueryInt("limit", 20)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.service.ListRecords(ctx.Context(), userId, limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list mentorships", res))
}

func (c *mentorshipController) UpdateStatus(ctx *fiber.Ctx) error {
	userId, err := serverutils.CallerID(ctx)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid mentorship id")
	}

	var req dto.UpdateMentorshipStatusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdateStatus(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update mentorship status", res))
}

func (c *mentorshipController) SubmitFeedback(ctx *fiber.Ctx) error {
	userId, err := serverutils.CallerID(ctx)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid mentorship id")
	}

	var req dto.SubmitFeedbackRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SubmitFeedback(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success submit feedback", res))
}

func (c *mentorshipController) PaymentNotification(ctx *fiber.Ctx) error {
	var req dto.PaymentNotificationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := c.service.HandlePaymentNotification(ctx.Context(), &req); err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{"status": "ok"})
}
