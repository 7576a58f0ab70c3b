package controller

import (
	"hustlee-be/internal/dto"
	"hustlee-be/internal/pkg/serverutils"
	"hustlee-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IMentorController interface {
	RegisterRoutes(r fiber.Router)
	ListMentors(ctx *fiber.Ctx) error
	GetMentor(ctx *fiber.Ctx) error
	GetMentorAvailability(ctx *fiber.Ctx) error
	GetOwnProfile(ctx *fiber.Ctx) error
	UpdateOwnProfile(ctx *fiber.Ctx) error
	UpdateOwnAvailability(ctx *fiber.Ctx) error
}

type mentorController struct {
	service service.IMentorService
}

func NewMentorController(service service.IMentorService) IMentorController {
	return &mentorController{service: service}
}

func (c *mentorController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/mentors")
	h.Use(serverutils.JwtMiddleware)

	// "me" before ":id" so the literal segment wins.
	h.Get("/me", c.GetOwnProfile)
	h.Put("/me", c.UpdateOwnProfile)
	h.Put("/me/availability", c.UpdateOwnAvailability)

	h.Get("/", c.ListMentors)
	h.Get("/:id", c.GetMentor)
	h.Get("/:id/availability", c.GetMentorAvailability)

	// Discovery is also reachable under the mentorship prefix. Registered
	// before the mentorship booking routes so the literal segment wins
	// over /mentorship/:id.
	d := r.Group("/mentorship/mentors")
	d.Use(serverutils.JwtMiddleware)
	d.Get("/", c.ListMentors)
	d.Get("/:id", c.GetMentor)
	d.Get("/:id/availability", c.GetMentorAvailability)
}

func (c *mentorController) ListMentors(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 20)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.service.ListMentors(ctx.Context(), limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list mentors", res))
}

func (c *mentorController) GetMentor(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid mentor id")
	}

	res, err := c.service.GetProfile(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get mentor profile", res))
}

func (c *mentorController) GetMentorAvailability(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid mentor id")
	}

	res, err := c.service.GetAvailability(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get availability", res))
}

func (c *mentorController) GetOwnProfile(ctx *fiber.Ctx) error {
	userId, err := serverutils.CallerID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetProfile(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get mentor profile", res))
}

func (c *mentorController) UpdateOwnProfile(ctx *fiber.Ctx) error {
	userId, err := serverutils.CallerID(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateMentorProfileRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdateProfile(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update mentor profile", res))
}

func (c *mentorController) UpdateOwnAvailability(ctx *fiber.Ctx) error {
	userId, err := serverutils.CallerID(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateAvailabilityRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdateAvailability(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update availability", res))
}
