package v1

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"mediawatch.dev/backend/internal/model/types"
	"mediawatch.dev/backend/internal/server/svr"
	"mediawatch.dev/backend/internal/service"
	"mediawatch.dev/backend/internal/util/rekuest"
)

type Complaint struct {
	fx.In

	ComplaintService *service.Complaint
	AccountService   *service.Account
	Guards           *svr.Guards
}

func RegisterComplaint(api *svr.Api, c Complaint) {
	complaints := api.Group("/complaints", RequireAccount(c.AccountService))
	complaints.Get("/", c.ListComplaints)
	complaints.Get("/:complaintId", c.GetComplaint)
	complaints.Put("/:complaintId", c.UpdateComplaint)
	complaints.Post("/:complaintId/send", c.Guards.Idempotency, c.SendComplaint)
	complaints.Post("/:complaintId/response", c.RecordResponse)
	complaints.Delete("/:complaintId", c.DeleteComplaint)
}

func (c *Complaint) ListComplaints(ctx *fiber.Ctx) error {
	complaints, err := c.ComplaintService.ListOwnComplaints(ctx.UserContext(), accountOf(ctx))
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"complaints": complaints,
	})
}

func (c *Complaint) GetComplaint(ctx *fiber.Ctx) error {
	complaint, err := c.ComplaintService.GetOwnComplaint(ctx.UserContext(), accountOf(ctx), ctx.Params("complaintId"))
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"complaint": complaint,
	})
}

func (c *Complaint) UpdateComplaint(ctx *fiber.Ctx) error {
	var request types.UpdateComplaintRequest
	if err := rekuest.ValidBody(ctx, &request); err != nil {
		return err
	}

	complaint, err := c.ComplaintService.UpdateComplaint(ctx.UserContext(), accountOf(ctx), ctx.Params("complaintId"), &request)
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"message":   "Complaint updated successfully",
		"complaint": complaint,
	})
}

// SendComplaint only queues the complaint: delivery happens in the dispatch
// workers, hence the 202.
func (c *Complaint) SendComplaint(ctx *fiber.Ctx) error {
	complaint, err := c.ComplaintService.QueueSend(ctx.UserContext(), accountOf(ctx), ctx.Params("complaintId"))
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message":   "Complaint queued for sending",
		"complaint": complaint,
	})
}

func (c *Complaint) RecordResponse(ctx *fiber.Ctx) error {
	var request types.RecordResponseRequest
	if err := rekuest.ValidBody(ctx, &request); err != nil {
		return err
	}

	complaint, err := c.ComplaintService.RecordResponse(ctx.UserContext(), accountOf(ctx), ctx.Params("complaintId"), &request)
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"message":   "Response recorded successfully",
		"complaint": complaint,
	})
}

func (c *Complaint) DeleteComplaint(ctx *fiber.Ctx) error {
	if err := c.ComplaintService.DeleteComplaint(ctx.UserContext(), accountOf(ctx), ctx.Params("complaintId")); err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"message": "Complaint deleted successfully",
	})
}
