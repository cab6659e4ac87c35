package controller

import (
	"notes-sharing-be/internal/dto"
	"notes-sharing-be/internal/pkg/apperrors"
	"notes-sharing-be/internal/pkg/serverutils"
	"notes-sharing-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type NoteController struct {
	noteService service.INoteService
	authGate    fiber.Handler
}

func NewNoteController(noteService service.INoteService, authGate fiber.Handler) *NoteController {
	return &NoteController{
		noteService: noteService,
		authGate:    authGate,
	}
}

func (c *NoteController) Route(r fiber.Router) {
	notes := r.Group("/notes", c.authGate)
	notes.Get("", c.List)
	notes.Post("", c.Create)
	notes.Get("/:id", c.Show)
	notes.Put("/:id", c.Update)
	notes.Delete("/:id", c.Delete)
	notes.Post("/:id/share", c.Share)

	r.Get("/search", c.authGate, c.Search)
}

func (c *NoteController) List(ctx *fiber.Ctx) error {
	userId := authenticatedUserId(ctx)
	page := ctx.QueryInt("page", 1)
	pageSize := ctx.QueryInt("pageSize", 10)

	notes, err := c.noteService.List(ctx.UserContext(), userId, page, pageSize)
	if err != nil {
		return err
	}
	return ctx.JSON(notes)
}

func (c *NoteController) Create(ctx *fiber.Ctx) error {
	userId := authenticatedUserId(ctx)

	var request dto.CreateNoteRequest
	if err := serverutils.ParseAndValidate(ctx, &request); err != nil {
		return err
	}

	note, err := c.noteService.Create(ctx.UserContext(), userId, &request)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(note)
}

func (c *NoteController) Show(ctx *fiber.Ctx) error {
	userId := authenticatedUserId(ctx)
	noteId, err := noteIdParam(ctx)
	if err != nil {
		return err
	}

	note, err := c.noteService.Show(ctx.UserContext(), userId, noteId)
	if err != nil {
		return err
	}
	return ctx.JSON(note)
}

func (c *NoteController) Update(ctx *fiber.Ctx) error {
	userId := authenticatedUserId(ctx)
	noteId, err := noteIdParam(ctx)
	if err != nil {
		return err
	}

	var request dto.UpdateNoteRequest
	if err := serverutils.ParseAndValidate(ctx, &request); err != nil {
		return err
	}

	note, err := c.noteService.Update(ctx.UserContext(), userId, noteId, &request)
	if err != nil {
		return err
	}
	return ctx.JSON(note)
}

func (c *NoteController) Delete(ctx *fiber.Ctx) error {
	userId := authenticatedUserId(ctx)
	noteId, err := noteIdParam(ctx)
	if err != nil {
		return err
	}

	if err := c.noteService.Delete(ctx.UserContext(), userId, noteId); err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{
		"message": "Note deleted successfully.",
	})
}

func (c *NoteController) Share(ctx *fiber.Ctx) error {
	userId := authenticatedUserId(ctx)
	noteId, err := noteIdParam(ctx)
	if err != nil {
		return err
	}

	var request dto.ShareNoteRequest
	if err := serverutils.ParseAndValidate(ctx, &request); err != nil {
		return err
	}

	if err := c.noteService.Share(ctx.UserContext(), userId, noteId, request.ReceiverId); err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{
		"message": "Note shared successfully.",
	})
}

func (c *NoteController) Search(ctx *fiber.Ctx) error {
	userId := authenticatedUserId(ctx)
	query := ctx.Query("q")
	page := ctx.QueryInt("page", 1)
	pageSize := ctx.QueryInt("pageSize", 10)

	notes, err := c.noteService.Search(ctx.UserContext(), userId, query, page, pageSize)
	if err != nil {
		return err
	}
	return ctx.JSON(notes)
}

func authenticatedUserId(ctx *fiber.Ctx) uuid.UUID {
	raw, _ := ctx.Locals(serverutils.UserIdLocalsKey).(string)
	userId, err := uuid.Parse(raw)
	if err != nil {
		// The auth gate always sets a valid id; this is unreachable behind it.
		return uuid.Nil
	}
	return userId
}

// noteIdParam parses the :id path segment. A malformed id can never match a
// note, so it reads as not found rather than a validation failure.
func noteIdParam(ctx *fiber.Ctx) (uuid.UUID, error) {
	noteId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, apperrors.NotFound("Note not found for the authenticated user.")
	}
	return noteId, nil
}
