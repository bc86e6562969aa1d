package controller

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"docchat-be/internal/dto"
	"docchat-be/internal/pkg/serverutils"
	"docchat-be/internal/service"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	Ask(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat")
	h.Post("/upload", c.Upload)
	h.Post("", c.Ask)
}

// Upload ingests a multipart PDF into the session named by the session_id
// query or form value. The declared content type of the file part is what
// gets checked downstream, not the filename.
func (c *chatController) Upload(ctx *fiber.Ctx) error {
	sessionId := ctx.Query("session_id", ctx.FormValue("session_id"))
	if sessionId == "" {
		return fiber.NewError(fiber.StatusBadRequest, "session_id is required")
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	payload, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	chunks, err := c.chatService.Ingest(ctx.Context(), sessionId, payload, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		return err
	}

	return ctx.JSON(dto.UploadResponse{Status: "success", Chunks: chunks})
}

func (c *chatController) Ask(ctx *fiber.Ctx) error {
	var req dto.AskRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid JSON request")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	answer, err := c.chatService.Ask(ctx.Context(), req.SessionId, req.Question)
	if err != nil {
		return err
	}

	return ctx.JSON(dto.AskResponse{Answer: answer})
}
