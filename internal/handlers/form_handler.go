package handlers

import (
	"bytes"
	"embed"
	"errors"
	"html/template"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/resume-ranker/internal/models"
	"alfredoptarigan/resume-ranker/internal/services"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type pageData struct {
	JobDescription string
	Result         *models.RankingResult
	Error          string
}

// FormHandler serves the single-screen ranking form.
type FormHandler struct {
	rankingService services.RankingService
	logger         *zap.Logger
}

func NewFormHandler(rankingService services.RankingService, logger *zap.Logger) *FormHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FormHandler{
		rankingService: rankingService,
		logger:         logger,
	}
}

// HandleIndex handles GET /
func (h *FormHandler) HandleIndex(c *fiber.Ctx) error {
	return h.render(c, fiber.StatusOK, pageData{})
}

// HandleSubmit handles POST /rank
func (h *FormHandler) HandleSubmit(c *fiber.Ctx) error {
	input, err := parseRankForm(c)
	if err != nil {
		return h.renderError(c, input, err)
	}

	result, err := h.rankingService.RankResumes(c.UserContext(), input.jobDescription, input.files)
	if err != nil {
		return h.renderError(c, input, rankError(err))
	}

	return h.render(c, fiber.StatusOK, pageData{
		JobDescription: input.jobDescription,
		Result:         result,
	})
}

func (h *FormHandler) renderError(c *fiber.Ctx, input *rankForm, err error) error {
	data := pageData{Error: err.Error()}
	if input != nil {
		data.JobDescription = input.jobDescription
	}

	var fe *fiber.Error
	if !errors.As(err, &fe) {
		h.logger.Error("ranking form failed", zap.Error(err))
		return h.render(c, fiber.StatusInternalServerError, pageData{
			JobDescription: data.JobDescription,
			Error:          "something went wrong while ranking resumes",
		})
	}

	return h.render(c, fe.Code, data)
}

func (h *FormHandler) render(c *fiber.Ctx, status int, data pageData) error {
	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(buf.Bytes())
}
