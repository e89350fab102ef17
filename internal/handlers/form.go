package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-ranker/internal/models"
)

const (
	fieldJobDescription = "job_description"
	fieldResumes        = "resumes"
)

var (
	errMissingJobDescription = errors.New("job_description is required")
	errMissingResumes        = errors.New("at least one resume is required")
)

type rankForm struct {
	jobDescription string
	files          []models.ResumeFile
}

// parseRankForm reads the job description and resume uploads from a
// multipart request. Validation failures are returned as *fiber.Error with
// status 400.
func parseRankForm(c *fiber.Ctx) (*rankForm, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "failed to parse multipart form")
	}

	input := &rankForm{}
	if values := form.Value[fieldJobDescription]; len(values) > 0 {
		input.jobDescription = values[0]
	}
	if strings.TrimSpace(input.jobDescription) == "" {
		return input, fiber.NewError(fiber.StatusBadRequest, errMissingJobDescription.Error())
	}

	headers := form.File[fieldResumes]
	if len(headers) == 0 {
		return input, fiber.NewError(fiber.StatusBadRequest, errMissingResumes.Error())
	}

	for _, header := range headers {
		file, err := readUpload(header)
		if err != nil {
			return input, err
		}
		input.files = append(input.files, file)
	}

	return input, nil
}

func readUpload(header *multipart.FileHeader) (models.ResumeFile, error) {
	src, err := header.Open()
	if err != nil {
		return models.ResumeFile{}, fmt.Errorf("failed to open uploaded file %s: %w", header.Filename, err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return models.ResumeFile{}, fmt.Errorf("failed to read uploaded file %s: %w", header.Filename, err)
	}

	return models.ResumeFile{Name: header.Filename, Data: data}, nil
}
