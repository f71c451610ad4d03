package inbound

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/tranthaituong/DataAnalystAssistant/internal/dataset/entity"
	"github.com/tranthaituong/DataAnalystAssistant/internal/pkg/pkgerror"
)

type HTTPEndpoint struct {
	uc uc
}

func (h *HTTPEndpoint) Validations(ctx context.Context, r *http.Request) (any, error) {
	policy, err := parsePolicy(r.URL.Query().Get("policy"))
	if err != nil {
		return nil, err
	}

	reader, name, cleanup, err := extractUploadFile(r)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	result, err := h.uc.ValidateUpload(ctx, name, reader, policy)
	if err != nil {
		return nil, err
	}

	return toValidationResponse(result), nil
}

func parsePolicy(raw string) (entity.Policy, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil // unset, the usecase applies the configured default
	}

	policy, ok := entity.ParsePolicy(raw)
	if !ok {
		return "", pkgerror.NewInvalidInput(errors.New("invalid policy"))
	}

	return policy, nil
}

func extractUploadFile(r *http.Request) (io.ReadCloser, string, func(), error) {
	contentType := r.Header.Get("Content-Type")
	if contentType != "" {
		mediaType, _, err := mime.ParseMediaType(contentType)
		if err == nil && strings.EqualFold(mediaType, "multipart/form-data") {
			return extractMultipartFile(r)
		}
	}

	name := strings.TrimSpace(r.URL.Query().Get("filename"))
	if name == "" {
		return nil, "", func() {}, pkgerror.NewInvalidInput(errors.New("filename is required for raw uploads"))
	}

	if r.Body == nil {
		return nil, "", func() {}, pkgerror.NewInvalidInput(errors.New("empty request body"))
	}

	return r.Body, name, func() {}, nil
}

func extractMultipartFile(r *http.Request) (io.ReadCloser, string, func(), error) {
	reader, err := r.MultipartReader()
	if err != nil {
		return nil, "", func() {}, pkgerror.NewInvalidFormat()
	}

	for {
		part, err := reader.NextPart()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, "", func() {}, pkgerror.NewInvalidInput(errors.New("file part is required"))
			}
			return nil, "", func() {}, pkgerror.NewInvalidFormat()
		}

		if part.FormName() == "file" {
			name := strings.TrimSpace(part.FileName())
			if name == "" {
				_ = part.Close()
				return nil, "", func() {}, pkgerror.NewInvalidInput(errors.New("file name is required"))
			}

			return part, name, func() { _ = part.Close() }, nil
		}
		_ = part.Close()
	}
}
