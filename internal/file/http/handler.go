package http

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/kelleauto/dealership-backend/internal/file"
	"github.com/kelleauto/dealership-backend/internal/pkg/response"
)

type Handler struct {
	fileService file.Service
}

func NewHandler(fileService file.Service) *Handler {
	return &Handler{
		fileService: fileService,
	}
}

// sniffLen is how much of a file is read to detect its content type.
const sniffLen = 3072

// ServeFile streams a stored object by its storage path.
func (h *Handler) ServeFile(c *gin.Context) {
	path := strings.TrimPrefix(c.Param("path"), "/")
	if path == "" || strings.Contains(path, "..") {
		response.Error(c, file.ErrNotFound)
		return
	}

	stream, err := h.fileService.Open(c.Request.Context(), path)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer stream.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(stream, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		response.Error(c, err)
		return
	}
	head = head[:n]

	// Object keys are random, so the content behind a path never changes.
	c.Header("Cache-Control", "public, max-age=31536000, immutable")
	c.Header("Content-Type", mimetype.Detect(head).String())
	c.Status(http.StatusOK)

	if _, err := io.Copy(c.Writer, io.MultiReader(bytes.NewReader(head), stream)); err != nil {
		// Response already started
		logrus.WithError(err).WithField("path", path).Warn("failed to stream file")
	}
}
