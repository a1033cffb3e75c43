package middleware

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/pageza/chefapp/backend/internal/apperr"
	"github.com/pageza/chefapp/backend/internal/storage"
	"github.com/rs/zerolog/log"
)

// UploadedFileKey is the gin context key holding the stored file's URL
const UploadedFileKey = "uploaded_file"

// Upload field names
const (
	RecipeImageField  = "recipeImage"
	ProfileImageField = "profileImage"
)

// Upload errors shown to clients
const (
	MsgOnlyImages    = "Only image files are allowed"
	MsgFileTooLarge  = "File too large"
	MsgInvalidUpload = "Invalid multipart form"
)

// multipart form overhead allowed on top of the file itself
const formSlack = 1 << 20

// Upload stores at most one image sent in field under subdir. Requests that
// are not multipart pass through untouched. When the rest of the chain fails
// the stored file is removed again.
func Upload(store storage.Store, field, subdir string, maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
			c.Next()
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes+formSlack)
		if err := c.Request.ParseMultipartForm(maxBytes); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				abortWith(c, apperr.Validation(MsgFileTooLarge))
				return
			}
			abortWith(c, apperr.Validation(MsgInvalidUpload))
			return
		}

		files := c.Request.MultipartForm.File[field]
		if len(files) == 0 {
			c.Next()
			return
		}
		fh := files[0]
		if fh.Size > maxBytes {
			abortWith(c, apperr.Validation(MsgFileTooLarge))
			return
		}

		f, contentType, err := openImage(fh)
		if err != nil {
			abortWith(c, err)
			return
		}
		defer f.Close()

		url, err := store.Save(c.Request.Context(), subdir, storage.FileName(fh.Filename), contentType, f)
		if err != nil {
			abortWith(c, apperr.Internal("Server error", err))
			return
		}
		c.Set(UploadedFileKey, url)

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			if err := store.Remove(c.Request.Context(), url); err != nil {
				log.Warn().Err(err).Str("file", url).Msg("failed to remove orphaned upload")
			}
		}
	}
}

// openImage checks both the declared and the sniffed type before anything
// is written, and returns the file rewound to its start.
func openImage(fh *multipart.FileHeader) (multipart.File, string, error) {
	if !strings.HasPrefix(fh.Header.Get("Content-Type"), "image/") {
		return nil, "", apperr.Validation(MsgOnlyImages)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, "", apperr.Internal("Server error", err)
	}
	head := make([]byte, 3072)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		f.Close()
		return nil, "", apperr.Internal("Server error", err)
	}
	detected := mimetype.Detect(head[:n])
	if !strings.HasPrefix(detected.String(), "image/") {
		f.Close()
		return nil, "", apperr.Validation(MsgOnlyImages)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, "", apperr.Internal("Server error", err)
	}
	return f, detected.String(), nil
}

func abortWith(c *gin.Context, err error) {
	c.Error(err)
	c.Abort()
}

// UploadedFile returns the URL stored by Upload, or ""
func UploadedFile(c *gin.Context) string {
	return c.GetString(UploadedFileKey)
}
