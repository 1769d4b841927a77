package http

import (
	"encoding/base64"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Bhagesh4604/TimeVault1/internal/auth"
	"github.com/Bhagesh4604/TimeVault1/internal/clock"
	"github.com/Bhagesh4604/TimeVault1/internal/suggest"
	"github.com/Bhagesh4604/TimeVault1/internal/vaults/domain"
	"github.com/Bhagesh4604/TimeVault1/internal/vaults/session"
)

type Handler struct {
	sessions *session.Registry
	suggest  *suggest.Client
	clock    clock.Clock
}

func Register(rg *gin.RouterGroup, sessions *session.Registry, sg *suggest.Client, clk clock.Clock) {
	h := &Handler{sessions: sessions, suggest: sg, clock: clk}

	rg.GET("", h.list)
	rg.POST("", h.create)
	rg.GET("/:id/countdown", h.streamCountdown)
	rg.POST("/suggest", h.suggestDescription)
}

func (h *Handler) list(c *gin.Context) {
	ctl := h.sessions.For(auth.UserID(c))
	err := ctl.Load(c.Request.Context())
	st := ctl.Snapshot()
	if err != nil {
		// The controller keeps the last good list; surface it alongside the
		// error instead of dropping it.
		c.JSON(statusForError(err), gin.H{"ok": false, "error": err.Error(), "vaults": st.Vaults})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "vaults": st.Vaults})
}

func (h *Handler) create(c *gin.Context) {
	var (
		input domain.VaultInput
		err   error
	)

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		input, err = h.bindMultipart(c)
	} else {
		input, err = h.bindJSON(c)
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	ctl := h.sessions.For(auth.UserID(c))
	v, err := ctl.Create(c.Request.Context(), input)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "vault": v})
}

func statusForError(err error) int {
	var mErr *domain.MaterializationError
	switch {
	case errors.Is(err, domain.ErrEmptyTitle), errors.Is(err, domain.ErrMissingUnlockDate):
		return http.StatusBadRequest
	case errors.As(err, &mErr):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func (h *Handler) bindJSON(c *gin.Context) (domain.VaultInput, error) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return domain.VaultInput{}, errors.New("invalid body")
	}

	unlock, err := parseUnlock(req.UnlockDate)
	if err != nil {
		return domain.VaultInput{}, err
	}

	media := make([]domain.MediaUpload, 0, len(req.Media))
	for _, m := range req.Media {
		id := m.ID
		if id == "" {
			id = uuid.New().String()
		}
		media = append(media, domain.MediaUpload{ID: id, URL: m.URL})
	}

	return domain.VaultInput{
		Title:       req.Title,
		Description: req.Description,
		UnlockAt:    unlock,
		Media:       media,
	}, nil
}

// bindMultipart reads the creation form. Opened file handles travel with the
// input and are closed by the create pipeline; on a bind failure they are
// closed here before the partial input is discarded.
func (h *Handler) bindMultipart(c *gin.Context) (domain.VaultInput, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return domain.VaultInput{}, errors.New("invalid multipart form")
	}

	unlock, err := parseUnlock(c.PostForm("unlock_date"))
	if err != nil {
		return domain.VaultInput{}, err
	}

	files := form.File["files"]
	media := make([]domain.MediaUpload, 0, len(files))
	for _, fh := range files {
		up, err := uploadFromFileHeader(fh)
		if err != nil {
			for _, opened := range media {
				_ = opened.Close()
			}
			return domain.VaultInput{}, err
		}
		media = append(media, up)
	}

	return domain.VaultInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		UnlockAt:    unlock,
		Media:       media,
	}, nil
}

func uploadFromFileHeader(fh *multipart.FileHeader) (domain.MediaUpload, error) {
	src, err := fh.Open()
	if err != nil {
		return domain.MediaUpload{}, errors.New("could not open uploaded file " + fh.Filename)
	}

	return domain.MediaUpload{
		ID:          uuid.New().String(),
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        src,
	}, nil
}

func parseUnlock(raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return time.Time{}, domain.ErrMissingUnlockDate
	}
	unlock, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, errors.New("unlock_date must be an RFC 3339 timestamp")
	}
	return unlock, nil
}

func (h *Handler) suggestDescription(c *gin.Context) {
	var req suggestReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "title is required"})
		return
	}

	var image []byte
	if req.Image != "" {
		// A bad image is ignored rather than failing the suggestion.
		if b, err := base64.StdEncoding.DecodeString(req.Image); err == nil {
			image = b
		}
	}

	suggestion := h.suggest.Suggest(c.Request.Context(), req.Title, image)
	c.JSON(http.StatusOK, gin.H{"ok": true, "suggestion": suggestion})
}
