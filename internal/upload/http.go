package upload

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/radif/attachments/internal/middleware"
	"github.com/radif/attachments/internal/response"
)

// Upload godoc
//
//	@Summary		Upload an attachment
//	@Description	Stores the raw request body as an attachment. The Content-Type header is kept verbatim as the attachment type and the size is measured server-side.
//	@Tags			attachments
//	@Accept			*/*
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Content-Type	header		string	false	"Media type of the attachment"
//	@Param			body			body		string	true	"Raw attachment bytes"
//	@Success		201				{object}	Response
//	@Failure		400				{object}	response.Envelope
//	@Failure		401				{object}	response.Envelope
//	@Failure		413				{object}	response.Envelope
//	@Failure		500				{object}	response.Envelope
//	@Router			/upload [post]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	namespace, _ := middleware.AccountID(r.Context())

	body := r.Body
	if h.maxBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	}

	resp, err := h.Handle(r.Context(), namespace, r.Header.Get("Content-Type"), body)
	if err != nil {
		writeError(w, err)
		return
	}

	payload, err := h.encode(resp)
	if err != nil {
		log.Printf("upload: encode response for %s: %v", resp.BlobID, err)
		response.InternalError(w)
		return
	}
	response.Raw(w, http.StatusCreated, response.ContentTypeJSON, payload)
}

func writeError(w http.ResponseWriter, err error) {
	switch KindOf(err) {
	case KindNamespace:
		response.Unauthorized(w, "no upload namespace for this session")
	case KindRead:
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.TooLarge(w, fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		response.BadRequest(w, "could not read request body")
	default:
		log.Printf("upload: %v", err)
		response.InternalError(w)
	}
}
